package accounting

import (
	"strconv"
	"time"
)

const (
	DefaultDateDisplayFormat = "02/01/2006 15:04:05 MST"
	DefaultTimezone          = "UTC"
	// one year, in seconds
	DefaultTaxfreeAfterPeriod int64 = 31536000
)

// Settings is everything an export needs to know about the user's accounting setup.
// It is passed to every export call, there is no shared settings state.
type Settings struct {
	IncludeFormulas bool `json:"pnl_csv_with_formulas" toml:"pnl-csv-with-formulas"`
	IncludeSummary  bool `json:"pnl_csv_have_summary" toml:"pnl-csv-have-summary"`
	IncludeXLSX     bool `json:"pnl_xlsx" toml:"pnl-xlsx"`

	IncludeCrypto2Crypto      bool   `json:"include_crypto2crypto" toml:"include-crypto2crypto"`
	TaxfreeAfterPeriod        *int64 `json:"taxfree_after_period" toml:"taxfree-after-period"`
	IncludeGasCosts           bool   `json:"include_gas_costs" toml:"include-gas-costs"`
	AccountForAssetsMovements bool   `json:"account_for_assets_movements" toml:"account-for-assets-movements"`
	CalculatePastCostBasis    bool   `json:"calculate_past_cost_basis" toml:"calculate-past-cost-basis"`

	DateDisplayFormat string `json:"date_display_format" toml:"date-display-format"`
	Timezone          string `json:"timezone" toml:"timezone"`
}

func DefaultSettings() Settings {
	taxfree := DefaultTaxfreeAfterPeriod
	return Settings{
		IncludeFormulas:           true,
		IncludeSummary:            false,
		IncludeCrypto2Crypto:      true,
		TaxfreeAfterPeriod:        &taxfree,
		IncludeGasCosts:           true,
		AccountForAssetsMovements: true,
		CalculatePastCostBasis:    true,
		DateDisplayFormat:         DefaultDateDisplayFormat,
		Timezone:                  DefaultTimezone,
	}
}

// SettingFlag is a named accounting setting as it is echoed in report footers
type SettingFlag struct {
	Name  string
	Value string
}

// AccountingFlags returns the settings that influence pnl results, in a stable order
func (s Settings) AccountingFlags() []SettingFlag {
	taxfree := "none"
	if s.TaxfreeAfterPeriod != nil {
		taxfree = strconv.FormatInt(*s.TaxfreeAfterPeriod, 10)
	}
	return []SettingFlag{
		{Name: "include_crypto2crypto", Value: strconv.FormatBool(s.IncludeCrypto2Crypto)},
		{Name: "taxfree_after_period", Value: taxfree},
		{Name: "include_gas_costs", Value: strconv.FormatBool(s.IncludeGasCosts)},
		{Name: "account_for_assets_movements", Value: strconv.FormatBool(s.AccountForAssetsMovements)},
		{Name: "calculate_past_cost_basis", Value: strconv.FormatBool(s.CalculatePastCostBasis)},
	}
}

// TimestampConverter builds the converter for the configured format and timezone.
// An unknown timezone falls back to UTC.
func (s Settings) TimestampConverter() TimestampConverter {
	layout := s.DateDisplayFormat
	if layout == "" {
		layout = DefaultDateDisplayFormat
	}
	loc := time.UTC
	if s.Timezone != "" {
		if l, err := time.LoadLocation(s.Timezone); err == nil {
			loc = l
		}
	}
	return func(ts int64) string {
		return time.Unix(ts, 0).In(loc).Format(layout)
	}
}
