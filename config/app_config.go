package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/DefiantLabs/pnl-export-cli/util"
	"github.com/imdario/mergo"
)

type Config struct {
	Log      log
	Report   report
	Settings settings
	API      api
	Cleanup  cleanup
}

type log struct {
	Level  string
	Path   string
	Pretty bool
}

type report struct {
	Path      string
	Directory string
}

type settings struct {
	Formulas bool
	Summary  bool
	XLSX     bool `mapstructure:"xlsx"`
	Profile  string
	// raw frontend settings JSON, only the explorers section is used
	Frontend string
}

type api struct {
	Host       string
	ExportRoot string `mapstructure:"export-root"`
}

type cleanup struct {
	Interval time.Duration
	MaxAge   time.Duration `mapstructure:"max-age"`
}

// ValidateExport checks what the export and zip commands need
func (conf *Config) ValidateExport(needsDirectory bool) error {
	if util.StrNotSet(conf.Report.Path) {
		return errors.New("report path must be set")
	}
	if needsDirectory && util.StrNotSet(conf.Report.Directory) {
		return errors.New("report directory must be set")
	}
	return nil
}

// ValidateAPI checks what the serve command needs
func (conf *Config) ValidateAPI() error {
	if util.StrNotSet(conf.API.Host) {
		return errors.New("api host must be set")
	}
	if conf.Cleanup.Interval < 0 {
		return errors.New("cleanup interval must be a positive duration or 0 to disable")
	}
	if conf.Cleanup.Interval > 0 && conf.Cleanup.MaxAge <= 0 {
		return errors.New("cleanup max-age must be set when cleanup is enabled")
	}
	return nil
}

// AccountingSettings builds the export settings: defaults, overridden by the optional
// settings profile, with the formula/summary/xlsx switches from the command line.
func (conf *Config) AccountingSettings() (accounting.Settings, error) {
	result := accounting.DefaultSettings()
	if !util.StrNotSet(conf.Settings.Profile) {
		profile, err := GetSettingsProfile(conf.Settings.Profile)
		if err != nil {
			return result, fmt.Errorf("reading settings profile %s: %w", conf.Settings.Profile, err)
		}
		result = MergeSettings(result, profile)
	}

	result.IncludeFormulas = conf.Settings.Formulas
	result.IncludeSummary = conf.Settings.Summary
	result.IncludeXLSX = conf.Settings.XLSX
	return result, nil
}

// SettingsProfile is the on disk form of the accounting settings. Unset keys keep
// their default value.
type SettingsProfile struct {
	IncludeCrypto2Crypto      *bool   `toml:"include-crypto2crypto"`
	TaxfreeAfterPeriod        *int64  `toml:"taxfree-after-period"`
	IncludeGasCosts           *bool   `toml:"include-gas-costs"`
	AccountForAssetsMovements *bool   `toml:"account-for-assets-movements"`
	CalculatePastCostBasis    *bool   `toml:"calculate-past-cost-basis"`
	DateDisplayFormat         *string `toml:"date-display-format"`
	Timezone                  *string `toml:"timezone"`
}

func GetSettingsProfile(location string) (SettingsProfile, error) {
	var profile SettingsProfile
	_, err := toml.DecodeFile(location, &profile)
	return profile, err
}

// MergeSettings lays the profile over def, keys missing from the profile keep the
// value of def. A negative taxfree period disables it.
func MergeSettings(def accounting.Settings, profile SettingsProfile) accounting.Settings {
	merged := def
	if profile.IncludeCrypto2Crypto != nil {
		merged.IncludeCrypto2Crypto = *profile.IncludeCrypto2Crypto
	}
	if profile.IncludeGasCosts != nil {
		merged.IncludeGasCosts = *profile.IncludeGasCosts
	}
	if profile.AccountForAssetsMovements != nil {
		merged.AccountForAssetsMovements = *profile.AccountForAssetsMovements
	}
	if profile.CalculatePastCostBasis != nil {
		merged.CalculatePastCostBasis = *profile.CalculatePastCostBasis
	}
	if profile.DateDisplayFormat != nil {
		merged.DateDisplayFormat = *profile.DateDisplayFormat
	}
	if profile.Timezone != nil {
		merged.Timezone = *profile.Timezone
	}
	if profile.TaxfreeAfterPeriod != nil {
		if *profile.TaxfreeAfterPeriod < 0 {
			merged.TaxfreeAfterPeriod = nil
		} else {
			period := *profile.TaxfreeAfterPeriod
			merged.TaxfreeAfterPeriod = &period
		}
	}
	return merged
}

func DefaultConfig() Config {
	return Config{
		Log: log{Level: "info"},
		API: api{Host: ":8080"},
		// no interval here, 0 is how cleanup gets disabled
		Cleanup: cleanup{MaxAge: 6 * time.Hour},
	}
}

// MergeConfigs fills every unset value of overide from def. Booleans can only be
// switched on by overide.
func MergeConfigs(def Config, overide Config) Config {
	err := mergo.Merge(&overide, def)
	if err != nil {
		Log.Panic("Config merge failed", err)
	}

	return overide
}

// CheckSuperfluousConfigKeys returns the keys viper found that no config section knows about
func CheckSuperfluousConfigKeys(keys []string) (ignoredKeys []string) {
	validKeys := make(map[string]struct{})
	for _, section := range []any{log{}, report{}, settings{}, api{}, cleanup{}} {
		for _, key := range getValidConfigKeys(section) {
			validKeys[key] = struct{}{}
		}
	}

	for _, key := range keys {
		if _, ok := validKeys[key]; !ok {
			ignoredKeys = append(ignoredKeys, key)
		}
	}

	return
}

func getValidConfigKeys(section any) (keys []string) {
	v := reflect.ValueOf(section)
	typeOfS := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := typeOfS.Field(i)
		name := strings.ToLower(field.Name)
		if tag := field.Tag.Get("mapstructure"); tag != "" {
			name = tag
		}
		keys = append(keys, fmt.Sprintf("%v.%v", typeOfS.Name(), name))
	}
	return
}
