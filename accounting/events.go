package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TimestampConverter renders a unix timestamp (seconds) for export
type TimestampConverter func(ts int64) string

// MatchedAcquisition links a spend to the acquisition it consumed. EventIndex is the
// 0-based position of the acquiring event in the processed event list.
type MatchedAcquisition struct {
	EventIndex int             `json:"event_index"`
	Amount     decimal.Decimal `json:"amount"`
	Taxable    bool            `json:"taxable"`
}

type CostBasisInfo struct {
	TaxableAmount       decimal.Decimal      `json:"taxable_amount"`
	TaxableBoughtCost   decimal.Decimal      `json:"taxable_bought_cost"`
	TaxfreeBoughtCost   decimal.Decimal      `json:"taxfree_bought_cost"`
	MatchedAcquisitions []MatchedAcquisition `json:"matched_acquisitions"`
	IsComplete          bool                 `json:"is_complete"`
}

func (c *CostBasisInfo) Total() decimal.Decimal {
	return c.TaxableBoughtCost.Add(c.TaxfreeBoughtCost)
}

// ProcessedEvent is one event as it came out of the accounting engine
type ProcessedEvent struct {
	Type          EventType       `json:"type"`
	Notes         string          `json:"notes"`
	Location      Location        `json:"location"`
	Timestamp     int64           `json:"timestamp"`
	Asset         string          `json:"asset"`
	FreeAmount    decimal.Decimal `json:"free_amount"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	Price         decimal.Decimal `json:"price"`
	Pnl           PNL             `json:"pnl"`
	CostBasis     *CostBasisInfo  `json:"cost_basis,omitempty"`
	Index         int             `json:"index"`
	TxHash        string          `json:"tx_hash,omitempty"`
}

// Exported field names, in column order
const (
	FieldType          = "type"
	FieldNotes         = "notes"
	FieldLocation      = "location"
	FieldTimestamp     = "timestamp"
	FieldAsset         = "asset"
	FieldFreeAmount    = "free_amount"
	FieldTaxableAmount = "taxable_amount"
	FieldPrice         = "price"
	FieldPnl           = "pnl"
	FieldCostBasis     = "cost_basis"
)

var ExportedFields = []string{
	FieldType,
	FieldNotes,
	FieldLocation,
	FieldTimestamp,
	FieldAsset,
	FieldFreeAmount,
	FieldTaxableAmount,
	FieldPrice,
	FieldPnl,
	FieldCostBasis,
}

// ToExportedDict flattens the event into the exported field set. When the event
// carries a transaction hash and an explorer is given the link is appended to the notes.
func (e *ProcessedEvent) ToExportedDict(tsConverter TimestampConverter, explorer string) *ExportedDict {
	notes := e.Notes
	if e.TxHash != "" && explorer != "" {
		notes = fmt.Sprintf("%s %s%s", notes, explorer, e.TxHash)
	}

	costBasis := ""
	if e.CostBasis != nil {
		costBasis = e.CostBasis.Total().String()
	}

	dict := NewExportedDict()
	dict.Set(FieldType, e.Type.String())
	dict.Set(FieldNotes, notes)
	dict.Set(FieldLocation, e.Location.String())
	dict.Set(FieldTimestamp, tsConverter(e.Timestamp))
	dict.Set(FieldAsset, e.Asset)
	dict.Set(FieldFreeAmount, e.FreeAmount.String())
	dict.Set(FieldTaxableAmount, e.TaxableAmount.String())
	dict.Set(FieldPrice, e.Price.String())
	dict.Set(FieldPnl, e.Pnl.Total().String())
	dict.Set(FieldCostBasis, costBasis)
	return dict
}

func (e *ProcessedEvent) EventType() EventType {
	return e.Type
}

func (e *ProcessedEvent) TaxablePnl() decimal.Decimal {
	return e.Pnl.Taxable
}

func (e *ProcessedEvent) MatchedAcquisitions() []MatchedAcquisition {
	if e.CostBasis == nil {
		return nil
	}
	return e.CostBasis.MatchedAcquisitions
}
