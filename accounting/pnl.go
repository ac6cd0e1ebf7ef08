package accounting

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PNL is a profit/loss split between the part that is taxable and the part that is not
type PNL struct {
	Free    decimal.Decimal `json:"free"`
	Taxable decimal.Decimal `json:"taxable"`
}

func (p PNL) Total() decimal.Decimal {
	return p.Free.Add(p.Taxable)
}

func (p PNL) Add(other PNL) PNL {
	return PNL{
		Free:    p.Free.Add(other.Free),
		Taxable: p.Taxable.Add(other.Taxable),
	}
}

// PnlTotals aggregates PNL per event type. Iteration follows the order in which
// categories were first added.
type PnlTotals struct {
	order  []EventType
	totals map[EventType]PNL
}

func NewPnlTotals() *PnlTotals {
	return &PnlTotals{totals: make(map[EventType]PNL)}
}

// Add accumulates pnl into the category
func (p *PnlTotals) Add(category EventType, pnl PNL) {
	if p.totals == nil {
		p.totals = make(map[EventType]PNL)
	}
	current, ok := p.totals[category]
	if !ok {
		p.order = append(p.order, category)
	}
	p.totals[category] = current.Add(pnl)
}

func (p *PnlTotals) Get(category EventType) (PNL, bool) {
	if p == nil {
		return PNL{}, false
	}
	pnl, ok := p.totals[category]
	return pnl, ok
}

func (p *PnlTotals) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

// Each calls fn for every category in insertion order
func (p *PnlTotals) Each(fn func(category EventType, pnl PNL)) {
	if p == nil {
		return
	}
	for _, category := range p.order {
		fn(category, p.totals[category])
	}
}

// Total sums every category
func (p *PnlTotals) Total() PNL {
	var total PNL
	p.Each(func(_ EventType, pnl PNL) {
		total = total.Add(pnl)
	})
	return total
}

type pnlTotalEntry struct {
	Category EventType       `json:"category"`
	Free     decimal.Decimal `json:"free"`
	Taxable  decimal.Decimal `json:"taxable"`
}

func (p *PnlTotals) MarshalJSON() ([]byte, error) {
	entries := make([]pnlTotalEntry, 0, p.Len())
	p.Each(func(category EventType, pnl PNL) {
		entries = append(entries, pnlTotalEntry{Category: category, Free: pnl.Free, Taxable: pnl.Taxable})
	})
	return json.Marshal(entries)
}

// UnmarshalJSON reads the ordered array form. A category listed twice is rejected
// since its position in the summary would be ambiguous.
func (p *PnlTotals) UnmarshalJSON(data []byte) error {
	var entries []pnlTotalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*p = PnlTotals{totals: make(map[EventType]PNL, len(entries))}
	for _, entry := range entries {
		if _, ok := p.totals[entry.Category]; ok {
			return fmt.Errorf("duplicate pnl category %q", entry.Category)
		}
		p.Add(entry.Category, PNL{Free: entry.Free, Taxable: entry.Taxable})
	}
	return nil
}
