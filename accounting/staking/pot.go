package staking

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Pot collects the acquisitions of staking events as processed events
type Pot struct {
	tracked map[common.Address]struct{}
	// offset is the index of the first collected event in the final report
	offset int
	// price of the event being processed
	price decimal.Decimal

	Events []accounting.ProcessedEvent
}

func NewPot(tracked []common.Address, offset int) *Pot {
	pot := &Pot{tracked: make(map[common.Address]struct{}, len(tracked)), offset: offset}
	for _, address := range tracked {
		pot.tracked[address] = struct{}{}
	}
	return pot
}

func (p *Pot) IsTrackedAccount(address common.Address) bool {
	_, ok := p.tracked[address]
	return ok
}

func (p *Pot) AddAcquisition(acquisition Acquisition) {
	event := accounting.ProcessedEvent{
		Type:       acquisition.EventType,
		Notes:      acquisition.Notes,
		Location:   acquisition.Location,
		Timestamp:  acquisition.Timestamp,
		Asset:      acquisition.Asset,
		FreeAmount: decimal.Zero,
		Price:      p.price,
		Index:      p.offset + len(p.Events),
	}
	value := acquisition.Amount.Mul(p.price)
	if acquisition.Taxable {
		event.TaxableAmount = acquisition.Amount
		event.Pnl = accounting.PNL{Free: decimal.Zero, Taxable: value}
	} else {
		event.FreeAmount = acquisition.Amount
		event.TaxableAmount = decimal.Zero
		event.Pnl = accounting.PNL{Free: value, Taxable: decimal.Zero}
	}
	p.Events = append(p.Events, event)
}

// Process runs every event through the pot, pricing each with its own balance
func (p *Pot) Process(events []*Event) {
	for _, event := range events {
		p.price = event.Balance.Price()
		event.Process(p)
	}
	p.price = decimal.Zero
}

// Price is the usd price of one unit, zero for an empty balance
func (b Balance) Price() decimal.Decimal {
	if b.Amount.IsZero() {
		return decimal.Zero
	}
	return b.UsdValue.Div(b.Amount)
}

type serializedEvent struct {
	Kind string                 `json:"kind"`
	Data map[string]interface{} `json:"data"`
}

type reportSection struct {
	TrackedAccounts []common.Address  `json:"tracked_accounts"`
	Events          []serializedEvent `json:"staking_events"`
}

func ParseKind(name string) (Kind, error) {
	for _, kind := range []Kind{KindWithdrawal, KindBlock} {
		if kind.String() == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown staking event kind %q", name)
}

// ParseReportSection reads the optional staking part of a report file:
// the tracked accounts and the serialized staking events.
func ParseReportSection(data []byte) ([]*Event, []common.Address, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var section reportSection
	if err := decoder.Decode(&section); err != nil {
		return nil, nil, fmt.Errorf("decoding staking events: %w", err)
	}

	events := make([]*Event, 0, len(section.Events))
	for i, serialized := range section.Events {
		kind, err := ParseKind(serialized.Kind)
		if err != nil {
			return nil, nil, fmt.Errorf("staking event %d: %w", i, err)
		}
		event, err := Deserialize(kind, serialized.Data)
		if err != nil {
			return nil, nil, fmt.Errorf("staking event %d: %w", i, err)
		}
		events = append(events, event)
	}
	return events, section.TrackedAccounts, nil
}

// AppendToReport processes the staking events and adds the outcome to the report
// events and pnl totals. It returns the number of events added.
func AppendToReport(report *accounting.Report, events []*Event, tracked []common.Address) int {
	pot := NewPot(tracked, len(report.Events))
	pot.Process(events)

	if report.Pnls == nil {
		report.Pnls = accounting.NewPnlTotals()
	}
	for _, event := range pot.Events {
		report.Pnls.Add(event.Type, event.Pnl)
	}
	report.Events = append(report.Events, pot.Events...)
	return len(pot.Events)
}

// ParseReport decodes a report file, staking events included. They are processed and
// appended after the events of the accounting run.
func ParseReport(data []byte) (*accounting.Report, error) {
	report, err := accounting.ParseReport(data)
	if err != nil {
		return nil, err
	}
	events, tracked, err := ParseReportSection(data)
	if err != nil {
		return nil, err
	}
	AppendToReport(report, events, tracked)
	return report, nil
}

func LoadReport(path string) (*accounting.Report, error) {
	if path == "" {
		return nil, errors.New("report path must be set")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	return ParseReport(data)
}
