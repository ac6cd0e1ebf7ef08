package accounting

import (
	"encoding/json"
	"fmt"
)

// Report is the output of an accounting run: the processed events in order and
// the pnl totals per category.
type Report struct {
	Events []ProcessedEvent `json:"events"`
	Pnls   *PnlTotals       `json:"pnls"`
}

// Validate checks that cost basis references point at earlier events of the report
func (r *Report) Validate() error {
	for i, event := range r.Events {
		for _, acquisition := range event.MatchedAcquisitions() {
			if acquisition.EventIndex < 0 || acquisition.EventIndex >= len(r.Events) {
				return fmt.Errorf("event %d references acquisition %d which is not part of the report", i, acquisition.EventIndex)
			}
			if acquisition.EventIndex >= i {
				return fmt.Errorf("event %d references acquisition %d which is not an earlier event", i, acquisition.EventIndex)
			}
		}
	}
	return nil
}

func ParseReport(data []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	if report.Pnls == nil {
		report.Pnls = NewPnlTotals()
	}
	for i := range report.Events {
		report.Events[i].Index = i
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}
	return &report, nil
}
