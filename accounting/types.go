package accounting

import (
	"encoding/json"
	"fmt"
	"strings"
)

type EventType int

const (
	Trade EventType = iota
	Fee
	AssetMovement
	MarginPosition
	Loan
	PredictionMarket
	LedgerAction
	Staking
	HistoryEvent
	TransactionEvent
)

var eventTypeNames = [...]string{
	"trade",
	"fee",
	"asset movement",
	"margin position",
	"loan",
	"prediction market",
	"ledger action",
	"staking",
	"history event",
	"transaction event",
}

func (et EventType) String() string {
	if et < 0 || int(et) >= len(eventTypeNames) {
		return fmt.Sprintf("unknown(%d)", int(et))
	}
	return eventTypeNames[et]
}

// ParseEventType accepts the serialized name, case insensitive. Underscores are
// treated as spaces so "asset_movement" and "asset movement" are equal.
func ParseEventType(name string) (EventType, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", " ")
	for i, n := range eventTypeNames {
		if n == normalized {
			return EventType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown accounting event type %q", name)
}

func (et EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(et.String())
}

func (et *EventType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseEventType(name)
	if err != nil {
		return err
	}
	*et = parsed
	return nil
}

// Location is where an event happened (an exchange, a chain, ...). It is
// exported as-is.
type Location string

const (
	LocationEthereum Location = "ethereum"
	LocationExternal Location = "external"
)

func (l Location) String() string {
	return string(l)
}
