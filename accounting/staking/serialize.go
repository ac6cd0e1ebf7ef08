package staking

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type DeserializationError struct {
	Msg string
}

func (e *DeserializationError) Error() string {
	return e.Msg
}

func deserializationErrorf(format string, args ...interface{}) *DeserializationError {
	return &DeserializationError{Msg: fmt.Sprintf(format, args...)}
}

// Serialize returns the event as a flat map, the base history event keys plus the kind specific ones
func (e *Event) Serialize() map[string]interface{} {
	data := map[string]interface{}{
		"event_identifier": e.EventIdentifier,
		"sequence_index":   e.SequenceIndex,
		"timestamp":        e.Timestamp,
		"location":         e.Location().String(),
		"event_type":       e.Type().String(),
		"event_subtype":    string(e.Subtype),
		"asset":            Asset,
		"balance": map[string]interface{}{
			"amount":    e.Balance.Amount.String(),
			"usd_value": e.Balance.UsdValue.String(),
		},
		"location_label":  e.LocationLabel.Hex(),
		"notes":           e.Notes,
		"validator_index": e.ValidatorIndex,
	}

	switch e.Kind {
	case KindWithdrawal:
		data["is_exit"] = e.IsExit
	case KindBlock:
		data["block_number"] = e.BlockNumber
	}
	return data
}

// Deserialize rebuilds an event of the given kind from the output of Serialize or
// from decoded JSON.
func Deserialize(kind Kind, data map[string]interface{}) (*Event, error) {
	timestamp, err := requireInt(data, "timestamp")
	if err != nil {
		return nil, err
	}
	balance, err := deserializeBalance(data)
	if err != nil {
		return nil, err
	}
	validatorIndex, err := requireInt(data, "validator_index")
	if err != nil {
		return nil, err
	}
	address, err := deserializeAddress(data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindWithdrawal:
		raw, ok := data["is_exit"]
		if !ok {
			return nil, deserializationErrorf("Did not find expected withdrawal event key is_exit")
		}
		isExit, ok := raw.(bool)
		if !ok {
			return nil, deserializationErrorf("Found non-bool is_exit %v", raw)
		}
		return NewWithdrawalEvent(validatorIndex, timestamp, balance, address, isExit), nil
	case KindBlock:
		blockNumber, err := requireInt(data, "block_number")
		if err != nil {
			return nil, err
		}
		subtype, _ := data["event_subtype"].(string)
		return NewBlockEvent(validatorIndex, timestamp, balance, address, blockNumber, Subtype(subtype) == SubtypeMevReward), nil
	}

	return nil, deserializationErrorf("Unknown staking event kind %s", kind)
}

func requireInt(data map[string]interface{}, key string) (int64, error) {
	raw, ok := data[key]
	if !ok {
		return 0, deserializationErrorf("Did not find expected staking event key %s", key)
	}
	value, ok := toInt(raw)
	if !ok {
		return 0, deserializationErrorf("Found non-int %s %v", key, raw)
	}
	return value, nil
}

func toInt(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		// NaN fails the first check, the bounds catch infinities
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		i, err := strconv.ParseInt(string(v), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func deserializeBalance(data map[string]interface{}) (Balance, error) {
	raw, ok := data["balance"].(map[string]interface{})
	if !ok {
		return Balance{}, deserializationErrorf("Did not find expected staking event key balance")
	}
	amount, err := toDecimal(raw["amount"], "amount")
	if err != nil {
		return Balance{}, err
	}
	usdValue, err := toDecimal(raw["usd_value"], "usd_value")
	if err != nil {
		return Balance{}, err
	}
	return Balance{Amount: amount, UsdValue: usdValue}, nil
}

func toDecimal(raw interface{}, key string) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, deserializationErrorf("Failed to deserialize %s %q: %v", key, v, err)
		}
		return d, nil
	case json.Number:
		return toDecimal(string(v), key)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, deserializationErrorf("Found non-finite %s %v", key, v)
		}
		return decimal.NewFromFloat(v), nil
	case nil:
		return decimal.Zero, deserializationErrorf("Did not find expected balance key %s", key)
	}
	return decimal.Zero, deserializationErrorf("Unexpected type %T for %s", raw, key)
}

func deserializeAddress(data map[string]interface{}) (common.Address, error) {
	raw, ok := data["location_label"]
	if !ok {
		return common.Address{}, deserializationErrorf("Did not find expected staking event key location_label")
	}
	value, ok := raw.(string)
	if !ok || !common.IsHexAddress(value) {
		return common.Address{}, deserializationErrorf("Invalid evm address %v", raw)
	}
	return common.HexToAddress(value), nil
}
