package staking

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	withdrawalAddress = common.HexToAddress("0x2B888954421b424C5D3D9Ce9bB67c9bD47537d12")
	feeRecipient      = common.HexToAddress("0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97")
)

type recordingPot struct {
	tracked      map[common.Address]bool
	acquisitions []Acquisition
}

func (p *recordingPot) AddAcquisition(acquisition Acquisition) {
	p.acquisitions = append(p.acquisitions, acquisition)
}

func (p *recordingPot) IsTrackedAccount(address common.Address) bool {
	return p.tracked[address]
}

func mkBalance(amount, usd string) Balance {
	return Balance{Amount: decimal.RequireFromString(amount), UsdValue: decimal.RequireFromString(usd)}
}

func TestWithdrawalEvent(t *testing.T) {
	event := NewWithdrawalEvent(1337, 1681392599000, mkBalance("1.5", "3000"), withdrawalAddress, false)

	assert.Equal(t, KindWithdrawal, event.Kind)
	assert.Equal(t, "eth2_withdrawal_1337_1681392599000", event.EventIdentifier)
	assert.Equal(t, 0, event.SequenceIndex)
	assert.Equal(t, SubtypeRemoveAsset, event.Subtype)
	assert.Equal(t, "Withdrew 1.5 ETH from validator 1337", event.Notes)
	assert.Equal(t, accounting.Staking, event.Type())
	assert.Equal(t, accounting.LocationEthereum, event.Location())
	assert.Equal(t, int64(1681392599), event.TimestampSeconds())
}

func TestBlockEvent(t *testing.T) {
	block := NewBlockEvent(42, 1681392599000, mkBalance("0.1", "200"), feeRecipient, 17000000, false)
	assert.Equal(t, "evm_1_block_17000000", block.EventIdentifier)
	assert.Equal(t, 0, block.SequenceIndex)
	assert.Equal(t, SubtypeBlockProduction, block.Subtype)
	assert.False(t, block.IsMevReward())
	assert.Equal(t,
		"Validator 42 produced block 17000000 with 0.1 ETH going to 0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97 as the block reward",
		block.Notes)

	mev := NewBlockEvent(42, 1681392599000, mkBalance("0.2", "400"), feeRecipient, 17000000, true)
	assert.Equal(t, 1, mev.SequenceIndex)
	assert.Equal(t, SubtypeMevReward, mev.Subtype)
	assert.True(t, mev.IsMevReward())
	assert.Contains(t, mev.Notes, "as the mev reward")
}

func TestProcessWithdrawal(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		isExit bool
		profit string
		notes  string
	}{
		{"partial withdrawal", "0.05", false, "0.05", "Withdrawal of 0.05 ETH from validator 7. Only 0.05 is profit"},
		{"exit", "32.5", true, "0.5", "Exit of 32.5 ETH from validator 7. Only 0.5 is profit"},
		{"exit of the deposit", "32", true, "0", "Exit of 32 ETH from validator 7. Only 0 is profit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pot := &recordingPot{}
			event := NewWithdrawalEvent(7, 1681392599000, mkBalance(tt.amount, "0"), withdrawalAddress, tt.isExit)

			assert.Equal(t, 1, event.Process(pot))
			require.Len(t, pot.acquisitions, 1)
			acquisition := pot.acquisitions[0]
			assert.True(t, decimal.RequireFromString(tt.profit).Equal(acquisition.Amount), "got %s", acquisition.Amount)
			assert.Equal(t, tt.notes, acquisition.Notes)
			assert.Equal(t, accounting.HistoryEvent, acquisition.EventType)
			assert.Equal(t, Asset, acquisition.Asset)
			assert.Equal(t, int64(1681392599), acquisition.Timestamp)
			assert.True(t, acquisition.Taxable)
		})
	}
}

func TestProcessBlock(t *testing.T) {
	event := NewBlockEvent(42, 1681392599000, mkBalance("0.2", "400"), feeRecipient, 17000000, true)

	untracked := &recordingPot{}
	assert.Equal(t, 1, event.Process(untracked))
	assert.Empty(t, untracked.acquisitions, "rewards of untracked recipients are skipped")

	tracked := &recordingPot{tracked: map[common.Address]bool{feeRecipient: true}}
	assert.Equal(t, 1, event.Process(tracked))
	require.Len(t, tracked.acquisitions, 1)
	assert.Equal(t, "Mev reward of 0.2 for block 17000000", tracked.acquisitions[0].Notes)
	assert.True(t, decimal.RequireFromString("0.2").Equal(tracked.acquisitions[0].Amount))
}

func TestSerializeRoundTrip(t *testing.T) {
	events := []*Event{
		NewWithdrawalEvent(1337, 1681392599000, mkBalance("32.1", "64200"), withdrawalAddress, true),
		NewBlockEvent(42, 1681392599000, mkBalance("0.2", "400"), feeRecipient, 17000000, true),
		NewBlockEvent(42, 1681392599000, mkBalance("0.1", "200"), feeRecipient, 17000001, false),
	}

	for _, event := range events {
		data := event.Serialize()
		assert.Equal(t, "staking", data["event_type"])
		assert.Equal(t, "ETH", data["asset"])

		decoded, err := Deserialize(event.Kind, data)
		require.NoError(t, err)
		assert.Equal(t, event, decoded)

		// and through JSON, where numbers come back as float64
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		var fromJSON map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &fromJSON))
		decoded, err = Deserialize(event.Kind, fromJSON)
		require.NoError(t, err)
		assert.Equal(t, event, decoded)
	}
}

func TestDeserializeErrors(t *testing.T) {
	valid := func() map[string]interface{} {
		return NewWithdrawalEvent(1, 1000, mkBalance("1", "2"), withdrawalAddress, false).Serialize()
	}

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing validator index", func(d map[string]interface{}) { delete(d, "validator_index") }},
		{"string validator index", func(d map[string]interface{}) { d["validator_index"] = "1" }},
		{"fractional validator index", func(d map[string]interface{}) { d["validator_index"] = 1.5 }},
		{"validator index out of int64 range", func(d map[string]interface{}) { d["validator_index"] = 1e300 }},
		{"negative timestamp out of int64 range", func(d map[string]interface{}) { d["timestamp"] = -1e19 }},
		{"infinite timestamp", func(d map[string]interface{}) { d["timestamp"] = math.Inf(1) }},
		{"infinite amount", func(d map[string]interface{}) {
			d["balance"] = map[string]interface{}{"amount": math.Inf(-1), "usd_value": "2"}
		}},
		{"missing address", func(d map[string]interface{}) { delete(d, "location_label") }},
		{"bad address", func(d map[string]interface{}) { d["location_label"] = "0xnothex" }},
		{"missing is_exit", func(d map[string]interface{}) { delete(d, "is_exit") }},
		{"missing balance", func(d map[string]interface{}) { delete(d, "balance") }},
		{"bad amount", func(d map[string]interface{}) {
			d["balance"] = map[string]interface{}{"amount": "one", "usd_value": "2"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := valid()
			tt.mutate(data)
			_, err := Deserialize(KindWithdrawal, data)

			var deserializationErr *DeserializationError
			assert.True(t, errors.As(err, &deserializationErr), "got %v", err)
		})
	}

	block := NewBlockEvent(1, 1000, mkBalance("1", "2"), feeRecipient, 10, false).Serialize()
	delete(block, "block_number")
	_, err := Deserialize(KindBlock, block)
	assert.NotNil(t, err)
}

func TestAppendToReport(t *testing.T) {
	data := []byte(`{
		"tracked_accounts": ["0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97"],
		"staking_events": [
			{"kind": "eth withdrawal event", "data": {
				"timestamp": 1681392599000, "validator_index": 7, "is_exit": true,
				"location_label": "0x2B888954421b424C5D3D9Ce9bB67c9bD47537d12",
				"balance": {"amount": "33", "usd_value": "66000"}}},
			{"kind": "eth block event", "data": {
				"timestamp": 1681392600000, "validator_index": 7, "block_number": 17000000,
				"event_subtype": "block production",
				"location_label": "0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97",
				"balance": {"amount": "0.1", "usd_value": "200"}}},
			{"kind": "eth block event", "data": {
				"timestamp": 1681392601000, "validator_index": 8, "block_number": 17000001,
				"location_label": "0x2B888954421b424C5D3D9Ce9bB67c9bD47537d12",
				"balance": {"amount": "0.1", "usd_value": "200"}}}
		]
	}`)

	events, tracked, err := ParseReportSection(data)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []common.Address{feeRecipient}, tracked)

	report := &accounting.Report{Events: make([]accounting.ProcessedEvent, 2)}
	added := AppendToReport(report, events, tracked)
	assert.Equal(t, 2, added, "the untracked block reward is skipped")
	require.Len(t, report.Events, 4)

	exit := report.Events[2]
	assert.Equal(t, 2, exit.Index)
	assert.True(t, decimal.NewFromInt(1).Equal(exit.TaxableAmount))
	assert.True(t, decimal.NewFromInt(2000).Equal(exit.Price))
	assert.True(t, decimal.NewFromInt(2000).Equal(exit.Pnl.Taxable))

	reward := report.Events[3]
	assert.Equal(t, 3, reward.Index)
	assert.Equal(t, "Block reward of 0.1 for block 17000000", reward.Notes)

	pnl, ok := report.Pnls.Get(accounting.HistoryEvent)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(2200).Equal(pnl.Taxable), "got %s", pnl.Taxable)
	assert.Nil(t, report.Validate())
}

func TestParseReportSectionUnknownKind(t *testing.T) {
	_, _, err := ParseReportSection([]byte(`{"staking_events": [{"kind": "eth deposit event", "data": {}}]}`))
	assert.NotNil(t, err)

	events, tracked, err := ParseReportSection([]byte(`{"events": []}`))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Empty(t, tracked)
}
