// Package staking holds the ETH staking events (withdrawals and produced blocks) and
// how they feed acquisitions into an accounting pot.
package staking

import (
	"fmt"

	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const Asset = "ETH"

// ValidatorDeposit is the stake of a single validator, a withdrawal above it returns the deposit
var ValidatorDeposit = decimal.NewFromInt(32)

type Kind int

const (
	KindWithdrawal Kind = iota
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindWithdrawal:
		return "eth withdrawal event"
	case KindBlock:
		return "eth block event"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Subtype string

const (
	SubtypeRemoveAsset     Subtype = "remove asset"
	SubtypeMevReward       Subtype = "mev reward"
	SubtypeBlockProduction Subtype = "block production"
)

type Balance struct {
	Amount   decimal.Decimal
	UsdValue decimal.Decimal
}

// Event is either a validator withdrawal or a block produced by a validator, Kind tells
// which of IsExit and BlockNumber is meaningful.
type Event struct {
	Kind            Kind
	EventIdentifier string
	SequenceIndex   int
	// Timestamp is in milliseconds
	Timestamp      int64
	Subtype        Subtype
	ValidatorIndex int64
	Balance        Balance
	// LocationLabel is the withdrawal address or the fee recipient
	LocationLabel common.Address
	Notes         string

	IsExit      bool
	BlockNumber int64
}

func NewWithdrawalEvent(validatorIndex, timestamp int64, balance Balance, withdrawalAddress common.Address, isExit bool) *Event {
	return &Event{
		Kind:            KindWithdrawal,
		EventIdentifier: fmt.Sprintf("eth2_withdrawal_%d_%d", validatorIndex, timestamp),
		SequenceIndex:   0,
		Timestamp:       timestamp,
		Subtype:         SubtypeRemoveAsset,
		ValidatorIndex:  validatorIndex,
		Balance:         balance,
		LocationLabel:   withdrawalAddress,
		Notes:           fmt.Sprintf("Withdrew %s ETH from validator %d", balance.Amount, validatorIndex),
		IsExit:          isExit,
	}
}

func NewBlockEvent(validatorIndex, timestamp int64, balance Balance, feeRecipient common.Address, blockNumber int64, isMevReward bool) *Event {
	event := &Event{
		Kind:            KindBlock,
		EventIdentifier: fmt.Sprintf("evm_1_block_%d", blockNumber),
		Timestamp:       timestamp,
		ValidatorIndex:  validatorIndex,
		Balance:         balance,
		LocationLabel:   feeRecipient,
		BlockNumber:     blockNumber,
	}

	name := "block reward"
	event.Subtype = SubtypeBlockProduction
	if isMevReward {
		name = "mev reward"
		event.SequenceIndex = 1
		event.Subtype = SubtypeMevReward
	}
	event.Notes = fmt.Sprintf("Validator %d produced block %d with %s ETH going to %s as the %s",
		validatorIndex, blockNumber, balance.Amount, feeRecipient.Hex(), name)

	return event
}

func (e *Event) Type() accounting.EventType {
	return accounting.Staking
}

func (e *Event) Location() accounting.Location {
	return accounting.LocationEthereum
}

func (e *Event) TimestampSeconds() int64 {
	return e.Timestamp / 1000
}

func (e *Event) IsMevReward() bool {
	return e.Kind == KindBlock && e.Subtype == SubtypeMevReward
}

// Acquisition is what a staking event adds to the pot
type Acquisition struct {
	EventType accounting.EventType
	Notes     string
	Location  accounting.Location
	// Timestamp is in seconds
	Timestamp int64
	Asset     string
	Amount    decimal.Decimal
	Taxable   bool
}

type AccountingPot interface {
	AddAcquisition(acquisition Acquisition)
	IsTrackedAccount(address common.Address) bool
}

// Process adds the event to the pot and returns the number of consumed events
func (e *Event) Process(pot AccountingPot) int {
	switch e.Kind {
	case KindWithdrawal:
		e.processWithdrawal(pot)
	case KindBlock:
		e.processBlock(pot)
	}
	return 1
}

// withdrawals over the deposit only count what exceeds it as profit. Double deposits
// for one validator are not detected.
func (e *Event) processWithdrawal(pot AccountingPot) {
	profit := e.Balance.Amount
	if e.Balance.Amount.GreaterThanOrEqual(ValidatorDeposit) {
		profit = e.Balance.Amount.Sub(ValidatorDeposit)
	}

	name := "Withdrawal"
	if e.IsExit {
		name = "Exit"
	}

	pot.AddAcquisition(Acquisition{
		EventType: accounting.HistoryEvent,
		Notes:     fmt.Sprintf("%s of %s ETH from validator %d. Only %s is profit", name, e.Balance.Amount, e.ValidatorIndex, profit),
		Location:  e.Location(),
		Timestamp: e.TimestampSeconds(),
		Asset:     Asset,
		Amount:    profit,
		Taxable:   true,
	})
}

func (e *Event) processBlock(pot AccountingPot) {
	// rewards going to someone else are not ours to account
	if !pot.IsTrackedAccount(e.LocationLabel) {
		return
	}

	name := "Block reward"
	if e.IsMevReward() {
		name = "Mev reward"
	}

	pot.AddAcquisition(Acquisition{
		EventType: accounting.HistoryEvent,
		Notes:     fmt.Sprintf("%s of %s for block %d", name, e.Balance.Amount, e.BlockNumber),
		Location:  e.Location(),
		Timestamp: e.TimestampSeconds(),
		Asset:     Asset,
		Amount:    e.Balance.Amount,
		Taxable:   true,
	})
}
