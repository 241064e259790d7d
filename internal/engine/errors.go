package engine

import (
	"errors"
	"fmt"
)

// The ledger's failure taxonomy is closed: every operation either
// succeeds or returns one of these kinds (persistence failures pass
// through wrapped).
var (
	ErrQuestNotFound     = errors.New("quest not found")
	ErrAlreadyCompleted  = errors.New("quest already completed today")
	ErrNotCompleted      = errors.New("quest not completed today")
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrInvalidInput      = errors.New("invalid input")
	ErrImportInvalid     = errors.New("import document invalid")
)

// InvalidInputError carries the field that failed validation. It
// matches errors.Is(err, ErrInvalidInput).
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e InvalidInputError) Unwrap() error { return ErrInvalidInput }

// RedemptionError explains why a coin redemption was refused.
type RedemptionError struct {
	Coins  int
	Reason string
}

func (e RedemptionError) Error() string {
	return fmt.Sprintf("cannot redeem %d coins: %s", e.Coins, e.Reason)
}

func (e RedemptionError) Unwrap() error { return ErrInvalidInput }
