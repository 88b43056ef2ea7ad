package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned when an address cannot be parsed in any
	// of its representations.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount is returned for negative or malformed amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance is returned when the sender cannot cover the
	// requested transfer amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// GasShortageError is returned when the sender's native-coin balance cannot
// cover the estimated resource fee. Amounts are in display units.
type GasShortageError struct {
	Available string
	Required  string
}

func (e *GasShortageError) Error() string {
	return fmt.Sprintf("insufficient gas: have %s, need %s", e.Available, e.Required)
}

// SimulationFailedError means the pre-broadcast simulation reported failure.
// Broadcasting anyway would certainly fail and burn the sender's resources.
type SimulationFailedError struct {
	Code    string
	Message string
}

func (e *SimulationFailedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("simulation failed: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("simulation failed: %s", e.Code)
}

// BuildFailedError means the node declined to assemble an unsigned transaction.
type BuildFailedError struct {
	Code    string
	Message string
}

func (e *BuildFailedError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("transaction build failed: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("transaction build failed: %s", e.Message)
}

// BroadcastError carries the chain-reported reason for a rejected broadcast.
type BroadcastError struct {
	Code   string
	Reason string
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("broadcast rejected: %s: %s", e.Code, e.Reason)
}

// ExecutionFailedError means the transaction landed on-chain but its logic
// reverted. A new transaction is required; retrying the same one is pointless.
type ExecutionFailedError struct {
	Reason string
}

func (e *ExecutionFailedError) Error() string {
	return fmt.Sprintf("transaction execution failed: %s", e.Reason)
}
