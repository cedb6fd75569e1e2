// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrOwnerAlreadyExists indicates that the owner already has an account.
	ErrOwnerAlreadyExists = errors.New("account owner already exists")
	// ErrInsufficientFunds indicates that a debit would take the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidInterestRate indicates an annual interest rate outside the allowed bounds.
	ErrInvalidInterestRate = errors.New("interest rate must lie between 0 and 100")
)

// InterestInterval is the crediting period for account interest.
type InterestInterval string

// Supported interest crediting intervals.
const (
	InterestMonthly InterestInterval = "MONTHLY"
	InterestYearly  InterestInterval = "YEARLY"
)

// PeriodsPerYear returns how many crediting periods the interval packs
// into one year.
func (i InterestInterval) PeriodsPerYear() int {
	if i == InterestYearly {
		return 1
	}

	return 12
}

// Account holds one child's balance data.
//
// Balance is a cached value always equal to the BalanceAfter of the
// account's most recent ledger entry; it is mutated only by appending
// entries.
type Account struct {
	ID                int32            `json:"id"`
	Owner             string           `json:"owner"`
	Balance           string           `json:"balance"`
	InterestEnabled   bool             `json:"interest_enabled"`
	InterestRate      string           `json:"interest_rate"` // annual rate in percent
	InterestInterval  InterestInterval `json:"interest_interval"`
	InterestAppliedAt time.Time        `json:"interest_applied_at"`
	CreatedAt         time.Time        `json:"created_at"`
}

// InterestDue reports whether a full crediting period has elapsed
// since interest was last applied.
func (a Account) InterestDue(now time.Time) bool {
	if !a.InterestEnabled {
		return false
	}

	var next time.Time
	if a.InterestInterval == InterestYearly {
		next = a.InterestAppliedAt.AddDate(1, 0, 0)
	} else {
		next = a.InterestAppliedAt.AddDate(0, 1, 0)
	}

	return !next.After(now)
}
