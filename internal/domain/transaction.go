package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates negative amount.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrAmountOutOfRange indicates an amount outside the configured deposit limits.
	ErrAmountOutOfRange = errors.New("amount outside allowed limits")
	// ErrDescriptionRequired indicates a missing description on an entry that must carry one.
	ErrDescriptionRequired = errors.New("description is required")
	// ErrUnknownTransactionKind indicates a kind outside the closed set.
	ErrUnknownTransactionKind = errors.New("unknown transaction kind")
)

// TransactionKind is the closed set of ledger entry kinds.
type TransactionKind string

// Every ledger entry carries exactly one of these kinds.
const (
	KindDeposit    TransactionKind = "DEPOSIT"
	KindWithdrawal TransactionKind = "WITHDRAWAL"
	KindAllowance  TransactionKind = "ALLOWANCE"
	KindGift       TransactionKind = "GIFT"
	KindInterest   TransactionKind = "INTEREST"
	KindCorrection TransactionKind = "CORRECTION"
)

// Valid reports whether k belongs to the closed kind set.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindAllowance, KindGift, KindInterest, KindCorrection:
		return true
	}

	return false
}

// Transaction is one immutable ledger entry: a signed money movement
// for an account. Entries are never updated or deleted; corrections
// are new entries.
//
// For any account ordered by CreatedAt, BalanceAfter of each entry
// equals BalanceAfter of the previous entry plus Amount.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	AccountID    int32           `json:"account_id"`
	Amount       string          `json:"amount"` // positive = credit, negative = debit
	Kind         TransactionKind `json:"kind"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	CreatedBy    string          `json:"created_by"`
	BalanceAfter string          `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateTransactionParams is the input data for appending one ledger entry.
type CreateTransactionParams struct {
	AccountID   int32           `json:"account_id"`
	Amount      string          `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	CreatedBy   string          `json:"created_by"`
}
