package domain

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRequestNotFound indicates that the money request is not found.
	ErrRequestNotFound = errors.New("money request not found")
	// ErrAlreadyResolved indicates that the money request left the pending state earlier.
	ErrAlreadyResolved = errors.New("money request already resolved")
	// ErrReasonRequired indicates a money request without a reason.
	ErrReasonRequired = errors.New("reason is required")
)

// RequestStatus is the lifecycle state of a money request.
type RequestStatus string

// A request starts pending; the three other states are terminal.
const (
	RequestPending   RequestStatus = "PENDING"
	RequestApproved  RequestStatus = "APPROVED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestWithdrawn RequestStatus = "WITHDRAWN"
)

// Terminal reports whether the status permits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected || s == RequestWithdrawn
}

// MoneyRequest is a child-initiated ask for funds requiring parent
// approval before any money moves. Approval triggers a deposit on the
// child's account.
type MoneyRequest struct {
	ID           uuid.UUID     `json:"id"`
	AccountID    int32         `json:"account_id"`
	Amount       string        `json:"amount"`
	Reason       string        `json:"reason"`
	Status       RequestStatus `json:"status"`
	ResponseNote string        `json:"response_note,omitempty"`
	RespondedBy  string        `json:"responded_by,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	ResolvedAt   sql.NullTime  `json:"resolved_at"`
}
