package domain

import (
	"database/sql"
	"errors"
	"time"

	"github.com/taschengeld/taschengeld/pkg/schedulepkg"
)

var (
	// ErrPaymentNotFound indicates that the recurring payment is not found.
	ErrPaymentNotFound = errors.New("recurring payment not found")
	// ErrInvalidSchedule indicates a malformed interval/day configuration.
	ErrInvalidSchedule = errors.New("invalid payment schedule")
)

// RecurringPayment is a declarative standing order crediting an
// account on a schedule. Deactivated payments are kept, never deleted.
//
// NextExecutionAt is always a present-or-future occurrence consistent
// with the schedule; it is recomputed on every edit and advanced
// atomically with the allowance entry it triggers.
type RecurringPayment struct {
	ID              int64                `json:"id"`
	AccountID       int32                `json:"account_id"`
	Amount          string               `json:"amount"`
	Interval        schedulepkg.Interval `json:"interval"`
	DayOfWeek       time.Weekday         `json:"day_of_week"`
	DayOfMonth      int                  `json:"day_of_month"`
	Description     string               `json:"description,omitempty"`
	Active          bool                 `json:"active"`
	NextExecutionAt time.Time            `json:"next_execution_at"`
	LastExecutedAt  sql.NullTime         `json:"last_executed_at"`
	CreatedAt       time.Time            `json:"created_at"`
}

// Schedule assembles the payment's declarative schedule.
func (p RecurringPayment) Schedule() schedulepkg.Schedule {
	return schedulepkg.Schedule{
		Interval:   p.Interval,
		DayOfWeek:  p.DayOfWeek,
		DayOfMonth: p.DayOfMonth,
	}
}

// CreateRecurringPaymentParams is the input data for creating a recurring payment.
type CreateRecurringPaymentParams struct {
	AccountID   int32                `json:"account_id"`
	Amount      string               `json:"amount" validate:"required"`
	Interval    schedulepkg.Interval `json:"interval" validate:"required,oneof=WEEKLY BIWEEKLY MONTHLY"`
	DayOfWeek   time.Weekday         `json:"day_of_week" validate:"min=0,max=6"`
	DayOfMonth  int                  `json:"day_of_month" validate:"min=0,max=28"`
	Description string               `json:"description"`
	StartAfter  time.Time            `json:"start_after"` // zero value means "now"
}

// UpdateRecurringPaymentParams is the input data for editing a
// recurring payment's amount or schedule.
type UpdateRecurringPaymentParams struct {
	ID          int64                `json:"id"`
	Amount      string               `json:"amount" validate:"required"`
	Interval    schedulepkg.Interval `json:"interval" validate:"required,oneof=WEEKLY BIWEEKLY MONTHLY"`
	DayOfWeek   time.Weekday         `json:"day_of_week" validate:"min=0,max=6"`
	DayOfMonth  int                  `json:"day_of_month" validate:"min=0,max=28"`
	Description string               `json:"description"`
}
