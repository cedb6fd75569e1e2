// Package recurringrepo manages repository layer of recurring payments.
package recurringrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/taschengeld/taschengeld/internal/domain"
	"github.com/taschengeld/taschengeld/pkg/dbpkg"
	"github.com/taschengeld/taschengeld/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates recurring payment repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns recurring payment RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const paymentColumns = `
	id, account_id, amount, interval_kind, day_of_week, day_of_month, description, active, next_execution_at, last_executed_at, created_at`

func scanPayment(row *sql.Row) (domain.RecurringPayment, error) {
	var p domain.RecurringPayment

	err := row.Scan(
		&p.ID,
		&p.AccountID,
		&p.Amount,
		&p.Interval,
		&p.DayOfWeek,
		&p.DayOfMonth,
		&p.Description,
		&p.Active,
		&p.NextExecutionAt,
		&p.LastExecutedAt,
		&p.CreatedAt,
	)

	return p, err
}

const createQuery = `
INSERT INTO
    recurring_payments (account_id, amount, interval_kind, day_of_week, day_of_month, description, next_execution_at)
VALUES
    ($1, $2, $3, $4, $5, $6, $7)
RETURNING` + paymentColumns

// Create creates the recurring payment and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateRecurringPaymentParams, nextExecutionAt time.Time) (domain.RecurringPayment, error) {
	l := zerolog.Ctx(ctx)

	p, err := scanPayment(r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.Amount,
		arg.Interval,
		arg.DayOfWeek,
		arg.DayOfMonth,
		arg.Description,
		nextExecutionAt,
	))

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "recurring_payments_account_id_fkey":
				return p, domain.ErrAccountNotFound
			case "recurring_payments_amount_check":
				return p, domain.ErrInvalidAmount
			case "recurring_payments_day_of_month_check":
				return p, domain.ErrInvalidSchedule
			}
		}

		return p, errorspkg.AsTransient(err)
	}

	return p, nil
}

const getQuery = `
SELECT` + paymentColumns + `
FROM recurring_payments
WHERE id = $1
`

// Get returns the recurring payment with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.RecurringPayment, error) {
	l := zerolog.Ctx(ctx)

	p, err := scanPayment(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return p, domain.ErrPaymentNotFound
		}

		return p, errorspkg.AsTransient(err)
	}

	return p, nil
}

const updateQuery = `
UPDATE recurring_payments
SET amount = $1, interval_kind = $2, day_of_week = $3, day_of_month = $4, description = $5, next_execution_at = $6
WHERE id = $7
RETURNING` + paymentColumns

// Update rewrites a payment's amount, schedule and recomputed next
// occurrence.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateRecurringPaymentParams, nextExecutionAt time.Time) (domain.RecurringPayment, error) {
	l := zerolog.Ctx(ctx)

	p, err := scanPayment(r.db.QueryRowContext(ctx, updateQuery,
		arg.Amount,
		arg.Interval,
		arg.DayOfWeek,
		arg.DayOfMonth,
		arg.Description,
		nextExecutionAt,
		arg.ID,
	))

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return p, domain.ErrPaymentNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "recurring_payments_amount_check":
				return p, domain.ErrInvalidAmount
			case "recurring_payments_day_of_month_check":
				return p, domain.ErrInvalidSchedule
			}
		}

		return p, errorspkg.AsTransient(err)
	}

	return p, nil
}

const setActiveQuery = `
UPDATE recurring_payments
SET active = $1
WHERE id = $2
RETURNING` + paymentColumns

// SetActive toggles a payment. Deactivated payments are kept for
// history and can be switched back on later.
func (r *RepoPGS) SetActive(ctx context.Context, id int64, active bool) (domain.RecurringPayment, error) {
	l := zerolog.Ctx(ctx)

	p, err := scanPayment(r.db.QueryRowContext(ctx, setActiveQuery, active, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return p, domain.ErrPaymentNotFound
		}

		return p, errorspkg.AsTransient(err)
	}

	return p, nil
}

const listByAccountQuery = `
SELECT` + paymentColumns + `
FROM recurring_payments
WHERE account_id = $1
ORDER BY id
`

// ListByAccount returns all recurring payments of one account,
// including deactivated ones.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID int32) ([]domain.RecurringPayment, error) {
	return r.list(ctx, listByAccountQuery, accountID)
}

const listDueQuery = `
SELECT` + paymentColumns + `
FROM recurring_payments
WHERE active AND next_execution_at <= $1
ORDER BY id
`

// ListDue returns the active payments whose next occurrence is on or
// before the given date.
func (r *RepoPGS) ListDue(ctx context.Context, asOf time.Time) ([]domain.RecurringPayment, error) {
	return r.list(ctx, listDueQuery, asOf)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.RecurringPayment, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.AsTransient(err)
	}
	defer rows.Close()

	items := []domain.RecurringPayment{}

	for rows.Next() {
		var p domain.RecurringPayment
		if err := rows.Scan(
			&p.ID,
			&p.AccountID,
			&p.Amount,
			&p.Interval,
			&p.DayOfWeek,
			&p.DayOfMonth,
			&p.Description,
			&p.Active,
			&p.NextExecutionAt,
			&p.LastExecutedAt,
			&p.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.AsTransient(err)
	}

	return items, nil
}

const markExecutedQuery = `
UPDATE recurring_payments
SET last_executed_at = $1, next_execution_at = $2
WHERE id = $3
`

// MarkExecuted advances the execution markers. Called only from the
// ledger append transaction posting the allowance entry, so the
// markers and the entry commit or roll back together.
func (r *RepoPGS) MarkExecuted(ctx context.Context, id int64, executedAt, nextExecutionAt time.Time) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, markExecutedQuery, executedAt, nextExecutionAt, id); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.AsTransient(err)
	}

	return nil
}
