// Package accountrepo manages repository layer of accounts.
package accountrepo

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

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const accountColumns = `
	id, owner, balance, interest_enabled, interest_rate, interest_interval, interest_applied_at, created_at`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Owner,
		&a.Balance,
		&a.InterestEnabled,
		&a.InterestRate,
		&a.InterestInterval,
		&a.InterestAppliedAt,
		&a.CreatedAt,
	)

	return a, err
}

const createQuery = `
INSERT INTO
    accounts (owner, balance)
VALUES
    ($1, $2)
RETURNING` + accountColumns

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, owner, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, createQuery, owner, balance))
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_owner_key" {
				return a, domain.ErrOwnerAlreadyExists
			}
		}

		return a, errorspkg.AsTransient(err)
	}

	return a, nil
}

const getQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.AsTransient(err)
	}

	return a, nil
}

const getForUpdateQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE id = $1
FOR UPDATE
`

// GetForUpdate returns the account with the given id holding its row
// lock until the surrounding transaction ends. Every balance mutation
// for an account serializes on this lock.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getForUpdateQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.AsTransient(err)
	}

	return a, nil
}

const setBalanceQuery = `
UPDATE accounts
SET balance = $1
WHERE id = $2
`

// SetBalance rewrites the cached balance. Called only from the ledger
// append transaction while the row lock is held.
func (r *RepoPGS) SetBalance(ctx context.Context, id int32, balance string) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, setBalanceQuery, balance, id); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.AsTransient(err)
	}

	return nil
}

const listQuery = `
SELECT` + accountColumns + `
FROM accounts
ORDER BY id
LIMIT $1 OFFSET $2
`

// List returns the specified number of accounts.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Account, error) {
	return r.list(ctx, listQuery, limit, offset)
}

const listInterestEnabledQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE interest_enabled
ORDER BY id
`

// ListInterestEnabled returns every account with interest switched on.
func (r *RepoPGS) ListInterestEnabled(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, listInterestEnabledQuery)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.AsTransient(err)
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID,
			&a.Owner,
			&a.Balance,
			&a.InterestEnabled,
			&a.InterestRate,
			&a.InterestInterval,
			&a.InterestAppliedAt,
			&a.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.AsTransient(err)
	}

	return items, nil
}

const setInterestQuery = `
UPDATE accounts
SET interest_enabled = $1, interest_rate = $2, interest_interval = $3, interest_applied_at = $4
WHERE id = $5
RETURNING` + accountColumns

// SetInterest configures interest crediting for the account. The
// "last applied" marker restarts so the first period begins now.
func (r *RepoPGS) SetInterest(ctx context.Context, id int32, enabled bool, rate string, interval domain.InterestInterval, appliedAt time.Time) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, setInterestQuery, enabled, rate, interval, appliedAt, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_interest_rate_check" {
				return a, domain.ErrInvalidInterestRate
			}
		}

		return a, errorspkg.AsTransient(err)
	}

	return a, nil
}

const markInterestAppliedQuery = `
UPDATE accounts
SET interest_applied_at = $1
WHERE id = $2
`

// MarkInterestApplied advances the account's interest marker. Called
// from the ledger append transaction posting the interest entry, and
// directly when a zero-amount period needs no entry.
func (r *RepoPGS) MarkInterestApplied(ctx context.Context, id int32, appliedAt time.Time) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, markInterestAppliedQuery, appliedAt, id); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.AsTransient(err)
	}

	return nil
}
