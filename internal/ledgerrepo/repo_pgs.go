// Package ledgerrepo manages the append-only transaction ledger.
//
// Every balance mutation in the application funnels into the append
// transaction in this package: it takes the account's row lock, checks
// the non-negative balance invariant, inserts the immutable entry and
// rewrites the cached balance as one atomic unit. Scheduled variants
// additionally move the caller's "last executed" marker inside the
// same transaction.
package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/taschengeld/taschengeld/internal/accountrepo"
	"github.com/taschengeld/taschengeld/internal/domain"
	"github.com/taschengeld/taschengeld/internal/recurringrepo"
	"github.com/taschengeld/taschengeld/pkg/dbpkg"
	"github.com/taschengeld/taschengeld/pkg/errorspkg"
	"github.com/taschengeld/taschengeld/pkg/moneypkg"
)

// ErrReplayMismatch indicates a stored balance-after chain that does
// not reproduce under replay.
var ErrReplayMismatch = errors.New("ledger replay mismatch")

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns ledger RepoPGS scoped to an open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    entries (id, account_id, amount, kind, description, category, created_by, balance_after)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, account_id, amount, kind, description, category, created_by, balance_after, created_at
`

// create inserts one entry row. Only the append transactions call it.
func (r *RepoPGS) create(ctx context.Context, arg domain.CreateTransactionParams, balanceAfter string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		uuid.New(),
		arg.AccountID,
		arg.Amount,
		arg.Kind,
		arg.Description,
		arg.Category,
		arg.CreatedBy,
		balanceAfter,
	)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Amount,
		&t.Kind,
		&t.Description,
		&t.Category,
		&t.CreatedBy,
		&t.BalanceAfter,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return t, errorspkg.AsTransient(err)
	}

	return t, nil
}

// Append posts one ledger entry and updates the cached account balance
// within a single transaction.
//
// The account row lock serializes concurrent appends per account, so
// two racing withdrawals can never both read the same balance. An
// entry whose amount would drive the balance negative is rejected with
// domain.ErrInsufficientFunds and nothing is written.
func (r *RepoPGS) Append(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	return r.append(ctx, arg, nil)
}

// ScheduleAdvance carries the recurring payment marker movement that
// must commit together with an allowance entry.
type ScheduleAdvance struct {
	PaymentID       int64
	ExecutedAt      time.Time
	NextExecutionAt time.Time
}

// AppendScheduled posts an allowance entry and advances the recurring
// payment's execution markers in the same transaction. A failure on
// either side rolls back both, leaving the payment due for the next
// tick.
func (r *RepoPGS) AppendScheduled(ctx context.Context, arg domain.CreateTransactionParams, adv ScheduleAdvance) (domain.Transaction, error) {
	return r.append(ctx, arg, func(ctx context.Context, tx *sql.Tx) error {
		return recurringrepo.NewRepoPGS(tx).MarkExecuted(ctx, adv.PaymentID, adv.ExecutedAt, adv.NextExecutionAt)
	})
}

// AppendInterest posts an interest entry and advances the account's
// interest marker in the same transaction.
func (r *RepoPGS) AppendInterest(ctx context.Context, arg domain.CreateTransactionParams, appliedAt time.Time) (domain.Transaction, error) {
	return r.append(ctx, arg, func(ctx context.Context, tx *sql.Tx) error {
		return accountrepo.NewRepoPGS(tx).MarkInterestApplied(ctx, arg.AccountID, appliedAt)
	})
}

func (r *RepoPGS) append(ctx context.Context, arg domain.CreateTransactionParams, extra func(context.Context, *sql.Tx) error) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var result domain.Transaction

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		return result, domain.ErrInvalidAmount
	}

	if !arg.Kind.Valid() {
		return result, domain.ErrUnknownTransactionKind
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.AsTransient(err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.GetForUpdate(ctx, arg.AccountID)
	if err != nil {
		return result, err
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	after := balance.Add(amount)
	if after.IsNegative() {
		return result, domain.ErrInsufficientFunds
	}

	entryRepo := NewTxRepoPGS(tx)

	result, err = entryRepo.create(ctx, arg, moneypkg.Format(after))
	if err != nil {
		return result, err
	}

	if err := accountRepo.SetBalance(ctx, arg.AccountID, moneypkg.Format(after)); err != nil {
		return result, err
	}

	if extra != nil {
		if err := extra(ctx, tx); err != nil {
			return result, err
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.AsTransient(err)
	}

	return result, nil
}

const listQuery = `
SELECT id, account_id, amount, kind, description, category, created_by, balance_after, created_at FROM entries
WHERE account_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

// List returns the specified number of entries for the given account,
// newest first for display.
func (r *RepoPGS) List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Transaction, error) {
	return r.list(ctx, listQuery, accountID, limit, offset)
}

const listOldestFirstQuery = `
SELECT id, account_id, amount, kind, description, category, created_by, balance_after, created_at FROM entries
WHERE account_id = $1
ORDER BY created_at, id
`

// ListOldestFirst returns every entry of the account in creation
// order, the order balance replay runs in.
func (r *RepoPGS) ListOldestFirst(ctx context.Context, accountID int32) ([]domain.Transaction, error) {
	return r.list(ctx, listOldestFirstQuery, accountID)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.AsTransient(err)
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Amount,
			&t.Kind,
			&t.Description,
			&t.Category,
			&t.CreatedBy,
			&t.BalanceAfter,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.AsTransient(err)
	}

	return items, nil
}

const balanceAtQuery = `
SELECT balance_after FROM entries
WHERE account_id = $1 AND created_at <= $2
ORDER BY created_at DESC, id DESC
LIMIT 1
`

// BalanceAt returns the account balance as of the given instant: the
// balance after the latest entry created at or before it. An account
// without entries by then reports zero.
func (r *RepoPGS) BalanceAt(ctx context.Context, accountID int32, at time.Time) (string, error) {
	l := zerolog.Ctx(ctx)

	var balance string

	err := r.db.QueryRowContext(ctx, balanceAtQuery, accountID, at).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return moneypkg.Format(decimal.Zero), nil
		}

		l.Error().Err(err).Send()

		return "", errorspkg.AsTransient(err)
	}

	return balance, nil
}

// VerifyReplay replays the account's entries in creation order and
// checks that summing amounts reproduces every stored balance-after
// value.
func (r *RepoPGS) VerifyReplay(ctx context.Context, accountID int32) error {
	entries, err := r.ListOldestFirst(ctx, accountID)
	if err != nil {
		return err
	}

	running := decimal.Zero

	for _, e := range entries {
		amount, err := decimal.NewFromString(e.Amount)
		if err != nil {
			return errorspkg.ErrInternal
		}

		after, err := decimal.NewFromString(e.BalanceAfter)
		if err != nil {
			return errorspkg.ErrInternal
		}

		running = running.Add(amount)
		if !running.Equal(after) {
			return ErrReplayMismatch
		}
	}

	return nil
}
