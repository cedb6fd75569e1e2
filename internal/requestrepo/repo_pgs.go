// Package requestrepo manages repository layer of money requests.
package requestrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/taschengeld/taschengeld/internal/domain"
	"github.com/taschengeld/taschengeld/pkg/dbpkg"
	"github.com/taschengeld/taschengeld/pkg/errorspkg"
)

// RepoPGS facilitates money request repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns money request RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const requestColumns = `
	id, account_id, amount, reason, status, response_note, responded_by, created_at, resolved_at`

func scanRequest(row *sql.Row) (domain.MoneyRequest, error) {
	var m domain.MoneyRequest

	err := row.Scan(
		&m.ID,
		&m.AccountID,
		&m.Amount,
		&m.Reason,
		&m.Status,
		&m.ResponseNote,
		&m.RespondedBy,
		&m.CreatedAt,
		&m.ResolvedAt,
	)

	return m, err
}

const createQuery = `
INSERT INTO
    money_requests (id, account_id, amount, reason)
VALUES
    ($1, $2, $3, $4)
RETURNING` + requestColumns

// Create creates a pending money request and then returns it.
func (r *RepoPGS) Create(ctx context.Context, accountID int32, amount, reason string) (domain.MoneyRequest, error) {
	l := zerolog.Ctx(ctx)

	m, err := scanRequest(r.db.QueryRowContext(ctx, createQuery, uuid.New(), accountID, amount, reason))
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "money_requests_account_id_fkey":
				return m, domain.ErrAccountNotFound
			case "money_requests_amount_check":
				return m, domain.ErrInvalidAmount
			}
		}

		return m, errorspkg.AsTransient(err)
	}

	return m, nil
}

const getQuery = `
SELECT` + requestColumns + `
FROM money_requests
WHERE id = $1
`

// Get returns the money request with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.MoneyRequest, error) {
	l := zerolog.Ctx(ctx)

	m, err := scanRequest(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return m, domain.ErrRequestNotFound
		}

		return m, errorspkg.AsTransient(err)
	}

	return m, nil
}

const listByAccountQuery = `
SELECT` + requestColumns + `
FROM money_requests
WHERE account_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

// ListByAccount returns the specified number of requests for the given
// account, newest first.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID int32, limit, offset int32) ([]domain.MoneyRequest, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, accountID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.AsTransient(err)
	}
	defer rows.Close()

	items := []domain.MoneyRequest{}

	for rows.Next() {
		var m domain.MoneyRequest
		if err := rows.Scan(
			&m.ID,
			&m.AccountID,
			&m.Amount,
			&m.Reason,
			&m.Status,
			&m.ResponseNote,
			&m.RespondedBy,
			&m.CreatedAt,
			&m.ResolvedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.AsTransient(err)
	}

	return items, nil
}

const resolveQuery = `
UPDATE money_requests
SET status = $2, response_note = $3, responded_by = $4, resolved_at = $5
WHERE id = $1 AND status = 'PENDING'
RETURNING` + requestColumns

// Resolve transitions a pending request into a terminal status. The
// pending-state filter is the optimistic concurrency check: when a
// concurrent caller resolved the request first, zero rows match and
// domain.ErrAlreadyResolved is returned.
func (r *RepoPGS) Resolve(ctx context.Context, id uuid.UUID, status domain.RequestStatus, note, respondedBy string, resolvedAt time.Time) (domain.MoneyRequest, error) {
	l := zerolog.Ctx(ctx)

	m, err := scanRequest(r.db.QueryRowContext(ctx, resolveQuery, id, status, note, respondedBy, resolvedAt))
	if err != nil {
		if err == sql.ErrNoRows {
			if _, getErr := r.Get(ctx, id); getErr != nil {
				return m, getErr
			}

			return m, domain.ErrAlreadyResolved
		}

		l.Error().Err(err).Send()

		return m, errorspkg.AsTransient(err)
	}

	return m, nil
}

const reopenQuery = `
UPDATE money_requests
SET status = 'PENDING', response_note = '', responded_by = '', resolved_at = NULL
WHERE id = $1
`

// Reopen puts a claimed request back to pending. Used to roll back an
// approval whose deposit failed so the approval can be retried.
func (r *RepoPGS) Reopen(ctx context.Context, id uuid.UUID) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, reopenQuery, id); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.AsTransient(err)
	}

	return nil
}
