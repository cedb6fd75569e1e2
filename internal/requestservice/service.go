// Package requestservice manages business logic layer of money requests.
package requestservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/taschengeld/taschengeld/internal/domain"
	"github.com/taschengeld/taschengeld/pkg/moneypkg"
)

// Repo provides data access layer interface needed by money request
// service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package requestservice
type Repo interface {
	Create(ctx context.Context, accountID int32, amount, reason string) (domain.MoneyRequest, error)
	Get(ctx context.Context, id uuid.UUID) (domain.MoneyRequest, error)
	ListByAccount(ctx context.Context, accountID int32, limit, offset int32) ([]domain.MoneyRequest, error)
	Resolve(ctx context.Context, id uuid.UUID, status domain.RequestStatus, note, respondedBy string, resolvedAt time.Time) (domain.MoneyRequest, error)
	Reopen(ctx context.Context, id uuid.UUID) error
}

// AccountService posts the deposit backing an approved request.
type AccountService interface {
	Deposit(ctx context.Context, accountID int32, amount, description string, actor domain.Actor) (domain.Transaction, error)
}

// Limits bounds requestable amounts. Shares the deposit bounds since an
// approved request becomes a deposit.
type Limits struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Service facilitates money request service layer logic.
type Service struct {
	repo     Repo
	accounts AccountService
	limits   Limits
	now      func() time.Time
}

// New returns money request service struct to manage money request
// business logic.
func New(repo Repo, accounts AccountService, limits Limits) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		limits:   limits,
		now:      time.Now,
	}
}

// Create files a pending money request. The amount must be positive,
// within the configured bounds, and accompanied by a reason.
func (s *Service) Create(ctx context.Context, accountID int32, amount, reason string) (domain.MoneyRequest, error) {
	l := zerolog.Ctx(ctx)

	if reason == "" {
		return domain.MoneyRequest{}, domain.ErrReasonRequired
	}

	d, err := moneypkg.ParsePositive(amount)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case moneypkg.ErrNotPositive:
			return domain.MoneyRequest{}, domain.ErrNegativeAmount
		default:
			return domain.MoneyRequest{}, domain.ErrInvalidAmount
		}
	}

	if !moneypkg.InRange(d, s.limits.Min, s.limits.Max) {
		return domain.MoneyRequest{}, domain.ErrAmountOutOfRange
	}

	return s.repo.Create(ctx, accountID, moneypkg.Format(d), reason)
}

// Get returns the money request with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.MoneyRequest, error) {
	return s.repo.Get(ctx, id)
}

// ListByAccount returns one page of the account's requests, newest first.
func (s *Service) ListByAccount(ctx context.Context, accountID int32, pageSize, pageID int32) ([]domain.MoneyRequest, error) {
	return s.repo.ListByAccount(ctx, accountID, pageSize, (pageID-1)*pageSize)
}

// Approve resolves a pending request and credits the requested amount.
// The resolve is the concurrency gate: a request already resolved by
// another caller fails with domain.ErrAlreadyResolved and nothing is
// credited. When the resolve succeeds but the credit fails, the request
// is reopened so the approval can be retried.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, note string, actor domain.Actor) (domain.MoneyRequest, error) {
	l := zerolog.Ctx(ctx)

	request, err := s.repo.Resolve(ctx, id, domain.RequestApproved, note, actor.Name, s.now().UTC())
	if err != nil {
		return domain.MoneyRequest{}, err
	}

	description := "money request: " + request.Reason

	if _, err := s.accounts.Deposit(ctx, request.AccountID, request.Amount, description, actor); err != nil {
		l.Error().Err(err).Str("request_id", id.String()).Msg("deposit failed, reopening request")

		if reopenErr := s.repo.Reopen(ctx, id); reopenErr != nil {
			l.Error().Err(reopenErr).Str("request_id", id.String()).Send()
		}

		return domain.MoneyRequest{}, err
	}

	return request, nil
}

// Reject resolves a pending request without crediting anything.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, note string, actor domain.Actor) (domain.MoneyRequest, error) {
	return s.repo.Resolve(ctx, id, domain.RequestRejected, note, actor.Name, s.now().UTC())
}

// Withdraw lets the requester retract a still-pending request.
func (s *Service) Withdraw(ctx context.Context, id uuid.UUID, actor domain.Actor) (domain.MoneyRequest, error) {
	return s.repo.Resolve(ctx, id, domain.RequestWithdrawn, "", actor.Name, s.now().UTC())
}
