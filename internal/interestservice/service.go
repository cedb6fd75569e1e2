// Package interestservice credits interest on enabled accounts.
package interestservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/taschengeld/taschengeld/internal/domain"
	"github.com/taschengeld/taschengeld/pkg/moneypkg"
)

//go:generate mockgen -source service.go -destination service_mock.go -package interestservice

// AccountService provides the account operations the interest engine
// drives. Posting goes through the account service; the engine never
// touches the ledger directly.
type AccountService interface {
	ListInterestDue(ctx context.Context, now time.Time) ([]domain.Account, error)
	BalanceAt(ctx context.Context, accountID int32, at time.Time) (string, error)
	ApplyInterest(ctx context.Context, accountID int32, amount string, appliedAt time.Time) (domain.Transaction, error)
	MarkInterestApplied(ctx context.Context, accountID int32, appliedAt time.Time) error
}

// Service facilitates interest service layer logic.
type Service struct {
	accounts AccountService
}

// New returns interest service struct to credit due interest.
func New(accounts AccountService) *Service {
	return &Service{accounts: accounts}
}

// RunDuePass credits one period of interest on every account whose
// crediting period has elapsed as of now. Periods missed beyond the
// first are skipped: the marker jumps to now, so downtime never
// compounds multiple credits. A failed account is logged and retried
// on the next pass.
func (s *Service) RunDuePass(ctx context.Context, now time.Time) error {
	l := zerolog.Ctx(ctx)

	due, err := s.accounts.ListInterestDue(ctx, now)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	for _, account := range due {
		if err := s.credit(ctx, account, now); err != nil {
			l.Error().Err(err).Int32("account_id", account.ID).Send()
		}
	}

	return nil
}

// credit posts one period of interest on the account. The principal is
// the balance the account held when the period started.
func (s *Service) credit(ctx context.Context, account domain.Account, now time.Time) error {
	l := zerolog.Ctx(ctx)

	principal, err := s.accounts.BalanceAt(ctx, account.ID, account.InterestAppliedAt)
	if err != nil {
		return err
	}

	p, err := moneypkg.Parse(principal)
	if err != nil {
		return err
	}

	rate, err := decimal.NewFromString(account.InterestRate)
	if err != nil {
		return err
	}

	amount := moneypkg.Interest(p, rate, account.InterestInterval.PeriodsPerYear())

	// Zero or negative interest advances the marker without an entry.
	if !amount.IsPositive() {
		return s.accounts.MarkInterestApplied(ctx, account.ID, now)
	}

	if _, err := s.accounts.ApplyInterest(ctx, account.ID, moneypkg.Format(amount), now); err != nil {
		return err
	}

	l.Info().
		Int32("account_id", account.ID).
		Str("amount", moneypkg.Format(amount)).
		Msg("interest credited")

	return nil
}
