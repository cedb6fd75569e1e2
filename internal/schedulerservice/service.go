// Package schedulerservice executes due recurring payments. It never
// writes ledger entries itself; posting goes through the account
// service so the balance invariant stays in one place.
package schedulerservice

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taschengeld/taschengeld/internal/domain"
	"github.com/taschengeld/taschengeld/pkg/schedulepkg"
)

//go:generate mockgen -source service.go -destination service_mock.go -package schedulerservice

// RecurringRepo provides the recurring payment data access needed by
// the scheduler.
type RecurringRepo interface {
	ListDue(ctx context.Context, asOf time.Time) ([]domain.RecurringPayment, error)
}

// AccountService posts the allowance entries backing due payments.
type AccountService interface {
	ApplyAllowance(ctx context.Context, payment domain.RecurringPayment, executedAt, nextExecutionAt time.Time) (domain.Transaction, error)
}

// Pool runs payment executions concurrently. Satisfied by *ants.Pool.
type Pool interface {
	Submit(task func()) error
}

// Service facilitates scheduler service layer logic.
type Service struct {
	recurring RecurringRepo
	accounts  AccountService
	pool      Pool
	policy    schedulepkg.Policy
}

// New returns scheduler service struct to execute due recurring payments.
func New(recurring RecurringRepo, accounts AccountService, pool Pool, policy schedulepkg.Policy) *Service {
	return &Service{
		recurring: recurring,
		accounts:  accounts,
		pool:      pool,
		policy:    policy,
	}
}

// RunDuePass executes every payment whose next execution date has been
// reached as of now. Payments run concurrently on the worker pool; the
// pass waits for all of them before returning. A failed payment is
// logged and left due, so the next pass retries it.
func (s *Service) RunDuePass(ctx context.Context, now time.Time) error {
	l := zerolog.Ctx(ctx)

	due, err := s.recurring.ListDue(ctx, now)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	if len(due) == 0 {
		return nil
	}

	l.Info().Int("due", len(due)).Msg("executing recurring payments")

	var wg sync.WaitGroup
	for i := range due {
		payment := due[i]

		wg.Add(1)
		task := func() {
			defer wg.Done()
			s.execute(ctx, payment, now)
		}

		if err := s.pool.Submit(task); err != nil {
			wg.Done()
			l.Error().Err(err).Int64("payment_id", payment.ID).Send()
		}
	}
	wg.Wait()

	return nil
}

func (s *Service) execute(ctx context.Context, payment domain.RecurringPayment, now time.Time) {
	l := zerolog.Ctx(ctx)

	sched := payment.Schedule()

	switch s.policy {
	case schedulepkg.PolicyPayAllMissed:
		// One entry per missed occurrence, each advancing the
		// schedule a single step.
		next := payment.NextExecutionAt
		for !next.After(schedulepkg.Date(now)) {
			after := sched.Advance(next)
			if _, err := s.accounts.ApplyAllowance(ctx, payment, next, after); err != nil {
				l.Error().Err(err).Int64("payment_id", payment.ID).Send()
				return
			}
			next = after
		}
	default:
		// Catch-up-once: a single entry regardless of how many
		// occurrences were missed, then skip to the first future date.
		next := sched.AdvancePast(payment.NextExecutionAt, now)
		if _, err := s.accounts.ApplyAllowance(ctx, payment, now, next); err != nil {
			l.Error().Err(err).Int64("payment_id", payment.ID).Send()
			return
		}
	}

	l.Info().Int64("payment_id", payment.ID).Int32("account_id", payment.AccountID).Msg("recurring payment executed")
}
