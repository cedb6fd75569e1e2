// Package recurringservice manages business logic layer of recurring payments.
package recurringservice

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/taschengeld/taschengeld/internal/domain"
	"github.com/taschengeld/taschengeld/pkg/moneypkg"
)

// Repo provides data access layer interface needed by recurring payment service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package recurringservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateRecurringPaymentParams, nextExecutionAt time.Time) (domain.RecurringPayment, error)
	Get(ctx context.Context, id int64) (domain.RecurringPayment, error)
	Update(ctx context.Context, arg domain.UpdateRecurringPaymentParams, nextExecutionAt time.Time) (domain.RecurringPayment, error)
	SetActive(ctx context.Context, id int64, active bool) (domain.RecurringPayment, error)
	ListByAccount(ctx context.Context, accountID int32) ([]domain.RecurringPayment, error)
}

// Service facilitates recurring payment service layer logic.
//
// Every mutation recomputes the payment's next occurrence, so a
// malformed schedule never reaches the background runner.
type Service struct {
	repo     Repo
	validate *validator.Validate
	now      func() time.Time
}

// New returns recurring payment service struct.
func New(r Repo) *Service {
	return &Service{
		repo:     r,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Create validates the schedule, computes the first occurrence and
// stores the payment. Without an explicit start the first occurrence
// is the first schedule match strictly after now.
func (s *Service) Create(ctx context.Context, arg domain.CreateRecurringPaymentParams) (domain.RecurringPayment, error) {
	l := zerolog.Ctx(ctx)

	if err := s.validate.Struct(arg); err != nil {
		l.Info().Err(err).Send()
		return domain.RecurringPayment{}, domain.ErrInvalidSchedule
	}

	amount, err := moneypkg.ParsePositive(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.RecurringPayment{}, domain.ErrInvalidAmount
	}

	arg.Amount = moneypkg.Format(amount)

	sched := domain.RecurringPayment{
		Interval:   arg.Interval,
		DayOfWeek:  arg.DayOfWeek,
		DayOfMonth: arg.DayOfMonth,
	}.Schedule()

	if err := sched.Validate(); err != nil {
		l.Info().Err(err).Send()
		return domain.RecurringPayment{}, domain.ErrInvalidSchedule
	}

	start := arg.StartAfter
	if start.IsZero() {
		start = s.now()
	}

	return s.repo.Create(ctx, arg, sched.NextAfter(start))
}

// Update rewrites the payment's amount and schedule, recomputing the
// next occurrence from now under the edited schedule.
func (s *Service) Update(ctx context.Context, arg domain.UpdateRecurringPaymentParams) (domain.RecurringPayment, error) {
	l := zerolog.Ctx(ctx)

	if err := s.validate.Struct(arg); err != nil {
		l.Info().Err(err).Send()
		return domain.RecurringPayment{}, domain.ErrInvalidSchedule
	}

	amount, err := moneypkg.ParsePositive(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.RecurringPayment{}, domain.ErrInvalidAmount
	}

	arg.Amount = moneypkg.Format(amount)

	sched := domain.RecurringPayment{
		Interval:   arg.Interval,
		DayOfWeek:  arg.DayOfWeek,
		DayOfMonth: arg.DayOfMonth,
	}.Schedule()

	if err := sched.Validate(); err != nil {
		l.Info().Err(err).Send()
		return domain.RecurringPayment{}, domain.ErrInvalidSchedule
	}

	return s.repo.Update(ctx, arg, sched.NextAfter(s.now()))
}

// Deactivate switches the payment off. The record is kept and can be
// reactivated later.
func (s *Service) Deactivate(ctx context.Context, id int64) (domain.RecurringPayment, error) {
	return s.repo.SetActive(ctx, id, false)
}

// Activate switches a previously deactivated payment back on.
func (s *Service) Activate(ctx context.Context, id int64) (domain.RecurringPayment, error) {
	return s.repo.SetActive(ctx, id, true)
}

// Get returns the recurring payment with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.RecurringPayment, error) {
	return s.repo.Get(ctx, id)
}

// ListByAccount returns all recurring payments of one account.
func (s *Service) ListByAccount(ctx context.Context, accountID int32) ([]domain.RecurringPayment, error) {
	return s.repo.ListByAccount(ctx, accountID)
}
