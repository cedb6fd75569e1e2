// Package accountservice manages business logic layer of accounts.
//
// It is the only component allowed to mutate balances, and it does so
// exclusively by appending ledger entries. The scheduler and the
// interest engine go through this service rather than writing entries
// themselves.
package accountservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/taschengeld/taschengeld/internal/domain"
	"github.com/taschengeld/taschengeld/internal/ledgerrepo"
	"github.com/taschengeld/taschengeld/pkg/configpkg"
	"github.com/taschengeld/taschengeld/pkg/moneypkg"
)

// LedgerRepo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type LedgerRepo interface {
	Append(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error)
	AppendScheduled(ctx context.Context, arg domain.CreateTransactionParams, adv ledgerrepo.ScheduleAdvance) (domain.Transaction, error)
	AppendInterest(ctx context.Context, arg domain.CreateTransactionParams, appliedAt time.Time) (domain.Transaction, error)
	List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Transaction, error)
	BalanceAt(ctx context.Context, accountID int32, at time.Time) (string, error)
}

// AccountRepo provides account data access needed by account service layer.
type AccountRepo interface {
	Create(ctx context.Context, owner, balance string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Account, error)
	ListInterestEnabled(ctx context.Context) ([]domain.Account, error)
	SetInterest(ctx context.Context, id int32, enabled bool, rate string, interval domain.InterestInterval, appliedAt time.Time) (domain.Account, error)
	MarkInterestApplied(ctx context.Context, id int32, appliedAt time.Time) error
}

// Limits carries the caller-level amount bounds supplied by configuration.
type Limits struct {
	DepositMin      decimal.Decimal
	DepositMax      decimal.Decimal
	InterestRateMax decimal.Decimal
}

// LimitsFromConfig parses the configured amount bounds. Config
// validation guarantees the strings parse.
func LimitsFromConfig(c configpkg.Config) Limits {
	return Limits{
		DepositMin:      decimal.RequireFromString(c.DepositMin),
		DepositMax:      decimal.RequireFromString(c.DepositMax),
		InterestRateMax: decimal.RequireFromString(c.InterestRateMax),
	}
}

// Service facilitates account service layer logic.
type Service struct {
	ledger   LedgerRepo
	accounts AccountRepo
	limits   Limits
}

// New returns account service struct to manage account bussines logic.
func New(lr LedgerRepo, ar AccountRepo, limits Limits) *Service {
	return &Service{
		ledger:   lr,
		accounts: ar,
		limits:   limits,
	}
}

// CreateAccount creates an account with a zero balance for the given owner.
func (s *Service) CreateAccount(ctx context.Context, owner string) (domain.Account, error) {
	return s.accounts.Create(ctx, owner, "0.00")
}

// GetAccount returns the account for the given account ID.
func (s *Service) GetAccount(ctx context.Context, id int32) (domain.Account, error) {
	return s.accounts.Get(ctx, id)
}

// ListAccounts returns one page of accounts.
func (s *Service) ListAccounts(ctx context.Context, pageSize, pageID int32) ([]domain.Account, error) {
	return s.accounts.List(ctx, pageSize, (pageID-1)*pageSize)
}

// GetBalance returns the account's current balance.
func (s *Service) GetBalance(ctx context.Context, id int32) (string, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return "", err
	}

	return account.Balance, nil
}

// ListTransactions returns one page of the account's ledger entries,
// newest first.
func (s *Service) ListTransactions(ctx context.Context, accountID int32, pageSize, pageID int32) ([]domain.Transaction, error) {
	return s.ledger.List(ctx, accountID, pageSize, (pageID-1)*pageSize)
}

// Deposit credits the account. The amount must be positive and within
// the configured deposit limits.
func (s *Service) Deposit(ctx context.Context, accountID int32, amount, description string, actor domain.Actor) (domain.Transaction, error) {
	d, err := s.userAmount(ctx, amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	return s.ledger.Append(ctx, domain.CreateTransactionParams{
		AccountID:   accountID,
		Amount:      moneypkg.Format(d),
		Kind:        domain.KindDeposit,
		Description: description,
		CreatedBy:   actor.Name,
	})
}

// Gift credits the account the way a deposit does but records the
// sending relative as the gift's origin.
func (s *Service) Gift(ctx context.Context, accountID int32, amount, description string, actor domain.Actor) (domain.Transaction, error) {
	d, err := s.userAmount(ctx, amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	return s.ledger.Append(ctx, domain.CreateTransactionParams{
		AccountID:   accountID,
		Amount:      moneypkg.Format(d),
		Kind:        domain.KindGift,
		Description: description,
		CreatedBy:   actor.Name,
	})
}

// Withdraw debits the account. Fails with domain.ErrInsufficientFunds
// when the amount exceeds the current balance.
func (s *Service) Withdraw(ctx context.Context, accountID int32, amount, description, category string, actor domain.Actor) (domain.Transaction, error) {
	d, err := s.userAmount(ctx, amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	return s.ledger.Append(ctx, domain.CreateTransactionParams{
		AccountID:   accountID,
		Amount:      moneypkg.Format(d.Neg()),
		Kind:        domain.KindWithdrawal,
		Description: description,
		Category:    category,
		CreatedBy:   actor.Name,
	})
}

// Correct posts a manual admin adjustment. The amount may be negative;
// a negative correction is still subject to the non-negative balance
// rule. A description is mandatory for the audit trail.
func (s *Service) Correct(ctx context.Context, accountID int32, signedAmount, description string, actor domain.Actor) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	if description == "" {
		return domain.Transaction{}, domain.ErrDescriptionRequired
	}

	d, err := moneypkg.Parse(signedAmount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	if d.IsZero() {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	return s.ledger.Append(ctx, domain.CreateTransactionParams{
		AccountID:   accountID,
		Amount:      moneypkg.Format(d),
		Kind:        domain.KindCorrection,
		Description: description,
		CreatedBy:   actor.Name,
	})
}

// ApplyAllowance posts the recurring payment's configured amount and
// advances its execution markers in one transaction. Invoked only by
// the scheduler.
func (s *Service) ApplyAllowance(ctx context.Context, payment domain.RecurringPayment, executedAt, nextExecutionAt time.Time) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	d, err := moneypkg.ParsePositive(payment.Amount)
	if err != nil {
		l.Error().Err(err).Int64("payment_id", payment.ID).Send()
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	return s.ledger.AppendScheduled(ctx,
		domain.CreateTransactionParams{
			AccountID:   payment.AccountID,
			Amount:      moneypkg.Format(d),
			Kind:        domain.KindAllowance,
			Description: payment.Description,
			CreatedBy:   domain.SchedulerActor.Name,
		},
		ledgerrepo.ScheduleAdvance{
			PaymentID:       payment.ID,
			ExecutedAt:      executedAt,
			NextExecutionAt: nextExecutionAt,
		},
	)
}

// ApplyInterest posts a non-negative interest amount and advances the
// account's interest marker in one transaction. Invoked only by the
// interest engine.
func (s *Service) ApplyInterest(ctx context.Context, accountID int32, amount string, appliedAt time.Time) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	d, err := moneypkg.ParseNonNegative(amount)
	if err != nil {
		l.Error().Err(err).Int32("account_id", accountID).Send()
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	return s.ledger.AppendInterest(ctx,
		domain.CreateTransactionParams{
			AccountID: accountID,
			Amount:    moneypkg.Format(d),
			Kind:      domain.KindInterest,
			CreatedBy: domain.InterestActor.Name,
		},
		appliedAt,
	)
}

// SetInterest configures interest crediting for the account, bounding
// the annual rate by configuration.
func (s *Service) SetInterest(ctx context.Context, accountID int32, enabled bool, rate string, interval domain.InterestInterval) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	d, err := moneypkg.ParseNonNegative(rate)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidInterestRate
	}

	if d.GreaterThan(s.limits.InterestRateMax) {
		return domain.Account{}, domain.ErrInvalidInterestRate
	}

	if interval != domain.InterestMonthly && interval != domain.InterestYearly {
		return domain.Account{}, domain.ErrInvalidInterestRate
	}

	return s.accounts.SetInterest(ctx, accountID, enabled, moneypkg.Format(d), interval, time.Now().UTC())
}

// ListInterestDue returns the interest-enabled accounts whose crediting
// period has elapsed.
func (s *Service) ListInterestDue(ctx context.Context, now time.Time) ([]domain.Account, error) {
	accounts, err := s.accounts.ListInterestEnabled(ctx)
	if err != nil {
		return nil, err
	}

	due := accounts[:0]

	for _, a := range accounts {
		if a.InterestDue(now) {
			due = append(due, a)
		}
	}

	return due, nil
}

// BalanceAt returns the account balance at the given instant,
// reconstructed from the ledger.
func (s *Service) BalanceAt(ctx context.Context, accountID int32, at time.Time) (string, error) {
	return s.ledger.BalanceAt(ctx, accountID, at)
}

// MarkInterestApplied advances the interest marker without posting an
// entry. Used for periods whose computed interest rounds to zero.
func (s *Service) MarkInterestApplied(ctx context.Context, accountID int32, appliedAt time.Time) error {
	return s.accounts.MarkInterestApplied(ctx, accountID, appliedAt)
}

// userAmount validates a user-supplied credit/debit amount against the
// configured limits.
func (s *Service) userAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	d, err := moneypkg.ParsePositive(amount)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case moneypkg.ErrNotPositive:
			return decimal.Zero, domain.ErrNegativeAmount
		default:
			return decimal.Zero, domain.ErrInvalidAmount
		}
	}

	if !moneypkg.InRange(d, s.limits.DepositMin, s.limits.DepositMax) {
		return decimal.Zero, domain.ErrAmountOutOfRange
	}

	return d, nil
}
