package schedulerservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/taschengeld/taschengeld/internal/domain"
	"github.com/taschengeld/taschengeld/pkg/schedulepkg"
)

// syncPool runs submitted tasks inline so tests stay deterministic.
type syncPool struct{}

func (syncPool) Submit(task func()) error {
	task()
	return nil
}

// 2023-03-27 is a Monday.
var tickNow = time.Date(2023, time.March, 27, 9, 0, 0, 0, time.UTC)

func weeklyPayment(next time.Time) domain.RecurringPayment {
	return domain.RecurringPayment{
		ID:              1,
		AccountID:       7,
		Amount:          "10.00",
		Interval:        schedulepkg.IntervalWeekly,
		DayOfWeek:       time.Monday,
		Description:     "weekly allowance",
		Active:          true,
		NextExecutionAt: next,
	}
}

func TestRunDuePassNothingDue(t *testing.T) {
	ctrl := gomock.NewController(t)

	recurring := NewMockRecurringRepo(ctrl)
	accounts := NewMockAccountService(ctrl)

	recurring.EXPECT().
		ListDue(gomock.Any(), gomock.Eq(tickNow)).
		Times(1).
		Return(nil, nil)
	accounts.EXPECT().
		ApplyAllowance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	service := New(recurring, accounts, syncPool{}, schedulepkg.PolicyCatchUpOnce)
	require.NoError(t, service.RunDuePass(context.Background(), tickNow))
}

func TestRunDuePassCatchUpOnce(t *testing.T) {
	ctrl := gomock.NewController(t)

	recurring := NewMockRecurringRepo(ctrl)
	accounts := NewMockAccountService(ctrl)

	// Three Mondays missed; a single payment is made and the schedule
	// fast-forwards to the first Monday after today.
	stale := time.Date(2023, time.March, 6, 0, 0, 0, 0, time.UTC)
	payment := weeklyPayment(stale)
	wantNext := time.Date(2023, time.April, 3, 0, 0, 0, 0, time.UTC)

	recurring.EXPECT().
		ListDue(gomock.Any(), gomock.Eq(tickNow)).
		Times(1).
		Return([]domain.RecurringPayment{payment}, nil)
	accounts.EXPECT().
		ApplyAllowance(gomock.Any(), gomock.Eq(payment), gomock.Eq(tickNow), gomock.Eq(wantNext)).
		Times(1).
		Return(domain.Transaction{}, nil)

	service := New(recurring, accounts, syncPool{}, schedulepkg.PolicyCatchUpOnce)
	require.NoError(t, service.RunDuePass(context.Background(), tickNow))
}

func TestRunDuePassPayAllMissed(t *testing.T) {
	ctrl := gomock.NewController(t)

	recurring := NewMockRecurringRepo(ctrl)
	accounts := NewMockAccountService(ctrl)

	stale := time.Date(2023, time.March, 13, 0, 0, 0, 0, time.UTC)
	payment := weeklyPayment(stale)

	recurring.EXPECT().
		ListDue(gomock.Any(), gomock.Eq(tickNow)).
		Times(1).
		Return([]domain.RecurringPayment{payment}, nil)

	// One entry per missed Monday: Mar 13, Mar 20, Mar 27.
	occurrences := []time.Time{
		time.Date(2023, time.March, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.March, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.March, 27, 0, 0, 0, 0, time.UTC),
	}
	for _, occ := range occurrences {
		after := occ.AddDate(0, 0, 7)
		accounts.EXPECT().
			ApplyAllowance(gomock.Any(), gomock.Eq(payment), gomock.Eq(occ), gomock.Eq(after)).
			Times(1).
			Return(domain.Transaction{}, nil)
	}

	service := New(recurring, accounts, syncPool{}, schedulepkg.PolicyPayAllMissed)
	require.NoError(t, service.RunDuePass(context.Background(), tickNow))
}

func TestRunDuePassFailureLeavesPaymentDue(t *testing.T) {
	ctrl := gomock.NewController(t)

	recurring := NewMockRecurringRepo(ctrl)
	accounts := NewMockAccountService(ctrl)

	payment := weeklyPayment(time.Date(2023, time.March, 27, 0, 0, 0, 0, time.UTC))

	recurring.EXPECT().
		ListDue(gomock.Any(), gomock.Eq(tickNow)).
		Times(1).
		Return([]domain.RecurringPayment{payment}, nil)
	accounts.EXPECT().
		ApplyAllowance(gomock.Any(), gomock.Eq(payment), gomock.Any(), gomock.Any()).
		Times(1).
		Return(domain.Transaction{}, domain.ErrInsufficientFunds)

	service := New(recurring, accounts, syncPool{}, schedulepkg.PolicyCatchUpOnce)

	// The pass itself succeeds; the payment stays due for the next tick.
	require.NoError(t, service.RunDuePass(context.Background(), tickNow))
}

func TestRunDuePassListError(t *testing.T) {
	ctrl := gomock.NewController(t)

	recurring := NewMockRecurringRepo(ctrl)
	accounts := NewMockAccountService(ctrl)

	recurring.EXPECT().
		ListDue(gomock.Any(), gomock.Any()).
		Times(1).
		Return(nil, domain.ErrAccountNotFound)
	accounts.EXPECT().
		ApplyAllowance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	service := New(recurring, accounts, syncPool{}, schedulepkg.PolicyCatchUpOnce)
	require.Error(t, service.RunDuePass(context.Background(), tickNow))
}
