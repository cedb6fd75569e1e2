package recurringrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taschengeld/taschengeld/internal/accountrepo"
	"github.com/taschengeld/taschengeld/internal/domain"
	"github.com/taschengeld/taschengeld/pkg/configpkg"
	"github.com/taschengeld/taschengeld/pkg/randompkg"
	"github.com/taschengeld/taschengeld/pkg/schedulepkg"
)

var (
	testRepo        *RepoPGS
	testAccountRepo *accountrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)
	testAccountRepo = accountrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomPayment(t *testing.T, next time.Time) domain.RecurringPayment {
	account, err := testAccountRepo.Create(context.Background(), randompkg.Owner(), "0.00")
	require.NoError(t, err)

	payment, err := testRepo.Create(context.Background(), domain.CreateRecurringPaymentParams{
		AccountID:   account.ID,
		Amount:      "10.00",
		Interval:    schedulepkg.IntervalWeekly,
		DayOfWeek:   time.Monday,
		Description: "weekly allowance",
	}, next)
	require.NoError(t, err)
	require.NotEmpty(t, payment)

	require.Equal(t, account.ID, payment.AccountID)
	require.Equal(t, "10.00", payment.Amount)
	require.Equal(t, schedulepkg.IntervalWeekly, payment.Interval)
	require.Equal(t, time.Monday, payment.DayOfWeek)
	require.True(t, payment.Active)
	require.True(t, payment.NextExecutionAt.Equal(next))
	require.False(t, payment.LastExecutedAt.Valid)

	return payment
}

func TestCreate(t *testing.T) {
	createRandomPayment(t, time.Date(2023, time.March, 6, 0, 0, 0, 0, time.UTC))
}

func TestCreateAccountNotFound(t *testing.T) {
	_, err := testRepo.Create(context.Background(), domain.CreateRecurringPaymentParams{
		AccountID: -1,
		Amount:    "10.00",
		Interval:  schedulepkg.IntervalWeekly,
	}, time.Now())
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestUpdate(t *testing.T) {
	payment := createRandomPayment(t, time.Date(2023, time.March, 6, 0, 0, 0, 0, time.UTC))

	next := time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)

	got, err := testRepo.Update(context.Background(), domain.UpdateRecurringPaymentParams{
		ID:          payment.ID,
		Amount:      "15.00",
		Interval:    schedulepkg.IntervalMonthly,
		DayOfMonth:  1,
		Description: "monthly allowance",
	}, next)
	require.NoError(t, err)

	require.Equal(t, "15.00", got.Amount)
	require.Equal(t, schedulepkg.IntervalMonthly, got.Interval)
	require.Equal(t, 1, got.DayOfMonth)
	require.Equal(t, "monthly allowance", got.Description)
	require.True(t, got.NextExecutionAt.Equal(next))
}

func TestSetActive(t *testing.T) {
	payment := createRandomPayment(t, time.Date(2023, time.March, 6, 0, 0, 0, 0, time.UTC))

	got, err := testRepo.SetActive(context.Background(), payment.ID, false)
	require.NoError(t, err)
	require.False(t, got.Active)

	// The record survives deactivation.
	got, err = testRepo.Get(context.Background(), payment.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
}

func TestListDue(t *testing.T) {
	asOf := time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC)

	duePayment := createRandomPayment(t, asOf.AddDate(0, 0, -1))
	futurePayment := createRandomPayment(t, asOf.AddDate(0, 0, 1))

	inactive := createRandomPayment(t, asOf.AddDate(0, 0, -1))
	_, err := testRepo.SetActive(context.Background(), inactive.ID, false)
	require.NoError(t, err)

	due, err := testRepo.ListDue(context.Background(), asOf)
	require.NoError(t, err)

	var foundDue, foundFuture, foundInactive bool

	for _, p := range due {
		switch p.ID {
		case duePayment.ID:
			foundDue = true
		case futurePayment.ID:
			foundFuture = true
		case inactive.ID:
			foundInactive = true
		}
	}

	require.True(t, foundDue)
	require.False(t, foundFuture)
	require.False(t, foundInactive)
}

func TestMarkExecuted(t *testing.T) {
	first := time.Date(2023, time.March, 6, 0, 0, 0, 0, time.UTC)
	payment := createRandomPayment(t, first)

	next := first.AddDate(0, 0, 7)

	require.NoError(t, testRepo.MarkExecuted(context.Background(), payment.ID, first, next))

	got, err := testRepo.Get(context.Background(), payment.ID)
	require.NoError(t, err)
	require.True(t, got.LastExecutedAt.Valid)
	require.True(t, got.LastExecutedAt.Time.Equal(first))
	require.True(t, got.NextExecutionAt.Equal(next))
}

func TestGetNotFound(t *testing.T) {
	_, err := testRepo.Get(context.Background(), -1)
	require.EqualError(t, err, domain.ErrPaymentNotFound.Error())
}
