package accountrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taschengeld/taschengeld/internal/domain"
	"github.com/taschengeld/taschengeld/pkg/configpkg"
	"github.com/taschengeld/taschengeld/pkg/randompkg"
)

var testRepo *RepoPGS

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

	os.Exit(m.Run())
}

func createRandomAccount(t *testing.T) domain.Account {
	owner := randompkg.Owner()

	account, err := testRepo.Create(context.Background(), owner, "0.00")
	require.NoError(t, err)
	require.NotEmpty(t, account)

	require.Equal(t, owner, account.Owner)
	require.Equal(t, "0.00", account.Balance)
	require.False(t, account.InterestEnabled)
	require.NotZero(t, account.ID)
	require.NotZero(t, account.CreatedAt)

	return account
}

func TestCreate(t *testing.T) {
	createRandomAccount(t)
}

func TestCreateDuplicateOwner(t *testing.T) {
	account := createRandomAccount(t)

	_, err := testRepo.Create(context.Background(), account.Owner, "0.00")
	require.EqualError(t, err, domain.ErrOwnerAlreadyExists.Error())
}

func TestGet(t *testing.T) {
	want := createRandomAccount(t)

	got, err := testRepo.Get(context.Background(), want.ID)
	require.NoError(t, err)

	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Owner, got.Owner)
	require.Equal(t, want.Balance, got.Balance)
	require.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Second)
}

func TestGetNotFound(t *testing.T) {
	_, err := testRepo.Get(context.Background(), -1)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestSetBalance(t *testing.T) {
	account := createRandomAccount(t)

	require.NoError(t, testRepo.SetBalance(context.Background(), account.ID, "123.45"))

	got, err := testRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, "123.45", got.Balance)
}

func TestSetInterest(t *testing.T) {
	account := createRandomAccount(t)

	appliedAt := time.Now().UTC()

	got, err := testRepo.SetInterest(context.Background(), account.ID, true, "2.00", domain.InterestMonthly, appliedAt)
	require.NoError(t, err)

	require.True(t, got.InterestEnabled)
	require.Equal(t, "2.00", got.InterestRate)
	require.Equal(t, domain.InterestMonthly, got.InterestInterval)
	require.WithinDuration(t, appliedAt, got.InterestAppliedAt, time.Second)
}

func TestSetInterestRateOutOfBounds(t *testing.T) {
	account := createRandomAccount(t)

	_, err := testRepo.SetInterest(context.Background(), account.ID, true, "150.00", domain.InterestMonthly, time.Now().UTC())
	require.EqualError(t, err, domain.ErrInvalidInterestRate.Error())
}

func TestListInterestEnabled(t *testing.T) {
	enabled := createRandomAccount(t)
	disabled := createRandomAccount(t)

	_, err := testRepo.SetInterest(context.Background(), enabled.ID, true, "2.00", domain.InterestMonthly, time.Now().UTC())
	require.NoError(t, err)

	accounts, err := testRepo.ListInterestEnabled(context.Background())
	require.NoError(t, err)

	var foundEnabled, foundDisabled bool

	for _, a := range accounts {
		require.True(t, a.InterestEnabled)

		if a.ID == enabled.ID {
			foundEnabled = true
		}

		if a.ID == disabled.ID {
			foundDisabled = true
		}
	}

	require.True(t, foundEnabled)
	require.False(t, foundDisabled)
}

func TestMarkInterestApplied(t *testing.T) {
	account := createRandomAccount(t)

	appliedAt := time.Now().UTC().Add(time.Hour)

	require.NoError(t, testRepo.MarkInterestApplied(context.Background(), account.ID, appliedAt))

	got, err := testRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.WithinDuration(t, appliedAt, got.InterestAppliedAt, time.Second)
}
