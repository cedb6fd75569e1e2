package requestservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/taschengeld/taschengeld/internal/domain"
)

var (
	testLimits = Limits{
		Min: decimal.RequireFromString("0.01"),
		Max: decimal.RequireFromString("10000"),
	}
	resolveNow = time.Date(2023, time.March, 15, 10, 0, 0, 0, time.UTC)
	parent     = domain.Actor{Name: "dad", Role: domain.RoleParent}
)

func newTestService(t *testing.T) (*Service, *MockRepo, *MockAccountService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	accounts := NewMockAccountService(ctrl)

	service := New(repo, accounts, testLimits)
	service.now = func() time.Time { return resolveNow }

	return service, repo, accounts
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name          string
		accountID     int32
		amount        string
		reason        string
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.MoneyRequest, err error)
	}{
		{
			name:      "OK",
			accountID: 1,
			amount:    "25.5",
			reason:    "new football",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(int32(1)), gomock.Eq("25.50"), gomock.Eq("new football")).
					Times(1).
					Return(domain.MoneyRequest{Amount: "25.50", Status: domain.RequestPending}, nil)
			},
			checkResponse: func(res domain.MoneyRequest, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.RequestPending, res.Status)
			},
		},
		{
			name:      "MissingReason",
			accountID: 1,
			amount:    "25.50",
			reason:    "",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.MoneyRequest, err error) {
				require.EqualError(t, err, domain.ErrReasonRequired.Error())
			},
		},
		{
			name:      "NegativeAmount",
			accountID: 1,
			amount:    "-5",
			reason:    "sweets",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.MoneyRequest, err error) {
				require.EqualError(t, err, domain.ErrNegativeAmount.Error())
			},
		},
		{
			name:      "AboveLimit",
			accountID: 1,
			amount:    "10000.01",
			reason:    "pony",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.MoneyRequest, err error) {
				require.EqualError(t, err, domain.ErrAmountOutOfRange.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, repo, _ := newTestService(t)
			tc.buildStubs(repo)

			res, err := service.Create(context.Background(), tc.accountID, tc.amount, tc.reason)
			tc.checkResponse(res, err)
		})
	}
}

func TestApproveDepositsOnce(t *testing.T) {
	service, repo, accounts := newTestService(t)

	id := uuid.New()
	resolved := domain.MoneyRequest{
		ID:        id,
		AccountID: 1,
		Amount:    "25.50",
		Reason:    "new football",
		Status:    domain.RequestApproved,
	}

	repo.EXPECT().
		Resolve(gomock.Any(), gomock.Eq(id), gomock.Eq(domain.RequestApproved),
			gomock.Eq("ok"), gomock.Eq(parent.Name), gomock.Eq(resolveNow)).
		Times(1).
		Return(resolved, nil)
	accounts.EXPECT().
		Deposit(gomock.Any(), gomock.Eq(int32(1)), gomock.Eq("25.50"),
			gomock.Eq("money request: new football"), gomock.Eq(parent)).
		Times(1).
		Return(domain.Transaction{}, nil)

	res, err := service.Approve(context.Background(), id, "ok", parent)
	require.NoError(t, err)
	require.Equal(t, domain.RequestApproved, res.Status)
}

func TestApproveAlreadyResolved(t *testing.T) {
	service, repo, accounts := newTestService(t)

	id := uuid.New()

	repo.EXPECT().
		Resolve(gomock.Any(), gomock.Eq(id), gomock.Eq(domain.RequestApproved),
			gomock.Any(), gomock.Any(), gomock.Any()).
		Times(1).
		Return(domain.MoneyRequest{}, domain.ErrAlreadyResolved)

	// Losing the race must not credit anything.
	accounts.EXPECT().
		Deposit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	_, err := service.Approve(context.Background(), id, "ok", parent)
	require.EqualError(t, err, domain.ErrAlreadyResolved.Error())
}

func TestApproveReopensOnDepositFailure(t *testing.T) {
	service, repo, accounts := newTestService(t)

	id := uuid.New()
	resolved := domain.MoneyRequest{
		ID:        id,
		AccountID: 1,
		Amount:    "25.50",
		Reason:    "new football",
		Status:    domain.RequestApproved,
	}

	repo.EXPECT().
		Resolve(gomock.Any(), gomock.Eq(id), gomock.Eq(domain.RequestApproved),
			gomock.Any(), gomock.Any(), gomock.Any()).
		Times(1).
		Return(resolved, nil)
	accounts.EXPECT().
		Deposit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(1).
		Return(domain.Transaction{}, domain.ErrAccountNotFound)
	repo.EXPECT().
		Reopen(gomock.Any(), gomock.Eq(id)).
		Times(1).
		Return(nil)

	_, err := service.Approve(context.Background(), id, "ok", parent)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestRejectDoesNotDeposit(t *testing.T) {
	service, repo, accounts := newTestService(t)

	id := uuid.New()

	repo.EXPECT().
		Resolve(gomock.Any(), gomock.Eq(id), gomock.Eq(domain.RequestRejected),
			gomock.Eq("not this month"), gomock.Eq(parent.Name), gomock.Eq(resolveNow)).
		Times(1).
		Return(domain.MoneyRequest{ID: id, Status: domain.RequestRejected}, nil)
	accounts.EXPECT().
		Deposit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	res, err := service.Reject(context.Background(), id, "not this month", parent)
	require.NoError(t, err)
	require.Equal(t, domain.RequestRejected, res.Status)
}

func TestWithdraw(t *testing.T) {
	service, repo, _ := newTestService(t)

	id := uuid.New()
	child := domain.Actor{Name: "mia", Role: domain.RoleChild}

	repo.EXPECT().
		Resolve(gomock.Any(), gomock.Eq(id), gomock.Eq(domain.RequestWithdrawn),
			gomock.Eq(""), gomock.Eq(child.Name), gomock.Eq(resolveNow)).
		Times(1).
		Return(domain.MoneyRequest{ID: id, Status: domain.RequestWithdrawn}, nil)

	res, err := service.Withdraw(context.Background(), id, child)
	require.NoError(t, err)
	require.Equal(t, domain.RequestWithdrawn, res.Status)
}
