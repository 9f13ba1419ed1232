package transactionservice

import (
	"context"
	"testing"
	"time"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/bezell-bank/ledger-core/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func randomAccount(id int64, balance string) domain.Account {
	return domain.Account{
		ID:            id,
		CustomerID:    1,
		AccountNumber: randompkg.AccountNumber(),
		AccountType:   domain.TypeChecking,
		Balance:       decimal.RequireFromString(balance),
		Status:        domain.StatusActive,
		OpenedAt:      time.Now().Truncate(time.Second).UTC(),
	}
}

func TestDeposit(t *testing.T) {
	testAccount := randomAccount(1, "1000")
	testAmount := decimal.RequireFromString("100")

	testResult := domain.DepositTxResult{
		Account: testAccount,
		Transaction: domain.Transaction{
			ID:           1,
			AccountID:    testAccount.ID,
			Type:         domain.TxDeposit,
			Amount:       testAmount,
			BalanceAfter: testAccount.Balance.Add(testAmount),
			Reference:    "ref-1",
		},
	}

	testCases := []struct {
		name          string
		amount        decimal.Decimal
		buildStubs    func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory)
		checkResponse func(res domain.DepositTxResult, err error)
	}{
		{
			name:   "Zero amount",
			amount: decimal.Zero,
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().DepositTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:   "Negative amount",
			amount: decimal.RequireFromString("-100"),
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().DepositTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:   "Repo error",
			amount: testAmount,
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().DepositTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.DepositTxResult{}, domain.ErrAccountFrozen)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountFrozen.Error())
			},
		},
		{
			name:   "OK",
			amount: testAmount,
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().DepositTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(testResult, nil)
				publisher.EXPECT().Publish(gomock.Any(), gomock.Eq(TopicTransactionCompleted), gomock.Any()).
					Times(1).
					Return(nil)
				directory.EXPECT().EmailByAccountNumber(gomock.Any(), gomock.Eq(testAccount.AccountNumber)).
					Times(1).
					Return("owner@bezell.test", nil)
				dispatcher.EXPECT().Enqueue(gomock.Any(), gomock.Eq("owner@bezell.test"), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
			},
		},
		{
			name:   "Enqueue failure does not fail operation",
			amount: testAmount,
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().DepositTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(testResult, nil)
				publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(errorspkg.ErrInternal)
				directory.EXPECT().EmailByAccountNumber(gomock.Any(), gomock.Any()).
					Times(1).
					Return("owner@bezell.test", nil)
				dispatcher.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			dispatcher := NewMockDispatcher(ctrl)
			publisher := NewMockPublisher(ctrl)
			directory := NewMockDirectory(ctrl)
			tc.buildStubs(repo, dispatcher, publisher, directory)

			service := New(repo, dispatcher, publisher, directory)
			ctx := zerolog.New(nil).WithContext(context.Background())

			res, err := service.Deposit(ctx, testAccount.AccountNumber, tc.amount, "test deposit")
			tc.checkResponse(res, err)
		})
	}
}

func TestWithdraw(t *testing.T) {
	testAccount := randomAccount(1, "1000")
	testAmount := decimal.RequireFromString("100")

	testResult := domain.DepositTxResult{
		Account: testAccount,
		Transaction: domain.Transaction{
			ID:           1,
			AccountID:    testAccount.ID,
			Type:         domain.TxWithdrawal,
			Amount:       testAmount,
			BalanceAfter: testAccount.Balance.Sub(testAmount),
			Reference:    "ref-2",
		},
	}

	testCases := []struct {
		name          string
		amount        decimal.Decimal
		buildStubs    func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory)
		checkResponse func(res domain.DepositTxResult, err error)
	}{
		{
			name:   "Invalid amount",
			amount: decimal.Zero,
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().WithdrawTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:   "Insufficient funds",
			amount: testAmount,
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().WithdrawTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.DepositTxResult{}, domain.ErrInsufficientFunds)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientFunds.Error())
			},
		},
		{
			name:   "OK",
			amount: testAmount,
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().WithdrawTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(testResult, nil)
				publisher.EXPECT().Publish(gomock.Any(), gomock.Eq(TopicTransactionCompleted), gomock.Any()).
					Times(1).
					Return(nil)
				directory.EXPECT().EmailByAccountNumber(gomock.Any(), gomock.Eq(testAccount.AccountNumber)).
					Times(1).
					Return("owner@bezell.test", nil)
				dispatcher.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			dispatcher := NewMockDispatcher(ctrl)
			publisher := NewMockPublisher(ctrl)
			directory := NewMockDirectory(ctrl)
			tc.buildStubs(repo, dispatcher, publisher, directory)

			service := New(repo, dispatcher, publisher, directory)
			ctx := zerolog.New(nil).WithContext(context.Background())

			res, err := service.Withdraw(ctx, testAccount.AccountNumber, tc.amount, "test withdrawal")
			tc.checkResponse(res, err)
		})
	}
}

func TestTransfer(t *testing.T) {
	testAccount1 := randomAccount(1, "1000")
	testAccount2 := randomAccount(2, "1000")
	testAmount := decimal.RequireFromString("100")

	testResult := domain.TransferTxResult{
		FromAccount: testAccount1,
		ToAccount:   testAccount2,
		DebitLeg: domain.Transaction{
			ID:           1,
			AccountID:    testAccount1.ID,
			Type:         domain.TxTransferDebit,
			Amount:       testAmount,
			BalanceAfter: testAccount1.Balance.Sub(testAmount),
			Reference:    "ref-3",
		},
		CreditLeg: domain.Transaction{
			ID:           2,
			AccountID:    testAccount2.ID,
			Type:         domain.TxTransferCredit,
			Amount:       testAmount,
			BalanceAfter: testAccount2.Balance.Add(testAmount),
			Reference:    "ref-3",
		},
	}

	type input struct {
		from   string
		to     string
		amount decimal.Decimal
	}

	testCases := []struct {
		name          string
		input         input
		buildStubs    func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory)
		checkResponse func(res domain.TransferTxResult, err error)
	}{
		{
			name: "Invalid amount",
			input: input{
				from:   testAccount1.AccountNumber,
				to:     testAccount2.AccountNumber,
				amount: decimal.RequireFromString("-1"),
			},
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name: "Same account",
			input: input{
				from:   testAccount1.AccountNumber,
				to:     testAccount1.AccountNumber,
				amount: testAmount,
			},
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrSameAccount.Error())
			},
		},
		{
			name: "Busy",
			input: input{
				from:   testAccount1.AccountNumber,
				to:     testAccount2.AccountNumber,
				amount: testAmount,
			},
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, errorspkg.ErrBusy)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrBusy.Error())
			},
		},
		{
			name: "OK",
			input: input{
				from:   testAccount1.AccountNumber,
				to:     testAccount2.AccountNumber,
				amount: testAmount,
			},
			buildStubs: func(repo *MockRepo, dispatcher *MockDispatcher, publisher *MockPublisher, directory *MockDirectory) {
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(testResult, nil)
				publisher.EXPECT().Publish(gomock.Any(), gomock.Eq(TopicTransactionCompleted), gomock.Any()).
					Times(1).
					Return(nil)
				directory.EXPECT().EmailByAccountNumber(gomock.Any(), gomock.Eq(testAccount1.AccountNumber)).
					Times(1).
					Return("owner@bezell.test", nil)
				dispatcher.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			dispatcher := NewMockDispatcher(ctrl)
			publisher := NewMockPublisher(ctrl)
			directory := NewMockDirectory(ctrl)
			tc.buildStubs(repo, dispatcher, publisher, directory)

			service := New(repo, dispatcher, publisher, directory)
			ctx := zerolog.New(nil).WithContext(context.Background())

			res, err := service.Transfer(ctx, tc.input.from, tc.input.to, tc.input.amount, "test transfer")
			tc.checkResponse(res, err)
		})
	}
}
