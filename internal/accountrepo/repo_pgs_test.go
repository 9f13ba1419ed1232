package accountrepo

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/bezell-bank/ledger-core/internal/customerrepo"
	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/configpkg"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/bezell-bank/ledger-core/pkg/passpkg"
	"github.com/bezell-bank/ledger-core/pkg/randompkg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

var (
	testDB           *sql.DB
	testRepo         *RepoPGS
	testCustomerRepo *customerrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err = sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)
	testCustomerRepo = customerrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomCustomer(t *testing.T) domain.Customer {
	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	arg := domain.CreateCustomerParams{
		FirstName:      randompkg.Name(),
		LastName:       randompkg.Name(),
		Email:          randompkg.Email(),
		Phone:          fmt.Sprintf("+1555%07d", randompkg.Intn(10_000_000)),
		HashedPassword: hashedPassword,
	}

	customer, err := testCustomerRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, customer)

	return customer
}

func createRandomAccount(t *testing.T, customer domain.Customer) domain.Account {
	arg := domain.CreateAccountParams{
		CustomerID:    customer.ID,
		AccountNumber: randompkg.AccountNumber(),
		AccountType:   domain.TypeSavings,
		InterestRate:  decimal.NewFromFloat(2.5),
	}

	account, err := testRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, account)

	require.Equal(t, arg.CustomerID, account.CustomerID)
	require.Equal(t, arg.AccountNumber, account.AccountNumber)
	require.Equal(t, arg.AccountType, account.AccountType)
	require.True(t, account.Balance.IsZero())
	require.Equal(t, domain.StatusActive, account.Status)
	require.Nil(t, account.LastTransactionAt)

	require.NotZero(t, account.ID)
	require.NotZero(t, account.OpenedAt)

	return account
}

func TestCreate(t *testing.T) {
	customer := createRandomCustomer(t)
	createRandomAccount(t, customer)
}

func TestCreateConstraintViolations(t *testing.T) {
	customer := createRandomCustomer(t)
	account := createRandomAccount(t, customer)

	testCases := []struct {
		name    string
		arg     domain.CreateAccountParams
		wantErr error
	}{
		{
			name: "Duplicate account number",
			arg: domain.CreateAccountParams{
				CustomerID:    customer.ID,
				AccountNumber: account.AccountNumber,
				AccountType:   domain.TypeSavings,
				InterestRate:  decimal.NewFromFloat(2.5),
			},
			wantErr: domain.ErrDuplicateAccountNumber,
		},
		{
			name: "Unknown customer",
			arg: domain.CreateAccountParams{
				CustomerID:    -1,
				AccountNumber: randompkg.AccountNumber(),
				AccountType:   domain.TypeSavings,
				InterestRate:  decimal.NewFromFloat(2.5),
			},
			wantErr: domain.ErrCustomerNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			_, err := testRepo.Create(context.Background(), tc.arg)
			require.EqualError(t, err, tc.wantErr.Error())
		})
	}
}

func TestGet(t *testing.T) {
	customer := createRandomCustomer(t)
	account := createRandomAccount(t, customer)

	got, err := testRepo.Get(context.Background(), account.AccountNumber)
	require.NoError(t, err)

	require.Equal(t, account.ID, got.ID)
	require.Equal(t, account.AccountNumber, got.AccountNumber)
	require.True(t, account.Balance.Equal(got.Balance))
	require.WithinDuration(t, account.OpenedAt, got.OpenedAt, time.Second)
}

func TestGetNotFound(t *testing.T) {
	_, err := testRepo.Get(context.Background(), "0000000000")
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestListByCustomerEmail(t *testing.T) {
	customer := createRandomCustomer(t)

	want := []domain.Account{
		createRandomAccount(t, customer),
		createRandomAccount(t, customer),
		createRandomAccount(t, customer),
	}

	accounts, err := testRepo.ListByCustomerEmail(context.Background(), customer.Email)
	require.NoError(t, err)
	require.Len(t, accounts, len(want))

	for i, account := range accounts {
		require.Equal(t, want[i].ID, account.ID)
		require.Equal(t, want[i].AccountNumber, account.AccountNumber)
	}
}

func TestSetStatus(t *testing.T) {
	customer := createRandomCustomer(t)
	account := createRandomAccount(t, customer)

	frozen, err := testRepo.SetStatus(context.Background(), account.AccountNumber, domain.StatusFrozen)
	require.NoError(t, err)
	require.Equal(t, domain.StatusFrozen, frozen.Status)

	active, err := testRepo.SetStatus(context.Background(), account.AccountNumber, domain.StatusActive)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, active.Status)

	_, err = testRepo.SetStatus(context.Background(), "0000000000", domain.StatusFrozen)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestGetForUpdateBusy(t *testing.T) {
	customer := createRandomCustomer(t)
	account := createRandomAccount(t, customer)

	ctx := context.Background()

	tx1, err := testDB.BeginTx(ctx, nil)
	require.NoError(t, err)

	defer func() { _ = tx1.Rollback() }()

	_, err = GetForUpdate(ctx, tx1, account.AccountNumber)
	require.NoError(t, err)

	// A second unit of work must fail fast instead of queueing.
	tx2, err := testDB.BeginTx(ctx, nil)
	require.NoError(t, err)

	defer func() { _ = tx2.Rollback() }()

	_, err = GetForUpdate(ctx, tx2, account.AccountNumber)
	require.EqualError(t, err, errorspkg.ErrBusy.Error())
}

func TestListInactive(t *testing.T) {
	customer := createRandomCustomer(t)
	account := createRandomAccount(t, customer)

	// A cutoff in the future classifies the fresh zero-history account as
	// inactive since opening.
	cutoff := time.Now().Add(time.Hour)

	inactive, err := testRepo.ListInactive(context.Background(), cutoff)
	require.NoError(t, err)

	var found *domain.InactiveAccount

	for i := range inactive {
		if inactive[i].Account.ID == account.ID {
			found = &inactive[i]
			break
		}
	}

	require.NotNil(t, found)
	require.True(t, found.NeverTransacted)
	require.Equal(t, customer.Email, found.Email)
	require.WithinDuration(t, account.OpenedAt, found.InactiveSince, time.Second)

	// Frozen accounts are not reported.
	_, err = testRepo.SetStatus(context.Background(), account.AccountNumber, domain.StatusFrozen)
	require.NoError(t, err)

	inactive, err = testRepo.ListInactive(context.Background(), cutoff)
	require.NoError(t, err)

	for i := range inactive {
		require.NotEqual(t, account.ID, inactive[i].Account.ID)
	}
}
