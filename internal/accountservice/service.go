// Package accountservice manages the business logic layer of account
// lifecycle: creation, freeze/unfreeze and inactivity detection. It never
// touches balances.
package accountservice

import (
	"context"
	"fmt"
	"time"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/randompkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, accountNumber string) (domain.Account, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]domain.Account, error)
	SetStatus(ctx context.Context, accountNumber, status string) (domain.Account, error)
	ListInactive(ctx context.Context, cutoff time.Time) ([]domain.InactiveAccount, error)
}

// CustomerGetter resolves customers at the identity boundary.
type CustomerGetter interface {
	GetByEmail(ctx context.Context, email string) (domain.Customer, error)
}

// Dispatcher enqueues notifications for asynchronous delivery.
type Dispatcher interface {
	Enqueue(ctx context.Context, email, subject, content string) error
}

// numberAttempts bounds retries when a generated account number collides.
const numberAttempts = 5

// interestRates holds the opening interest rate per account type.
var interestRates = map[string]decimal.Decimal{
	domain.TypeSavings:  decimal.NewFromFloat(2.5),
	domain.TypeChecking: decimal.NewFromFloat(0.1),
	domain.TypeBusiness: decimal.NewFromFloat(1.5),
	domain.TypePremium:  decimal.NewFromFloat(3.0),
}

// Service facilitates account service layer logic.
type Service struct {
	repo       Repo
	customers  CustomerGetter
	dispatcher Dispatcher
}

// New returns account service struct to manage account lifecycle logic.
func New(ar Repo, cg CustomerGetter, d Dispatcher) *Service {
	return &Service{
		repo:       ar,
		customers:  cg,
		dispatcher: d,
	}
}

// Create opens a zero-balance active account of the given type for the
// customer. The generated account number is collision-checked against the
// unique constraint and regenerated on conflict.
func (s *Service) Create(ctx context.Context, customerID int64, accountTypeID int32) (domain.Account, error) {
	accountType, ok := domain.AccountTypes[accountTypeID]
	if !ok {
		return domain.Account{}, domain.ErrInvalidAccountType
	}

	arg := domain.CreateAccountParams{
		CustomerID:   customerID,
		AccountType:  accountType,
		InterestRate: interestRates[accountType],
	}

	var (
		account domain.Account
		err     error
	)

	for i := 0; i < numberAttempts; i++ {
		arg.AccountNumber = randompkg.AccountNumber()

		account, err = s.repo.Create(ctx, arg)
		if err != domain.ErrDuplicateAccountNumber {
			break
		}
	}

	return account, err
}

// CreateByEmail resolves the owning customer and opens the account, then
// enqueues an account-opened notification. The enqueue is fire-and-forget.
func (s *Service) CreateByEmail(ctx context.Context, email string, accountTypeID int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}

	account, err := s.Create(ctx, customer.ID, accountTypeID)
	if err != nil {
		return account, err
	}

	content := fmt.Sprintf(
		"Your new %s account %s is open and ready to use.",
		account.AccountType, account.AccountNumber,
	)

	if err := s.dispatcher.Enqueue(ctx, email, "Your new account is ready", content); err != nil {
		l.Warn().Err(err).Str("account_number", account.AccountNumber).Msg("notification enqueue failed")
	}

	return account, nil
}

// Get returns the account with the given account number.
func (s *Service) Get(ctx context.Context, accountNumber string) (domain.Account, error) {
	return s.repo.Get(ctx, accountNumber)
}

// ListByCustomerEmail returns all accounts owned by the customer.
func (s *Service) ListByCustomerEmail(ctx context.Context, email string) ([]domain.Account, error) {
	return s.repo.ListByCustomerEmail(ctx, email)
}

// Freeze moves the account to frozen. Freezing an already frozen account is
// a no-op success; a closed account cannot transition.
func (s *Service) Freeze(ctx context.Context, accountNumber string) (domain.Account, error) {
	return s.setStatus(ctx, accountNumber, domain.StatusFrozen)
}

// Unfreeze moves the account back to active. Unfreezing an active account is
// a no-op success; a closed account cannot transition.
func (s *Service) Unfreeze(ctx context.Context, accountNumber string) (domain.Account, error) {
	return s.setStatus(ctx, accountNumber, domain.StatusActive)
}

func (s *Service) setStatus(ctx context.Context, accountNumber, status string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, accountNumber)
	if err != nil {
		return account, err
	}

	if account.Status == domain.StatusClosed {
		return domain.Account{}, domain.ErrAccountClosed
	}

	if account.Status == status {
		return account, nil
	}

	return s.repo.SetStatus(ctx, accountNumber, status)
}

// ListInactive returns active accounts with no activity in the given number
// of days, distinguishing accounts that never transacted at all.
func (s *Service) ListInactive(ctx context.Context, days int32) ([]domain.InactiveAccount, error) {
	cutoff := time.Now().AddDate(0, 0, -int(days))
	return s.repo.ListInactive(ctx, cutoff)
}
