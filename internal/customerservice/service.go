// Package customerservice manages the thin identity boundary: signup and
// password checks. Signup also opens the customer's first account.
package customerservice

import (
	"context"
	"fmt"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/bezell-bank/ledger-core/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by customer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package customerservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateCustomerParams) (domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (domain.Customer, error)
}

// AccountOpener opens accounts for new customers.
type AccountOpener interface {
	Create(ctx context.Context, customerID int64, accountTypeID int32) (domain.Account, error)
}

// Dispatcher enqueues notifications for asynchronous delivery.
type Dispatcher interface {
	Enqueue(ctx context.Context, email, subject, content string) error
}

// checkingTypeID is the account type opened implicitly on signup.
const checkingTypeID = 2

// SignupParams is the input data to register a customer.
type SignupParams struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// SignupResult is a new customer together with their first account.
type SignupResult struct {
	Customer domain.Customer `json:"customer"`
	Account  domain.Account  `json:"account"`
}

// Service facilitates customer service layer logic.
type Service struct {
	repo       Repo
	accounts   AccountOpener
	dispatcher Dispatcher
}

// New returns customer service struct to manage the identity boundary.
func New(cr Repo, ao AccountOpener, d Dispatcher) *Service {
	return &Service{
		repo:       cr,
		accounts:   ao,
		dispatcher: d,
	}
}

// Signup registers the customer and opens their first checking account, then
// enqueues a welcome notification (fire-and-forget).
func (s *Service) Signup(ctx context.Context, arg SignupParams) (SignupResult, error) {
	l := zerolog.Ctx(ctx)

	var result SignupResult

	hashedPassword, err := passpkg.Hash(arg.Password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result.Customer, err = s.repo.Create(ctx, domain.CreateCustomerParams{
		FirstName:      arg.FirstName,
		LastName:       arg.LastName,
		Email:          arg.Email,
		Phone:          arg.Phone,
		HashedPassword: hashedPassword,
	})
	if err != nil {
		return SignupResult{}, err
	}

	result.Account, err = s.accounts.Create(ctx, result.Customer.ID, checkingTypeID)
	if err != nil {
		return SignupResult{}, err
	}

	content := fmt.Sprintf(
		"Welcome, %s. Your checking account %s is open.",
		result.Customer.FirstName, result.Account.AccountNumber,
	)

	if err := s.dispatcher.Enqueue(ctx, arg.Email, "Welcome to Bezell Bank", content); err != nil {
		l.Warn().Err(err).Str("email", arg.Email).Msg("welcome notification enqueue failed")
	}

	return result, nil
}

// CheckPassword checks if the password is valid for the given email.
func (s *Service) CheckPassword(ctx context.Context, email, password string) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	customer, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return domain.Customer{}, err
	}

	if err := passpkg.Check(password, customer.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return domain.Customer{}, domain.ErrWrongPassword
	}

	return customer, nil
}

// GetByEmail returns the customer with the given email.
func (s *Service) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	return s.repo.GetByEmail(ctx, email)
}
