// Package transactionservice manages the business logic layer of the
// transaction engine: deposits, withdrawals and transfers as single logical
// operations.
package transactionservice

import (
	"context"
	"fmt"
	"time"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides the ledger store units of work needed by the engine.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	DepositTx(ctx context.Context, arg domain.DepositTxParams) (domain.DepositTxResult, error)
	WithdrawTx(ctx context.Context, arg domain.WithdrawTxParams) (domain.DepositTxResult, error)
	TransferTx(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error)
	List(ctx context.Context, arg domain.ListTransactionsParams) (domain.TransactionPage, error)
}

// Dispatcher enqueues notifications for asynchronous delivery. Enqueue
// failures are logged and swallowed; they never affect a committed operation.
type Dispatcher interface {
	Enqueue(ctx context.Context, email, subject, content string) error
}

// Publisher emits domain events after an operation commits.
type Publisher interface {
	Publish(ctx context.Context, topic string, event interface{}) error
}

// Directory resolves the owner email behind an account number.
type Directory interface {
	EmailByAccountNumber(ctx context.Context, accountNumber string) (string, error)
}

// TopicTransactionCompleted is the event topic for committed operations.
const TopicTransactionCompleted = "transaction_completed"

// Service facilitates transaction engine logic.
type Service struct {
	repo       Repo
	dispatcher Dispatcher
	publisher  Publisher
	directory  Directory
}

// New returns transaction service struct to manage the transaction engine.
func New(tr Repo, d Dispatcher, p Publisher, dir Directory) *Service {
	return &Service{
		repo:       tr,
		dispatcher: d,
		publisher:  p,
		directory:  dir,
	}
}

// Deposit credits the account and returns the committed result.
func (s *Service) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (domain.DepositTxResult, error) {
	if !amount.IsPositive() {
		return domain.DepositTxResult{}, domain.ErrInvalidAmount
	}

	arg := domain.DepositTxParams{
		AccountNumber: accountNumber,
		Amount:        amount,
		Reference:     uuid.NewString(),
		Description:   description,
	}

	result, err := s.repo.DepositTx(ctx, arg)
	if err != nil {
		return result, err
	}

	s.completed(ctx, result.Transaction, accountNumber, "")

	return result, nil
}

// Withdraw debits the account and returns the committed result.
func (s *Service) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (domain.DepositTxResult, error) {
	if !amount.IsPositive() {
		return domain.DepositTxResult{}, domain.ErrInvalidAmount
	}

	arg := domain.WithdrawTxParams{
		AccountNumber: accountNumber,
		Amount:        amount,
		Reference:     uuid.NewString(),
		Description:   description,
	}

	result, err := s.repo.WithdrawTx(ctx, arg)
	if err != nil {
		return result, err
	}

	s.completed(ctx, result.Transaction, accountNumber, "")

	return result, nil
}

// Transfer moves money between two accounts and returns both committed legs.
func (s *Service) Transfer(ctx context.Context, fromAccountNumber, toAccountNumber string, amount decimal.Decimal, description string) (domain.TransferTxResult, error) {
	if !amount.IsPositive() {
		return domain.TransferTxResult{}, domain.ErrInvalidAmount
	}

	if fromAccountNumber == toAccountNumber {
		return domain.TransferTxResult{}, domain.ErrSameAccount
	}

	arg := domain.TransferTxParams{
		FromAccountNumber: fromAccountNumber,
		ToAccountNumber:   toAccountNumber,
		Amount:            amount,
		Reference:         uuid.NewString(),
		Description:       description,
	}

	result, err := s.repo.TransferTx(ctx, arg)
	if err != nil {
		return result, err
	}

	s.completed(ctx, result.DebitLeg, fromAccountNumber, toAccountNumber)

	return result, nil
}

// List returns one page of ledger history with summary totals.
func (s *Service) List(ctx context.Context, arg domain.ListTransactionsParams) (domain.TransactionPage, error) {
	return s.repo.List(ctx, arg)
}

// completed emits the post-commit side effects. Both are fire-and-forget:
// the financial operation has already committed and stays committed.
func (s *Service) completed(ctx context.Context, t domain.Transaction, accountNumber, counterpartyNo string) {
	l := zerolog.Ctx(ctx)

	event := domain.TransactionCompleted{
		Reference:      t.Reference,
		Type:           t.Type,
		AccountNumber:  accountNumber,
		CounterpartyNo: counterpartyNo,
		Amount:         t.Amount,
		CompletedAt:    time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, TopicTransactionCompleted, event); err != nil {
		l.Warn().Err(err).Str("reference", t.Reference).Msg("publish transaction event failed")
	}

	email, err := s.directory.EmailByAccountNumber(ctx, accountNumber)
	if err != nil {
		l.Warn().Err(err).Str("reference", t.Reference).Msg("owner lookup for notification failed")
		return
	}

	subject := "Transaction completed"
	content := fmt.Sprintf(
		"Your %s of %s on account %s is complete. Reference: %s.",
		t.Type, t.Amount.StringFixed(2), accountNumber, t.Reference,
	)

	if err := s.dispatcher.Enqueue(ctx, email, subject, content); err != nil {
		l.Warn().Err(err).Str("reference", t.Reference).Msg("notification enqueue failed")
	}
}
