package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates a non-positive or unparsable amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds indicates that the debit would drive the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSameAccount indicates a transfer where both legs name the same account.
	ErrSameAccount = errors.New("cannot transfer to the same account")
)

// Transaction types. Amount is always positive; the type carries the direction.
const (
	TxDeposit        = "deposit"
	TxWithdrawal     = "withdrawal"
	TxTransferDebit  = "transfer_debit"
	TxTransferCredit = "transfer_credit"
)

// Transaction is one immutable row of the append-only ledger.
//
// BalanceAfter snapshots the account balance at commit time so that a strict
// replay of an account's history reproduces its current balance.
type Transaction struct {
	ID                    int64           `json:"transaction_id"`
	AccountID             int64           `json:"account_id"`
	CounterpartyAccountID *int64          `json:"counterparty_account_id,omitempty"`
	Type                  string          `json:"transaction_type"`
	Amount                decimal.Decimal `json:"amount"`
	BalanceAfter          decimal.Decimal `json:"balance_after"`
	Reference             string          `json:"reference"`
	Description           string          `json:"description"`
	CreatedAt             time.Time       `json:"transaction_date"`
}

// DepositTxParams is the input data for a deposit unit of work.
type DepositTxParams struct {
	AccountNumber string
	Amount        decimal.Decimal
	Reference     string
	Description   string
}

// WithdrawTxParams is the input data for a withdrawal unit of work.
type WithdrawTxParams struct {
	AccountNumber string
	Amount        decimal.Decimal
	Reference     string
	Description   string
}

// TransferTxParams is the input data for the transfer unit of work.
type TransferTxParams struct {
	FromAccountNumber string
	ToAccountNumber   string
	Amount            decimal.Decimal
	Reference         string
	Description       string
}

// DepositTxResult is the result of a deposit or withdrawal unit of work.
type DepositTxResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}

// TransferTxResult is the result of the transfer unit of work.
type TransferTxResult struct {
	FromAccount Account     `json:"from_account"`
	ToAccount   Account     `json:"to_account"`
	DebitLeg    Transaction `json:"debit_leg"`
	CreditLeg   Transaction `json:"credit_leg"`
}

// ListTransactionsParams is the input data to page through the ledger.
//
// Zero-valued filters mean "not filtered by that key".
type ListTransactionsParams struct {
	AccountNumber string
	CustomerEmail string
	Type          string
	From          *time.Time
	To            *time.Time
	Page          int32
	Limit         int32
}

// TransactionsSummary aggregates the filtered set the page was drawn from.
type TransactionsSummary struct {
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	TransactionCount int64           `json:"transaction_count"`
}

// Pagination describes the position of a page within the filtered set.
type Pagination struct {
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// TransactionPage is one page of ledger history with its summary.
type TransactionPage struct {
	Transactions []Transaction       `json:"transactions"`
	Summary      TransactionsSummary `json:"summary"`
	Pagination   Pagination          `json:"pagination"`
}

// MonthlyCount is the number of ledger rows committed in one calendar month.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}
