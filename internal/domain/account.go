// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountFrozen indicates that the account is frozen and rejects transactions.
	ErrAccountFrozen = errors.New("account is frozen")
	// ErrAccountClosed indicates that the account is closed; closed is terminal.
	ErrAccountClosed = errors.New("account is closed")
	// ErrDuplicateAccountNumber indicates a collision on the generated account number.
	ErrDuplicateAccountNumber = errors.New("account number already exists")
	// ErrInvalidAccountType indicates an unknown account type id.
	ErrInvalidAccountType = errors.New("invalid account type")
)

// Account statuses.
const (
	StatusActive = "active"
	StatusFrozen = "frozen"
	StatusClosed = "closed"
)

// Account types supported by the bank.
const (
	TypeSavings  = "savings"
	TypeChecking = "checking"
	TypeBusiness = "business"
	TypePremium  = "premium"
)

// AccountTypes maps the externally visible account type ids to type names.
var AccountTypes = map[int32]string{
	1: TypeSavings,
	2: TypeChecking,
	3: TypeBusiness,
	4: TypePremium,
}

// Account holds balance data for a single customer account.
//
// Balance is mutated only by the transaction engine inside a committed unit
// of work; Status only by the account manager.
type Account struct {
	ID                int64           `json:"id"`
	CustomerID        int64           `json:"customer_id"`
	AccountNumber     string          `json:"account_number"`
	AccountType       string          `json:"account_type"`
	Balance           decimal.Decimal `json:"balance"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	Status            string          `json:"status"`
	OpenedAt          time.Time       `json:"opened_date"`
	LastTransactionAt *time.Time      `json:"last_transaction_at,omitempty"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	CustomerID    int64
	AccountNumber string
	AccountType   string
	InterestRate  decimal.Decimal
}

// InactiveAccount is an account with no activity past the inactivity threshold.
//
// NeverTransacted distinguishes accounts that were opened and left untouched
// from accounts that went quiet after a specific last transaction.
type InactiveAccount struct {
	Account         Account   `json:"account"`
	Email           string    `json:"email"`
	InactiveSince   time.Time `json:"inactive_since"`
	NeverTransacted bool      `json:"never_transacted"`
}
