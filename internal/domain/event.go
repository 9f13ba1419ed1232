package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCompleted is the domain event published after a financial
// operation commits. Emission is fire-and-forget: a publish failure never
// affects the committed unit of work.
type TransactionCompleted struct {
	Reference      string          `json:"reference"`
	Type           string          `json:"type"`
	AccountNumber  string          `json:"account_number"`
	CounterpartyNo string          `json:"counterparty_account_number,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	CompletedAt    time.Time       `json:"completed_at"`
}
