package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrAssetNotFound indicates that the asset is not found.
var ErrAssetNotFound = errors.New("asset not found")

// Asset types recognised by the metrics engine.
const (
	AssetCashEquivalents      = "cash-and-cash-equivalents"
	AssetInvestmentSecurities = "investment-securities"
	AssetLoans                = "loans"
	AssetRealEstate           = "real-estate"
	AssetFixed                = "fixed"
	AssetOther                = "other"
)

// Asset is one administrative portfolio position; read-only input to the
// metrics engine.
type Asset struct {
	ID           int64           `json:"asset_id"`
	Name         string          `json:"asset_name"`
	Type         string          `json:"asset_type"`
	Value        decimal.Decimal `json:"asset_value"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	PurchaseDate time.Time       `json:"purchase_date"`
	MaturityDate *time.Time      `json:"maturity_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateAssetParams is the input data to create an asset.
type CreateAssetParams struct {
	Name         string
	Type         string
	Value        decimal.Decimal
	InterestRate decimal.Decimal
	PurchaseDate time.Time
	MaturityDate *time.Time
}
