package domain

import "github.com/shopspring/decimal"

// Compliance statuses for regulatory ratios.
const (
	StatusCompliant    = "compliant"
	StatusNonCompliant = "non-compliant"
)

// CapitalMetrics holds the derived regulatory figures.
//
// Capital amounts are policy fractions of total assets rather than a modeled
// capital ledger; the ratios are placeholders, not a verified Basel III
// implementation.
type CapitalMetrics struct {
	TotalAssets        decimal.Decimal `json:"total_assets"`
	TotalDeposits      decimal.Decimal `json:"total_deposits"`
	LoanPortfolio      decimal.Decimal `json:"loan_portfolio"`
	NetInterestMargin  decimal.Decimal `json:"net_interest_margin"`
	RiskWeightedAssets decimal.Decimal `json:"risk_weighted_assets"`
	CET1Capital        decimal.Decimal `json:"cet1_capital"`
	Tier1Capital       decimal.Decimal `json:"tier1_capital"`
	Tier2Capital       decimal.Decimal `json:"tier2_capital"`
	TotalCapital       decimal.Decimal `json:"total_capital"`
	CET1Ratio          decimal.Decimal `json:"cet1_ratio"`
	Tier1Ratio         decimal.Decimal `json:"tier1_ratio"`
	TotalCapitalRatio  decimal.Decimal `json:"total_capital_ratio"`
	LeverageRatio      decimal.Decimal `json:"leverage_ratio"`
	HQLA               decimal.Decimal `json:"hqla"`
	NetCashOutflows    decimal.Decimal `json:"net_cash_outflows"`
	LiquidityCoverage  decimal.Decimal `json:"liquidity_coverage_ratio"`
	CARStatus          string          `json:"car_status"`
	LCRStatus          string          `json:"lcr_status"`
}

// AssetAllocation groups portfolio value by asset type, ordered by the type's
// first appearance in the asset list.
type AssetAllocation struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// BaselReport is the full administrative dashboard payload.
type BaselReport struct {
	CapitalMetrics
	AssetAllocation   AssetAllocation `json:"asset_allocation"`
	TransactionMonths []string        `json:"transaction_months"`
	TransactionCounts []int64         `json:"transaction_counts"`
}
