// Package metricsservice derives regulatory and aggregate figures from the
// current asset and ledger snapshots. Everything here is read-only and
// idempotent: the same snapshot always produces the same output.
package metricsservice

import (
	"context"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/shopspring/decimal"
)

// AssetRepo provides the asset snapshot the metrics are derived from.
//
//go:generate mockgen -source service.go -destination service_mock.go -package metricsservice
type AssetRepo interface {
	List(ctx context.Context) ([]domain.Asset, error)
}

// LedgerStats provides aggregate ledger figures for the dashboard.
type LedgerStats interface {
	MonthlyCounts(ctx context.Context, months int) ([]domain.MonthlyCount, error)
}

// Capital policy: capital amounts are fixed fractions of total assets. This
// is the placeholder policy carried over from the source system, not a
// modeled regulatory capital ledger.
var (
	cet1Fraction            = decimal.NewFromFloat(0.06)
	additionalTier1Fraction = decimal.NewFromFloat(0.02)
	tier2Fraction           = decimal.NewFromFloat(0.025)
	outflowFraction         = decimal.NewFromFloat(0.25)

	minTotalCapitalRatio = decimal.NewFromFloat(0.105)
	minLiquidityCoverage = decimal.NewFromInt(1)
)

// ratioPlaces is the scale ratios are rounded to.
const ratioPlaces = 6

// reportMonths is how far back the dashboard transaction series reaches.
const reportMonths = 12

// Service facilitates the metrics engine logic.
type Service struct {
	assets AssetRepo
	ledger LedgerStats
}

// New returns metrics service struct to derive regulatory figures.
func New(ar AssetRepo, ls LedgerStats) *Service {
	return &Service{
		assets: ar,
		ledger: ls,
	}
}

// CapitalMetrics computes the capital adequacy figures over the current
// asset snapshot.
func (s *Service) CapitalMetrics(ctx context.Context) (domain.CapitalMetrics, error) {
	assets, err := s.assets.List(ctx)
	if err != nil {
		return domain.CapitalMetrics{}, err
	}

	return Compute(assets), nil
}

// Compute derives the capital figures from an asset snapshot. Pure function,
// zero-safe on an empty portfolio.
func Compute(assets []domain.Asset) domain.CapitalMetrics {
	var m domain.CapitalMetrics

	typeTotals := map[string]decimal.Decimal{}

	weightedInterestSum := decimal.Zero

	for _, a := range assets {
		m.TotalAssets = m.TotalAssets.Add(a.Value)
		typeTotals[a.Type] = typeTotals[a.Type].Add(a.Value)

		switch a.Type {
		case domain.AssetCashEquivalents:
			m.TotalDeposits = m.TotalDeposits.Add(a.Value)
		case domain.AssetLoans:
			m.LoanPortfolio = m.LoanPortfolio.Add(a.Value)
			weightedInterestSum = weightedInterestSum.Add(a.InterestRate.Mul(a.Value))
		}
	}

	if m.LoanPortfolio.IsPositive() {
		m.NetInterestMargin = weightedInterestSum.DivRound(m.LoanPortfolio, ratioPlaces)
	}

	// Concentration-sensitive weighting: each type total is weighted by its
	// own share of the portfolio.
	if m.TotalAssets.IsPositive() {
		for _, total := range typeTotals {
			m.RiskWeightedAssets = m.RiskWeightedAssets.Add(
				total.Mul(total).DivRound(m.TotalAssets, ratioPlaces))
		}
	}

	m.CET1Capital = m.TotalAssets.Mul(cet1Fraction)
	m.Tier1Capital = m.TotalAssets.Mul(cet1Fraction.Add(additionalTier1Fraction))
	m.Tier2Capital = m.TotalAssets.Mul(tier2Fraction)
	m.TotalCapital = m.Tier1Capital.Add(m.Tier2Capital)

	if m.RiskWeightedAssets.IsPositive() {
		m.CET1Ratio = m.CET1Capital.DivRound(m.RiskWeightedAssets, ratioPlaces)
		m.Tier1Ratio = m.Tier1Capital.DivRound(m.RiskWeightedAssets, ratioPlaces)
		m.TotalCapitalRatio = m.TotalCapital.DivRound(m.RiskWeightedAssets, ratioPlaces)
	}

	if m.TotalAssets.IsPositive() {
		m.LeverageRatio = m.Tier1Capital.DivRound(m.TotalAssets, ratioPlaces)
	}

	m.HQLA = m.TotalDeposits
	m.NetCashOutflows = m.TotalDeposits.Mul(outflowFraction)

	if m.NetCashOutflows.IsPositive() {
		m.LiquidityCoverage = m.HQLA.DivRound(m.NetCashOutflows, ratioPlaces)
	}

	m.CARStatus = domain.StatusNonCompliant
	if m.TotalCapitalRatio.GreaterThanOrEqual(minTotalCapitalRatio) {
		m.CARStatus = domain.StatusCompliant
	}

	m.LCRStatus = domain.StatusNonCompliant
	if m.LiquidityCoverage.GreaterThanOrEqual(minLiquidityCoverage) {
		m.LCRStatus = domain.StatusCompliant
	}

	return m
}

// AssetAllocation groups asset value by type, ordered by first appearance.
func (s *Service) AssetAllocation(ctx context.Context) (domain.AssetAllocation, error) {
	assets, err := s.assets.List(ctx)
	if err != nil {
		return domain.AssetAllocation{}, err
	}

	return Allocate(assets), nil
}

// Allocate groups an asset snapshot by type. Pure function; label order is
// the order types first appear in the snapshot.
func Allocate(assets []domain.Asset) domain.AssetAllocation {
	allocation := domain.AssetAllocation{
		Labels: []string{},
		Values: []decimal.Decimal{},
	}

	index := map[string]int{}

	for _, a := range assets {
		i, ok := index[a.Type]
		if !ok {
			i = len(allocation.Labels)
			index[a.Type] = i
			allocation.Labels = append(allocation.Labels, a.Type)
			allocation.Values = append(allocation.Values, decimal.Zero)
		}

		allocation.Values[i] = allocation.Values[i].Add(a.Value)
	}

	return allocation
}

// BaselReport assembles the full administrative dashboard payload.
func (s *Service) BaselReport(ctx context.Context) (domain.BaselReport, error) {
	assets, err := s.assets.List(ctx)
	if err != nil {
		return domain.BaselReport{}, err
	}

	counts, err := s.ledger.MonthlyCounts(ctx, reportMonths)
	if err != nil {
		return domain.BaselReport{}, err
	}

	report := domain.BaselReport{
		CapitalMetrics:    Compute(assets),
		AssetAllocation:   Allocate(assets),
		TransactionMonths: make([]string, 0, len(counts)),
		TransactionCounts: make([]int64, 0, len(counts)),
	}

	for _, c := range counts {
		report.TransactionMonths = append(report.TransactionMonths, c.Month)
		report.TransactionCounts = append(report.TransactionCounts, c.Count)
	}

	return report, nil
}
