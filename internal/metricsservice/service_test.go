package metricsservice

import (
	"context"
	"testing"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func asset(assetType, value, interestRate string) domain.Asset {
	return domain.Asset{
		Type:         assetType,
		Value:        decimal.RequireFromString(value),
		InterestRate: decimal.RequireFromString(interestRate),
	}
}

func requireDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()

	if !decimal.RequireFromString(want).Equal(got) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComputeEmptyPortfolio(t *testing.T) {
	m := Compute(nil)

	requireDecimalEqual(t, "0", m.TotalAssets)
	requireDecimalEqual(t, "0", m.RiskWeightedAssets)
	requireDecimalEqual(t, "0", m.CET1Ratio)
	requireDecimalEqual(t, "0", m.LeverageRatio)
	requireDecimalEqual(t, "0", m.LiquidityCoverage)
	require.Equal(t, domain.StatusNonCompliant, m.CARStatus)
	require.Equal(t, domain.StatusNonCompliant, m.LCRStatus)
}

func TestComputeSingleTypePortfolio(t *testing.T) {
	// One asset type: the concentration weighting degenerates to the full
	// portfolio value, so RWA equals total assets.
	assets := []domain.Asset{
		asset(domain.AssetLoans, "600", "0.05"),
		asset(domain.AssetLoans, "400", "0.08"),
	}

	m := Compute(assets)

	requireDecimalEqual(t, "1000", m.TotalAssets)
	requireDecimalEqual(t, "1000", m.RiskWeightedAssets)
	requireDecimalEqual(t, "1000", m.LoanPortfolio)

	// NIM is the loan-value weighted rate: (0.05*600 + 0.08*400) / 1000.
	requireDecimalEqual(t, "0.062", m.NetInterestMargin)

	requireDecimalEqual(t, "60", m.CET1Capital)
	requireDecimalEqual(t, "80", m.Tier1Capital)
	requireDecimalEqual(t, "25", m.Tier2Capital)
	requireDecimalEqual(t, "105", m.TotalCapital)

	requireDecimalEqual(t, "0.06", m.CET1Ratio)
	requireDecimalEqual(t, "0.08", m.Tier1Ratio)
	requireDecimalEqual(t, "0.105", m.TotalCapitalRatio)
	requireDecimalEqual(t, "0.08", m.LeverageRatio)

	require.Equal(t, domain.StatusCompliant, m.CARStatus)

	// No deposits means no outflows and a failing coverage ratio.
	requireDecimalEqual(t, "0", m.HQLA)
	requireDecimalEqual(t, "0", m.LiquidityCoverage)
	require.Equal(t, domain.StatusNonCompliant, m.LCRStatus)
}

func TestComputeMixedPortfolio(t *testing.T) {
	assets := []domain.Asset{
		asset(domain.AssetCashEquivalents, "500", "0"),
		asset(domain.AssetLoans, "500", "0.06"),
	}

	m := Compute(assets)

	requireDecimalEqual(t, "1000", m.TotalAssets)
	requireDecimalEqual(t, "500", m.TotalDeposits)
	requireDecimalEqual(t, "500", m.LoanPortfolio)

	// Two equal halves: RWA = 500²/1000 + 500²/1000 = 500.
	requireDecimalEqual(t, "500", m.RiskWeightedAssets)

	// Concentration raises the ratios against an evenly spread book.
	requireDecimalEqual(t, "0.12", m.CET1Ratio)
	requireDecimalEqual(t, "0.16", m.Tier1Ratio)
	requireDecimalEqual(t, "0.21", m.TotalCapitalRatio)

	requireDecimalEqual(t, "500", m.HQLA)
	requireDecimalEqual(t, "125", m.NetCashOutflows)
	requireDecimalEqual(t, "4", m.LiquidityCoverage)
	require.Equal(t, domain.StatusCompliant, m.LCRStatus)
}

func TestComputeIsIdempotent(t *testing.T) {
	assets := []domain.Asset{
		asset(domain.AssetCashEquivalents, "300", "0"),
		asset(domain.AssetInvestmentSecurities, "200", "0.03"),
		asset(domain.AssetLoans, "500", "0.07"),
	}

	first := Compute(assets)
	second := Compute(assets)

	require.Equal(t, first, second)
}

func TestAllocate(t *testing.T) {
	assets := []domain.Asset{
		asset(domain.AssetLoans, "100", "0.05"),
		asset(domain.AssetCashEquivalents, "50", "0"),
		asset(domain.AssetLoans, "200", "0.06"),
		asset(domain.AssetRealEstate, "75", "0"),
	}

	allocation := Allocate(assets)

	require.Equal(t, []string{domain.AssetLoans, domain.AssetCashEquivalents, domain.AssetRealEstate}, allocation.Labels)
	require.Len(t, allocation.Values, 3)
	requireDecimalEqual(t, "300", allocation.Values[0])
	requireDecimalEqual(t, "50", allocation.Values[1])
	requireDecimalEqual(t, "75", allocation.Values[2])
}

func TestAllocateEmpty(t *testing.T) {
	allocation := Allocate(nil)

	require.Empty(t, allocation.Labels)
	require.Empty(t, allocation.Values)
}

func TestBaselReport(t *testing.T) {
	assets := []domain.Asset{
		asset(domain.AssetCashEquivalents, "500", "0"),
		asset(domain.AssetLoans, "500", "0.06"),
	}

	counts := []domain.MonthlyCount{
		{Month: "2026-07", Count: 12},
		{Month: "2026-08", Count: 30},
	}

	testCases := []struct {
		name          string
		buildStubs    func(assetRepo *MockAssetRepo, ledger *MockLedgerStats)
		checkResponse func(res domain.BaselReport, err error)
	}{
		{
			name: "Asset repo error",
			buildStubs: func(assetRepo *MockAssetRepo, ledger *MockLedgerStats) {
				assetRepo.EXPECT().List(gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
				ledger.EXPECT().MonthlyCounts(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.BaselReport, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name: "OK",
			buildStubs: func(assetRepo *MockAssetRepo, ledger *MockLedgerStats) {
				assetRepo.EXPECT().List(gomock.Any()).
					Times(1).
					Return(assets, nil)
				ledger.EXPECT().MonthlyCounts(gomock.Any(), gomock.Eq(reportMonths)).
					Times(1).
					Return(counts, nil)
			},
			checkResponse: func(res domain.BaselReport, err error) {
				require.NoError(t, err)
				require.Equal(t, Compute(assets), res.CapitalMetrics)
				require.Equal(t, Allocate(assets), res.AssetAllocation)
				require.Equal(t, []string{"2026-07", "2026-08"}, res.TransactionMonths)
				require.Equal(t, []int64{12, 30}, res.TransactionCounts)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			assetRepo := NewMockAssetRepo(ctrl)
			ledger := NewMockLedgerStats(ctrl)
			tc.buildStubs(assetRepo, ledger)

			service := New(assetRepo, ledger)

			res, err := service.BaselReport(context.Background())
			tc.checkResponse(res, err)
		})
	}
}
