// Package summary computes the scalar metrics shown on the dashboard cards.
package summary

import (
	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/compliance"
	"github.com/aristath/ecoledger/internal/modules/series"
	"github.com/aristath/ecoledger/pkg/formulas"
)

// DashboardSummary holds the top-line dashboard metrics.
// Rates are fractions in [0,1].
type DashboardSummary struct {
	TotalLoans           int     `json:"total_loans"`
	ApprovedLoans        int     `json:"approved_loans"`
	ApprovalRate         float64 `json:"approval_rate"`
	TotalLoanValue       float64 `json:"total_loan_value"`
	AvgESGScore          float64 `json:"avg_esg_score"`
	TotalPortfolios      int     `json:"total_portfolios"`
	TotalTrades          int     `json:"total_trades"`
	TotalTradingVolume   float64 `json:"total_trading_volume"`
	ComplianceRate       float64 `json:"compliance_rate"`
	TotalBorrowerSavings float64 `json:"total_borrower_savings"`
	SkippedRecords       int     `json:"skipped_records"`
	// AvgCarbonReduction is nil when the source cannot list monitoring
	// records across loans
	AvgCarbonReduction *float64 `json:"avg_carbon_reduction"`
}

// Summarize computes the dashboard summary. Records missing their identifier
// are skipped and counted in SkippedRecords. Sums run in input order.
func Summarize(
	loans []domain.LoanRecord,
	portfolios []domain.PortfolioRecord,
	trades []domain.TradeRecord,
	savings []domain.SavingsRecord,
) DashboardSummary {
	validLoans, skippedLoans := domain.Partition(loans)
	validPortfolios, skippedPortfolios := domain.Partition(portfolios)
	validTrades, skippedTrades := domain.Partition(trades)

	var (
		approved     int
		approvedAmts []float64
		approvedESG  []*float64
		compliant    int
	)
	for _, loan := range validLoans {
		if loan.ESGCompositeScore != nil && *loan.ESGCompositeScore >= compliance.MinESGScore {
			compliant++
		}
		if !loan.IsApproved() {
			continue
		}
		approved++
		approvedESG = append(approvedESG, loan.ESGCompositeScore)
		if loan.LoanAmount != nil {
			approvedAmts = append(approvedAmts, *loan.LoanAmount)
		}
	}

	prices := make([]float64, 0, len(validTrades))
	for _, trade := range validTrades {
		if trade.TradePrice != nil {
			prices = append(prices, *trade.TradePrice)
		}
	}

	savingsTotals := make([]float64, 0, len(savings))
	for _, s := range savings {
		savingsTotals = append(savingsTotals, s.TotalSavings)
	}

	return DashboardSummary{
		TotalLoans:           len(validLoans),
		ApprovedLoans:        approved,
		ApprovalRate:         fraction(approved, len(validLoans)),
		TotalLoanValue:       formulas.Sum(approvedAmts),
		AvgESGScore:          series.AverageDefined(approvedESG),
		TotalPortfolios:      len(validPortfolios),
		TotalTrades:          len(validTrades),
		TotalTradingVolume:   formulas.Sum(prices),
		ComplianceRate:       fraction(compliant, len(validLoans)),
		TotalBorrowerSavings: formulas.Sum(savingsTotals),
		SkippedRecords:       len(skippedLoans) + len(skippedPortfolios) + len(skippedTrades),
	}
}

func fraction(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// AvgCarbonReduction averages the defined carbon reduction percentages of
// every monitoring record, 0 when there are none
func AvgCarbonReduction(records []domain.MonitoringRecord) float64 {
	valid, _ := domain.Partition(records)
	values := make([]*float64, len(valid))
	for i, rec := range valid {
		values[i] = rec.CarbonReductionPct
	}
	return series.AverageDefined(values)
}
