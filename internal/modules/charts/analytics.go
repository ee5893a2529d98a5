package charts

import (
	"math"
	"strconv"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/bucketing"
	"github.com/aristath/ecoledger/internal/modules/series"
	"github.com/aristath/ecoledger/pkg/formulas"
)

// Performance series names
const (
	SeriesCreditScore     = "Credit Score"
	SeriesESGScore        = "ESG Score"
	SeriesFinancialHealth = "Financial Health"
)

// PerformanceChart plots credit, ESG and financial health scores of the
// approved loans against the loan index (1..n). Loans missing any of the
// three scores are left out so every trace shares the same x axis.
func PerformanceChart(loans []domain.LoanRecord) (series.MultiSeries, error) {
	credit := series.Series{Name: SeriesCreditScore}
	esg := series.Series{Name: SeriesESGScore}
	health := series.Series{Name: SeriesFinancialHealth}

	idx := 0
	for _, loan := range loans {
		if !loan.IsApproved() ||
			loan.CombinedCreditScore == nil ||
			loan.ESGCompositeScore == nil ||
			loan.FinancialHealthScore == nil {
			continue
		}
		idx++
		label := strconv.Itoa(idx)
		credit.Points = append(credit.Points, series.Point{Label: label, Value: *loan.CombinedCreditScore})
		esg.Points = append(esg.Points, series.Point{Label: label, Value: *loan.ESGCompositeScore})
		health.Points = append(health.Points, series.Point{Label: label, Value: *loan.FinancialHealthScore})
	}

	return series.ZipMultiSeries(
		[]string{credit.Name, esg.Name, health.Name},
		[]series.Series{credit, esg, health},
	)
}

// RiskDistribution counts loans per risk category of their combined credit
// score. Every category is present, in display order.
func RiskDistribution(loans []domain.LoanRecord) series.Series {
	acc := series.NewAccumulator()
	for _, category := range bucketing.RiskCategories {
		acc.Set(category, 0)
	}
	for _, loan := range loans {
		if loan.CombinedCreditScore == nil {
			continue
		}
		acc.Add(bucketing.RiskCategory(*loan.CombinedCreditScore), 1)
	}
	return series.FromAccumulator("Risk Distribution", acc)
}

// CarbonImpact averages the combined credit score per project type in
// first-seen order. Types whose loans carry no score average to 0.
func CarbonImpact(loans []domain.LoanRecord) series.Series {
	var order []string
	scores := make(map[string][]*float64)
	for _, loan := range loans {
		key := bucketing.Unknown
		if loan.ProjectType != nil && *loan.ProjectType != "" {
			key = *loan.ProjectType
		}
		if _, ok := scores[key]; !ok {
			order = append(order, key)
		}
		scores[key] = append(scores[key], loan.CombinedCreditScore)
	}

	acc := series.NewAccumulator()
	for _, key := range order {
		acc.Set(key, series.AverageDefined(scores[key]))
	}
	return series.FromAccumulator("Carbon Impact by Project Type", acc)
}

// CreditESGScatter plots ESG (x) against credit score (y) for approved
// loans with both scores. Bubble size is sqrt(amount)/100 and the color is
// the financial health score.
func CreditESGScatter(loans []domain.LoanRecord) series.ScatterSeries {
	out := series.ScatterSeries{
		Name:   "Credit vs ESG",
		XLabel: "ESG Score",
		YLabel: "Credit Score",
		Points: make([]series.ScatterPoint, 0),
	}

	for _, loan := range loans {
		if !loan.IsApproved() || loan.CombinedCreditScore == nil || loan.ESGCompositeScore == nil {
			continue
		}
		p := series.ScatterPoint{
			ID:    loan.LoanID,
			X:     *loan.ESGCompositeScore,
			Y:     *loan.CombinedCreditScore,
			Color: loan.FinancialHealthScore,
		}
		if loan.LoanAmount != nil && *loan.LoanAmount > 0 {
			p.Size = math.Sqrt(*loan.LoanAmount) / 100
		}
		out.Points = append(out.Points, p)
	}

	return out
}

// Statistics summarizes the credit/ESG relationship of the scatter
type Statistics struct {
	Loans       int     `json:"loans"`
	Correlation float64 `json:"credit_esg_correlation"`
	CreditMean  float64 `json:"credit_mean"`
	CreditStd   float64 `json:"credit_std"`
	ESGMean     float64 `json:"esg_mean"`
	ESGStd      float64 `json:"esg_std"`
}

// ScatterStatistics computes means, spreads and the Pearson correlation of
// the scatter's x and y values
func ScatterStatistics(scatter series.ScatterSeries) Statistics {
	esg := scatter.XValues()
	credit := scatter.YValues()

	return Statistics{
		Loans:       len(scatter.Points),
		Correlation: formulas.Correlation(credit, esg),
		CreditMean:  formulas.Mean(credit),
		CreditStd:   formulas.StdDev(credit),
		ESGMean:     formulas.Mean(esg),
		ESGStd:      formulas.StdDev(esg),
	}
}
