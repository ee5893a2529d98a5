// Package charts assembles per-tab chart datasets from fetched records.
//
// Builders in this package are pure functions of already fetched records.
// Service fetches the records and runs them.
package charts

import (
	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/bucketing"
	"github.com/aristath/ecoledger/internal/modules/series"
)

// Loan status labels
const (
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusPending  = "Pending"
)

// Top-N limits for categorical charts
const (
	TopProjectTypes = 8
	TopCountries    = 15
)

// LoanStatusChart counts approved and rejected loans. Loans without a
// decision are shown as Pending only when there are any.
func LoanStatusChart(loans []domain.LoanRecord) series.Series {
	var approved, rejected, pending int
	for _, loan := range loans {
		switch {
		case loan.Approved == nil:
			pending++
		case *loan.Approved:
			approved++
		default:
			rejected++
		}
	}

	s := series.Series{Name: "Loan Status", Points: []series.Point{
		{Label: StatusApproved, Value: float64(approved)},
		{Label: StatusRejected, Value: float64(rejected)},
	}}
	if pending > 0 {
		s.Points = append(s.Points, series.Point{Label: StatusPending, Value: float64(pending)})
	}
	return s
}

// ProjectTypeChart ranks project types by loan count
func ProjectTypeChart(loans []domain.LoanRecord) series.Series {
	types := make([]*string, len(loans))
	for i, loan := range loans {
		types[i] = loan.ProjectType
	}
	return series.FromCategoryCounts("Project Types", bucketing.TallyCategories(types, TopProjectTypes))
}

// CountryChart ranks countries by loan count
func CountryChart(loans []domain.LoanRecord) series.Series {
	countries := make([]*string, len(loans))
	for i, loan := range loans {
		countries[i] = loan.Country
	}
	return series.FromCategoryCounts("Countries", bucketing.TallyCategories(countries, TopCountries))
}

// ApplicationsTrend counts applications per calendar month, oldest first.
// Loans without an application date are not counted.
func ApplicationsTrend(loans []domain.LoanRecord) series.Series {
	monthly := make(map[string]float64)
	for _, loan := range loans {
		if !loan.ApplicationDate.Defined() {
			continue
		}
		monthly[bucketing.MonthKey(loan.ApplicationDate.Time)]++
	}
	return series.ToOrderedSeries("Loan Applications", monthly)
}

// ScoreDistribution bins combined credit scores
func ScoreDistribution(loans []domain.LoanRecord) (series.Series, error) {
	scores := make([]*float64, len(loans))
	for i, loan := range loans {
		scores[i] = loan.CombinedCreditScore
	}
	return bucketSeries("Credit Score Distribution", scores, bucketing.ScoreEdges, "")
}

// ESGDistribution bins ESG composite scores
func ESGDistribution(loans []domain.LoanRecord) (series.Series, error) {
	scores := make([]*float64, len(loans))
	for i, loan := range loans {
		scores[i] = loan.ESGCompositeScore
	}
	return bucketSeries("ESG Score Distribution", scores, bucketing.ScoreEdges, "")
}

func bucketSeries(name string, values []*float64, edges []float64, suffix string) (series.Series, error) {
	buckets, err := bucketing.Bucketize(values, edges)
	if err != nil {
		return series.Series{}, err
	}
	if suffix != "" {
		buckets = bucketing.WithSuffix(buckets, suffix)
	}
	return series.FromBuckets(name, buckets), nil
}
