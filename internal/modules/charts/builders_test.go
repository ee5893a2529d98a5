package charts

import (
	"testing"
	"time"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, s string) domain.Timestamp {
	t.Helper()
	v, err := domain.ParseTimestamp(s)
	require.NoError(t, err)
	return v
}

func testLoans(t *testing.T) []domain.LoanRecord {
	return []domain.LoanRecord{
		{
			LoanID:               "L1",
			Approved:             domain.Bool(true),
			CombinedCreditScore:  domain.Float(85),
			ESGCompositeScore:    domain.Float(70),
			FinancialHealthScore: domain.Float(60),
			LoanAmount:           domain.Float(40000),
			ProjectType:          domain.String("Solar"),
			Country:              domain.String("DE"),
			ApplicationDate:      ts(t, "2024-02-10"),
		},
		{
			LoanID:              "L2",
			Approved:            domain.Bool(false),
			CombinedCreditScore: domain.Float(45),
			ESGCompositeScore:   domain.Float(30),
			ProjectType:         domain.String("Wind"),
			Country:             domain.String("FR"),
			ApplicationDate:     ts(t, "2024-01-05"),
		},
		{
			LoanID:               "L3",
			Approved:             domain.Bool(true),
			CombinedCreditScore:  domain.Float(65),
			ESGCompositeScore:    domain.Float(90),
			FinancialHealthScore: domain.Float(80),
			ProjectType:          domain.String("Solar"),
			ApplicationDate:      ts(t, "2024-02-20"),
		},
		{
			LoanID:   "L4",
			Approved: domain.Bool(true),
		},
	}
}

func TestLoanStatusChart(t *testing.T) {
	loans := testLoans(t)
	s := LoanStatusChart(loans)
	assert.Equal(t, []string{StatusApproved, StatusRejected}, s.Labels())
	assert.Equal(t, []float64{3, 1}, s.Values())

	loans = append(loans, domain.LoanRecord{LoanID: "L5"})
	s = LoanStatusChart(loans)
	assert.Equal(t, []string{StatusApproved, StatusRejected, StatusPending}, s.Labels())
}

func TestCategoricalCharts(t *testing.T) {
	loans := testLoans(t)

	types := ProjectTypeChart(loans)
	assert.Equal(t, []string{"Solar", "Wind", "Unknown"}, types.Labels())
	assert.Equal(t, []float64{2, 1, 1}, types.Values())

	countries := CountryChart(loans)
	assert.Equal(t, []string{"Unknown", "DE", "FR"}, countries.Labels())
}

func TestApplicationsTrend(t *testing.T) {
	s := ApplicationsTrend(testLoans(t))
	assert.Equal(t, []string{"2024-01", "2024-02"}, s.Labels())
	assert.Equal(t, []float64{1, 2}, s.Values())
}

func TestDistributions(t *testing.T) {
	loans := testLoans(t)

	scores, err := ScoreDistribution(loans)
	require.NoError(t, err)
	assert.Equal(t, []string{"0-20", "20-40", "40-60", "60-80", "80-100"}, scores.Labels())
	assert.Equal(t, []float64{0, 0, 1, 1, 1}, scores.Values())

	esg, err := ESGDistribution(loans)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0, 1, 1}, esg.Values())
}

func TestPerformanceChart(t *testing.T) {
	ms, err := PerformanceChart(testLoans(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, ms.Labels)
	require.Len(t, ms.Series, 3)
	assert.Equal(t, SeriesCreditScore, ms.Series[0].Name)
	assert.Equal(t, []float64{85, 65}, ms.Series[0].Values())
	assert.Equal(t, []float64{70, 90}, ms.Series[1].Values())
	assert.Equal(t, []float64{60, 80}, ms.Series[2].Values())
}

func TestRiskDistribution(t *testing.T) {
	s := RiskDistribution(testLoans(t))
	assert.Equal(t, []string{"Low Risk", "Medium Risk", "High Risk", "Very High Risk"}, s.Labels())
	assert.Equal(t, []float64{1, 1, 1, 0}, s.Values())
}

func TestCarbonImpact(t *testing.T) {
	s := CarbonImpact(testLoans(t))
	assert.Equal(t, []string{"Solar", "Wind", "Unknown"}, s.Labels())
	assert.Equal(t, []float64{75, 45, 0}, s.Values())
}

func TestCreditESGScatterAndStatistics(t *testing.T) {
	scatter := CreditESGScatter(testLoans(t))
	require.Len(t, scatter.Points, 2)

	p := scatter.Points[0]
	assert.Equal(t, "L1", p.ID)
	assert.Equal(t, 70.0, p.X)
	assert.Equal(t, 85.0, p.Y)
	assert.InDelta(t, 2.0, p.Size, 1e-9)
	require.NotNil(t, p.Color)
	assert.Equal(t, 60.0, *p.Color)
	assert.Equal(t, 0.0, scatter.Points[1].Size)

	stats := ScatterStatistics(scatter)
	assert.Equal(t, 2, stats.Loans)
	assert.InDelta(t, -1.0, stats.Correlation, 1e-9)
	assert.InDelta(t, 75.0, stats.CreditMean, 1e-9)
	assert.InDelta(t, 80.0, stats.ESGMean, 1e-9)

	empty := ScatterStatistics(CreditESGScatter(nil))
	assert.Equal(t, Statistics{}, empty)
}

func TestTradingCharts(t *testing.T) {
	portfolios := []domain.PortfolioRecord{
		{PortfolioID: "P1", Status: domain.String("listed"), PortfolioYield: domain.Float(0.065), WeightedESGScore: domain.Float(70), LoanCount: domain.Int(4)},
		{PortfolioID: "P2", Status: domain.String("sold"), PortfolioYield: domain.Float(0.031)},
		{PortfolioID: "P3", Status: domain.String("listed"), PortfolioYield: domain.Float(0.12), WeightedESGScore: domain.Float(55)},
	}

	status := PortfolioStatusChart(portfolios)
	assert.Equal(t, []string{"listed", "sold"}, status.Labels())

	yields, err := YieldDistribution(portfolios)
	require.NoError(t, err)
	assert.Equal(t, []string{"0-2%", "2-4%", "4-6%", "6-8%", "8-10%"}, yields.Labels())
	assert.Equal(t, []float64{0, 1, 0, 1, 0}, yields.Values())

	scatter := PortfolioScatter(portfolios)
	require.Len(t, scatter.Points, 2)
	assert.InDelta(t, 6.5, scatter.Points[0].Y, 1e-9)
	assert.Equal(t, 4.0, scatter.Points[0].Size)
}

func TestDailyVolume(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	trades := []domain.TradeRecord{
		{TradeID: "T1", TradePrice: domain.Float(100), TradeTimestamp: domain.NewTimestamp(time.Date(2024, 3, 2, 0, 30, 0, 0, berlin))},
		{TradeID: "T2", TradePrice: domain.Float(50), TradeTimestamp: ts(t, "2024-03-01T12:00:00Z")},
		{TradeID: "T3", TradePrice: domain.Float(25), TradeTimestamp: ts(t, "2024-03-03T12:00:00Z")},
		{TradeID: "T4", TradeTimestamp: ts(t, "2024-03-03T12:00:00Z")},
		{TradeID: "T5", TradePrice: domain.Float(10)},
	}

	s := DailyVolume(trades)
	// 00:30 CET on March 2 is still March 1 in UTC
	assert.Equal(t, []string{"2024-03-01", "2024-03-03"}, s.Labels())
	assert.Equal(t, []float64{150, 25}, s.Values())
}

func TestVolumeMovingAverage(t *testing.T) {
	var trades []domain.TradeRecord
	for day := 1; day <= 8; day++ {
		trades = append(trades, domain.TradeRecord{
			TradeID:        "T",
			TradePrice:     domain.Float(float64(day * 10)),
			TradeTimestamp: domain.NewTimestamp(time.Date(2024, 5, day, 12, 0, 0, 0, time.UTC)),
		})
	}

	avg := VolumeMovingAverage(DailyVolume(trades), VolumeWindow)
	require.Len(t, avg.Points, 2)
	assert.Equal(t, "2024-05-07", avg.Points[0].Label)
	assert.InDelta(t, 40.0, avg.Points[0].Value, 1e-9)
	assert.InDelta(t, 50.0, avg.Points[1].Value, 1e-9)

	assert.Empty(t, VolumeMovingAverage(DailyVolume(trades[:3]), VolumeWindow).Points)
}

func TestDocumentCharts(t *testing.T) {
	docs := []domain.DocumentRecord{
		{DocumentID: "D1", DocumentType: domain.String("invoice"), VerificationStatus: domain.String("verified"), OCRConfidence: domain.Float(0.95)},
		{DocumentID: "D2", DocumentType: domain.String("invoice"), VerificationStatus: domain.String("pending"), OCRConfidence: domain.Float(0.55)},
		{DocumentID: "D3", VerificationStatus: domain.String("verified"), OCRConfidence: domain.Float(1.0)},
	}

	assert.Equal(t, []float64{2, 1}, VerificationStatusChart(docs).Values())
	assert.Equal(t, []string{"invoice", "Unknown"}, DocumentTypeChart(docs).Labels())

	ocr, err := OCRConfidenceDistribution(docs)
	require.NoError(t, err)
	assert.Equal(t, []string{"0-60%", "60-70%", "70-80%", "80-90%", "90-100%"}, ocr.Labels())
	// 100% sits on the top edge and is dropped
	assert.Equal(t, []float64{1, 0, 0, 0, 1}, ocr.Values())
}

func monitoringHistory() []domain.MonitoringRecord {
	return []domain.MonitoringRecord{
		{LoanID: "L1", Month: 2, EnergySavingsPct: domain.Float(8), CarbonReductionPct: domain.Float(6), RenewableEnergyPct: domain.Float(20), ESGScore: domain.Float(45)},
		{LoanID: "L1", Month: 1, EnergySavingsPct: domain.Float(12), CarbonReductionPct: domain.Float(6), RenewableEnergyPct: domain.Float(20), ESGScore: domain.Float(70)},
	}
}

func TestMonitoringTrends(t *testing.T) {
	ms, err := MonitoringTrends(monitoringHistory())
	require.NoError(t, err)

	assert.Equal(t, []string{"Month 1", "Month 2"}, ms.Labels)
	require.Len(t, ms.Series, 6)
	assert.Equal(t, SeriesEnergySavings, ms.Series[0].Name)
	assert.Equal(t, []float64{12, 8}, ms.Series[0].Values())
	assert.Equal(t, SeriesEnergyTarget, ms.Series[3].Name)
	assert.Equal(t, []float64{10, 10}, ms.Series[3].Values())
	assert.Equal(t, []float64{5, 5}, ms.Series[4].Values())
	assert.Equal(t, []float64{50, 50}, ms.Series[5].Values())
}

func TestMonitoringTrends_MissingMetricIsShapeError(t *testing.T) {
	history := monitoringHistory()
	history[0].CarbonReductionPct = nil

	_, err := MonitoringTrends(history)
	require.Error(t, err)
	assert.True(t, domain.IsShapeMismatch(err))

	var shapeErr *domain.ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, SeriesCarbonReduction, shapeErr.Series)
}

func TestMonitoringTrends_Empty(t *testing.T) {
	ms, err := MonitoringTrends(nil)
	require.NoError(t, err)
	assert.Empty(t, ms.Labels)
	assert.Len(t, ms.Series, 6)
}

func TestComplianceDoughnut(t *testing.T) {
	history := monitoringHistory()
	history = append(history, domain.MonitoringRecord{LoanID: "L1", Month: 3, InCompliance: domain.Bool(true)})

	s := ComplianceDoughnut(history)
	assert.Equal(t, []string{"Compliant", "Non-Compliant"}, s.Labels())
	assert.Equal(t, []float64{2, 1}, s.Values())
}
