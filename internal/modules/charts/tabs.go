package charts

import (
	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/compliance"
	"github.com/aristath/ecoledger/internal/modules/rates"
	"github.com/aristath/ecoledger/internal/modules/series"
	"github.com/aristath/ecoledger/internal/modules/summary"
)

// Chart names, used as keys of a tab's Errors map
const (
	ChartScoreDistribution = "score_distribution"
	ChartESGDistribution   = "esg_distribution"
	ChartPerformance       = "performance"
	ChartYieldDistribution = "yield_distribution"
	ChartOCRConfidence     = "ocr_confidence"
	ChartMonitoringTrends  = "trends"
	ChartRateHistory       = "rate_history"
	ChartLedgerValidation  = "ledger_validation"
)

// chartErrors collects per-chart build failures. A failed chart never
// prevents the others of the tab from being built.
type chartErrors map[string]string

func (e chartErrors) record(chart string, err error) {
	if err != nil {
		e[chart] = err.Error()
	}
}

func (e chartErrors) orNil() map[string]string {
	if len(e) == 0 {
		return nil
	}
	return e
}

// DashboardTab is the landing page: summary cards plus overview charts
type DashboardTab struct {
	Summary           summary.DashboardSummary `json:"summary"`
	LoanStatus        series.Series            `json:"loan_status"`
	ProjectTypes      series.Series            `json:"project_types"`
	Countries         series.Series            `json:"countries"`
	ApplicationsTrend series.Series            `json:"applications_trend"`
	ScoreDistribution series.Series            `json:"score_distribution"`
	ESGDistribution   series.Series            `json:"esg_distribution"`
	Errors            map[string]string        `json:"errors,omitempty"`
}

// BuildDashboard assembles the dashboard tab
func BuildDashboard(
	loans []domain.LoanRecord,
	portfolios []domain.PortfolioRecord,
	trades []domain.TradeRecord,
	savings []domain.SavingsRecord,
) DashboardTab {
	validLoans, _ := domain.Partition(loans)
	errs := chartErrors{}

	tab := DashboardTab{
		Summary:           summary.Summarize(loans, portfolios, trades, savings),
		LoanStatus:        LoanStatusChart(validLoans),
		ProjectTypes:      ProjectTypeChart(validLoans),
		Countries:         CountryChart(validLoans),
		ApplicationsTrend: ApplicationsTrend(validLoans),
	}

	var err error
	tab.ScoreDistribution, err = ScoreDistribution(validLoans)
	errs.record(ChartScoreDistribution, err)
	tab.ESGDistribution, err = ESGDistribution(validLoans)
	errs.record(ChartESGDistribution, err)

	tab.Errors = errs.orNil()
	return tab
}

// AnalyticsTab is the deep-dive loan analytics page
type AnalyticsTab struct {
	Performance      series.MultiSeries   `json:"performance"`
	RiskDistribution series.Series        `json:"risk_distribution"`
	ProjectTypes     series.Series        `json:"project_types"`
	Countries        series.Series        `json:"countries"`
	CarbonImpact     series.Series        `json:"carbon_impact"`
	Scatter          series.ScatterSeries `json:"credit_esg_scatter"`
	Statistics       Statistics           `json:"statistics"`
	SkippedRecords   int                  `json:"skipped_records"`
	Errors           map[string]string    `json:"errors,omitempty"`
}

// BuildAnalytics assembles the analytics tab
func BuildAnalytics(loans []domain.LoanRecord) AnalyticsTab {
	validLoans, skipped := domain.Partition(loans)
	errs := chartErrors{}

	tab := AnalyticsTab{
		RiskDistribution: RiskDistribution(validLoans),
		ProjectTypes:     ProjectTypeChart(validLoans),
		Countries:        CountryChart(validLoans),
		CarbonImpact:     CarbonImpact(validLoans),
		Scatter:          CreditESGScatter(validLoans),
		SkippedRecords:   len(skipped),
	}
	tab.Statistics = ScatterStatistics(tab.Scatter)

	var err error
	tab.Performance, err = PerformanceChart(validLoans)
	errs.record(ChartPerformance, err)

	tab.Errors = errs.orNil()
	return tab
}

// TradingTab is the trading floor page
type TradingTab struct {
	PortfolioStatus   series.Series        `json:"portfolio_status"`
	YieldDistribution series.Series        `json:"yield_distribution"`
	DailyVolume       series.Series        `json:"daily_volume"`
	VolumeAverage     series.Series        `json:"volume_moving_average"`
	PortfolioScatter  series.ScatterSeries `json:"portfolio_scatter"`
	TotalVolume       float64              `json:"total_volume"`
	SkippedRecords    int                  `json:"skipped_records"`
	Errors            map[string]string    `json:"errors,omitempty"`
}

// BuildTrading assembles the trading tab
func BuildTrading(portfolios []domain.PortfolioRecord, trades []domain.TradeRecord) TradingTab {
	validPortfolios, skippedPortfolios := domain.Partition(portfolios)
	validTrades, skippedTrades := domain.Partition(trades)
	errs := chartErrors{}

	daily := DailyVolume(validTrades)
	tab := TradingTab{
		PortfolioStatus:  PortfolioStatusChart(validPortfolios),
		DailyVolume:      daily,
		VolumeAverage:    VolumeMovingAverage(daily, VolumeWindow),
		PortfolioScatter: PortfolioScatter(validPortfolios),
		SkippedRecords:   len(skippedPortfolios) + len(skippedTrades),
	}
	for _, v := range daily.Values() {
		tab.TotalVolume += v
	}

	var err error
	tab.YieldDistribution, err = YieldDistribution(validPortfolios)
	errs.record(ChartYieldDistribution, err)

	tab.Errors = errs.orNil()
	return tab
}

// DocumentsTab is the document processing page
type DocumentsTab struct {
	TotalDocuments     int               `json:"total_documents"`
	VerificationStatus series.Series     `json:"verification_status"`
	DocumentTypes      series.Series     `json:"document_types"`
	OCRConfidence      series.Series     `json:"ocr_confidence"`
	SkippedRecords     int               `json:"skipped_records"`
	Errors             map[string]string `json:"errors,omitempty"`
}

// BuildDocuments assembles the documents tab
func BuildDocuments(docs []domain.DocumentRecord) DocumentsTab {
	valid, skipped := domain.Partition(docs)
	errs := chartErrors{}

	tab := DocumentsTab{
		TotalDocuments:     len(valid),
		VerificationStatus: VerificationStatusChart(valid),
		DocumentTypes:      DocumentTypeChart(valid),
		SkippedRecords:     len(skipped),
	}

	var err error
	tab.OCRConfidence, err = OCRConfidenceDistribution(valid)
	errs.record(ChartOCRConfidence, err)

	tab.Errors = errs.orNil()
	return tab
}

// MonitoredMonth is one classified monitoring record
type MonitoredMonth struct {
	Month          int                     `json:"month"`
	MonitoringDate domain.Timestamp        `json:"monitoring_date"`
	Result         compliance.Result       `json:"result"`
	Record         domain.MonitoringRecord `json:"record"`
}

// MonitoringTab is the covenant monitoring page for one loan
type MonitoringTab struct {
	LoanID     string             `json:"loan_id"`
	Trends     series.MultiSeries `json:"trends"`
	Compliance series.Series      `json:"compliance"`
	Summary    compliance.Summary `json:"summary"`
	Months     []MonitoredMonth   `json:"months"`
	Errors     map[string]string  `json:"errors,omitempty"`
}

// BuildMonitoring assembles the monitoring tab of one loan
func BuildMonitoring(loanID string, history []domain.MonitoringRecord) MonitoringTab {
	errs := chartErrors{}

	tab := MonitoringTab{
		LoanID:     loanID,
		Compliance: ComplianceDoughnut(history),
		Summary:    compliance.SummarizeCompliance(history),
		Months:     make([]MonitoredMonth, 0, len(history)),
	}
	for _, rec := range history {
		tab.Months = append(tab.Months, MonitoredMonth{
			Month:          rec.Month,
			MonitoringDate: rec.MonitoringDate,
			Result:         compliance.Classify(rec),
			Record:         rec,
		})
	}

	var err error
	tab.Trends, err = MonitoringTrends(history)
	errs.record(ChartMonitoringTrends, err)

	tab.Errors = errs.orNil()
	return tab
}

// AlertsTab lists ranked compliance alerts
type AlertsTab struct {
	Alerts     []compliance.Alert `json:"alerts"`
	BySeverity map[string]int     `json:"by_severity"`
}

// BuildAlerts ranks backend alerts
func BuildAlerts(records []domain.AlertRecord) AlertsTab {
	alerts := compliance.RankBackendAlerts(records)
	return AlertsTab{
		Alerts:     alerts,
		BySeverity: compliance.CountBySeverity(alerts),
	}
}

// RatesTab shows rate history, milestone tiers and savings of one loan
type RatesTab struct {
	LoanID        string                    `json:"loan_id"`
	History       series.MultiSeries        `json:"history"`
	Tiers         series.Series             `json:"tiers"`
	TotalDiscount float64                   `json:"total_discount"`
	Savings       *rates.Savings            `json:"savings"`
	TierTable     []rates.MilestoneTier     `json:"tier_table"`
	Entries       []domain.RateHistoryEntry `json:"entries"`
	Errors        map[string]string         `json:"errors,omitempty"`
}

// BuildRates assembles the rates tab of one loan. A nil savings record
// means no adjustment has been computed yet.
func BuildRates(loanID string, history []domain.RateHistoryEntry, savings *domain.SavingsRecord) RatesTab {
	errs := chartErrors{}

	entries := history
	if entries == nil {
		entries = []domain.RateHistoryEntry{}
	}

	tab := RatesTab{
		LoanID:        loanID,
		Tiers:         rates.TierTally(history),
		TotalDiscount: rates.TotalDiscount(history),
		Savings:       rates.SavingsCard(savings),
		TierTable:     rates.MilestoneTiers,
		Entries:       entries,
	}

	var err error
	tab.History, err = rates.HistorySeries(history)
	errs.record(ChartRateHistory, err)

	tab.Errors = errs.orNil()
	return tab
}

// LedgerTab shows the most recent ledger blocks and the chain's integrity
type LedgerTab struct {
	TotalBlocks      int                      `json:"total_blocks"`
	Blocks           []domain.LedgerBlock     `json:"blocks"`
	TransactionTypes series.Series            `json:"transaction_types"`
	DailyAmount      series.Series            `json:"daily_amount"`
	TotalAmount      float64                  `json:"total_amount"`
	Validation       *domain.LedgerValidation `json:"validation"`
	SkippedRecords   int                      `json:"skipped_records"`
	Errors           map[string]string        `json:"errors,omitempty"`
}

// BuildLedger assembles the ledger tab. A nil validation means the chain
// could not be checked.
func BuildLedger(blocks []domain.LedgerBlock, validation *domain.LedgerValidation) LedgerTab {
	valid, skipped := domain.Partition(blocks)

	daily := DailyLedgerAmount(valid)
	tab := LedgerTab{
		TotalBlocks:      len(valid),
		Blocks:           LatestBlocks(valid, RecentBlocks),
		TransactionTypes: TransactionTypeChart(valid),
		DailyAmount:      daily,
		Validation:       validation,
		SkippedRecords:   len(skipped),
	}
	for _, v := range daily.Values() {
		tab.TotalAmount += v
	}
	return tab
}
