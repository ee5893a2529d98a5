package charts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/events"
	"github.com/aristath/ecoledger/internal/metrics"
	"github.com/aristath/ecoledger/internal/modules/rates"
	"github.com/aristath/ecoledger/internal/modules/summary"
	"github.com/aristath/ecoledger/internal/sources"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	defaultFetchTimeout = 15 * time.Second
	// savingsConcurrency bounds per-loan savings fetches
	savingsConcurrency = 8
)

// ErrCalculatorUnavailable is returned when the source cannot compute rates
var ErrCalculatorUnavailable = errors.New("rate calculation is not supported by the configured source")

// Snapshot is every loan-wide tab computed from one fetch
type Snapshot struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Dashboard   DashboardTab `json:"dashboard"`
	Analytics   AnalyticsTab `json:"analytics"`
	Trading     TradingTab   `json:"trading"`
}

// Service fetches records from a source and assembles chart tabs
type Service struct {
	source       sources.Source
	calculator   sources.RateCalculator
	fetchTimeout time.Duration
	metrics      *metrics.Metrics
	bus          *events.Bus
	log          zerolog.Logger
}

// NewService creates a new charts service. calculator may be nil when the
// source cannot compute rate adjustments.
func NewService(
	source sources.Source,
	calculator sources.RateCalculator,
	fetchTimeout time.Duration,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Service{
		source:       source,
		calculator:   calculator,
		fetchTimeout: fetchTimeout,
		metrics:      m,
		log:          log.With().Str("service", "charts").Logger(),
	}
}

// SetEventBus enables events for user-triggered operations
func (s *Service) SetEventBus(bus *events.Bus) {
	s.bus = bus
}

// SourceName returns the name of the configured source
func (s *Service) SourceName() string {
	return s.source.Name()
}

// Dashboard returns the summary cards and overview charts
func (s *Service) Dashboard(ctx context.Context) (DashboardTab, error) {
	defer s.observe("dashboard", time.Now())

	var (
		loans      []domain.LoanRecord
		portfolios []domain.PortfolioRecord
		trades     []domain.TradeRecord
		monitoring []domain.MonitoringRecord
		listed     bool
	)
	err := s.gather(ctx, func(ctx context.Context, g *errgroup.Group) {
		fetch(ctx, s, g, "loans", &loans, s.source.Loans)
		fetch(ctx, s, g, "portfolios", &portfolios, s.source.Portfolios)
		fetch(ctx, s, g, "trades", &trades, s.source.Trades)
		listed = s.fetchAllMonitoring(ctx, g, &monitoring)
	})
	if err != nil {
		return DashboardTab{}, err
	}

	s.noteEmpty("loan", len(loans))
	savings, err := s.savings(ctx, loans)
	if err != nil {
		return DashboardTab{}, err
	}

	tab := BuildDashboard(loans, portfolios, trades, savings)
	if listed {
		avg := summary.AvgCarbonReduction(monitoring)
		tab.Summary.AvgCarbonReduction = &avg
	}
	s.report("dashboard", tab.Summary.SkippedRecords, tab.Errors)
	return tab, nil
}

// Summary returns the dashboard summary cards only
func (s *Service) Summary(ctx context.Context) (summary.DashboardSummary, error) {
	tab, err := s.Dashboard(ctx)
	if err != nil {
		return summary.DashboardSummary{}, err
	}
	return tab.Summary, nil
}

// Analytics returns the loan analytics charts
func (s *Service) Analytics(ctx context.Context) (AnalyticsTab, error) {
	defer s.observe("analytics", time.Now())

	var loans []domain.LoanRecord
	err := s.gather(ctx, func(ctx context.Context, g *errgroup.Group) {
		fetch(ctx, s, g, "loans", &loans, s.source.Loans)
	})
	if err != nil {
		return AnalyticsTab{}, err
	}

	s.noteEmpty("loan", len(loans))
	tab := BuildAnalytics(loans)
	s.report("analytics", tab.SkippedRecords, tab.Errors)
	return tab, nil
}

// Trading returns the trading floor charts
func (s *Service) Trading(ctx context.Context) (TradingTab, error) {
	defer s.observe("trading", time.Now())

	var (
		portfolios []domain.PortfolioRecord
		trades     []domain.TradeRecord
	)
	err := s.gather(ctx, func(ctx context.Context, g *errgroup.Group) {
		fetch(ctx, s, g, "portfolios", &portfolios, s.source.Portfolios)
		fetch(ctx, s, g, "trades", &trades, s.source.Trades)
	})
	if err != nil {
		return TradingTab{}, err
	}

	s.noteEmpty("portfolio", len(portfolios))
	s.noteEmpty("trade", len(trades))
	tab := BuildTrading(portfolios, trades)
	s.report("trading", tab.SkippedRecords, tab.Errors)
	return tab, nil
}

// Documents returns the document processing charts
func (s *Service) Documents(ctx context.Context) (DocumentsTab, error) {
	defer s.observe("documents", time.Now())

	var docs []domain.DocumentRecord
	err := s.gather(ctx, func(ctx context.Context, g *errgroup.Group) {
		fetch(ctx, s, g, "documents", &docs, s.source.Documents)
	})
	if err != nil {
		return DocumentsTab{}, err
	}

	s.noteEmpty("document", len(docs))
	tab := BuildDocuments(docs)
	s.report("documents", tab.SkippedRecords, tab.Errors)
	return tab, nil
}

// Monitoring returns compliance trends and classifications for one loan
func (s *Service) Monitoring(ctx context.Context, loanID string) (MonitoringTab, error) {
	defer s.observe("monitoring", time.Now())

	var history []domain.MonitoringRecord
	err := s.gather(ctx, func(ctx context.Context, g *errgroup.Group) {
		fetch(ctx, s, g, "monitoring history", &history, func(ctx context.Context) ([]domain.MonitoringRecord, error) {
			return s.source.MonitoringHistory(ctx, loanID)
		})
	})
	if err != nil {
		return MonitoringTab{}, err
	}

	s.noteEmpty("monitoring", len(history))
	tab := BuildMonitoring(loanID, history)
	s.report("monitoring", 0, tab.Errors)
	return tab, nil
}

// Alerts returns severity-ranked compliance alerts
func (s *Service) Alerts(ctx context.Context) (AlertsTab, error) {
	defer s.observe("alerts", time.Now())

	var records []domain.AlertRecord
	err := s.gather(ctx, func(ctx context.Context, g *errgroup.Group) {
		fetch(ctx, s, g, "alerts", &records, s.source.Alerts)
	})
	if err != nil {
		return AlertsTab{}, err
	}

	s.noteEmpty("alert", len(records))
	return BuildAlerts(records), nil
}

// Rates returns rate history, tier tally and savings of one loan
func (s *Service) Rates(ctx context.Context, loanID string) (RatesTab, error) {
	defer s.observe("rates", time.Now())

	var (
		history []domain.RateHistoryEntry
		savings *domain.SavingsRecord
	)
	err := s.gather(ctx, func(ctx context.Context, g *errgroup.Group) {
		fetch(ctx, s, g, "rate history", &history, func(ctx context.Context) ([]domain.RateHistoryEntry, error) {
			return s.source.RateHistory(ctx, loanID)
		})
		fetch(ctx, s, g, "savings", &savings, func(ctx context.Context) (*domain.SavingsRecord, error) {
			return s.source.Savings(ctx, loanID)
		})
	})
	if err != nil {
		return RatesTab{}, err
	}

	s.noteEmpty("rate history", len(history))
	tab := BuildRates(loanID, history, savings)
	s.report("rates", 0, tab.Errors)
	return tab, nil
}

// Ledger returns the recent ledger blocks and the chain validation. A failed
// validation is recorded in the tab's errors; the blocks are still shown.
func (s *Service) Ledger(ctx context.Context) (LedgerTab, error) {
	defer s.observe("ledger", time.Now())

	var (
		blocks        []domain.LedgerBlock
		validation    *domain.LedgerValidation
		validationErr error
	)
	err := s.gather(ctx, func(ctx context.Context, g *errgroup.Group) {
		fetch(ctx, s, g, "ledger blocks", &blocks, s.source.LedgerBlocks)
		g.Go(func() error {
			start := time.Now()
			v, err := s.source.ValidateLedger(ctx)
			s.metrics.ObserveFetch(s.source.Name(), "ledger validation", time.Since(start), err)
			if err != nil {
				if ctx.Err() != nil {
					return fmt.Errorf("failed to fetch ledger validation: %w", err)
				}
				validationErr = err
				return nil
			}
			validation = &v
			return nil
		})
	})
	if err != nil {
		return LedgerTab{}, err
	}

	s.noteEmpty("ledger", len(blocks))
	tab := BuildLedger(blocks, validation)
	if validationErr != nil {
		tab.Errors = map[string]string{ChartLedgerValidation: validationErr.Error()}
	}
	s.report("ledger", tab.SkippedRecords, tab.Errors)
	return tab, nil
}

// CalculateRate asks the backend for a new rate adjustment and returns its card
func (s *Service) CalculateRate(ctx context.Context, loanID string) (rates.Card, error) {
	if s.calculator == nil {
		return rates.Card{}, ErrCalculatorUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	adj, err := s.calculator.CalculateRate(ctx, loanID)
	if err != nil {
		return rates.Card{}, fmt.Errorf("failed to calculate rate for loan %s: %w", loanID, err)
	}

	card := rates.RateCard(*adj)
	s.log.Info().
		Str("loan_id", loanID).
		Float64("adjusted_rate", card.AdjustedRate).
		Str("tier", card.MilestoneTier).
		Msg("Rate adjustment calculated")

	if s.bus != nil {
		s.bus.Emit("analytics", &events.RateCalculatedData{
			LoanID:        card.LoanID,
			BaseRate:      card.BaseRate,
			AdjustedRate:  card.AdjustedRate,
			MilestoneTier: card.MilestoneTier,
		})
	}
	return card, nil
}

// Snapshot fetches loans, portfolios and trades once and builds the
// dashboard, analytics and trading tabs from them
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	defer s.observe("snapshot", time.Now())

	var (
		loans      []domain.LoanRecord
		portfolios []domain.PortfolioRecord
		trades     []domain.TradeRecord
		monitoring []domain.MonitoringRecord
		listed     bool
	)
	err := s.gather(ctx, func(ctx context.Context, g *errgroup.Group) {
		fetch(ctx, s, g, "loans", &loans, s.source.Loans)
		fetch(ctx, s, g, "portfolios", &portfolios, s.source.Portfolios)
		fetch(ctx, s, g, "trades", &trades, s.source.Trades)
		listed = s.fetchAllMonitoring(ctx, g, &monitoring)
	})
	if err != nil {
		return Snapshot{}, err
	}

	savings, err := s.savings(ctx, loans)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		GeneratedAt: time.Now().UTC(),
		Dashboard:   BuildDashboard(loans, portfolios, trades, savings),
		Analytics:   BuildAnalytics(loans),
		Trading:     BuildTrading(portfolios, trades),
	}
	if listed {
		avg := summary.AvgCarbonReduction(monitoring)
		snap.Dashboard.Summary.AvgCarbonReduction = &avg
	}
	s.report("dashboard", snap.Dashboard.Summary.SkippedRecords, snap.Dashboard.Errors)
	s.report("analytics", snap.Analytics.SkippedRecords, snap.Analytics.Errors)
	s.report("trading", snap.Trading.SkippedRecords, snap.Trading.Errors)
	return snap, nil
}

// savings collects borrower savings for the approved loans. Sources that
// list all savings at once are asked once; otherwise each approved loan is
// fetched with bounded concurrency and loans without an adjustment are
// skipped.
func (s *Service) savings(ctx context.Context, loans []domain.LoanRecord) ([]domain.SavingsRecord, error) {
	if lister, ok := s.source.(sources.SavingsLister); ok {
		var all []domain.SavingsRecord
		err := s.gather(ctx, func(ctx context.Context, g *errgroup.Group) {
			fetch(ctx, s, g, "savings", &all, lister.AllSavings)
		})
		return all, err
	}

	valid, _ := domain.Partition(loans)
	var approved []string
	for _, loan := range valid {
		if loan.IsApproved() {
			approved = append(approved, loan.LoanID)
		}
	}

	results := make([]*domain.SavingsRecord, len(approved))
	err := s.gather(ctx, func(ctx context.Context, g *errgroup.Group) {
		g.SetLimit(savingsConcurrency)
		for i, loanID := range approved {
			i, loanID := i, loanID
			g.Go(func() error {
				start := time.Now()
				rec, err := s.source.Savings(ctx, loanID)
				s.metrics.ObserveFetch(s.source.Name(), "savings", time.Since(start), err)
				if err != nil {
					if ctx.Err() != nil {
						return fmt.Errorf("failed to fetch savings: %w", err)
					}
					s.log.Warn().Err(err).Str("loan_id", loanID).Msg("Skipping loan savings")
					return nil
				}
				results[i] = rec
				return nil
			})
		}
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.SavingsRecord, 0, len(results))
	for _, rec := range results {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// fetchAllMonitoring schedules a fetch of every monitoring record when the
// source can list them, reporting whether it did
func (s *Service) fetchAllMonitoring(ctx context.Context, g *errgroup.Group, dst *[]domain.MonitoringRecord) bool {
	lister, ok := s.source.(sources.MonitoringLister)
	if !ok {
		return false
	}
	fetch(ctx, s, g, "monitoring records", dst, lister.AllMonitoring)
	return true
}

// gather runs the fetches scheduled by launch under the fetch timeout and
// waits for all of them. The first failure cancels the rest.
func (s *Service) gather(ctx context.Context, launch func(context.Context, *errgroup.Group)) error {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	launch(gctx, g)

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("source", s.source.Name()).Msg("Fetch failed")
		return err
	}
	return nil
}

func fetch[T any](ctx context.Context, s *Service, g *errgroup.Group, collection string, dst *T, fn func(context.Context) (T, error)) {
	g.Go(func() error {
		start := time.Now()
		v, err := fn(ctx)
		s.metrics.ObserveFetch(s.source.Name(), collection, time.Since(start), err)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", collection, err)
		}
		*dst = v
		return nil
	})
}

func (s *Service) report(tab string, skipped int, errs map[string]string) {
	if skipped > 0 {
		s.metrics.AddSkipped(tab, skipped)
		s.log.Debug().Str("tab", tab).Int("skipped", skipped).Msg("Skipped records without identifier")
	}
	for chart, msg := range errs {
		s.metrics.IncrementChartError(chart)
		s.log.Warn().Str("tab", tab).Str("chart", chart).Str("error", msg).Msg("Chart build failed")
	}
}

// noteEmpty logs aggregations over empty collections
func (s *Service) noteEmpty(kind string, n int) {
	if w, empty := domain.CheckEmpty(kind, n); empty {
		s.log.Debug().Str("kind", kind).Msg(w.String())
	}
}

func (s *Service) observe(tab string, start time.Time) {
	s.metrics.ObserveBuild(tab, time.Since(start))
}
