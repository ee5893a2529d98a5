package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/ecoledger/internal/events"
	"github.com/aristath/ecoledger/internal/metrics"
	"github.com/aristath/ecoledger/internal/modules/charts"
	"github.com/rs/zerolog"
)

const refreshModule = "scheduler"

// Refresher is the part of the chart service the refresh job drives
type Refresher interface {
	Snapshot(ctx context.Context) (charts.Snapshot, error)
	Alerts(ctx context.Context) (charts.AlertsTab, error)
	SourceName() string
}

// RefreshJob rebuilds the dashboard and alert counts and publishes them on
// the event bus
type RefreshJob struct {
	refresher Refresher
	bus       *events.Bus
	metrics   *metrics.Metrics
	timeout   time.Duration
	log       zerolog.Logger
}

// NewRefreshJob creates a refresh job. Each run is bounded by timeout.
func NewRefreshJob(refresher Refresher, bus *events.Bus, m *metrics.Metrics, timeout time.Duration, log zerolog.Logger) *RefreshJob {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &RefreshJob{
		refresher: refresher,
		bus:       bus,
		metrics:   m,
		timeout:   timeout,
		log:       log.With().Str("job", "dashboard_refresh").Logger(),
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "dashboard_refresh"
}

// Run executes one refresh
func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	return j.RunContext(ctx)
}

// RunContext executes one refresh bound to ctx
func (j *RefreshJob) RunContext(ctx context.Context) error {
	start := time.Now()

	snap, err := j.refresher.Snapshot(ctx)
	if err != nil {
		return j.fail("snapshot", err)
	}

	alerts, err := j.refresher.Alerts(ctx)
	if err != nil {
		return j.fail("alerts", err)
	}

	sum := snap.Dashboard.Summary
	j.emit(&events.DashboardRefreshedData{
		GeneratedAt:          snap.GeneratedAt,
		Source:               j.refresher.SourceName(),
		TotalLoans:           sum.TotalLoans,
		ApprovalRate:         sum.ApprovalRate,
		ComplianceRate:       sum.ComplianceRate,
		TotalTradingVolume:   sum.TotalTradingVolume,
		TotalBorrowerSavings: sum.TotalBorrowerSavings,
		SkippedRecords:       sum.SkippedRecords,
		ChartErrors:          len(snap.Dashboard.Errors) + len(snap.Analytics.Errors) + len(snap.Trading.Errors),
		DurationMs:           time.Since(start).Milliseconds(),
	})
	j.emit(&events.AlertsUpdatedData{
		Total:      len(alerts.Alerts),
		BySeverity: alerts.BySeverity,
	})

	j.metrics.IncrementRefresh("ok")
	j.log.Info().
		Int("loans", sum.TotalLoans).
		Int("alerts", len(alerts.Alerts)).
		Dur("duration", time.Since(start)).
		Msg("Dashboard refreshed")
	return nil
}

func (j *RefreshJob) emit(data events.EventData) {
	if j.bus != nil {
		j.bus.Emit(refreshModule, data)
	}
}

func (j *RefreshJob) fail(stage string, err error) error {
	j.metrics.IncrementRefresh("error")
	if j.bus != nil {
		j.bus.EmitError(refreshModule, err, map[string]interface{}{
			"job":   j.Name(),
			"stage": stage,
		})
	}
	return fmt.Errorf("dashboard refresh failed at %s: %w", stage, err)
}
