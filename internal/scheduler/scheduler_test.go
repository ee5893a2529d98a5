package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aristath/ecoledger/internal/events"
	"github.com/aristath/ecoledger/internal/metrics"
	"github.com/aristath/ecoledger/internal/modules/charts"
	"github.com/aristath/ecoledger/internal/modules/compliance"
	"github.com/aristath/ecoledger/internal/modules/summary"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs int
	err  error
}

func (j *countingJob) Run() error {
	j.runs++
	return j.err
}

func (j *countingJob) Name() string { return "counting" }

func TestScheduler_AddJob(t *testing.T) {
	s := New(zerolog.Nop())

	for _, schedule := range []string{"@every 5m", "*/10 * * * *", "0 */15 * * * *", "@hourly"} {
		require.NoError(t, s.AddJob(schedule, &countingJob{}), schedule)
	}
	assert.Equal(t, 4, s.Jobs())

	err := s.AddJob("every now and then", &countingJob{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "counting")
	assert.Equal(t, 4, s.Jobs())
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{err: errors.New("boom")}

	assert.EqualError(t, s.RunNow(job), "boom")
	assert.Equal(t, 1, job.runs)
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(zerolog.Nop())
	require.NoError(t, s.AddJob("@every 1h", &countingJob{}))

	s.Start()
	s.Stop()
}

type fakeRefresher struct {
	snap      charts.Snapshot
	snapErr   error
	alerts    charts.AlertsTab
	alertsErr error
}

func (f *fakeRefresher) Snapshot(ctx context.Context) (charts.Snapshot, error) {
	return f.snap, f.snapErr
}

func (f *fakeRefresher) Alerts(ctx context.Context) (charts.AlertsTab, error) {
	return f.alerts, f.alertsErr
}

func (f *fakeRefresher) SourceName() string { return "rest" }

func TestRefreshJob_PublishesEvents(t *testing.T) {
	generated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	refresher := &fakeRefresher{
		snap: charts.Snapshot{
			GeneratedAt: generated,
			Dashboard: charts.DashboardTab{
				Summary: summary.DashboardSummary{
					TotalLoans:           3,
					ApprovalRate:         2.0 / 3.0,
					TotalBorrowerSavings: 120,
					SkippedRecords:       1,
				},
				Errors: map[string]string{"score_distribution": "bad edges"},
			},
		},
		alerts: charts.AlertsTab{
			Alerts:     []compliance.Alert{{LoanID: "L1"}, {LoanID: "L2"}},
			BySeverity: map[string]int{"High": 1, "Low": 1},
		},
	}
	bus := events.NewBus(zerolog.Nop())
	sub := bus.Subscribe(4)
	m := metrics.New(prometheus.NewRegistry())

	job := NewRefreshJob(refresher, bus, m, time.Second, zerolog.Nop())
	require.NoError(t, job.Run())

	first := <-sub.C
	require.Equal(t, events.DashboardRefreshed, first.Type)
	assert.Equal(t, "scheduler", first.Module)
	refreshed := first.Data.(*events.DashboardRefreshedData)
	assert.Equal(t, generated, refreshed.GeneratedAt)
	assert.Equal(t, "rest", refreshed.Source)
	assert.Equal(t, 3, refreshed.TotalLoans)
	assert.Equal(t, 120.0, refreshed.TotalBorrowerSavings)
	assert.Equal(t, 1, refreshed.SkippedRecords)
	assert.Equal(t, 1, refreshed.ChartErrors)

	second := <-sub.C
	require.Equal(t, events.AlertsUpdated, second.Type)
	updated := second.Data.(*events.AlertsUpdatedData)
	assert.Equal(t, 2, updated.Total)
	assert.Equal(t, 1, updated.BySeverity["High"])

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshRuns.WithLabelValues("ok")))
}

func TestRefreshJob_Failure(t *testing.T) {
	tests := []struct {
		name      string
		refresher *fakeRefresher
		stage     string
	}{
		{"snapshot", &fakeRefresher{snapErr: errors.New("backend down")}, "snapshot"},
		{"alerts", &fakeRefresher{alertsErr: errors.New("backend down")}, "alerts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := events.NewBus(zerolog.Nop())
			sub := bus.Subscribe(4)
			m := metrics.New(prometheus.NewRegistry())

			job := NewRefreshJob(tt.refresher, bus, m, time.Second, zerolog.Nop())
			err := job.RunContext(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.stage)

			e := <-sub.C
			require.Equal(t, events.ErrorOccurred, e.Type)
			data := e.Data.(*events.ErrorEventData)
			assert.Equal(t, "backend down", data.Error)
			assert.Equal(t, tt.stage, data.Context["stage"])

			assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshRuns.WithLabelValues("error")))
			assert.Equal(t, 0, len(sub.C))
		})
	}
}

func TestRefreshJob_WithoutBusOrMetrics(t *testing.T) {
	job := NewRefreshJob(&fakeRefresher{}, nil, nil, 0, zerolog.Nop())
	assert.Equal(t, "dashboard_refresh", job.Name())
	assert.NoError(t, job.Run())
}
