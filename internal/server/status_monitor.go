package server

import (
	"context"
	"sync"
	"time"

	"github.com/aristath/ecoledger/internal/events"
	"github.com/aristath/ecoledger/internal/sources"
	"github.com/rs/zerolog"
)

// StatusMonitor periodically checks the record source and emits an event
// whenever its reachability changes
type StatusMonitor struct {
	source  string
	checker sources.HealthChecker
	bus     *events.Bus
	log     zerolog.Logger

	stop      chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
	startOnce sync.Once
	started   bool

	// Track previous state; nil until the first check
	lastHealthy *bool
}

// NewStatusMonitor creates a new status monitor
func NewStatusMonitor(source string, checker sources.HealthChecker, bus *events.Bus, log zerolog.Logger) *StatusMonitor {
	return &StatusMonitor{
		source:  source,
		checker: checker,
		bus:     bus,
		log:     log.With().Str("component", "status_monitor").Logger(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins periodic status monitoring
func (m *StatusMonitor) Start(interval time.Duration) {
	m.startOnce.Do(func() {
		m.started = true
		go m.monitor(interval)
	})
}

// Stop ends monitoring and waits for the loop to exit
func (m *StatusMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
	if m.started {
		<-m.done
	}
}

// monitor runs the periodic monitoring loop
func (m *StatusMonitor) monitor(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Do initial check
	m.checkSource(interval)

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.checkSource(interval)
		}
	}
}

// checkSource checks the source health and emits SourceStatusChanged on a change
func (m *StatusMonitor) checkSource(timeout time.Duration) {
	if timeout > sourceCheckTimeout {
		timeout = sourceCheckTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := m.checker.HealthCheck(ctx)
	healthy := err == nil

	if m.lastHealthy != nil && *m.lastHealthy == healthy {
		return
	}
	m.lastHealthy = &healthy

	data := &events.SourceStatusData{Source: m.source, Healthy: healthy}
	if err != nil {
		data.Error = err.Error()
		m.log.Warn().Err(err).Str("source", m.source).Msg("Source unreachable")
	} else {
		m.log.Info().Str("source", m.source).Msg("Source reachable")
	}
	m.bus.Emit("status_monitor", data)
}
