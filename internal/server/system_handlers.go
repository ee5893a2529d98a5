package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/ecoledger/internal/events"
	"github.com/aristath/ecoledger/internal/scheduler"
	"github.com/aristath/ecoledger/internal/sources"
)

const sourceCheckTimeout = 5 * time.Second

// SystemStatusResponse is returned by GET /api/system/status
type SystemStatusResponse struct {
	Status            string  `json:"status"`
	Source            string  `json:"source"`
	SourceHealthy     *bool   `json:"source_healthy"`
	SourceError       string  `json:"source_error,omitempty"`
	UptimeHours       float64 `json:"uptime_hours"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	Goroutines        int     `json:"goroutines"`
	StreamSubscribers int     `json:"stream_subscribers"`
	DroppedEvents     uint64  `json:"dropped_events"`
}

// SystemHandlers serves health, status and job trigger endpoints
type SystemHandlers struct {
	source      sources.Source
	bus         *events.Bus
	startupTime time.Time
	log         zerolog.Logger

	mu         sync.Mutex
	refreshJob scheduler.Job
	// cpuStats is replaced in tests
	cpuStats func() (float64, float64)
}

// NewSystemHandlers creates system handlers
func NewSystemHandlers(source sources.Source, bus *events.Bus, log zerolog.Logger) *SystemHandlers {
	h := &SystemHandlers{
		source:      source,
		bus:         bus,
		startupTime: time.Now(),
		log:         log.With().Str("handler", "system").Logger(),
	}
	h.cpuStats = h.getSystemStats
	return h
}

// SetRefreshJob registers the refresh job for manual triggering
func (h *SystemHandlers) SetRefreshJob(job scheduler.Job) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refreshJob = job
}

// HandleHealth reports liveness
// GET /health
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// HandleSystemStatus reports source health, process and host statistics
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	response := SystemStatusResponse{
		Status:      "healthy",
		UptimeHours: time.Since(h.startupTime).Hours(),
		Goroutines:  runtime.NumGoroutine(),
	}

	if h.source != nil {
		response.Source = h.source.Name()
		if checker, ok := h.source.(sources.HealthChecker); ok {
			ctx, cancel := context.WithTimeout(r.Context(), sourceCheckTimeout)
			err := checker.HealthCheck(ctx)
			cancel()

			healthy := err == nil
			response.SourceHealthy = &healthy
			if err != nil {
				response.Status = "degraded"
				response.SourceError = err.Error()
				h.log.Warn().Err(err).Str("source", response.Source).Msg("Source health check failed")
			}
		}
	}

	response.CPUPercent, response.MemoryPercent = h.cpuStats()

	if h.bus != nil {
		response.StreamSubscribers = h.bus.Subscribers()
		response.DroppedEvents = h.bus.Dropped()
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleTriggerRefresh runs the dashboard refresh job in the background
// POST /api/system/jobs/refresh
func (h *SystemHandlers) HandleTriggerRefresh(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	job := h.refreshJob
	h.mu.Unlock()

	if job == nil {
		h.log.Warn().Msg("Refresh job not registered")
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "Refresh job not registered",
		})
		return
	}

	h.log.Info().Str("job", job.Name()).Msg("Manual refresh triggered")
	go func() {
		if err := job.Run(); err != nil {
			h.log.Error().Err(err).Str("job", job.Name()).Msg("Manual refresh failed")
		}
	}()

	h.writeJSON(w, http.StatusAccepted, map[string]string{
		"status":  "success",
		"message": "Refresh triggered",
	})
}

// getSystemStats returns CPU and RAM usage percentages.
// CPU is sampled over 100ms to keep the endpoint responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
