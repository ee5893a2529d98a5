// Package handlers provides HTTP handlers for analytics charts.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aristath/ecoledger/internal/export"
	"github.com/aristath/ecoledger/internal/modules/charts"
	"github.com/aristath/ecoledger/internal/sources/rest"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

const contentTypeMsgpack = "application/msgpack"

// Handler handles analytics HTTP requests
type Handler struct {
	service *charts.Service
	log     zerolog.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(service *charts.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "analytics").Logger(),
	}
}

// HandleDashboard handles GET /api/analytics/dashboard
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	tab, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.writeFetchError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, tab)
}

// HandleSummary handles GET /api/analytics/summary
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Summary(r.Context())
	if err != nil {
		h.writeFetchError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, s)
}

// HandleAnalytics handles GET /api/analytics/charts
func (h *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	tab, err := h.service.Analytics(r.Context())
	if err != nil {
		h.writeFetchError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, tab)
}

// HandleTrading handles GET /api/analytics/trading
func (h *Handler) HandleTrading(w http.ResponseWriter, r *http.Request) {
	tab, err := h.service.Trading(r.Context())
	if err != nil {
		h.writeFetchError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, tab)
}

// HandleDocuments handles GET /api/analytics/documents
func (h *Handler) HandleDocuments(w http.ResponseWriter, r *http.Request) {
	tab, err := h.service.Documents(r.Context())
	if err != nil {
		h.writeFetchError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, tab)
}

// HandleLedger handles GET /api/analytics/ledger
func (h *Handler) HandleLedger(w http.ResponseWriter, r *http.Request) {
	tab, err := h.service.Ledger(r.Context())
	if err != nil {
		h.writeFetchError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, tab)
}

// HandleMonitoring handles GET /api/analytics/monitoring/{loanID}
func (h *Handler) HandleMonitoring(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}

	tab, err := h.service.Monitoring(r.Context(), loanID)
	if err != nil {
		h.writeFetchError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, tab)
}

// HandleAlerts handles GET /api/analytics/alerts
func (h *Handler) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	tab, err := h.service.Alerts(r.Context())
	if err != nil {
		h.writeFetchError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, tab)
}

// HandleRates handles GET /api/analytics/rates/{loanID}
func (h *Handler) HandleRates(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}

	tab, err := h.service.Rates(r.Context(), loanID)
	if err != nil {
		h.writeFetchError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, tab)
}

// HandleCalculateRate handles POST /api/analytics/rates/{loanID}/calculate
func (h *Handler) HandleCalculateRate(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}

	card, err := h.service.CalculateRate(r.Context(), loanID)
	switch {
	case errors.Is(err, charts.ErrCalculatorUnavailable):
		h.writeError(w, http.StatusNotImplemented, err.Error())
		return
	case rest.IsNotFound(err):
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		h.writeFetchError(w, err)
		return
	}

	h.respond(w, r, http.StatusCreated, card)
}

// HandleExport handles GET /api/analytics/export.xlsx
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.writeFetchError(w, err)
		return
	}

	filename := fmt.Sprintf("ecoledger-analytics-%s.xlsx", snap.GeneratedAt.Format("20060102-150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := export.Write(w, snap); err != nil {
		h.log.Error().Err(err).Msg("Failed to write workbook")
	}
}

func (h *Handler) loanID(w http.ResponseWriter, r *http.Request) (string, bool) {
	loanID := strings.TrimSpace(chi.URLParam(r, "loanID"))
	if loanID == "" {
		h.writeError(w, http.StatusBadRequest, "loan id is required")
		return "", false
	}
	return loanID, true
}

// respond writes data as MessagePack when the client asks for it, JSON otherwise
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if strings.Contains(r.Header.Get("Accept"), contentTypeMsgpack) {
		h.writeMsgpack(w, status, data)
		return
	}
	h.writeJSON(w, status, data)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeMsgpack(w http.ResponseWriter, status int, data interface{}) {
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)

	w.Header().Set("Content-Type", contentTypeMsgpack)
	w.WriteHeader(status)

	enc.Reset(w)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode MessagePack response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeFetchError maps source failures: timeouts are 504, anything else from
// the source is a bad gateway
func (h *Handler) writeFetchError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	h.log.Error().Err(err).Int("status", status).Msg("Analytics request failed")
	h.writeError(w, status, err.Error())
}
