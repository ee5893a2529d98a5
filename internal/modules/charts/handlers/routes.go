package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all analytics routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		// Loan-wide tabs
		r.Get("/dashboard", h.HandleDashboard)
		r.Get("/summary", h.HandleSummary)
		r.Get("/charts", h.HandleAnalytics)
		r.Get("/trading", h.HandleTrading)
		r.Get("/documents", h.HandleDocuments)
		r.Get("/alerts", h.HandleAlerts)
		r.Get("/ledger", h.HandleLedger)
		r.Get("/export.xlsx", h.HandleExport)

		// Per-loan tabs
		r.Get("/monitoring/{loanID}", h.HandleMonitoring)
		r.Get("/rates/{loanID}", h.HandleRates)
		r.Post("/rates/{loanID}/calculate", h.HandleCalculateRate)
	})
}
