// Package sources defines where analytics records come from.
package sources

import (
	"context"

	"github.com/aristath/ecoledger/internal/domain"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// Source supplies the raw record collections the aggregation modules consume.
// Implementations must honor ctx cancellation.
type Source interface {
	Loans(ctx context.Context) ([]domain.LoanRecord, error)
	Portfolios(ctx context.Context) ([]domain.PortfolioRecord, error)
	Trades(ctx context.Context) ([]domain.TradeRecord, error)
	Documents(ctx context.Context) ([]domain.DocumentRecord, error)
	MonitoringHistory(ctx context.Context, loanID string) ([]domain.MonitoringRecord, error)
	Alerts(ctx context.Context) ([]domain.AlertRecord, error)
	RateHistory(ctx context.Context, loanID string) ([]domain.RateHistoryEntry, error)
	// Savings returns nil when the loan has no rate adjustment yet
	Savings(ctx context.Context, loanID string) (*domain.SavingsRecord, error)
	// LedgerBlocks returns ledger blocks, newest first
	LedgerBlocks(ctx context.Context) ([]domain.LedgerBlock, error)
	ValidateLedger(ctx context.Context) (domain.LedgerValidation, error)
	Name() string
}

// RateCalculator asks the backend to compute a new rate adjustment
type RateCalculator interface {
	CalculateRate(ctx context.Context, loanID string) (*domain.RateAdjustment, error)
}

// SavingsLister is implemented by sources that can return the savings of
// every adjusted loan in one call
type SavingsLister interface {
	AllSavings(ctx context.Context) ([]domain.SavingsRecord, error)
}

// MonitoringLister is implemented by sources that can return the monitoring
// records of every loan in one call
type MonitoringLister interface {
	AllMonitoring(ctx context.Context) ([]domain.MonitoringRecord, error)
}

// HealthChecker is implemented by sources that can check their backend
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
