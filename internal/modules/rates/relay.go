// Package rates shapes backend rate-adjustment and savings results into
// display-ready cards and series. The rate computation itself happens in the
// lending backend.
package rates

import (
	"sort"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/bucketing"
	"github.com/aristath/ecoledger/internal/modules/series"
)

// NoTier labels adjustments that reached no milestone
const NoTier = "None"

// MilestoneTier is one row of the published discount table
type MilestoneTier struct {
	Tier               string  `json:"tier"`
	MinCarbonReduction float64 `json:"min_carbon_reduction_pct"`
	RateDiscount       float64 `json:"rate_discount_pct"`
}

// MilestoneTiers is the discount table applied by the backend rate engine
var MilestoneTiers = []MilestoneTier{
	{Tier: "tier_1", MinCarbonReduction: 10, RateDiscount: 0.25},
	{Tier: "tier_2", MinCarbonReduction: 20, RateDiscount: 0.50},
	{Tier: "tier_3", MinCarbonReduction: 30, RateDiscount: 0.75},
	{Tier: "tier_4", MinCarbonReduction: 40, RateDiscount: 1.00},
	{Tier: "tier_5", MinCarbonReduction: 50, RateDiscount: 1.50},
}

// Card is the display form of a rate adjustment
type Card struct {
	LoanID        string  `json:"loan_id"`
	BaseRate      float64 `json:"base_rate"`
	AdjustedRate  float64 `json:"adjusted_rate"`
	MilestoneTier string  `json:"milestone_tier"`
	TotalDiscount float64 `json:"total_discount"`
	RateChangePct float64 `json:"rate_change_pct"`
	Discounted    bool    `json:"discounted"`
	Improved      bool    `json:"improved"`
}

// RateCard shapes a rate adjustment result
func RateCard(adj domain.RateAdjustment) Card {
	return Card{
		LoanID:        adj.LoanID,
		BaseRate:      adj.BaseRate,
		AdjustedRate:  adj.AdjustedRate,
		MilestoneTier: tierName(adj.MilestoneTier),
		TotalDiscount: adj.TotalDiscount,
		RateChangePct: adj.RateChangePct,
		Discounted:    adj.TotalDiscount > 0,
		Improved:      adj.RateChangePct < 0,
	}
}

// Savings is the display form of borrower savings
type Savings struct {
	LoanID           string  `json:"loan_id"`
	LoanAmount       float64 `json:"loan_amount"`
	BaseInterest     float64 `json:"base_interest"`
	AdjustedInterest float64 `json:"adjusted_interest"`
	TotalSavings     float64 `json:"total_savings"`
	SavingsPct       float64 `json:"savings_pct"`
	Positive         bool    `json:"positive"`
}

// SavingsCard shapes a savings result. A nil record yields nil.
func SavingsCard(rec *domain.SavingsRecord) *Savings {
	if rec == nil {
		return nil
	}
	return &Savings{
		LoanID:           rec.LoanID,
		LoanAmount:       rec.LoanAmount,
		BaseInterest:     rec.BaseInterest,
		AdjustedInterest: rec.AdjustedInterest,
		TotalSavings:     rec.TotalSavings,
		SavingsPct:       rec.SavingsPct,
		Positive:         rec.TotalSavings > 0,
	}
}

// HistorySeries plots base and adjusted rate per month, ordered by month.
// Two entries for the same month are a shape error.
func HistorySeries(history []domain.RateHistoryEntry) (series.MultiSeries, error) {
	entries := sortedByMonth(history)

	base := series.Series{Name: "Base Rate", Points: make([]series.Point, 0, len(entries))}
	adjusted := series.Series{Name: "Adjusted Rate", Points: make([]series.Point, 0, len(entries))}
	for _, e := range entries {
		label := bucketing.MonthLabel(e.Month)
		base.Points = append(base.Points, series.Point{Label: label, Value: e.BaseRate})
		adjusted.Points = append(adjusted.Points, series.Point{Label: label, Value: e.AdjustedRate})
	}

	return series.ZipMultiSeries(
		[]string{base.Name, adjusted.Name},
		[]series.Series{base, adjusted},
	)
}

// TierTally counts adjustments per milestone tier in first-seen order
func TierTally(history []domain.RateHistoryEntry) series.Series {
	acc := series.NewAccumulator()
	for _, e := range sortedByMonth(history) {
		acc.Add(tierName(e.MilestoneTier), 1)
	}
	return series.FromAccumulator("Milestone Tiers", acc)
}

// TotalDiscount sums the discounts of the history, skipping missing ones
func TotalDiscount(history []domain.RateHistoryEntry) float64 {
	total := 0.0
	for _, e := range sortedByMonth(history) {
		if e.TotalDiscount != nil {
			total += *e.TotalDiscount
		}
	}
	return total
}

func sortedByMonth(history []domain.RateHistoryEntry) []domain.RateHistoryEntry {
	entries := make([]domain.RateHistoryEntry, len(history))
	copy(entries, history)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Month < entries[j].Month
	})
	return entries
}

func tierName(tier *string) string {
	if tier == nil || *tier == "" {
		return NoTier
	}
	return *tier
}
