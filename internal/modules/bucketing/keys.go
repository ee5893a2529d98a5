package bucketing

import (
	"fmt"
	"time"
)

// MonthKey formats t as YYYY-MM using the calendar fields of t's own
// location. The key is only used for grouping and sorting.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// DayKey formats t as YYYY-MM-DD in UTC
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthLabel labels a monitoring or rate period ordinal
func MonthLabel(month int) string {
	return fmt.Sprintf("Month %d", month)
}

// Risk categories in display order
const (
	RiskLow      = "Low Risk"
	RiskMedium   = "Medium Risk"
	RiskHigh     = "High Risk"
	RiskVeryHigh = "Very High Risk"
)

// RiskCategories lists every risk category in display order
var RiskCategories = []string{RiskLow, RiskMedium, RiskHigh, RiskVeryHigh}

// RiskCategory maps a combined credit score to its risk category
func RiskCategory(score float64) string {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 60:
		return RiskMedium
	case score >= 40:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}
