package compliance

import (
	"sort"
	"strings"

	"github.com/aristath/ecoledger/internal/domain"
)

// RecommendedAction is attached to every derived alert
const RecommendedAction = "Schedule borrower review and remediation plan"

// Alert sources
const (
	AlertSourceDerived = "derived"
	AlertSourceBackend = "backend"
)

// Alert is a severity-ranked compliance alert for one loan
type Alert struct {
	LoanID            string           `json:"loan_id"`
	MonitoringDate    domain.Timestamp `json:"monitoring_date"`
	Month             int              `json:"month,omitempty"`
	Severity          Severity         `json:"severity"`
	Rule              string           `json:"rule"`
	Violations        []string         `json:"violation_reasons"`
	RecommendedAction string           `json:"recommended_action"`
	Source            string           `json:"source"`
}

// BuildAlerts derives alerts from monitoring records: the latest record per
// loan is kept, compliant loans are dropped and the rest are ranked.
// Records without a loan id are ignored.
func BuildAlerts(records []domain.MonitoringRecord) []Alert {
	valid, _ := domain.Partition(records)

	latest := make(map[string]domain.MonitoringRecord)
	var order []string
	for _, rec := range valid {
		current, ok := latest[rec.LoanID]
		if !ok {
			order = append(order, rec.LoanID)
			latest[rec.LoanID] = rec
			continue
		}
		if isLater(rec, current) {
			latest[rec.LoanID] = rec
		}
	}

	alerts := make([]Alert, 0)
	for _, loanID := range order {
		rec := latest[loanID]
		if IsCompliant(rec) {
			continue
		}

		result := Classify(rec)
		severity, rule := rankWithRule(len(result.Violations), result.ESGFailed())
		alerts = append(alerts, Alert{
			LoanID:            rec.LoanID,
			MonitoringDate:    rec.MonitoringDate,
			Month:             rec.Month,
			Severity:          severity,
			Rule:              rule,
			Violations:        result.Violations,
			RecommendedAction: RecommendedAction,
			Source:            AlertSourceDerived,
		})
	}

	sortAlerts(alerts)
	return alerts
}

// RankBackendAlerts re-ranks alerts reported by the backend with the local
// rule table. An ESG failure is detected from a reason starting with "ESG score".
func RankBackendAlerts(records []domain.AlertRecord) []Alert {
	alerts := make([]Alert, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.LoanID) == "" {
			continue
		}

		esgFailed := false
		for _, reason := range rec.ViolationReasons {
			if strings.HasPrefix(strings.ToLower(reason), "esg score") {
				esgFailed = true
				break
			}
		}

		action := rec.RecommendedAction
		if action == "" {
			action = RecommendedAction
		}
		violations := rec.ViolationReasons
		if violations == nil {
			violations = []string{}
		}

		severity, rule := rankWithRule(len(violations), esgFailed)
		alerts = append(alerts, Alert{
			LoanID:            rec.LoanID,
			MonitoringDate:    rec.MonitoringDate,
			Severity:          severity,
			Rule:              rule,
			Violations:        violations,
			RecommendedAction: action,
			Source:            AlertSourceBackend,
		})
	}

	sortAlerts(alerts)
	return alerts
}

// CountBySeverity tallies alerts per severity
func CountBySeverity(alerts []Alert) map[string]int {
	counts := map[string]int{
		SeverityHigh.String():   0,
		SeverityMedium.String(): 0,
		SeverityLow.String():    0,
	}
	for _, a := range alerts {
		counts[a.Severity.String()]++
	}
	return counts
}

func isLater(a, b domain.MonitoringRecord) bool {
	if a.MonitoringDate.Defined() && b.MonitoringDate.Defined() && !a.MonitoringDate.Equal(b.MonitoringDate.Time) {
		return a.MonitoringDate.After(b.MonitoringDate.Time)
	}
	if a.MonitoringDate.Defined() != b.MonitoringDate.Defined() {
		return a.MonitoringDate.Defined()
	}
	return a.Month > b.Month
}

func sortAlerts(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity > alerts[j].Severity
		}
		return alerts[i].LoanID < alerts[j].LoanID
	})
}
