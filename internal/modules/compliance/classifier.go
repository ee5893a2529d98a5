// Package compliance applies the green covenant thresholds to monitoring
// records and ranks the resulting alerts.
package compliance

import "github.com/aristath/ecoledger/internal/domain"

// Covenant thresholds. A metric passes when it is reported and >= its minimum.
const (
	MinEnergySavingsPct   = 10.0
	MinCarbonReductionPct = 5.0
	MinRenewableEnergyPct = 15.0
	MinESGScore           = 50.0
)

// Metric identifies a monitored covenant metric
type Metric string

const (
	MetricEnergySavings   Metric = "energy_savings_pct"
	MetricCarbonReduction Metric = "carbon_reduction_pct"
	MetricRenewableEnergy Metric = "renewable_energy_pct"
	MetricESGScore        Metric = "esg_score"
)

type threshold struct {
	metric  Metric
	min     float64
	below   string
	missing string
	value   func(domain.MonitoringRecord) *float64
}

// thresholds are evaluated in this order, which is also the order of the
// violation reasons.
var thresholds = []threshold{
	{
		metric:  MetricEnergySavings,
		min:     MinEnergySavingsPct,
		below:   "energy savings below 10% threshold",
		missing: "energy savings not reported",
		value:   func(r domain.MonitoringRecord) *float64 { return r.EnergySavingsPct },
	},
	{
		metric:  MetricCarbonReduction,
		min:     MinCarbonReductionPct,
		below:   "carbon reduction below 5% threshold",
		missing: "carbon reduction not reported",
		value:   func(r domain.MonitoringRecord) *float64 { return r.CarbonReductionPct },
	},
	{
		metric:  MetricRenewableEnergy,
		min:     MinRenewableEnergyPct,
		below:   "renewable energy below 15% threshold",
		missing: "renewable energy not reported",
		value:   func(r domain.MonitoringRecord) *float64 { return r.RenewableEnergyPct },
	},
	{
		metric:  MetricESGScore,
		min:     MinESGScore,
		below:   "ESG score below 50 threshold",
		missing: "ESG score not reported",
		value:   func(r domain.MonitoringRecord) *float64 { return r.ESGScore },
	},
}

// Result is the outcome of classifying one monitoring record
type Result struct {
	InCompliance bool     `json:"in_compliance"`
	Violations   []string `json:"violations"`
	Failed       []Metric `json:"failed_metrics"`
}

// ESGFailed reports whether the ESG score threshold was not met
func (r Result) ESGFailed() bool {
	for _, m := range r.Failed {
		if m == MetricESGScore {
			return true
		}
	}
	return false
}

// Severity ranks the result through the severity rule table
func (r Result) Severity() Severity {
	return RankAlertSeverity(len(r.Violations), r.ESGFailed())
}

// Classify checks rec against every threshold. The record is compliant only
// when all four metrics are reported and meet their minimum.
func Classify(rec domain.MonitoringRecord) Result {
	result := Result{
		Violations: []string{},
		Failed:     []Metric{},
	}

	for _, th := range thresholds {
		v := th.value(rec)
		switch {
		case v == nil:
			result.Violations = append(result.Violations, th.missing)
			result.Failed = append(result.Failed, th.metric)
		case *v < th.min:
			result.Violations = append(result.Violations, th.below)
			result.Failed = append(result.Failed, th.metric)
		}
	}

	result.InCompliance = len(result.Violations) == 0
	return result
}

// IsCompliant prefers the compliance flag recorded by the backend and falls
// back to Classify when the flag is absent.
func IsCompliant(rec domain.MonitoringRecord) bool {
	if rec.InCompliance != nil {
		return *rec.InCompliance
	}
	return Classify(rec).InCompliance
}

// Summary partitions a monitoring history into compliant and non-compliant records
type Summary struct {
	Compliant    int `json:"compliant"`
	NonCompliant int `json:"non_compliant"`
}

// Total is the number of records summarized
func (s Summary) Total() int {
	return s.Compliant + s.NonCompliant
}

// Rate is the compliant fraction, 0 when there are no records
func (s Summary) Rate() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Compliant) / float64(s.Total())
}

// SummarizeCompliance counts every record exactly once
func SummarizeCompliance(history []domain.MonitoringRecord) Summary {
	var s Summary
	for _, rec := range history {
		if IsCompliant(rec) {
			s.Compliant++
		} else {
			s.NonCompliant++
		}
	}
	return s
}
