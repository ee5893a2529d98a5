package compliance

import (
	"fmt"
	"strings"
)

// Severity is an ordinal alert ranking
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// ParseSeverity reads "Low", "Medium" or "High" (case-insensitive)
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	}
	return SeverityLow, fmt.Errorf("unknown severity %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type severityRule struct {
	name     string
	matches  func(violations int, esgFailed bool) bool
	severity Severity
}

// severityRules is evaluated top to bottom and the first match wins.
// An ESG failure outranks the violation count.
var severityRules = []severityRule{
	{
		name:     "esg_failure",
		matches:  func(_ int, esgFailed bool) bool { return esgFailed },
		severity: SeverityHigh,
	},
	{
		name:     "three_or_more_violations",
		matches:  func(violations int, _ bool) bool { return violations >= 3 },
		severity: SeverityHigh,
	},
	{
		name:     "some_violations",
		matches:  func(violations int, _ bool) bool { return violations >= 1 },
		severity: SeverityMedium,
	},
	{
		name:     "no_violations",
		matches:  func(int, bool) bool { return true },
		severity: SeverityLow,
	},
}

// RankAlertSeverity ranks an alert from its violation count and whether the
// ESG threshold specifically failed.
func RankAlertSeverity(violationCount int, esgFailed bool) Severity {
	severity, _ := rankWithRule(violationCount, esgFailed)
	return severity
}

// rankWithRule also returns the name of the matching rule
func rankWithRule(violationCount int, esgFailed bool) (Severity, string) {
	for _, rule := range severityRules {
		if rule.matches(violationCount, esgFailed) {
			return rule.severity, rule.name
		}
	}
	return SeverityLow, ""
}
