package compliance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankAlertSeverity(t *testing.T) {
	tests := []struct {
		name       string
		violations int
		esgFailed  bool
		expected   Severity
		rule       string
	}{
		{"no violations", 0, false, SeverityLow, "no_violations"},
		{"one violation", 1, false, SeverityMedium, "some_violations"},
		{"two violations", 2, false, SeverityMedium, "some_violations"},
		{"three violations", 3, false, SeverityHigh, "three_or_more_violations"},
		{"four violations", 4, false, SeverityHigh, "three_or_more_violations"},
		{"esg alone is high", 1, true, SeverityHigh, "esg_failure"},
		{"esg outranks count", 4, true, SeverityHigh, "esg_failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RankAlertSeverity(tt.violations, tt.esgFailed))
			_, rule := rankWithRule(tt.violations, tt.esgFailed)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestSeverity_Ordering(t *testing.T) {
	assert.True(t, SeverityHigh > SeverityMedium)
	assert.True(t, SeverityMedium > SeverityLow)
}

func TestSeverity_Text(t *testing.T) {
	data, err := json.Marshal(map[string]Severity{"s": SeverityMedium})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"Medium"}`, string(data))

	var out struct {
		S Severity `json:"s"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"high"}`), &out))
	assert.Equal(t, SeverityHigh, out.S)

	assert.Error(t, json.Unmarshal([]byte(`{"s":"critical"}`), &out))
}

func TestParseSeverity(t *testing.T) {
	s, err := ParseSeverity(" Low ")
	require.NoError(t, err)
	assert.Equal(t, SeverityLow, s)

	_, err = ParseSeverity("")
	assert.Error(t, err)
}
