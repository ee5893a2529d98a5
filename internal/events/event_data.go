package events

import (
	"encoding/json"
	"time"
)

// EventType represents different event types
type EventType string

const (
	// DashboardRefreshed is emitted after a scheduled refresh rebuilt the dashboard
	DashboardRefreshed EventType = "DASHBOARD_REFRESHED"
	// AlertsUpdated carries the current alert counts per severity
	AlertsUpdated EventType = "ALERTS_UPDATED"
	// RateCalculated is emitted when a rate adjustment was relayed
	RateCalculated EventType = "RATE_CALCULATED"
	// ErrorOccurred reports a failed background operation
	ErrorOccurred EventType = "ERROR_OCCURRED"
	// SourceStatusChanged is emitted when the record source becomes reachable or unreachable
	SourceStatusChanged EventType = "SOURCE_STATUS_CHANGED"
)

// EventData is the interface that all event data types must implement
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// DashboardRefreshedData contains data for DashboardRefreshed events
type DashboardRefreshedData struct {
	GeneratedAt          time.Time `json:"generated_at"`
	Source               string    `json:"source"`
	TotalLoans           int       `json:"total_loans"`
	ApprovalRate         float64   `json:"approval_rate"`
	ComplianceRate       float64   `json:"compliance_rate"`
	TotalTradingVolume   float64   `json:"total_trading_volume"`
	TotalBorrowerSavings float64   `json:"total_borrower_savings"`
	SkippedRecords       int       `json:"skipped_records"`
	ChartErrors          int       `json:"chart_errors"`
	DurationMs           int64     `json:"duration_ms"`
}

// EventType returns the event type for DashboardRefreshedData
func (d *DashboardRefreshedData) EventType() EventType {
	return DashboardRefreshed
}

// AlertsUpdatedData contains data for AlertsUpdated events
type AlertsUpdatedData struct {
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
}

// EventType returns the event type for AlertsUpdatedData
func (d *AlertsUpdatedData) EventType() EventType {
	return AlertsUpdated
}

// RateCalculatedData contains data for RateCalculated events
type RateCalculatedData struct {
	LoanID        string  `json:"loan_id"`
	BaseRate      float64 `json:"base_rate"`
	AdjustedRate  float64 `json:"adjusted_rate"`
	MilestoneTier string  `json:"milestone_tier"`
}

// EventType returns the event type for RateCalculatedData
func (d *RateCalculatedData) EventType() EventType {
	return RateCalculated
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}

// SourceStatusData contains data for SourceStatusChanged events
type SourceStatusData struct {
	Source  string `json:"source"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// EventType returns the event type for SourceStatusData
func (d *SourceStatusData) EventType() EventType {
	return SourceStatusChanged
}

// GenericEventData is a fallback for events that don't have a specific type
type GenericEventData struct {
	Type EventType              `json:"-"`
	Data map[string]interface{} `json:"-"`
}

// EventType returns the event type for GenericEventData
func (d *GenericEventData) EventType() EventType {
	return d.Type
}

// MarshalJSON serializes the raw map
func (d *GenericEventData) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Data)
}

// UnmarshalJSON deserializes into the raw map
func (d *GenericEventData) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &d.Data)
}

// Event is a published event with typed data
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Module    string    `json:"module"`
	Data      EventData `json:"data"`
}

// UnmarshalJSON decodes data into the type registered for the event type
func (e *Event) UnmarshalJSON(data []byte) error {
	type Alias Event
	aux := &struct {
		Data json.RawMessage `json:"data"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if len(aux.Data) == 0 || string(aux.Data) == "null" {
		e.Data = nil
		return nil
	}

	var eventData EventData
	switch aux.Type {
	case DashboardRefreshed:
		eventData = &DashboardRefreshedData{}
	case AlertsUpdated:
		eventData = &AlertsUpdatedData{}
	case RateCalculated:
		eventData = &RateCalculatedData{}
	case ErrorOccurred:
		eventData = &ErrorEventData{}
	case SourceStatusChanged:
		eventData = &SourceStatusData{}
	default:
		eventData = &GenericEventData{Type: aux.Type}
	}

	if err := json.Unmarshal(aux.Data, eventData); err != nil {
		return err
	}
	e.Data = eventData
	return nil
}
