package events

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_FanOut(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	all := bus.Subscribe(4)
	onlyRates := bus.Subscribe(4, RateCalculated)
	assert.Equal(t, 2, bus.Subscribers())

	bus.Emit("scheduler", &DashboardRefreshedData{TotalLoans: 10})
	bus.Emit("analytics", &RateCalculatedData{LoanID: "L1"})

	first := <-all.C
	assert.Equal(t, DashboardRefreshed, first.Type)
	assert.Equal(t, "scheduler", first.Module)
	assert.NotEmpty(t, first.ID)

	second := <-all.C
	assert.Equal(t, RateCalculated, second.Type)

	rate := <-onlyRates.C
	data, ok := rate.Data.(*RateCalculatedData)
	require.True(t, ok)
	assert.Equal(t, "L1", data.LoanID)

	select {
	case e := <-onlyRates.C:
		t.Fatalf("unexpected event %s", e.Type)
	default:
	}
}

func TestBus_DropsWhenFull(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sub := bus.Subscribe(1)

	bus.Emit("test", &AlertsUpdatedData{Total: 1})
	bus.Emit("test", &AlertsUpdatedData{Total: 2})

	assert.Equal(t, uint64(1), bus.Dropped())
	e := <-sub.C
	assert.Equal(t, 1, e.Data.(*AlertsUpdatedData).Total)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sub := bus.Subscribe(0)

	bus.Unsubscribe(sub.ID)
	bus.Unsubscribe(sub.ID)
	assert.Equal(t, 0, bus.Subscribers())

	_, open := <-sub.C
	assert.False(t, open)

	assert.NotPanics(t, func() {
		bus.Emit("test", &AlertsUpdatedData{})
	})
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sub := bus.Subscribe(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				bus.Emit("test", &AlertsUpdatedData{Total: j})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, sub.C, 100)
	assert.Equal(t, uint64(0), bus.Dropped())
}

func TestBus_EmitError(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sub := bus.Subscribe(1, ErrorOccurred)

	bus.EmitError("scheduler", errors.New("backend down"), map[string]interface{}{"job": "refresh"})

	e := <-sub.C
	data := e.Data.(*ErrorEventData)
	assert.Equal(t, "backend down", data.Error)
	assert.Equal(t, "refresh", data.Context["job"])
}

func TestEvent_JSONRoundTrip(t *testing.T) {
	original := Event{
		ID:        "abc",
		Type:      DashboardRefreshed,
		Timestamp: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC),
		Module:    "scheduler",
		Data:      &DashboardRefreshedData{TotalLoans: 12, ComplianceRate: 0.75},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"total_loans":12`)

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))
	data, ok := decoded.Data.(*DashboardRefreshedData)
	require.True(t, ok)
	assert.Equal(t, 12, data.TotalLoans)
	assert.Equal(t, 0.75, data.ComplianceRate)
}

func TestEvent_UnknownTypeUsesGenericData(t *testing.T) {
	var decoded Event
	require.NoError(t, json.Unmarshal([]byte(`{"type":"SOMETHING_ELSE","data":{"k":"v"}}`), &decoded))

	generic, ok := decoded.Data.(*GenericEventData)
	require.True(t, ok)
	assert.Equal(t, EventType("SOMETHING_ELSE"), generic.EventType())
	assert.Equal(t, "v", generic.Data["k"])
}
