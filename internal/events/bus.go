// Package events provides an in-process publish/subscribe bus.
package events

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultBuffer is the channel size of a subscription
const DefaultBuffer = 16

// Subscription receives events of the types it subscribed to
type Subscription struct {
	ID    string
	C     <-chan Event
	ch    chan Event
	types map[EventType]bool
}

func (s *Subscription) wants(t EventType) bool {
	return len(s.types) == 0 || s.types[t]
}

// Bus fans events out to subscribers. Publishing never blocks: a
// subscriber whose buffer is full misses the event.
type Bus struct {
	mu      sync.RWMutex
	subs    map[string]*Subscription
	dropped atomic.Uint64
	log     zerolog.Logger
}

// NewBus creates a new event bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subs: make(map[string]*Subscription),
		log:  log.With().Str("service", "events").Logger(),
	}
}

// Subscribe registers a subscriber. With no types every event is delivered.
func (b *Bus) Subscribe(buffer int, types ...EventType) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	ch := make(chan Event, buffer)
	sub := &Subscription{
		ID:    uuid.NewString(),
		C:     ch,
		ch:    ch,
		types: make(map[EventType]bool, len(types)),
	}
	for _, t := range types {
		sub.types[t] = true
	}

	b.mu.Lock()
	b.subs[sub.ID] = sub
	b.mu.Unlock()

	b.log.Debug().Str("subscriber", sub.ID).Int("types", len(types)).Msg("Subscriber added")
	return sub
}

// Unsubscribe removes the subscriber and closes its channel
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	sub, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
		close(sub.ch)
	}
	b.mu.Unlock()

	if ok {
		b.log.Debug().Str("subscriber", id).Msg("Subscriber removed")
	}
}

// Subscribers returns the number of active subscribers
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped for full buffers
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Emit publishes data as an event from module and returns the event
func (b *Bus) Emit(module string, data EventData) Event {
	event := Event{
		ID:        uuid.NewString(),
		Type:      data.EventType(),
		Timestamp: time.Now().UTC(),
		Module:    module,
		Data:      data,
	}

	eventJSON, _ := json.Marshal(event)
	b.log.Info().
		Str("event_type", string(event.Type)).
		Str("module", module).
		RawJSON("event", eventJSON).
		Msg("Event emitted")

	// Unsubscribe closes channels under the write lock, so sends are safe here
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if !sub.wants(event.Type) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			b.dropped.Add(1)
			b.log.Debug().Str("subscriber", sub.ID).Str("event_type", string(event.Type)).Msg("Subscriber buffer full, event dropped")
		}
	}

	return event
}

// EmitError emits an ErrorOccurred event
func (b *Bus) EmitError(module string, err error, context map[string]interface{}) Event {
	return b.Emit(module, &ErrorEventData{
		Error:   err.Error(),
		Context: context,
	})
}
