package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/aristath/ecoledger/internal/events"
	"github.com/aristath/ecoledger/internal/metrics"
)

const (
	streamBuffer      = 100
	heartbeatInterval = 30 * time.Second
	wsWriteTimeout    = 10 * time.Second
)

// EventsStreamHandler streams bus events to clients over Server-Sent Events
// or WebSocket. Slow clients lose events instead of blocking publishers.
type EventsStreamHandler struct {
	bus       *events.Bus
	metrics   *metrics.Metrics
	heartbeat time.Duration
	log       zerolog.Logger
}

// NewEventsStreamHandler creates a new events stream handler
func NewEventsStreamHandler(bus *events.Bus, m *metrics.Metrics, log zerolog.Logger) *EventsStreamHandler {
	return &EventsStreamHandler{
		bus:       bus,
		metrics:   m,
		heartbeat: heartbeatInterval,
		log:       log.With().Str("component", "events_stream").Logger(),
	}
}

// parseTypes reads the comma separated ?types= filter
func parseTypes(r *http.Request) []events.EventType {
	filter := r.URL.Query().Get("types")
	if filter == "" {
		return nil
	}
	var types []events.EventType
	for _, t := range strings.Split(filter, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, events.EventType(strings.ToUpper(t)))
		}
	}
	return types
}

// subscribe registers a client and returns a release func
func (h *EventsStreamHandler) subscribe(r *http.Request, transport string) (*events.Subscription, func()) {
	types := parseTypes(r)
	sub := h.bus.Subscribe(streamBuffer, types...)
	h.metrics.StreamConnected(1)

	h.log.Info().
		Str("subscriber", sub.ID).
		Str("transport", transport).
		Int("types", len(types)).
		Msg("Client connected to event stream")

	return sub, func() {
		h.bus.Unsubscribe(sub.ID)
		h.metrics.StreamConnected(-1)
		h.log.Info().Str("subscriber", sub.ID).Msg("Client disconnected from event stream")
	}
}

// ServeHTTP handles GET /api/events/stream requests (SSE)
func (h *EventsStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub, release := h.subscribe(r, "sse")
	defer release()

	fmt.Fprintf(w, "data: %s\n\n", h.encode(map[string]interface{}{
		"type":       "connected",
		"subscriber": sub.ID,
	}))
	flusher.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case event, open := <-sub.C:
			if !open {
				return
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Type, h.encode(event))
			flusher.Flush()

		case <-heartbeat.C:
			fmt.Fprintf(w, ": heartbeat %s\n\n", time.Now().UTC().Format(time.RFC3339))
			flusher.Flush()
		}
	}
}

// ServeWebSocket handles GET /api/events/ws requests. Each event is sent as
// one text frame holding the event JSON.
func (h *EventsStreamHandler) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")

	sub, release := h.subscribe(r, "websocket")
	defer release()

	// Clients only listen; CloseRead cancels ctx when they go away
	ctx := conn.CloseRead(r.Context())

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, open := <-sub.C:
			if !open {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if err := h.writeFrame(ctx, conn, []byte(h.encode(event))); err != nil {
				h.log.Debug().Err(err).Str("subscriber", sub.ID).Msg("WebSocket write failed")
				return
			}

		case <-heartbeat.C:
			pingCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				h.log.Debug().Err(err).Str("subscriber", sub.ID).Msg("WebSocket ping failed")
				return
			}
		}
	}
}

func (h *EventsStreamHandler) writeFrame(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}

// encode marshals v to a JSON string
func (h *EventsStreamHandler) encode(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to marshal event")
		return `{"error":"failed to encode event"}`
	}
	return string(data)
}
