package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

// timestampLayouts are tried in order. Layouts without a zone are read as UTC,
// which is how the backend writes naive datetimes.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp is a backend date or datetime. The zero value means absent.
// Text in no known layout decodes as absent so one bad date never fails the
// whole collection it arrives in.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses any layout the backend emits
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Defined reports whether the backend supplied a value
func (t Timestamp) Defined() bool {
	return !t.IsZero()
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}

	*t = parseLenient(s)
	return nil
}

// parseLenient parses s, logging and returning an absent timestamp when no
// layout matches
func parseLenient(s string) Timestamp {
	parsed, err := ParseTimestamp(s)
	if err != nil {
		log.Warn().Str("value", s).Msg("Unrecognized timestamp, treating as absent")
		return Timestamp{}
	}
	return parsed
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// MarshalMsgpack implements msgpack.Marshaler with the same RFC 3339 text as JSON
func (t Timestamp) MarshalMsgpack() ([]byte, error) {
	if !t.Defined() {
		return msgpack.Marshal(nil)
	}
	return msgpack.Marshal(t.Format(time.RFC3339))
}

// UnmarshalMsgpack implements msgpack.Unmarshaler
func (t *Timestamp) UnmarshalMsgpack(data []byte) error {
	var s *string
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == nil || *s == "" {
		*t = Timestamp{}
		return nil
	}
	*t = parseLenient(*s)
	return nil
}
