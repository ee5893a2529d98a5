package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidEdges is returned when bin edges are not strictly increasing or
// fewer than two.
var ErrInvalidEdges = errors.New("bin edges must be strictly increasing with at least 2 entries")

// ShapeMismatchError reports series that cannot be plotted on a shared x-axis
type ShapeMismatchError struct {
	Series string
	Reason string
}

func (e *ShapeMismatchError) Error() string {
	if e.Series == "" {
		return fmt.Sprintf("shape mismatch: %s", e.Reason)
	}
	return fmt.Sprintf("shape mismatch in series %q: %s", e.Series, e.Reason)
}

// MalformedRecordError reports a record that lacks its required identifier.
// The record is skipped and aggregation continues.
type MalformedRecordError struct {
	Kind  string
	Index int
	Field string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record at index %d: missing %s", e.Kind, e.Index, e.Field)
}

// EmptyInputWarning marks an aggregation over an empty collection. It is not
// returned as an error; callers use it for logging only.
type EmptyInputWarning struct {
	Kind string
}

func (w EmptyInputWarning) String() string {
	return fmt.Sprintf("no %s records to aggregate", w.Kind)
}

// CheckEmpty returns a warning when n is zero
func CheckEmpty(kind string, n int) (EmptyInputWarning, bool) {
	if n == 0 {
		return EmptyInputWarning{Kind: kind}, true
	}
	return EmptyInputWarning{}, false
}

// IsShapeMismatch reports whether err is or wraps a ShapeMismatchError
func IsShapeMismatch(err error) bool {
	var target *ShapeMismatchError
	return errors.As(err, &target)
}
