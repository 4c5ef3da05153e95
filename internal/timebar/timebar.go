// Package timebar maps wall-clock time onto a bounded horizontal layout and
// back. It positions schedule boxes on a day timeline, clips events that span
// midnight, stacks overlapping intervals into visual rows, and converts a
// clicked offset back into a snapped timestamp.
//
// Every function is pure: identical inputs yield identical outputs, nothing
// reads the ambient clock, and input slices are never mutated. Callers rely on
// this to memoize per-render results.
package timebar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval reports an interval whose end precedes its start. The
// engine refuses such input instead of clamping it; silent clamping hides
// negative-width boxes from the renderer.
var ErrInvalidInterval = errors.New("interval end precedes start")

// Interval is an absolute [Start, End) time span. Start == End is a tolerated
// degenerate case and renders with zero width.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Validate returns ErrInvalidInterval when the end precedes the start.
func (iv Interval) Validate() error {
	if iv.End.Before(iv.Start) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidInterval,
			iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// BoxStyle is a display-mode descriptor chosen by the presentation layer and
// passed into every geometry call by value.
type BoxStyle struct {
	// PixelsPerHour scales one hour of wall-clock time to layout units.
	PixelsPerHour float64
	// OriginOffsetPixels shifts the layout origin away from midnight; the
	// business-hours style places 08:00 at offset zero.
	OriginOffsetPixels float64
}

// Scale returns layout units per minute.
func (s BoxStyle) Scale() float64 {
	return s.PixelsPerHour / 60
}

// BusinessHoursStyle shows 08:00-20:00 with the origin at 08:00.
func BusinessHoursStyle(pixelsPerHour float64) BoxStyle {
	return BoxStyle{
		PixelsPerHour:      pixelsPerHour,
		OriginOffsetPixels: 8 * pixelsPerHour,
	}
}

// FullDayStyle shows 00:00-24:00 with the origin at midnight.
func FullDayStyle(pixelsPerHour float64) BoxStyle {
	return BoxStyle{PixelsPerHour: pixelsPerHour}
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay is the midnight following t, i.e. the exclusive day bound.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
