package timebar

import (
	"math"
	"time"
)

// Segment is the day-clipped render geometry for one interval.
type Segment struct {
	// OffsetStart is the layout offset of the clipped start within the day.
	OffsetStart float64
	// Width is clippedEnd - clippedStart in layout units, never negative.
	Width float64
	// SpansBefore marks an interval that started on an earlier day.
	SpansBefore bool
	// SpansAfter marks an interval that continues past this day.
	SpansAfter bool
}

// TimeToOffset converts an instant to its layout offset within its own day.
// The mapping is monotonic over a single day.
func TimeToOffset(t time.Time, style BoxStyle) float64 {
	minutes := t.Sub(StartOfDay(t)).Minutes()
	return minutes*style.Scale() - style.OriginOffsetPixels
}

// OffsetToTime is the inverse mapping: a layout offset on referenceDay becomes
// an instant, floored to snapMinutes granularity. The snap interval is always
// caller-supplied; a non-positive value falls back to single-minute snapping.
func OffsetToTime(offset float64, style BoxStyle, referenceDay time.Time, snapMinutes int) time.Time {
	if snapMinutes <= 0 {
		snapMinutes = 1
	}
	raw := (offset + style.OriginOffsetPixels) / style.Scale()
	// math.Floor, not integer truncation: offsets left of the origin resolve
	// to negative minutes and must still snap downward.
	snapped := int(math.Floor(raw/float64(snapMinutes))) * snapMinutes
	return StartOfDay(referenceDay).Add(time.Duration(snapped) * time.Minute)
}

// ClipToDay clips an interval against one calendar day and returns its render
// geometry. Intervals that started on a prior day are clipped to the day's
// start, intervals running past midnight to the day's end. An interval that
// does not intersect the day at all yields a zero-width segment rather than an
// error; an end-before-start interval is a caller bug and is rejected.
func ClipToDay(iv Interval, day time.Time, style BoxStyle) (Segment, error) {
	if err := iv.Validate(); err != nil {
		return Segment{}, err
	}

	dayStart := StartOfDay(day)
	dayEnd := EndOfDay(day)

	clippedStart := iv.Start
	if clippedStart.Before(dayStart) {
		clippedStart = dayStart
	}
	clippedEnd := iv.End
	if clippedEnd.After(dayEnd) {
		clippedEnd = dayEnd
	}

	if clippedEnd.Before(clippedStart) {
		// No intersection with this day.
		return Segment{}, nil
	}

	return Segment{
		OffsetStart: clippedStart.Sub(dayStart).Minutes()*style.Scale() - style.OriginOffsetPixels,
		Width:       clippedEnd.Sub(clippedStart).Minutes() * style.Scale(),
		SpansBefore: iv.Start.Before(dayStart),
		SpansAfter:  iv.End.After(dayEnd),
	}, nil
}
