package timebar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalValidate(t *testing.T) {
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, Interval{Start: start, End: start.Add(time.Hour)}.Validate())
	assert.NoError(t, Interval{Start: start, End: start}.Validate())
	assert.ErrorIs(t, Interval{Start: start, End: start.Add(-time.Minute)}.Validate(), ErrInvalidInterval)
}

func TestIntervalOverlaps(t *testing.T) {
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	a := Interval{Start: base, End: base.Add(time.Hour)}

	assert.True(t, a.Overlaps(Interval{Start: base.Add(30 * time.Minute), End: base.Add(2 * time.Hour)}))
	// Touching endpoints do not overlap under half-open semantics.
	assert.False(t, a.Overlaps(Interval{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}))
	assert.False(t, a.Overlaps(Interval{Start: base.Add(-time.Hour), End: base}))
}

func TestBoxStyleScale(t *testing.T) {
	assert.Equal(t, 1.0, BoxStyle{PixelsPerHour: 60}.Scale())
	assert.Equal(t, 0.5, BoxStyle{PixelsPerHour: 30}.Scale())
}

func TestBusinessHoursStyleOrigin(t *testing.T) {
	style := BusinessHoursStyle(50)
	assert.Equal(t, 50.0, style.PixelsPerHour)
	assert.Equal(t, 400.0, style.OriginOffsetPixels)
}

func TestDayBounds(t *testing.T) {
	instant := time.Date(2026, time.March, 10, 14, 37, 12, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), StartOfDay(instant))
	assert.Equal(t, time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC), EndOfDay(instant))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 10, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}
