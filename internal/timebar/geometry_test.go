package timebar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
}

func at(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2026, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func TestTimeToOffsetBusinessHours(t *testing.T) {
	style := BusinessHoursStyle(60)

	// 08:00 sits at the origin in business-hours mode.
	assert.Equal(t, 0.0, TimeToOffset(at(t, 8, 0), style))
	assert.Equal(t, 60.0, TimeToOffset(at(t, 9, 0), style))
	assert.Equal(t, 90.0, TimeToOffset(at(t, 9, 30), style))

	// Before the origin the offset goes negative rather than clamping.
	assert.Equal(t, -60.0, TimeToOffset(at(t, 7, 0), style))
}

func TestTimeToOffsetFullDay(t *testing.T) {
	style := FullDayStyle(60)

	assert.Equal(t, 0.0, TimeToOffset(at(t, 0, 0), style))
	assert.Equal(t, 23*60.0, TimeToOffset(at(t, 23, 0), style))
}

func TestOffsetToTimeRoundTrip(t *testing.T) {
	styles := []BoxStyle{BusinessHoursStyle(60), FullDayStyle(48), BusinessHoursStyle(25)}

	for _, style := range styles {
		for minutes := 0; minutes < 24*60; minutes += 7 {
			instant := at(t, 0, 0).Add(time.Duration(minutes) * time.Minute)
			offset := TimeToOffset(instant, style)
			back := OffsetToTime(offset, style, day(t), 1)
			assert.True(t, back.Equal(instant), "style %+v minutes %d: got %s", style, minutes, back)
		}
	}
}

func TestOffsetToTimeSnapsDown(t *testing.T) {
	style := FullDayStyle(60)

	// 09:42 with a 30 minute snap floors to 09:30.
	offset := TimeToOffset(at(t, 9, 42), style)
	snapped := OffsetToTime(offset, style, day(t), 30)
	assert.True(t, snapped.Equal(at(t, 9, 30)), "got %s", snapped)

	// 09:42 with a 5 minute snap floors to 09:40.
	snapped = OffsetToTime(offset, style, day(t), 5)
	assert.True(t, snapped.Equal(at(t, 9, 40)), "got %s", snapped)
}

func TestOffsetToTimeFloorsLeftOfOrigin(t *testing.T) {
	// Business-hours origin is 08:00; at 60 px/h an offset of -500 lands on
	// 23:40 of the previous day, which a 30 minute snap floors to 23:30.
	style := BusinessHoursStyle(60)

	snapped := OffsetToTime(-500, style, day(t), 30)
	assert.True(t, snapped.Equal(at(t, 0, 0).Add(-30*time.Minute)), "got %s", snapped)
}

func TestOffsetToTimeNonPositiveSnapFallsBackToMinute(t *testing.T) {
	style := FullDayStyle(60)
	offset := TimeToOffset(at(t, 14, 17), style)

	snapped := OffsetToTime(offset, style, day(t), 0)
	assert.True(t, snapped.Equal(at(t, 14, 17)), "got %s", snapped)
}

func TestClipToDayInsideDay(t *testing.T) {
	style := FullDayStyle(60)
	iv := Interval{Start: at(t, 9, 0), End: at(t, 10, 30)}

	seg, err := ClipToDay(iv, day(t), style)
	require.NoError(t, err)
	assert.Equal(t, 9*60.0, seg.OffsetStart)
	assert.Equal(t, 90.0, seg.Width)
	assert.False(t, seg.SpansBefore)
	assert.False(t, seg.SpansAfter)
}

func TestClipToDaySpanningMidnight(t *testing.T) {
	style := FullDayStyle(60)

	// 23:00 today until 01:00 tomorrow renders as [23:00, 24:00) on today.
	iv := Interval{Start: at(t, 23, 0), End: at(t, 23, 0).Add(2 * time.Hour)}
	seg, err := ClipToDay(iv, day(t), style)
	require.NoError(t, err)
	assert.Equal(t, 23*60.0, seg.OffsetStart)
	assert.Equal(t, 60.0, seg.Width)
	assert.False(t, seg.SpansBefore)
	assert.True(t, seg.SpansAfter)

	// The same interval on tomorrow renders as [00:00, 01:00).
	tomorrow := day(t).AddDate(0, 0, 1)
	seg, err = ClipToDay(iv, tomorrow, style)
	require.NoError(t, err)
	assert.Equal(t, 0.0, seg.OffsetStart)
	assert.Equal(t, 60.0, seg.Width)
	assert.True(t, seg.SpansBefore)
	assert.False(t, seg.SpansAfter)
}

func TestClipToDayNoIntersection(t *testing.T) {
	style := FullDayStyle(60)
	iv := Interval{Start: at(t, 9, 0), End: at(t, 10, 0)}

	seg, err := ClipToDay(iv, day(t).AddDate(0, 0, 3), style)
	require.NoError(t, err)
	assert.Equal(t, 0.0, seg.Width)
	assert.False(t, seg.SpansBefore)
	assert.False(t, seg.SpansAfter)
}

func TestClipToDayZeroWidthInterval(t *testing.T) {
	style := FullDayStyle(60)
	iv := Interval{Start: at(t, 9, 0), End: at(t, 9, 0)}

	seg, err := ClipToDay(iv, day(t), style)
	require.NoError(t, err)
	assert.Equal(t, 9*60.0, seg.OffsetStart)
	assert.Equal(t, 0.0, seg.Width)
}

func TestClipToDayRejectsInvertedInterval(t *testing.T) {
	style := FullDayStyle(60)
	iv := Interval{Start: at(t, 10, 0), End: at(t, 9, 0)}

	_, err := ClipToDay(iv, day(t), style)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestClipToDayWidthNeverNegative(t *testing.T) {
	style := BusinessHoursStyle(60)
	cases := []Interval{
		{Start: at(t, 0, 0), End: at(t, 0, 0)},
		{Start: at(t, 5, 0), End: at(t, 6, 0)},
		{Start: at(t, 23, 59), End: at(t, 23, 59).Add(2 * time.Minute)},
		{Start: at(t, 0, 0).AddDate(0, 0, -1), End: at(t, 0, 0).AddDate(0, 0, 2)},
	}
	for _, iv := range cases {
		seg, err := ClipToDay(iv, day(t), style)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, seg.Width, 0.0, "interval %+v", iv)
	}
}
