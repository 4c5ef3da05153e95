// Package recurrence models repeat rules for room bookings: a tagged-union
// pattern/range pair matching the backend wire format, an editable draft form
// for checkbox-per-weekday UIs, field-scoped validation, a human-readable
// description, and RFC 5545 occurrence expansion.
//
// Validation failures are values (FieldErrors), never panics or errors; they
// are expected, user-correctable input. An unknown variant tag is the opposite
// class: schema drift, reported as ErrUnknownPatternType by the codec and
// degraded to an empty string by display paths.
package recurrence

import (
	"errors"
	"fmt"
	"time"
)

// MaxSpanYears caps how far a recurrence end date may lie past the booking
// start. Hard limit, not configurable.
const MaxSpanYears = 5

var (
	// ErrUnknownPatternType reports a pattern variant tag this engine does
	// not recognize (schema drift between frontend and backend).
	ErrUnknownPatternType = errors.New("unknown recurrence pattern type")
	// ErrUnknownRangeType reports an unrecognized range variant tag.
	ErrUnknownRangeType = errors.New("unknown recurrence range type")
)

// PatternType tags the recurrence pattern variant.
type PatternType string

const (
	PatternDaily           PatternType = "daily"
	PatternWeekly          PatternType = "weekly"
	PatternAbsoluteMonthly PatternType = "absoluteMonthly"
	PatternRelativeMonthly PatternType = "relativeMonthly"
	PatternAbsoluteYearly  PatternType = "absoluteYearly"
	PatternRelativeYearly  PatternType = "relativeYearly"
)

// Valid reports whether the tag is one of the six known variants.
func (t PatternType) Valid() bool {
	switch t {
	case PatternDaily, PatternWeekly, PatternAbsoluteMonthly,
		PatternRelativeMonthly, PatternAbsoluteYearly, PatternRelativeYearly:
		return true
	}
	return false
}

// Unit returns the repeat unit for the variant ("day", "week", "month",
// "year") or an empty string for an unknown tag.
func (t PatternType) Unit() string {
	switch t {
	case PatternDaily:
		return "day"
	case PatternWeekly:
		return "week"
	case PatternAbsoluteMonthly, PatternRelativeMonthly:
		return "month"
	case PatternAbsoluteYearly, PatternRelativeYearly:
		return "year"
	}
	return ""
}

// Weekday names a day of the week on the wire.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays lists the weekdays in Monday-first order, matching the
// checkbox order of the editing UI.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether the weekday name is known.
func (w Weekday) Valid() bool {
	for _, known := range AllWeekdays {
		if w == known {
			return true
		}
	}
	return false
}

// FromTimeWeekday converts a time.Weekday into the wire representation.
func FromTimeWeekday(w time.Weekday) Weekday {
	switch w {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// WeekIndex selects which matching weekday of the month a relative pattern
// refers to.
type WeekIndex string

const (
	First  WeekIndex = "first"
	Second WeekIndex = "second"
	Third  WeekIndex = "third"
	Fourth WeekIndex = "fourth"
	Last   WeekIndex = "last"
)

// Valid reports whether the index name is known.
func (i WeekIndex) Valid() bool {
	switch i {
	case First, Second, Third, Fourth, Last:
		return true
	}
	return false
}

// SetPos returns the RFC 5545 BYSETPOS value for the index.
func (i WeekIndex) SetPos() int {
	switch i {
	case First:
		return 1
	case Second:
		return 2
	case Third:
		return 3
	case Fourth:
		return 4
	case Last:
		return -1
	}
	return 0
}

// Date is a calendar date without time-of-day, serialized as "2006-01-02".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the calendar date of an instant in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight of the date in the given location.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Before reports whether d precedes other.
func (d Date) Before(other Date) bool {
	return d.Time(time.UTC).Before(other.Time(time.UTC))
}

// After reports whether d follows other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// String formats the date in wire form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as a quoted "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a quoted "2006-01-02" string.
func (d *Date) UnmarshalJSON(raw []byte) error {
	s := string(raw)
	if s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(`"2006-01-02"`, s)
	if err != nil {
		return fmt.Errorf("parse date %s: %w", s, err)
	}
	*d = DateOf(t)
	return nil
}
