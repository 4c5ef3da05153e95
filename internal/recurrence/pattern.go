package recurrence

import (
	"encoding/json"
	"fmt"
	"time"
)

// Pattern is the tagged union over the six recurrence variants. Only the
// fields belonging to Type are ever populated; the JSON codec enforces this,
// so serialize(deserialize(x)) == x for every valid wire value.
type Pattern struct {
	Type     PatternType
	Interval int

	// DaysOfWeek applies to weekly, relativeMonthly and relativeYearly.
	DaysOfWeek []Weekday
	// DayOfMonth applies to absoluteMonthly and absoluteYearly.
	DayOfMonth int
	// Index applies to relativeMonthly and relativeYearly.
	Index WeekIndex
	// Month applies to absoluteYearly and relativeYearly.
	Month time.Month
}

// Range is the tagged union over the two recurrence end conditions. StartDate
// is always present and read-only from the editor's point of view.
type Range struct {
	Type      RangeType
	StartDate Date

	// EndDate applies to the endDate variant.
	EndDate Date
	// NumberOfOccurrences applies to the numbered variant.
	NumberOfOccurrences int
}

// RangeType tags the recurrence range variant.
type RangeType string

const (
	RangeEndDate  RangeType = "endDate"
	RangeNumbered RangeType = "numbered"
)

// Valid reports whether the tag is a known range variant.
func (t RangeType) Valid() bool {
	return t == RangeEndDate || t == RangeNumbered
}

// PatternedRecurrence pairs a pattern with its range. It is attached to a
// booking when the user opts into recurrence, replaced wholesale on edit, and
// removed entirely when recurrence is released.
type PatternedRecurrence struct {
	Pattern Pattern `json:"pattern"`
	Range   Range   `json:"range"`
}

// usesDaysOfWeek reports whether the variant carries a weekday set.
func (t PatternType) usesDaysOfWeek() bool {
	return t == PatternWeekly || t == PatternRelativeMonthly || t == PatternRelativeYearly
}

// usesDayOfMonth reports whether the variant carries a day-of-month.
func (t PatternType) usesDayOfMonth() bool {
	return t == PatternAbsoluteMonthly || t == PatternAbsoluteYearly
}

// usesIndex reports whether the variant carries a week index.
func (t PatternType) usesIndex() bool {
	return t == PatternRelativeMonthly || t == PatternRelativeYearly
}

// usesMonth reports whether the variant carries a month.
func (t PatternType) usesMonth() bool {
	return t == PatternAbsoluteYearly || t == PatternRelativeYearly
}

// Normalize returns a copy holding only the fields that belong to the
// variant, dropping any orphaned data from the wrong variant.
func (p Pattern) Normalize() Pattern {
	out := Pattern{Type: p.Type, Interval: p.Interval}
	if out.Interval < 1 {
		out.Interval = 1
	}
	if p.Type.usesDaysOfWeek() {
		out.DaysOfWeek = append([]Weekday(nil), p.DaysOfWeek...)
	}
	if p.Type.usesDayOfMonth() {
		out.DayOfMonth = p.DayOfMonth
	}
	if p.Type.usesIndex() {
		out.Index = p.Index
	}
	if p.Type.usesMonth() {
		out.Month = p.Month
	}
	return out
}

type patternWire struct {
	Type       PatternType `json:"type"`
	Interval   int         `json:"interval"`
	DaysOfWeek []Weekday   `json:"daysOfWeek,omitempty"`
	DayOfMonth *int        `json:"dayOfMonth,omitempty"`
	Index      *WeekIndex  `json:"index,omitempty"`
	Month      *int        `json:"month,omitempty"`
}

// MarshalJSON emits only the fields relevant to the variant.
func (p Pattern) MarshalJSON() ([]byte, error) {
	if !p.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPatternType, p.Type)
	}
	wire := patternWire{Type: p.Type, Interval: p.Interval}
	if p.Type.usesDaysOfWeek() {
		wire.DaysOfWeek = p.DaysOfWeek
	}
	if p.Type.usesDayOfMonth() {
		day := p.DayOfMonth
		wire.DayOfMonth = &day
	}
	if p.Type.usesIndex() {
		index := p.Index
		wire.Index = &index
	}
	if p.Type.usesMonth() {
		month := int(p.Month)
		wire.Month = &month
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the superset wire shape, rejects unknown variant tags
// and drops fields that do not belong to the variant.
func (p *Pattern) UnmarshalJSON(raw []byte) error {
	var wire patternWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}
	if !wire.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPatternType, wire.Type)
	}
	decoded := Pattern{
		Type:       wire.Type,
		Interval:   wire.Interval,
		DaysOfWeek: wire.DaysOfWeek,
	}
	if wire.DayOfMonth != nil {
		decoded.DayOfMonth = *wire.DayOfMonth
	}
	if wire.Index != nil {
		decoded.Index = *wire.Index
	}
	if wire.Month != nil {
		decoded.Month = time.Month(*wire.Month)
	}
	*p = decoded.Normalize()
	return nil
}

type rangeWire struct {
	Type                RangeType `json:"type"`
	StartDate           Date      `json:"startDate"`
	EndDate             *Date     `json:"endDate,omitempty"`
	NumberOfOccurrences *int      `json:"numberOfOccurrences,omitempty"`
}

// MarshalJSON emits only the fields relevant to the variant.
func (r Range) MarshalJSON() ([]byte, error) {
	if !r.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRangeType, r.Type)
	}
	wire := rangeWire{Type: r.Type, StartDate: r.StartDate}
	switch r.Type {
	case RangeEndDate:
		end := r.EndDate
		wire.EndDate = &end
	case RangeNumbered:
		count := r.NumberOfOccurrences
		wire.NumberOfOccurrences = &count
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes and normalizes the range wire shape.
func (r *Range) UnmarshalJSON(raw []byte) error {
	var wire rangeWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}
	if !wire.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRangeType, wire.Type)
	}
	decoded := Range{Type: wire.Type, StartDate: wire.StartDate}
	switch wire.Type {
	case RangeEndDate:
		if wire.EndDate != nil {
			decoded.EndDate = *wire.EndDate
		}
	case RangeNumbered:
		if wire.NumberOfOccurrences != nil {
			decoded.NumberOfOccurrences = *wire.NumberOfOccurrences
		}
	}
	*r = decoded
	return nil
}
