package recurrence

import "time"

// Draft is the editable superset form behind the recurrence dialog. It holds
// every variant's fields at once so a type select-box can switch variants
// freely; fields not belonging to the current type are ignored until the
// draft is projected into a normalized PatternedRecurrence by Validate.
type Draft struct {
	Type     PatternType
	Interval int

	// Weekdays mirrors the checkbox-per-weekday UI.
	Weekdays   map[Weekday]bool
	DayOfMonth int
	Index      WeekIndex
	Month      time.Month

	Range DraftRange
}

// DraftRange is the editable range form. StartDate is read-only: it always
// mirrors the underlying booking's start date.
type DraftRange struct {
	Type                RangeType
	StartDate           Date
	EndDate             Date
	NumberOfOccurrences int
}

// NewDraft returns the dialog's initial state for a booking starting on the
// given date: a daily rule repeating until that same date.
func NewDraft(startDate Date) Draft {
	d := Draft{
		Interval: 1,
		Weekdays: make(map[Weekday]bool, len(AllWeekdays)),
		Range: DraftRange{
			Type:                RangeEndDate,
			StartDate:           startDate,
			EndDate:             startDate,
			NumberOfOccurrences: 1,
		},
	}
	d.SetType(PatternDaily)
	return d
}

// DraftFrom decomposes a committed recurrence back into its editable form.
func DraftFrom(rec PatternedRecurrence) Draft {
	d := NewDraft(rec.Range.StartDate)
	d.SetType(rec.Pattern.Type)
	// The committed rule carries the full selection; defaults never add to it.
	d.Weekdays = make(map[Weekday]bool, len(AllWeekdays))
	if rec.Pattern.Interval >= 1 {
		d.Interval = rec.Pattern.Interval
	}
	for _, day := range rec.Pattern.DaysOfWeek {
		d.Weekdays[day] = true
	}
	if rec.Pattern.Type.usesDayOfMonth() {
		d.DayOfMonth = rec.Pattern.DayOfMonth
	}
	if rec.Pattern.Type.usesIndex() {
		d.Index = rec.Pattern.Index
	}
	if rec.Pattern.Type.usesMonth() {
		d.Month = rec.Pattern.Month
	}

	d.Range.Type = rec.Range.Type
	switch rec.Range.Type {
	case RangeEndDate:
		d.Range.EndDate = rec.Range.EndDate
	case RangeNumbered:
		d.Range.NumberOfOccurrences = rec.Range.NumberOfOccurrences
	}
	return d
}

// SetType switches the pattern variant and resets every pattern-specific
// field to the new variant's defaults: weekly preselects the booking's start
// weekday, monthly variants day 1 or the first week. Values never carry over
// between incompatible variants; a stale weekday selection must not leak into
// a monthly rule.
func (d *Draft) SetType(t PatternType) {
	d.Type = t

	d.Weekdays = make(map[Weekday]bool, len(AllWeekdays))
	d.DayOfMonth = 0
	d.Index = ""
	d.Month = 0

	switch t {
	case PatternWeekly:
		if start := d.Range.StartDate; start != (Date{}) {
			d.Weekdays[FromTimeWeekday(start.Time(time.UTC).Weekday())] = true
		}
	case PatternAbsoluteMonthly:
		d.DayOfMonth = 1
	case PatternRelativeMonthly:
		d.Index = First
	case PatternAbsoluteYearly:
		d.DayOfMonth = 1
		d.Month = time.January
	case PatternRelativeYearly:
		d.Index = First
		d.Month = time.January
	}
}

// SelectedWeekdays returns the toggled weekdays in Monday-first order.
func (d Draft) SelectedWeekdays() []Weekday {
	var days []Weekday
	for _, day := range AllWeekdays {
		if d.Weekdays[day] {
			days = append(days, day)
		}
	}
	return days
}

// project builds the minimal normalized recurrence from the draft. Callers
// must have validated the draft first.
func (d Draft) project() PatternedRecurrence {
	pattern := Pattern{
		Type:       d.Type,
		Interval:   d.Interval,
		DaysOfWeek: d.SelectedWeekdays(),
		DayOfMonth: d.DayOfMonth,
		Index:      d.Index,
		Month:      d.Month,
	}

	rng := Range{Type: d.Range.Type, StartDate: d.Range.StartDate}
	switch d.Range.Type {
	case RangeEndDate:
		rng.EndDate = d.Range.EndDate
	case RangeNumbered:
		rng.NumberOfOccurrences = d.Range.NumberOfOccurrences
	}

	return PatternedRecurrence{Pattern: pattern.Normalize(), Range: rng}
}
