package recurrence

import "time"

// FieldErrors maps a field path ("range.endDate", "pattern.daysOfWeek") to a
// user-facing message. Validation problems are returned as values for the UI
// to render next to the offending control; they are never raised as errors.
type FieldErrors map[string]string

// Add records a message for a field, keeping the first message per field.
func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Empty reports whether validation passed.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// TimeOrderCheck is the booking's own start-before-end validation, injected
// so the engine does not duplicate it. A nil check is skipped.
type TimeOrderCheck func() error

// Validate checks the draft against a booking starting at contextStart and,
// on success, projects it into the minimal normalized recurrence. The draft
// is never mutated. All problems are reported at once, field-scoped.
func Validate(draft Draft, contextStart time.Time, timeOrder TimeOrderCheck) (PatternedRecurrence, FieldErrors) {
	errs := FieldErrors{}

	if !draft.Type.Valid() {
		errs.Add("pattern.type", "unknown recurrence type")
	}
	if draft.Interval < 1 {
		errs.Add("pattern.interval", "interval must be at least 1")
	}

	switch draft.Type {
	case PatternWeekly, PatternRelativeMonthly, PatternRelativeYearly:
		if len(draft.SelectedWeekdays()) == 0 {
			errs.Add("pattern.daysOfWeek", "select at least one weekday")
		}
	}
	switch draft.Type {
	case PatternAbsoluteMonthly, PatternAbsoluteYearly:
		if draft.DayOfMonth < 1 || draft.DayOfMonth > 31 {
			errs.Add("pattern.dayOfMonth", "day of month must be between 1 and 31")
		}
	}
	switch draft.Type {
	case PatternRelativeMonthly, PatternRelativeYearly:
		if !draft.Index.Valid() {
			errs.Add("pattern.index", "unknown week index")
		}
	}
	switch draft.Type {
	case PatternAbsoluteYearly, PatternRelativeYearly:
		if draft.Month < time.January || draft.Month > time.December {
			errs.Add("pattern.month", "month must be between 1 and 12")
		}
	}

	if timeOrder != nil {
		if err := timeOrder(); err != nil {
			errs.Add("startTime", err.Error())
		}
	}

	startDay := startOfDay(contextStart)
	switch draft.Range.Type {
	case RangeEndDate:
		endDay := draft.Range.EndDate.Time(time.UTC)
		if startDay.After(endDay) {
			errs.Add("range.endDate", "recurrence end date precedes the booking start")
		} else if endDay.After(startDay.AddDate(MaxSpanYears, 0, 0)) {
			errs.Add("range.endDate", "recurrence exceeds the maximum span of 5 years")
		}
	case RangeNumbered:
		if draft.Range.NumberOfOccurrences < 1 {
			errs.Add("range.numberOfOccurrences", "number of occurrences must be at least 1")
		}
	default:
		errs.Add("range.type", "unknown recurrence range type")
	}

	if !errs.Empty() {
		return PatternedRecurrence{}, errs
	}
	return draft.project(), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
