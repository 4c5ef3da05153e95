package recurrence

import (
	"fmt"
	"strings"
	"time"
)

// LabelFunc resolves a label key ("weekday.monday", "month.1", "index.last",
// "unit.week", "units.week") into localized text. A nil LabelFunc falls back
// to the built-in English labels.
type LabelFunc func(key string) string

// EnglishLabels resolves label keys to plain English.
func EnglishLabels(key string) string {
	if label, ok := englishLabels[key]; ok {
		return label
	}
	return key
}

var englishLabels = map[string]string{
	"unit.day": "day", "units.day": "days",
	"unit.week": "week", "units.week": "weeks",
	"unit.month": "month", "units.month": "months",
	"unit.year": "year", "units.year": "years",

	"weekday.monday": "Monday", "weekday.tuesday": "Tuesday",
	"weekday.wednesday": "Wednesday", "weekday.thursday": "Thursday",
	"weekday.friday": "Friday", "weekday.saturday": "Saturday",
	"weekday.sunday": "Sunday",

	"index.first": "first", "index.second": "second", "index.third": "third",
	"index.fourth": "fourth", "index.last": "last",

	"month.1": "January", "month.2": "February", "month.3": "March",
	"month.4": "April", "month.5": "May", "month.6": "June",
	"month.7": "July", "month.8": "August", "month.9": "September",
	"month.10": "October", "month.11": "November", "month.12": "December",
}

// Describe renders a committed recurrence as a human-readable phrase, e.g.
// "every 2 weeks Monday, Wednesday" or "every year March the first Friday".
// It is total over all known variants, independent of the draft state
// machine, and degrades to an empty string on an unknown variant so a
// read-only display path never crashes on schema drift.
func Describe(rec PatternedRecurrence, label LabelFunc) string {
	if label == nil {
		label = EnglishLabels
	}
	if !rec.Pattern.Type.Valid() {
		return ""
	}

	interval := rec.Pattern.Interval
	if interval < 1 {
		interval = 1
	}

	unit := rec.Pattern.Type.Unit()
	var phrase string
	if interval == 1 {
		phrase = "every " + label("unit."+unit)
	} else {
		phrase = fmt.Sprintf("every %d %s", interval, label("units."+unit))
	}

	detail := describeDetail(rec.Pattern, label)
	if detail == "" {
		return phrase
	}
	return phrase + " " + detail
}

func describeDetail(p Pattern, label LabelFunc) string {
	switch p.Type {
	case PatternDaily:
		return ""
	case PatternWeekly:
		return joinWeekdays(p.DaysOfWeek, label)
	case PatternAbsoluteMonthly:
		return fmt.Sprintf("on day %d", p.DayOfMonth)
	case PatternRelativeMonthly:
		return fmt.Sprintf("on the %s %s", label("index."+string(p.Index)), joinWeekdays(p.DaysOfWeek, label))
	case PatternAbsoluteYearly:
		return fmt.Sprintf("%s %d", monthLabel(p.Month, label), p.DayOfMonth)
	case PatternRelativeYearly:
		return fmt.Sprintf("%s the %s %s", monthLabel(p.Month, label),
			label("index."+string(p.Index)), joinWeekdays(p.DaysOfWeek, label))
	}
	return ""
}

func joinWeekdays(days []Weekday, label LabelFunc) string {
	names := make([]string, 0, len(days))
	for _, day := range days {
		names = append(names, label("weekday."+string(day)))
	}
	return strings.Join(names, ", ")
}

func monthLabel(m time.Month, label LabelFunc) string {
	return label(fmt.Sprintf("month.%d", int(m)))
}
