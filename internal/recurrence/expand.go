package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

const defaultMaxOccurrences = 1000

// ExpandConfig bounds an occurrence expansion.
type ExpandConfig struct {
	// RangeStart / RangeEnd define the inclusive window of interest.
	RangeStart time.Time
	RangeEnd   time.Time
	// MaxOccurrences caps the expansion; zero means defaultMaxOccurrences.
	MaxOccurrences int
}

// Expand materializes the occurrence instants of a recurrence within the
// window. The second return value reports whether the cap truncated the
// result. Occurrences start at midnight UTC of the range start date; callers
// combine them with the booking's time-of-day.
func Expand(rec PatternedRecurrence, cfg ExpandConfig) ([]time.Time, bool, error) {
	if cfg.RangeEnd.Before(cfg.RangeStart) {
		return nil, false, fmt.Errorf("expand: range end before range start")
	}
	if cfg.MaxOccurrences <= 0 {
		cfg.MaxOccurrences = defaultMaxOccurrences
	}

	opt, err := toROption(rec)
	if err != nil {
		return nil, false, err
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, false, fmt.Errorf("expand: build rule: %w", err)
	}

	all := rule.Between(cfg.RangeStart, cfg.RangeEnd, true)
	if len(all) > cfg.MaxOccurrences {
		return all[:cfg.MaxOccurrences], true, nil
	}
	return all, false, nil
}

// toROption maps the wire-format recurrence onto an RFC 5545 rule option.
func toROption(rec PatternedRecurrence) (rrule.ROption, error) {
	opt := rrule.ROption{
		Dtstart:  rec.Range.StartDate.Time(time.UTC),
		Interval: rec.Pattern.Interval,
	}
	if opt.Interval < 1 {
		opt.Interval = 1
	}

	switch rec.Pattern.Type {
	case PatternDaily:
		opt.Freq = rrule.DAILY
	case PatternWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = toRRuleWeekdays(rec.Pattern.DaysOfWeek)
	case PatternAbsoluteMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{rec.Pattern.DayOfMonth}
	case PatternRelativeMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = toRRuleWeekdays(rec.Pattern.DaysOfWeek)
		opt.Bysetpos = []int{rec.Pattern.Index.SetPos()}
	case PatternAbsoluteYearly:
		opt.Freq = rrule.YEARLY
		opt.Bymonth = []int{int(rec.Pattern.Month)}
		opt.Bymonthday = []int{rec.Pattern.DayOfMonth}
	case PatternRelativeYearly:
		opt.Freq = rrule.YEARLY
		opt.Bymonth = []int{int(rec.Pattern.Month)}
		opt.Byweekday = toRRuleWeekdays(rec.Pattern.DaysOfWeek)
		opt.Bysetpos = []int{rec.Pattern.Index.SetPos()}
	default:
		return rrule.ROption{}, fmt.Errorf("%w: %q", ErrUnknownPatternType, rec.Pattern.Type)
	}

	switch rec.Range.Type {
	case RangeEndDate:
		opt.Until = rec.Range.EndDate.Time(time.UTC)
	case RangeNumbered:
		opt.Count = rec.Range.NumberOfOccurrences
	default:
		return rrule.ROption{}, fmt.Errorf("%w: %q", ErrUnknownRangeType, rec.Range.Type)
	}

	return opt, nil
}

func toRRuleWeekdays(days []Weekday) []rrule.Weekday {
	out := make([]rrule.Weekday, 0, len(days))
	for _, day := range days {
		switch day {
		case Monday:
			out = append(out, rrule.MO)
		case Tuesday:
			out = append(out, rrule.TU)
		case Wednesday:
			out = append(out, rrule.WE)
		case Thursday:
			out = append(out, rrule.TH)
		case Friday:
			out = append(out, rrule.FR)
		case Saturday:
			out = append(out, rrule.SA)
		case Sunday:
			out = append(out, rrule.SU)
		}
	}
	return out
}
