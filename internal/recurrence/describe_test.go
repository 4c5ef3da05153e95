package recurrence

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDescribeDaily(t *testing.T) {
	rec := PatternedRecurrence{Pattern: Pattern{Type: PatternDaily, Interval: 1}}
	assert.Equal(t, "every day", Describe(rec, nil))

	rec.Pattern.Interval = 3
	assert.Equal(t, "every 3 days", Describe(rec, nil))
}

func TestDescribeWeeklySingleInterval(t *testing.T) {
	rec := PatternedRecurrence{Pattern: Pattern{
		Type:       PatternWeekly,
		Interval:   1,
		DaysOfWeek: []Weekday{Monday, Wednesday},
	}}

	phrase := Describe(rec, nil)
	assert.Contains(t, phrase, "Monday")
	assert.Contains(t, phrase, "Wednesday")
	assert.True(t, strings.HasPrefix(phrase, "every week"), "got %q", phrase)
	assert.NotContains(t, phrase, "every 2")
}

func TestDescribeWeeklyMultiInterval(t *testing.T) {
	rec := PatternedRecurrence{Pattern: Pattern{
		Type:       PatternWeekly,
		Interval:   2,
		DaysOfWeek: []Weekday{Friday},
	}}

	assert.Equal(t, "every 2 weeks Friday", Describe(rec, nil))
}

func TestDescribeAbsoluteMonthly(t *testing.T) {
	rec := PatternedRecurrence{Pattern: Pattern{
		Type: PatternAbsoluteMonthly, Interval: 1, DayOfMonth: 15,
	}}
	assert.Equal(t, "every month on day 15", Describe(rec, nil))
}

func TestDescribeRelativeMonthly(t *testing.T) {
	rec := PatternedRecurrence{Pattern: Pattern{
		Type: PatternRelativeMonthly, Interval: 1,
		DaysOfWeek: []Weekday{Tuesday}, Index: Second,
	}}
	assert.Equal(t, "every month on the second Tuesday", Describe(rec, nil))
}

func TestDescribeAbsoluteYearly(t *testing.T) {
	rec := PatternedRecurrence{Pattern: Pattern{
		Type: PatternAbsoluteYearly, Interval: 1, DayOfMonth: 4, Month: time.July,
	}}
	assert.Equal(t, "every year July 4", Describe(rec, nil))
}

func TestDescribeRelativeYearly(t *testing.T) {
	rec := PatternedRecurrence{Pattern: Pattern{
		Type: PatternRelativeYearly, Interval: 1,
		DaysOfWeek: []Weekday{Friday}, Index: Last, Month: time.November,
	}}
	assert.Equal(t, "every year November the last Friday", Describe(rec, nil))
}

func TestDescribeUnknownVariantDegradesToEmpty(t *testing.T) {
	rec := PatternedRecurrence{Pattern: Pattern{Type: "fortnightly", Interval: 1}}
	assert.Equal(t, "", Describe(rec, nil))
}

func TestDescribeZeroIntervalReadsAsOne(t *testing.T) {
	rec := PatternedRecurrence{Pattern: Pattern{Type: PatternDaily}}
	assert.Equal(t, "every day", Describe(rec, nil))
}

func TestDescribeCustomLabels(t *testing.T) {
	labels := func(key string) string {
		switch key {
		case "unit.week":
			return "Woche"
		case "weekday.monday":
			return "Montag"
		}
		return key
	}
	rec := PatternedRecurrence{Pattern: Pattern{
		Type: PatternWeekly, Interval: 1, DaysOfWeek: []Weekday{Monday},
	}}

	assert.Equal(t, "every Woche Montag", Describe(rec, labels))
}
