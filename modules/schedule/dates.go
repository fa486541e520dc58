package schedule

import (
	"time"
)

const (
	// DefaultScheduleRange is how many days of candidates are considered
	// when no explicit end date is given.
	DefaultScheduleRange = 60

	// DefaultCollectDays is the length of the voting period.
	DefaultCollectDays = 7

	// DefaultTimezone governs date interpretation unless overridden.
	DefaultTimezone = "Asia/Tokyo"
)

// DayFilter restricts which days of a schedule range become candidates.
type DayFilter int

const (
	FilterAll DayFilter = iota
	FilterWeekday
	FilterWeekend
	FilterHolidays
)

// HolidayChecker reports whether a given day is a public holiday. Only the
// holidays filter consults it.
type HolidayChecker interface {
	IsHoliday(day time.Time) bool
}

var filterNames = map[string]DayFilter{
	"all":      FilterAll,
	"weekday":  FilterWeekday,
	"weekend":  FilterWeekend,
	"holidays": FilterHolidays,
}

func ParseFilter(name string) (DayFilter, error) {
	f, ok := filterNames[name]
	if !ok {
		return FilterAll, ErrUnknownFilter
	}
	return f, nil
}

func (f DayFilter) String() string {
	switch f {
	case FilterWeekday:
		return "weekday"
	case FilterWeekend:
		return "weekend"
	case FilterHolidays:
		return "holidays"
	default:
		return "all"
	}
}

func (f DayFilter) matches(day time.Time, holidays HolidayChecker) bool {
	weekend := day.Weekday() == time.Saturday || day.Weekday() == time.Sunday
	switch f {
	case FilterWeekday:
		return !weekend
	case FilterWeekend:
		return weekend
	case FilterHolidays:
		return weekend || (holidays != nil && holidays.IsHoliday(day))
	default:
		return true
	}
}

// GenerateDates walks the schedule range day by day and returns, in
// chronological order, every day that passes the filter and falls after
// earliest. The returned order is the index order the reactions are attached
// in, so it must be stable for a given input.
//
// Exactly one of end (non-zero) or rangeDays (positive) may be given; with
// neither, DefaultScheduleRange days are walked.
func GenerateDates(start, end time.Time, rangeDays int, filter DayFilter, holidays HolidayChecker, earliest time.Time, loc *time.Location) ([]time.Time, error) {
	if !end.IsZero() && rangeDays > 0 {
		return nil, ErrConflictingRange
	}

	start = midnight(start, loc)

	span := rangeDays
	if !end.IsZero() {
		end = midnight(end, loc)
		span = int(end.Sub(start).Hours()/24) + 1
	} else if span == 0 {
		span = DefaultScheduleRange
	}

	if span <= 0 {
		return nil, ErrInvalidRange
	}

	var dates []time.Time
	for i := 0; i < span; i++ {
		day := start.AddDate(0, 0, i)
		if filter.matches(day, holidays) && day.After(earliest) {
			dates = append(dates, day)
		}
	}

	return dates, nil
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
