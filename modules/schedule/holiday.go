package schedule

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/jp"
)

// jpHolidays answers holiday lookups against the Japanese public holiday
// calendar, matching the community the bot runs in.
type jpHolidays struct {
	cal *cal.Calendar
}

func newJPHolidays() *jpHolidays {
	c := &cal.Calendar{}
	c.AddHoliday(jp.Holidays...)
	return &jpHolidays{cal: c}
}

func (j *jpHolidays) IsHoliday(day time.Time) bool {
	actual, observed, _ := j.cal.IsHoliday(day)
	return actual || observed
}
