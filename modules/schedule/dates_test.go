package schedule

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type stubHolidays struct {
	days map[string]bool
}

func (s *stubHolidays) IsHoliday(day time.Time) bool {
	return s.days[day.Format("2006-01-02")]
}

func Test_GenerateDates(t *testing.T) {
	t.Run("deterministic for fixed input", func(t *testing.T) {
		first, err := GenerateDates(date(2024, 1, 1), date(2024, 1, 14), 0, FilterAll, nil, time.Time{}, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		second, err := GenerateDates(date(2024, 1, 1), date(2024, 1, 14), 0, FilterAll, nil, time.Time{}, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		if len(first) != len(second) {
			t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if !first[i].Equal(second[i]) {
				t.Errorf("index %d differs: %s vs %s", i, first[i], second[i])
			}
		}
	})

	t.Run("no date at or before the earliest bound", func(t *testing.T) {
		earliest := date(2024, 1, 5)
		dates, err := GenerateDates(date(2024, 1, 1), date(2024, 1, 10), 0, FilterAll, nil, earliest, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		if len(dates) != 5 {
			t.Fatalf("expected 5 dates, got %d", len(dates))
		}
		if !dates[0].Equal(date(2024, 1, 6)) {
			t.Errorf("first date should be 2024-01-06, got %s", dates[0])
		}
		if !dates[4].Equal(date(2024, 1, 10)) {
			t.Errorf("last date should be 2024-01-10, got %s", dates[4])
		}
		for _, d := range dates {
			if !d.After(earliest) {
				t.Errorf("date %s is not after earliest %s", d, earliest)
			}
		}
	})

	// 2024-01-01 is a Monday, so two full weeks split 10/4
	t.Run("weekday filter over two weeks", func(t *testing.T) {
		dates, err := GenerateDates(date(2024, 1, 1), date(2024, 1, 14), 0, FilterWeekday, nil, time.Time{}, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		if len(dates) != 10 {
			t.Errorf("expected 10 weekdays, got %d", len(dates))
		}
	})

	t.Run("weekend filter over two weeks", func(t *testing.T) {
		dates, err := GenerateDates(date(2024, 1, 1), date(2024, 1, 14), 0, FilterWeekend, nil, time.Time{}, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		if len(dates) != 4 {
			t.Errorf("expected 4 weekend days, got %d", len(dates))
		}
	})

	t.Run("holidays filter includes marked weekdays", func(t *testing.T) {
		holidays := &stubHolidays{days: map[string]bool{"2024-01-03": true}} // a Wednesday
		dates, err := GenerateDates(date(2024, 1, 1), date(2024, 1, 7), 0, FilterHolidays, holidays, time.Time{}, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		// Sat 6th, Sun 7th, plus the marked Wednesday
		if len(dates) != 3 {
			t.Fatalf("expected 3 dates, got %d", len(dates))
		}
		if !dates[0].Equal(date(2024, 1, 3)) {
			t.Errorf("first date should be the holiday, got %s", dates[0])
		}
	})

	t.Run("range length instead of end date", func(t *testing.T) {
		dates, err := GenerateDates(date(2024, 1, 1), time.Time{}, 14, FilterAll, nil, time.Time{}, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		if len(dates) != 14 {
			t.Errorf("expected 14 dates, got %d", len(dates))
		}
	})

	t.Run("default range when neither end nor length given", func(t *testing.T) {
		dates, err := GenerateDates(date(2024, 1, 1), time.Time{}, 0, FilterAll, nil, time.Time{}, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		if len(dates) != DefaultScheduleRange {
			t.Errorf("expected %d dates, got %d", DefaultScheduleRange, len(dates))
		}
	})

	t.Run("end date and range length conflict", func(t *testing.T) {
		_, err := GenerateDates(date(2024, 1, 1), date(2024, 1, 10), 5, FilterAll, nil, time.Time{}, time.UTC)
		if !errors.Is(err, ErrConflictingRange) {
			t.Errorf("expected ErrConflictingRange, got %v", err)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := GenerateDates(date(2024, 1, 10), date(2024, 1, 1), 0, FilterAll, nil, time.Time{}, time.UTC)
		if !errors.Is(err, ErrInvalidRange) {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
	})
}

func Test_ParseFilter(t *testing.T) {
	for _, name := range []string{"all", "weekday", "weekend", "holidays"} {
		f, err := ParseFilter(name)
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
		if f.String() != name {
			t.Errorf("%s: round-trip gave %s", name, f.String())
		}
	}

	if _, err := ParseFilter("fortnightly"); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("expected ErrUnknownFilter, got %v", err)
	}
}
