package schedule

import (
	"errors"
	"testing"
	"time"
)

func testModule() *Module {
	return &Module{
		registry:    NewRegistry(),
		loc:         time.UTC,
		collectDays: DefaultCollectDays,
		botName:     "ASG",
	}
}

// 2026-01-05 is a Monday.
var testNow = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

func validRequest() scheduleRequest {
	return scheduleRequest{
		guildID:     "G",
		channelID:   "C",
		eventNumber: 12,
		startDate:   "2026/1/15",
		endDate:     "2026/1/17",
		filterName:  "all",
		startHour:   DefaultStartHour,
		endHour:     DefaultEndHour,
	}
}

func Test_prepareSession(t *testing.T) {
	t.Run("builds a session with candidates after the vote window", func(t *testing.T) {
		m := testModule()
		sess, err := m.prepareSession(validRequest(), testNow)
		if err != nil {
			t.Fatal(err)
		}

		if len(sess.Dates) != 3 {
			t.Fatalf("expected 3 candidates, got %d", len(sess.Dates))
		}
		if !sess.CollectEnd.After(sess.CollectStart) {
			t.Error("vote window end must be after its start")
		}
		for _, d := range sess.Dates {
			if !d.After(sess.CollectEnd) {
				t.Errorf("candidate %s falls inside the vote window", d)
			}
		}
		if sess.AuthorText != "ASG 第12回" {
			t.Errorf("unexpected author text %q", sess.AuthorText)
		}
	})

	t.Run("rejects a second session for the same guild", func(t *testing.T) {
		m := testModule()
		sess, err := m.prepareSession(validRequest(), testNow)
		if err != nil {
			t.Fatal(err)
		}
		if err := m.registry.Create(sess); err != nil {
			t.Fatal(err)
		}

		if _, err := m.prepareSession(validRequest(), testNow); !errors.Is(err, ErrAlreadyCollecting) {
			t.Errorf("expected ErrAlreadyCollecting, got %v", err)
		}
	})

	t.Run("rejects direct messages", func(t *testing.T) {
		m := testModule()
		req := validRequest()
		req.guildID = ""
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrNotInGuild) {
			t.Errorf("expected ErrNotInGuild, got %v", err)
		}
	})

	t.Run("rejects malformed dates independently", func(t *testing.T) {
		m := testModule()

		req := validRequest()
		req.startDate = "next tuesday"
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrInvalidStartDate) {
			t.Errorf("expected ErrInvalidStartDate, got %v", err)
		}

		req = validRequest()
		req.endDate = "2026/13/40"
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrInvalidEndDate) {
			t.Errorf("expected ErrInvalidEndDate, got %v", err)
		}
	})

	t.Run("rejects end before start", func(t *testing.T) {
		m := testModule()
		req := validRequest()
		req.startDate, req.endDate = req.endDate, req.startDate
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrDateOrder) {
			t.Errorf("expected ErrDateOrder, got %v", err)
		}
	})

	t.Run("rejects past dates", func(t *testing.T) {
		m := testModule()
		req := validRequest()
		req.startDate = "2025/12/20"
		req.endDate = "2025/12/25"
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrPastDate) {
			t.Errorf("expected ErrPastDate, got %v", err)
		}
	})

	t.Run("rejects overlap with the vote window before generating", func(t *testing.T) {
		m := testModule()
		req := validRequest()
		// three days out, inside the seven-day collection window
		req.startDate = "2026/1/8"
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrScheduleOverlap) {
			t.Errorf("expected ErrScheduleOverlap, got %v", err)
		}
	})

	t.Run("rejects bad event hours", func(t *testing.T) {
		m := testModule()

		req := validRequest()
		req.startHour = 24
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrInvalidTimeRange) {
			t.Errorf("expected ErrInvalidTimeRange, got %v", err)
		}

		req = validRequest()
		req.startHour, req.endHour = 22, 21
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrInvalidTimeRange) {
			t.Errorf("expected ErrInvalidTimeRange, got %v", err)
		}
	})

	t.Run("rejects unknown filter names", func(t *testing.T) {
		m := testModule()
		req := validRequest()
		req.filterName = "fortnightly"
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrUnknownFilter) {
			t.Errorf("expected ErrUnknownFilter, got %v", err)
		}
	})

	t.Run("rejects unknown timezones", func(t *testing.T) {
		m := testModule()
		req := validRequest()
		req.timezone = "Mars/Olympus_Mons"
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrInvalidTimezone) {
			t.Errorf("expected ErrInvalidTimezone, got %v", err)
		}
	})

	t.Run("rejects ranges with no matching days", func(t *testing.T) {
		m := testModule()
		req := validRequest()
		// Tue 13th through Wed 14th with a weekend filter
		req.startDate = "2026/1/13"
		req.endDate = "2026/1/14"
		req.filterName = "weekend"
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrNoCandidates) {
			t.Errorf("expected ErrNoCandidates, got %v", err)
		}
	})

	t.Run("rejects more candidates than reactions", func(t *testing.T) {
		m := testModule()
		req := validRequest()
		req.startDate = "2026/1/13"
		req.endDate = "2026/2/13"
		if _, err := m.prepareSession(req, testNow); !errors.Is(err, ErrTooManyCandidates) {
			t.Errorf("expected ErrTooManyCandidates, got %v", err)
		}
	})

	t.Run("debug vote shortens the window", func(t *testing.T) {
		m := testModule()
		req := validRequest()
		req.debug = true
		sess, err := m.prepareSession(req, testNow)
		if err != nil {
			t.Fatal(err)
		}
		if sess.CollectEnd.Sub(sess.CollectStart) > debugCollectWindow {
			t.Errorf("debug window too long: %s", sess.CollectEnd.Sub(sess.CollectStart))
		}
	})
}

func Test_parseDate(t *testing.T) {
	for _, s := range []string{"2026/01/15", "2026/1/15", "2026-01-15", "2026.1.15", "20260115"} {
		d, err := parseDate(s, time.UTC)
		if err != nil {
			t.Errorf("%s: unexpected error %v", s, err)
			continue
		}
		if !d.Equal(date(2026, 1, 15)) {
			t.Errorf("%s parsed to %s", s, d)
		}
	}

	if _, err := parseDate("soon", time.UTC); err == nil {
		t.Error("expected an error for a non-date")
	}
}
