package schedule

import (
	"fmt"
	"time"

	"github.com/Aodaruma/asg-discordbot/api/logger"
)

// Aggregate closes one vote: it re-reads the live reaction counts, picks the
// winning date, publishes the guild event and updates the poll message. The
// session leaves the registry exactly once, as soon as the event exists;
// display failures after that point are logged but do not undo the result.
func (s *Scheduler) Aggregate(sess *Session) error {
	s.presence.SetIdle()

	counts, err := s.msg.FetchVoteCounts(sess.ChannelID, sess.MessageID)
	if err != nil {
		return fmt.Errorf("fetching vote counts for message %s: %w", sess.MessageID, err)
	}

	// every affordance carries the bot's own seed reaction; users may also
	// have attached reactions of their own past the seeded set
	if len(counts) > len(sess.Dates) {
		counts = counts[:len(sess.Dates)]
	}
	for i := range counts {
		if counts[i] > 0 {
			counts[i]--
		}
	}

	winner, err := Tally(counts)
	if err != nil {
		sendErr := s.msg.SendFollowup(sess.ChannelID, "", errorEmbed(
			"内部エラーによりスケジュールの集計に失敗しました。\nお手数をおかけしますが、手動で集計を行ってください。"))
		if sendErr != nil {
			logger.Err().Printf("Error reporting tally failure for guild %s: %s\n", sess.GuildID, sendErr.Error())
		}
		return fmt.Errorf("tallying votes for message %s: %w", sess.MessageID, err)
	}
	res := TallyResult{Counts: counts, Winner: winner}

	winningDate := sess.Dates[winner]
	start, end, err := eventWindow(winningDate, sess.StartHour, sess.EndHour, sess.Timezone, s.now())
	if err != nil {
		return fmt.Errorf("event window for %s: %w", winningDate.Format(dateFormat), err)
	}

	url, err := s.events.CreateEvent(sess.GuildID, sess.AuthorText, eventDescription(sess), start, end)
	if err != nil {
		return fmt.Errorf("creating event for guild %s: %w", sess.GuildID, err)
	}

	// the vote is decided once the event exists; whatever happens to the
	// summary display, this session must not be aggregated again
	defer func() {
		s.registry.Remove(sess)
		s.clearFailures(sess)
	}()

	if err := s.msg.EditPoll(sess.ChannelID, sess.MessageID, resultEmbed(sess, res)); err != nil {
		logger.Err().Printf("Error updating poll message %s: %s\n", sess.MessageID, err.Error())
	}
	if err := s.msg.SendFollowup(sess.ChannelID, url, announceEmbed(winningDate, start, end)); err != nil {
		logger.Err().Printf("Error announcing event for guild %s: %s\n", sess.GuildID, err.Error())
	}

	if s.archive != nil {
		s.archive(sess, res, url)
	}

	return nil
}

// eventWindow resolves the winning date plus the session's hour range into
// concrete event bounds, rejecting anything that is already in the past.
func eventWindow(date time.Time, startHour, endHour int, loc *time.Location, now time.Time) (time.Time, time.Time, error) {
	if startHour < 0 || startHour > 23 || endHour < 0 || endHour > 23 || startHour >= endHour {
		return time.Time{}, time.Time{}, ErrInvalidEventTime
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), endHour, 0, 0, 0, loc)
	if !start.After(now) {
		return time.Time{}, time.Time{}, ErrInvalidEventTime
	}

	return start, end, nil
}

func eventDescription(sess *Session) string {
	if sess.WebsiteURL == "" {
		return ""
	}
	return "website: " + sess.WebsiteURL
}
