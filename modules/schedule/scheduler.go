package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/Aodaruma/asg-discordbot/api/logger"
)

const (
	tickPeriod         = time.Minute
	debugCollectWindow = 3 * time.Minute

	// maxAggregateAttempts bounds how many ticks a failing aggregation is
	// retried before the session is dropped and reported.
	maxAggregateAttempts = 3
)

// Scheduler drives every active session off a single recurring timer. Due
// sessions are aggregated within the tick, the rest only refresh the
// presence display.
type Scheduler struct {
	registry *Registry
	msg      Messenger
	events   EventPublisher
	presence Presence

	now     func() time.Time
	archive func(*Session, TallyResult, string)

	mu       sync.Mutex
	failures map[string]int
}

func NewScheduler(registry *Registry, msg Messenger, events EventPublisher, presence Presence) *Scheduler {
	return &Scheduler{
		registry: registry,
		msg:      msg,
		events:   events,
		presence: presence,
		now:      time.Now,
		archive:  archiveRecord,
		failures: make(map[string]int),
	}
}

// Start runs the tick loop until the process exits. No per-session
// goroutine is spawned; one session's completion never stops the loop.
func (s *Scheduler) Start() {
	go func() {
		timer := time.NewTicker(tickPeriod)
		for {
			<-timer.C
			s.runTick()
		}
	}()
}

func (s *Scheduler) runTick() {
	now := s.now()

	for _, sess := range s.registry.All() {
		if now.Before(sess.CollectEnd) {
			s.presence.SetCollecting(sess.CollectEnd, FormatRemaining(sess.CollectEnd.Sub(now)))
			continue
		}

		if err := s.Aggregate(sess); err != nil {
			logger.Err().Printf("Error aggregating votes for guild %s: %s\n", sess.GuildID, err.Error())
			s.noteFailure(sess)
		}
	}
}

func (s *Scheduler) noteFailure(sess *Session) {
	s.mu.Lock()
	s.failures[sess.GuildID]++
	attempts := s.failures[sess.GuildID]
	s.mu.Unlock()

	if attempts < maxAggregateAttempts {
		return
	}

	// without this a broken poll would be re-attempted on every tick forever
	s.registry.Remove(sess)
	s.clearFailures(sess)
	err := s.msg.SendFollowup(sess.ChannelID, "", errorEmbed(fmt.Sprintf(
		"集計に%d回失敗したため、この投票の自動集計を停止しました。/addup で手動集計してください。", maxAggregateAttempts)))
	if err != nil {
		logger.Err().Printf("Error reporting abandoned poll for guild %s: %s\n", sess.GuildID, err.Error())
	}
}

func (s *Scheduler) clearFailures(sess *Session) {
	s.mu.Lock()
	delete(s.failures, sess.GuildID)
	s.mu.Unlock()
}

// FormatRemaining renders a duration in its coarsest non-zero unit.
func FormatRemaining(d time.Duration) string {
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%d日", int(d.Hours())/24)
	case d >= time.Hour:
		return fmt.Sprintf("%d時間", int(d.Hours()))
	case d >= time.Minute:
		return fmt.Sprintf("%d分", int(d.Minutes()))
	default:
		return "1分以内"
	}
}
