package schedule

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func Test_sessionFromMessage(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	t.Run("round-trips a posted poll embed", func(t *testing.T) {
		original := &Session{
			GuildID:      "G",
			ChannelID:    "C",
			EventNumber:  12,
			Dates:        []time.Time{date(2026, 2, 10), date(2026, 2, 11), date(2026, 2, 14)},
			CollectStart: now.AddDate(0, 0, -7),
			CollectEnd:   now.AddDate(0, 0, -1),
			StartHour:    20,
			EndHour:      22,
			Timezone:     time.UTC,
			AuthorText:   "ASG 第12回",
		}

		msg := &discordgo.Message{
			ID:        "m1",
			ChannelID: "C",
			Embeds:    []*discordgo.MessageEmbed{pollEmbed(original)},
		}

		sess, err := sessionFromMessage(msg, "G", time.UTC, now)
		if err != nil {
			t.Fatal(err)
		}

		if sess.EventNumber != 12 {
			t.Errorf("event number: got %d", sess.EventNumber)
		}
		if len(sess.Dates) != len(original.Dates) {
			t.Fatalf("expected %d dates, got %d", len(original.Dates), len(sess.Dates))
		}
		for i := range sess.Dates {
			if !sess.Dates[i].Equal(original.Dates[i]) {
				t.Errorf("date %d: got %s, want %s", i, sess.Dates[i], original.Dates[i])
			}
		}
		if sess.StartHour != 20 || sess.EndHour != 22 {
			t.Errorf("hours: got %d-%d", sess.StartHour, sess.EndHour)
		}
		if sess.MessageID != "m1" {
			t.Errorf("message id: got %s", sess.MessageID)
		}
		if now.Before(sess.CollectEnd) {
			t.Error("a readback session must be immediately due")
		}
	})

	t.Run("rejects a message without embeds", func(t *testing.T) {
		_, err := sessionFromMessage(&discordgo.Message{ID: "m1"}, "G", time.UTC, now)
		if err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("rejects an embed without candidate dates", func(t *testing.T) {
		msg := &discordgo.Message{
			ID:     "m1",
			Embeds: []*discordgo.MessageEmbed{newEmbed("something else", "", colorBlue)},
		}
		if _, err := sessionFromMessage(msg, "G", time.UTC, now); err == nil {
			t.Error("expected an error")
		}
	})
}
