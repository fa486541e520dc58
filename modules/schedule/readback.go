package schedule

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// sessionFromMessage reconstructs a best-effort Session from a previously
// posted poll embed, for manual addup of polls the registry no longer knows
// about (typically after a restart). It re-parses display text and is
// coupled to the embed layout in embeds.go; the normal create/aggregate path
// never goes through here.

var (
	candidateDateRe = regexp.MustCompile("`(\\d{4}/\\d{2}/\\d{2})")
	timeRangeRe     = regexp.MustCompile(`^(\d{1,2}):00 - (\d{1,2}):00$`)
	eventNumberRe   = regexp.MustCompile(`第(\d+)回`)
)

func sessionFromMessage(msg *discordgo.Message, guildID string, loc *time.Location, now time.Time) (*Session, error) {
	if len(msg.Embeds) == 0 {
		return nil, errors.New("message has no embed")
	}
	embed := msg.Embeds[0]

	sess := &Session{
		GuildID:   guildID,
		ChannelID: msg.ChannelID,
		MessageID: msg.ID,
		StartHour: DefaultStartHour,
		EndHour:   DefaultEndHour,
		Timezone:  loc,
		// the window is treated as already closed
		CollectStart: now,
		CollectEnd:   now,
	}

	if embed.Author != nil {
		sess.AuthorText = embed.Author.Name
		if match := eventNumberRe.FindStringSubmatch(embed.Author.Name); match != nil {
			sess.EventNumber, _ = strconv.Atoi(match[1])
		}
	}

	for _, f := range embed.Fields {
		switch f.Name {
		case fieldCandidates:
			for _, line := range strings.Split(f.Value, "\n") {
				match := candidateDateRe.FindStringSubmatch(line)
				if match == nil {
					continue
				}
				d, err := time.ParseInLocation("2006/01/02", match[1], loc)
				if err != nil {
					continue
				}
				sess.Dates = append(sess.Dates, d)
			}
		case fieldTimeRange:
			match := timeRangeRe.FindStringSubmatch(strings.TrimSpace(f.Value))
			if match != nil {
				sess.StartHour, _ = strconv.Atoi(match[1])
				sess.EndHour, _ = strconv.Atoi(match[2])
			}
		}
	}

	if len(sess.Dates) == 0 {
		return nil, errors.New("no candidate dates found in embed")
	}

	return sess, nil
}
