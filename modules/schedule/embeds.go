package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const dateFormat = "2006/01/02 (Mon)"

const (
	colorBlue = 0x3498db
	colorRed  = 0xe74c3c
)

// Field names double as anchors for the readback adapter; keep them in sync
// with readback.go.
const (
	fieldCandidates = "日時の候補"
	fieldTimeRange  = "時間"
	fieldVotePeriod = "投票期間"
	fieldResult     = "スケジュールの集計結果"
)

func newEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	}
}

func errorEmbed(description string) *discordgo.MessageEmbed {
	return newEmbed("エラー", description, colorRed)
}

func pollEmbed(s *Session) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(s.Dates))
	for i, d := range s.Dates {
		lines = append(lines, fmt.Sprintf("%s `%s`", reactionEmojis[i], d.Format(dateFormat)))
	}

	e := newEmbed("以下のリアクションからスケジュールを選択してください。", "", colorBlue)
	e.Author = &discordgo.MessageEmbedAuthor{Name: s.AuthorText}
	e.Fields = []*discordgo.MessageEmbedField{
		{Name: fieldCandidates, Value: strings.Join(lines, "\n")},
		{Name: fieldTimeRange, Value: fmt.Sprintf("%d:00 - %d:00", s.StartHour, s.EndHour)},
		{Name: fieldVotePeriod, Value: fmt.Sprintf("%s 〜 %s",
			s.CollectStart.In(s.Timezone).Format("01/02 15:04"),
			s.CollectEnd.In(s.Timezone).Format("01/02 15:04"))},
	}
	return e
}

func resultEmbed(s *Session, res TallyResult) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(s.Dates))
	for i, d := range s.Dates {
		count := 0
		if i < len(res.Counts) {
			count = res.Counts[i]
		}
		if i == res.Winner {
			lines = append(lines, fmt.Sprintf("%s `%s`: **%d人**   :eyes:", reactionEmojis[i], d.Format(dateFormat), count))
		} else {
			lines = append(lines, fmt.Sprintf("%s `%s`: %d人", reactionEmojis[i], d.Format(dateFormat), count))
		}
	}

	e := newEmbed("以下の通りスケジュールが集計されました。", "", colorBlue)
	e.Author = &discordgo.MessageEmbedAuthor{Name: s.AuthorText}
	e.Fields = []*discordgo.MessageEmbedField{
		{Name: fieldResult, Value: strings.Join(lines, "\n")},
	}
	return e
}

func announceEmbed(date, start, end time.Time) *discordgo.MessageEmbed {
	title := fmt.Sprintf("次のイベントの日時は **%s %s-%s** です。",
		date.Format("01/02"), start.Format("15:04"), end.Format("15:04"))
	return newEmbed(title, "", colorBlue)
}
