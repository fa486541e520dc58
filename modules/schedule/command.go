package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/Aodaruma/asg-discordbot/api/logger"
	"github.com/bwmarrin/discordgo"
)

const (
	DefaultStartHour = 21
	DefaultEndHour   = 23
)

var scheduleOperation = &discordgo.ApplicationCommand{
	Name:        "schedule",
	Description: "自動で投票を開始し、イベントを作成します。",
	Type:        discordgo.ChatApplicationCommand,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        "event_number",
			Description: "イベントの回数",
			Type:        discordgo.ApplicationCommandOptionInteger,
			Required:    true,
		},
		{
			Name:        "start_date",
			Description: "スケジュールの開始日",
			Type:        discordgo.ApplicationCommandOptionString,
			Required:    true,
		},
		{
			Name:        "end_date",
			Description: "スケジュールの終了日",
			Type:        discordgo.ApplicationCommandOptionString,
			Required:    true,
		},
		{
			Name:        "timezone",
			Description: "タイムゾーン",
			Type:        discordgo.ApplicationCommandOptionString,
			Required:    false,
		},
		{
			Name:        "filter_type",
			Description: "日程の種類",
			Type:        discordgo.ApplicationCommandOptionString,
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "all", Value: "all"},
				{Name: "weekday", Value: "weekday"},
				{Name: "weekend", Value: "weekend"},
				{Name: "holidays", Value: "holidays"},
			},
		},
		{
			Name:        "website_url",
			Description: "イベントのウェブサイトのURL",
			Type:        discordgo.ApplicationCommandOptionString,
			Required:    false,
		},
		{
			Name:        "time_range_start",
			Description: "イベントの開始時間",
			Type:        discordgo.ApplicationCommandOptionInteger,
			Required:    false,
		},
		{
			Name:        "time_range_end",
			Description: "イベントの終了時間",
			Type:        discordgo.ApplicationCommandOptionInteger,
			Required:    false,
		},
		{
			Name:        "debug_vote",
			Description: "デバッグ用に投票期間を数分に短縮します",
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Required:    false,
		},
	},
}

type scheduleRequest struct {
	guildID     string
	channelID   string
	eventNumber int
	startDate   string
	endDate     string
	timezone    string
	filterName  string
	websiteURL  string
	startHour   int
	endHour     int
	debug       bool
}

func (m *Module) runScheduleCommand(ds *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = ds.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})

	req := scheduleRequest{
		guildID:    i.GuildID,
		channelID:  i.ChannelID,
		filterName: "holidays",
		startHour:  DefaultStartHour,
		endHour:    DefaultEndHour,
	}

	for _, v := range i.ApplicationCommandData().Options {
		switch v.Name {
		case "event_number":
			req.eventNumber = int(v.IntValue())
		case "start_date":
			req.startDate = v.StringValue()
		case "end_date":
			req.endDate = v.StringValue()
		case "timezone":
			req.timezone = v.StringValue()
		case "filter_type":
			req.filterName = v.StringValue()
		case "website_url":
			req.websiteURL = v.StringValue()
		case "time_range_start":
			req.startHour = int(v.IntValue())
		case "time_range_end":
			req.endHour = int(v.IntValue())
		case "debug_vote":
			req.debug = v.BoolValue()
		}
	}

	sess, err := m.prepareSession(req, time.Now())
	if err != nil {
		respondEmbed(ds, i, errorEmbed(m.userMessage(err)))
		return
	}

	messageID, err := m.msg.PostPoll(req.channelID, pollEmbed(sess))
	if err != nil {
		respondEmbed(ds, i, errorEmbed("投票メッセージの送信に失敗しました: "+err.Error()))
		return
	}
	sess.MessageID = messageID

	if err := m.registry.Create(sess); err != nil {
		// lost a race against a concurrent start
		_ = m.msg.DeleteMessage(req.channelID, messageID)
		respondEmbed(ds, i, errorEmbed(m.userMessage(err)))
		return
	}

	for idx := range sess.Dates {
		if err := m.msg.AddReaction(req.channelID, messageID, reactionEmojis[idx]); err != nil {
			logger.Err().Printf("Error attaching reaction %d to message %s: %s\n", idx, messageID, err.Error())
		}
	}

	m.sched.presence.SetCollecting(sess.CollectEnd, FormatRemaining(time.Until(sess.CollectEnd)))

	respondEmbed(ds, i, newEmbed("投票を開始しました。", fmt.Sprintf("締切: %s",
		sess.CollectEnd.In(sess.Timezone).Format("01/02 15:04")), colorBlue))
}

// prepareSession validates a start request and builds the session, candidate
// dates included. Checks run in a fixed order and stop at the first
// violation so the requester always sees the most fundamental problem.
func (m *Module) prepareSession(req scheduleRequest, now time.Time) (*Session, error) {
	if m.registry.Get(req.guildID) != nil {
		return nil, ErrAlreadyCollecting
	}
	if req.guildID == "" {
		return nil, ErrNotInGuild
	}

	loc := m.loc
	if req.timezone != "" {
		var err error
		loc, err = time.LoadLocation(req.timezone)
		if err != nil {
			return nil, ErrInvalidTimezone
		}
	}

	start, err := parseDate(req.startDate, loc)
	if err != nil {
		return nil, ErrInvalidStartDate
	}
	end, err := parseDate(req.endDate, loc)
	if err != nil {
		return nil, ErrInvalidEndDate
	}

	if !end.After(start) {
		return nil, ErrDateOrder
	}
	if start.Before(now) || end.Before(now) {
		return nil, ErrPastDate
	}
	if start.Before(now.AddDate(0, 0, m.collectDays)) {
		return nil, ErrScheduleOverlap
	}

	if req.startHour < 0 || req.startHour > 23 || req.endHour < 0 || req.endHour > 23 || req.startHour >= req.endHour {
		return nil, ErrInvalidTimeRange
	}

	filter, err := ParseFilter(req.filterName)
	if err != nil {
		return nil, err
	}

	collectStart := now
	var collectEnd time.Time
	if req.debug {
		collectEnd = collectStart.Add(debugCollectWindow).Truncate(time.Minute)
	} else {
		collectEnd = midnight(collectStart.AddDate(0, 0, m.collectDays), loc)
	}

	dates, err := GenerateDates(start, end, 0, filter, m.holidays, collectEnd, loc)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, ErrNoCandidates
	}
	if len(dates) > len(reactionEmojis) {
		return nil, ErrTooManyCandidates
	}

	return &Session{
		GuildID:      req.guildID,
		ChannelID:    req.channelID,
		EventNumber:  req.eventNumber,
		Dates:        dates,
		CollectStart: collectStart,
		CollectEnd:   collectEnd,
		StartHour:    req.startHour,
		EndHour:      req.endHour,
		Timezone:     loc,
		AuthorText:   fmt.Sprintf("%s 第%d回", m.botName, req.eventNumber),
		WebsiteURL:   req.websiteURL,
	}, nil
}

var dateLayouts = []string{"2006/1/2", "2006-1-2", "2006.1.2", "20060102"}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func (m *Module) userMessage(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyCollecting):
		return "現在集計中です。しばらくお待ちください。"
	case errors.Is(err, ErrNotInGuild):
		return "サーバー以外ではこのコマンドは使用できません。"
	case errors.Is(err, ErrInvalidStartDate):
		return "start_dateの形式・日付が不正です。"
	case errors.Is(err, ErrInvalidEndDate):
		return "end_dateの形式・日付が不正です。"
	case errors.Is(err, ErrDateOrder):
		return "end_dateはstart_dateより後の日付を指定してください。"
	case errors.Is(err, ErrPastDate):
		return "start_dateとend_dateは現在時刻より後の日付を指定してください。"
	case errors.Is(err, ErrScheduleOverlap):
		return fmt.Sprintf("投票期間とスケジュール期間が被っています。start_dateは現在時刻より%d日以上後の日付を指定してください。", m.collectDays)
	case errors.Is(err, ErrInvalidTimeRange):
		return "time_range_startとtime_range_endは0-23の範囲で、startがendより小さくなるように指定してください。"
	case errors.Is(err, ErrUnknownFilter):
		return "filter_typeは all, weekday, weekend, holidays のいずれかを指定してください。"
	case errors.Is(err, ErrInvalidTimezone):
		return "timezoneが不正です。IANA形式（例: Asia/Tokyo）で指定してください。"
	case errors.Is(err, ErrNoCandidates):
		return "指定された条件に該当する日程が存在しませんでした。"
	case errors.Is(err, ErrTooManyCandidates):
		return fmt.Sprintf("条件に一致する日程が、つけることができる絵文字数より多く存在します。%d個以下にしてください。", MaxReactions)
	case errors.Is(err, ErrNoActiveSession):
		return "現在集計中の投票はありません。"
	default:
		return "内部エラーが発生しました: " + err.Error()
	}
}

func respondEmbed(ds *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	embeds := []*discordgo.MessageEmbed{embed}
	_, _ = ds.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds})
}
