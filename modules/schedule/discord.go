package schedule

import (
	"fmt"
	"time"

	"github.com/Aodaruma/asg-discordbot/api"
	"github.com/bwmarrin/discordgo"
)

// Messenger is the slice of chat messaging the vote lifecycle needs. The
// engine only talks to this interface, so it can be driven in tests without
// a live session.
type Messenger interface {
	PostPoll(channelID string, embed *discordgo.MessageEmbed) (messageID string, err error)
	AddReaction(channelID, messageID, emoji string) error
	// FetchVoteCounts returns the live reaction count per candidate index,
	// still including the bot's own seed reaction.
	FetchVoteCounts(channelID, messageID string) ([]int, error)
	EditPoll(channelID, messageID string, embed *discordgo.MessageEmbed) error
	SendFollowup(channelID, content string, embed *discordgo.MessageEmbed) error
	DeleteMessage(channelID, messageID string) error
}

// EventPublisher creates the guild event for the winning date.
type EventPublisher interface {
	CreateEvent(guildID, name, description string, start, end time.Time) (url string, err error)
}

// Presence mirrors collection progress on the bot's status display.
type Presence interface {
	SetCollecting(until time.Time, remaining string)
	SetIdle()
}

type discordMessenger struct {
	ds *discordgo.Session
}

func (m *discordMessenger) PostPoll(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	msg, err := m.ds.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (m *discordMessenger) AddReaction(channelID, messageID, emoji string) error {
	return m.ds.MessageReactionAdd(channelID, messageID, emoji)
}

func (m *discordMessenger) FetchVoteCounts(channelID, messageID string) ([]int, error) {
	msg, err := m.ds.ChannelMessage(channelID, messageID)
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(msg.Reactions))
	for i, r := range msg.Reactions {
		counts[i] = r.Count
	}
	return counts, nil
}

func (m *discordMessenger) EditPoll(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	_, err := m.ds.ChannelMessageEditEmbed(channelID, messageID, embed)
	return err
}

func (m *discordMessenger) SendFollowup(channelID, content string, embed *discordgo.MessageEmbed) error {
	_, err := m.ds.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	return err
}

func (m *discordMessenger) DeleteMessage(channelID, messageID string) error {
	return m.ds.ChannelMessageDelete(channelID, messageID)
}

type discordPublisher struct {
	ds *discordgo.Session
}

// CreateEvent schedules a voice event in the guild's first voice channel,
// matching where the community actually meets.
func (p *discordPublisher) CreateEvent(guildID, name, description string, start, end time.Time) (string, error) {
	guild := api.GetGuild(p.ds, guildID)
	if guild == nil {
		return "", fmt.Errorf("fetching guild %s: %w", guildID, ErrNoVenue)
	}

	var voice *discordgo.Channel
	for _, c := range guild.Channels {
		if c.Type == discordgo.ChannelTypeGuildVoice {
			voice = c
			break
		}
	}
	if voice == nil {
		return "", ErrNoVenue
	}

	event, err := p.ds.GuildScheduledEventCreate(guildID, &discordgo.GuildScheduledEventParams{
		Name:               name,
		Description:        description,
		ChannelID:          voice.ID,
		ScheduledStartTime: &start,
		ScheduledEndTime:   &end,
		PrivacyLevel:       discordgo.GuildScheduledEventPrivacyLevelGuildOnly,
		EntityType:         discordgo.GuildScheduledEventEntityTypeVoice,
	})
	if err != nil {
		return "", err
	}

	return "https://discord.com/events/" + guildID + "/" + event.ID, nil
}

type discordPresence struct {
	ds *discordgo.Session
}

func (p *discordPresence) SetCollecting(until time.Time, remaining string) {
	_ = p.ds.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: string(discordgo.StatusDoNotDisturb),
		Activities: []*discordgo.Activity{{
			Name: fmt.Sprintf("集計中 (〜%s, 残り %s)", until.Format("01/02"), remaining),
			Type: discordgo.ActivityTypeWatching,
		}},
	})
}

func (p *discordPresence) SetIdle() {
	_ = p.ds.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: string(discordgo.StatusOnline),
	})
}
