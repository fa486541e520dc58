package schedule

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

var addupOperation = &discordgo.ApplicationCommand{
	Name:        "addup",
	Description: "投票の集計を手動で実行します。",
	Type:        discordgo.ChatApplicationCommand,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        "message_id",
			Description: "集計する投票メッセージのID（省略時は現在集計中の投票）",
			Type:        discordgo.ApplicationCommandOptionString,
			Required:    false,
		},
	},
}

func (m *Module) runAddupCommand(ds *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = ds.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})

	var messageID string
	for _, v := range i.ApplicationCommandData().Options {
		if v.Name == "message_id" {
			messageID = v.StringValue()
		}
	}

	var sess *Session
	if messageID == "" {
		sess = m.registry.First()
		if sess == nil {
			respondEmbed(ds, i, errorEmbed(m.userMessage(ErrNoActiveSession)))
			return
		}
	} else {
		msg, err := ds.ChannelMessage(i.ChannelID, messageID)
		if err != nil {
			respondEmbed(ds, i, errorEmbed("メッセージを取得できませんでした: "+err.Error()))
			return
		}
		if msg.Author == nil || msg.Author.ID != ds.State.User.ID {
			respondEmbed(ds, i, errorEmbed("これは投票メッセージではないようです。"))
			return
		}

		sess, err = sessionFromMessage(msg, i.GuildID, m.loc, time.Now())
		if err != nil {
			respondEmbed(ds, i, errorEmbed("投票メッセージを解析できませんでした: "+err.Error()))
			return
		}
	}

	if err := m.sched.Aggregate(sess); err != nil {
		respondEmbed(ds, i, errorEmbed("集計に失敗しました: "+err.Error()))
		return
	}

	respondEmbed(ds, i, newEmbed("集計が完了しました。", "", colorBlue))
}
