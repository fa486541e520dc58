package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/Aodaruma/asg-discordbot/api"
	"github.com/Aodaruma/asg-discordbot/api/database"
	"github.com/Aodaruma/asg-discordbot/api/env"
	"github.com/Aodaruma/asg-discordbot/api/logger"
	"github.com/bwmarrin/discordgo"
)

type Module struct {
	api.Module

	registry *Registry
	sched    *Scheduler
	msg      Messenger
	holidays HolidayChecker

	loc         *time.Location
	collectDays int
	botName     string
}

var appId string

func (m *Module) Load(ds *discordgo.Session) {
	appId = env.Get("app.id")
	m.botName = env.GetOr("schedule.name", "ASG")

	m.collectDays = env.GetInt("schedule.collect_days")
	if m.collectDays <= 0 {
		m.collectDays = DefaultCollectDays
	}

	tz := env.GetOr("schedule.timezone", DefaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.Err().Printf("Unknown timezone %s, falling back to UTC\n", tz)
		loc = time.UTC
	}
	m.loc = loc

	m.registry = NewRegistry()
	m.holidays = newJPHolidays()
	m.msg = &discordMessenger{ds: ds}
	m.sched = NewScheduler(m.registry, m.msg, &discordPublisher{ds: ds}, &discordPresence{ds: ds})

	api.RegisterIntentNeed(
		discordgo.IntentGuilds,
		discordgo.IntentGuildMessages,
		discordgo.IntentGuildMessageReactions,
		discordgo.IntentGuildScheduledEvents,
	)
	api.RegisterCommand("collecting", m.runStatusCommand)

	var guilds []string
	for _, v := range strings.Split(env.Get("schedule.guilds"), ";") {
		if v != "" {
			guilds = append(guilds, v)
		}
	}
	if len(guilds) == 0 {
		// no guild list means global registration
		guilds = []string{""}
	}

	ds.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		for _, guild := range guilds {
			for _, v := range []*discordgo.ApplicationCommand{scheduleOperation, addupOperation} {
				logger.Out().Printf("Registering %s for guild %q\n", v.Name, guild)
				_, err := s.ApplicationCommandCreate(appId, guild, v)
				if err != nil {
					logger.Err().Printf("Cannot create slash command %q: %v", v.Name, err)
				}
			}
		}
	})

	ds.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		switch i.ApplicationCommandData().Name {
		case scheduleOperation.Name:
			m.runScheduleCommand(s, i)
		case addupOperation.Name:
			m.runAddupCommand(s, i)
		}
	})

	ds.AddHandlerOnce(func(s *discordgo.Session, c *discordgo.Connect) {
		m.sched.Start()
	})

	db, err := database.Get()
	if err != nil {
		logger.Err().Println(err.Error())
		return
	}
	if err := db.AutoMigrate(&ScheduleRecord{}); err != nil {
		logger.Err().Println(err.Error())
	}
}

func (m *Module) runStatusCommand(ds *discordgo.Session, mc *discordgo.MessageCreate, cmd string, args []string) {
	sessions := m.registry.All()
	if len(sessions) == 0 {
		_, _ = ds.ChannelMessageSend(mc.ChannelID, "現在集計中の投票はありません。")
		return
	}

	lines := make([]string, 0, len(sessions))
	for _, s := range sessions {
		lines = append(lines, fmt.Sprintf("%s: 〜%s (残り %s)",
			s.AuthorText,
			s.CollectEnd.In(s.Timezone).Format("01/02 15:04"),
			FormatRemaining(time.Until(s.CollectEnd))))
	}
	_, _ = ds.ChannelMessageSend(mc.ChannelID, strings.Join(lines, "\n"))
}

func (Module) Name() string {
	return "schedule"
}
