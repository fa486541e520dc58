package main

import (
	"fmt"
	"github.com/Aodaruma/asg-discordbot/api"
	"github.com/Aodaruma/asg-discordbot/api/database"
	"github.com/Aodaruma/asg-discordbot/api/logger"
	"github.com/Aodaruma/asg-discordbot/modules"
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

var Session *discordgo.Session

func main() {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	moduleNames := os.Args[1:]

	token := viper.GetString("discord_token")

	if token == "" {
		logger.Err().Print("DISCORD_TOKEN must be set in the environment to run this process")
		return
	}

	defer func() {
		err := logger.Close()
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error closing logger: %s", err.Error())
		}
	}()

	defer database.Close()

	Session, _ = discordgo.New("")
	defer Session.Close()

	if len(moduleNames) > 0 {
		modules.Load(Session, moduleNames)
	}

	OpenConnection(token)

	// Wait for a CTRL-C
	fmt.Println(`Now running. Press CTRL-C to exit.`)
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	fmt.Println("Shutting down")
}

func OpenConnection(token string) {
	if !strings.HasPrefix(token, "Bot ") {
		token = "Bot " + token
	}
	Session.Token = token
	Session.Identify.Intents = api.GetIntent()

	EnableCommands(Session)

	err := Session.Open()
	if err != nil {
		logger.Err().Print(err.Error())
		os.Exit(1)
	}
}
