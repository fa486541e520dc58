package api

import (
	"github.com/bwmarrin/discordgo"
)

// Module is a self-contained feature that registers its own handlers
// and commands against the session when loaded.
type Module interface {
	Load(ds *discordgo.Session)
	Name() string
}
