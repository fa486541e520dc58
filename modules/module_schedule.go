//go:build modules.schedule || modules.all
// +build modules.schedule modules.all

package modules

import (
	"github.com/Aodaruma/asg-discordbot/modules/schedule"
)

func init() {
	Add(&schedule.Module{})
}
