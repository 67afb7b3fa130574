package flp

import (
	"log"

	"github.com/james-see/als2flp/pkg/project"
)

// validPluginState decides whether a channel's generator state blob is
// emitted. FL Studio crashes on a zero-length generator state event, so
// an absent or empty payload means no event at all for that channel.
// The skip is logged so dropped generators are visible in conversion
// output.
func validPluginState(logger *log.Logger, ch project.Channel) bool {
	if len(ch.Plugin.State) > 0 {
		return true
	}
	logger.Printf("warning: channel %d (%s): empty %s state, generator event skipped",
		ch.ID, ch.Name, ch.Plugin.Kind)
	return false
}
