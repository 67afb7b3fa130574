package flp

import (
	"log"
	"math"

	"github.com/james-see/als2flp/pkg/project"
)

// writeChannel emits one channel block: marker, name, volume, pan, and
// (when the state blob passes validation) the generator state event.
// Event order is fixed; FL Studio associates everything after a
// NEW_CHANNEL marker with that channel until the next marker.
func writeChannel(s *stream, logger *log.Logger, ch project.Channel) error {
	if ch.ID < 0 || ch.ID > math.MaxUint16 {
		return &ChannelError{ID: ch.ID, Name: ch.Name, Reason: "identity out of u16 range"}
	}
	if ch.Volume < 0 || ch.Volume > 1 {
		return &ChannelError{ID: ch.ID, Name: ch.Name, Reason: "volume out of range 0-1"}
	}
	if ch.Pan < -1 || ch.Pan > 1 {
		return &ChannelError{ID: ch.ID, Name: ch.Name, Reason: "pan out of range -1 to 1"}
	}

	s.enter(scopeChannel)
	s.emitWord(tagNewChannel, uint16(ch.ID))
	s.emitText(tagChannelName, ch.Name)
	s.emitByte(tagVolume, channelByte(ch.Volume*100))
	s.emitByte(tagPan, channelByte((ch.Pan+1)*64))

	if validPluginState(logger, ch) {
		s.emitData(tagPluginState, ch.Plugin.State)
	}
	return nil
}

// channelByte rounds to FL Studio's 0-128 knob scale
func channelByte(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		r = 0
	}
	if r > 128 {
		r = 128
	}
	return uint8(r)
}
