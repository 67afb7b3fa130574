package flp

import (
	"fmt"
	"math"

	"github.com/james-see/als2flp/pkg/project"
)

// NoteRecordSize is the fixed size of one note entry in a pattern's
// notes event. FL Studio reads these fields at byte-exact offsets; a
// one-byte shift is not a parse error but silent playback corruption.
const NoteRecordSize = 24

// MaxKey is the highest pitch FL Studio accepts (beyond MIDI's 127)
const MaxKey = 131

// Note record layout:
//
//	0-3   position (ticks, u32 LE)
//	4-5   flags (0)
//	6-7   channel identity (u16 LE)
//	8-11  length (ticks, u32 LE)
//	12    MIDI key
//	13    fine pitch (signed)
//	14-15 reserved (0)
//	16    pan
//	17    velocity (0-255 scale)
//	18    mod-X (0)
//	19-23 reserved (0)
func packNote(dst []byte, n project.Note) error {
	if n.Position < 0 {
		return fmt.Errorf("negative position %d", n.Position)
	}
	if n.Length <= 0 {
		return fmt.Errorf("non-positive length %d", n.Length)
	}
	if n.Key < 0 || n.Key > MaxKey {
		return fmt.Errorf("key %d out of range 0-%d", n.Key, MaxKey)
	}
	if n.Velocity < 0 || n.Velocity > 1 {
		return fmt.Errorf("velocity %g out of range 0-1", n.Velocity)
	}

	dst[0] = byte(n.Position)
	dst[1] = byte(n.Position >> 8)
	dst[2] = byte(n.Position >> 16)
	dst[3] = byte(n.Position >> 24)
	// 4-5 flags stay 0
	dst[6] = byte(n.Channel)
	dst[7] = byte(n.Channel >> 8)
	dst[8] = byte(n.Length)
	dst[9] = byte(n.Length >> 8)
	dst[10] = byte(n.Length >> 16)
	dst[11] = byte(n.Length >> 24)
	dst[12] = byte(n.Key)
	dst[13] = byte(n.FinePitch)
	// 14-15 reserved
	dst[16] = n.Pan
	dst[17] = scaleVelocity(n.Velocity)
	// 18 mod-X, 19-23 reserved
	return nil
}

// scaleVelocity converts a normalized velocity to FL Studio's 0-100
// byte scale
func scaleVelocity(v float64) uint8 {
	scaled := math.Round(v * 100)
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 255 {
		scaled = 255
	}
	return uint8(scaled)
}
