package converter

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/james-see/als2flp/pkg/project"
)

// GenerateMIDI renders the intermediate project as a format-1 standard
// MIDI file: a tempo track followed by one track per channel, with
// notes collected from every pattern that plays that channel. Keys
// above 127 (legal in FL Studio, not in MIDI) are dropped.
func GenerateMIDI(p *project.Project) ([]byte, error) {
	if p == nil {
		return nil, errors.New("nil project")
	}
	tempo := p.Tempo
	if tempo <= 0 {
		tempo = 120.0
	}
	ppq := p.PPQ
	if ppq <= 0 {
		ppq = project.DefaultPPQ
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ppq)

	// Tempo track
	var meta smf.Track
	microsecondsPerBeat := uint32(60000000.0 / tempo)
	meta.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))
	// 4/4 time signature
	meta.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))
	meta.Close(0)
	if err := s.Add(meta); err != nil {
		return nil, fmt.Errorf("failed to add tempo track: %w", err)
	}

	for i, ch := range p.Channels {
		track, err := channelTrack(p, ch, uint8(i%16))
		if err != nil {
			return nil, err
		}
		if err := s.Add(track); err != nil {
			return nil, fmt.Errorf("failed to add track: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// timedMessage is a MIDI message at an absolute tick
type timedMessage struct {
	tick int
	off  bool
	msg  smf.Message
}

func channelTrack(p *project.Project, ch project.Channel, midiChannel uint8) (smf.Track, error) {
	var events []timedMessage
	for _, pat := range p.Patterns {
		for _, n := range pat.Notes {
			if n.Channel != ch.ID || n.Key > 127 {
				continue
			}
			if n.Position < 0 || n.Length <= 0 {
				return nil, fmt.Errorf("invalid note timing in pattern %q", pat.Name)
			}
			velocity := uint8(math.Round(n.Velocity * 127))
			if velocity == 0 {
				velocity = 1 // velocity 0 would read as note-off
			}
			events = append(events, timedMessage{
				tick: n.Position,
				msg:  smf.Message(midi.NoteOn(midiChannel, uint8(n.Key), velocity)),
			})
			events = append(events, timedMessage{
				tick: n.Position + n.Length,
				off:  true,
				msg:  smf.Message(midi.NoteOff(midiChannel, uint8(n.Key))),
			})
		}
	}

	// Note-offs sort ahead of note-ons at the same tick to avoid
	// retrigger glitches on repeated keys
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var track smf.Track
	current := 0
	for _, ev := range events {
		track.Add(uint32(ev.tick-current), ev.msg)
		current = ev.tick
	}
	track.Close(0)
	return track, nil
}
