// Package generator produces opaque state blobs for FL Studio's native
// generators. The blobs are carried through the writer uninterpreted;
// their internal layout matters only to FL Studio itself.
package generator

import (
	"encoding/binary"

	"github.com/james-see/als2flp/pkg/project"
)

// Pad describes one FPC drum pad
type Pad struct {
	SamplePath string
	Volume     float64 // 0-1
	Pan        float64 // 0-1, 0.5 = center
	Tune       float64 // 0-1, 0.5 = no transpose
}

// MaxPads is FPC's pad count
const MaxPads = 16

const stateVersion = 1

// Sampler builds a Sampler generator state. When the sample file is a
// readable WAV, its sample rate and frame count are embedded so FL
// Studio can size the preview without touching the file.
func Sampler(samplePath string, volume, pan float64) []byte {
	data := []byte("SMPL")
	data = binary.LittleEndian.AppendUint32(data, stateVersion)

	data = binary.LittleEndian.AppendUint32(data, uint32(len(samplePath)))
	data = append(data, samplePath...)

	info, err := ProbeSample(samplePath)
	if err != nil {
		info = &SampleInfo{}
	}
	data = binary.LittleEndian.AppendUint32(data, info.SampleRate)
	data = binary.LittleEndian.AppendUint32(data, info.Frames)

	data = append(data, paramByte(volume), paramByte(pan))
	return data
}

// ThreeOsc builds a 3xOsc state with a single saw oscillator enabled
func ThreeOsc() []byte {
	data := []byte("3OSC")
	data = binary.LittleEndian.AppendUint32(data, stateVersion)

	// Oscillator 1: enabled, saw, full volume, centered
	data = append(data, 1, 2, 100, 64)
	// Oscillators 2 and 3: disabled
	data = append(data, 0, 0, 0, 64)
	data = append(data, 0, 0, 0, 64)
	return data
}

// FPC builds a pad controller state from drum rack pads. Pads beyond
// MaxPads are dropped; missing pads are written disabled.
func FPC(pads []Pad) []byte {
	if len(pads) > MaxPads {
		pads = pads[:MaxPads]
	}

	data := []byte("FPC ")
	data = binary.LittleEndian.AppendUint32(data, stateVersion)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(pads)))

	for i := 0; i < MaxPads; i++ {
		if i >= len(pads) {
			data = append(data, 0)
			data = binary.LittleEndian.AppendUint16(data, 0)
			data = append(data, 100, 50, 50)
			continue
		}
		pad := pads[i]
		data = append(data, 1)
		data = binary.LittleEndian.AppendUint16(data, uint16(len(pad.SamplePath)))
		data = append(data, pad.SamplePath...)
		data = append(data, paramByte(pad.Volume), paramByte(pad.Pan), paramByte(pad.Tune))
	}
	return data
}

// ForKind builds the default state for a generator kind. Passthrough
// has no native generator and yields nil.
func ForKind(kind project.PluginKind) []byte {
	switch kind {
	case project.KindSampler:
		return Sampler("", 1.0, 0.5)
	case project.KindDrumRack:
		return FPC(nil)
	case project.KindOsc:
		return ThreeOsc()
	default:
		return nil
	}
}

// Populate fills in default generator states for channels that arrived
// without one. A passthrough channel that patterns actually play falls
// back to 3xOsc so the converted project makes sound.
func Populate(p *project.Project) {
	played := make(map[int]bool)
	for _, pat := range p.Patterns {
		for _, n := range pat.Notes {
			played[n.Channel] = true
		}
	}

	for i := range p.Channels {
		ch := &p.Channels[i]
		if len(ch.Plugin.State) > 0 {
			continue
		}
		if ch.Plugin.Kind == project.KindPassthrough {
			if !played[ch.ID] {
				continue
			}
			ch.Plugin.Kind = project.KindOsc
		}
		ch.Plugin.State = ForKind(ch.Plugin.Kind)
	}
}

// paramByte converts a normalized parameter to FL Studio's 0-100 scale
func paramByte(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v * 100)
}
