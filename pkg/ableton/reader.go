// Package ableton reads Ableton Live project files (.als) into the
// intermediate representation. An .als file is gzip-compressed XML;
// exported sets are sometimes plain XML, so both are accepted.
package ableton

import (
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/james-see/als2flp/pkg/generator"
	"github.com/james-see/als2flp/pkg/project"
)

const gzipMagic = "\x1f\x8b"

// Reader implements project.Reader for .als files
type Reader struct{}

// NewReader creates an .als reader
func NewReader() *Reader {
	return &Reader{}
}

// Read loads and parses an .als file. The project title is the file
// name without extension.
func (r *Reader) Read(path string) (*project.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read als file: %w", err)
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(data, title)
}

// Parse decodes .als content (gzipped or plain XML) into a project
func Parse(data []byte, title string) (*project.Project, error) {
	if bytes.HasPrefix(data, []byte(gzipMagic)) {
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decompress als: %w", err)
		}
		defer func() { _ = gz.Close() }()
		data, err = io.ReadAll(gz)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress als: %w", err)
		}
	}

	var doc alsDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("not a valid Ableton Live file: %w", err)
	}

	p := project.New(title)
	if doc.LiveSet.Tempo != nil && doc.LiveSet.Tempo.Value > 0 {
		p.Tempo = doc.LiveSet.Tempo.Value
	}

	for i, track := range doc.LiveSet.MidiTracks {
		buildTrack(p, i, track)
	}
	return p, nil
}

// buildTrack appends one channel plus a pattern per MIDI clip
func buildTrack(p *project.Project, id int, track alsMidiTrack) {
	name := track.Name.Value
	if name == "" {
		name = fmt.Sprintf("Track %d", id+1)
	}

	ch := p.AddChannel(name)
	ch.Volume = clamp01(valueOr(track.DeviceChain.Volume, 1.0))
	ch.Pan = clampPan(valueOr(track.DeviceChain.Pan, 0.0))
	ch.Plugin.Kind = trackKind(track)

	for _, clip := range track.DeviceChain.ArrangementClips {
		addPattern(p, ch.ID, name, clip, clipName(clip))
	}
	for scene, slot := range track.DeviceChain.SessionSlots {
		if slot.Clip == nil {
			continue
		}
		addPattern(p, ch.ID, name, *slot.Clip, fmt.Sprintf("Scene %d", scene+1))
	}
}

func addPattern(p *project.Project, channelID int, trackName string, clip alsMidiClip, label string) {
	pat := p.AddPattern(trackName + " - " + label)
	for _, kt := range clip.KeyTracks {
		for _, ev := range kt.Notes {
			pos := int(math.Round(ev.Time * float64(p.PPQ)))
			length := int(math.Round(ev.Duration * float64(p.PPQ)))
			if pos < 0 {
				pos = 0
			}
			if length < 1 {
				length = 1
			}
			pat.Notes = append(pat.Notes,
				project.NewNote(pos, length, kt.MidiKey.Value, channelID, velocity(ev)))
		}
	}
}

// trackKind maps the first recognized device on the track to a
// generator kind
func trackKind(track alsMidiTrack) project.PluginKind {
	for _, dev := range track.DeviceChain.Inner.Devices.All {
		if kind := generator.MapDevice(dev.XMLName.Local); kind != project.KindPassthrough {
			return kind
		}
	}
	return project.KindPassthrough
}

// velocity normalizes Live's 0-127 velocity, defaulting to 100 when the
// attribute is missing
func velocity(ev alsNoteEvent) float64 {
	raw := 100.0
	if ev.Velocity != "" {
		if v, err := strconv.ParseFloat(ev.Velocity, 64); err == nil {
			raw = v
		}
	}
	return clamp01(raw / 127.0)
}

func clipName(clip alsMidiClip) string {
	if clip.Name.Value != "" {
		return clip.Name.Value
	}
	return "MIDI Clip"
}

func valueOr(v *alsValue, def float64) float64 {
	if v == nil {
		return def
	}
	return v.Value
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func clampPan(v float64) float64 {
	return math.Min(1, math.Max(-1, v))
}
