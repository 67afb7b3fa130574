// Package project defines the intermediate representation bridging
// Ableton Live and FL Studio project formats
package project

// PluginKind identifies the generator type assigned to a channel
type PluginKind int

const (
	// KindPassthrough is an unresolved generator; its state blob (if any)
	// is carried through untouched
	KindPassthrough PluginKind = iota
	// KindSampler is a sample-based generator
	KindSampler
	// KindDrumRack is a multi-pad drum generator (maps to FPC)
	KindDrumRack
	// KindOsc is a basic oscillator generator (maps to 3xOsc)
	KindOsc
)

// String returns the generator name as FL Studio knows it
func (k PluginKind) String() string {
	switch k {
	case KindSampler:
		return "Sampler"
	case KindDrumRack:
		return "FPC"
	case KindOsc:
		return "3xOsc"
	default:
		return "Passthrough"
	}
}

// Plugin is a generator descriptor: a kind tag plus an opaque state
// payload. The writer never interprets State beyond measuring its length.
type Plugin struct {
	Kind  PluginKind
	State []byte
}

// Note is a single MIDI note, already quantized to ticks by the reader
type Note struct {
	Position  int     // Ticks, >= 0
	Length    int     // Ticks, > 0
	Key       int     // MIDI pitch, 0-131 (FL Studio range)
	FinePitch int8    // Fine pitch offset
	Velocity  float64 // Normalized 0.0-1.0
	Pan       uint8   // 0-128, 64 = center
	Channel   int     // Must match an existing Channel ID
}

// NewNote creates a note with pan centered
func NewNote(position, length, key, channel int, velocity float64) Note {
	return Note{
		Position: position,
		Length:   length,
		Key:      key,
		Velocity: velocity,
		Pan:      PanCenter,
		Channel:  channel,
	}
}

// PanCenter is the default note pan byte
const PanCenter uint8 = 64

// Pattern is one clip's worth of notes. Note order is preserved as
// inserted; the writer does not sort.
type Pattern struct {
	Name  string
	Notes []Note
}

// Channel is one instrument/generator slot
type Channel struct {
	ID     int     // Unique within a project, referenced by notes
	Name   string
	Volume float64 // Normalized 0.0-1.0
	Pan    float64 // Normalized -1.0 to 1.0
	Plugin Plugin
}

// Project is the fully materialized intermediate representation.
// It is immutable once handed to a writer.
type Project struct {
	Title    string
	Tempo    float64 // BPM, positive
	PPQ      int     // Pulses per quarter note
	Channels []Channel
	Patterns []Pattern
}

// DefaultPPQ is used when the reader does not supply a resolution
const DefaultPPQ = 96

// New creates an empty project with defaults
func New(title string) *Project {
	return &Project{
		Title: title,
		Tempo: 120.0,
		PPQ:   DefaultPPQ,
	}
}

// AddChannel creates and appends a channel with the next free ID
func (p *Project) AddChannel(name string) *Channel {
	p.Channels = append(p.Channels, Channel{
		ID:     len(p.Channels),
		Name:   name,
		Volume: 1.0,
	})
	return &p.Channels[len(p.Channels)-1]
}

// AddPattern creates and appends an empty pattern
func (p *Project) AddPattern(name string) *Pattern {
	p.Patterns = append(p.Patterns, Pattern{Name: name})
	return &p.Patterns[len(p.Patterns)-1]
}

// TotalNotes counts notes across all patterns
func (p *Project) TotalNotes() int {
	count := 0
	for _, pat := range p.Patterns {
		count += len(pat.Notes)
	}
	return count
}

// Reader is the origin-format boundary: it either yields a well-formed
// project or fails with a parse error
type Reader interface {
	Read(path string) (*Project, error)
}
