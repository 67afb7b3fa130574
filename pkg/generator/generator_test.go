package generator

import (
	"bytes"
	"testing"

	"github.com/james-see/als2flp/pkg/project"
)

func TestSamplerState(t *testing.T) {
	state := Sampler("kick.wav", 1.0, 0.5)

	if !bytes.HasPrefix(state, []byte("SMPL")) {
		t.Errorf("state does not start with SMPL magic: % X", state[:4])
	}
	if !bytes.Contains(state, []byte("kick.wav")) {
		t.Error("state does not embed the sample path")
	}
	if len(state) == 0 {
		t.Error("state is empty")
	}
}

func TestThreeOscState(t *testing.T) {
	state := ThreeOsc()

	if !bytes.HasPrefix(state, []byte("3OSC")) {
		t.Errorf("state does not start with 3OSC magic: % X", state[:4])
	}
	// Magic + version + three 4-byte oscillator blocks
	if len(state) != 4+4+12 {
		t.Errorf("state length = %d, want %d", len(state), 20)
	}
}

func TestFPCState(t *testing.T) {
	pads := []Pad{
		{SamplePath: "kick.wav", Volume: 1.0, Pan: 0.5, Tune: 0.5},
		{SamplePath: "snare.wav", Volume: 0.8, Pan: 0.5, Tune: 0.5},
	}
	state := FPC(pads)

	if !bytes.HasPrefix(state, []byte("FPC ")) {
		t.Errorf("state does not start with FPC magic: % X", state[:4])
	}
	if !bytes.Contains(state, []byte("kick.wav")) || !bytes.Contains(state, []byte("snare.wav")) {
		t.Error("state does not embed the pad sample paths")
	}
}

func TestFPCTruncatesExtraPads(t *testing.T) {
	pads := make([]Pad, MaxPads+4)
	state := FPC(pads)

	// Pad count field caps at MaxPads
	if count := state[8]; count != MaxPads {
		t.Errorf("pad count = %d, want %d", count, MaxPads)
	}
}

func TestForKind(t *testing.T) {
	tests := []struct {
		kind  project.PluginKind
		magic string
	}{
		{project.KindSampler, "SMPL"},
		{project.KindDrumRack, "FPC "},
		{project.KindOsc, "3OSC"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			state := ForKind(tt.kind)
			if !bytes.HasPrefix(state, []byte(tt.magic)) {
				t.Errorf("ForKind(%v) magic = %q, want %q", tt.kind, state[:4], tt.magic)
			}
		})
	}

	if got := ForKind(project.KindPassthrough); got != nil {
		t.Errorf("ForKind(KindPassthrough) = % X, want nil", got)
	}
}

func TestPopulate(t *testing.T) {
	p := project.New("Populate")
	p.Channels = []project.Channel{
		{ID: 0, Name: "Played", Volume: 1},   // passthrough, has notes
		{ID: 1, Name: "Silent", Volume: 1},   // passthrough, no notes
		{ID: 2, Name: "Sampler", Volume: 1, Plugin: project.Plugin{Kind: project.KindSampler}},
		{ID: 3, Name: "Existing", Volume: 1, Plugin: project.Plugin{Kind: project.KindOsc, State: []byte{0xAA}}},
	}

	pat := p.AddPattern("Loop")
	pat.Notes = append(pat.Notes, project.NewNote(0, 96, 60, 0, 0.5))

	Populate(p)

	if p.Channels[0].Plugin.Kind != project.KindOsc || len(p.Channels[0].Plugin.State) == 0 {
		t.Error("played passthrough channel should fall back to a 3xOsc state")
	}
	if len(p.Channels[1].Plugin.State) != 0 {
		t.Error("silent passthrough channel should stay stateless")
	}
	if !bytes.HasPrefix(p.Channels[2].Plugin.State, []byte("SMPL")) {
		t.Error("typed channel should get its kind's default state")
	}
	if !bytes.Equal(p.Channels[3].Plugin.State, []byte{0xAA}) {
		t.Error("existing state should not be overwritten")
	}
}

func TestMapDevice(t *testing.T) {
	tests := []struct {
		device string
		want   project.PluginKind
	}{
		{"OriginalSimpler", project.KindSampler},
		{"MultiSampler", project.KindSampler},
		{"DrumGroupDevice", project.KindDrumRack},
		{"Operator", project.KindOsc},
		{"InstrumentVector", project.KindOsc},
		{"Eq8", project.KindPassthrough},
		{"PluginDevice", project.KindPassthrough},
		{"", project.KindPassthrough},
	}

	for _, tt := range tests {
		if got := MapDevice(tt.device); got != tt.want {
			t.Errorf("MapDevice(%q) = %v, want %v", tt.device, got, tt.want)
		}
	}
}

func TestProbeSampleErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"not a wav", "loop.aif"},
		{"missing file", "does-not-exist.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ProbeSample(tt.path); err == nil {
				t.Error("ProbeSample() expected error")
			}
		})
	}
}
