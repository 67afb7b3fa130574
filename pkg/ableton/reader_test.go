package ableton

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/james-see/als2flp/pkg/project"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<Ableton Creator="Ableton Live 11.3.13">
  <LiveSet>
    <MasterTrack>
      <DeviceChain>
        <Mixer>
          <Tempo>
            <Manual Value="140" />
          </Tempo>
        </Mixer>
      </DeviceChain>
    </MasterTrack>
    <Tracks>
      <MidiTrack>
        <Name>
          <EffectiveName Value="Bassline" />
        </Name>
        <DeviceChain>
          <Mixer>
            <Volume>
              <Manual Value="0.8" />
            </Volume>
            <Pan>
              <Manual Value="-0.5" />
            </Pan>
          </Mixer>
          <MainSequencer>
            <ClipTimeable>
              <ArrangerAutomation>
                <Events>
                  <MidiClip>
                    <Name Value="Intro" />
                    <CurrentStart Value="0" />
                    <CurrentEnd Value="4" />
                    <Notes>
                      <KeyTracks>
                        <KeyTrack>
                          <MidiKey Value="36" />
                          <Notes>
                            <MidiNoteEvent Time="0" Duration="0.5" Velocity="127" />
                            <MidiNoteEvent Time="1" Duration="0.25" Velocity="64" />
                          </Notes>
                        </KeyTrack>
                        <KeyTrack>
                          <MidiKey Value="48" />
                          <Notes>
                            <MidiNoteEvent Time="2" Duration="1" />
                          </Notes>
                        </KeyTrack>
                      </KeyTracks>
                    </Notes>
                  </MidiClip>
                </Events>
              </ArrangerAutomation>
            </ClipTimeable>
          </MainSequencer>
          <DeviceChain>
            <Devices>
              <Operator Id="1"></Operator>
            </Devices>
          </DeviceChain>
        </DeviceChain>
      </MidiTrack>
    </Tracks>
  </LiveSet>
</Ableton>`

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestParseGzipped(t *testing.T) {
	p, err := Parse(gzipBytes(t, []byte(sampleXML)), "demo")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	verifySampleProject(t, p)
}

func TestParsePlainXML(t *testing.T) {
	p, err := Parse([]byte(sampleXML), "demo")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	verifySampleProject(t, p)
}

func verifySampleProject(t *testing.T, p *project.Project) {
	t.Helper()

	if p.Title != "demo" {
		t.Errorf("title = %q, want %q", p.Title, "demo")
	}
	if p.Tempo != 140 {
		t.Errorf("tempo = %g, want 140", p.Tempo)
	}
	if len(p.Channels) != 1 {
		t.Fatalf("channel count = %d, want 1", len(p.Channels))
	}

	ch := p.Channels[0]
	if ch.Name != "Bassline" {
		t.Errorf("channel name = %q, want Bassline", ch.Name)
	}
	if ch.Volume != 0.8 {
		t.Errorf("volume = %g, want 0.8", ch.Volume)
	}
	if ch.Pan != -0.5 {
		t.Errorf("pan = %g, want -0.5", ch.Pan)
	}
	if ch.Plugin.Kind != project.KindOsc {
		t.Errorf("plugin kind = %v, want KindOsc (Operator)", ch.Plugin.Kind)
	}

	if len(p.Patterns) != 1 {
		t.Fatalf("pattern count = %d, want 1", len(p.Patterns))
	}
	pat := p.Patterns[0]
	if pat.Name != "Bassline - Intro" {
		t.Errorf("pattern name = %q, want %q", pat.Name, "Bassline - Intro")
	}
	if len(pat.Notes) != 3 {
		t.Fatalf("note count = %d, want 3", len(pat.Notes))
	}

	// First note: beat 0, half a beat, full velocity
	n := pat.Notes[0]
	if n.Position != 0 || n.Length != project.DefaultPPQ/2 {
		t.Errorf("note 0 timing = (%d, %d), want (0, %d)", n.Position, n.Length, project.DefaultPPQ/2)
	}
	if n.Key != 36 {
		t.Errorf("note 0 key = %d, want 36", n.Key)
	}
	if n.Velocity != 1.0 {
		t.Errorf("note 0 velocity = %g, want 1.0", n.Velocity)
	}
	if n.Pan != project.PanCenter {
		t.Errorf("note 0 pan = %d, want %d", n.Pan, project.PanCenter)
	}

	// Third note carries no velocity attribute and defaults to 100/127
	n = pat.Notes[2]
	if n.Key != 48 {
		t.Errorf("note 2 key = %d, want 48", n.Key)
	}
	want := 100.0 / 127.0
	if n.Velocity < want-1e-9 || n.Velocity > want+1e-9 {
		t.Errorf("note 2 velocity = %g, want %g", n.Velocity, want)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte{0x01, 0x02, 0x03}},
		{"truncated gzip", []byte{0x1F, 0x8B, 0x00}},
		{"wrong XML root", []byte(`<?xml version="1.0"?><NotAbleton/>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.data, "bad"); err == nil {
				t.Error("Parse() expected error")
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	// Minimal set: no tempo, no mixer, unnamed track
	minimal := `<?xml version="1.0"?><Ableton Creator="test"><LiveSet><Tracks><MidiTrack><DeviceChain></DeviceChain></MidiTrack></Tracks></LiveSet></Ableton>`

	p, err := Parse([]byte(minimal), "min")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Tempo != 120 {
		t.Errorf("default tempo = %g, want 120", p.Tempo)
	}
	if len(p.Channels) != 1 {
		t.Fatalf("channel count = %d, want 1", len(p.Channels))
	}
	if p.Channels[0].Name != "Track 1" {
		t.Errorf("default name = %q, want %q", p.Channels[0].Name, "Track 1")
	}
	if p.Channels[0].Volume != 1.0 {
		t.Errorf("default volume = %g, want 1.0", p.Channels[0].Volume)
	}
	if p.Channels[0].Plugin.Kind != project.KindPassthrough {
		t.Errorf("default kind = %v, want KindPassthrough", p.Channels[0].Plugin.Kind)
	}
}
