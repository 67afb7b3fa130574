package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
)

// SampleInfo is what the sampler state embeds about a referenced sample
type SampleInfo struct {
	SampleRate uint32
	Frames     uint32
}

// ProbeSample reads a WAV file's header. Non-WAV or unreadable samples
// return an error; callers fall back to zeroed info since the path
// alone is enough for FL Studio to reload the sample.
func ProbeSample(path string) (*SampleInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("no sample path")
	}
	if !strings.EqualFold(filepath.Ext(path), ".wav") {
		return nil, fmt.Errorf("not a wav file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid wav file: %s", path)
	}

	dur, err := dec.Duration()
	if err != nil {
		return nil, fmt.Errorf("failed to read wav duration: %w", err)
	}
	frames := uint32(dur.Seconds() * float64(dec.SampleRate))

	return &SampleInfo{
		SampleRate: dec.SampleRate,
		Frames:     frames,
	}, nil
}
