// Package converter orchestrates conversion of Ableton Live projects
// into FL Studio project files and standard MIDI files
package converter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/als2flp/pkg/ableton"
	"github.com/james-see/als2flp/pkg/flp"
	"github.com/james-see/als2flp/pkg/generator"
	"github.com/james-see/als2flp/pkg/project"
)

// Format represents a file format
type Format string

const (
	FormatAbleton Format = "als"
	FormatFLP     Format = "flp"
	FormatMIDI    Format = "midi"
	FormatUnknown Format = "unknown"
)

// DetectFormat detects the format of a file based on extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".als":
		return FormatAbleton
	case ".flp":
		return FormatFLP
	case ".mid", ".midi":
		return FormatMIDI
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}

	// FL Studio header chunk magic
	if string(data[:4]) == "FLhd" {
		return FormatFLP
	}

	// MIDI file signature
	if string(data[:4]) == "MThd" {
		return FormatMIDI
	}

	// .als is gzipped XML; exported sets may be plain XML
	if data[0] == 0x1F && data[1] == 0x8B {
		return FormatAbleton
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("<?xml")) {
		return FormatAbleton
	}

	return FormatUnknown
}

// Converter handles project conversions
type Converter struct {
	reader project.Reader
}

// New creates a Converter with the specified origin-format reader
func New(reader project.Reader) *Converter {
	return &Converter{reader: reader}
}

// NewDefault creates a Converter reading Ableton Live sets
func NewDefault() *Converter {
	return New(ableton.NewReader())
}

// GetReader returns the current reader
func (c *Converter) GetReader() project.Reader {
	return c.reader
}

// ConvertFile reads an Ableton project and writes it in the format
// implied by the output file extension
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	outputFormat := DetectFormat(outputPath)
	if outputFormat == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}

	p, err := c.ReadProject(inputPath)
	if err != nil {
		return err
	}

	var outputData []byte
	switch outputFormat {
	case FormatFLP:
		outputData, err = flp.Write(p)
	case FormatMIDI:
		outputData, err = GenerateMIDI(p)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// ReadProject parses the input and fills in default generator states
// for channels that arrived without one
func (c *Converter) ReadProject(inputPath string) (*project.Project, error) {
	if c.reader == nil {
		return nil, errors.New("no reader configured")
	}
	p, err := c.reader.Read(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	generator.Populate(p)
	return p, nil
}

// ProjectToFLP converts raw .als content to an .flp byte sequence
func ProjectToFLP(data []byte, title string) ([]byte, error) {
	p, err := ableton.Parse(data, title)
	if err != nil {
		return nil, err
	}
	generator.Populate(p)
	return flp.Write(p)
}

// ProjectToMIDI converts raw .als content to a standard MIDI file
func ProjectToMIDI(data []byte, title string) ([]byte, error) {
	p, err := ableton.Parse(data, title)
	if err != nil {
		return nil, err
	}
	return GenerateMIDI(p)
}

// GetSupportedConversions returns a list of supported conversion paths
func GetSupportedConversions() []string {
	return []string{
		"als -> flp",
		"als -> midi",
	}
}
