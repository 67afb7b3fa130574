package flp

import (
	"fmt"
	"log"
	"math"

	"github.com/james-see/als2flp/pkg/project"
)

const (
	headerMagic = "FLhd"
	dataMagic   = "FLdt"

	// headerSize is the declared size of the FLhd chunk payload:
	// format (u16) + channel count (u16) + PPQ (u16)
	headerSize = 6

	// formatPatterns marks a pattern-based (non-song) project
	formatPatterns = 0

	// flVersion is the FL Studio version the output claims to be
	// written by
	flVersion = "21.0.3"

	// projectID is an arbitrary non-zero registration marker. FL Studio
	// checks that the event exists, not its value.
	projectID = 12345
)

// writeState tracks the assembler's strictly ordered protocol:
// Empty -> HeaderWritten -> BodyWritten -> Finalized
type writeState int

const (
	stateEmpty writeState = iota
	stateHeaderWritten
	stateBodyWritten
	stateFinalized
)

// Writer serializes an intermediate project into FL Studio's binary
// container. It holds no state across calls; each Write runs on its own
// buffer and either returns a complete, size-correct byte sequence or
// an error with no partial output.
type Writer struct {
	logger *log.Logger
}

// NewWriter creates a writer logging skip diagnostics to the standard
// logger
func NewWriter() *Writer {
	return &Writer{logger: log.Default()}
}

// NewWriterLogger creates a writer with a caller-supplied logger
func NewWriterLogger(logger *log.Logger) *Writer {
	return &Writer{logger: logger}
}

// assembler owns one write run: the output stream, the protocol state,
// and the channel identity set note records are resolved against
type assembler struct {
	s          stream
	state      writeState
	logger     *log.Logger
	channels   map[int]bool
	sizeOffset int
}

// Write serializes the project. Output layout:
//
//	FLhd | size=6 | format | channel count | PPQ
//	FLdt | body size | VERSION PROJECT_ID TEMPO TITLE
//	     | channel blocks... | pattern blocks...
//
// The body size field is back-patched after the body is complete and
// must equal the exact payload byte count or FL Studio treats the file
// as truncated.
func (w *Writer) Write(p *project.Project) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("flp: nil project")
	}
	a := &assembler{state: stateEmpty, logger: w.logger}

	if err := a.writeHeader(p); err != nil {
		return nil, err
	}
	if err := a.writeBody(p); err != nil {
		return nil, err
	}
	if err := a.finalize(); err != nil {
		return nil, err
	}
	return a.s.data, nil
}

// writeHeader validates the project globals and writes the fixed FLhd
// chunk (Empty -> HeaderWritten)
func (a *assembler) writeHeader(p *project.Project) error {
	if a.state != stateEmpty {
		panic("flp: header written twice")
	}
	tempo := math.Round(p.Tempo)
	if tempo <= 0 || tempo > math.MaxUint16 {
		return fmt.Errorf("flp: tempo %g out of range", p.Tempo)
	}
	if len(p.Channels) > math.MaxUint16 {
		return fmt.Errorf("flp: too many channels (%d)", len(p.Channels))
	}

	a.channels = make(map[int]bool, len(p.Channels))
	for _, ch := range p.Channels {
		if a.channels[ch.ID] {
			return &ChannelError{ID: ch.ID, Name: ch.Name, Reason: "duplicate identity"}
		}
		a.channels[ch.ID] = true
	}

	ppq := p.PPQ
	if ppq <= 0 {
		ppq = project.DefaultPPQ
	}

	a.s.raw([]byte(headerMagic))
	a.s.rawDWord(headerSize)
	a.s.rawWord(formatPatterns)
	a.s.rawWord(uint16(len(p.Channels)))
	a.s.rawWord(uint16(ppq))
	a.state = stateHeaderWritten
	return nil
}

// writeBody opens the FLdt chunk with a placeholder size and emits the
// global events, every channel block, then every pattern block
// (HeaderWritten -> BodyWritten)
func (a *assembler) writeBody(p *project.Project) error {
	if a.state != stateHeaderWritten {
		panic("flp: body written out of order")
	}

	a.s.raw([]byte(dataMagic))
	a.sizeOffset = a.s.len()
	a.s.rawDWord(0) // patched in finalize

	a.s.enter(scopeGlobal)
	a.s.emitText(tagVersion, flVersion)
	a.s.emitDWord(tagProjectID, projectID)
	a.s.emitWord(tagTempo, uint16(math.Round(p.Tempo)))
	a.s.emitText(tagTitle, p.Title)

	for _, ch := range p.Channels {
		if err := writeChannel(&a.s, a.logger, ch); err != nil {
			return err
		}
	}
	for i, pat := range p.Patterns {
		if err := writePattern(&a.s, i+1, pat, a.channels); err != nil {
			return err
		}
	}
	a.state = stateBodyWritten
	return nil
}

// finalize back-patches the FLdt size field with the exact byte count
// of everything after it (BodyWritten -> Finalized)
func (a *assembler) finalize() error {
	if a.state != stateBodyWritten {
		panic("flp: finalize out of order")
	}
	bodySize := a.s.len() - a.sizeOffset - 4
	a.s.patchDWord(a.sizeOffset, uint32(bodySize))
	if a.s.len() != a.sizeOffset+4+bodySize {
		return errBackpatch
	}
	a.state = stateFinalized
	return nil
}

// Write is a convenience wrapper around a default Writer
func Write(p *project.Project) ([]byte, error) {
	return NewWriter().Write(p)
}
