package flp

import (
	"github.com/james-see/als2flp/pkg/project"
)

// writePattern emits one pattern block. index is the 1-based emission
// index; FL Studio rejects pattern 0. Notes go into a single event as
// concatenated fixed-size records, in insertion order. A pattern with
// no notes keeps its marker and name but gets no notes event at all,
// matching the rule that empty payloads are never emitted.
//
// No pattern-length event is written. FL Studio derives the effective
// length from the notes; a length event would reuse the global tempo
// tag and corrupt the file.
func writePattern(s *stream, index int, pat project.Pattern, channels map[int]bool) error {
	s.enter(scopePattern)
	s.emitWord(tagNewPattern, uint16(index))
	s.emitText(tagPatternName, pat.Name)

	if len(pat.Notes) == 0 {
		return nil
	}

	records := make([]byte, len(pat.Notes)*NoteRecordSize)
	for i, n := range pat.Notes {
		if !channels[n.Channel] {
			return &NoteError{Pattern: index, Note: i, Reason: "references unknown channel"}
		}
		if err := packNote(records[i*NoteRecordSize:(i+1)*NoteRecordSize], n); err != nil {
			return &NoteError{Pattern: index, Note: i, Reason: err.Error()}
		}
	}
	s.emitData(tagPatternNotes, records)
	return nil
}
