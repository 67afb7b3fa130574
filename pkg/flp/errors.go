package flp

import (
	"errors"
	"fmt"
)

// errBackpatch signals a data chunk size that does not match its payload
// after finalization. Unreachable if the assembler is correct; kept as a
// hard stop rather than shipping a file FL Studio would reject as
// truncated.
var errBackpatch = errors.New("flp: data chunk size does not match payload length")

// NoteError reports a note that cannot be packed. Pattern is the
// 1-based emission index, Note the position within the pattern.
type NoteError struct {
	Pattern int
	Note    int
	Reason  string
}

func (e *NoteError) Error() string {
	return fmt.Sprintf("flp: invalid note %d in pattern %d: %s", e.Note, e.Pattern, e.Reason)
}

// ChannelError reports a channel that cannot be written
type ChannelError struct {
	ID     int
	Name   string
	Reason string
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("flp: invalid channel %d (%q): %s", e.ID, e.Name, e.Reason)
}
