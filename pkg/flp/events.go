// Package flp writes FL Studio project files (.flp) from the
// intermediate project representation.
//
// The FLP container is a tagged-event binary stream. The same tag
// integer can mean different things depending on the structural region
// it appears in (tag 203 is a channel name inside a channel block and a
// notes blob inside a pattern block), so tags here are scope-qualified:
// each region gets its own Go type, and the stream buffer asserts at
// run time that an event is only emitted while its scope is active.
package flp

import "encoding/binary"

// streamScope is the structural region currently being written
type streamScope int

const (
	scopeGlobal streamScope = iota
	scopeChannel
	scopePattern
)

func (s streamScope) String() string {
	switch s {
	case scopeChannel:
		return "channel"
	case scopePattern:
		return "pattern"
	default:
		return "global"
	}
}

// eventTag is implemented by the per-scope tag types. Tags are uint8
// underneath; the FLP convention ties payload width to the tag range
// (0-63 byte, 64-127 word, 128-191 dword, 192-255 variable length) and
// the values below respect it.
type eventTag interface {
	id() uint8
	scope() streamScope
}

// globalTag events appear once, at the top of the data chunk
type globalTag uint8

const (
	tagTempo     globalTag = 66  // Word, BPM. Never legal anywhere else.
	tagProjectID globalTag = 156 // DWord, fixed non-zero marker
	tagVersion   globalTag = 199 // Text, FL Studio version string
	tagTitle     globalTag = 206 // Text, project title
)

func (t globalTag) id() uint8          { return uint8(t) }
func (t globalTag) scope() streamScope { return scopeGlobal }

// channelTag events appear inside a channel block
type channelTag uint8

const (
	tagVolume      channelTag = 33  // Byte, 0-128
	tagPan         channelTag = 34  // Byte, 0-128, 64 = center
	tagNewChannel  channelTag = 64  // Word, channel identity; opens the block
	tagChannelName channelTag = 203 // Text
	tagPluginState channelTag = 205 // Data, opaque generator state
)

func (t channelTag) id() uint8          { return uint8(t) }
func (t channelTag) scope() streamScope { return scopeChannel }

// patternTag events appear inside a pattern block
type patternTag uint8

const (
	tagNewPattern   patternTag = 65  // Word, 1-based pattern index; opens the block
	tagPatternName  patternTag = 193 // Text
	tagPatternNotes patternTag = 203 // Data, concatenated 24-byte note records
)

func (t patternTag) id() uint8          { return uint8(t) }
func (t patternTag) scope() streamScope { return scopePattern }

// stream is the single-owner output buffer the assembler threads through
// its sub-writers. All multi-byte integers are little-endian.
type stream struct {
	data  []byte
	scope streamScope
}

func (s *stream) enter(sc streamScope) {
	s.scope = sc
}

func (s *stream) guard(t eventTag) {
	if t.scope() != s.scope {
		panic("flp: " + t.scope().String() + "-scope event emitted in " + s.scope.String() + " scope")
	}
}

// emitByte writes a tag followed by a single byte payload
func (s *stream) emitByte(t eventTag, v uint8) {
	s.guard(t)
	s.data = append(s.data, t.id(), v)
}

// emitWord writes a tag followed by a u16 payload
func (s *stream) emitWord(t eventTag, v uint16) {
	s.guard(t)
	s.data = append(s.data, t.id(), byte(v), byte(v>>8))
}

// emitDWord writes a tag followed by a u32 payload
func (s *stream) emitDWord(t eventTag, v uint32) {
	s.guard(t)
	s.data = append(s.data, t.id(), byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// emitText writes a tag, a varint byte length, then the raw UTF-8 bytes.
// No terminator, no fixed width.
func (s *stream) emitText(t eventTag, v string) {
	s.guard(t)
	s.data = append(s.data, t.id())
	s.data = appendVarint(s.data, len(v))
	s.data = append(s.data, v...)
}

// emitData writes a tag and a length-prefixed binary payload. Same
// framing as emitText but the payload is not UTF-8.
func (s *stream) emitData(t eventTag, v []byte) {
	s.guard(t)
	s.data = append(s.data, t.id())
	s.data = appendVarint(s.data, len(v))
	s.data = append(s.data, v...)
}

// raw appends bytes with no event framing (chunk headers only)
func (s *stream) raw(v []byte) {
	s.data = append(s.data, v...)
}

func (s *stream) rawWord(v uint16) {
	s.data = append(s.data, byte(v), byte(v>>8))
}

func (s *stream) rawDWord(v uint32) {
	s.data = append(s.data, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// patchDWord overwrites a previously written u32 at offset
func (s *stream) patchDWord(offset int, v uint32) {
	binary.LittleEndian.PutUint32(s.data[offset:offset+4], v)
}

func (s *stream) len() int {
	return len(s.data)
}

// appendVarint appends a 7-bit-group varint, least significant group
// first, continuation bit in the high bit of each byte
func appendVarint(dst []byte, v int) []byte {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}
