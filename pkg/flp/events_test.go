package flp

import (
	"bytes"
	"testing"
)

func TestAppendVarint(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one", 1, []byte{0x01}},
		{"max single byte", 127, []byte{0x7F}},
		{"two bytes", 128, []byte{0x80, 0x01}},
		{"300", 300, []byte{0xAC, 0x02}},
		{"three bytes", 100000, []byte{0xA0, 0x8D, 0x06}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := appendVarint(nil, tt.value)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("appendVarint(%d) = % X, want % X", tt.value, got, tt.want)
			}
		})
	}
}

func TestEmitWordLittleEndian(t *testing.T) {
	s := &stream{}
	s.enter(scopeGlobal)
	s.emitWord(tagTempo, 0x0102)

	want := []byte{66, 0x02, 0x01}
	if !bytes.Equal(s.data, want) {
		t.Errorf("emitWord output = % X, want % X", s.data, want)
	}
}

func TestEmitDWordLittleEndian(t *testing.T) {
	s := &stream{}
	s.enter(scopeGlobal)
	s.emitDWord(tagProjectID, 0x01020304)

	want := []byte{156, 0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(s.data, want) {
		t.Errorf("emitDWord output = % X, want % X", s.data, want)
	}
}

func TestEmitText(t *testing.T) {
	s := &stream{}
	s.enter(scopeGlobal)
	s.emitText(tagTitle, "Acid")

	// Tag, varint length, raw UTF-8, no terminator
	want := []byte{206, 0x04, 'A', 'c', 'i', 'd'}
	if !bytes.Equal(s.data, want) {
		t.Errorf("emitText output = % X, want % X", s.data, want)
	}
}

func TestEmitTextEmpty(t *testing.T) {
	s := &stream{}
	s.enter(scopeGlobal)
	s.emitText(tagTitle, "")

	want := []byte{206, 0x00}
	if !bytes.Equal(s.data, want) {
		t.Errorf("emitText output = % X, want % X", s.data, want)
	}
}

func TestEmitTextLong(t *testing.T) {
	s := &stream{}
	s.enter(scopeGlobal)
	long := string(bytes.Repeat([]byte{'x'}, 200))
	s.emitText(tagTitle, long)

	// 200 needs a two-byte varint: C8 01
	if s.data[1] != 0xC8 || s.data[2] != 0x01 {
		t.Errorf("length prefix = % X, want C8 01", s.data[1:3])
	}
	if len(s.data) != 1+2+200 {
		t.Errorf("total length = %d, want %d", len(s.data), 1+2+200)
	}
}

func TestCrossScopeEmissionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on pattern-scope event in channel scope")
		}
	}()

	s := &stream{}
	s.enter(scopeChannel)
	s.emitWord(tagNewPattern, 1)
}

func TestTempoTagRejectedOutsideGlobalScope(t *testing.T) {
	for _, sc := range []streamScope{scopeChannel, scopePattern} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("tempo event in %s scope did not panic", sc)
				}
			}()
			s := &stream{}
			s.enter(sc)
			s.emitWord(tagTempo, 120)
		}()
	}
}

func TestTagRangesMatchPayloadWidth(t *testing.T) {
	// FLP convention: 0-63 byte, 64-127 word, 128-191 dword, 192-255
	// variable length. The decoder in writer_test relies on this.
	byteTags := []uint8{tagVolume.id(), tagPan.id()}
	wordTags := []uint8{tagTempo.id(), tagNewChannel.id(), tagNewPattern.id()}
	dwordTags := []uint8{tagProjectID.id()}
	varTags := []uint8{tagVersion.id(), tagTitle.id(), tagChannelName.id(),
		tagPluginState.id(), tagPatternName.id(), tagPatternNotes.id()}

	for _, id := range byteTags {
		if id >= 64 {
			t.Errorf("byte tag %d outside 0-63", id)
		}
	}
	for _, id := range wordTags {
		if id < 64 || id >= 128 {
			t.Errorf("word tag %d outside 64-127", id)
		}
	}
	for _, id := range dwordTags {
		if id < 128 || id >= 192 {
			t.Errorf("dword tag %d outside 128-191", id)
		}
	}
	for _, id := range varTags {
		if id < 192 {
			t.Errorf("variable-length tag %d outside 192-255", id)
		}
	}
}
