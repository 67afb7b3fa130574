package ableton

import "encoding/xml"

// Minimal view of the Live set XML: only the elements the converter
// consumes. Live writes values as attributes on wrapper elements
// (<Manual Value="120"/>), hence the alsValue/alsText helpers.

type alsDocument struct {
	XMLName xml.Name   `xml:"Ableton"`
	Creator string     `xml:"Creator,attr"`
	LiveSet alsLiveSet `xml:"LiveSet"`
}

type alsLiveSet struct {
	Tempo      *alsValue      `xml:"MasterTrack>DeviceChain>Mixer>Tempo>Manual"`
	MidiTracks []alsMidiTrack `xml:"Tracks>MidiTrack"`
}

type alsMidiTrack struct {
	Name        alsText       `xml:"Name>EffectiveName"`
	DeviceChain alsTrackChain `xml:"DeviceChain"`
}

type alsTrackChain struct {
	Volume           *alsValue     `xml:"Mixer>Volume>Manual"`
	Pan              *alsValue     `xml:"Mixer>Pan>Manual"`
	ArrangementClips []alsMidiClip `xml:"MainSequencer>ClipTimeable>ArrangerAutomation>Events>MidiClip"`
	SessionSlots     []alsClipSlot `xml:"MainSequencer>ClipSlotList>ClipSlot"`
	Inner            alsInnerChain `xml:"DeviceChain"`
}

type alsInnerChain struct {
	Devices alsDevices `xml:"Devices"`
}

// alsDevices captures every child element; only the element name is
// needed to classify the device
type alsDevices struct {
	All []alsDevice `xml:",any"`
}

type alsDevice struct {
	XMLName xml.Name
}

type alsClipSlot struct {
	Clip *alsMidiClip `xml:"Value>MidiClip"`
}

type alsMidiClip struct {
	Name         alsText       `xml:"Name"`
	CurrentStart alsValue      `xml:"CurrentStart"`
	CurrentEnd   alsValue      `xml:"CurrentEnd"`
	KeyTracks    []alsKeyTrack `xml:"Notes>KeyTracks>KeyTrack"`
}

type alsKeyTrack struct {
	MidiKey alsInt         `xml:"MidiKey"`
	Notes   []alsNoteEvent `xml:"Notes>MidiNoteEvent"`
}

type alsNoteEvent struct {
	Time     float64 `xml:"Time,attr"`
	Duration float64 `xml:"Duration,attr"`
	Velocity string  `xml:"Velocity,attr"`
}

type alsValue struct {
	Value float64 `xml:"Value,attr"`
}

type alsInt struct {
	Value int `xml:"Value,attr"`
}

type alsText struct {
	Value string `xml:"Value,attr"`
}
