package generator

import "github.com/james-see/als2flp/pkg/project"

// Live device element names grouped by the FL generator they map to
var deviceKinds = map[string]project.PluginKind{
	"OriginalSimpler": project.KindSampler,
	"Simpler":         project.KindSampler,
	"MultiSampler":    project.KindSampler,
	"Sampler":         project.KindSampler,

	"DrumGroupDevice": project.KindDrumRack,

	"Operator":         project.KindOsc,
	"InstrumentVector": project.KindOsc, // Wavetable
	"UltraAnalog":      project.KindOsc, // Analog
	"StringStudio":     project.KindOsc, // Tension
}

// MapDevice classifies an Ableton device element name. Unknown devices
// (third-party plugins, effects) come back as passthrough.
func MapDevice(name string) project.PluginKind {
	if kind, ok := deviceKinds[name]; ok {
		return kind
	}
	return project.KindPassthrough
}
