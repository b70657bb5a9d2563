package stream

import (
	"math"

	"github.com/cwbudde/algo-tonechain/dsp/core"
)

// Param describes one processor parameter.
type Param struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
	// Step is the resolution of a discrete parameter; 0 means continuous.
	Step float64
}

// Clamp bounds v to [Min, Max] and snaps it to Step. NaN maps to Default.
func (p Param) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Default
	}
	v = core.Clamp(v, p.Min, p.Max)
	if p.Step > 0 {
		v = p.Min + math.Round((v-p.Min)/p.Step)*p.Step
		v = core.Clamp(v, p.Min, p.Max)
	}
	return v
}

// IndexOf returns the index of the parameter called name, or -1.
func IndexOf(params []Param, name string) int {
	for i := range params {
		if params[i].Name == name {
			return i
		}
	}
	return -1
}

// Processor is a mono streaming effect.
//
// Process transforms min(len(in), len(out)) samples and must tolerate in
// and out aliasing the same slice. Process, SetParam and Reset are called
// from the audio thread only and must not allocate, lock or block.
type Processor interface {
	// Params returns the parameter descriptors. The slice is shared and
	// must not be modified.
	Params() []Param
	// SetParam applies an already clamped value.
	SetParam(index int, value float64)
	Process(in, out []float64)
	// Reset clears the signal state but keeps parameter values.
	Reset()
	// SetSampleRate rebuilds rate-dependent state. It may allocate and is
	// called while the stream is stopped.
	SetSampleRate(sampleRate float64) error
}
