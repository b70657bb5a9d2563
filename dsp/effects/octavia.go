package effects

import (
	"math"

	"github.com/cwbudde/algo-tonechain/dsp/stream"
)

// Octavia parameter indices.
const (
	OctaviaParamDrive = iota
	OctaviaParamOctave
	OctaviaParamLevel
)

var octaviaParams = []stream.Param{
	{Name: "drive", Min: 1, Max: 20, Default: 5},
	{Name: "octave", Min: 0, Max: 1, Default: 0.5},
	{Name: "level", Min: 0, Max: 1, Default: 0.7},
}

// Octavia is a stateless upper-octave fuzz.
//
// Half-wave rectification, max(x, 0), folds the negative half cycle away
// and doubles the dominant frequency. It is blended with tanh(drive*x) by
// the octave amount and scaled by level:
//
//	y = level * ((1-octave)*tanh(drive*x) + octave*max(x, 0))
type Octavia struct {
	drive  float64
	octave float64
	level  float64
}

// NewOctavia creates an Octavia with its declared defaults.
func NewOctavia() *Octavia {
	o := &Octavia{}
	for i, p := range octaviaParams {
		o.SetParam(i, p.Default)
	}
	return o
}

// Params implements stream.Processor.
func (o *Octavia) Params() []stream.Param { return octaviaParams }

// SetParam implements stream.Processor.
func (o *Octavia) SetParam(index int, value float64) {
	switch index {
	case OctaviaParamDrive:
		o.drive = value
	case OctaviaParamOctave:
		o.octave = value
	case OctaviaParamLevel:
		o.level = value
	}
}

// ProcessSample shapes one sample.
func (o *Octavia) ProcessSample(x float64) float64 {
	fuzz := math.Tanh(o.drive * x)
	rect := math.Max(x, 0)
	return o.level * (fuzz + o.octave*(rect-fuzz))
}

// Process implements stream.Processor.
func (o *Octavia) Process(in, out []float64) {
	n := min(len(in), len(out))
	for i := range n {
		out[i] = o.ProcessSample(in[i])
	}
}

// Reset implements stream.Processor. Octavia holds no signal state.
func (o *Octavia) Reset() {}

// SetSampleRate implements stream.Processor. Octavia is rate independent.
func (o *Octavia) SetSampleRate(float64) error { return nil }
