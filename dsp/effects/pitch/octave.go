package pitch

import (
	"math"

	"github.com/cwbudde/algo-tonechain/dsp/stream"
)

// Octave parameter indices.
const (
	OctaveParamOctave = iota
	OctaveParamDry
	OctaveParamWet
	OctaveParamTracking
)

var octaveParams = []stream.Param{
	{Name: "octave", Min: -1, Max: 1, Default: -1, Step: 1},
	{Name: "dry", Min: 0, Max: 1, Default: 1},
	{Name: "wet", Min: 0, Max: 1, Default: 0.5},
	{Name: "tracking", Min: 0, Max: 1, Default: 1},
}

// Octave shifts by whole octaves: ratio 0.5, 1 or 2.
//
// Output is dry*x + wet*tracking*shifted. Tracking trims how much of the
// shifted voice follows the input.
type Octave struct {
	shifter  *Shifter
	octave   float64
	dry      float64
	wet      float64
	tracking float64
}

// NewOctave creates an octave shifter with its declared defaults.
func NewOctave(sampleRate float64) (*Octave, error) {
	s, err := NewShifter(sampleRate)
	if err != nil {
		return nil, err
	}
	o := &Octave{shifter: s}
	for i, p := range octaveParams {
		o.SetParam(i, p.Default)
	}
	return o, nil
}

// OctaveRatio maps an octave offset to a pitch ratio.
func OctaveRatio(octave int) float64 {
	switch {
	case octave < 0:
		return 0.5
	case octave > 0:
		return 2
	default:
		return 1
	}
}

// Params implements stream.Processor.
func (o *Octave) Params() []stream.Param { return octaveParams }

// SetParam implements stream.Processor.
func (o *Octave) SetParam(index int, value float64) {
	switch index {
	case OctaveParamOctave:
		o.octave = math.Round(value)
		o.shifter.SetRatio(OctaveRatio(int(o.octave)))
	case OctaveParamDry:
		o.dry = value
	case OctaveParamWet:
		o.wet = value
	case OctaveParamTracking:
		o.tracking = value
	}
}

// Ratio returns the current pitch ratio.
func (o *Octave) Ratio() float64 { return o.shifter.Ratio() }

// Process implements stream.Processor.
func (o *Octave) Process(in, out []float64) {
	n := min(len(in), len(out))
	wet := o.wet * o.tracking
	for i := range n {
		x := in[i]
		out[i] = o.dry*x + wet*o.shifter.Next(x)
	}
}

// Reset implements stream.Processor.
func (o *Octave) Reset() { o.shifter.Reset() }

// SetSampleRate implements stream.Processor.
func (o *Octave) SetSampleRate(sampleRate float64) error {
	return o.shifter.SetSampleRate(sampleRate)
}
