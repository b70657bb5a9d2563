package modulation

import (
	"github.com/cwbudde/algo-tonechain/dsp/stream"
)

// UniVibe parameter indices.
const (
	UniVibeParamRate = iota
	UniVibeParamIntensity
	UniVibeParamMix
)

const univibeStages = 4

var univibeParams = []stream.Param{
	{Name: "rate", Min: 0.1, Max: 10, Default: 1.5},
	{Name: "intensity", Min: 0, Max: 1, Default: 0.7},
	{Name: "mix", Min: 0, Max: 1, Default: 0.5},
}

type allpassStage struct {
	x1 float64
	y1 float64
}

func (s *allpassStage) reset() {
	s.x1 = 0
	s.y1 = 0
}

func (s *allpassStage) process(x, a float64) float64 {
	y := a*x + s.x1 - a*s.y1
	s.x1 = x
	s.y1 = y

	return y
}

// UniVibe runs four first-order allpass stages that share the coefficient
// a = 0.5 + lfo*intensity*0.3, then mixes the result with the dry signal.
type UniVibe struct {
	lfo       LFO
	stages    [univibeStages]allpassStage
	intensity float64
	mix       float64
	lastCoeff float64
}

// NewUniVibe creates a UniVibe with its declared defaults.
func NewUniVibe(sampleRate float64) (*UniVibe, error) {
	u := &UniVibe{}
	if err := u.lfo.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	for i, p := range univibeParams {
		u.SetParam(i, p.Default)
	}
	return u, nil
}

// Params implements stream.Processor.
func (u *UniVibe) Params() []stream.Param { return univibeParams }

// SetParam implements stream.Processor.
func (u *UniVibe) SetParam(index int, value float64) {
	switch index {
	case UniVibeParamRate:
		u.lfo.SetRate(value)
	case UniVibeParamIntensity:
		u.intensity = value
	case UniVibeParamMix:
		u.mix = value
	}
}

// Coefficient returns the allpass coefficient used for the last sample.
func (u *UniVibe) Coefficient() float64 { return u.lastCoeff }

// Process implements stream.Processor.
func (u *UniVibe) Process(in, out []float64) {
	n := min(len(in), len(out))
	for i := range n {
		a := 0.5 + u.lfo.Next()*u.intensity*0.3
		u.lastCoeff = a

		x := in[i]
		y := x
		for s := range u.stages {
			y = u.stages[s].process(y, a)
		}
		out[i] = x + u.mix*(y-x)
	}
}

// Reset implements stream.Processor.
func (u *UniVibe) Reset() {
	for s := range u.stages {
		u.stages[s].reset()
	}
	u.lfo.Reset()
}

// SetSampleRate implements stream.Processor.
func (u *UniVibe) SetSampleRate(sampleRate float64) error {
	return u.lfo.SetSampleRate(sampleRate)
}
