package pitch

import (
	"math"

	"github.com/cwbudde/algo-tonechain/dsp/stream"
)

// Pitch parameter indices.
const (
	PitchParamSemitones = iota
	PitchParamMix
)

var pitchParams = []stream.Param{
	{Name: "semitones", Min: -12, Max: 12, Default: 0},
	{Name: "mix", Min: 0, Max: 1, Default: 0.5},
}

// Pitch shifts by a ratio of 2^(semitones/12) and mixes linearly with
// the dry signal.
type Pitch struct {
	shifter   *Shifter
	semitones float64
	mix       float64
}

// NewPitch creates a semitone pitch shifter with its declared defaults.
func NewPitch(sampleRate float64) (*Pitch, error) {
	s, err := NewShifter(sampleRate)
	if err != nil {
		return nil, err
	}
	p := &Pitch{shifter: s}
	for i, d := range pitchParams {
		p.SetParam(i, d.Default)
	}
	return p, nil
}

// SemitoneRatio returns 2^(semitones/12).
func SemitoneRatio(semitones float64) float64 {
	return math.Exp2(semitones / 12)
}

// Params implements stream.Processor.
func (p *Pitch) Params() []stream.Param { return pitchParams }

// SetParam implements stream.Processor.
func (p *Pitch) SetParam(index int, value float64) {
	switch index {
	case PitchParamSemitones:
		p.semitones = value
		p.shifter.SetRatio(SemitoneRatio(value))
	case PitchParamMix:
		p.mix = value
	}
}

// Ratio returns the current pitch ratio.
func (p *Pitch) Ratio() float64 { return p.shifter.Ratio() }

// Delay returns the shifter's nominal delay in samples.
func (p *Pitch) Delay() int { return p.shifter.Delay() }

// Process implements stream.Processor.
func (p *Pitch) Process(in, out []float64) {
	n := min(len(in), len(out))
	dry := 1 - p.mix
	for i := range n {
		x := in[i]
		out[i] = dry*x + p.mix*p.shifter.Next(x)
	}
}

// Reset implements stream.Processor.
func (p *Pitch) Reset() { p.shifter.Reset() }

// SetSampleRate implements stream.Processor.
func (p *Pitch) SetSampleRate(sampleRate float64) error {
	return p.shifter.SetSampleRate(sampleRate)
}
