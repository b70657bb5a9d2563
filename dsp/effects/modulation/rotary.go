package modulation

import (
	"math"

	"github.com/cwbudde/algo-tonechain/dsp/delay"
	"github.com/cwbudde/algo-tonechain/dsp/stream"
)

// Rotary parameter indices.
const (
	RotaryParamFast = iota
	RotaryParamDepth
	RotaryParamMix
)

const (
	// RotarySlowHz and RotaryFastHz are the two rotor speeds.
	RotarySlowHz = 0.5
	RotaryFastHz = 6.0

	hornCenterMs = 6.5 // 5..8 ms
	hornSwingMs  = 1.5
	drumCenterMs = 12.5 // 10..15 ms
	drumSwingMs  = 2.5

	// rotaryGlideSeconds is the time constant of a speed change.
	rotaryGlideSeconds = 0.7

	crossfadeSwing = 0.3
)

var rotaryParams = []stream.Param{
	{Name: "fast", Min: 0, Max: 1, Default: 0, Step: 1},
	{Name: "depth", Min: 0, Max: 1, Default: 1},
	{Name: "mix", Min: 0, Max: 1, Default: 1},
}

// Rotary simulates a rotating speaker.
//
// One LFO modulates a horn tap (5..8 ms) and a drum tap (10..15 ms) on
// separate delay lines; the moving read position produces the Doppler
// shift. The taps are mixed with complementary gains 0.5 +- 0.3*lfo.
// Switching speed glides the LFO rate instead of jumping.
type Rotary struct {
	sampleRate float64
	lfo        LFO
	horn       *delay.Line
	drum       *delay.Line

	targetHz   float64
	glideCoeff float64

	depth float64
	mix   float64
}

// NewRotary creates a rotary at slow speed.
func NewRotary(sampleRate float64) (*Rotary, error) {
	r := &Rotary{targetHz: RotarySlowHz}
	r.lfo.rateHz = RotarySlowHz
	if err := r.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	for i, p := range rotaryParams {
		r.SetParam(i, p.Default)
	}
	r.lfo.SetRate(r.targetHz)
	return r, nil
}

// Params implements stream.Processor.
func (r *Rotary) Params() []stream.Param { return rotaryParams }

// SetParam implements stream.Processor.
func (r *Rotary) SetParam(index int, value float64) {
	switch index {
	case RotaryParamFast:
		if value >= 0.5 {
			r.targetHz = RotaryFastHz
		} else {
			r.targetHz = RotarySlowHz
		}
	case RotaryParamDepth:
		r.depth = value
	case RotaryParamMix:
		r.mix = value
	}
}

// Rate returns the current LFO rate in Hz.
func (r *Rotary) Rate() float64 { return r.lfo.Rate() }

// TargetRate returns the rate the LFO is gliding toward.
func (r *Rotary) TargetRate() float64 { return r.targetHz }

// Process implements stream.Processor.
func (r *Rotary) Process(in, out []float64) {
	n := min(len(in), len(out))
	msToSamples := r.sampleRate / 1000
	hornCenter := hornCenterMs * msToSamples
	hornSwing := hornSwingMs * msToSamples * r.depth
	drumCenter := drumCenterMs * msToSamples
	drumSwing := drumSwingMs * msToSamples * r.depth

	for i := range n {
		r.glide()
		lfo := r.lfo.Next()
		x := in[i]

		r.horn.Write(x)
		r.drum.Write(x)
		hornOut := r.horn.ReadLinear(hornCenter + lfo*hornSwing)
		drumOut := r.drum.ReadLinear(drumCenter - lfo*drumSwing)

		hg := 0.5 + lfo*crossfadeSwing
		wet := hornOut*hg + drumOut*(1-hg)
		out[i] = x + r.mix*(wet-x)
	}
}

// Reset implements stream.Processor.
func (r *Rotary) Reset() {
	r.horn.Reset()
	r.drum.Reset()
	r.lfo.Reset()
	r.lfo.SetRate(r.targetHz)
}

// SetSampleRate implements stream.Processor.
func (r *Rotary) SetSampleRate(sampleRate float64) error {
	if err := r.lfo.SetSampleRate(sampleRate); err != nil {
		return err
	}
	r.sampleRate = sampleRate

	size := int(math.Ceil((drumCenterMs+drumSwingMs)*sampleRate/1000)) + 4
	horn, err := delay.New(size)
	if err != nil {
		return err
	}
	drum, err := delay.New(size)
	if err != nil {
		return err
	}
	r.horn, r.drum = horn, drum
	r.glideCoeff = 1 - math.Exp(-1/(rotaryGlideSeconds*sampleRate))
	return nil
}

func (r *Rotary) glide() {
	rate := r.lfo.Rate()
	if rate == r.targetHz {
		return
	}
	rate += (r.targetHz - rate) * r.glideCoeff
	if math.Abs(rate-r.targetHz) < 1e-3 {
		rate = r.targetHz
	}
	r.lfo.SetRate(rate)
}
