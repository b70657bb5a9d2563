package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tonechain/dsp/core"
	"github.com/cwbudde/algo-tonechain/dsp/stream"
)

// Wah parameter indices.
const (
	WahParamSweep = iota
	WahParamQ
	WahParamAuto
	WahParamMix
)

const (
	// WahMinHz and WahMaxHz bound the center frequency sweep.
	WahMinHz = 300.0
	WahMaxHz = 2000.0

	wahAttackMs    = 2.0
	wahReleaseMs   = 80.0
	wahSensitivity = 2.0

	// The Chamberlin structure is stable for f below about 1.
	wahMaxTuning = 0.9
)

var wahParams = []stream.Param{
	{Name: "sweep", Min: 0, Max: 1, Default: 0.5},
	{Name: "q", Min: 0.5, Max: 10, Default: 3},
	{Name: "auto", Min: 0, Max: 1, Default: 0},
	{Name: "mix", Min: 0, Max: 1, Default: 1},
}

// Wah is a Chamberlin state-variable bandpass.
//
// The center frequency is 300 + s*1700 Hz where s is the pedal sweep plus
// auto times the input envelope, clamped to [0, 1]. The bandpass output is
// scaled by 1/Q so the peak gain stays at unity across resonance settings.
type Wah struct {
	sampleRate float64

	sweep float64
	damp  float64
	auto  float64
	mix   float64

	envelope    float64
	attackCoef  float64
	releaseCoef float64

	centerHz float64
	bp       float64
	lp       float64
}

// NewWah creates a wah with its declared defaults.
func NewWah(sampleRate float64) (*Wah, error) {
	w := &Wah{}
	if err := w.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	for i, p := range wahParams {
		w.SetParam(i, p.Default)
	}
	w.centerHz = SweepToHz(w.sweep)
	return w, nil
}

// SweepToHz maps a pedal position in [0, 1] to the center frequency.
func SweepToHz(sweep float64) float64 {
	return WahMinHz + core.Clamp(sweep, 0, 1)*(WahMaxHz-WahMinHz)
}

// Params implements stream.Processor.
func (w *Wah) Params() []stream.Param { return wahParams }

// SetParam implements stream.Processor.
func (w *Wah) SetParam(index int, value float64) {
	switch index {
	case WahParamSweep:
		w.sweep = value
	case WahParamQ:
		w.damp = 1 / value
	case WahParamAuto:
		w.auto = value
	case WahParamMix:
		w.mix = value
	}
}

// CenterFrequency returns the center frequency in Hz of the last
// processed sample, or of the pedal position before any processing.
func (w *Wah) CenterFrequency() float64 { return w.centerHz }

// Process implements stream.Processor.
func (w *Wah) Process(in, out []float64) {
	n := min(len(in), len(out))
	for i := range n {
		x := in[i]

		level := math.Abs(x)
		if level > w.envelope {
			w.envelope += (level - w.envelope) * w.attackCoef
		} else {
			w.envelope += (level - w.envelope) * w.releaseCoef
		}

		pos := w.sweep
		if w.auto > 0 {
			pos += w.auto * math.Min(w.envelope*wahSensitivity, 1)
		}
		w.centerHz = SweepToHz(pos)

		f := math.Min(2*math.Sin(math.Pi*w.centerHz/w.sampleRate), wahMaxTuning)

		w.lp += f * w.bp
		hp := x - w.lp - w.damp*w.bp
		w.bp += f * hp
		w.lp = core.FlushDenormals(w.lp)
		w.bp = core.FlushDenormals(w.bp)

		wet := w.bp * w.damp
		out[i] = x + w.mix*(wet-x)
	}
}

// Reset implements stream.Processor.
func (w *Wah) Reset() {
	w.bp = 0
	w.lp = 0
	w.envelope = 0
	w.centerHz = SweepToHz(w.sweep)
}

// SetSampleRate implements stream.Processor.
func (w *Wah) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("wah sample rate must be positive and finite: %f", sampleRate)
	}
	w.sampleRate = sampleRate
	w.attackCoef = envelopeCoefficient(wahAttackMs, sampleRate)
	w.releaseCoef = envelopeCoefficient(wahReleaseMs, sampleRate)
	return nil
}
