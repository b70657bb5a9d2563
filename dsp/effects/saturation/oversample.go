package saturation

import (
	"fmt"

	"github.com/cwbudde/algo-tonechain/dsp/resample"
)

// Factor is the oversampling ratio of HQ mode.
const Factor = 4

// Oversampler shapes one channel at Factor times the host rate.
//
// Both rate changes use the linear-phase FIR of resample.DefaultProfile,
// so the shaped signal is delayed by a whole number of host samples
// (Latency) and is otherwise phase-aligned with the input. The filters
// are normalized to the host rate and need no redesign when it changes.
type Oversampler struct {
	up   *resample.Interpolator
	down *resample.Decimator
	buf  [Factor]float64
}

// NewOversampler creates an oversampler.
func NewOversampler() (*Oversampler, error) {
	up, err := resample.NewInterpolator(Factor, resample.DefaultProfile)
	if err != nil {
		return nil, fmt.Errorf("saturation: %w", err)
	}
	down, err := resample.NewDecimator(Factor, resample.DefaultProfile)
	if err != nil {
		return nil, fmt.Errorf("saturation: %w", err)
	}
	return &Oversampler{up: up, down: down}, nil
}

// Latency returns the delay of Process in host samples.
func (o *Oversampler) Latency() int { return resample.DefaultProfile.Latency() }

// Process runs x through c at the oversampled rate and returns one
// host-rate sample.
func (o *Oversampler) Process(x float64, c *Curve) float64 {
	o.up.Process(o.buf[:], x)
	for i, v := range o.buf {
		o.buf[i] = c.Apply(v)
	}
	return o.down.Process(o.buf[:])
}

// Reset clears the filter state.
func (o *Oversampler) Reset() {
	o.up.Reset()
	o.down.Reset()
}
