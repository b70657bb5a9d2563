package param

import (
	"math"

	"github.com/cwbudde/algo-tonechain/dsp/core"
)

// Default ramp time constants.
const (
	DefaultTimeConstant = 0.010
	SlowTimeConstant    = 0.050
)

// settleEpsilon is the distance at which a ramp snaps onto its target.
const settleEpsilon = 1e-9

// Smoother is a one-pole exponential ramp toward a target, the same shape
// as a setTargetAtTime automation curve. It is owned by one goroutine.
type Smoother struct {
	current float64
	target  float64
	coeff   float64
	tau     float64
}

// NewSmoother returns a settled smoother at initial with time constant tau
// seconds at sampleRate.
func NewSmoother(tau, sampleRate, initial float64) Smoother {
	s := Smoother{current: initial, target: initial, tau: tau}
	s.coeff = core.TimeConstantCoeff(tau, sampleRate)
	return s
}

// SetSampleRate recomputes the per-sample coefficient, keeping the time constant.
func (s *Smoother) SetSampleRate(sampleRate float64) {
	s.coeff = core.TimeConstantCoeff(s.tau, sampleRate)
}

// TimeConstant returns the ramp time constant in seconds.
func (s *Smoother) TimeConstant() float64 { return s.tau }

// SetTarget re-aims the ramp.
func (s *Smoother) SetTarget(target float64) {
	s.target = target
}

// Snap jumps to v with no ramp. Only used when a stage is (re)built.
func (s *Smoother) Snap(v float64) {
	s.current = v
	s.target = v
}

// Next advances one sample and returns the new value.
func (s *Smoother) Next() float64 {
	if s.current == s.target {
		return s.current
	}
	s.current += (s.target - s.current) * s.coeff
	if math.Abs(s.target-s.current) < settleEpsilon {
		s.current = s.target
	}
	return s.current
}

// Advance moves n samples ahead and returns the value reached.
func (s *Smoother) Advance(n int) float64 {
	if s.current == s.target || n <= 0 {
		return s.current
	}
	for range n {
		s.Next()
		if s.current == s.target {
			break
		}
	}
	return s.current
}

// Value returns the current ramp position.
func (s *Smoother) Value() float64 { return s.current }

// Target returns the value the ramp is heading to.
func (s *Smoother) Target() float64 { return s.target }

// Settled reports whether the ramp has reached its target.
func (s *Smoother) Settled() bool { return s.current == s.target }
