package modulation

import (
	"fmt"
	"math"
)

// LFO is a sine phase accumulator.
type LFO struct {
	sampleRate float64
	rateHz     float64
	phase      float64
	inc        float64
}

// NewLFO creates an LFO at rateHz.
func NewLFO(sampleRate, rateHz float64) (*LFO, error) {
	l := &LFO{rateHz: rateHz}
	if err := l.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return l, nil
}

// SetSampleRate recomputes the phase increment, keeping the phase.
func (l *LFO) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("lfo sample rate must be positive and finite: %f", sampleRate)
	}
	l.sampleRate = sampleRate
	l.SetRate(l.rateHz)
	return nil
}

// SetRate sets the frequency in Hz.
func (l *LFO) SetRate(hz float64) {
	l.rateHz = hz
	l.inc = 2 * math.Pi * hz / l.sampleRate
}

// Rate returns the frequency in Hz.
func (l *LFO) Rate() float64 { return l.rateHz }

// Next returns sin(phase) in [-1, 1] and advances the phase.
func (l *LFO) Next() float64 {
	v := math.Sin(l.phase)
	l.phase += l.inc
	if l.phase >= 2*math.Pi {
		l.phase -= 2 * math.Pi
	}
	return v
}

// Reset returns the phase to zero.
func (l *LFO) Reset() { l.phase = 0 }

// envelopeCoefficient is the one-pole coefficient for a time constant in
// milliseconds.
func envelopeCoefficient(timeMs, sampleRate float64) float64 {
	if timeMs <= 0 {
		return 1
	}
	return 1 - math.Exp(-1/(timeMs/1000*sampleRate))
}
