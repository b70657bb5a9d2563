package audio

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-tonechain/dsp/core"
	"github.com/cwbudde/algo-tonechain/dsp/delay"
)

// Source produces the mono instrument signal that feeds the engine.
type Source interface {
	Fill(dst []float64)
}

// Silence is a Source of zeros.
type Silence struct{}

// Fill clears dst.
func (Silence) Fill(dst []float64) { clear(dst) }

// Tone is a sine oscillator.
type Tone struct {
	phase float64
	step  float64
	amp   float64
}

// NewTone returns a sine at freqHz with peak amplitude.
func NewTone(freqHz, amplitude, sampleRate float64) (*Tone, error) {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	if freqHz <= 0 || freqHz >= sampleRate/2 {
		return nil, fmt.Errorf("audio: tone frequency out of range: %g", freqHz)
	}
	return &Tone{step: 2 * math.Pi * freqHz / sampleRate, amp: amplitude}, nil
}

// Fill writes the next len(dst) samples.
func (t *Tone) Fill(dst []float64) {
	for i := range dst {
		dst[i] = t.amp * math.Sin(t.phase)
		t.phase += t.step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
}

// Pluck is a Karplus-Strong string re-plucked at a fixed interval.
type Pluck struct {
	line     *delay.Line
	period   int
	amp      float64
	decay    float64
	interval int
	pos      int
	rng      *rand.Rand
}

// NewPluck returns a string tuned to freqHz that is plucked every
// intervalSec seconds. decay in (0, 1) sets how long a note rings.
func NewPluck(freqHz, amplitude, decay, intervalSec, sampleRate float64, seed uint64) (*Pluck, error) {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}

	if freqHz <= 0 || freqHz >= sampleRate/2 {
		return nil, fmt.Errorf("audio: pluck frequency out of range: %g", freqHz)
	}
	period := int(math.Round(sampleRate / freqHz))
	if decay <= 0 || decay >= 1 {
		return nil, fmt.Errorf("audio: pluck decay must be in (0, 1): %g", decay)
	}

	line, err := delay.New(period)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}

	return &Pluck{
		line:     line,
		period:   period,
		amp:      amplitude,
		decay:    decay,
		interval: max(1, int(intervalSec*sampleRate)),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

func (p *Pluck) excite() {
	for range p.period {
		p.line.Write(p.amp * (p.rng.Float64()*2 - 1))
	}
}

// Fill writes the next len(dst) samples.
func (p *Pluck) Fill(dst []float64) {
	for i := range dst {
		if p.pos == 0 {
			p.excite()
		}
		p.pos++
		if p.pos >= p.interval {
			p.pos = 0
		}

		oldest := p.line.Read(p.period - 1)
		next := p.line.Read(p.period - 2)
		p.line.Write(p.decay * 0.5 * (oldest + next))
		dst[i] = oldest
	}
}

// Buffer plays a recorded signal, optionally looping.
type Buffer struct {
	data []float64
	pos  int
	loop bool
}

// NewBuffer returns a Source reading data. A non-looping buffer reads as
// silence once exhausted.
func NewBuffer(data []float64, loop bool) *Buffer {
	return &Buffer{data: data, loop: loop}
}

// Fill writes the next len(dst) samples.
func (b *Buffer) Fill(dst []float64) {
	for len(dst) > 0 {
		if b.pos >= len(b.data) {
			if !b.loop || len(b.data) == 0 {
				clear(dst)
				return
			}
			b.pos = 0
		}
		n := copy(dst, b.data[b.pos:])
		b.pos += n
		dst = dst[n:]
	}
}
