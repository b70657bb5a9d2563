package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tonechain/dsp/delay"
	"github.com/cwbudde/algo-tonechain/dsp/interp"
)

const (
	// bufferSeconds is the circular buffer length.
	bufferSeconds = 0.05
	minBufferLen  = 64
)

// Shifter is the shared circular-buffer resampler.
type Shifter struct {
	line  *delay.Line
	size  float64
	ratio float64
	read  float64
	delay float64

	fadeLen  int
	fadeLeft int
	fadeRead float64
}

// NewShifter allocates a shifter for sampleRate.
func NewShifter(sampleRate float64) (*Shifter, error) {
	s := &Shifter{ratio: 1}
	if err := s.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return s, nil
}

// SetSampleRate reallocates the buffer for sampleRate and clears state.
func (s *Shifter) SetSampleRate(sampleRate float64) error {
	if !isFinitePositive(sampleRate) {
		return fmt.Errorf("pitch shifter sample rate must be positive and finite: %f", sampleRate)
	}
	n := max(int(math.Round(bufferSeconds*sampleRate)), minBufferLen)
	line, err := delay.New(n)
	if err != nil {
		return err
	}
	s.line = line
	s.size = float64(n)
	s.delay = float64(n / 2)
	s.fadeLen = max(n/8, 1)
	s.Reset()
	return nil
}

// SetRatio sets the read pointer increment. Non-positive or non-finite
// ratios are ignored.
func (s *Shifter) SetRatio(ratio float64) {
	if !isFinitePositive(ratio) {
		return
	}
	s.ratio = ratio
}

// Ratio returns the pitch ratio.
func (s *Shifter) Ratio() float64 { return s.ratio }

// Delay returns the nominal read distance in samples.
func (s *Shifter) Delay() int { return int(s.delay) }

// Next writes x and returns the shifted sample.
func (s *Shifter) Next(x float64) float64 {
	s.line.Write(x)
	newest := float64(s.line.WritePos() - 1)

	dist := wrapPos(newest-s.read, s.size)
	guard := float64(s.fadeLen)*s.ratio + 2
	if dist < guard || dist > s.size-guard {
		s.fadeRead = s.read
		s.fadeLeft = s.fadeLen
		s.read = wrapPos(newest-s.delay, s.size)
	}

	y := s.line.At(s.read)
	s.read = wrapPos(s.read+s.ratio, s.size)

	if s.fadeLeft > 0 {
		old := s.line.At(s.fadeRead)
		s.fadeRead = wrapPos(s.fadeRead+s.ratio, s.size)
		t := 1 - float64(s.fadeLeft)/float64(s.fadeLen+1)
		y = interp.Linear(t, old, y)
		s.fadeLeft--
	}

	return y
}

// Reset clears the buffer and puts the read pointer back at the nominal
// distance.
func (s *Shifter) Reset() {
	s.line.Reset()
	s.read = s.size - s.delay
	s.fadeLeft = 0
}

func wrapPos(p, size float64) float64 {
	if p >= size {
		p -= size
		if p >= size {
			p = math.Mod(p, size)
		}
	} else if p < 0 {
		p += size
		if p < 0 {
			p = math.Mod(p, size) + size
		}
	}
	return p
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
