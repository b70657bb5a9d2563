package biquad

import "github.com/cwbudde/algo-tonechain/dsp/core"

// Coefficients of one second-order section with a0 folded in:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Identity passes the signal unchanged.
var Identity = Coefficients{B0: 1}

// state is the transposed direct form II memory of one channel.
type state struct{ s1, s2 float64 }

func (st *state) tick(c *Coefficients, x float64) float64 {
	y := c.B0*x + st.s1
	st.s1 = c.B1*x - c.A1*y + st.s2
	st.s2 = c.B2*x - c.A2*y
	return y
}

func (st *state) run(c *Coefficients, buf []float64) {
	s1, s2 := st.s1, st.s2
	for i, x := range buf {
		y := c.B0*x + s1
		s1 = c.B1*x - c.A1*y + s2
		s2 = c.B2*x - c.A2*y
		buf[i] = y
	}
	st.s1 = core.FlushDenormals(s1)
	st.s2 = core.FlushDenormals(s2)
}

// Section filters one channel.
type Section struct {
	Coefficients
	st state
}

// NewSection returns a section at rest.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// SetCoefficients swaps the transfer function; the memory is kept.
func (s *Section) SetCoefficients(c Coefficients) { s.Coefficients = c }

// ProcessSample filters x.
func (s *Section) ProcessSample(x float64) float64 { return s.st.tick(&s.Coefficients, x) }

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) { s.st.run(&s.Coefficients, buf) }

// Reset clears the memory.
func (s *Section) Reset() { s.st = state{} }

// State returns the two memory cells.
func (s *Section) State() [2]float64 { return [2]float64{s.st.s1, s.st.s2} }
