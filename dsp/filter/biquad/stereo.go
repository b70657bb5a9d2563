package biquad

// Stereo filters a left/right pair through one set of coefficients. The
// master chain keeps one per equalizer band.
type Stereo struct {
	Coefficients
	l, r state
}

// SetCoefficients swaps the transfer function of both channels; the memory
// is kept so a gain sweep does not click.
func (s *Stereo) SetCoefficients(c Coefficients) { s.Coefficients = c }

// ProcessBlock filters l and r in place. They are processed up to the
// shorter length.
func (s *Stereo) ProcessBlock(l, r []float64) {
	n := min(len(l), len(r))
	s.l.run(&s.Coefficients, l[:n])
	s.r.run(&s.Coefficients, r[:n])
}

// Reset clears the memory of both channels.
func (s *Stereo) Reset() {
	s.l = state{}
	s.r = state{}
}
