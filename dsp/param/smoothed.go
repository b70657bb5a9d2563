package param

// Smoothed couples a lock-free target written by the control side with a
// ramp advanced by the audio side.
type Smoothed struct {
	target Float
	ramp   Smoother
}

// NewSmoothed returns a settled parameter at initial.
func NewSmoothed(tau, sampleRate, initial float64) *Smoothed {
	p := &Smoothed{ramp: NewSmoother(tau, sampleRate, initial)}
	p.target.Store(initial)
	return p
}

// Set publishes a new target. Safe from any goroutine.
func (p *Smoothed) Set(v float64) {
	p.target.Store(v)
}

// Target returns the most recently published target.
func (p *Smoothed) Target() float64 {
	return p.target.Load()
}

// Pull copies the published target into the ramp. Audio side, once per block.
func (p *Smoothed) Pull() {
	p.ramp.SetTarget(p.target.Load())
}

// Next advances the ramp one sample. Audio side.
func (p *Smoothed) Next() float64 {
	return p.ramp.Next()
}

// Advance moves the ramp n samples ahead. Audio side.
func (p *Smoothed) Advance(n int) float64 {
	return p.ramp.Advance(n)
}

// Value returns the current ramp position. Audio side.
func (p *Smoothed) Value() float64 {
	return p.ramp.Value()
}

// Settled reports whether the ramp has reached the pulled target. Audio side.
func (p *Smoothed) Settled() bool {
	return p.ramp.Settled()
}

// Snap jumps both target and ramp to v. Only valid while the audio side is
// not running.
func (p *Smoothed) Snap(v float64) {
	p.target.Store(v)
	p.ramp.Snap(v)
}

// SetSampleRate recomputes the ramp coefficient. Only valid while the audio
// side is not running.
func (p *Smoothed) SetSampleRate(sampleRate float64) {
	p.ramp.SetSampleRate(sampleRate)
}
