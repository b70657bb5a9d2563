package resample

import (
	"github.com/cwbudde/algo-vecmath"
)

// history is a newest-first window over the last n samples. The ring is
// stored twice so the window is always one contiguous slice.
type history struct {
	buf []float64
	pos int
	n   int
}

func newHistory(n int) history {
	return history{buf: make([]float64, 2*n), n: n}
}

func (h *history) push(x float64) {
	if h.pos == 0 {
		h.pos = h.n
	}
	h.pos--
	h.buf[h.pos] = x
	h.buf[h.pos+h.n] = x
}

func (h *history) window() []float64 { return h.buf[h.pos : h.pos+h.n] }

func (h *history) reset() {
	clear(h.buf)
	h.pos = 0
}

// Interpolator raises the rate by an integer factor: zero-stuffing and
// lowpass filtering, evaluated as a polyphase FIR.
type Interpolator struct {
	phases [][]float64
	hist   history
}

// NewInterpolator builds an interpolator for factor from p.
func NewInterpolator(factor int, p Profile) (*Interpolator, error) {
	taps, err := p.Prototype(factor)
	if err != nil {
		return nil, err
	}

	// Phase k holds taps k, k+factor, ...; the gain of factor restores the
	// level lost to zero-stuffing.
	phases := make([][]float64, factor)
	for k := range phases {
		phase := make([]float64, p.TapsPerPhase)
		for i := range phase {
			phase[i] = taps[k+i*factor] * float64(factor)
		}
		phases[k] = phase
	}

	return &Interpolator{phases: phases, hist: newHistory(p.TapsPerPhase)}, nil
}

// Factor returns the rate ratio.
func (u *Interpolator) Factor() int { return len(u.phases) }

// Process takes one low-rate sample and writes Factor high-rate samples to
// dst[:Factor]. A shorter dst receives as many as fit.
func (u *Interpolator) Process(dst []float64, x float64) {
	u.hist.push(x)
	w := u.hist.window()
	for k := range min(len(dst), len(u.phases)) {
		dst[k] = vecmath.DotProduct(u.phases[k], w)
	}
}

// Reset clears the input history.
func (u *Interpolator) Reset() { u.hist.reset() }

// Decimator lowers the rate by an integer factor: lowpass filtering and
// keeping the last of every Factor samples.
type Decimator struct {
	factor int
	taps   []float64
	hist   history
}

// NewDecimator builds a decimator for factor from p.
func NewDecimator(factor int, p Profile) (*Decimator, error) {
	taps, err := p.Prototype(factor)
	if err != nil {
		return nil, err
	}
	return &Decimator{factor: factor, taps: taps, hist: newHistory(len(taps))}, nil
}

// Factor returns the rate ratio.
func (d *Decimator) Factor() int { return d.factor }

// Process consumes src[:Factor] and returns one low-rate sample. Missing
// samples read as silence.
func (d *Decimator) Process(src []float64) float64 {
	for i := range d.factor {
		v := 0.0
		if i < len(src) {
			v = src[i]
		}
		d.hist.push(v)
	}
	return vecmath.DotProduct(d.taps, d.hist.window())
}

// Reset clears the input history.
func (d *Decimator) Reset() { d.hist.reset() }
