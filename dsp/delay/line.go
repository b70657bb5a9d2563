package delay

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-tonechain/dsp/interp"
)

// ErrInvalidSize is returned for a line without capacity.
var ErrInvalidSize = errors.New("delay: invalid size")

// Line is a fixed-size ring of past samples. Write stores one sample;
// Read and ReadLinear look back from the newest one, At addresses the ring
// directly.
type Line struct {
	buf []float64
	w   int
}

// New returns a silent line holding size samples.
func New(size int) (*Line, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Line{buf: make([]float64, size)}, nil
}

// Len returns the capacity in samples.
func (d *Line) Len() int { return len(d.buf) }

// WritePos returns the slot the next Write fills.
func (d *Line) WritePos() int { return d.w }

// Write stores x as the newest sample.
func (d *Line) Write(x float64) {
	d.buf[d.w] = x
	if d.w++; d.w == len(d.buf) {
		d.w = 0
	}
}

// Read returns the sample written n writes ago; 0 is the newest.
func (d *Line) Read(n int) float64 {
	return d.buf[d.slot(d.w-1-n)]
}

// ReadLinear reads a fractional distance back from the newest sample. The
// distance is held inside [0, Len-2].
func (d *Line) ReadLinear(dist float64) float64 {
	limit := float64(max(len(d.buf)-2, 0))
	if !(dist > 0) {
		dist = 0
	}
	i, t := interp.Split(min(dist, limit))
	return interp.Linear(t, d.Read(i), d.Read(i+1))
}

// At reads ring position pos, wrapped into the buffer, interpolating
// towards the following slot.
func (d *Line) At(pos float64) float64 {
	i, t := interp.Split(pos)
	i = d.slot(i)
	return interp.Linear(t, d.buf[i], d.buf[d.slot(i+1)])
}

// Reset silences the line and rewinds the write slot.
func (d *Line) Reset() {
	clear(d.buf)
	d.w = 0
}

func (d *Line) slot(i int) int {
	n := len(d.buf)
	if i %= n; i < 0 {
		i += n
	}
	return i
}
