package param

import (
	"math"
	"sync/atomic"
)

// Float is a float64 that can be read and written concurrently.
// The zero value holds 0.
type Float struct {
	bits atomic.Uint64
}

// NewFloat returns a Float holding v.
func NewFloat(v float64) *Float {
	f := &Float{}
	f.Store(v)
	return f
}

// Load returns the current value.
func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Store replaces the current value.
func (f *Float) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Swap stores v and reports whether it differs from the previous value.
func (f *Float) Swap(v float64) bool {
	old := f.bits.Swap(math.Float64bits(v))
	return old != math.Float64bits(v)
}
