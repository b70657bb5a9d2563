package reverb

import (
	"sync/atomic"

	"github.com/cwbudde/algo-tonechain/dsp/interp"
)

// Reverb owns the active Convolution on the audio thread.
//
// Publish may be called from any goroutine. The next ProcessWet picks the
// new engine up, clears its history and crossfades from the old one across
// that block. An engine may be published again after it was replaced.
type Reverb struct {
	pending atomic.Pointer[Convolution]
	current *Convolution
	idle    bool

	fadeL, fadeR []float64
}

// New creates a Reverb around an initial engine. maxBlock bounds the
// length of blocks passed to ProcessWet.
func New(initial *Convolution, maxBlock int) *Reverb {
	return &Reverb{
		current: initial,
		fadeL:   make([]float64, maxBlock),
		fadeR:   make([]float64, maxBlock),
	}
}

// Publish hands a new engine to the audio thread.
func (r *Reverb) Publish(c *Convolution) {
	r.pending.Store(c)
}

// Current returns the engine in use by the audio thread. Only the audio
// thread, or a caller that owns the stream, may use it.
func (r *Reverb) Current() *Convolution {
	return r.current
}

// Latency returns the wet path latency of the current engine.
func (r *Reverb) Latency() int { return r.current.Latency() }

// ProcessWet writes the wet signal into dstL/dstR. When active is false
// the convolution is skipped, silence is written and the history is
// cleared once, so a later return does not replay a stale tail.
// Blocks longer than the maxBlock given to New are truncated.
func (r *Reverb) ProcessWet(dstL, dstR, srcL, srcR []float64, active bool) {
	n := min(len(dstL), len(dstR), len(srcL), len(srcR), len(r.fadeL))
	dstL, dstR, srcL, srcR = dstL[:n], dstR[:n], srcL[:n], srcR[:n]

	next := r.pending.Swap(nil)
	if next == r.current {
		next = nil
	}
	if next != nil {
		next.Reset()
	}

	if !active {
		if next != nil {
			r.current = next
		}
		if !r.idle {
			r.current.Reset()
			r.idle = true
		}
		clear(dstL)
		clear(dstR)
		return
	}
	r.idle = false

	if next == nil {
		r.current.Process(dstL, dstR, srcL, srcR)
		return
	}

	old := r.current
	r.current = next

	fadeL, fadeR := r.fadeL[:n], r.fadeR[:n]
	old.Process(fadeL, fadeR, srcL, srcR)
	next.Process(dstL, dstR, srcL, srcR)

	inv := 1 / float64(max(n, 1))
	for i := range n {
		t := float64(i+1) * inv
		dstL[i] = interp.Linear(t, fadeL[i], dstL[i])
		dstR[i] = interp.Linear(t, fadeR[i], dstR[i])
	}
}

// Reset clears the history of the current engine.
func (r *Reverb) Reset() {
	if next := r.pending.Swap(nil); next != nil {
		r.current = next
	}
	r.current.Reset()
}
