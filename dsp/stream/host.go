package stream

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-tonechain/dsp/param"
)

// ErrUnknownParam is returned for a parameter name a processor does not
// declare.
var ErrUnknownParam = errors.New("stream: unknown parameter")

// Host enforces parameter bounds for a Processor and hands values to it
// at block boundaries.
type Host struct {
	name    string
	proc    Processor
	params  []Param
	pending []param.Float
	applied []float64
	bypass  atomic.Bool
}

// NewHost wraps p and applies every declared default.
func NewHost(name string, p Processor) *Host {
	params := p.Params()
	h := &Host{
		name:    name,
		proc:    p,
		params:  params,
		pending: make([]param.Float, len(params)),
		applied: make([]float64, len(params)),
	}
	for i, d := range params {
		v := d.Clamp(d.Default)
		h.pending[i].Store(v)
		h.applied[i] = v
		p.SetParam(i, v)
	}
	return h
}

// Name returns the name the host was created with.
func (h *Host) Name() string { return h.name }

// Processor returns the hosted processor.
func (h *Host) Processor() Processor { return h.proc }

// Params returns the parameter descriptors.
func (h *Host) Params() []Param { return h.params }

// Set clamps v and schedules it for the parameter called name.
func (h *Host) Set(name string, v float64) error {
	i := IndexOf(h.params, name)
	if i < 0 {
		return fmt.Errorf("%w: %s.%s", ErrUnknownParam, h.name, name)
	}
	h.pending[i].Store(h.params[i].Clamp(v))
	return nil
}

// SetIndex clamps v and schedules it for parameter i.
func (h *Host) SetIndex(i int, v float64) error {
	if i < 0 || i >= len(h.params) {
		return fmt.Errorf("%w: %s[%d]", ErrUnknownParam, h.name, i)
	}
	h.pending[i].Store(h.params[i].Clamp(v))
	return nil
}

// Value returns the most recently scheduled value of name.
func (h *Host) Value(name string) (float64, error) {
	i := IndexOf(h.params, name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnknownParam, h.name, name)
	}
	return h.pending[i].Load(), nil
}

// SetBypass routes input straight to output while on.
func (h *Host) SetBypass(on bool) { h.bypass.Store(on) }

// Bypassed reports the bypass state.
func (h *Host) Bypassed() bool { return h.bypass.Load() }

// Process applies pending parameter values and runs one block.
//
// An empty out is a no-op tick. An empty in is processed as silence, so
// tails keep ringing out. When in is shorter than out the remainder of out
// is cleared.
func (h *Host) Process(in, out []float64) {
	if len(out) == 0 {
		return
	}
	h.sync()

	if len(in) == 0 {
		clear(out)
		if !h.bypass.Load() {
			h.proc.Process(out, out)
		}
		return
	}

	n := min(len(in), len(out))
	if h.bypass.Load() {
		copy(out[:n], in[:n])
	} else {
		h.proc.Process(in[:n], out[:n])
	}
	clear(out[n:])
}

// Reset clears the processor state.
func (h *Host) Reset() { h.proc.Reset() }

// SetSampleRate forwards a rate change. Call while the stream is stopped.
func (h *Host) SetSampleRate(sampleRate float64) error {
	if err := h.proc.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("stream: %s: %w", h.name, err)
	}
	return nil
}

func (h *Host) sync() {
	for i := range h.pending {
		v := h.pending[i].Load()
		if v != h.applied[i] {
			h.applied[i] = v
			h.proc.SetParam(i, v)
		}
	}
}
