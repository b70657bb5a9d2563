package audio

import (
	"fmt"

	"github.com/cwbudde/algo-tonechain/control"
	"github.com/cwbudde/algo-tonechain/dsp/core"
	"github.com/cwbudde/algo-tonechain/dsp/masterchain"
	"github.com/cwbudde/algo-tonechain/dsp/param"
)

// Engine runs the full signal path: mono instrument input through the
// pedal board and the master chain to a stereo output.
//
// Process is called from one audio goroutine. Control changes go through
// Surface from any other goroutine.
type Engine struct {
	surface *control.Surface
	scratch []float64
	fade    *param.Smoothed
}

// New builds a master chain with opts, a surface with the default
// processor registry, and an engine around them.
func New(opts ...masterchain.Option) (*Engine, error) {
	chain, err := masterchain.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}

	surface, err := control.NewSurface(chain, nil)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}

	return NewEngine(surface), nil
}

// NewEngine returns an engine driven by surface.
func NewEngine(surface *control.Surface) *Engine {
	chain := surface.Chain()
	return &Engine{
		surface: surface,
		scratch: make([]float64, chain.MaxBlockSize()),
		fade:    param.NewSmoothed(param.DefaultTimeConstant, chain.SampleRate(), 1),
	}
}

// Surface returns the control surface.
func (e *Engine) Surface() *control.Surface { return e.surface }

// SampleRate returns the processing rate in Hz.
func (e *Engine) SampleRate() float64 { return e.surface.Chain().SampleRate() }

// Latency returns the latency of the reverb wet path in samples, relative
// to the direct signal.
func (e *Engine) Latency() int { return e.surface.Chain().Latency() }

// DryLatency returns the delay of the direct signal in samples; it is
// non-zero only in HQ mode.
func (e *Engine) DryLatency() int { return e.surface.Chain().DryLatency() }

// SetMuted fades the output out (true) or back in (false) without a
// click. Safe from any goroutine.
func (e *Engine) SetMuted(muted bool) {
	if muted {
		e.fade.Set(0)
	} else {
		e.fade.Set(1)
	}
}

// Muted reports whether a mute is requested.
func (e *Engine) Muted() bool { return e.fade.Target() == 0 }

// Process runs one block. outL and outR must have equal, non-zero length;
// any other shape clears whatever output exists. Input shorter than the
// block reads as silence.
func (e *Engine) Process(in, outL, outR []float64) {
	n := len(outL)
	if n == 0 || len(outR) != n {
		clear(outL)
		clear(outR)
		return
	}

	board := e.surface.Board()
	chain := e.surface.Chain()
	e.fade.Pull()

	for off := 0; off < n; off += len(e.scratch) {
		m := min(len(e.scratch), n-off)
		buf := e.scratch[:m]

		core.LoadBlock(buf, in, off)
		board.Process(buf, buf)
		l, r := outL[off:off+m], outR[off:off+m]
		chain.Process(buf, nil, l, r)

		e.applyFade(l, r)
	}
}

func (e *Engine) applyFade(l, r []float64) {
	if e.fade.Settled() {
		if g := e.fade.Value(); g != 1 {
			for i := range l {
				l[i] *= g
				r[i] *= g
			}
		}
		return
	}
	for i := range l {
		g := e.fade.Next()
		l[i] *= g
		r[i] *= g
	}
}

// Reset clears every signal state and completes a pending fade.
func (e *Engine) Reset() {
	e.surface.Reset()
	e.fade.Snap(e.fade.Target())
}

// SetSampleRate moves the whole signal path to a new rate. Call while the
// stream is stopped.
func (e *Engine) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	if err := e.surface.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	e.fade.SetSampleRate(sampleRate)
	return nil
}
