package effectchain

import (
	"github.com/cwbudde/algo-tonechain/dsp/effects"
	"github.com/cwbudde/algo-tonechain/dsp/effects/modulation"
	"github.com/cwbudde/algo-tonechain/dsp/effects/pitch"
	"github.com/cwbudde/algo-tonechain/dsp/stream"
)

// Built-in processor type names.
const (
	TypeOctave  = "octave"
	TypePitch   = "pitch"
	TypeOctavia = "octavia"
	TypeRotary  = "rotary"
	TypeUniVibe = "univibe"
	TypeWah     = "wah"
)

// DefaultRegistry returns a Registry pre-populated with all built-in
// stream processors.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(TypeOctave, func(ctx Context) (stream.Processor, error) {
		return pitch.NewOctave(ctx.SampleRate)
	})
	r.MustRegister(TypePitch, func(ctx Context) (stream.Processor, error) {
		return pitch.NewPitch(ctx.SampleRate)
	})
	r.MustRegister(TypeOctavia, func(_ Context) (stream.Processor, error) {
		return effects.NewOctavia(), nil
	})
	r.MustRegister(TypeRotary, func(ctx Context) (stream.Processor, error) {
		return modulation.NewRotary(ctx.SampleRate)
	})
	r.MustRegister(TypeUniVibe, func(ctx Context) (stream.Processor, error) {
		return modulation.NewUniVibe(ctx.SampleRate)
	})
	r.MustRegister(TypeWah, func(ctx Context) (stream.Processor, error) {
		return modulation.NewWah(ctx.SampleRate)
	})

	return r
}
