package reverb

import (
	"fmt"

	"github.com/cwbudde/algo-tonechain/dsp/conv"
	"github.com/cwbudde/algo-tonechain/dsp/core"
)

// DefaultSeed seeds the impulse noise unless WithSeed overrides it.
const DefaultSeed uint64 = 0x726576657262

// Option mutates construction parameters.
type Option func(*config)

type config struct {
	seed          uint64
	partitionSize int
}

// WithSeed selects the noise seed of the impulse response.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// WithPartitionSize sets the convolution partition size, which is also the
// wet path latency. Zero selects conv.DefaultPartitionSize.
func WithPartitionSize(n int) Option {
	return func(c *config) { c.partitionSize = n }
}

// Convolution is a stereo wet-only convolution engine for one Type.
type Convolution struct {
	typ        Type
	sampleRate float64
	left       *conv.Partitioned
	right      *conv.Partitioned
}

// NewConvolution synthesizes the impulse for t and builds both channel
// convolvers. It allocates and must not run on the audio thread.
func NewConvolution(t Type, sampleRate float64, opts ...Option) (*Convolution, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("reverb: unknown type %d", int(t))
	}
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("reverb: %w", err)
	}

	cfg := config{seed: DefaultSeed}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	irL, irR := GenerateImpulse(t, sampleRate, cfg.seed)

	left, err := conv.NewPartitioned(irL, cfg.partitionSize)
	if err != nil {
		return nil, fmt.Errorf("reverb: left convolver: %w", err)
	}
	right, err := conv.NewPartitioned(irR, cfg.partitionSize)
	if err != nil {
		return nil, fmt.Errorf("reverb: right convolver: %w", err)
	}

	return &Convolution{typ: t, sampleRate: sampleRate, left: left, right: right}, nil
}

// Type returns the reverb type the engine was built for.
func (c *Convolution) Type() Type { return c.typ }

// SampleRate returns the sample rate the impulse was generated for.
func (c *Convolution) SampleRate() float64 { return c.sampleRate }

// ImpulseLength returns the impulse length in samples.
func (c *Convolution) ImpulseLength() int { return c.left.ImpulseLen() }

// Latency returns the wet path latency in samples.
func (c *Convolution) Latency() int { return c.left.Latency() }

// Process writes the wet signal for srcL/srcR into dstL/dstR.
// dst may alias src.
func (c *Convolution) Process(dstL, dstR, srcL, srcR []float64) {
	c.left.Process(dstL, srcL)
	c.right.Process(dstR, srcR)
}

// Reset clears the convolution history.
func (c *Convolution) Reset() {
	c.left.Reset()
	c.right.Reset()
}
