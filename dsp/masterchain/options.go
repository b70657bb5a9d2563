package masterchain

import (
	"fmt"

	"github.com/cwbudde/algo-tonechain/dsp/core"
	"github.com/cwbudde/algo-tonechain/dsp/effects/reverb"
)

// DefaultMaxBlockSize is the internal processing slice. Filter and
// compressor ramps advance once per slice.
const DefaultMaxBlockSize = 64

type config struct {
	core.ProcessorConfig
	seed          uint64
	partitionSize int
	controls      *Controls
}

// Option configures a Chain at construction.
type Option func(*config)

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) { c.SampleRate = sampleRate }
}

// WithProcessorOptions applies shared core options.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(c *config) {
		for _, opt := range opts {
			if opt != nil {
				opt(&c.ProcessorConfig)
			}
		}
	}
}

// WithChannels sets the number of input channels, 1 or 2. The output is
// always stereo.
func WithChannels(n int) Option {
	return func(c *config) { c.Channels = n }
}

// WithMaxBlockSize sets the internal slice length. Host blocks of any
// length are split into slices of at most n samples.
func WithMaxBlockSize(n int) Option {
	return func(c *config) { c.BlockSize = n }
}

// WithReverbSeed selects the noise seed of the reverb impulses.
func WithReverbSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// WithReverbPartitionSize sets the reverb convolution partition, which is
// also the wet path latency.
func WithReverbPartitionSize(n int) Option {
	return func(c *config) { c.partitionSize = n }
}

// WithControls replaces DefaultControls as the initial state.
func WithControls(ctl Controls) Option {
	return func(c *config) { c.controls = &ctl }
}

func applyOptions(opts []Option) (config, error) {
	base, err := core.NewProcessorConfig(DefaultMaxBlockSize)
	if err != nil {
		return config{}, fmt.Errorf("masterchain: %w", err)
	}
	cfg := config{ProcessorConfig: base, seed: reverb.DefaultSeed}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("masterchain: %w", err)
	}
	return cfg, nil
}
