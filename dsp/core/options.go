package core

import (
	"errors"
	"fmt"
	"math"
)

// Rig limits. Processors refuse to be built outside them.
const (
	MinSampleRate     = 8000.0
	MaxSampleRate     = 384000.0
	DefaultSampleRate = 48000.0
	MaxChannels       = 2
)

var (
	// ErrUnsupportedSampleRate reports a rate outside MinSampleRate..MaxSampleRate.
	ErrUnsupportedSampleRate = errors.New("unsupported sample rate")
	// ErrUnsupportedChannels reports a channel count other than mono or stereo.
	ErrUnsupportedChannels = errors.New("unsupported channel count")
	// ErrInvalidBlockSize reports a non-positive processing slice.
	ErrInvalidBlockSize = errors.New("invalid block size")
)

// ProcessorConfig holds the settings every stage of the rig shares.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	Channels   int
}

// ProcessorOption edits a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// WithSampleRate sets the rate in Hz.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) { cfg.SampleRate = sampleRate }
}

// WithBlockSize sets the longest slice a stage processes at once.
func WithBlockSize(n int) ProcessorOption {
	return func(cfg *ProcessorConfig) { cfg.BlockSize = n }
}

// WithChannels sets the input channel count.
func WithChannels(n int) ProcessorOption {
	return func(cfg *ProcessorConfig) { cfg.Channels = n }
}

// NewProcessorConfig starts from 48 kHz stereo with the given block size,
// applies opts and validates the result.
func NewProcessorConfig(blockSize int, opts ...ProcessorOption) (ProcessorConfig, error) {
	cfg := ProcessorConfig{SampleRate: DefaultSampleRate, BlockSize: blockSize, Channels: MaxChannels}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks rate, block size and channel count.
func (cfg ProcessorConfig) Validate() error {
	if err := ValidateSampleRate(cfg.SampleRate); err != nil {
		return err
	}
	if cfg.BlockSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, cfg.BlockSize)
	}
	if cfg.Channels < 1 || cfg.Channels > MaxChannels {
		return fmt.Errorf("%w: %d (want 1 or %d)", ErrUnsupportedChannels, cfg.Channels, MaxChannels)
	}
	return nil
}

// ValidateSampleRate returns a wrapped ErrUnsupportedSampleRate unless
// sampleRate can be processed.
func ValidateSampleRate(sampleRate float64) error {
	if math.IsNaN(sampleRate) || sampleRate < MinSampleRate || sampleRate > MaxSampleRate {
		return fmt.Errorf("%w: %g Hz (want %g..%g)", ErrUnsupportedSampleRate, sampleRate, MinSampleRate, MaxSampleRate)
	}
	return nil
}
