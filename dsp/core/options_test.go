package core

import (
	"errors"
	"math"
	"testing"
)

func TestNewProcessorConfig(t *testing.T) {
	cfg, err := NewProcessorConfig(64, WithSampleRate(44100), nil, WithChannels(1))
	if err != nil {
		t.Fatalf("NewProcessorConfig() error = %v", err)
	}
	want := ProcessorConfig{SampleRate: 44100, BlockSize: 64, Channels: 1}
	if cfg != want {
		t.Fatalf("config = %+v, want %+v", cfg, want)
	}

	cfg, err = NewProcessorConfig(128)
	if err != nil || cfg.SampleRate != DefaultSampleRate || cfg.Channels != 2 {
		t.Fatalf("defaults = %+v, %v", cfg, err)
	}
}

func TestProcessorConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		opt  ProcessorOption
		want error
	}{
		{"low rate", WithSampleRate(7999), ErrUnsupportedSampleRate},
		{"high rate", WithSampleRate(768000), ErrUnsupportedSampleRate},
		{"nan rate", WithSampleRate(math.NaN()), ErrUnsupportedSampleRate},
		{"zero block", WithBlockSize(0), ErrInvalidBlockSize},
		{"no channels", WithChannels(0), ErrUnsupportedChannels},
		{"surround", WithChannels(6), ErrUnsupportedChannels},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewProcessorConfig(64, tt.opt); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateSampleRateBounds(t *testing.T) {
	for _, sr := range []float64{MinSampleRate, 44100, 96000, MaxSampleRate} {
		if err := ValidateSampleRate(sr); err != nil {
			t.Errorf("ValidateSampleRate(%v) = %v", sr, err)
		}
	}
	if err := ValidateSampleRate(0); !errors.Is(err, ErrUnsupportedSampleRate) {
		t.Errorf("ValidateSampleRate(0) = %v", err)
	}
}
