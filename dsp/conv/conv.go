package conv

import (
	"errors"
	"math/bits"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrEmptyInput is returned by Direct for an empty signal.
	ErrEmptyInput = errors.New("conv: empty input")
	// ErrEmptyImpulseResponse is returned for an impulse response without
	// samples.
	ErrEmptyImpulseResponse = errors.New("conv: empty impulse response")
	// ErrInvalidPartitionSize is returned for a partition that is not a
	// power of two of at least MinPartitionSize.
	ErrInvalidPartitionSize = errors.New("conv: invalid partition size")
)

// Direct returns the full linear convolution of x and ir,
// len(x)+len(ir)-1 samples long. It sums one scaled copy of ir per input
// sample and serves as the reference for Partitioned.
func Direct(x, ir []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if len(ir) == 0 {
		return nil, ErrEmptyImpulseResponse
	}

	y := make([]float64, len(x)+len(ir)-1)
	term := make([]float64, len(ir))
	for i, v := range x {
		if v == 0 {
			continue
		}
		vecmath.ScaleBlock(term, ir, v)
		vecmath.AddBlockInPlace(y[i:i+len(ir)], term)
	}
	return y, nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}
