package conv

import (
	"fmt"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

// Partition sizes in samples. The partition is also the latency.
const (
	DefaultPartitionSize = 256
	MinPartitionSize     = 16
)

// Partitioned implements uniformly partitioned overlap-save convolution.
//
// The impulse response is split into partitions of B samples, each
// transformed once at construction. Input is collected into B-sample
// frames; every complete frame is transformed, pushed into a
// frequency-domain delay line and multiplied against all partitions.
// Output lags input by exactly B samples regardless of the host block size.
//
// Partitioned is not safe for concurrent use. Construction allocates;
// Process does not.
type Partitioned struct {
	plan *algofft.Plan[complex128]

	size    int // partition size B
	fftSize int // 2B
	bins    int // B+1 non-redundant bins
	irLen   int

	partitions [][]complex128 // IR spectra, bins each
	fdl        [][]complex128 // input spectra ring, bins each
	head       int

	frame  []complex128 // time-domain FFT workspace
	accum  []complex128
	prevIn []float64
	inBuf  []float64
	outBuf []float64
	pos    int
}

// NewPartitioned creates a convolver for ir with the given partition size.
// partitionSize must be a power of two of at least 16; zero selects
// DefaultPartitionSize.
func NewPartitioned(ir []float64, partitionSize int) (*Partitioned, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyImpulseResponse
	}
	if partitionSize == 0 {
		partitionSize = DefaultPartitionSize
	}
	if partitionSize < MinPartitionSize || !isPowerOfTwo(partitionSize) {
		return nil, fmt.Errorf("%w: %d is not a power of two >= %d", ErrInvalidPartitionSize, partitionSize, MinPartitionSize)
	}

	fftSize := 2 * partitionSize
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	numParts := (len(ir) + partitionSize - 1) / partitionSize
	bins := partitionSize + 1

	p := &Partitioned{
		plan:       plan,
		size:       partitionSize,
		fftSize:    fftSize,
		bins:       bins,
		irLen:      len(ir),
		partitions: make([][]complex128, numParts),
		fdl:        make([][]complex128, numParts),
		frame:      make([]complex128, fftSize),
		accum:      make([]complex128, bins),
		prevIn:     make([]float64, partitionSize),
		inBuf:      make([]float64, partitionSize),
		outBuf:     make([]float64, partitionSize),
	}

	for k := range numParts {
		clear(p.frame)
		start := k * partitionSize
		end := min(start+partitionSize, len(ir))
		for i, v := range ir[start:end] {
			p.frame[i] = complex(v, 0)
		}
		if err := plan.Forward(p.frame, p.frame); err != nil {
			return nil, fmt.Errorf("conv: failed to transform partition %d: %w", k, err)
		}
		p.partitions[k] = make([]complex128, bins)
		copy(p.partitions[k], p.frame[:bins])
		p.fdl[k] = make([]complex128, bins)
	}

	return p, nil
}

// Latency returns the fixed input-to-output delay in samples.
func (p *Partitioned) Latency() int { return p.size }

// PartitionSize returns B.
func (p *Partitioned) PartitionSize() int { return p.size }

// ImpulseLen returns the length of the impulse response.
func (p *Partitioned) ImpulseLen() int { return p.irLen }

// Process convolves src into dst. The lengths may be anything; only
// min(len(dst), len(src)) samples are processed. dst may alias src.
func (p *Partitioned) Process(dst, src []float64) {
	n := min(len(dst), len(src))
	for i := range n {
		x := src[i]
		dst[i] = p.outBuf[p.pos]
		p.inBuf[p.pos] = x
		p.pos++
		if p.pos == p.size {
			p.pos = 0
			p.frameDone()
		}
	}
}

// Reset clears all input history and pending output.
func (p *Partitioned) Reset() {
	for k := range p.fdl {
		clear(p.fdl[k])
	}
	clear(p.prevIn)
	clear(p.inBuf)
	clear(p.outBuf)
	p.head = 0
	p.pos = 0
}

func (p *Partitioned) frameDone() {
	b := p.size
	for i := range b {
		p.frame[i] = complex(p.prevIn[i], 0)
		p.frame[b+i] = complex(p.inBuf[i], 0)
	}
	copy(p.prevIn, p.inBuf)

	// Sizes are fixed at construction, so the plan cannot reject them.
	if err := p.plan.Forward(p.frame, p.frame); err != nil {
		clear(p.outBuf)
		return
	}

	p.head--
	if p.head < 0 {
		p.head = len(p.fdl) - 1
	}
	copy(p.fdl[p.head], p.frame[:p.bins])

	clear(p.accum)
	idx := p.head
	for k := range p.partitions {
		h := p.partitions[k]
		x := p.fdl[idx]
		for j := range p.accum {
			p.accum[j] += x[j] * h[j]
		}
		idx++
		if idx == len(p.fdl) {
			idx = 0
		}
	}

	// Real input gives a Hermitian spectrum; rebuild the upper half.
	copy(p.frame, p.accum)
	for j := 1; j < b; j++ {
		p.frame[p.fftSize-j] = cmplx.Conj(p.accum[j])
	}

	if err := p.plan.Inverse(p.frame, p.frame); err != nil {
		clear(p.outBuf)
		return
	}
	for i := range b {
		p.outBuf[i] = real(p.frame[b+i])
	}
}
