package audio

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-vecmath"
)

// DefaultRenderBlock is the host block size used by Render.
const DefaultRenderBlock = 512

// Render pulls frames samples from src through e and returns the stereo
// result. The engine is driven in host-sized blocks exactly as a live
// stream would drive it.
func Render(e *Engine, src Source, frames int) (left, right []float64) {
	left = make([]float64, frames)
	right = make([]float64, frames)
	in := make([]float64, DefaultRenderBlock)

	for off := 0; off < frames; off += DefaultRenderBlock {
		m := min(DefaultRenderBlock, frames-off)
		src.Fill(in[:m])
		e.Process(in[:m], left[off:off+m], right[off:off+m])
	}
	return left, right
}

// Interleave packs two channels into L R L R float32 frames.
func Interleave(left, right []float64) []float32 {
	n := min(len(left), len(right))
	out := make([]float32, 2*n)
	for i := range n {
		out[2*i] = float32(left[i])
		out[2*i+1] = float32(right[i])
	}
	return out
}

// Peak returns the largest absolute sample over both channels.
func Peak(left, right []float64) float64 {
	return max(vecmath.MaxAbs(left), vecmath.MaxAbs(right))
}

// WriteWAV encodes a stereo render as 32-bit float WAV.
func WriteWAV(w io.Writer, left, right []float64, sampleRate int) error {
	if _, err := w.Write(EncodeWAVFloat32LE(Interleave(left, right), sampleRate, 2)); err != nil {
		return fmt.Errorf("audio: write wav: %w", err)
	}
	return nil
}
