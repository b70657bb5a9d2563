package audio

import "sync/atomic"

// Stream adapts an engine and its input to the pull model of a playback
// device: Read fills p with interleaved stereo float32 little-endian
// frames.
//
// Buffers grow on the first read of a larger size and are reused after
// that.
type Stream struct {
	engine *Engine
	source atomic.Pointer[sourceBox]

	in, l, r []float64
	frames   []float32
}

type sourceBox struct{ Source }

// NewStream returns a stream pulling input from src. A nil src plays
// silence through the rig.
func NewStream(e *Engine, src Source) *Stream {
	s := &Stream{engine: e}
	s.SetSource(src)
	return s
}

// SetSource swaps the input. Safe from any goroutine.
func (s *Stream) SetSource(src Source) {
	if src == nil {
		src = Silence{}
	}
	s.source.Store(&sourceBox{src})
}

// Engine returns the engine driven by the stream.
func (s *Stream) Engine() *Engine { return s.engine }

// Read renders len(p)/8 frames. A trailing partial frame is zeroed.
func (s *Stream) Read(p []byte) (int, error) {
	n := len(p) / 8
	if n > len(s.in) {
		s.in = make([]float64, n)
		s.l = make([]float64, n)
		s.r = make([]float64, n)
		s.frames = make([]float32, 2*n)
	}

	in, l, r := s.in[:n], s.l[:n], s.r[:n]
	s.source.Load().Fill(in)
	s.engine.Process(in, l, r)

	frames := s.frames[:2*n]
	for i := range n {
		frames[2*i] = float32(l[i])
		frames[2*i+1] = float32(r[i])
	}
	putFloat32s(p, frames)
	clear(p[8*n:])

	return len(p), nil
}
