//go:build headless

package audio

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-tonechain/control"
)

// Player is the device-less stand-in used in headless builds. It keeps the
// playback state but never pulls from the stream.
type Player struct {
	stream  *Stream
	started bool
	mutex   sync.Mutex
}

// NewPlayer returns a headless player.
func NewPlayer(stream *Stream) (*Player, error) {
	control.Logger().WithFields(logrus.Fields{
		"function": "NewPlayer",
		"backend":  "headless",
	}).Info("Audio device opened")
	return &Player{stream: stream}, nil
}

// Start marks playback as running.
func (p *Player) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.started = true
}

// Stop marks playback as stopped.
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.started = false
}

// Close stops playback.
func (p *Player) Close() error {
	p.Stop()
	return nil
}

// IsStarted reports whether playback is running.
func (p *Player) IsStarted() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.started
}

// Err always returns nil.
func (p *Player) Err() error { return nil }
