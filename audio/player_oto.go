//go:build !headless

package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-tonechain/control"
)

// DefaultBufferDuration is the device buffer requested from oto.
const DefaultBufferDuration = 20 * time.Millisecond

// Player plays a Stream on the default output device.
type Player struct {
	ctx     *oto.Context
	player  *oto.Player
	stream  *Stream
	started bool
	mutex   sync.Mutex
}

// NewPlayer opens the output device at the engine sample rate. oto allows
// one context per process.
func NewPlayer(stream *Stream) (*Player, error) {
	rate := int(stream.Engine().SampleRate())

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   DefaultBufferDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: open device: %w", err)
	}
	<-ready

	control.Logger().WithFields(logrus.Fields{
		"function":    "NewPlayer",
		"sample_rate": rate,
		"backend":     "oto",
	}).Info("Audio device opened")

	return &Player{ctx: ctx, player: ctx.NewPlayer(stream), stream: stream}, nil
}

// Start begins playback.
func (p *Player) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started || p.player == nil {
		return
	}
	p.stream.Engine().SetMuted(false)
	p.player.Play()
	p.started = true

	control.Logger().WithFields(logrus.Fields{"function": "Start"}).Info("Playback started")
}

// Stop pauses playback.
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started || p.player == nil {
		return
	}
	p.player.Pause()
	p.started = false

	control.Logger().WithFields(logrus.Fields{"function": "Stop"}).Info("Playback stopped")
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.Stop()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	if err != nil {
		return fmt.Errorf("audio: close player: %w", err)
	}
	return nil
}

// IsStarted reports whether playback is running.
func (p *Player) IsStarted() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.started
}

// Err returns an asynchronous device error, if any.
func (p *Player) Err() error {
	return p.ctx.Err()
}
