package effectchain

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cwbudde/algo-tonechain/dsp/core"
	"github.com/cwbudde/algo-tonechain/dsp/stream"
)

var (
	// ErrDuplicatePedal is returned when two pedals on a board share an ID.
	ErrDuplicatePedal = errors.New("effectchain: duplicate pedal id")
	// ErrInvalidPedalID is returned for IDs containing a separator of
	// control names ('.' or '=').
	ErrInvalidPedalID = errors.New("effectchain: invalid pedal id")
)

// IDSeparators are the characters control names use around a pedal ID
// ("<id>.<param>", "name=value").
const IDSeparators = ".="

// Board is an ordered series of hosted stream processors. The output of
// each pedal feeds the next one; the board output feeds the master chain.
//
// The pedal list is fixed at Build time. Parameter changes and bypass go
// through the hosts and are safe from the control thread; Process is
// called from the audio thread only.
type Board struct {
	ctx    Context
	ids    []string
	types  []string
	pedals []*stream.Host
}

// Build creates a board from a pedal list. Every pedal type must be
// registered and every parameter name must be declared by its processor.
// Pedals without an ID are named after their type and index; IDs must be
// unique and free of IDSeparators.
func Build(ctx Context, registry *Registry, pedals []Params) (*Board, error) {
	if err := core.ValidateSampleRate(ctx.SampleRate); err != nil {
		return nil, fmt.Errorf("effectchain: %w", err)
	}

	if registry == nil {
		registry = DefaultRegistry()
	}

	b := &Board{
		ctx:    ctx,
		ids:    make([]string, 0, len(pedals)),
		types:  make([]string, 0, len(pedals)),
		pedals: make([]*stream.Host, 0, len(pedals)),
	}

	for i, p := range pedals {
		id := p.PedalID(i)
		if strings.ContainsAny(id, IDSeparators) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPedalID, id)
		}
		if slices.Contains(b.ids, id) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePedal, id)
		}

		proc, err := registry.New(p.Type, ctx)
		if err != nil {
			return nil, err
		}

		host := stream.NewHost(id, proc)
		for _, name := range p.Names() {
			v := p.Num[name]
			if !core.Finite(v) {
				return nil, fmt.Errorf("effectchain: pedal %q: %s is not finite", id, name)
			}
			if err := host.Set(name, v); err != nil {
				return nil, fmt.Errorf("effectchain: pedal %q: %w", id, err)
			}
		}
		host.SetBypass(p.Bypassed)

		b.ids = append(b.ids, id)
		b.types = append(b.types, p.Type)
		b.pedals = append(b.pedals, host)
	}

	return b, nil
}

// Len returns the number of pedals.
func (b *Board) Len() int { return len(b.pedals) }

// Pedal returns the host at position i, or nil.
func (b *Board) Pedal(i int) *stream.Host {
	if i < 0 || i >= len(b.pedals) {
		return nil
	}
	return b.pedals[i]
}

// Find returns the host with the given ID, or nil.
func (b *Board) Find(id string) *stream.Host {
	for i, pid := range b.ids {
		if pid == id {
			return b.pedals[i]
		}
	}
	return nil
}

// Snapshot returns the current pedal list with the scheduled parameter
// values, suitable for Build.
func (b *Board) Snapshot() []Params {
	out := make([]Params, len(b.pedals))
	for i, h := range b.pedals {
		num := make(map[string]float64, len(h.Params()))
		for _, d := range h.Params() {
			v, _ := h.Value(d.Name)
			num[d.Name] = v
		}
		out[i] = Params{ID: b.ids[i], Type: b.types[i], Bypassed: h.Bypassed(), Num: num}
	}
	return out
}

// Process runs the pedals in series. in and out may alias. An empty out is
// a no-op; an empty in is processed as silence so tails ring out.
func (b *Board) Process(in, out []float64) {
	if len(out) == 0 {
		return
	}

	if len(b.pedals) == 0 {
		core.LoadBlock(out, in, 0)
		return
	}

	b.pedals[0].Process(in, out)
	for _, h := range b.pedals[1:] {
		h.Process(out, out)
	}
}

// Reset clears the signal state of every pedal.
func (b *Board) Reset() {
	for _, h := range b.pedals {
		h.Reset()
	}
}

// SetSampleRate forwards a rate change to every pedal. Call while the
// stream is stopped.
func (b *Board) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("effectchain: %w", err)
	}

	for _, h := range b.pedals {
		if err := h.SetSampleRate(sampleRate); err != nil {
			return fmt.Errorf("effectchain: %w", err)
		}
	}

	b.ctx.SampleRate = sampleRate

	return nil
}

// Context returns the board context.
func (b *Board) Context() Context { return b.ctx }
