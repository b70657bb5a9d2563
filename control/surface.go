package control

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-tonechain/dsp/effectchain"
	"github.com/cwbudde/algo-tonechain/dsp/masterchain"
	"github.com/cwbudde/algo-tonechain/dsp/stream"
)

var (
	// ErrUnknownControl is returned for names that address neither a master
	// control nor a pedal parameter.
	ErrUnknownControl = errors.New("control: unknown control")
	// ErrInvalidValue is returned when a textual value cannot be parsed.
	ErrInvalidValue = errors.New("control: invalid value")
)

// BypassParam addresses the bypass switch of a pedal: "<pedal>.bypass".
const BypassParam = "bypass"

// Surface dispatches named control changes to a master chain and to the
// pedal board in front of it.
//
// Master controls use the names in this package (Input, Drive, ...). Pedal
// parameters are addressed as "<pedal id>.<param>". All methods are safe
// to call from any goroutine except the audio thread.
type Surface struct {
	chain    *masterchain.Chain
	registry *effectchain.Registry
	board    atomic.Pointer[effectchain.Board]
}

// NewSurface creates a surface for chain with an empty pedal board. A nil
// registry uses effectchain.DefaultRegistry.
func NewSurface(chain *masterchain.Chain, registry *effectchain.Registry) (*Surface, error) {
	if chain == nil {
		return nil, errors.New("control: nil chain")
	}
	if registry == nil {
		registry = effectchain.DefaultRegistry()
	}

	s := &Surface{chain: chain, registry: registry}

	board, err := effectchain.Build(s.context(), registry, nil)
	if err != nil {
		return nil, fmt.Errorf("control: %w", err)
	}
	s.board.Store(board)

	return s, nil
}

// Chain returns the master chain.
func (s *Surface) Chain() *masterchain.Chain { return s.chain }

// Registry returns the processor registry used for pedal boards.
func (s *Surface) Registry() *effectchain.Registry { return s.registry }

// Board returns the current pedal board. The audio thread reads it once
// per block.
func (s *Surface) Board() *effectchain.Board { return s.board.Load() }

func (s *Surface) context() effectchain.Context {
	return effectchain.Context{SampleRate: s.chain.SampleRate()}
}

// LoadBoard builds a new pedal board and swaps it in. The previous board
// stays active when the build fails.
func (s *Surface) LoadBoard(pedals []effectchain.Params) error {
	board, err := effectchain.Build(s.context(), s.registry, pedals)
	if err != nil {
		Logger().WithFields(logrus.Fields{
			"function": "LoadBoard",
			"pedals":   len(pedals),
			"error":    err.Error(),
		}).Warn("Pedal board rejected")
		return fmt.Errorf("control: %w", err)
	}

	s.board.Store(board)

	Logger().WithFields(logrus.Fields{
		"function": "LoadBoard",
		"pedals":   board.Len(),
	}).Debug("Pedal board loaded")
	return nil
}

// Set applies a numeric value to a named control. Sliders clamp, switches
// are on for v >= 0.5 and choices round v to an index.
func (s *Surface) Set(name string, v float64) error {
	if e, ok := table[name]; ok {
		s.chain.Update(func(c *masterchain.Controls) { e.set(c, v) })
		return nil
	}

	if err := s.setPedal(name, v); err != nil {
		Logger().WithFields(logrus.Fields{
			"function": "Set",
			"name":     name,
			"value":    v,
			"error":    err.Error(),
		}).Warn("Control change rejected")
		return err
	}
	return nil
}

func (s *Surface) setPedal(name string, v float64) error {
	host, param, err := s.pedal(name)
	if err != nil {
		return err
	}

	if param == BypassParam {
		host.SetBypass(isOn(v))
		return nil
	}

	if err := host.Set(param, v); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownControl, err)
	}
	return nil
}

// pedal resolves "<pedal id>.<param>" against the current board.
func (s *Surface) pedal(name string) (*stream.Host, string, error) {
	id, param, ok := strings.Cut(name, ".")
	if !ok || id == "" || param == "" {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}

	host := s.Board().Find(id)
	if host == nil {
		return nil, "", fmt.Errorf("%w: no pedal %q", ErrUnknownControl, id)
	}
	return host, param, nil
}

// Get returns the current value of a named control, in the same units Set
// accepts.
func (s *Surface) Get(name string) (float64, error) {
	if e, ok := table[name]; ok {
		return e.get(s.chain.Controls()), nil
	}

	host, param, err := s.pedal(name)
	if err != nil {
		return 0, err
	}
	if param == BypassParam {
		return boolValue(host.Bypassed()), nil
	}

	v, err := host.Value(param)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnknownControl, err)
	}
	return v, nil
}

// SetString parses value and applies it. Choices accept their labels
// ("fast", "hall"), switches accept strconv.ParseBool forms and every
// control accepts a number.
func (s *Surface) SetString(name, value string) error {
	v, err := parseValue(name, value)
	if err != nil {
		return err
	}
	return s.Set(name, v)
}

// Apply parses and applies one "name=value" assignment.
func (s *Surface) Apply(assignment string) error {
	name, value, ok := strings.Cut(assignment, "=")
	if !ok {
		return fmt.Errorf("%w: %q is not name=value", ErrInvalidValue, assignment)
	}
	return s.SetString(strings.TrimSpace(name), strings.TrimSpace(value))
}

func parseValue(name, value string) (float64, error) {
	if d, ok := Lookup(name); ok {
		switch d.Kind {
		case Choice:
			if i := d.choiceIndex(strings.ToLower(value)); i >= 0 {
				return float64(i), nil
			}
		case Switch:
			if on, err := strconv.ParseBool(value); err == nil {
				return boolValue(on), nil
			}
		}
	} else if strings.HasSuffix(name, "."+BypassParam) {
		if on, err := strconv.ParseBool(value); err == nil {
			return boolValue(on), nil
		}
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, name, value)
	}
	return v, nil
}

// Names lists every addressable control: master controls followed by the
// parameters and bypass switch of each pedal in board order.
func (s *Surface) Names() []string {
	descs := Descriptors()
	names := make([]string, 0, len(descs))
	for _, d := range descs {
		names = append(names, d.Name)
	}

	board := s.Board()
	for i := range board.Len() {
		h := board.Pedal(i)
		for _, d := range h.Params() {
			names = append(names, h.Name()+"."+d.Name)
		}
		names = append(names, h.Name()+"."+BypassParam)
	}
	return names
}

// SetSampleRate moves the master chain and the pedal board to a new rate.
// Call while the stream is stopped.
func (s *Surface) SetSampleRate(sampleRate float64) error {
	if err := s.chain.SetSampleRate(sampleRate); err != nil {
		return err
	}
	if err := s.Board().SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("control: %w", err)
	}

	Logger().WithFields(logrus.Fields{
		"function":    "SetSampleRate",
		"sample_rate": sampleRate,
	}).Info("Sample rate changed")
	return nil
}

// Reset clears the signal state of the pedal board and the master chain.
func (s *Surface) Reset() {
	s.Board().Reset()
	s.chain.Reset()
}
