package control

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-tonechain/dsp/effectchain"
	"github.com/cwbudde/algo-tonechain/dsp/masterchain"
)

// Preset is the persisted flat parameter set of a rig.
//
// Controls holds slider values, Switches the on/off controls. Panels is
// keyed by "input", "eq" and "drive". Speed and Reverb use the labels
// listed by the Speed and ReverbType descriptors. Keys that are absent
// keep their power-on value.
type Preset struct {
	Name     string             `yaml:"name,omitempty"`
	Controls map[string]float64 `yaml:"controls,omitempty"`
	Switches map[string]bool    `yaml:"switches,omitempty"`
	Panels   map[string]bool    `yaml:"panels,omitempty"`
	Speed    string             `yaml:"speed,omitempty"`
	Reverb   string             `yaml:"reverb,omitempty"`
	Pedals   []Pedal            `yaml:"pedals,omitempty"`
}

// Pedal is one entry of the pedal board, in signal order.
type Pedal struct {
	ID     string             `yaml:"id,omitempty"`
	Type   string             `yaml:"type"`
	Bypass bool               `yaml:"bypass,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

var panelNames = map[string]string{
	"input": InputPanel,
	"eq":    EQPanel,
	"drive": DrivePanel,
}

// ReadPreset decodes a YAML preset. Unknown document keys are an error.
func ReadPreset(r io.Reader) (Preset, error) {
	var p Preset

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Preset{}, fmt.Errorf("control: decode preset: %w", err)
	}

	return p, nil
}

// LoadPreset reads a preset file.
func LoadPreset(path string) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, fmt.Errorf("control: %w", err)
	}
	defer f.Close()

	p, err := ReadPreset(f)
	if err != nil {
		return Preset{}, err
	}

	Logger().WithFields(logrus.Fields{
		"function": "LoadPreset",
		"path":     path,
		"name":     p.Name,
		"pedals":   len(p.Pedals),
	}).Info("Preset loaded")
	return p, nil
}

// Write encodes p as YAML.
func (p Preset) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("control: encode preset: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("control: encode preset: %w", err)
	}
	return nil
}

// Save writes p to a file, replacing it.
func (p Preset) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("control: %w", err)
	}

	if err := p.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("control: %w", err)
	}

	Logger().WithFields(logrus.Fields{
		"function": "Save",
		"path":     path,
		"name":     p.Name,
	}).Info("Preset saved")
	return nil
}

// Validate checks every key against the control table and every label
// against its choices. Pedal types and parameters are checked when the
// board is built.
func (p Preset) Validate() error {
	for _, name := range slices.Sorted(maps.Keys(p.Controls)) {
		if d, ok := Lookup(name); !ok || d.Kind != Slider {
			return fmt.Errorf("%w: slider %q", ErrUnknownControl, name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(p.Switches)) {
		if d, ok := Lookup(name); !ok || d.Kind != Switch || isPanel(name) {
			return fmt.Errorf("%w: switch %q", ErrUnknownControl, name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(p.Panels)) {
		if _, ok := panelNames[name]; !ok {
			return fmt.Errorf("%w: panel %q", ErrUnknownControl, name)
		}
	}
	if p.Speed != "" {
		if d, _ := Lookup(Speed); d.choiceIndex(p.Speed) < 0 {
			return fmt.Errorf("%w: speed %q", ErrInvalidValue, p.Speed)
		}
	}
	if p.Reverb != "" {
		if d, _ := Lookup(ReverbType); d.choiceIndex(p.Reverb) < 0 {
			return fmt.Errorf("%w: reverb %q", ErrInvalidValue, p.Reverb)
		}
	}
	return nil
}

func isPanel(name string) bool {
	for _, n := range panelNames {
		if n == name {
			return true
		}
	}
	return false
}

// Board returns the pedal list in effectchain form.
func (p Preset) Board() []effectchain.Params {
	out := make([]effectchain.Params, len(p.Pedals))
	for i, pd := range p.Pedals {
		out[i] = effectchain.Params{ID: pd.ID, Type: pd.Type, Bypassed: pd.Bypass, Num: maps.Clone(pd.Params)}
	}
	return out
}

// Apply replays p through s. The master controls start from their power-on
// values and change as one update; the pedal board is rebuilt first so a
// bad pedal list leaves the rig untouched.
//
// Panels are applied before the values they gate, and the speed preset
// before attack and release, so explicit values win.
func (p Preset) Apply(s *Surface) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.LoadBoard(p.Board()); err != nil {
		return err
	}

	s.chain.Update(func(c *masterchain.Controls) {
		*c = masterchain.DefaultControls()

		for label, on := range p.Panels {
			table[panelNames[label]].set(c, boolValue(on))
		}
		if p.Speed != "" {
			d, _ := Lookup(Speed)
			table[Speed].set(c, float64(d.choiceIndex(p.Speed)))
		}
		if p.Reverb != "" {
			d, _ := Lookup(ReverbType)
			table[ReverbType].set(c, float64(d.choiceIndex(p.Reverb)))
		}
		for name, on := range p.Switches {
			table[name].set(c, boolValue(on))
		}
		for name, v := range p.Controls {
			table[name].set(c, v)
		}
	})

	Logger().WithFields(logrus.Fields{
		"function": "Apply",
		"name":     p.Name,
		"pedals":   len(p.Pedals),
	}).Info("Preset applied")
	return nil
}

// Capture records the current state of s as a preset.
func Capture(s *Surface, name string) Preset {
	ctl := s.chain.Controls()

	p := Preset{
		Name:     name,
		Controls: make(map[string]float64),
		Switches: make(map[string]bool),
		Panels:   make(map[string]bool, len(panelNames)),
	}

	for _, d := range Descriptors() {
		e := table[d.Name]
		v := e.get(ctl)
		switch {
		case d.Kind == Slider:
			p.Controls[d.Name] = v
		case d.Kind == Switch && !isPanel(d.Name):
			p.Switches[d.Name] = isOn(v)
		}
	}
	for label, n := range panelNames {
		p.Panels[label] = isOn(table[n].get(ctl))
	}
	p.Speed = ctl.Speed.String()
	p.Reverb = ctl.ReverbType.String()

	for _, bp := range s.Board().Snapshot() {
		p.Pedals = append(p.Pedals, Pedal{ID: bp.ID, Type: bp.Type, Bypass: bp.Bypassed, Params: bp.Num})
	}
	return p
}
