package control

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-tonechain/dsp/effects/dynamics"
	"github.com/cwbudde/algo-tonechain/dsp/effects/reverb"
	"github.com/cwbudde/algo-tonechain/dsp/mapping"
	"github.com/cwbudde/algo-tonechain/dsp/masterchain"
)

// Kind tells how a control interprets its numeric value.
type Kind int

const (
	// Slider is a normalized 0..100 value.
	Slider Kind = iota
	// Switch is on for values >= 0.5.
	Switch
	// Choice selects an enumeration by its rounded index.
	Choice
)

func (k Kind) String() string {
	switch k {
	case Slider:
		return "slider"
	case Switch:
		return "switch"
	case Choice:
		return "choice"
	default:
		return "unknown"
	}
}

// Master control names.
const (
	Input      = "input"
	Width      = "width"
	Clip       = "clip"
	PhaseLeft  = "phase_left"
	PhaseRight = "phase_right"
	EQLow      = "eq_low"
	EQMid      = "eq_mid"
	EQHigh     = "eq_high"
	EQAir      = "eq_air"
	Speed      = "speed"
	Attack     = "attack"
	Release    = "release"
	Ratio      = "ratio"
	Threshold  = "threshold"
	Knee       = "knee"
	Makeup     = "makeup"
	Drive      = "drive"
	Mix        = "mix"
	Bias       = "bias"
	Tone       = "tone"
	Texture    = "texture"
	HQ         = "hq"
	Depth      = "depth"
	ReverbType = "reverb_type"
	Stereo     = "stereo"
	Master     = "master"
	InputPanel = "input_panel"
	EQPanel    = "eq_panel"
	DrivePanel = "drive_panel"
)

// Descriptor describes one named master control.
type Descriptor struct {
	Name    string
	Kind    Kind
	Choices []string // Choice only, indexed by value
}

type entry struct {
	Descriptor
	set func(*masterchain.Controls, float64)
	get func(masterchain.Controls) float64
}

func slider(name string, field func(*masterchain.Controls) *mapping.Normalized) entry {
	return entry{
		Descriptor: Descriptor{Name: name, Kind: Slider},
		set:        func(c *masterchain.Controls, v float64) { *field(c) = mapping.Norm(v) },
		get:        func(c masterchain.Controls) float64 { return field(&c).Float() },
	}
}

func flag(name string, field func(*masterchain.Controls) *bool) entry {
	return entry{
		Descriptor: Descriptor{Name: name, Kind: Switch},
		set:        func(c *masterchain.Controls, v float64) { *field(c) = isOn(v) },
		get:        func(c masterchain.Controls) float64 { return boolValue(*field(&c)) },
	}
}

func panel(name string, on func(*masterchain.Controls, bool), field func(*masterchain.Controls) *bool) entry {
	return entry{
		Descriptor: Descriptor{Name: name, Kind: Switch},
		set:        func(c *masterchain.Controls, v float64) { on(c, isOn(v)) },
		get:        func(c masterchain.Controls) float64 { return boolValue(*field(&c)) },
	}
}

func isOn(v float64) bool { return v >= 0.5 }

func boolValue(on bool) float64 {
	if on {
		return 1
	}
	return 0
}

// index rounds v to an enumeration index; NaN maps to -1.
func index(v float64) int {
	if math.IsNaN(v) || v < -1 || v > 1<<16 {
		return -1
	}
	return int(math.Round(v))
}

var speedChoices = []string{dynamics.SpeedFast.String(), dynamics.SpeedSlow.String()}

var reverbChoices = []string{reverb.Room.String(), reverb.Plate.String(), reverb.Hall.String()}

var table = buildTable()

func buildTable() map[string]entry {
	entries := []entry{
		slider(Input, func(c *masterchain.Controls) *mapping.Normalized { return &c.Input }),
		slider(Width, func(c *masterchain.Controls) *mapping.Normalized { return &c.Width }),
		flag(Clip, func(c *masterchain.Controls) *bool { return &c.Clip }),
		flag(PhaseLeft, func(c *masterchain.Controls) *bool { return &c.PhaseL }),
		flag(PhaseRight, func(c *masterchain.Controls) *bool { return &c.PhaseR }),
		slider(EQLow, func(c *masterchain.Controls) *mapping.Normalized { return &c.EQ[masterchain.BandLow] }),
		slider(EQMid, func(c *masterchain.Controls) *mapping.Normalized { return &c.EQ[masterchain.BandMid] }),
		slider(EQHigh, func(c *masterchain.Controls) *mapping.Normalized { return &c.EQ[masterchain.BandHigh] }),
		slider(EQAir, func(c *masterchain.Controls) *mapping.Normalized { return &c.EQ[masterchain.BandAir] }),
		{
			Descriptor: Descriptor{Name: Speed, Kind: Choice, Choices: speedChoices},
			set: func(c *masterchain.Controls, v float64) {
				c.SetSpeed(dynamics.SpeedMode(index(v)))
			},
			get: func(c masterchain.Controls) float64 { return float64(c.Speed) },
		},
		slider(Attack, func(c *masterchain.Controls) *mapping.Normalized { return &c.Attack }),
		slider(Release, func(c *masterchain.Controls) *mapping.Normalized { return &c.Release }),
		slider(Ratio, func(c *masterchain.Controls) *mapping.Normalized { return &c.Ratio }),
		slider(Threshold, func(c *masterchain.Controls) *mapping.Normalized { return &c.Threshold }),
		slider(Knee, func(c *masterchain.Controls) *mapping.Normalized { return &c.Knee }),
		slider(Makeup, func(c *masterchain.Controls) *mapping.Normalized { return &c.Makeup }),
		slider(Drive, func(c *masterchain.Controls) *mapping.Normalized { return &c.Drive }),
		slider(Mix, func(c *masterchain.Controls) *mapping.Normalized { return &c.Mix }),
		slider(Bias, func(c *masterchain.Controls) *mapping.Normalized { return &c.Bias }),
		slider(Tone, func(c *masterchain.Controls) *mapping.Normalized { return &c.Tone }),
		slider(Texture, func(c *masterchain.Controls) *mapping.Normalized { return &c.Texture }),
		flag(HQ, func(c *masterchain.Controls) *bool { return &c.HQ }),
		slider(Depth, func(c *masterchain.Controls) *mapping.Normalized { return &c.Depth }),
		{
			Descriptor: Descriptor{Name: ReverbType, Kind: Choice, Choices: reverbChoices},
			set: func(c *masterchain.Controls, v float64) {
				if t := reverb.Type(index(v)); t.Valid() {
					c.ReverbType = t
				}
			},
			get: func(c masterchain.Controls) float64 { return float64(c.ReverbType) },
		},
		flag(Stereo, func(c *masterchain.Controls) *bool { return &c.Stereo }),
		slider(Master, func(c *masterchain.Controls) *mapping.Normalized { return &c.Master }),
		panel(InputPanel, (*masterchain.Controls).SetInputPanel, func(c *masterchain.Controls) *bool { return &c.InputPanel }),
		panel(EQPanel, (*masterchain.Controls).SetEQPanel, func(c *masterchain.Controls) *bool { return &c.EQPanel }),
		panel(DrivePanel, (*masterchain.Controls).SetDrivePanel, func(c *masterchain.Controls) *bool { return &c.DrivePanel }),
	}

	t := make(map[string]entry, len(entries))
	for _, e := range entries {
		t[e.Name] = e
	}
	return t
}

// Descriptors lists every master control sorted by name.
func Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(table))
	for _, e := range table {
		out = append(out, e.Descriptor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the descriptor for a master control name.
func Lookup(name string) (Descriptor, bool) {
	e, ok := table[name]
	return e.Descriptor, ok
}

// choiceIndex maps a choice label to its index.
func (d Descriptor) choiceIndex(label string) int {
	for i, c := range d.Choices {
		if c == label {
			return i
		}
	}
	return -1
}
