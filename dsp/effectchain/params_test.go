package effectchain

import (
	"slices"
	"testing"
)

func TestParamsPedalID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p     Params
		index int
		want  string
	}{
		{Params{ID: "lead", Type: TypeWah}, 3, "lead"},
		{Params{Type: TypeWah}, 3, "wah-3"},
		{Params{Type: TypeOctave}, 0, "octave-0"},
	}
	for _, tt := range tests {
		if got := tt.p.PedalID(tt.index); got != tt.want {
			t.Errorf("PedalID(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestParamsNamesSorted(t *testing.T) {
	t.Parallel()

	p := Params{Num: map[string]float64{"mix": 1, "auto": 0.5, "sweep": 0.2}}
	if got := p.Names(); !slices.Equal(got, []string{"auto", "mix", "sweep"}) {
		t.Fatalf("Names() = %v", got)
	}
	if got := (Params{}).Names(); len(got) != 0 {
		t.Fatalf("Names() of empty params = %v", got)
	}
}

func TestParamsClone(t *testing.T) {
	t.Parallel()

	p := Params{ID: "a", Type: TypeRotary, Num: map[string]float64{"fast": 1}}
	c := p.Clone()
	c.Num["fast"] = 0

	if p.Num["fast"] != 1 {
		t.Fatal("Clone shares the parameter map")
	}
	if c.ID != p.ID || c.Type != p.Type {
		t.Fatalf("Clone = %+v", c)
	}
	if (Params{}).Clone().Num != nil {
		t.Fatal("Clone of nil map should stay nil")
	}
}
