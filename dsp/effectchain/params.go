package effectchain

import (
	"fmt"
	"maps"
	"slices"
)

// Params describes one pedal on a board.
type Params struct {
	ID       string
	Type     string
	Bypassed bool
	Num      map[string]float64
}

// PedalID returns ID, or "<type>-<index>" for an unnamed pedal.
func (p Params) PedalID(index int) string {
	if p.ID != "" {
		return p.ID
	}
	return fmt.Sprintf("%s-%d", p.Type, index)
}

// Names returns the parameter names set in Num in sorted order.
func (p Params) Names() []string {
	return slices.Sorted(maps.Keys(p.Num))
}

// Clone returns a copy that shares no map with p.
func (p Params) Clone() Params {
	p.Num = maps.Clone(p.Num)
	return p
}
