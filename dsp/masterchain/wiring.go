package masterchain

import (
	"errors"
	"fmt"
)

// ErrInvalidWiring is returned when a wiring table does not describe a
// usable signal path.
var ErrInvalidWiring = errors.New("masterchain: invalid wiring")

// Edge connects the output of From to input Port of To. Only mixers have
// a second input; port 0 is the dry side and port 1 the wet side.
type Edge struct {
	From StageID
	To   StageID
	Port int
}

var defaultWiring = []Edge{
	{StageSource, StageInputGain, 0},
	{StageInputGain, StageCompressor, 0},
	{StageCompressor, StageDriveSplit, 0},
	{StageDriveSplit, StageDriveMix, 0},
	{StageDriveSplit, StageBias, 0},
	{StageBias, StageShaper, 0},
	{StageShaper, StageDriveMix, 1},
	{StageDriveMix, StageTone, 0},
	{StageTone, StageEQLow, 0},
	{StageEQLow, StageEQMid, 0},
	{StageEQMid, StageEQHigh, 0},
	{StageEQHigh, StageEQAir, 0},
	{StageEQAir, StageWidth, 0},
	{StageWidth, StagePhase, 0},
	{StagePhase, StageReverbSplit, 0},
	{StageReverbSplit, StageReverbMix, 0},
	{StageReverbSplit, StageReverb, 0},
	{StageReverb, StageReverbMix, 1},
	{StageReverbMix, StageOutputGain, 0},
	{StageOutputGain, StageSink, 0},
}

// Wiring returns a copy of the master chain wiring table.
func Wiring() []Edge {
	out := make([]Edge, len(defaultWiring))
	copy(out, defaultWiring)
	return out
}

// topology is a compiled wiring table.
type topology struct {
	// order lists every stage once, source first, each stage after all of
	// its inputs.
	order []StageID
	// inputs holds the source stage of each input port.
	inputs [][2]StageID
	// outputs holds the stages fed by each stage.
	outputs [][]StageID
}

// compile validates edges against stages and sorts them topologically
// (Kahn's algorithm).
//
// Every stage must have exactly the inputs and outputs its kind declares,
// there must be one source and one sink, and the graph must be acyclic.
// Mixers are the only stages with two inputs, so under these rules the two
// branches of every split first meet again at a mixer.
func compile(stages []Stage, edges []Edge) (*topology, error) {
	n := len(stages)
	for i, s := range stages {
		if int(s.ID) != i {
			return nil, fmt.Errorf("%w: stage %q at index %d has id %d", ErrInvalidWiring, s.Name, i, s.ID)
		}
	}

	inputs := make([][2]StageID, n)
	outputs := make([][]StageID, n)
	inCount := make([]int, n)
	filled := make([][2]bool, n)

	for _, e := range edges {
		if int(e.From) < 0 || int(e.From) >= n || int(e.To) < 0 || int(e.To) >= n {
			return nil, fmt.Errorf("%w: edge %d->%d references an unknown stage", ErrInvalidWiring, e.From, e.To)
		}

		if e.From == e.To {
			return nil, fmt.Errorf("%w: stage %q feeds itself", ErrInvalidWiring, stages[e.From].Name)
		}

		wantIn, _ := stages[e.To].Kind.arity()
		if e.Port < 0 || e.Port >= wantIn {
			return nil, fmt.Errorf("%w: stage %q has no input port %d", ErrInvalidWiring, stages[e.To].Name, e.Port)
		}

		if filled[e.To][e.Port] {
			return nil, fmt.Errorf("%w: input port %d of %q is connected twice", ErrInvalidWiring, e.Port, stages[e.To].Name)
		}

		filled[e.To][e.Port] = true
		inputs[e.To][e.Port] = e.From
		inCount[e.To]++
		outputs[e.From] = append(outputs[e.From], e.To)
	}

	sources, sinks := 0, 0

	for i, s := range stages {
		wantIn, wantOut := s.Kind.arity()
		if inCount[i] != wantIn {
			return nil, fmt.Errorf("%w: stage %q has %d inputs, want %d", ErrInvalidWiring, s.Name, inCount[i], wantIn)
		}

		if len(outputs[i]) != wantOut {
			return nil, fmt.Errorf("%w: stage %q has %d outputs, want %d", ErrInvalidWiring, s.Name, len(outputs[i]), wantOut)
		}

		switch s.Kind {
		case KindSource:
			sources++
		case KindSink:
			sinks++
		}
	}

	if sources != 1 || sinks != 1 {
		return nil, fmt.Errorf("%w: %d sources and %d sinks, want one of each", ErrInvalidWiring, sources, sinks)
	}

	indegree := make([]int, n)
	copy(indegree, inCount)

	queue := make([]StageID, 0, n)

	for i := range stages {
		if indegree[i] == 0 {
			queue = append(queue, StageID(i))
		}
	}

	order := make([]StageID, 0, n)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		order = append(order, id)
		for _, to := range outputs[id] {
			indegree[to]--
			if indegree[to] == 0 {
				queue = append(queue, to)
			}
		}
	}

	if len(order) != n {
		return nil, fmt.Errorf("%w: contains cycle", ErrInvalidWiring)
	}

	return &topology{order: order, inputs: inputs, outputs: outputs}, nil
}
