package masterchain

// StageID indexes a stage in the fixed master chain.
type StageID int

// Stages in signal order.
const (
	StageSource StageID = iota
	StageInputGain
	StageCompressor
	StageDriveSplit
	StageBias
	StageShaper
	StageDriveMix
	StageTone
	StageEQLow
	StageEQMid
	StageEQHigh
	StageEQAir
	StageWidth
	StagePhase
	StageReverbSplit
	StageReverb
	StageReverbMix
	StageOutputGain
	StageSink

	numStages
)

// Kind is the processing category of a stage. It fixes how many inputs
// and outputs the stage has.
type Kind int

const (
	KindSource Kind = iota
	KindSink
	KindGain
	KindCompressor
	KindSplit
	KindOffset
	KindWaveshaper
	KindMixer
	KindFilter
	KindStereo
	KindConvolver
)

// Stage describes one entry of the stage table.
type Stage struct {
	ID   StageID
	Name string
	Kind Kind
}

var stageTable = [numStages]Stage{
	{StageSource, "source", KindSource},
	{StageInputGain, "input", KindGain},
	{StageCompressor, "compressor", KindCompressor},
	{StageDriveSplit, "drive-split", KindSplit},
	{StageBias, "bias", KindOffset},
	{StageShaper, "shaper", KindWaveshaper},
	{StageDriveMix, "drive-mix", KindMixer},
	{StageTone, "tone", KindFilter},
	{StageEQLow, "eq-low", KindFilter},
	{StageEQMid, "eq-mid", KindFilter},
	{StageEQHigh, "eq-high", KindFilter},
	{StageEQAir, "eq-air", KindFilter},
	{StageWidth, "width", KindStereo},
	{StagePhase, "phase", KindGain},
	{StageReverbSplit, "reverb-split", KindSplit},
	{StageReverb, "reverb", KindConvolver},
	{StageReverbMix, "reverb-mix", KindMixer},
	{StageOutputGain, "output", KindGain},
	{StageSink, "sink", KindSink},
}

// Stages returns a copy of the stage table.
func Stages() []Stage {
	out := make([]Stage, len(stageTable))
	copy(out, stageTable[:])
	return out
}

func (id StageID) valid() bool { return id >= 0 && id < numStages }

func (id StageID) String() string {
	if !id.valid() {
		return "invalid"
	}
	return stageTable[id].Name
}

// Kind returns the kind of stage id.
func (id StageID) Kind() Kind {
	if !id.valid() {
		return KindSource
	}
	return stageTable[id].Kind
}

// arity returns the number of inputs and outputs of a kind.
func (k Kind) arity() (inputs, outputs int) {
	switch k {
	case KindSource:
		return 0, 1
	case KindSink:
		return 1, 0
	case KindSplit:
		return 1, 2
	case KindMixer:
		return 2, 1
	default:
		return 1, 1
	}
}
