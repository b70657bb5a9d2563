package control

import (
	"bytes"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-tonechain/dsp/effectchain"
	"github.com/cwbudde/algo-tonechain/dsp/effects/dynamics"
	"github.com/cwbudde/algo-tonechain/dsp/effects/reverb"
	"github.com/cwbudde/algo-tonechain/dsp/masterchain"
	"github.com/cwbudde/algo-tonechain/dsp/stream"
)

func newTestSurface(t *testing.T) *Surface {
	t.Helper()

	chain, err := masterchain.New(masterchain.WithSampleRate(48000))
	require.NoError(t, err)

	s, err := NewSurface(chain, nil)
	require.NoError(t, err)
	return s
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	l := logrus.New()
	l.SetOutput(buf)
	l.SetLevel(logrus.DebugLevel)
	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })
	return buf
}

func TestNewSurfaceRejectsNilChain(t *testing.T) {
	_, err := NewSurface(nil, nil)
	require.Error(t, err)
}

func TestSurfaceSliders(t *testing.T) {
	s := newTestSurface(t)

	require.NoError(t, s.Set(Drive, 70))
	v, err := s.Get(Drive)
	require.NoError(t, err)
	assert.Equal(t, 70.0, v)
	assert.Equal(t, 70.0, s.Chain().Controls().Drive.Float())

	require.NoError(t, s.Set(EQAir, 250))
	v, err = s.Get(EQAir)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v, "sliders clamp")

	require.NoError(t, s.Set(Master, -3))
	v, err = s.Get(Master)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestSurfaceSwitches(t *testing.T) {
	s := newTestSurface(t)

	require.NoError(t, s.Set(Clip, 1))
	assert.True(t, s.Chain().Controls().Clip)

	require.NoError(t, s.SetString(Stereo, "false"))
	assert.False(t, s.Chain().Controls().Stereo)
	assert.Equal(t, 0.0, s.Chain().Targets().Side)

	require.NoError(t, s.Set(PhaseRight, 0.4))
	assert.False(t, s.Chain().Controls().PhaseR)

	v, err := s.Get(Clip)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestSurfaceChoices(t *testing.T) {
	s := newTestSurface(t)

	require.NoError(t, s.SetString(Speed, "slow"))
	assert.Equal(t, dynamics.SpeedSlow, s.Chain().Controls().Speed)

	require.NoError(t, s.SetString(ReverbType, "HALL"))
	assert.Equal(t, reverb.Hall, s.Chain().Controls().ReverbType)

	require.NoError(t, s.Set(ReverbType, 7))
	assert.Equal(t, reverb.Hall, s.Chain().Controls().ReverbType, "out of range index is ignored")

	require.NoError(t, s.Set(ReverbType, 0.2))
	assert.Equal(t, reverb.Room, s.Chain().Controls().ReverbType)

	_, err := parseValue(Speed, "medium")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestSurfacePanelGating(t *testing.T) {
	s := newTestSurface(t)

	require.NoError(t, s.Set(Mix, 80))
	assert.InDelta(t, 0.8, s.Chain().Targets().DriveWet, 1e-12)

	require.NoError(t, s.Set(DrivePanel, 0))
	assert.Equal(t, 0.0, s.Chain().Targets().DriveWet)

	v, err := s.Get(Mix)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v, "deactivating a panel resets its controls")
}

func TestSurfaceUnknownControl(t *testing.T) {
	s := newTestSurface(t)
	log := captureLog(t)

	for _, name := range []string{"volume", "ghost.drive", ".drive", "wah."} {
		err := s.Set(name, 1)
		assert.ErrorIs(t, err, ErrUnknownControl, name)

		_, err = s.Get(name)
		assert.ErrorIs(t, err, ErrUnknownControl, name)
	}

	assert.Contains(t, log.String(), "Control change rejected")
	assert.Contains(t, log.String(), "ghost.drive")
}

func TestSurfacePedals(t *testing.T) {
	s := newTestSurface(t)

	require.NoError(t, s.LoadBoard([]effectchain.Params{
		{ID: "wah", Type: effectchain.TypeWah},
		{Type: effectchain.TypeOctave},
	}))
	require.Equal(t, 2, s.Board().Len())

	require.NoError(t, s.Set("wah.sweep", 0.8))
	v, err := s.Get("wah.sweep")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, v, 1e-12)

	require.NoError(t, s.Set("wah.sweep", 5))
	v, err = s.Get("wah.sweep")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "pedal parameters clamp to their declared range")

	require.NoError(t, s.SetString("octave-1.bypass", "true"))
	assert.True(t, s.Board().Pedal(1).Bypassed())
	v, err = s.Get("octave-1.bypass")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	err = s.Set("wah.drive", 1)
	assert.ErrorIs(t, err, ErrUnknownControl)
	assert.ErrorIs(t, err, stream.ErrUnknownParam)
}

func TestSurfaceLoadBoardKeepsOldBoardOnError(t *testing.T) {
	s := newTestSurface(t)
	log := captureLog(t)

	require.NoError(t, s.LoadBoard([]effectchain.Params{{ID: "oct", Type: effectchain.TypeOctavia}}))
	old := s.Board()

	err := s.LoadBoard([]effectchain.Params{{Type: "flanger"}})
	require.ErrorIs(t, err, effectchain.ErrUnknownProcessor)
	assert.Same(t, old, s.Board())
	assert.Contains(t, log.String(), "Pedal board rejected")

	err = s.LoadBoard([]effectchain.Params{{Type: effectchain.TypeWah, Num: map[string]float64{"rate": 1}}})
	require.ErrorIs(t, err, stream.ErrUnknownParam)
	assert.Same(t, old, s.Board())

	err = s.LoadBoard([]effectchain.Params{{ID: "wah.front", Type: effectchain.TypeWah}})
	require.ErrorIs(t, err, effectchain.ErrInvalidPedalID)
	assert.Same(t, old, s.Board())
}

func TestSurfaceApply(t *testing.T) {
	s := newTestSurface(t)

	require.NoError(t, s.Apply(" tone = 80 "))
	assert.Equal(t, 80.0, s.Chain().Controls().Tone.Float())

	require.NoError(t, s.Apply("hq=true"))
	assert.True(t, s.Chain().Controls().HQ)

	require.NoError(t, s.Apply("speed=1"))
	assert.Equal(t, dynamics.SpeedSlow, s.Chain().Controls().Speed)
}

func TestSurfaceApplyErrors(t *testing.T) {
	s := newTestSurface(t)

	assert.ErrorIs(t, s.Apply("drive"), ErrInvalidValue)
	assert.ErrorIs(t, s.Apply("drive=loud"), ErrInvalidValue)
	assert.ErrorIs(t, s.Apply("hq=maybe"), ErrInvalidValue)
	assert.ErrorIs(t, s.Apply("loud=1"), ErrUnknownControl)
}

func TestSurfaceNames(t *testing.T) {
	s := newTestSurface(t)
	require.NoError(t, s.LoadBoard([]effectchain.Params{{ID: "wah", Type: effectchain.TypeWah}}))

	names := s.Names()
	assert.Contains(t, names, Master)
	assert.Contains(t, names, ReverbType)
	assert.Contains(t, names, "wah.sweep")
	assert.Contains(t, names, "wah.bypass")
	assert.Len(t, names, len(Descriptors())+5)
}

func TestDescriptors(t *testing.T) {
	descs := Descriptors()
	require.Len(t, descs, 29)
	assert.True(t, sort.SliceIsSorted(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name }))

	d, ok := Lookup(ReverbType)
	require.True(t, ok)
	assert.Equal(t, Choice, d.Kind)
	assert.Equal(t, []string{"room", "plate", "hall"}, d.Choices)

	d, ok = Lookup(DrivePanel)
	require.True(t, ok)
	assert.Equal(t, Switch, d.Kind)
	assert.Equal(t, "switch", d.Kind.String())

	_, ok = Lookup("volume")
	assert.False(t, ok)
}

func TestSurfaceSetSampleRate(t *testing.T) {
	s := newTestSurface(t)
	require.NoError(t, s.LoadBoard([]effectchain.Params{{ID: "vibe", Type: effectchain.TypeUniVibe}}))

	require.NoError(t, s.SetSampleRate(96000))
	assert.Equal(t, 96000.0, s.Chain().SampleRate())
	assert.Equal(t, 96000.0, s.Board().Context().SampleRate)

	require.Error(t, s.SetSampleRate(0))
}
