// Command tonechain runs a synthetic instrument signal through the pedal
// board and master chain, rendering to a WAV file or playing it live.
//
// Usage:
//
//	tonechain [flags]
//
// Examples:
//
//	tonechain -o clean.wav
//	tonechain -preset crunch.yaml -source pluck -freq 82.4 -o crunch.wav
//	tonechain -set drive=70 -set mix=100 -set reverb_type=hall -play
//	tonechain -preset crunch.yaml -set depth=40 -save crunch-wet.yaml
//	tonechain -info
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-tonechain/audio"
	"github.com/cwbudde/algo-tonechain/control"
	"github.com/cwbudde/algo-tonechain/dsp/effectchain"
	"github.com/cwbudde/algo-tonechain/dsp/masterchain"
	"github.com/cwbudde/algo-tonechain/dsp/param"
)

type options struct {
	preset  string
	save    string
	output  string
	play    bool
	info    bool
	verbose bool
	source  string
	freq    float64
	level   float64
	seconds float64
	rate    float64
	seed    uint64
	sets    []string
}

func main() {
	var o options
	flag.StringVar(&o.preset, "preset", "", "YAML preset to load")
	flag.StringVar(&o.save, "save", "", "write the resulting settings as a YAML preset")
	flag.StringVar(&o.output, "o", "", "render to this WAV file (32-bit float)")
	flag.BoolVar(&o.play, "play", false, "play live on the default output device")
	flag.BoolVar(&o.info, "info", false, "print CPU features, controls and processors")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.StringVar(&o.source, "source", "pluck", "input signal: pluck, tone or silence")
	flag.Float64Var(&o.freq, "freq", 110, "input pitch in Hz")
	flag.Float64Var(&o.level, "level", 0.5, "input peak level")
	flag.Float64Var(&o.seconds, "seconds", 4, "render or playback length")
	flag.Float64Var(&o.rate, "rate", 48000, "sample rate in Hz")
	flag.Uint64Var(&o.seed, "seed", 1, "pluck noise seed")
	flag.Func("set", "control assignment name=value, repeatable (see -info)", func(s string) error {
		o.sets = append(o.sets, s)
		return nil
	})
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tonechain [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a synthetic instrument through the pedal board and master chain.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tonechain -o clean.wav\n")
		fmt.Fprintf(os.Stderr, "  tonechain -preset crunch.yaml -source pluck -freq 82.4 -o crunch.wav\n")
		fmt.Fprintf(os.Stderr, "  tonechain -set drive=70 -set mix=100 -set reverb_type=hall -play\n")
		fmt.Fprintf(os.Stderr, "  tonechain -info\n")
	}
	flag.Parse()

	if o.verbose {
		control.Logger().SetLevel(logrus.DebugLevel)
	}

	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	if o.info {
		return printInfo()
	}

	engine, err := audio.New(masterchain.WithSampleRate(o.rate))
	if err != nil {
		return err
	}
	surface := engine.Surface()

	if o.preset != "" {
		p, err := control.LoadPreset(o.preset)
		if err != nil {
			return err
		}
		if err := p.Apply(surface); err != nil {
			return err
		}
	}
	for _, s := range o.sets {
		if err := surface.Apply(s); err != nil {
			return err
		}
	}
	engine.Reset()

	if o.save != "" {
		name := strings.TrimSuffix(filepath.Base(o.save), filepath.Ext(o.save))
		if err := control.Capture(surface, name).Save(o.save); err != nil {
			return err
		}
	}

	src, err := newSource(o)
	if err != nil {
		return err
	}

	switch {
	case o.play:
		return play(engine, src, o.seconds)
	case o.output != "":
		return render(engine, src, o)
	case o.save == "":
		flag.Usage()
		return fmt.Errorf("nothing to do: use -o, -play, -save or -info")
	}
	return nil
}

func newSource(o options) (audio.Source, error) {
	switch o.source {
	case "pluck":
		return audio.NewPluck(o.freq, o.level, 0.996, 1, o.rate, o.seed)
	case "tone":
		return audio.NewTone(o.freq, o.level, o.rate)
	case "silence":
		return audio.Silence{}, nil
	default:
		return nil, fmt.Errorf("unknown source %q", o.source)
	}
}

func render(engine *audio.Engine, src audio.Source, o options) error {
	frames := int(o.seconds * o.rate)
	left, right := audio.Render(engine, src, frames)

	f, err := os.Create(o.output)
	if err != nil {
		return err
	}
	if err := audio.WriteWAV(f, left, right, int(o.rate)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	meter := engine.Surface().Chain().Meter()
	control.Logger().WithFields(logrus.Fields{
		"function":          "render",
		"path":              o.output,
		"frames":            frames,
		"peak":              audio.Peak(left, right),
		"gain_reduction_db": meter.GainReductionDB,
	}).Info("Render complete")
	return nil
}

func play(engine *audio.Engine, src audio.Source, seconds float64) error {
	player, err := audio.NewPlayer(audio.NewStream(engine, src))
	if err != nil {
		return err
	}
	defer player.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	player.Start()
	select {
	case <-time.After(time.Duration(seconds * float64(time.Second))):
	case <-interrupt:
	}

	// Five time constants of the mute ramp reach silence.
	engine.SetMuted(true)
	time.Sleep(time.Duration(5 * param.DefaultTimeConstant * float64(time.Second)))
	player.Stop()
	return player.Err()
}

func printInfo() error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "CPU\t%+v\n\n", cpu.DetectFeatures())

	fmt.Fprintf(tw, "Control\tKind\tChoices\n")
	fmt.Fprintf(tw, "-------\t----\t-------\n")
	for _, d := range control.Descriptors() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.Kind, strings.Join(d.Choices, ","))
	}

	reg := effectchain.DefaultRegistry()
	fmt.Fprintf(tw, "\nPedal\tParam\tRange\tDefault\n")
	fmt.Fprintf(tw, "-----\t-----\t-----\t-------\n")
	for _, name := range reg.Names() {
		proc, err := reg.New(name, effectchain.Context{SampleRate: 48000})
		if err != nil {
			return err
		}
		for _, p := range proc.Params() {
			fmt.Fprintf(tw, "%s\t%s\t%g..%g\t%g\n", name, p.Name, p.Min, p.Max, p.Default)
		}
	}

	return tw.Flush()
}
