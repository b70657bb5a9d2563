package spatial

import (
	"math"
	"testing"
)

func TestNeutralIsExactPassThrough(t *testing.T) {
	g := Neutral()
	for _, fr := range [][2]float64{{0.5, -0.25}, {1, 1}, {-0.3, 0.7}} {
		l, r := g.Process(fr[0], fr[1])
		if math.Abs(l-fr[0]) > 1e-15 || math.Abs(r-fr[1]) > 1e-15 {
			t.Fatalf("Process(%v) = %v, %v", fr, l, r)
		}
	}
}

func TestWidthExtremes(t *testing.T) {
	tests := []struct {
		name         string
		side         float64
		wantL, wantR float64
	}{
		{"mono", 0, 0.25, 0.25},
		{"unchanged", 1, 0.5, 0},
		{"double side", 2, 0.75, -0.25},
	}

	for _, tt := range tests {
		g := Gains{Mid: 1, Side: tt.side, Left: 1, Right: 1}
		l, r := g.Process(0.5, 0)
		if math.Abs(l-tt.wantL) > 1e-12 || math.Abs(r-tt.wantR) > 1e-12 {
			t.Fatalf("%s: got (%v, %v), want (%v, %v)", tt.name, l, r, tt.wantL, tt.wantR)
		}
	}
}

func TestPolarity(t *testing.T) {
	g := Neutral()
	g.Left = Polarity(true)
	g.Right = Polarity(false)
	l, r := g.Process(0.4, 0.2)
	if math.Abs(l+0.4) > 1e-12 || math.Abs(r-0.2) > 1e-12 {
		t.Fatalf("got (%v, %v)", l, r)
	}
}

func TestProcessStereoInPlaceLengthMismatch(t *testing.T) {
	if err := Neutral().ProcessStereoInPlace(make([]float64, 3), make([]float64, 4)); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}

	l := []float64{1, 0}
	r := []float64{0, 1}
	g := Gains{Mid: 1, Side: 0, Left: 1, Right: 1}
	if err := g.ProcessStereoInPlace(l, r); err != nil {
		t.Fatal(err)
	}
	for i := range l {
		if l[i] != 0.5 || r[i] != 0.5 {
			t.Fatalf("mono collapse frame %d = (%v, %v)", i, l[i], r[i])
		}
	}
}
