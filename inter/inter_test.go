package inter

import "testing"

func TestPredictMV16x8TopShortcut(t *testing.T) {
	b := Neighbour{MV: MV{X: 4, Y: -2}, RefIdx: 0, Available: true}
	a := Neighbour{Available: false}
	c := Neighbour{Available: false}
	got := PredictMV(PartGeometry{Width: 16, Height: 8, PartIdx: 0}, a, b, c, 0)
	if got != b.MV {
		t.Fatalf("got %+v, want %+v", got, b.MV)
	}
}

func TestPredictMV8x16LeftShortcut(t *testing.T) {
	a := Neighbour{MV: MV{X: 1, Y: 1}, RefIdx: 2, Available: true}
	b := Neighbour{Available: false}
	c := Neighbour{Available: false}
	got := PredictMV(PartGeometry{Width: 8, Height: 16, PartIdx: 0}, a, b, c, 2)
	if got != a.MV {
		t.Fatalf("got %+v, want %+v", got, a.MV)
	}
}

func TestPredictMVSingleRefMatch(t *testing.T) {
	a := Neighbour{MV: MV{X: 3, Y: 3}, RefIdx: 0, Available: true}
	b := Neighbour{MV: MV{X: 9, Y: 9}, RefIdx: 1, Available: true}
	c := Neighbour{MV: MV{X: 9, Y: 9}, RefIdx: 1, Available: true}
	got := PredictMV(PartGeometry{Width: 8, Height: 8, PartIdx: 3}, a, b, c, 0)
	if got != a.MV {
		t.Fatalf("got %+v, want %+v", got, a.MV)
	}
}

func TestPredictMVMedianFallback(t *testing.T) {
	a := Neighbour{MV: MV{X: 1, Y: 4}, RefIdx: 0, Available: true}
	b := Neighbour{MV: MV{X: 2, Y: 5}, RefIdx: 0, Available: true}
	c := Neighbour{MV: MV{X: 9, Y: 6}, RefIdx: 0, Available: true}
	got := PredictMV(PartGeometry{Width: 8, Height: 8, PartIdx: 3}, a, b, c, 0)
	want := MV{X: 2, Y: 5}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestPredictMVSubstitutesAWhenBAndCUnavailable(t *testing.T) {
	a := Neighbour{MV: MV{X: 7, Y: -3}, RefIdx: 0, Available: true}
	b := Neighbour{Available: false}
	c := Neighbour{Available: false}
	got := PredictMV(PartGeometry{Width: 8, Height: 8, PartIdx: 3}, a, b, c, 0)
	if got != a.MV {
		t.Fatalf("got %+v, want %+v", got, a.MV)
	}
}

func TestDefaultPredBiAverage(t *testing.T) {
	got := DefaultPred(10, 20, true, true)
	if got != 15 {
		t.Errorf("got %d, want 15", got)
	}
}

func TestDefaultPredUniL0(t *testing.T) {
	got := DefaultPred(42, 0, true, false)
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestExplicitPredUniClips(t *testing.T) {
	got := ExplicitPredUni(255, 5, 64, 10, 255)
	if got != 255 {
		t.Errorf("got %d, want 255 (clipped)", got)
	}
}

func TestExplicitPredBiEqualWeights(t *testing.T) {
	// logWD=5 (1<<5=32), w0=w1=32 mimics the unweighted default case.
	got := ExplicitPredBi(10, 20, 5, 32, 32, 0, 0, 255)
	if got != 15 {
		t.Errorf("got %d, want 15", got)
	}
}

func TestImplicitWeightsLongTermDefaults(t *testing.T) {
	w0, w1, logWD := ImplicitWeights(10, 0, 20, true)
	if w0 != 32 || w1 != 32 || logWD != 5 {
		t.Errorf("got (%d,%d,%d), want (32,32,5)", w0, w1, logWD)
	}
}

func TestImplicitWeightsEquidistant(t *testing.T) {
	// currPOC exactly midway between poc0 and poc1 should yield equal
	// weights.
	w0, w1, _ := ImplicitWeights(10, 0, 20, false)
	if w0 != w1 {
		t.Errorf("equidistant POC should give equal weights, got w0=%d w1=%d", w0, w1)
	}
}
