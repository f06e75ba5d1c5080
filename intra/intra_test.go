package intra

import "testing"

func flatNeighbourhood(size, val int) Neighbourhood {
	top := make([]int, 2*size)
	left := make([]int, size)
	for i := range top {
		top[i] = val
	}
	for i := range left {
		left[i] = val
	}
	return Neighbourhood{
		Size: size, Left: left, LeftOK: true, Top: top, TopOK: true,
		TopLeft: val, TopLeftOK: true, TopRightOK: true,
	}
}

func TestPredict4x4VerticalFlat(t *testing.T) {
	n := flatNeighbourhood(4, 100)
	pred := Predict4x4(Pred4x4Vertical, n)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if pred[y][x] != 100 {
				t.Fatalf("pred[%d][%d] = %d, want 100", y, x, pred[y][x])
			}
		}
	}
}

func TestPredict4x4DCFlat(t *testing.T) {
	n := flatNeighbourhood(4, 50)
	pred := Predict4x4(Pred4x4DC, n)
	if pred[0][0] != 50 {
		t.Errorf("DC pred = %d, want 50", pred[0][0])
	}
}

func TestPredict4x4DCNoNeighboursFallsBackTo128(t *testing.T) {
	n := Neighbourhood{Size: 4, Top: make([]int, 8), Left: make([]int, 4)}
	pred := Predict4x4(Pred4x4DC, n)
	if pred[0][0] != 128 {
		t.Errorf("DC pred with no neighbours = %d, want 128", pred[0][0])
	}
}

func TestPredict16x16DCFallback(t *testing.T) {
	n := Neighbourhood{Size: 16, Top: make([]int, 16), Left: make([]int, 16)}
	pred := Predict16x16(Pred16x16DC, n, 8)
	if pred[0][0] != 128 {
		t.Errorf("16x16 DC with no neighbours = %d, want 128", pred[0][0])
	}
}

func TestPredictChromaDCFallback(t *testing.T) {
	n := Neighbourhood{Size: 8, Top: make([]int, 8), Left: make([]int, 8)}
	pred := PredictChroma(ChromaDC, n, 8, 8, 8)
	if pred[0][0] != 128 {
		t.Errorf("chroma DC with no neighbours = %d, want 128", pred[0][0])
	}
}

func TestFilterReferenceSamples8x8Flat(t *testing.T) {
	n := flatNeighbourhood(8, 64)
	out := FilterReferenceSamples8x8(n)
	for _, v := range out.Top {
		if v != 64 {
			t.Fatalf("filtered flat top sample = %d, want 64", v)
		}
	}
}
