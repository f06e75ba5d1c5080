package transform

import "testing"

func TestInverseScan4x4Identity(t *testing.T) {
	v := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	c := InverseScan4x4(v)
	if c[0][0] != 0 || c[0][1] != 1 || c[1][0] != 2 || c[3][3] != 15 {
		t.Fatalf("InverseScan4x4 = %+v", c)
	}
}

func TestScaleAndTransform4x4AllZero(t *testing.T) {
	var c [4][4]int
	var scale [6][4][4]int
	for i := range scale[0] {
		for j := range scale[0][i] {
			scale[0][i][j] = 16
		}
	}
	r := ScaleAndTransform4x4(c, scale, 0, false, false)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if r[i][j] != 0 {
				t.Fatalf("all-zero input produced nonzero output at [%d][%d]: %d", i, j, r[i][j])
			}
		}
	}
}

func TestScaleAndTransform4x4Bypass(t *testing.T) {
	c := [4][4]int{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {13, 14, 15, 16}}
	r := ScaleAndTransform4x4(c, [6][4][4]int{}, 10, false, true)
	if r != c {
		t.Fatalf("bypass transform changed the block: %+v", r)
	}
}

func TestChromaQPBelow30IsIdentity(t *testing.T) {
	if got := ChromaQP(20, 0, 0); got != 20 {
		t.Errorf("ChromaQP(20,0,0) = %d, want 20", got)
	}
}

func TestChromaQPTableLookup(t *testing.T) {
	if got := ChromaQP(51, 0, 0); got != 39 {
		t.Errorf("ChromaQP(51,0,0) = %d, want 39", got)
	}
}

func TestEightPointInverseTransformAllZero(t *testing.T) {
	out := eightPointInverseTransform([8]int{})
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %d, want 0", i, v)
		}
	}
}

func TestScaleAndTransform8x8AllZero(t *testing.T) {
	var c [8][8]int
	var scale [6][8][8]int
	for i := range scale[0] {
		for j := range scale[0][i] {
			scale[0][i][j] = 16
		}
	}
	r := ScaleAndTransform8x8(c, scale, 0, false)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if r[i][j] != 0 {
				t.Fatalf("all-zero input produced nonzero output at [%d][%d]: %d", i, j, r[i][j])
			}
		}
	}
}

func TestScaleAndTransform8x8Bypass(t *testing.T) {
	var c [8][8]int
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			c[i][j] = i*8 + j
		}
	}
	r := ScaleAndTransform8x8(c, [6][8][8]int{}, 10, true)
	if r != c {
		t.Fatalf("bypass transform changed the block: %+v", r)
	}
}

func TestInverseScan8x8Identity(t *testing.T) {
	v := make([]int, 64)
	for i := range v {
		v[i] = i
	}
	c := InverseScan8x8(v)
	if c[0][0] != 0 || c[0][1] != 1 || c[1][0] != 2 || c[7][7] != 63 {
		t.Fatalf("InverseScan8x8 = %+v", c)
	}
}

func TestLevelScale8x8FlatList(t *testing.T) {
	flat := make([]int, 64)
	for i := range flat {
		flat[i] = 16
	}
	out := LevelScale8x8(flat)
	if out[0][0][0] != 16*20 {
		t.Fatalf("LevelScale8x8[0][0][0] = %d, want %d", out[0][0][0], 16*20)
	}
}
