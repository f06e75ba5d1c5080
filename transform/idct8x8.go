/*
DESCRIPTION
  idct8x8.go implements the scaling and transformation process for
  residual 8x8 blocks (8.5.13): dequantization against a LevelScale8x8
  matrix followed by the separable 8x8 inverse integer transform
  (8.5.13.2), used when transform_size_8x8_flag is set.

AUTHORS
  h264dec contributors. The teacher package has no 8x8 transform path at
  all; this is grounded directly on the standard's 8.5.13 pseudocode
  (no equivalent in the Rust original either, which also omits 8x8
  transform support), following the same dequantize-then-butterfly shape
  as the 4x4 path in idct4x4.go.
*/

package transform

// ScaleAndTransform8x8 dequantizes and inverse-transforms one 8x8
// residual block.
func ScaleAndTransform8x8(c [8][8]int, levelScale [6][8][8]int, qp int, bypass bool) [8][8]int {
	if bypass {
		return c
	}

	var d [8][8]int
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if qp >= 36 {
				d[i][j] = (c[i][j] * levelScale[qp%6][i][j]) << uint(qp/6-6)
			} else {
				d[i][j] = (c[i][j]*levelScale[qp%6][i][j] + (1 << uint(5-qp/6))) >> uint(6-qp/6)
			}
		}
	}

	var mid [8][8]int
	for i := 0; i < 8; i++ {
		mid[i] = eightPointInverseTransform(d[i])
	}

	var col [8]int
	var h [8][8]int
	for j := 0; j < 8; j++ {
		for i := 0; i < 8; i++ {
			col[i] = mid[i][j]
		}
		out := eightPointInverseTransform(col)
		for i := 0; i < 8; i++ {
			h[i][j] = out[i]
		}
	}

	var r [8][8]int
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			r[i][j] = (h[i][j] + 32) >> 6
		}
	}
	return r
}

// eightPointInverseTransform is the 1-D butterfly of 8.5.13.2, applied
// once across rows and once across the row-transformed columns.
func eightPointInverseTransform(d [8]int) [8]int {
	e0 := d[0] + d[4]
	e1 := -d[3] + d[5] - d[7] - (d[7] >> 1)
	e2 := d[0] - d[4]
	e3 := d[1] + d[7] - d[3] - (d[3] >> 1)
	e4 := (d[2] >> 1) - d[6]
	e5 := -d[1] + d[7] + d[5] + (d[5] >> 1)
	e6 := d[2] + (d[6] >> 1)
	e7 := d[3] + d[5] + d[1] + (d[1] >> 1)

	f0 := e0 + e6
	f1 := e1 + (e7 >> 2)
	f2 := e2 + e4
	f3 := e3 + (e5 >> 2)
	f4 := e2 - e4
	f5 := (e3 >> 2) - e5
	f6 := e0 - e6
	f7 := e7 - (e1 >> 2)

	return [8]int{
		f0 + f7,
		f2 + f5,
		f4 + f3,
		f6 + f1,
		f6 - f1,
		f4 - f3,
		f2 - f5,
		f0 - f7,
	}
}
