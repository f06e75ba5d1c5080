/*
DESCRIPTION
  idct4x4.go implements the scaling and transformation process for
  residual 4x4 blocks (8.5.12): dequantization against a LevelScale4x4
  matrix followed by the separable 4x4 inverse integer transform.

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/frame/transform.rs scaling_and_transform4x4.
*/

package transform

// ScaleAndTransform4x4 dequantizes and inverse-transforms one 4x4 residual
// block. skipDCRescale is true for an Intra_16x16 luma block or any chroma
// block, whose [0][0] coefficient was already produced by the Hadamard DC
// transform and must pass through unscaled. bypass mirrors
// transform_bypass_mode_flag: when set, c is returned unchanged.
func ScaleAndTransform4x4(c [4][4]int, levelScale [6][4][4]int, qp int, skipDCRescale, bypass bool) [4][4]int {
	if bypass {
		return c
	}

	var d [4][4]int
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == 0 && j == 0 && skipDCRescale {
				d[0][0] = c[0][0]
				continue
			}
			if qp >= 24 {
				d[i][j] = (c[i][j] * levelScale[qp%6][i][j]) << uint(qp/6-4)
			} else {
				d[i][j] = (c[i][j]*levelScale[qp%6][i][j] + (1 << uint(3-qp/6))) >> uint(4-qp/6)
			}
		}
	}

	var f, h [4][4]int
	for i := 0; i < 4; i++ {
		e0 := d[i][0] + d[i][2]
		e1 := d[i][0] - d[i][2]
		e2 := (d[i][1] >> 1) - d[i][3]
		e3 := d[i][1] + (d[i][3] >> 1)

		f[i][0] = e0 + e3
		f[i][1] = e1 + e2
		f[i][2] = e1 - e2
		f[i][3] = e0 - e3
	}

	for j := 0; j < 4; j++ {
		g0 := f[0][j] + f[2][j]
		g1 := f[0][j] - f[2][j]
		g2 := (f[1][j] >> 1) - f[3][j]
		g3 := f[1][j] + (f[3][j] >> 1)

		h[0][j] = g0 + g3
		h[1][j] = g1 + g2
		h[2][j] = g1 - g2
		h[3][j] = g0 - g3
	}

	var r [4][4]int
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = (h[i][j] + 32) >> 6
		}
	}
	return r
}
