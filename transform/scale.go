/*
DESCRIPTION
  scale.go derives the per-macroblock scaling factors (8.5.9) from a
  slice's 4x4/8x8 scaling lists, and the chroma QP' derivation (8.5.8,
  table 8-15) shared by both the 4x4 and 8x8/DC transform paths.

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/frame/transform.rs (Frame::scaling, get_qpc,
  chroma_quantization_parameters).
*/

package transform

import "github.com/coastwatch/h264dec/errs"

// v4x4 is table 8-13's per-(qP%6) normAdjust4x4 scaling factor, in the
// three classes of 4x4 position parity.
var v4x4 = [6][3]int{
	{10, 16, 13},
	{11, 18, 14},
	{13, 20, 16},
	{14, 23, 18},
	{16, 25, 20},
	{18, 29, 23},
}

// v8x8 is table 8-14's per-(qP%6) normAdjust8x8 scaling factor, across the
// six position classes used by the 8x8 scaling loop below.
var v8x8 = [6][6]int{
	{20, 18, 32, 19, 25, 24},
	{22, 19, 35, 21, 28, 26},
	{26, 23, 42, 24, 33, 31},
	{28, 25, 45, 26, 35, 33},
	{32, 28, 51, 30, 40, 38},
	{36, 32, 58, 34, 46, 43},
}

// LevelScale4x4 computes the [6][4][4] scaling matrix (8.5.9) for one of
// the six 4x4 scaling lists (index 0-2 intra Y/Cb/Cr, 3-5 inter Y/Cb/Cr).
func LevelScale4x4(scalingList []int) [6][4][4]int {
	weight := InverseScan4x4(scalingList)
	var out [6][4][4]int
	for m := 0; m < 6; m++ {
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				var col int
				switch {
				case i%2 == 0 && j%2 == 0:
					col = 0
				case i%2 == 1 && j%2 == 1:
					col = 1
				default:
					col = 2
				}
				out[m][i][j] = weight[i][j] * v4x4[m][col]
			}
		}
	}
	return out
}

// LevelScale8x8 computes the [6][8][8] scaling matrix (8.5.9) for one of
// the six 8x8 scaling lists.
func LevelScale8x8(scalingList []int) [6][8][8]int {
	weight := InverseScan8x8(scalingList)
	var out [6][8][8]int
	for m := 0; m < 6; m++ {
		for i := 0; i < 8; i++ {
			for j := 0; j < 8; j++ {
				var col int
				switch {
				case i%4 == 0 && j%4 == 0:
					col = 0
				case i%2 == 1 && j%2 == 1:
					col = 1
				case i%4 == 2 && j%4 == 2:
					col = 2
				case (i%4 == 0 && j%2 == 1) || (i%2 == 1 && j%4 == 0):
					col = 3
				case (i%4 == 0 && j%4 == 2) || (i%4 == 2 && j%4 == 0):
					col = 4
				default:
					col = 5
				}
				out[m][i][j] = weight[i][j] * v8x8[m][col]
			}
		}
	}
	return out
}

// qpcTable is table 8-15's QPc mapping for qPi in [30,51].
var qpcTable = [22]int{
	29, 30, 31, 32, 32, 33, 34, 34, 35, 35, 36,
	36, 37, 37, 37, 38, 38, 38, 39, 39, 39, 39,
}

// ChromaQP derives QPc (8.5.8) from the luma QP, a chroma_qp_index_offset,
// and the bit-depth chroma QP offset.
func ChromaQP(qpy, chromaQPIndexOffset, qpBdOffsetC int) int {
	qpi := clip3(-qpBdOffsetC, 51, qpy+chromaQPIndexOffset)
	if qpi < 30 {
		return qpi
	}
	return qpcTable[qpi-30]
}

func clip3(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ErrUnsupportedChromaArrayType is returned when a caller asks for chroma
// DC transform on ChromaArrayType 0 (monochrome, no chroma residual) or 3
// (4:4:4, handled as a luma-shaped residual rather than DC+AC), neither of
// which this package's chroma DC path models.
var ErrUnsupportedChromaArrayType = errs.New(errs.InvalidSyntax, "transform: unsupported chroma_array_type for chroma DC")
