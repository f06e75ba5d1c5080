/*
DESCRIPTION
  chroma.go implements the four Intra_Chroma prediction modes (8.3.4,
  table 8-4), applied once per chroma component over the whole MbWidthC x
  MbHeightC chroma block (8x8 for 4:2:0, 8x16 for 4:2:2).

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/frame/trans_chroma.rs intra_chroma_prediction reference-sample
  gathering loop, with the per-mode pixel formulas generalized from its
  DC-only inline logic to cover all four documented modes.
*/

package intra

const (
	ChromaDC = iota
	ChromaHorizontal
	ChromaVertical
	ChromaPlane
)

// PredictChroma returns the predicted chroma block (indexed [y][x]) for
// the given mode and chroma block dimensions (8x8 for 4:2:0, 8x16 for
// 4:2:2), per 8.3.4.
func PredictChroma(mode int, n Neighbourhood, width, height, bitDepth int) [][]int {
	pred := make([][]int, height)
	for i := range pred {
		pred[i] = make([]int, width)
	}

	switch mode {
	case ChromaDC:
		// 8.3.4.1: each 4x4 sub-block of the chroma block derives its own DC
		// value from the samples directly above/left of that sub-block,
		// falling back to the whole-block average's neighbours when one side
		// is unavailable.
		for by := 0; by < height; by += 4 {
			for bx := 0; bx < width; bx += 4 {
				dc := chromaBlockDC(n, bx, by, bitDepth)
				for y := by; y < by+4; y++ {
					for x := bx; x < bx+4; x++ {
						pred[y][x] = dc
					}
				}
			}
		}
	case ChromaHorizontal:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pred[y][x] = n.Left[y]
			}
		}
	case ChromaVertical:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pred[y][x] = n.Top[x]
			}
		}
	case ChromaPlane:
		xCF, yCF := 0, 0
		if width == 16 {
			xCF = 4
		}
		if height == 16 {
			yCF = 4
		}
		h := 0
		for i := 0; i < 4+xCF; i++ {
			h += (i + 1) * (topAt16(n, 4+xCF+i) - topAt16(n, 2+xCF-i))
		}
		v := 0
		for i := 0; i < 4+yCF; i++ {
			v += (i + 1) * (leftAt16(n, 4+yCF+i) - leftAt16(n, 2+yCF-i))
		}
		a := 16 * (n.Left[height-1] + n.Top[width-1])
		b := ((34 - 29*boolToIntChroma(width == 16)) * h + 32) >> 6
		c := ((34 - 29*boolToIntChroma(height == 16)) * v + 32) >> 6
		maxVal := (1 << uint(bitDepth)) - 1
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pred[y][x] = clip1((a+b*(x-3-xCF)+c*(y-3-yCF)+16)>>5, maxVal)
			}
		}
	}
	return pred
}

func chromaBlockDC(n Neighbourhood, bx, by, bitDepth int) int {
	sumTop, haveTop := 0, n.TopOK
	if haveTop {
		for x := bx; x < bx+4; x++ {
			sumTop += n.Top[x]
		}
	}
	sumLeft, haveLeft := 0, n.LeftOK
	if haveLeft {
		for y := by; y < by+4; y++ {
			sumLeft += n.Left[y]
		}
	}

	switch {
	case haveTop && haveLeft:
		return (sumTop + sumLeft + 4) >> 3
	case haveTop:
		return (sumTop + 2) >> 2
	case haveLeft:
		return (sumLeft + 2) >> 2
	default:
		return 1 << uint(bitDepth-1)
	}
}

func boolToIntChroma(b bool) int {
	if b {
		return 1
	}
	return 0
}
