/*
DESCRIPTION
  pred8x8.go implements Intra_8x8 luma reference sample filtering
  (8.3.2.2.1) and the nine Intra_8x8 prediction modes (8.3.2, table 8-3),
  reusing the 4x4 mode constants since the two sets name the same nine
  directional predictors at a different block size.

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/frame/pred8x8.rs mode dispatch and reference-sample filter.
*/

package intra

// FilterReferenceSamples8x8 applies the low-pass reference sample
// filter of 8.3.2.2.1 to a raw 8x8 Neighbourhood, returning a filtered
// copy. Unavailable samples must already have been substituted by the
// caller (8.3.2.2's "not available" fallback is the same MB-availability
// rule as 4x4/16x16, handled by the decoder driver, not this package).
func FilterReferenceSamples8x8(n Neighbourhood) Neighbourhood {
	out := Neighbourhood{Size: n.Size, LeftOK: n.LeftOK, TopOK: n.TopOK, TopLeftOK: n.TopLeftOK, TopRightOK: n.TopRightOK}
	out.Top = make([]int, len(n.Top))
	out.Left = make([]int, len(n.Left))

	if n.TopLeftOK {
		var left1, top1 int
		if n.LeftOK {
			left1 = n.Left[0]
		} else {
			left1 = n.TopLeft
		}
		if n.TopOK {
			top1 = n.Top[0]
		} else {
			top1 = n.TopLeft
		}
		out.TopLeft = (left1 + 2*n.TopLeft + top1 + 2) >> 2
	} else {
		out.TopLeft = n.TopLeft
	}

	if n.TopOK {
		for i := range n.Top {
			a := topAt(n, i-1)
			if i == 0 {
				a = n.TopLeft
			}
			b := n.Top[i]
			c := topAt(n, i+1)
			out.Top[i] = (a + 2*b + c + 2) >> 2
		}
	}
	if n.LeftOK {
		for i := range n.Left {
			a := leftAt(n, i-1)
			if i == 0 {
				a = n.TopLeft
			}
			b := n.Left[i]
			c := leftAt(n, i+1)
			out.Left[i] = (a + 2*b + c + 2) >> 2
		}
	}
	return out
}

// Predict8x8 returns the 8x8 predicted sample block (indexed [y][x]) for
// the given mode (the Pred4x4* constants, reused at 8x8 scale), per
// 8.3.2.2.
func Predict8x8(mode int, n Neighbourhood) [8][8]int {
	n.fillUnavailableAboveRight()
	var pred [8][8]int
	const size = 8

	switch mode {
	case Pred4x4Vertical:
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				pred[y][x] = n.Top[x]
			}
		}
	case Pred4x4Horizontal:
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				pred[y][x] = n.Left[y]
			}
		}
	case Pred4x4DC:
		sum, count := 0, 0
		if n.TopOK {
			for x := 0; x < size; x++ {
				sum += n.Top[x]
			}
			count += size
		}
		if n.LeftOK {
			for y := 0; y < size; y++ {
				sum += n.Left[y]
			}
			count += size
		}
		var dc int
		switch {
		case count == 2*size:
			dc = (sum + size) >> 4
		case count == size:
			dc = (sum + size/2) >> 3
		default:
			dc = 128
		}
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				pred[y][x] = dc
			}
		}
	case Pred4x4DiagonalDownLeft:
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if x == size-1 && y == size-1 {
					pred[y][x] = (topAt(n, 2*size-3) + 3*topAt(n, 2*size-2) + 2) >> 2
				} else {
					pred[y][x] = (topAt(n, x+y) + 2*topAt(n, x+y+1) + topAt(n, x+y+2) + 2) >> 2
				}
			}
		}
	case Pred4x4DiagonalDownRight:
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				switch {
				case x > y:
					i := x - y - 1
					pred[y][x] = (topAt(n, i-1) + 2*topAt(n, i) + topAt(n, i+1) + 2) >> 2
				case x < y:
					i := y - x - 1
					pred[y][x] = (leftAt(n, i-1) + 2*leftAt(n, i) + leftAt(n, i+1) + 2) >> 2
				default:
					pred[y][x] = (n.Top[0] + 2*n.TopLeft + n.Left[0] + 2) >> 2
				}
			}
		}
	case Pred4x4VerticalRight:
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				zVR := 2*x - y
				switch {
				case zVR >= 0 && zVR%2 == 0:
					i := x - (y >> 1) - 1
					pred[y][x] = (topAt(n, i) + topAt(n, i+1) + 1) >> 1
				case zVR >= 0:
					i := x - (y >> 1) - 1
					pred[y][x] = (topAt(n, i-1) + 2*topAt(n, i) + topAt(n, i+1) + 2) >> 2
				case zVR == -1:
					pred[y][x] = (n.Left[0] + 2*n.TopLeft + n.Top[0] + 2) >> 2
				default:
					i := y - 2*x - 1
					pred[y][x] = (leftAt(n, i-2) + 2*leftAt(n, i-1) + leftAt(n, i) + 2) >> 2
				}
			}
		}
	case Pred4x4HorizontalDown:
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				zHD := 2*y - x
				switch {
				case zHD >= 0 && zHD%2 == 0:
					i := y - (x >> 1) - 1
					pred[y][x] = (leftAt(n, i) + leftAt(n, i+1) + 1) >> 1
				case zHD >= 0:
					i := y - (x >> 1) - 1
					pred[y][x] = (leftAt(n, i-1) + 2*leftAt(n, i) + leftAt(n, i+1) + 2) >> 2
				case zHD == -1:
					pred[y][x] = (n.Top[0] + 2*n.TopLeft + n.Left[0] + 2) >> 2
				default:
					i := x - 2*y - 1
					pred[y][x] = (topAt(n, i-2) + 2*topAt(n, i-1) + topAt(n, i) + 2) >> 2
				}
			}
		}
	case Pred4x4VerticalLeft:
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				i := x + (y >> 1)
				if y%2 == 0 {
					pred[y][x] = (topAt(n, i) + topAt(n, i+1) + 1) >> 1
				} else {
					pred[y][x] = (topAt(n, i) + 2*topAt(n, i+1) + topAt(n, i+2) + 2) >> 2
				}
			}
		}
	case Pred4x4HorizontalUp:
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				zHU := x + 2*y
				switch {
				case zHU < 2*size-3 && zHU%2 == 0:
					i := y + (x >> 1)
					pred[y][x] = (leftAt(n, i) + leftAt(n, i+1) + 1) >> 1
				case zHU < 2*size-3:
					i := y + (x >> 1)
					pred[y][x] = (leftAt(n, i) + 2*leftAt(n, i+1) + leftAt(n, i+2) + 2) >> 2
				case zHU == 2*size-3:
					pred[y][x] = (leftAt(n, size-2) + 3*leftAt(n, size-1) + 2) >> 2
				default:
					pred[y][x] = leftAt(n, size-1)
				}
			}
		}
	}
	return pred
}
