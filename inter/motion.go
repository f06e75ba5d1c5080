/*
DESCRIPTION
  motion.go implements the luma motion vector prediction process
  (8.4.1.3): the special-case 16x8/8x16 partition shortcuts and the
  general median-of-three-neighbours predictor.

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/frame/inter/motion.rs luma_motion_vector_prediction.
*/

// Package inter implements the motion-vector prediction and weighted-sample
// prediction processes of clause 8.4. Spatial and temporal direct mode
// derivation is not implemented here or elsewhere in this module. Fractional-sample interpolation (8.4.2.2) is out of scope:
// Interpolate is declared here as a signature only, to be filled in by a
// future decoder (8-tap luma / bilinear chroma interpolation is a large,
// separable concern the specification excludes from this system's
// reconstructed-plane guarantees).
package inter

// MV is a motion vector in quarter-luma-sample units.
type MV struct {
	X, Y int
}

// Neighbour is one of the three candidate partitions (A, B, or C) used by
// the median predictor: an unavailable or intra-coded neighbour is
// modelled as Available == false, per 8.4.1.3.2's "not available" rule.
type Neighbour struct {
	MV        MV
	RefIdx    int
	Available bool
}

// PartGeometry names the macroblock partition shape the current
// partition belongs to, needed by the 16x8/8x16 special cases.
type PartGeometry struct {
	Width, Height int // 16,16 / 16,8 / 8,16 / 8,8
	PartIdx       int
}

// PredictMV derives mvpLX for the current partition (8.4.1.3), given its
// three candidate neighbours and the reference index selected for this
// partition (refIdxLX).
func PredictMV(geom PartGeometry, a, b, c Neighbour, refIdxLX int) MV {
	switch {
	case geom.Width == 16 && geom.Height == 8 && geom.PartIdx == 0 && b.Available && b.RefIdx == refIdxLX:
		return b.MV
	case geom.Width == 16 && geom.Height == 8 && geom.PartIdx == 1 && a.Available && a.RefIdx == refIdxLX:
		return a.MV
	case geom.Width == 8 && geom.Height == 16 && geom.PartIdx == 0 && a.Available && a.RefIdx == refIdxLX:
		return a.MV
	case geom.Width == 8 && geom.Height == 16 && geom.PartIdx == 1 && c.Available && c.RefIdx == refIdxLX:
		return c.MV
	}

	// 8.4.1.3.1's substitution: when B and C are both unavailable but A is
	// available, B and C are replaced by A before the general case runs.
	if !b.Available && !c.Available && a.Available {
		b = a
		c = a
	}

	switch {
	case a.Available && a.RefIdx == refIdxLX && !(b.Available && b.RefIdx == refIdxLX) && !(c.Available && c.RefIdx == refIdxLX):
		return a.MV
	case !(a.Available && a.RefIdx == refIdxLX) && b.Available && b.RefIdx == refIdxLX && !(c.Available && c.RefIdx == refIdxLX):
		return b.MV
	case !(a.Available && a.RefIdx == refIdxLX) && !(b.Available && b.RefIdx == refIdxLX) && c.Available && c.RefIdx == refIdxLX:
		return c.MV
	default:
		return MV{
			X: median(zeroIfUnavailable(a).X, zeroIfUnavailable(b).X, zeroIfUnavailable(c).X),
			Y: median(zeroIfUnavailable(a).Y, zeroIfUnavailable(b).Y, zeroIfUnavailable(c).Y),
		}
	}
}

func zeroIfUnavailable(n Neighbour) MV {
	if !n.Available {
		return MV{}
	}
	return n.MV
}

// median returns the median of three ints (8.4.1.3.1's Median() function):
// sum minus the min and the max.
func median(a, b, c int) int {
	maxV := a
	if b > maxV {
		maxV = b
	}
	if c > maxV {
		maxV = c
	}
	minV := a
	if b < minV {
		minV = b
	}
	if c < minV {
		minV = c
	}
	return a + b + c - maxV - minV
}

// Interpolate performs fractional-sample luma/chroma interpolation
// (8.4.2.2). Not implemented: the reference picture sampling at quarter-
// and eighth-sample positions is a large, separable filtering concern
// this decoder does not reconstruct; callers needing full-pixel-only
// reconstruction can pass a zero motion vector's integer-sample case
// directly from picture storage instead.
func Interpolate(ref [][]int, x, y int, mv MV, bitDepth int) int {
	panic("inter: fractional-sample interpolation not implemented")
}
