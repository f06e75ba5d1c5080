/*
DESCRIPTION
  neighbour.go resolves the A (left), B (above), C (above-right), and D
  (above-left) neighbouring macroblock addresses used throughout clause 6.4
  and by the CABAC ctxIdxInc derivations, for the non-MBAFF raster-scan
  case this decoder targets.

AUTHORS
  h264dec contributors, grounded on the teacher package's neighbouring
  helpers in parse.go (mbAddrA/B/C/D derivation) adapted to an
  arena-plus-index macroblock store instead of pointer-linked structs.
*/

package macroblock

// Store holds every macroblock decoded so far in the current picture, in
// raster scan order, plus the picture width needed to resolve neighbours.
type Store struct {
	MBs         []Macroblock
	WidthInMbs  int
}

// Neighbours is the result of resolving a macroblock's four spatial
// neighbours; Present is false for a slot that falls outside the picture
// or into a different slice (neighbours across slice boundaries are
// treated as unavailable, 6.4.9).
type Neighbours struct {
	A, B, C, D Neighbour
}

// Neighbour names one resolved neighbouring macroblock (or its absence).
type Neighbour struct {
	Addr    int
	Present bool
}

// Resolve computes the A/B/C/D neighbours of the macroblock at addr,
// honouring slice boundaries: a neighbour is only Present if its address
// was decoded in the same slice (sliceID equal) and lies before addr in
// decoding order.
func (s *Store) Resolve(addr int, sliceID int) Neighbours {
	w := s.WidthInMbs
	var n Neighbours
	n.A = s.check(addr-1, addr%w != 0, sliceID)
	n.B = s.check(addr-w, addr-w >= 0, sliceID)
	n.C = s.check(addr-w+1, addr-w >= 0 && (addr+1)%w != 0, sliceID)
	n.D = s.check(addr-w-1, addr-w >= 0 && addr%w != 0, sliceID)
	return n
}

func (s *Store) check(candidate int, inBounds bool, sliceID int) Neighbour {
	if !inBounds || candidate < 0 || candidate >= len(s.MBs) {
		return Neighbour{}
	}
	mb := s.MBs[candidate]
	if !mb.Decoded || mb.SliceID != sliceID {
		return Neighbour{}
	}
	return Neighbour{Addr: candidate, Present: true}
}

// NeighbourInc is the common ctxIdxInc pattern used by many CABAC syntax
// elements (9.3.3.1.1.1 and friends): 0 if neither neighbour's condition
// holds, 1 if exactly one does, 2 if both do.
func NeighbourInc(a, b bool) int {
	inc := 0
	if a {
		inc++
	}
	if b {
		inc++
	}
	return inc
}
