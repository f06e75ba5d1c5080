/*
DESCRIPTION
  types.go defines the macroblock and sub-macroblock type enumerations
  (tables 7-11 through 7-18) and their partition prediction modes (7.4.5).

AUTHORS
  h264dec contributors, grounded on the teacher package's mbPartPredMode
  enum (parse.go) and macroblock type tables (macroblock.go).
*/

// Package macroblock holds macroblock syntax state, decodes
// coded_block_pattern, and derives the mb_type classification, partition
// counts and prediction modes used by the intra/inter/transform/residual
// packages.
//
// Macroblocks for one slice are stored as a flat slice, not a linked list
// or tree: each Macroblock carries its raster address, and neighbours are
// looked up by address arithmetic in neighbour.go rather than via pointers,
// matching the arena-plus-index style the design notes call for.
package macroblock

// PredMode is a macroblock or partition's prediction mode, 7.4.5.
type PredMode int8

const (
	PredIntra4x4 PredMode = iota
	PredIntra8x8
	PredIntra16x16
	PredL0
	PredL1
	PredDirect
	PredBi
	PredNone // I_PCM, or not yet resolved
)

// Type is a decoded mb_type, normalized to a small set of tags rather than
// the raw per-slice-type integer codeNum, so that callers can switch on
// Type.Class without re-deriving the slice-type-dependent numbering.
type Type struct {
	Class    Class
	Mode     PredMode
	CBPLuma  int
	IsIPCM   bool
}

// Class names the coarse macroblock category.
type Class int

const (
	ClassINxN Class = iota
	ClassI16x16
	ClassIPCM
	ClassPSkip
	ClassP
	ClassBSkip
	ClassBDirect16x16
	ClassB
)

// I16x16Mode holds the Intra_16x16 prediction mode and the implied CBP
// derived from the mb_type codeNum, table 7-11.
type I16x16Mode struct {
	PredMode        int // 0-3, 8.3.3
	CodedBlockPatternChroma int
	CodedBlockPatternLuma   int // 0 or 15
}

// DecodeI16x16MbType derives the Intra_16x16 sub-mode from an mb_type value
// already known to lie in [1,24] (table 7-11): mb_type-1 decomposes as
// predMode + 4*cbpChroma + 12*(cbpLuma!=0).
func DecodeI16x16MbType(mbType int) I16x16Mode {
	v := mbType - 1
	var m I16x16Mode
	m.PredMode = v % 4
	v /= 4
	m.CodedBlockPatternChroma = v % 3
	v /= 3
	if v != 0 {
		m.CodedBlockPatternLuma = 15
	}
	return m
}

// PartCount returns the number of macroblock partitions for a P/B mb_type
// class, used to size the ref_idx/mvd loops in mb_pred(). Intra and
// *_Skip classes return 0.
func PartCount(class Class, mbType int) int {
	switch class {
	case ClassPSkip, ClassBSkip:
		return 0
	case ClassBDirect16x16:
		return 1
	case ClassP:
		switch mbType {
		case 0: // P_L0_16x16
			return 1
		case 1, 2: // P_L0_L0_16x8, P_L0_L0_8x16
			return 2
		default: // P_8x8, P_8x8ref0
			return 4
		}
	case ClassB:
		switch {
		case mbType <= 3: // B_Direct_16x16 handled above, B_L0_16x16, B_L1_16x16, B_Bi_16x16
			return 1
		case mbType <= 21:
			return 2
		default: // B_8x8
			return 4
		}
	default:
		return 0
	}
}

// PartPredModes returns the per-partition prediction mode list for a P/B
// mb_type, table 7-13/7-14/7-17/7-18 collapsed to the Mode enum.
func PartPredModes(class Class, mbType int) []PredMode {
	switch class {
	case ClassP:
		switch mbType {
		case 0:
			return []PredMode{PredL0}
		case 1, 2:
			return []PredMode{PredL0, PredL0}
		default:
			return []PredMode{PredL0, PredL0, PredL0, PredL0}
		}
	case ClassBDirect16x16:
		return []PredMode{PredDirect}
	case ClassB:
		// table 7-14 lists the explicit sequence of L0/L1/Bi per mb_type;
		// callers that need exact per-type partition modes beyond simple
		// uniform L0/L1 assignment consult bTypePartModes.
		if modes, ok := bTypePartModes[mbType]; ok {
			return modes
		}
		return []PredMode{PredDirect, PredDirect, PredDirect, PredDirect}
	default:
		return nil
	}
}

// bTypePartModes holds the explicit partition prediction mode sequence for
// B mb_type values 1-21 (table 7-14); values outside this map (B_8x8, 22)
// are resolved per sub_mb_type instead.
var bTypePartModes = map[int][]PredMode{
	1:  {PredL0},
	2:  {PredL1},
	3:  {PredBi},
	4:  {PredL0, PredL0},
	5:  {PredL0, PredL0},
	6:  {PredL1, PredL1},
	7:  {PredL1, PredL1},
	8:  {PredL0, PredL1},
	9:  {PredL0, PredL1},
	10: {PredL1, PredL0},
	11: {PredL1, PredL0},
	12: {PredL0, PredBi},
	13: {PredL0, PredBi},
	14: {PredBi, PredL0},
	15: {PredBi, PredL0},
	16: {PredL1, PredBi},
	17: {PredL1, PredBi},
	18: {PredBi, PredL1},
	19: {PredBi, PredL1},
	20: {PredBi, PredBi},
	21: {PredBi, PredBi},
}
