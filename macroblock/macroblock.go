/*
DESCRIPTION
  macroblock.go defines the Macroblock struct and decodes
  coded_block_pattern for both entropy coding modes (CAVLC's me(v)
  mapping, table 9-4, and CABAC's per-bit binarization).

AUTHORS
  h264dec contributors, grounded on the teacher package's MbPred /
  NewSliceData functions in slice.go and the codedBlockPattern table in
  parse.go, corrected where the teacher indexes unallocated slices.
*/

package macroblock

import (
	"github.com/coastwatch/h264dec/bits"
	"github.com/coastwatch/h264dec/cabac"
	"github.com/coastwatch/h264dec/errs"
)

// Macroblock is one decoded macroblock's syntax-level state. Pixel data
// lives in the picture package; this struct carries only what later stages
// (intra/inter prediction, transform, residual, deblocking) need to know
// about how the macroblock itself was coded.
type Macroblock struct {
	Addr    int
	SliceID int
	Decoded bool

	Type    Type
	RawType int // the raw mb_type codeNum, needed by neighbour-based ctxIdxInc derivations

	TransformSize8x8Flag bool
	CodedBlockPatternLuma   int
	CodedBlockPatternChroma int
	IntraChromaPredMode     int
	Intra4x4PredMode        [16]int
	Intra8x8PredMode        [4]int
	I16x16PredMode          int

	SubMbType [4]int
	RefIdxL0  [4]int
	RefIdxL1  [4]int
	MvdL0     [16][2]int
	MvdL1     [16][2]int

	QPY      int
	QPYPrev  int
	MbQPDelta int

	PCMSamples []byte
}

// codedBlockPatternChroma42x is table 9-4 for ChromaArrayType 1 or 2: index
// is the CAVLC me(v) codeNum, row is {intra-coded value, inter-coded value}.
var codedBlockPatternChroma42x = [48][2]int{
	{47, 0}, {31, 16}, {15, 1}, {0, 2}, {23, 4}, {27, 8}, {29, 32}, {30, 3},
	{7, 5}, {11, 10}, {13, 12}, {14, 15}, {39, 47}, {43, 7}, {45, 11}, {46, 13},
	{16, 14}, {3, 6}, {5, 9}, {10, 31}, {12, 35}, {19, 37}, {21, 42}, {26, 44},
	{28, 33}, {35, 34}, {37, 36}, {42, 40}, {44, 39}, {1, 43}, {2, 45}, {4, 46},
	{8, 17}, {17, 18}, {18, 20}, {20, 24}, {24, 19}, {6, 21}, {9, 26}, {22, 28},
	{25, 23}, {32, 27}, {33, 29}, {34, 30}, {36, 22}, {40, 25}, {38, 38}, {41, 41},
}

// codedBlockPatternMonoOr444 is table 9-4 for ChromaArrayType 0 or 3.
var codedBlockPatternMonoOr444 = [16][2]int{
	{15, 0}, {0, 1}, {7, 2}, {11, 4}, {13, 8}, {14, 3}, {3, 5}, {5, 10},
	{10, 12}, {12, 15}, {1, 7}, {2, 11}, {4, 13}, {8, 14}, {6, 6}, {9, 9},
}

// DecodeCodedBlockPatternCAVLC reads coded_block_pattern's me(v) codeNum
// and maps it through table 9-4 to the actual bitmask value.
func DecodeCodedBlockPatternCAVLC(r *bits.Reader, chromaArrayType uint, isIntra bool) (int, error) {
	codeNum, err := r.ExpGolomb()
	if err != nil {
		return 0, err
	}
	col := 1
	if isIntra {
		col = 0
	}
	if chromaArrayType == 1 || chromaArrayType == 2 {
		if codeNum < 0 || int(codeNum) >= len(codedBlockPatternChroma42x) {
			return 0, errs.New(errs.InvalidSyntax, "coded_block_pattern codeNum out of range")
		}
		return codedBlockPatternChroma42x[codeNum][col], nil
	}
	if codeNum < 0 || int(codeNum) >= len(codedBlockPatternMonoOr444) {
		return 0, errs.New(errs.InvalidSyntax, "coded_block_pattern codeNum out of range")
	}
	return codedBlockPatternMonoOr444[codeNum][col], nil
}

// DecodeCodedBlockPatternCABAC decodes coded_block_pattern directly (no
// me(v) table: CABAC binarizes the bitmask's bits themselves), returning
// the luma (4 bits) and chroma (0-2) values separately.
func DecodeCodedBlockPatternCABAC(e *cabac.Engine, models []cabac.ContextState, chromaArrayType uint, neighbourLumaInc func(bit int) int, neighbourChromaInc func(binIdx int) int) (lumaCBP, chromaCBP int, err error) {
	for bit := 0; bit < 4; bit++ {
		v, derr := cabac.DecodeCodedBlockPatternLuma(e, models, neighbourLumaInc(bit))
		if derr != nil {
			return 0, 0, derr
		}
		lumaCBP |= v << uint(bit)
	}
	if chromaArrayType != 1 && chromaArrayType != 2 {
		return lumaCBP, 0, nil
	}
	chromaCBP, err = cabac.DecodeTruncatedUnary(e, 2, func(binIdx int) *cabac.ContextState {
		return &models[cbpChromaCtxIdx(binIdx, neighbourChromaInc(binIdx))]
	})
	return lumaCBP, chromaCBP, err
}

func cbpChromaCtxIdx(binIdx, inc int) int {
	if binIdx == 0 {
		return 77 + inc
	}
	return 81 + inc
}

// NumMbPart returns the partition count for a P/B macroblock as given by
// PartCount; P_8x8/B_8x8 count as 4 partitions, and SubMbType is not
// consulted.
func (mb *Macroblock) NumMbPart() int {
	return PartCount(mb.Type.Class, mb.RawType)
}
