/*
DESCRIPTION
  residual.go decodes residual_block_cabac() (7.3.5.3.3 / 9.3.3.1.3): the
  significance map, last-significant-coefficient flag, and coefficient
  level magnitudes/signs for one transform block, CBP-gated by the
  caller (coded_block_flag is decoded separately, by the caller, via
  cabac.DecodeCodedBlockFlag, since its ctxIdxInc depends on neighbouring
  blocks this package has no model of).

AUTHORS
  h264dec contributors, grounded on the cabac package's own
  DecodeSignificantCoeffFlag/DecodeLastSignificantCoeffFlag/
  DecodeCoeffAbsLevelMinus1/DecodeCoeffSignFlag (themselves grounded on
  the Rust original's video/cabac/residual.rs), composed here into the
  full per-block coefficient scan loop that neither the teacher (whose
  CABAC engine is entirely `// TODO: Implement` stubs) nor the Rust
  original's residual.rs (which inlines the scan loop directly into its
  own macroblock decode driver) expose as a standalone reusable unit.
*/

package residual

import "github.com/coastwatch/h264dec/cabac"

// Category identifies a residual_block_cabac() call site (table 9-42/
// 9-43), which selects the significant_coeff_flag/last_significant_coeff_flag/
// coeff_abs_level_minus1 ctxBlockCat base offsets and the block's
// maximum number of coefficients.
type Category struct {
	Name          string
	MaxNumCoeff   int
	SigCoeffBase  int
	LastCoeffBase int
	LevelBase     int
}

var (
	CategoryChromaDC     = Category{"ChromaDCLevel", 8, 149, 210, 257}
	CategoryLuma16x16DC  = Category{"Intra16x16DCLevel", 16, 105, 166, 227}
	CategoryLuma16x16AC  = Category{"Intra16x16ACLevel", 15, 120, 181, 237}
	CategoryLumaLevel4x4 = Category{"LumaLevel4x4", 16, 134, 195, 247}
	CategoryChromaAC     = Category{"ChromaACLevel", 15, 152, 213, 266}
	CategoryLumaLevel8x8 = Category{"LumaLevel8x8", 64, 150, 226, 275}
)

// Block is the decoded result of one residual_block_cabac() call: Coeffs
// is indexed by scan position (0-based, zig-zag order); positions beyond
// the highest coded coefficient are left zero.
type Block struct {
	Coeffs []int
}

// DecodeBlockCABAC runs the significance-map scan followed by the level
// decode loop of 7.3.5.3.3, given that coded_block_flag for this block
// has already been decoded true by the caller.
func DecodeBlockCABAC(e *cabac.Engine, models []cabac.ContextState, cat Category) (Block, error) {
	coeffs := make([]int, cat.MaxNumCoeff)
	significant := make([]bool, cat.MaxNumCoeff)

	numCoeff := cat.MaxNumCoeff
	for i := 0; i < numCoeff-1; i++ {
		sig, err := cabac.DecodeSignificantCoeffFlag(e, models, cat.SigCoeffBase+i)
		if err != nil {
			return Block{}, err
		}
		if !sig {
			continue
		}
		significant[i] = true
		last, err := cabac.DecodeLastSignificantCoeffFlag(e, models, cat.LastCoeffBase+i)
		if err != nil {
			return Block{}, err
		}
		if last {
			numCoeff = i + 1
			break
		}
	}
	// The highest coded coefficient (numCoeff-1) has no
	// last_significant_coeff_flag of its own: either it was set above
	// (the flag fired) or the scan ran to the top of the block with
	// coded_block_flag having promised at least one nonzero coefficient.
	significant[numCoeff-1] = true

	numDecodAbsLevelGt1, numDecodAbsLevelEq1 := 0, 0
	for i := numCoeff - 1; i >= 0; i-- {
		if !significant[i] {
			continue
		}
		level, err := cabac.DecodeCoeffAbsLevelMinus1(e, models, cat.LevelBase, numDecodAbsLevelGt1, numDecodAbsLevelEq1)
		if err != nil {
			return Block{}, err
		}
		absVal := level + 1
		if absVal > 1 {
			numDecodAbsLevelGt1++
		} else {
			numDecodAbsLevelEq1++
		}
		sign, err := cabac.DecodeCoeffSignFlag(e)
		if err != nil {
			return Block{}, err
		}
		if sign {
			absVal = -absVal
		}
		coeffs[i] = absVal
	}
	return Block{Coeffs: coeffs}, nil
}
