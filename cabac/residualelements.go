/*
DESCRIPTION
  residualelements.go decodes the per-coefficient syntax elements of
  residual_block_cabac() (7.3.5.3.3): significant_coeff_flag,
  last_significant_coeff_flag, coeff_abs_level_minus1, and
  coeff_sign_flag.

AUTHORS
  h264dec contributors, grounded on the teacher package's ctxIdxOffset
  values for these elements (cabac.go's NewBinarization) and the Rust
  original's residual.rs coefficient scan loop.
*/

package cabac

// DecodeSignificantCoeffFlag decodes one significant_coeff_flag bin. The
// caller resolves the ctxIdx from the coefficient's scan position and the
// block category (table 9-43's ctxIdxInc mapping) and passes it as base.
func DecodeSignificantCoeffFlag(e *Engine, models []ContextState, base int) (bool, error) {
	bin, err := e.DecodeDecision(&models[base])
	return bin == 1, err
}

// DecodeLastSignificantCoeffFlag decodes one last_significant_coeff_flag bin.
func DecodeLastSignificantCoeffFlag(e *Engine, models []ContextState, base int) (bool, error) {
	bin, err := e.DecodeDecision(&models[base])
	return bin == 1, err
}

// DecodeCoeffAbsLevelMinus1 decodes coeff_abs_level_minus1, UEGk with uCoff
// 14, k 0, unsigned (the sign is a separate bypass-coded coeff_sign_flag),
// base is the category's first ctxIdx (table 9-43) and numDecodAbsLevelGt1
// drives the ctxIdxInc per 9.3.3.1.3.
func DecodeCoeffAbsLevelMinus1(e *Engine, models []ContextState, base int, numDecodAbsLevelGt1, numDecodAbsLevelEq1 int) (int, error) {
	ctxIdxIncOffset := minInt(4, 1+numDecodAbsLevelEq1)
	if numDecodAbsLevelGt1 != 0 {
		ctxIdxIncOffset = 0
	}
	first := base + ctxIdxIncOffset
	return DecodeUEGk(e, 14, 0, false, func(binIdx int) *ContextState {
		if binIdx == 0 {
			return &models[first]
		}
		return &models[base+5+minInt(binIdx-1, 3)]
	})
}

// DecodeCoeffSignFlag decodes coeff_sign_flag, a single bypass-coded bit.
func DecodeCoeffSignFlag(e *Engine) (bool, error) {
	bin, err := e.DecodeBypass()
	return bin == 1, err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
