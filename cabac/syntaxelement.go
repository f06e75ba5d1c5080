/*
DESCRIPTION
  syntaxelement.go decodes the CABAC syntax elements that are not mb_type/
  sub_mb_type: skip/field flags, coded block pattern, mb_qp_delta, intra
  prediction mode elements, reference indices, motion vector differences,
  coded_block_flag and end_of_slice_flag.

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/cabac/syntax_element.rs decision-tree approach and on the teacher
  package's per-element ctxIdxOffset/maxBinIdxCtx values (cabac.go's
  NewBinarization switch).
*/

package cabac

// DecodeMBSkipFlag decodes mb_skip_flag using the single-bin context at
// baseCtx + ctxIdxInc(0,1,2), per 9.3.3.1.1.3 (ctxIdxInc from neighbouring
// skip flags, computed by the caller and passed in as neighbourInc).
func DecodeMBSkipFlag(e *Engine, models []ContextState, baseCtx, neighbourInc int) (bool, error) {
	bin, err := e.DecodeDecision(&models[baseCtx+neighbourInc])
	return bin == 1, err
}

// DecodeMBFieldDecodingFlag decodes mb_field_decoding_flag, ctxIdx 70-72.
func DecodeMBFieldDecodingFlag(e *Engine, models []ContextState, neighbourInc int) (bool, error) {
	bin, err := e.DecodeDecision(&models[70+neighbourInc])
	return bin == 1, err
}

// DecodeTransformSize8x8Flag decodes transform_size_8x8_flag, ctxIdx 399-401.
func DecodeTransformSize8x8Flag(e *Engine, models []ContextState, neighbourInc int) (bool, error) {
	bin, err := e.DecodeDecision(&models[399+neighbourInc])
	return bin == 1, err
}

// DecodeCodedBlockPatternLuma decodes one of the four luma coded_block_pattern
// bits (one per 8x8 luma block), ctxIdx 73-76, neighbourInc per 9.3.3.1.1.4.
func DecodeCodedBlockPatternLuma(e *Engine, models []ContextState, neighbourInc int) (int, error) {
	return e.DecodeDecision(&models[73+neighbourInc])
}

// DecodeCodedBlockPatternChroma decodes one bin of the chroma
// coded_block_pattern's truncated-unary (cMax 2) binarization, ctxIdx 77-84.
func DecodeCodedBlockPatternChroma(e *Engine, models []ContextState, binIdx, neighbourInc int) (int, error) {
	base := 77
	if binIdx == 1 {
		base = 81
	}
	return e.DecodeDecision(&models[base+neighbourInc])
}

// DecodeMBQPDelta decodes mb_qp_delta via its unary-like binarization
// (9.3.2.7's mapping of mb_qp_delta to a "mapped" unsigned value before
// unary coding): ctxIdx 60 for bin 0 (ctxIdxInc from a neighbouring
// nonzero delta), ctxIdx 62 for bin 1, ctxIdx 63 for bins beyond.
func DecodeMBQPDelta(e *Engine, models []ContextState, neighbourNonZero bool) (int, error) {
	inc := 0
	if neighbourNonZero {
		inc = 1
	}
	mapped, err := DecodeUnary(e, func(binIdx int) *ContextState {
		switch {
		case binIdx == 0:
			return &models[60+inc]
		case binIdx == 1:
			return &models[62]
		default:
			return &models[63]
		}
	})
	if err != nil {
		return 0, err
	}
	return mapToSigned(mapped), nil
}

// mapToSigned implements the mb_qp_delta / pic_order_cnt-style mapping from
// a non-negative "mapped" unary-coded value back to its signed meaning:
// 0 -> 0, 1 -> 1, 2 -> -1, 3 -> 2, 4 -> -2, ...
func mapToSigned(mapped int) int {
	if mapped == 0 {
		return 0
	}
	v := (mapped + 1) / 2
	if mapped%2 == 0 {
		return -v
	}
	return v
}

// DecodeIntraChromaPredMode decodes intra_chroma_pred_mode, a truncated
// unary value with cMax 3, ctxIdx 64-66.
func DecodeIntraChromaPredMode(e *Engine, models []ContextState, neighbourInc int) (int, error) {
	return DecodeTruncatedUnary(e, 3, func(binIdx int) *ContextState {
		if binIdx == 0 {
			return &models[64+neighbourInc]
		}
		return &models[66]
	})
}

// DecodePrevIntraPredModeFlag decodes prev_intra4x4_pred_mode_flag /
// prev_intra8x8_pred_mode_flag, ctxIdx 68.
func DecodePrevIntraPredModeFlag(e *Engine, models []ContextState) (bool, error) {
	bin, err := e.DecodeDecision(&models[68])
	return bin == 1, err
}

// DecodeRemIntraPredMode decodes rem_intra4x4_pred_mode /
// rem_intra8x8_pred_mode, a 3-bit fixed-length value, ctxIdx 69 for all
// three bins (9.3.3.1.1.10 reuses one ctxIdx across the FL binarization).
func DecodeRemIntraPredMode(e *Engine, models []ContextState) (int, error) {
	val := 0
	for i := 0; i < 3; i++ {
		bin, err := e.DecodeDecision(&models[69])
		if err != nil {
			return 0, err
		}
		val = (val << 1) | bin
	}
	return val, nil
}

// DecodeRefIdx decodes ref_idx_l0/l1 via UEGk-style truncated unary (cMax
// effectively unbounded, decoded as plain unary since num_ref_idx rarely
// exceeds the modelled ctxIdx range), ctxIdx 54-59.
func DecodeRefIdx(e *Engine, models []ContextState, neighbourInc int) (int, error) {
	return DecodeUnary(e, func(binIdx int) *ContextState {
		switch {
		case binIdx == 0:
			return &models[54+neighbourInc]
		case binIdx == 1:
			return &models[58]
		default:
			return &models[59]
		}
	})
}

// DecodeMVD decodes one component (horizontal or vertical) of
// mvd_l0/mvd_l1, UEGk with uCoff 9, k 3, signed, ctxIdx 40-46 (horizontal)
// or 47-53 (vertical).
func DecodeMVD(e *Engine, models []ContextState, vertical bool, neighbourInc int) (int, error) {
	base := 40
	if vertical {
		base = 47
	}
	return DecodeUEGk(e, 9, 3, true, func(binIdx int) *ContextState {
		switch {
		case binIdx == 0:
			return &models[base+neighbourInc]
		case binIdx == 1:
			return &models[base+3]
		case binIdx == 2:
			return &models[base+4]
		case binIdx == 3:
			return &models[base+5]
		default:
			return &models[base+6]
		}
	})
}

// DecodeCodedBlockFlag decodes coded_block_flag, a single context-coded bin
// whose ctxIdx depends on the transform block category and neighbouring
// blocks' own coded_block_flag values; baseCtx selects the category's base
// (ctxIdx 85, 89, ... per table 9-28), neighbourInc is 0-3 from 9.3.3.1.1.9.
func DecodeCodedBlockFlag(e *Engine, models []ContextState, baseCtx, neighbourInc int) (bool, error) {
	bin, err := e.DecodeDecision(&models[baseCtx+neighbourInc])
	return bin == 1, err
}

// DecodeEndOfSliceFlag decodes end_of_slice_flag via
// DecodeTerminate(), ctxIdx 276, per 9.3.3.2.4 — there is no adaptive
// context state for this element; it is exposed here only for symmetry
// with the other Decode* helpers.
func DecodeEndOfSliceFlag(e *Engine) (bool, error) {
	bin, err := e.DecodeTerminate()
	return bin == 1, err
}
