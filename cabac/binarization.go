/*
DESCRIPTION
  binarization.go provides the macroblock/sub-macroblock type binarization
  string tables (9.3.2.5, tables 9-36 through 9-38) and the generic unary /
  truncated unary / k-th order Exp-Golomb (UEGk) binarization processes of
  9.3.2.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
  h264dec contributors
*/

package cabac

// binOfIMBTypes provides binarization strings for mb_type in I slices,
// table 9-36.
var binOfIMBTypes = [26][]int{
	0:  {0},
	1:  {1, 0, 0, 0, 0, 0},
	2:  {1, 0, 0, 0, 0, 1},
	3:  {1, 0, 0, 0, 1, 0},
	4:  {1, 0, 0, 0, 1, 1},
	5:  {1, 0, 0, 1, 0, 0, 0},
	6:  {1, 0, 0, 1, 0, 0, 1},
	7:  {1, 0, 0, 1, 0, 1, 0},
	8:  {1, 0, 0, 1, 0, 1, 1},
	9:  {1, 0, 0, 1, 1, 0, 0},
	10: {1, 0, 0, 1, 1, 0, 1},
	11: {1, 0, 0, 1, 1, 1, 0},
	12: {1, 0, 0, 1, 1, 1, 1},
	13: {1, 0, 1, 0, 0, 0},
	14: {1, 0, 1, 0, 0, 1},
	15: {1, 0, 1, 0, 1, 0},
	16: {1, 0, 1, 0, 1, 1},
	17: {1, 0, 1, 1, 0, 0, 0},
	18: {1, 0, 1, 1, 0, 0, 1},
	19: {1, 0, 1, 1, 0, 1, 0},
	20: {1, 0, 1, 1, 0, 1, 1},
	21: {1, 0, 1, 1, 1, 0, 0},
	22: {1, 0, 1, 1, 1, 0, 1},
	23: {1, 0, 1, 1, 1, 1, 0},
	24: {1, 0, 1, 1, 1, 1, 1},
	25: {1, 1},
}

// binOfPOrSPMBTypes provides binarization strings for mb_type in P/SP
// slices, table 9-37. Types 5-30 binarize to "1" followed by the I-slice
// table applied to (mb_type - 5); DecodeMBTypeP handles that offset.
var binOfPOrSPMBTypes = [5][]int{
	0: {0, 0, 0},
	1: {0, 1, 1},
	2: {0, 1, 0},
	3: {0, 0, 1},
	4: {},
}

// binOfBMBTypes provides binarization strings for mb_type in B slices,
// table 9-37. Types 23-48 binarize to "111101" followed by the I-slice
// table applied to (mb_type - 23).
var binOfBMBTypes = [23][]int{
	0:  {0},
	1:  {1, 0, 0},
	2:  {1, 0, 1},
	3:  {1, 1, 0, 0, 0, 0},
	4:  {1, 1, 0, 0, 0, 1},
	5:  {1, 1, 0, 0, 1, 0},
	6:  {1, 1, 0, 0, 1, 1},
	7:  {1, 1, 0, 1, 0, 0},
	8:  {1, 1, 0, 1, 0, 1},
	9:  {1, 1, 0, 1, 1, 0},
	10: {1, 1, 0, 1, 1, 1},
	11: {1, 1, 1, 1, 1, 0},
	12: {1, 1, 1, 0, 0, 0, 0},
	13: {1, 1, 1, 0, 0, 0, 1},
	14: {1, 1, 1, 0, 0, 1, 0},
	15: {1, 1, 1, 0, 0, 1, 1},
	16: {1, 1, 1, 0, 1, 0, 0},
	17: {1, 1, 1, 0, 1, 0, 1},
	18: {1, 1, 1, 0, 1, 1, 0},
	19: {1, 1, 1, 0, 1, 1, 1},
	20: {1, 1, 1, 1, 0, 0, 0},
	21: {1, 1, 1, 1, 0, 0, 1},
	22: {1, 1, 1, 1, 1, 1},
}

// binOfPOrSPSubMBTypes provides binarization strings for sub_mb_type in
// P/SP slices, table 9-38.
var binOfPOrSPSubMBTypes = [4][]int{
	0: {1},
	1: {0, 0},
	2: {0, 1, 1},
	3: {0, 1, 0},
}

// binOfBSubMBTypes provides binarization strings for sub_mb_type in B
// slices, table 9-38.
var binOfBSubMBTypes = [13][]int{
	0:  {0},
	1:  {1, 0, 0},
	2:  {1, 0, 1},
	3:  {1, 1, 0, 0, 0},
	4:  {1, 1, 0, 0, 1},
	5:  {1, 1, 0, 1, 0},
	6:  {1, 1, 0, 1, 1},
	7:  {1, 1, 1, 0, 0, 0},
	8:  {1, 1, 1, 0, 0, 1},
	9:  {1, 1, 1, 0, 1, 0},
	10: {1, 1, 1, 0, 1, 1},
	11: {1, 1, 1, 1, 0},
	12: {1, 1, 1, 1, 1},
}

// DecodeUnary decodes a unary-binarized (9.3.2.1) value by repeatedly
// decoding a decision against ctxForBin(binIdx) until an MPS-terminated 0
// bin (or, for bypass, a literal 0 bit) is seen.
func DecodeUnary(e *Engine, ctxForBin func(binIdx int) *ContextState) (int, error) {
	val := 0
	for {
		var bin int
		var err error
		if ctxForBin == nil {
			bin, err = e.DecodeBypass()
		} else {
			bin, err = e.DecodeDecision(ctxForBin(val))
		}
		if err != nil {
			return 0, err
		}
		if bin == 0 {
			return val, nil
		}
		val++
	}
}

// DecodeTruncatedUnary decodes a truncated unary (9.3.2.2) value bounded by
// cMax: identical to DecodeUnary but stops (without reading a terminating
// 0 bin) once val reaches cMax.
func DecodeTruncatedUnary(e *Engine, cMax int, ctxForBin func(binIdx int) *ContextState) (int, error) {
	if cMax == 0 {
		return 0, nil
	}
	val := 0
	for val < cMax {
		var bin int
		var err error
		if ctxForBin == nil {
			bin, err = e.DecodeBypass()
		} else {
			bin, err = e.DecodeDecision(ctxForBin(val))
		}
		if err != nil {
			return 0, err
		}
		if bin == 0 {
			return val, nil
		}
		val++
	}
	return val, nil
}

// DecodeUEGk decodes a k-th order Exp-Golomb-binarized (9.3.2.3) value: a
// truncated-unary prefix bounded by uCoff (decoded through ctxForBin, which
// may be nil to use bypass throughout) followed, when the prefix saturates
// at uCoff, by an Exp-Golomb-order-k bypass-coded suffix.
func DecodeUEGk(e *Engine, uCoff, k int, signed bool, ctxForBin func(binIdx int) *ContextState) (int, error) {
	prefix, err := DecodeTruncatedUnary(e, uCoff, ctxForBin)
	if err != nil {
		return 0, err
	}
	val := prefix
	if prefix == uCoff {
		suffix, err := decodeEGk(e, k)
		if err != nil {
			return 0, err
		}
		val += suffix
	}
	if !signed || val == 0 {
		return val, nil
	}
	signBit, err := e.DecodeBypass()
	if err != nil {
		return 0, err
	}
	if signBit == 1 {
		return -val, nil
	}
	return val, nil
}

// decodeEGk decodes the bypass-coded k-th order Exp-Golomb suffix used by
// DecodeUEGk once its truncated-unary prefix saturates, per the process
// described in 9.3.2.3.
func decodeEGk(e *Engine, k int) (int, error) {
	leadingOnes := 0
	for {
		b, err := e.DecodeBypass()
		if err != nil {
			return 0, err
		}
		if b == 0 {
			break
		}
		leadingOnes++
	}
	val := 0
	for i := 0; i < leadingOnes+k; i++ {
		b, err := e.DecodeBypass()
		if err != nil {
			return 0, err
		}
		val = (val << 1) | b
	}
	val += (1 << k) * ((1 << leadingOnes) - 1)
	return val, nil
}
