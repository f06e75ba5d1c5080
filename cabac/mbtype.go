/*
DESCRIPTION
  mbtype.go decodes mb_type and sub_mb_type for every slice type, following
  the structure of tables 9-36 through 9-38 and the decision trees implied
  by them (9.3.3.1.1, 9.3.3.1.2).

AUTHORS
  h264dec contributors, grounded on the teacher package's binarization
  tables (cabac.go) and the decision-tree approach of the Rust original's
  syntax_element.rs (se(table, ctxs)).
*/

package cabac

import "github.com/pkg/errors"

// decodeAgainstTable decodes bins one at a time (each via ctxForBin(binIdx),
// or via bypass when ctxForBin is nil) until the accumulated bin sequence
// exactly matches one row of table, returning that row's index. Binarization
// codes are prefix-free, so the first exact match is unambiguous.
func decodeAgainstTable(e *Engine, table [][]int, ctxForBin func(binIdx int) *ContextState) (int, error) {
	var bins []int
	for len(bins) < 32 {
		binIdx := len(bins)
		var bin int
		var err error
		if ctxForBin == nil {
			bin, err = e.DecodeBypass()
		} else {
			bin, err = e.DecodeDecision(ctxForBin(binIdx))
		}
		if err != nil {
			return 0, err
		}
		bins = append(bins, bin)
		for val, row := range table {
			if intsEqual(row, bins) {
				return val, nil
			}
		}
	}
	return 0, errors.New("cabac: binarization decode exceeded maximum bin length")
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// mbTypeICtx returns the ctxIdx for bin binIdx of an I-slice mb_type,
// table 9-39's ctxIdxInc assignment collapsed to this decoder's flat
// context table (ctxIdx 3-10); bins at index 8 and beyond reuse ctxIdx 10.
func mbTypeICtx(models []ContextState, binIdx int) *ContextState {
	base := 3
	if binIdx >= 8 {
		return &models[10]
	}
	return &models[base+binIdx]
}

// DecodeMBTypeI decodes mb_type in an I slice (table 9-36).
func DecodeMBTypeI(e *Engine, models []ContextState) (int, error) {
	return decodeAgainstTable(e, binOfIMBTypes[:], func(binIdx int) *ContextState {
		return mbTypeICtx(models, binIdx)
	})
}

// DecodeMBTypeP decodes mb_type in a P or SP slice (table 9-37): a leading
// context-coded bit selects between the four P/SP-specific types and an
// escape into the I-slice table (offset by 5, per the standard's mb_type
// numbering for P slices).
func DecodeMBTypeP(e *Engine, models []ContextState) (int, error) {
	escape, err := e.DecodeDecision(&models[14])
	if err != nil {
		return 0, err
	}
	if escape == 1 {
		iType, err := DecodeMBTypeI(e, models)
		if err != nil {
			return 0, err
		}
		return 5 + iType, nil
	}
	rest, err := decodeAgainstTable(e, [][]int{{0, 0}, {1, 1}, {1, 0}, {0, 1}}, func(binIdx int) *ContextState {
		return &models[15+binIdx]
	})
	if err != nil {
		return 0, err
	}
	return rest, nil
}

// DecodeMBTypeB decodes mb_type in a B slice (table 9-37): bin 0 selects
// B_Direct_16x16 (value 0); non-zero prefixes decode against the
// 23-entry B table (values 0-22, 22 being B_8x8) plus the prefix 111101,
// which signals the escape into the I table (offset by 23).
func DecodeMBTypeB(e *Engine, models []ContextState) (int, error) {
	ctxForBin := func(binIdx int) *ContextState {
		if binIdx == 0 {
			return &models[27]
		}
		if binIdx == 1 {
			return &models[28]
		}
		idx := 29 + (binIdx - 2)
		if idx > 32 {
			idx = 32
		}
		return &models[idx]
	}
	const escape = len(binOfBMBTypes)
	table := append(binOfBMBTypes[:escape:escape], []int{1, 1, 1, 1, 0, 1})
	val, err := decodeAgainstTable(e, table, ctxForBin)
	if err != nil {
		return 0, err
	}
	if val == escape {
		iType, err := DecodeMBTypeI(e, models)
		if err != nil {
			return 0, err
		}
		return 23 + iType, nil
	}
	return val, nil
}

// DecodeSubMBTypeP decodes sub_mb_type in a P or SP slice (table 9-38).
func DecodeSubMBTypeP(e *Engine, models []ContextState) (int, error) {
	return decodeAgainstTable(e, binOfPOrSPSubMBTypes[:], func(binIdx int) *ContextState {
		idx := 21 + binIdx
		if idx > 23 {
			idx = 23
		}
		return &models[idx]
	})
}

// DecodeSubMBTypeB decodes sub_mb_type in a B slice (table 9-38).
func DecodeSubMBTypeB(e *Engine, models []ContextState) (int, error) {
	return decodeAgainstTable(e, binOfBSubMBTypes[:], func(binIdx int) *ContextState {
		idx := 36 + binIdx
		if idx > 39 {
			idx = 39
		}
		return &models[idx]
	})
}
