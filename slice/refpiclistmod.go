/*
DESCRIPTION
  refpiclistmod.go decodes the ref_pic_list_modification() syntax structure,
  section 7.3.3.1.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
  h264dec contributors
*/

package slice

import (
	"github.com/pkg/errors"

	"github.com/coastwatch/h264dec/bits"
)

// ModOp names the modification_of_pic_nums_idc values, table 7-7.
const (
	ModOpSubtractAbsDiff = 0
	ModOpAddAbsDiff      = 1
	ModOpLongTerm        = 2
	ModOpEndLoop         = 3
)

// RefPicListModEntry is one iteration of ref_pic_list_modification()'s loop.
type RefPicListModEntry struct {
	Op                  uint
	AbsDiffPicNumMinus1 uint
	LongTermPicNum      uint
}

// RefPicListModification holds, per list (index 0 = L0, 1 = L1), whether
// modification is present and its ordered entries.
type RefPicListModification struct {
	Flag    [2]bool
	Entries [2][]RefPicListModEntry
}

// NewRefPicListModification parses a ref_pic_list_modification() structure.
// The Annex H ref_pic_list_mvc_modification() variant (for nal_unit_type 20,
// 21) is not implemented: this decoder does not support MVC, per spec
// section 1 scope.
func NewRefPicListModification(r *bits.Reader, sliceType uint) (*RefPicListModification, error) {
	m := &RefPicListModification{}

	if sliceType%5 != SliceTypeI && sliceType%5 != SliceTypeSI {
		b, err := r.Bit()
		if err != nil {
			return nil, errors.Wrap(err, "ref_pic_list_modification: could not read ref_pic_list_modification_flag_l0")
		}
		m.Flag[0] = b != 0
		if m.Flag[0] {
			entries, err := readModList(r)
			if err != nil {
				return nil, errors.Wrap(err, "ref_pic_list_modification: L0")
			}
			m.Entries[0] = entries
		}
	}

	if sliceType%5 == SliceTypeB {
		b, err := r.Bit()
		if err != nil {
			return nil, errors.Wrap(err, "ref_pic_list_modification: could not read ref_pic_list_modification_flag_l1")
		}
		m.Flag[1] = b != 0
		if m.Flag[1] {
			entries, err := readModList(r)
			if err != nil {
				return nil, errors.Wrap(err, "ref_pic_list_modification: L1")
			}
			m.Entries[1] = entries
		}
	}

	return m, nil
}

func readModList(r *bits.Reader) ([]RefPicListModEntry, error) {
	var entries []RefPicListModEntry
	for {
		op, err := r.ExpGolombUint()
		if err != nil {
			return nil, errors.Wrap(err, "could not read modification_of_pic_nums_idc")
		}
		e := RefPicListModEntry{Op: op}
		switch op {
		case ModOpSubtractAbsDiff, ModOpAddAbsDiff:
			if e.AbsDiffPicNumMinus1, err = r.ExpGolombUint(); err != nil {
				return nil, errors.Wrap(err, "could not read abs_diff_pic_num_minus1")
			}
		case ModOpLongTerm:
			if e.LongTermPicNum, err = r.ExpGolombUint(); err != nil {
				return nil, errors.Wrap(err, "could not read long_term_pic_num")
			}
		}
		entries = append(entries, e)
		if op == ModOpEndLoop {
			return entries, nil
		}
	}
}
