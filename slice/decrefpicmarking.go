/*
DESCRIPTION
  decrefpicmarking.go decodes the dec_ref_pic_marking() syntax structure,
  section 7.3.3.3, the bitstream-level input to the DPB's reference picture
  marking process.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
  h264dec contributors
*/

package slice

import (
	"github.com/pkg/errors"

	"github.com/coastwatch/h264dec/bits"
)

// MMCO operation codes, table 7-9.
const (
	MMCOEnd                    = 0
	MMCOMarkShortTermUnused     = 1
	MMCOMarkLongTermUnused      = 2
	MMCOAssignLongTerm          = 3
	MMCOSetMaxLongTermFrameIdx  = 4
	MMCOMarkAllUnusedSetCurrent = 5
	MMCOMarkCurrentLongTerm     = 6
)

// MMCOEntry is one memory_management_control_operation loop iteration.
type MMCOEntry struct {
	Op                       uint
	DifferenceOfPicNumsMinus1 uint
	LongTermPicNum           uint
	LongTermFrameIdx         uint
	MaxLongTermFrameIdxPlus1 uint
}

// DecRefPicMarking holds a decoded dec_ref_pic_marking() structure.
type DecRefPicMarking struct {
	IDR                           bool
	NoOutputOfPriorPicsFlag       bool
	LongTermReferenceFlag         bool
	AdaptiveRefPicMarkingModeFlag bool
	Ops                           []MMCOEntry
}

// NewDecRefPicMarking parses a dec_ref_pic_marking() structure. idrPic
// selects between the IDR-only fields and the general MMCO loop.
func NewDecRefPicMarking(r *bits.Reader, idrPic bool) (*DecRefPicMarking, error) {
	d := &DecRefPicMarking{IDR: idrPic}

	if idrPic {
		b, err := r.Bit()
		if err != nil {
			return nil, errors.Wrap(err, "dec_ref_pic_marking: could not read no_output_of_prior_pics_flag")
		}
		d.NoOutputOfPriorPicsFlag = b != 0
		if b, err = r.Bit(); err != nil {
			return nil, errors.Wrap(err, "dec_ref_pic_marking: could not read long_term_reference_flag")
		}
		d.LongTermReferenceFlag = b != 0
		return d, nil
	}

	b, err := r.Bit()
	if err != nil {
		return nil, errors.Wrap(err, "dec_ref_pic_marking: could not read adaptive_ref_pic_marking_mode_flag")
	}
	d.AdaptiveRefPicMarkingModeFlag = b != 0
	if !d.AdaptiveRefPicMarkingModeFlag {
		return d, nil
	}

	for {
		op, err := r.ExpGolombUint()
		if err != nil {
			return nil, errors.Wrap(err, "dec_ref_pic_marking: could not read memory_management_control_operation")
		}
		e := MMCOEntry{Op: op}
		switch op {
		case MMCOMarkShortTermUnused, MMCOAssignLongTerm:
			if e.DifferenceOfPicNumsMinus1, err = r.ExpGolombUint(); err != nil {
				return nil, errors.Wrap(err, "dec_ref_pic_marking: could not read difference_of_pic_nums_minus1")
			}
		}
		if op == MMCOMarkLongTermUnused {
			if e.LongTermPicNum, err = r.ExpGolombUint(); err != nil {
				return nil, errors.Wrap(err, "dec_ref_pic_marking: could not read long_term_pic_num")
			}
		}
		if op == MMCOAssignLongTerm || op == MMCOMarkCurrentLongTerm {
			if e.LongTermFrameIdx, err = r.ExpGolombUint(); err != nil {
				return nil, errors.Wrap(err, "dec_ref_pic_marking: could not read long_term_frame_idx")
			}
		}
		if op == MMCOSetMaxLongTermFrameIdx {
			if e.MaxLongTermFrameIdxPlus1, err = r.ExpGolombUint(); err != nil {
				return nil, errors.Wrap(err, "dec_ref_pic_marking: could not read max_long_term_frame_idx_plus1")
			}
		}
		d.Ops = append(d.Ops, e)
		if op == MMCOEnd {
			return d, nil
		}
	}
}
