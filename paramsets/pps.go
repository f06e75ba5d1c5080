/*
DESCRIPTION
  pps.go decodes the picture parameter set RBSP, as defined in section 7.3.2.2
  of ITU-T H.264.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
  h264dec contributors
*/

package paramsets

import (
	"github.com/pkg/errors"

	"github.com/coastwatch/h264dec/bits"
)

// Slice group map types, table 7-13.
const (
	SliceGroupMapTypeInterleaved = iota
	SliceGroupMapTypeDispersed
	SliceGroupMapTypeForegroundAndBackground
	SliceGroupMapTypeChangingBoxOut
	SliceGroupMapTypeChangingRaster
	SliceGroupMapTypeChangingWipe
	SliceGroupMapTypeExplicit
)

// PPS is a decoded picture parameter set.
type PPS struct {
	ID                                    uint
	SPSID                                 uint
	EntropyCodingModeFlag                 bool
	BottomFieldPicOrderInFramePresentFlag bool
	NumSliceGroupsMinus1                  uint
	SliceGroupMapType                     uint
	RunLengthMinus1                       []uint
	TopLeft                               []uint
	BottomRight                           []uint
	SliceGroupChangeDirectionFlag         bool
	SliceGroupChangeRateMinus1            uint
	PicSizeInMapUnitsMinus1               uint
	SliceGroupID                          []uint
	NumRefIdxL0DefaultActiveMinus1        uint
	NumRefIdxL1DefaultActiveMinus1        uint
	WeightedPredFlag                      bool
	WeightedBipredIDC                     uint
	PicInitQPMinus26                      int
	PicInitQSMinus26                      int
	ChromaQPIndexOffset                   int
	DeblockingFilterControlPresentFlag    bool
	ConstrainedIntraPredFlag              bool
	RedundantPicCntPresentFlag            bool

	// Extension fields, present when more_rbsp_data() after the above.
	Transform8x8ModeFlag      bool
	PicScalingMatrixPresentFlag bool
	PicScalingList4x4         [6][]int
	PicScalingList8x8         [6][]int
	SecondChromaQPIndexOffset int
}

// NewPPS parses a PPS from an RBSP byte slice. chromaFormatIDC comes from
// the referenced SPS, needed to size the optional extension's scaling-list
// set per 7.3.2.2.
func NewPPS(rbsp []byte, chromaFormatIDC uint) (*PPS, error) {
	r := bits.NewReader(rbsp)
	p := &PPS{}
	var err error

	if p.ID, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "pps: could not read pic_parameter_set_id")
	}
	if p.SPSID, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "pps: could not read seq_parameter_set_id")
	}
	b, err := r.Bit()
	if err != nil {
		return nil, errors.Wrap(err, "pps: could not read entropy_coding_mode_flag")
	}
	p.EntropyCodingModeFlag = b != 0
	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "pps: could not read bottom_field_pic_order_in_frame_present_flag")
	}
	p.BottomFieldPicOrderInFramePresentFlag = b != 0

	if p.NumSliceGroupsMinus1, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "pps: could not read num_slice_groups_minus1")
	}
	if p.NumSliceGroupsMinus1 > 0 {
		if p.SliceGroupMapType, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "pps: could not read slice_group_map_type")
		}
		switch p.SliceGroupMapType {
		case SliceGroupMapTypeInterleaved:
			for i := uint(0); i <= p.NumSliceGroupsMinus1; i++ {
				v, err := r.ExpGolombUint()
				if err != nil {
					return nil, errors.Wrapf(err, "pps: could not read run_length_minus1[%d]", i)
				}
				p.RunLengthMinus1 = append(p.RunLengthMinus1, v)
			}
		case SliceGroupMapTypeForegroundAndBackground, SliceGroupMapTypeChangingBoxOut,
			SliceGroupMapTypeChangingRaster, SliceGroupMapTypeChangingWipe:
			for i := uint(0); i <= p.NumSliceGroupsMinus1; i++ {
				tl, err := r.ExpGolombUint()
				if err != nil {
					return nil, errors.Wrapf(err, "pps: could not read top_left[%d]", i)
				}
				br, err := r.ExpGolombUint()
				if err != nil {
					return nil, errors.Wrapf(err, "pps: could not read bottom_right[%d]", i)
				}
				p.TopLeft = append(p.TopLeft, tl)
				p.BottomRight = append(p.BottomRight, br)
			}
		}
		switch p.SliceGroupMapType {
		case 3, 4, 5: // changing box-out / raster scan / wipe
			dir, err := r.Bit()
			if err != nil {
				return nil, errors.Wrap(err, "pps: could not read slice_group_change_direction_flag")
			}
			p.SliceGroupChangeDirectionFlag = dir != 0
			if p.SliceGroupChangeRateMinus1, err = r.ExpGolombUint(); err != nil {
				return nil, errors.Wrap(err, "pps: could not read slice_group_change_rate_minus1")
			}
		case SliceGroupMapTypeExplicit:
			if p.PicSizeInMapUnitsMinus1, err = r.ExpGolombUint(); err != nil {
				return nil, errors.Wrap(err, "pps: could not read pic_size_in_map_units_minus1")
			}
			bitsPerID := ceilLog2(p.NumSliceGroupsMinus1 + 1)
			for i := uint(0); i <= p.PicSizeInMapUnitsMinus1; i++ {
				v, err := r.BitsIntoUint(bitsPerID)
				if err != nil {
					return nil, errors.Wrapf(err, "pps: could not read slice_group_id[%d]", i)
				}
				p.SliceGroupID = append(p.SliceGroupID, v)
			}
		}
	}

	if p.NumRefIdxL0DefaultActiveMinus1, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "pps: could not read num_ref_idx_l0_default_active_minus1")
	}
	if p.NumRefIdxL1DefaultActiveMinus1, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "pps: could not read num_ref_idx_l1_default_active_minus1")
	}
	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "pps: could not read weighted_pred_flag")
	}
	p.WeightedPredFlag = b != 0
	if p.WeightedBipredIDC, err = r.BitsIntoUint(2); err != nil {
		return nil, errors.Wrap(err, "pps: could not read weighted_bipred_idc")
	}
	qpy, err := r.SignedExpGolomb()
	if err != nil {
		return nil, errors.Wrap(err, "pps: could not read pic_init_qp_minus26")
	}
	p.PicInitQPMinus26 = int(qpy)
	qps, err := r.SignedExpGolomb()
	if err != nil {
		return nil, errors.Wrap(err, "pps: could not read pic_init_qs_minus26")
	}
	p.PicInitQSMinus26 = int(qps)
	cqpo, err := r.SignedExpGolomb()
	if err != nil {
		return nil, errors.Wrap(err, "pps: could not read chroma_qp_index_offset")
	}
	p.ChromaQPIndexOffset = int(cqpo)
	p.SecondChromaQPIndexOffset = p.ChromaQPIndexOffset // default per 7.4.2.2, overridden below if present

	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "pps: could not read deblocking_filter_control_present_flag")
	}
	p.DeblockingFilterControlPresentFlag = b != 0
	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "pps: could not read constrained_intra_pred_flag")
	}
	p.ConstrainedIntraPredFlag = b != 0
	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "pps: could not read redundant_pic_cnt_present_flag")
	}
	p.RedundantPicCntPresentFlag = b != 0

	if !r.HasBits() {
		return p, nil
	}
	// more_rbsp_data() is false when what remains is only
	// rbsp_trailing_bits(): the stop bit followed by zero padding.
	if rem := r.BitsRemaining(); rem <= 8 {
		if v, err := r.PeekBits(rem); err == nil && v == 1<<uint(rem-1) {
			return p, nil
		}
	}

	t8x8, err := r.Bit()
	if err != nil {
		return nil, errors.Wrap(err, "pps: could not read transform_8x8_mode_flag")
	}
	p.Transform8x8ModeFlag = t8x8 != 0

	scalingPresent, err := r.Bit()
	if err != nil {
		return nil, errors.Wrap(err, "pps: could not read pic_scaling_matrix_present_flag")
	}
	p.PicScalingMatrixPresentFlag = scalingPresent != 0
	if p.PicScalingMatrixPresentFlag {
		listCount := 6 + 2*boolToInt(p.Transform8x8ModeFlag)
		if chromaFormatIDC == Chroma444 {
			listCount = 6 + 6*boolToInt(p.Transform8x8ModeFlag)
		}
		for i := 0; i < listCount; i++ {
			present, err := r.Bit()
			if err != nil {
				return nil, errors.Wrapf(err, "pps: could not read pic_scaling_list_present_flag[%d]", i)
			}
			if present == 0 {
				continue
			}
			if i < 6 {
				fallback := Default4x4IntraList
				if i >= 3 {
					fallback = Default4x4InterList
				}
				list, _, err := ScalingList(r, 16, fallback)
				if err != nil {
					return nil, errors.Wrapf(err, "pps: could not read scaling_list 4x4[%d]", i)
				}
				p.PicScalingList4x4[i] = list
			} else {
				idx := i - 6
				fallback := Default8x8IntraList
				if idx%2 == 1 {
					fallback = Default8x8InterList
				}
				list, _, err := ScalingList(r, 64, fallback)
				if err != nil {
					return nil, errors.Wrapf(err, "pps: could not read scaling_list 8x8[%d]", idx)
				}
				p.PicScalingList8x8[idx] = list
			}
		}
	}

	scqpo, err := r.SignedExpGolomb()
	if err != nil {
		return nil, errors.Wrap(err, "pps: could not read second_chroma_qp_index_offset")
	}
	p.SecondChromaQPIndexOffset = int(scqpo)

	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ceilLog2 returns Ceil(Log2(n)), used to size slice_group_id[i] (7.4.2.2).
func ceilLog2(n uint) int {
	bits := 0
	v := uint(1)
	for v < n {
		v <<= 1
		bits++
	}
	return bits
}
