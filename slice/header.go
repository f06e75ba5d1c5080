/*
DESCRIPTION
  header.go decodes the slice_header() syntax structure, section 7.3.3.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
  h264dec contributors
*/

package slice

import (
	"math/bits"

	"github.com/pkg/errors"

	bitreader "github.com/coastwatch/h264dec/bits"
	"github.com/coastwatch/h264dec/paramsets"
)

// Header is a decoded slice_header() structure.
type Header struct {
	FirstMbInSlice           uint
	SliceType                uint
	PPSID                    uint
	ColourPlaneID             uint
	FrameNum                 uint
	FieldPicFlag             bool
	BottomFieldFlag          bool
	IDRPicID                 uint
	PicOrderCntLsb           uint
	DeltaPicOrderCntBottom   int
	DeltaPicOrderCnt         [2]int
	RedundantPicCnt          uint
	DirectSpatialMvPredFlag  bool
	NumRefIdxActiveOverride  bool
	NumRefIdxL0ActiveMinus1  uint
	NumRefIdxL1ActiveMinus1  uint
	RefPicListModification   *RefPicListModification
	PredWeightTable          *PredWeightTable
	DecRefPicMarking         *DecRefPicMarking
	CabacInitIDC             uint
	SliceQPDelta             int
	SPForSwitchFlag          bool
	SliceQSDelta             int
	DisableDeblockingFilterIDC uint
	SliceAlphaC0OffsetDiv2   int
	SliceBetaOffsetDiv2      int
	SliceGroupChangeCycle    uint
}

// NewHeader parses a slice_header() structure. nalRefIdc and idrPic come
// from the enclosing NAL unit header (7.4.1, 7.4.3). sps and pps must be
// the parameter sets selected by the header's own pic_parameter_set_id;
// since that field is read partway through this function, callers resolve
// it via a cheap first pass (or already track "current" sets per decoder
// state) before invoking NewHeader.
func NewHeader(r *bitreader.Reader, sps *paramsets.SPS, pps *paramsets.PPS, idrPic bool, nalRefIdc uint8) (*Header, error) {
	h := &Header{}
	var err error

	if h.FirstMbInSlice, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "slice_header: could not read first_mb_in_slice")
	}
	if h.SliceType, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "slice_header: could not read slice_type")
	}
	if h.PPSID, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "slice_header: could not read pic_parameter_set_id")
	}
	if sps.SeparateColourPlaneFlag {
		if h.ColourPlaneID, err = r.BitsIntoUint(2); err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read colour_plane_id")
		}
	}

	if h.FrameNum, err = r.BitsIntoUint(int(sps.Log2MaxFrameNumMinus4 + 4)); err != nil {
		return nil, errors.Wrap(err, "slice_header: could not read frame_num")
	}

	if !sps.FrameMbsOnlyFlag {
		b, err := r.Bit()
		if err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read field_pic_flag")
		}
		h.FieldPicFlag = b != 0
		if h.FieldPicFlag {
			if b, err = r.Bit(); err != nil {
				return nil, errors.Wrap(err, "slice_header: could not read bottom_field_flag")
			}
			h.BottomFieldFlag = b != 0
		}
	}

	if idrPic {
		if h.IDRPicID, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read idr_pic_id")
		}
	}

	if sps.PicOrderCntType == 0 {
		if h.PicOrderCntLsb, err = r.BitsIntoUint(int(sps.Log2MaxPicOrderCntLsbMinus4 + 4)); err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read pic_order_cnt_lsb")
		}
		if pps.BottomFieldPicOrderInFramePresentFlag && !h.FieldPicFlag {
			v, err := r.SignedExpGolomb()
			if err != nil {
				return nil, errors.Wrap(err, "slice_header: could not read delta_pic_order_cnt_bottom")
			}
			h.DeltaPicOrderCntBottom = int(v)
		}
	}
	if sps.PicOrderCntType == 1 && !sps.DeltaPicOrderAlwaysZeroFlag {
		v, err := r.SignedExpGolomb()
		if err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read delta_pic_order_cnt[0]")
		}
		h.DeltaPicOrderCnt[0] = int(v)
		if pps.BottomFieldPicOrderInFramePresentFlag && !h.FieldPicFlag {
			v, err := r.SignedExpGolomb()
			if err != nil {
				return nil, errors.Wrap(err, "slice_header: could not read delta_pic_order_cnt[1]")
			}
			h.DeltaPicOrderCnt[1] = int(v)
		}
	}

	if pps.RedundantPicCntPresentFlag {
		if h.RedundantPicCnt, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read redundant_pic_cnt")
		}
	}

	if BaseType(h.SliceType) == SliceTypeB {
		b, err := r.Bit()
		if err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read direct_spatial_mv_pred_flag")
		}
		h.DirectSpatialMvPredFlag = b != 0
	}

	h.NumRefIdxL0ActiveMinus1 = pps.NumRefIdxL0DefaultActiveMinus1
	h.NumRefIdxL1ActiveMinus1 = pps.NumRefIdxL1DefaultActiveMinus1
	if BaseType(h.SliceType) == SliceTypeB || BaseType(h.SliceType) == SliceTypeSP {
		b, err := r.Bit()
		if err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read num_ref_idx_active_override_flag")
		}
		h.NumRefIdxActiveOverride = b != 0
		if h.NumRefIdxActiveOverride {
			if h.NumRefIdxL0ActiveMinus1, err = r.ExpGolombUint(); err != nil {
				return nil, errors.Wrap(err, "slice_header: could not read num_ref_idx_l0_active_minus1")
			}
			if BaseType(h.SliceType) == SliceTypeB {
				if h.NumRefIdxL1ActiveMinus1, err = r.ExpGolombUint(); err != nil {
					return nil, errors.Wrap(err, "slice_header: could not read num_ref_idx_l1_active_minus1")
				}
			}
		}
	}

	h.RefPicListModification, err = NewRefPicListModification(r, h.SliceType)
	if err != nil {
		return nil, errors.Wrap(err, "slice_header: ref_pic_list_modification")
	}

	if (pps.WeightedPredFlag && (BaseType(h.SliceType) == SliceTypeP || BaseType(h.SliceType) == SliceTypeSP)) ||
		(pps.WeightedBipredIDC == 1 && BaseType(h.SliceType) == SliceTypeB) {
		h.PredWeightTable, err = NewPredWeightTable(r, h.SliceType, sps.ChromaArrayType(), h.NumRefIdxL0ActiveMinus1, h.NumRefIdxL1ActiveMinus1)
		if err != nil {
			return nil, errors.Wrap(err, "slice_header: pred_weight_table")
		}
	}

	if nalRefIdc != 0 {
		h.DecRefPicMarking, err = NewDecRefPicMarking(r, idrPic)
		if err != nil {
			return nil, errors.Wrap(err, "slice_header: dec_ref_pic_marking")
		}
	}

	if pps.EntropyCodingModeFlag && BaseType(h.SliceType) != SliceTypeI && BaseType(h.SliceType) != SliceTypeSI {
		if h.CabacInitIDC, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read cabac_init_idc")
		}
	}

	sliceQPDelta, err := r.SignedExpGolomb()
	if err != nil {
		return nil, errors.Wrap(err, "slice_header: could not read slice_qp_delta")
	}
	h.SliceQPDelta = int(sliceQPDelta)

	if BaseType(h.SliceType) == SliceTypeSP || BaseType(h.SliceType) == SliceTypeSI {
		if BaseType(h.SliceType) == SliceTypeSP {
			b, err := r.Bit()
			if err != nil {
				return nil, errors.Wrap(err, "slice_header: could not read sp_for_switch_flag")
			}
			h.SPForSwitchFlag = b != 0
		}
		v, err := r.SignedExpGolomb()
		if err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read slice_qs_delta")
		}
		h.SliceQSDelta = int(v)
	}

	if pps.DeblockingFilterControlPresentFlag {
		if h.DisableDeblockingFilterIDC, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read disable_deblocking_filter_idc")
		}
		if h.DisableDeblockingFilterIDC != 1 {
			v, err := r.SignedExpGolomb()
			if err != nil {
				return nil, errors.Wrap(err, "slice_header: could not read slice_alpha_c0_offset_div2")
			}
			h.SliceAlphaC0OffsetDiv2 = int(v)
			v, err = r.SignedExpGolomb()
			if err != nil {
				return nil, errors.Wrap(err, "slice_header: could not read slice_beta_offset_div2")
			}
			h.SliceBetaOffsetDiv2 = int(v)
		}
	}

	if pps.NumSliceGroupsMinus1 > 0 && pps.SliceGroupMapType >= 3 && pps.SliceGroupMapType <= 5 {
		picSizeInMapUnits := pps.PicSizeInMapUnitsMinus1 + 1
		changeRate := pps.SliceGroupChangeRateMinus1 + 1
		width := ceilLog2(picSizeInMapUnits/changeRate + 1)
		v, err := r.BitsIntoUint(width)
		if err != nil {
			return nil, errors.Wrap(err, "slice_header: could not read slice_group_change_cycle")
		}
		h.SliceGroupChangeCycle = v
	}

	return h, nil
}

// ceilLog2 returns Ceil(Log2(n)), per 7.4.3's slice_group_change_cycle width.
func ceilLog2(n uint) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(n - 1)
}
