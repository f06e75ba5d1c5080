/*
DESCRIPTION
  sps.go decodes the sequence parameter set RBSP, as defined in section 7.3.2.1
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

// profiles that carry the chroma_format_idc / scaling-matrix / bit-depth
// fields in seq_parameter_set_data(), per 7.3.2.1.1.
var profilesWithChromaInfo = map[uint8]bool{
	100: true, 110: true, 122: true, 244: true, 44: true,
	83: true, 86: true, 118: true, 128: true, 138: true,
	139: true, 134: true, 135: true,
}

// SPS is a decoded sequence parameter set.
type SPS struct {
	ProfileIDC                         uint8
	ConstraintSet0Flag                 bool
	ConstraintSet1Flag                 bool
	ConstraintSet2Flag                 bool
	ConstraintSet3Flag                 bool
	ConstraintSet4Flag                 bool
	ConstraintSet5Flag                 bool
	LevelIDC                           uint8
	ID                                 uint
	ChromaFormatIDC                    uint
	SeparateColourPlaneFlag            bool
	BitDepthLumaMinus8                 uint
	BitDepthChromaMinus8                uint
	QPPrimeYZeroTransformBypassFlag    bool
	SeqScalingMatrixPresentFlag        bool
	ScalingList4x4                     [6][]int
	UseDefaultScalingMatrix4x4Flag     [6]bool
	ScalingList8x8                     [6][]int
	UseDefaultScalingMatrix8x8Flag     [6]bool
	Log2MaxFrameNumMinus4              uint
	PicOrderCntType                    uint
	Log2MaxPicOrderCntLsbMinus4        uint
	DeltaPicOrderAlwaysZeroFlag        bool
	OffsetForNonRefPic                 int
	OffsetForTopToBottomField          int
	NumRefFramesInPicOrderCntCycle     uint
	OffsetForRefFrame                  []int
	MaxNumRefFrames                    uint
	GapsInFrameNumValueAllowedFlag     bool
	PicWidthInMbsMinus1                uint
	PicHeightInMapUnitsMinus1          uint
	FrameMbsOnlyFlag                   bool
	MbAdaptiveFrameFieldFlag           bool
	Direct8x8InferenceFlag             bool
	FrameCroppingFlag                  bool
	FrameCropLeftOffset                uint
	FrameCropRightOffset               uint
	FrameCropTopOffset                 uint
	FrameCropBottomOffset              uint
	VUIParametersPresentFlag           bool
	VUI                                *VUIParameters
}

// ChromaArrayType implements the ChromaArrayType derivation of 7.4.2.1.1:
// 0 when separate_colour_plane_flag is set, chroma_format_idc otherwise.
func (s *SPS) ChromaArrayType() uint {
	if s.SeparateColourPlaneFlag {
		return 0
	}
	return s.ChromaFormatIDC
}

// PicWidthInMbs is the frame width in macroblocks (7.4.2.1.1).
func (s *SPS) PicWidthInMbs() uint { return s.PicWidthInMbsMinus1 + 1 }

// FrameHeightInMbs is the frame height in macroblocks (7.4.2.1.1),
// accounting for the field/frame coding duality.
func (s *SPS) FrameHeightInMbs() uint {
	mul := uint(2)
	if s.FrameMbsOnlyFlag {
		mul = 1
	}
	return mul * (s.PicHeightInMapUnitsMinus1 + 1)
}

// NewSPS parses an SPS from an RBSP byte slice (emulation-prevention bytes
// still present; bits.NewReader strips them).
func NewSPS(rbsp []byte) (*SPS, error) {
	r := bits.NewReader(rbsp)
	s := &SPS{}

	profile, err := r.Byte()
	if err != nil {
		return nil, errors.Wrap(err, "sps: could not read profile_idc")
	}
	s.ProfileIDC = profile

	flags, err := r.Bits(8)
	if err != nil {
		return nil, errors.Wrap(err, "sps: could not read constraint flags")
	}
	s.ConstraintSet0Flag = flags&0x80 != 0
	s.ConstraintSet1Flag = flags&0x40 != 0
	s.ConstraintSet2Flag = flags&0x20 != 0
	s.ConstraintSet3Flag = flags&0x10 != 0
	s.ConstraintSet4Flag = flags&0x08 != 0
	s.ConstraintSet5Flag = flags&0x04 != 0
	// remaining 2 bits are reserved_zero_2bits, already consumed above.

	level, err := r.Byte()
	if err != nil {
		return nil, errors.Wrap(err, "sps: could not read level_idc")
	}
	s.LevelIDC = level

	if s.ID, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "sps: could not read seq_parameter_set_id")
	}

	s.ChromaFormatIDC = Chroma420
	if profilesWithChromaInfo[s.ProfileIDC] {
		if err := s.parseChromaInfo(r); err != nil {
			return nil, err
		}
	}

	if s.Log2MaxFrameNumMinus4, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "sps: could not read log2_max_frame_num_minus4")
	}
	if s.PicOrderCntType, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "sps: could not read pic_order_cnt_type")
	}
	switch s.PicOrderCntType {
	case 0:
		if s.Log2MaxPicOrderCntLsbMinus4, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "sps: could not read log2_max_pic_order_cnt_lsb_minus4")
		}
	case 1:
		b, err := r.Bit()
		if err != nil {
			return nil, errors.Wrap(err, "sps: could not read delta_pic_order_always_zero_flag")
		}
		s.DeltaPicOrderAlwaysZeroFlag = b != 0
		offNonRef, err := r.SignedExpGolomb()
		if err != nil {
			return nil, errors.Wrap(err, "sps: could not read offset_for_non_ref_pic")
		}
		s.OffsetForNonRefPic = int(offNonRef)
		offT2B, err := r.SignedExpGolomb()
		if err != nil {
			return nil, errors.Wrap(err, "sps: could not read offset_for_top_to_bottom_field")
		}
		s.OffsetForTopToBottomField = int(offT2B)
		if s.NumRefFramesInPicOrderCntCycle, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "sps: could not read num_ref_frames_in_pic_order_cnt_cycle")
		}
		s.OffsetForRefFrame = make([]int, s.NumRefFramesInPicOrderCntCycle)
		for i := range s.OffsetForRefFrame {
			v, err := r.SignedExpGolomb()
			if err != nil {
				return nil, errors.Wrapf(err, "sps: could not read offset_for_ref_frame[%d]", i)
			}
			s.OffsetForRefFrame[i] = int(v)
		}
	}

	if s.MaxNumRefFrames, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "sps: could not read max_num_ref_frames")
	}
	gaps, err := r.Bit()
	if err != nil {
		return nil, errors.Wrap(err, "sps: could not read gaps_in_frame_num_value_allowed_flag")
	}
	s.GapsInFrameNumValueAllowedFlag = gaps != 0

	if s.PicWidthInMbsMinus1, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "sps: could not read pic_width_in_mbs_minus1")
	}
	if s.PicHeightInMapUnitsMinus1, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "sps: could not read pic_height_in_map_units_minus1")
	}
	fmbs, err := r.Bit()
	if err != nil {
		return nil, errors.Wrap(err, "sps: could not read frame_mbs_only_flag")
	}
	s.FrameMbsOnlyFlag = fmbs != 0
	if !s.FrameMbsOnlyFlag {
		mbaff, err := r.Bit()
		if err != nil {
			return nil, errors.Wrap(err, "sps: could not read mb_adaptive_frame_field_flag")
		}
		s.MbAdaptiveFrameFieldFlag = mbaff != 0
	}
	d8x8, err := r.Bit()
	if err != nil {
		return nil, errors.Wrap(err, "sps: could not read direct_8x8_inference_flag")
	}
	s.Direct8x8InferenceFlag = d8x8 != 0

	crop, err := r.Bit()
	if err != nil {
		return nil, errors.Wrap(err, "sps: could not read frame_cropping_flag")
	}
	s.FrameCroppingFlag = crop != 0
	if s.FrameCroppingFlag {
		if s.FrameCropLeftOffset, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "sps: could not read frame_crop_left_offset")
		}
		if s.FrameCropRightOffset, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "sps: could not read frame_crop_right_offset")
		}
		if s.FrameCropTopOffset, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "sps: could not read frame_crop_top_offset")
		}
		if s.FrameCropBottomOffset, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "sps: could not read frame_crop_bottom_offset")
		}
	}

	vuiPresent, err := r.Bit()
	if err != nil {
		return nil, errors.Wrap(err, "sps: could not read vui_parameters_present_flag")
	}
	s.VUIParametersPresentFlag = vuiPresent != 0
	if s.VUIParametersPresentFlag {
		// the teacher package reads this flag but never dispatches into a
		// VUI parser; that leaves HRD/timing info silently dropped, so we
		// actually parse it here.
		vui, err := NewVUIParameters(r)
		if err != nil {
			return nil, errors.Wrap(err, "sps: could not read vui_parameters")
		}
		s.VUI = vui
	}

	return s, nil
}

// parseChromaInfo reads the chroma_format_idc / bit-depth / scaling-matrix
// fields present for high-profile-family profile_idc values (7.3.2.1.1).
func (s *SPS) parseChromaInfo(r *bits.Reader) error {
	var err error
	if s.ChromaFormatIDC, err = r.ExpGolombUint(); err != nil {
		return errors.Wrap(err, "sps: could not read chroma_format_idc")
	}
	if s.ChromaFormatIDC == Chroma444 {
		b, err := r.Bit()
		if err != nil {
			return errors.Wrap(err, "sps: could not read separate_colour_plane_flag")
		}
		s.SeparateColourPlaneFlag = b != 0
	}
	if s.BitDepthLumaMinus8, err = r.ExpGolombUint(); err != nil {
		return errors.Wrap(err, "sps: could not read bit_depth_luma_minus8")
	}
	if s.BitDepthChromaMinus8, err = r.ExpGolombUint(); err != nil {
		return errors.Wrap(err, "sps: could not read bit_depth_chroma_minus8")
	}
	bypass, err := r.Bit()
	if err != nil {
		return errors.Wrap(err, "sps: could not read qpprime_y_zero_transform_bypass_flag")
	}
	s.QPPrimeYZeroTransformBypassFlag = bypass != 0

	scalingPresent, err := r.Bit()
	if err != nil {
		return errors.Wrap(err, "sps: could not read seq_scaling_matrix_present_flag")
	}
	s.SeqScalingMatrixPresentFlag = scalingPresent != 0
	if !s.SeqScalingMatrixPresentFlag {
		return nil
	}

	listCount := 8
	if s.ChromaFormatIDC == Chroma444 {
		listCount = 12
	}
	for i := 0; i < listCount; i++ {
		present, err := r.Bit()
		if err != nil {
			return errors.Wrapf(err, "sps: could not read seq_scaling_list_present_flag[%d]", i)
		}
		if present == 0 {
			continue
		}
		if i < 6 {
			fallback := Default4x4IntraList
			if i >= 3 {
				fallback = Default4x4InterList
			}
			list, useDefault, err := ScalingList(r, 16, fallback)
			if err != nil {
				return errors.Wrapf(err, "sps: could not read scaling_list 4x4[%d]", i)
			}
			s.ScalingList4x4[i] = list
			s.UseDefaultScalingMatrix4x4Flag[i] = useDefault
		} else {
			idx := i - 6
			fallback := Default8x8IntraList
			if idx%2 == 1 {
				fallback = Default8x8InterList
			}
			list, useDefault, err := ScalingList(r, 64, fallback)
			if err != nil {
				return errors.Wrapf(err, "sps: could not read scaling_list 8x8[%d]", idx)
			}
			s.ScalingList8x8[idx] = list
			s.UseDefaultScalingMatrix8x8Flag[idx] = useDefault
		}
	}
	return nil
}

// Default4x4IntraList and Default4x4InterList are DefaultScalingMatrix4x4's
// rows, named for readability at call sites.
var (
	Default4x4IntraList = DefaultScalingMatrix4x4[0][:]
	Default4x4InterList = DefaultScalingMatrix4x4[1][:]
	Default8x8IntraList = DefaultScalingMatrix8x8[0][:]
	Default8x8InterList = DefaultScalingMatrix8x8[1][:]
)
