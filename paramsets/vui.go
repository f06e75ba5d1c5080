/*
DESCRIPTION
  vui.go decodes the VUI parameters and HRD parameters syntax structures of
  annex E (sections E.1.1, E.1.2), as referenced from seq_parameter_set_data().

AUTHORS
  h264dec contributors
*/

package paramsets

import (
	"github.com/pkg/errors"

	"github.com/coastwatch/h264dec/bits"
)

// HRDParameters is a decoded hrd_parameters() structure (E.1.2).
type HRDParameters struct {
	CPBCntMinus1                     uint
	BitRateScale                     uint
	CPBSizeScale                     uint
	BitRateValueMinus1               []uint
	CPBSizeValueMinus1               []uint
	CBRFlag                          []bool
	InitialCPBRemovalDelayLengthMinus1 uint
	CPBRemovalDelayLengthMinus1      uint
	DPBOutputDelayLengthMinus1       uint
	TimeOffsetLength                 uint
}

// NewHRDParameters parses an hrd_parameters() structure.
func NewHRDParameters(r *bits.Reader) (*HRDParameters, error) {
	h := &HRDParameters{}
	var err error
	if h.CPBCntMinus1, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "hrd: could not read cpb_cnt_minus1")
	}
	if h.BitRateScale, err = r.BitsIntoUint(4); err != nil {
		return nil, errors.Wrap(err, "hrd: could not read bit_rate_scale")
	}
	if h.CPBSizeScale, err = r.BitsIntoUint(4); err != nil {
		return nil, errors.Wrap(err, "hrd: could not read cpb_size_scale")
	}
	n := int(h.CPBCntMinus1) + 1
	h.BitRateValueMinus1 = make([]uint, n)
	h.CPBSizeValueMinus1 = make([]uint, n)
	h.CBRFlag = make([]bool, n)
	for i := 0; i < n; i++ {
		if h.BitRateValueMinus1[i], err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrapf(err, "hrd: could not read bit_rate_value_minus1[%d]", i)
		}
		if h.CPBSizeValueMinus1[i], err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrapf(err, "hrd: could not read cpb_size_value_minus1[%d]", i)
		}
		b, err := r.Bit()
		if err != nil {
			return nil, errors.Wrapf(err, "hrd: could not read cbr_flag[%d]", i)
		}
		h.CBRFlag[i] = b != 0
	}
	if h.InitialCPBRemovalDelayLengthMinus1, err = r.BitsIntoUint(5); err != nil {
		return nil, errors.Wrap(err, "hrd: could not read initial_cpb_removal_delay_length_minus1")
	}
	if h.CPBRemovalDelayLengthMinus1, err = r.BitsIntoUint(5); err != nil {
		return nil, errors.Wrap(err, "hrd: could not read cpb_removal_delay_length_minus1")
	}
	if h.DPBOutputDelayLengthMinus1, err = r.BitsIntoUint(5); err != nil {
		return nil, errors.Wrap(err, "hrd: could not read dpb_output_delay_length_minus1")
	}
	if h.TimeOffsetLength, err = r.BitsIntoUint(5); err != nil {
		return nil, errors.Wrap(err, "hrd: could not read time_offset_length")
	}
	return h, nil
}

// VUIParameters is a decoded vui_parameters() structure (E.1.1). Fields the
// decoder never consumes for conformance purposes (aspect ratio, overscan,
// colour description, chroma sample loc, bitstream restriction) are still
// captured since a caller re-muxing or displaying the stream needs them.
type VUIParameters struct {
	AspectRatioInfoPresentFlag      bool
	AspectRatioIDC                  uint
	SARWidth                        uint
	SARHeight                       uint
	OverscanInfoPresentFlag         bool
	OverscanAppropriateFlag         bool
	VideoSignalTypePresentFlag      bool
	VideoFormat                     uint
	VideoFullRangeFlag              bool
	ColourDescriptionPresentFlag    bool
	ColourPrimaries                 uint
	TransferCharacteristics         uint
	MatrixCoefficients              uint
	ChromaLocInfoPresentFlag        bool
	ChromaSampleLocTypeTopField     uint
	ChromaSampleLocTypeBottomField  uint
	TimingInfoPresentFlag           bool
	NumUnitsInTick                  uint
	TimeScale                       uint
	FixedFrameRateFlag              bool
	NALHRDParametersPresentFlag     bool
	NALHRDParameters                *HRDParameters
	VCLHRDParametersPresentFlag     bool
	VCLHRDParameters                *HRDParameters
	LowDelayHRDFlag                 bool
	PicStructPresentFlag            bool
	BitstreamRestrictionFlag        bool
	MotionVectorsOverPicBoundaries  bool
	MaxBytesPerPicDenom             uint
	MaxBitsPerMbDenom                uint
	Log2MaxMvLengthHorizontal       uint
	Log2MaxMvLengthVertical         uint
	MaxNumReorderFrames             uint
	MaxDecFrameBuffering            uint
}

// NewVUIParameters parses a vui_parameters() structure.
func NewVUIParameters(r *bits.Reader) (*VUIParameters, error) {
	v := &VUIParameters{}

	b, err := r.Bit()
	if err != nil {
		return nil, errors.Wrap(err, "vui: could not read aspect_ratio_info_present_flag")
	}
	v.AspectRatioInfoPresentFlag = b != 0
	if v.AspectRatioInfoPresentFlag {
		if v.AspectRatioIDC, err = r.BitsIntoUint(8); err != nil {
			return nil, errors.Wrap(err, "vui: could not read aspect_ratio_idc")
		}
		const extendedSAR = 255
		if v.AspectRatioIDC == extendedSAR {
			if v.SARWidth, err = r.BitsIntoUint(16); err != nil {
				return nil, errors.Wrap(err, "vui: could not read sar_width")
			}
			if v.SARHeight, err = r.BitsIntoUint(16); err != nil {
				return nil, errors.Wrap(err, "vui: could not read sar_height")
			}
		}
	}

	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "vui: could not read overscan_info_present_flag")
	}
	v.OverscanInfoPresentFlag = b != 0
	if v.OverscanInfoPresentFlag {
		if b, err = r.Bit(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read overscan_appropriate_flag")
		}
		v.OverscanAppropriateFlag = b != 0
	}

	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "vui: could not read video_signal_type_present_flag")
	}
	v.VideoSignalTypePresentFlag = b != 0
	if v.VideoSignalTypePresentFlag {
		if v.VideoFormat, err = r.BitsIntoUint(3); err != nil {
			return nil, errors.Wrap(err, "vui: could not read video_format")
		}
		if b, err = r.Bit(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read video_full_range_flag")
		}
		v.VideoFullRangeFlag = b != 0
		if b, err = r.Bit(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read colour_description_present_flag")
		}
		v.ColourDescriptionPresentFlag = b != 0
		if v.ColourDescriptionPresentFlag {
			if v.ColourPrimaries, err = r.BitsIntoUint(8); err != nil {
				return nil, errors.Wrap(err, "vui: could not read colour_primaries")
			}
			if v.TransferCharacteristics, err = r.BitsIntoUint(8); err != nil {
				return nil, errors.Wrap(err, "vui: could not read transfer_characteristics")
			}
			if v.MatrixCoefficients, err = r.BitsIntoUint(8); err != nil {
				return nil, errors.Wrap(err, "vui: could not read matrix_coefficients")
			}
		}
	}

	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "vui: could not read chroma_loc_info_present_flag")
	}
	v.ChromaLocInfoPresentFlag = b != 0
	if v.ChromaLocInfoPresentFlag {
		if v.ChromaSampleLocTypeTopField, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read chroma_sample_loc_type_top_field")
		}
		if v.ChromaSampleLocTypeBottomField, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read chroma_sample_loc_type_bottom_field")
		}
	}

	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "vui: could not read timing_info_present_flag")
	}
	v.TimingInfoPresentFlag = b != 0
	if v.TimingInfoPresentFlag {
		if v.NumUnitsInTick, err = r.BitsIntoUint(32); err != nil {
			return nil, errors.Wrap(err, "vui: could not read num_units_in_tick")
		}
		if v.TimeScale, err = r.BitsIntoUint(32); err != nil {
			return nil, errors.Wrap(err, "vui: could not read time_scale")
		}
		if b, err = r.Bit(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read fixed_frame_rate_flag")
		}
		v.FixedFrameRateFlag = b != 0
	}

	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "vui: could not read nal_hrd_parameters_present_flag")
	}
	v.NALHRDParametersPresentFlag = b != 0
	if v.NALHRDParametersPresentFlag {
		if v.NALHRDParameters, err = NewHRDParameters(r); err != nil {
			return nil, errors.Wrap(err, "vui: could not read nal_hrd_parameters")
		}
	}
	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "vui: could not read vcl_hrd_parameters_present_flag")
	}
	v.VCLHRDParametersPresentFlag = b != 0
	if v.VCLHRDParametersPresentFlag {
		if v.VCLHRDParameters, err = NewHRDParameters(r); err != nil {
			return nil, errors.Wrap(err, "vui: could not read vcl_hrd_parameters")
		}
	}
	if v.NALHRDParametersPresentFlag || v.VCLHRDParametersPresentFlag {
		if b, err = r.Bit(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read low_delay_hrd_flag")
		}
		v.LowDelayHRDFlag = b != 0
	}

	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "vui: could not read pic_struct_present_flag")
	}
	v.PicStructPresentFlag = b != 0

	if b, err = r.Bit(); err != nil {
		return nil, errors.Wrap(err, "vui: could not read bitstream_restriction_flag")
	}
	v.BitstreamRestrictionFlag = b != 0
	if v.BitstreamRestrictionFlag {
		if b, err = r.Bit(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read motion_vectors_over_pic_boundaries_flag")
		}
		v.MotionVectorsOverPicBoundaries = b != 0
		if v.MaxBytesPerPicDenom, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read max_bytes_per_pic_denom")
		}
		if v.MaxBitsPerMbDenom, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read max_bits_per_mb_denom")
		}
		if v.Log2MaxMvLengthHorizontal, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read log2_max_mv_length_horizontal")
		}
		if v.Log2MaxMvLengthVertical, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read log2_max_mv_length_vertical")
		}
		if v.MaxNumReorderFrames, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read max_num_reorder_frames")
		}
		if v.MaxDecFrameBuffering, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "vui: could not read max_dec_frame_buffering")
		}
	}

	return v, nil
}
