/*
DESCRIPTION
  predweighttable.go decodes the pred_weight_table() syntax structure,
  section 7.3.3.2.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
  h264dec contributors
*/

package slice

import (
	"github.com/pkg/errors"

	"github.com/coastwatch/h264dec/bits"
)

// WeightOffset is one explicit luma or chroma weight/offset pair.
type WeightOffset struct {
	Weight int
	Offset int
}

// PredWeightTable holds the explicit weighted prediction table for one
// slice's reference picture lists.
type PredWeightTable struct {
	LumaLog2WeightDenom   uint
	ChromaLog2WeightDenom uint

	LumaWeightL0Flag   bool
	LumaL0             []WeightOffset
	ChromaWeightL0Flag bool
	// ChromaL0[i] holds the two Cb/Cr entries for reference index i.
	ChromaL0 [][2]WeightOffset

	LumaWeightL1Flag   bool
	LumaL1             []WeightOffset
	ChromaWeightL1Flag bool
	ChromaL1           [][2]WeightOffset
}

// NewPredWeightTable parses a pred_weight_table() structure. numRefIdxL0/L1
// come from the slice header's active reference counts.
func NewPredWeightTable(r *bits.Reader, sliceType uint, chromaArrayType uint, numRefIdxL0, numRefIdxL1 uint) (*PredWeightTable, error) {
	p := &PredWeightTable{}
	var err error

	if p.LumaLog2WeightDenom, err = r.ExpGolombUint(); err != nil {
		return nil, errors.Wrap(err, "pred_weight_table: could not read luma_log2_weight_denom")
	}
	if chromaArrayType != 0 {
		if p.ChromaLog2WeightDenom, err = r.ExpGolombUint(); err != nil {
			return nil, errors.Wrap(err, "pred_weight_table: could not read chroma_log2_weight_denom")
		}
	}

	p.LumaL0 = make([]WeightOffset, numRefIdxL0+1)
	if chromaArrayType != 0 {
		p.ChromaL0 = make([][2]WeightOffset, numRefIdxL0+1)
	}
	for i := uint(0); i <= numRefIdxL0; i++ {
		b, err := r.Bit()
		if err != nil {
			return nil, errors.Wrap(err, "pred_weight_table: could not read luma_weight_l0_flag")
		}
		p.LumaWeightL0Flag = b != 0
		p.LumaL0[i] = WeightOffset{Weight: 1 << p.LumaLog2WeightDenom}
		if p.LumaWeightL0Flag {
			if p.LumaL0[i].Weight, err = readSignedInt(r); err != nil {
				return nil, errors.Wrap(err, "pred_weight_table: luma_weight_l0")
			}
			if p.LumaL0[i].Offset, err = readSignedInt(r); err != nil {
				return nil, errors.Wrap(err, "pred_weight_table: luma_offset_l0")
			}
		}
		if chromaArrayType != 0 {
			b, err := r.Bit()
			if err != nil {
				return nil, errors.Wrap(err, "pred_weight_table: could not read chroma_weight_l0_flag")
			}
			p.ChromaWeightL0Flag = b != 0
			p.ChromaL0[i] = [2]WeightOffset{
				{Weight: 1 << p.ChromaLog2WeightDenom},
				{Weight: 1 << p.ChromaLog2WeightDenom},
			}
			if p.ChromaWeightL0Flag {
				for j := 0; j < 2; j++ {
					if p.ChromaL0[i][j].Weight, err = readSignedInt(r); err != nil {
						return nil, errors.Wrapf(err, "pred_weight_table: chroma_weight_l0[%d]", j)
					}
					if p.ChromaL0[i][j].Offset, err = readSignedInt(r); err != nil {
						return nil, errors.Wrapf(err, "pred_weight_table: chroma_offset_l0[%d]", j)
					}
				}
			}
		}
	}

	if BaseType(sliceType) != SliceTypeB {
		return p, nil
	}

	p.LumaL1 = make([]WeightOffset, numRefIdxL1+1)
	if chromaArrayType != 0 {
		p.ChromaL1 = make([][2]WeightOffset, numRefIdxL1+1)
	}
	for i := uint(0); i <= numRefIdxL1; i++ {
		b, err := r.Bit()
		if err != nil {
			return nil, errors.Wrap(err, "pred_weight_table: could not read luma_weight_l1_flag")
		}
		p.LumaWeightL1Flag = b != 0
		p.LumaL1[i] = WeightOffset{Weight: 1 << p.LumaLog2WeightDenom}
		if p.LumaWeightL1Flag {
			if p.LumaL1[i].Weight, err = readSignedInt(r); err != nil {
				return nil, errors.Wrap(err, "pred_weight_table: luma_weight_l1")
			}
			if p.LumaL1[i].Offset, err = readSignedInt(r); err != nil {
				return nil, errors.Wrap(err, "pred_weight_table: luma_offset_l1")
			}
		}
		if chromaArrayType != 0 {
			b, err := r.Bit()
			if err != nil {
				return nil, errors.Wrap(err, "pred_weight_table: could not read chroma_weight_l1_flag")
			}
			p.ChromaWeightL1Flag = b != 0
			p.ChromaL1[i] = [2]WeightOffset{
				{Weight: 1 << p.ChromaLog2WeightDenom},
				{Weight: 1 << p.ChromaLog2WeightDenom},
			}
			if p.ChromaWeightL1Flag {
				for j := 0; j < 2; j++ {
					if p.ChromaL1[i][j].Weight, err = readSignedInt(r); err != nil {
						return nil, errors.Wrapf(err, "pred_weight_table: chroma_weight_l1[%d]", j)
					}
					if p.ChromaL1[i][j].Offset, err = readSignedInt(r); err != nil {
						return nil, errors.Wrapf(err, "pred_weight_table: chroma_offset_l1[%d]", j)
					}
				}
			}
		}
	}

	return p, nil
}

func readSignedInt(r *bits.Reader) (int, error) {
	v, err := r.SignedExpGolomb()
	return int(v), err
}
