package residual

import (
	"testing"

	"github.com/coastwatch/h264dec/bits"
	"github.com/coastwatch/h264dec/cabac"
	"github.com/coastwatch/h264dec/slice"
)

func TestDecodeBlockCABACReturnsMaxNumCoeffCoefficients(t *testing.T) {
	// Engineer a bitstream that is at least long enough to run the decode
	// loop to completion without error; correctness of the arithmetic
	// decoding itself is covered by cabac's own tests, this exercises the
	// block-level control flow (significance scan -> level loop) end to end.
	r := bits.NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	e, err := cabac.NewEngine(r)
	if err != nil {
		t.Fatal(err)
	}
	models := cabac.NewContextModels(26, slice.SliceTypeI, 0)
	blk, err := DecodeBlockCABAC(e, models, CategoryLumaLevel4x4)
	if err != nil {
		t.Fatal(err)
	}
	if len(blk.Coeffs) != CategoryLumaLevel4x4.MaxNumCoeff {
		t.Errorf("len(Coeffs) = %d, want %d", len(blk.Coeffs), CategoryLumaLevel4x4.MaxNumCoeff)
	}
}
