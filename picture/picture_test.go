package picture

import (
	"testing"

	"github.com/coastwatch/h264dec/paramsets"
	"github.com/coastwatch/h264dec/slice"
)

func TestNewPictureAllocatesYUV420Planes(t *testing.T) {
	sps := &paramsets.SPS{
		ChromaFormatIDC:           1,
		PicWidthInMbsMinus1:       3, // 4 MBs wide -> 64 luma samples
		PicHeightInMapUnitsMinus1: 1, // 2 map units -> 32 luma rows
		FrameMbsOnlyFlag:          true,
	}
	h := &slice.Header{FrameNum: 5}
	p := New(h, sps, &paramsets.PPS{}, 1, true, 8, 8)

	if p.Frame.Width != 64 || p.Frame.Height != 32 {
		t.Fatalf("luma dims = %dx%d, want 64x32", p.Frame.Width, p.Frame.Height)
	}
	if p.Frame.ChromaWidth != 32 || p.Frame.ChromaHeight != 16 {
		t.Fatalf("chroma dims = %dx%d, want 32x16", p.Frame.ChromaWidth, p.Frame.ChromaHeight)
	}
	if p.Frame.Cb == nil || p.Frame.Cr == nil {
		t.Fatal("expected Cb/Cr planes for 4:2:0")
	}
	if !p.IsReference {
		t.Error("nal_ref_idc=1 should mark this picture as a reference")
	}
	if p.FrameNum != 5 {
		t.Errorf("FrameNum = %d, want 5", p.FrameNum)
	}
}

func TestNewPictureMonochromeHasNoChromaPlanes(t *testing.T) {
	sps := &paramsets.SPS{
		ChromaFormatIDC:           0,
		PicWidthInMbsMinus1:       0,
		PicHeightInMapUnitsMinus1: 0,
		FrameMbsOnlyFlag:          true,
	}
	p := New(&slice.Header{}, sps, &paramsets.PPS{}, 0, false, 8, 8)
	if p.Frame.Cb != nil || p.Frame.Cr != nil {
		t.Error("monochrome picture should have nil Cb/Cr")
	}
	if p.IsReference {
		t.Error("nal_ref_idc=0 should not be a reference")
	}
}

func TestFrameSetAndGetLuma(t *testing.T) {
	f := NewFrame(16, 16, 8, 8, 8)
	f.SetLumaAt(3, 4, 200)
	if got := f.LumaAt(3, 4); got != 200 {
		t.Errorf("LumaAt = %d, want 200", got)
	}
	if got := f.LumaAt(-1, 0); got != 0 {
		t.Errorf("out-of-bounds LumaAt = %d, want 0", got)
	}
}

func TestFrameWriteBlock(t *testing.T) {
	f := NewFrame(8, 8, 0, 0, 8)
	block := [][]int{{1, 2}, {3, 4}}
	f.WriteBlock(2, 2, block)
	if f.LumaAt(2, 2) != 1 || f.LumaAt(3, 2) != 2 || f.LumaAt(2, 3) != 3 || f.LumaAt(3, 3) != 4 {
		t.Error("WriteBlock did not place samples at expected offsets")
	}
}
