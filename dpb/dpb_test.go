package dpb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/h264dec/paramsets"
	"github.com/coastwatch/h264dec/picture"
	"github.com/coastwatch/h264dec/slice"
)

func newTestPicture(sps *paramsets.SPS, h *slice.Header, nalRefIdc uint8, isIDR bool) *picture.Picture {
	return picture.New(h, sps, &paramsets.PPS{}, nalRefIdc, isIDR, 8, 8)
}

func TestPOCType2IDRIsZero(t *testing.T) {
	sps := &paramsets.SPS{PicOrderCntType: 2, ChromaFormatIDC: 1, FrameMbsOnlyFlag: true}
	b := New()
	pic := newTestPicture(sps, &slice.Header{SliceType: slice.SliceTypeI}, 1, true)
	b.InitPicture(pic)
	assert.Equal(t, 0, pic.PicOrderCnt, "IDR POC type 2")
}

func TestPOCType2NonRefPictureIsOdd(t *testing.T) {
	sps := &paramsets.SPS{PicOrderCntType: 2, ChromaFormatIDC: 1, FrameMbsOnlyFlag: true}
	b := New()
	idr := newTestPicture(sps, &slice.Header{SliceType: slice.SliceTypeI, FrameNum: 0}, 1, true)
	b.InitPicture(idr)
	b.Push(idr)

	pic := newTestPicture(sps, &slice.Header{SliceType: slice.SliceTypeP, FrameNum: 1}, 0, false)
	b.InitPicture(pic)
	// nal_idc == 0 => tempPicOrderCnt = 2*frameNum - 1 = 1.
	assert.Equal(t, 1, pic.TopFieldOrderCnt, "non-ref POC type 2")
}

func TestSlidingWindowEvictsOldestShortTerm(t *testing.T) {
	sps := &paramsets.SPS{PicOrderCntType: 2, ChromaFormatIDC: 1, FrameMbsOnlyFlag: true, MaxNumRefFrames: 2}
	b := New()

	for i := 0; i < 2; i++ {
		isIDR := i == 0
		h := &slice.Header{SliceType: slice.SliceTypeI, FrameNum: uint(i)}
		pic := newTestPicture(sps, h, 1, isIDR)
		b.InitPicture(pic)
		b.Push(pic)
	}
	require.Len(t, b.Pictures, 2)

	// A third reference picture should evict the oldest (FrameNum 0).
	h := &slice.Header{SliceType: slice.SliceTypeP, FrameNum: 2}
	pic := newTestPicture(sps, h, 1, false)
	b.InitPicture(pic)
	b.Push(pic)

	require.Len(t, b.Pictures, 2, "expected 2 pictures after sliding window eviction")
	for _, ref := range b.Pictures {
		assert.NotEqual(t, 0, ref.FrameNum, "oldest FrameNum=0 picture should have been evicted")
	}
}

func TestAdaptiveMemoryControlMarkShortTermUnused(t *testing.T) {
	sps := &paramsets.SPS{PicOrderCntType: 2, ChromaFormatIDC: 1, FrameMbsOnlyFlag: true, MaxNumRefFrames: 4}
	b := New()

	idr := newTestPicture(sps, &slice.Header{SliceType: slice.SliceTypeI, FrameNum: 0}, 1, true)
	b.InitPicture(idr)
	b.Push(idr)
	idr.PicNum = idr.FrameNum

	h := &slice.Header{
		SliceType: slice.SliceTypeP,
		FrameNum:  1,
		DecRefPicMarking: &slice.DecRefPicMarking{
			AdaptiveRefPicMarkingModeFlag: true,
			Ops: []slice.MMCOEntry{
				{Op: slice.MMCOMarkShortTermUnused, DifferenceOfPicNumsMinus1: 0},
				{Op: slice.MMCOEnd},
			},
		},
	}
	pic := newTestPicture(sps, h, 1, false)
	b.InitPicture(pic)

	assert.Empty(t, b.Pictures, "expected MMCO 1 to evict the referenced short-term picture")
}

func TestRefPicListModificationSubtract(t *testing.T) {
	sps := &paramsets.SPS{PicOrderCntType: 2, ChromaFormatIDC: 1, FrameMbsOnlyFlag: true, MaxNumRefFrames: 4}
	b := New()

	for i := 0; i < 3; i++ {
		isIDR := i == 0
		h := &slice.Header{SliceType: slice.SliceTypeI, FrameNum: uint(i)}
		pic := newTestPicture(sps, h, 1, isIDR)
		b.InitPicture(pic)
		b.Push(pic)
	}

	h := &slice.Header{
		SliceType:               slice.SliceTypeP,
		FrameNum:                3,
		NumRefIdxL0ActiveMinus1: 2,
		RefPicListModification: &slice.RefPicListModification{
			Flag: [2]bool{true, false},
			Entries: [2][]slice.RefPicListModEntry{
				{
					{Op: slice.ModOpSubtractAbsDiff, AbsDiffPicNumMinus1: 0},
					{Op: slice.ModOpEndLoop},
				},
			},
		},
	}
	pic := newTestPicture(sps, h, 1, false)
	b.InitPicture(pic)

	require.NotEmpty(t, b.RefPicList0, "expected a non-empty modified RefPicList0")
	assert.Equal(t, 2, b.RefPicList0[0].FrameNum, "RefPicList0[0].FrameNum should be FrameNum 3 - 1")
}

func TestRefPicListModificationAppliesToList1(t *testing.T) {
	sps := &paramsets.SPS{PicOrderCntType: 2, ChromaFormatIDC: 1, FrameMbsOnlyFlag: true, MaxNumRefFrames: 4}
	b := New()

	for i := 0; i < 3; i++ {
		isIDR := i == 0
		h := &slice.Header{SliceType: slice.SliceTypeI, FrameNum: uint(i)}
		pic := newTestPicture(sps, h, 1, isIDR)
		b.InitPicture(pic)
		b.Push(pic)
	}

	h := &slice.Header{
		SliceType:               slice.SliceTypeB,
		FrameNum:                3,
		NumRefIdxL0ActiveMinus1: 2,
		NumRefIdxL1ActiveMinus1: 2,
		RefPicListModification: &slice.RefPicListModification{
			Flag: [2]bool{false, true},
			Entries: [2][]slice.RefPicListModEntry{
				nil,
				{
					{Op: slice.ModOpSubtractAbsDiff, AbsDiffPicNumMinus1: 0},
					{Op: slice.ModOpEndLoop},
				},
			},
		},
	}
	pic := newTestPicture(sps, h, 1, false)
	b.InitPicture(pic)

	require.NotEmpty(t, b.RefPicList1, "expected a non-empty modified RefPicList1")
	assert.Equal(t, 2, b.RefPicList1[0].FrameNum, "RefPicList1[0].FrameNum should be FrameNum 3 - 1, mirroring List 0's own subtract case")
}
