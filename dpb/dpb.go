/*
DESCRIPTION
  dpb.go implements the decoded picture buffer: the ordered set of
  stored reference pictures plus the per-picture processes that keep it
  consistent (8.2, 8.4.2.1) — picture-order-count decoding, reference
  picture list construction/modification, and reference picture
  marking (sliding window / adaptive MMCO).

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/slice/dpb/mod.rs DecodedPictureBuffer.
*/

package dpb

import (
	"github.com/coastwatch/h264dec/picture"
	"github.com/coastwatch/h264dec/slice"
)

// Buffer is the decoded picture buffer (8.2's "DPB"): the set of
// pictures kept around as reference for future pictures, plus the two
// reference picture lists built for the picture currently being
// decoded.
type Buffer struct {
	Pictures []*picture.Picture

	RefPicList0 []*picture.Picture
	RefPicList1 []*picture.Picture

	prev previousPicture
}

// previousPicture mirrors the Rust original's PreviousPicture: the
// handful of fields from the last decoded picture that the POC and
// reference-marking processes need, kept separately from Pictures
// since a non-reference picture (nal_ref_idc == 0) updates this state
// but is never stored in Pictures.
type previousPicture struct {
	mmco5Applied     bool
	topFieldOrderCnt int
	picOrderCntMsb   int
	picOrderCntLsb   int
	frameNumOffset   int
	frameNum         int
	valid            bool
}

// New returns an empty decoded picture buffer.
func New() *Buffer {
	return &Buffer{
		Pictures:    make([]*picture.Picture, 0, 16),
		RefPicList0: make([]*picture.Picture, 0, 16),
		RefPicList1: make([]*picture.Picture, 0, 16),
	}
}

// InitPicture runs the per-picture decoding-order housekeeping (8.2.1's
// POC derivation followed by 8.2.4's reference list construction and
// 8.2.5's reference marking), mutating pic in place and updating the
// buffer's own stored state. Call this once per picture, after its
// slice header is decoded but before its slice data is decoded (slice
// data needs RefPicList0/RefPicList1 already built).
func (b *Buffer) InitPicture(pic *picture.Picture) {
	b.decodePicOrderCntType(pic)

	baseType := slice.BaseType(pic.Header.SliceType)
	if baseType == slice.SliceTypeP || baseType == slice.SliceTypeSP || baseType == slice.SliceTypeB {
		b.constructReferencePictureLists(pic)
	}

	if pic.IsIDR {
		b.Pictures = b.Pictures[:0]
		b.RefPicList0 = b.RefPicList0[:0]
		b.RefPicList1 = b.RefPicList1[:0]
		if pic.Header.DecRefPicMarking != nil && pic.Header.DecRefPicMarking.LongTermReferenceFlag {
			pic.Marking = picture.LongTerm
			pic.LongTermFrameIdx = 0
		} else {
			pic.Marking = picture.ShortTerm
		}
	} else if pic.Header.DecRefPicMarking != nil && pic.Header.DecRefPicMarking.AdaptiveRefPicMarkingModeFlag {
		b.adaptiveMemoryControl(pic)
	} else {
		b.slidingWindow(int(pic.SPS.MaxNumRefFrames))
	}

	b.prev = previousPicture{
		mmco5Applied:     pic.MMCO5Applied,
		topFieldOrderCnt: pic.TopFieldOrderCnt,
		picOrderCntMsb:   pic.PicOrderCntMsb,
		picOrderCntLsb:   int(pic.Header.PicOrderCntLsb),
		frameNumOffset:   pic.FrameNumOffset,
		frameNum:         pic.FrameNum,
		valid:            true,
	}
}

// Push stores a fully decoded picture as a future reference, mirroring
// the Rust original's push's "if pic.nal_idc != 0" guard: non-reference
// pictures are displayed but never kept for prediction.
func (b *Buffer) Push(pic *picture.Picture) {
	if pic.NalRefIdc != 0 {
		b.Pictures = append(b.Pictures, pic)
	}
}

// maxFrameNum is MaxFrameNum of 7.4.2.1.1: 2^(log2_max_frame_num_minus4+4).
func maxFrameNum(log2MaxFrameNumMinus4 uint) int {
	return 1 << (log2MaxFrameNumMinus4 + 4)
}

// maxPicOrderCntLsb is MaxPicOrderCntLsb of 7.4.2.1.1.
func maxPicOrderCntLsb(log2MaxPicOrderCntLsbMinus4 uint) int {
	return 1 << (log2MaxPicOrderCntLsbMinus4 + 4)
}
