/*
DESCRIPTION
  picture.go implements the Picture type: a decoded frame's reconstructed
  samples plus the picture-order-count and reference-marking state that
  the decoded picture buffer (package dpb) needs to keep and prune
  reference pictures, per clauses 8.2.1 (POC) and 8.2.4/8.2.5
  (reference picture marking).

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/slice/dpb/picture.rs Picture struct.
*/

package picture

import (
	"github.com/coastwatch/h264dec/paramsets"
	"github.com/coastwatch/h264dec/slice"
)

// Marking is the reference-picture marking state of 8.2.4.1's
// adaptive_ref_pic_marking_mode_flag == 0 short/long-term distinction.
type Marking int

const (
	Unused Marking = iota
	ShortTerm
	LongTerm
)

// Picture is one decoded picture together with the bookkeeping the DPB
// needs to order, mark, and evict it.
type Picture struct {
	Header *slice.Header
	SPS    *paramsets.SPS
	PPS    *paramsets.PPS
	Frame  *Frame

	NalRefIdc   uint8
	IsIDR       bool
	IsReference bool

	// POC state (8.2.1).
	PicOrderCntMsb        int
	PicOrderCntLsb        int
	TopFieldOrderCnt      int
	BottomFieldOrderCnt   int
	PicOrderCnt           int
	FrameNumOffset        int
	FrameNum              int
	FrameNumWrap          int

	// Reference marking state (8.2.4/8.2.5).
	Marking              Marking
	LongTermFrameIdx     int
	PicNum               int
	LongTermPicNum       int
	MMCO5Applied         bool
}

// New constructs a Picture from a decoded slice header and its
// parameter sets, allocating a zeroed reconstruction frame sized from
// the SPS (7.4.2.1.1's PicWidthInMbs/FrameHeightInMbs and the chroma
// subsampling implied by ChromaArrayType).
func New(h *slice.Header, sps *paramsets.SPS, pps *paramsets.PPS, nalRefIdc uint8, isIDR bool, bitDepthY, bitDepthC int) *Picture {
	widthL := int(sps.PicWidthInMbs()) * 16
	heightL := int(sps.FrameHeightInMbs()) * 16

	var widthC, heightC int
	switch sps.ChromaArrayType() {
	case 1: // 4:2:0
		widthC, heightC = widthL/2, heightL/2
	case 2: // 4:2:2
		widthC, heightC = widthL/2, heightL
	case 3: // 4:4:4
		widthC, heightC = widthL, heightL
	}

	return &Picture{
		Header:      h,
		SPS:         sps,
		PPS:         pps,
		Frame:       NewFrame(widthL, heightL, widthC, heightC, bitDepthY),
		NalRefIdc:   nalRefIdc,
		IsIDR:       isIDR,
		IsReference: nalRefIdc != 0,
		FrameNum:    int(h.FrameNum),
		Marking:     ShortTerm,
	}
}
