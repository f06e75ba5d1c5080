/*
DESCRIPTION
  poc.go implements the picture order count decoding processes of 8.2.1:
  type 0 (explicit LSB + MSB wraparound), type 1 (cyclic offset
  sequence), and type 2 (derived directly from frame_num).

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/slice/dpb/poc_type.rs decode_pic_order_cnt_type/poc_type_0/
  poc_type_1/poc_type_2.
*/

package dpb

import "github.com/coastwatch/h264dec/picture"

// decodePicOrderCntType dispatches to the POC process named by the
// picture's SPS (8.2.1) and derives the frame PicOrderCnt as the
// minimum of the top/bottom field order counts, matching progressive
// (frame-only) decoding's convention of computing both.
func (b *Buffer) decodePicOrderCntType(pic *picture.Picture) {
	switch pic.SPS.PicOrderCntType {
	case 0:
		b.pocType0(pic)
	case 1:
		b.pocType1(pic)
	case 2:
		b.pocType2(pic)
	}
	if pic.TopFieldOrderCnt < pic.BottomFieldOrderCnt {
		pic.PicOrderCnt = pic.TopFieldOrderCnt
	} else {
		pic.PicOrderCnt = pic.BottomFieldOrderCnt
	}
}

// pocType0 implements 8.2.1.1.
func (b *Buffer) pocType0(pic *picture.Picture) {
	var prevMsb, prevLsb int
	if pic.IsIDR {
		prevMsb, prevLsb = 0, 0
	} else if b.prev.valid {
		if b.prev.mmco5Applied {
			prevMsb = 0
			prevLsb = b.prev.topFieldOrderCnt
		} else {
			prevMsb = b.prev.picOrderCntMsb
			prevLsb = b.prev.picOrderCntLsb
		}
	}

	maxLsb := maxPicOrderCntLsb(pic.SPS.Log2MaxPicOrderCntLsbMinus4)
	lsb := int(pic.Header.PicOrderCntLsb)

	switch {
	case lsb < prevLsb && (prevLsb-lsb) >= maxLsb/2:
		pic.PicOrderCntMsb = prevMsb + maxLsb
	case lsb > prevLsb && (lsb-prevLsb) > maxLsb/2:
		pic.PicOrderCntMsb = prevMsb - maxLsb
	default:
		pic.PicOrderCntMsb = prevMsb
	}

	pic.TopFieldOrderCnt = pic.PicOrderCntMsb + lsb
	pic.BottomFieldOrderCnt = pic.TopFieldOrderCnt + pic.Header.DeltaPicOrderCntBottom
}

// pocType1 implements 8.2.1.2. Fields-coded pictures are out of scope
// (this decoder treats every picture as a full frame), so the
// field_pic_flag branches collapse to the "not field_pic_flag" case.
func (b *Buffer) pocType1(pic *picture.Picture) {
	var frameNumOffset, frameNum int
	var mmco5 bool
	if b.prev.valid {
		frameNumOffset = b.prev.frameNumOffset
		mmco5 = b.prev.mmco5Applied
		frameNum = b.prev.frameNum
	}

	prevFrameNumOffset := 0
	if !pic.IsIDR && !mmco5 {
		prevFrameNumOffset = frameNumOffset
	}

	maxFN := maxFrameNum(pic.SPS.Log2MaxFrameNumMinus4)
	switch {
	case pic.IsIDR:
		pic.FrameNumOffset = 0
	case frameNum > pic.FrameNum:
		pic.FrameNumOffset = prevFrameNumOffset + maxFN
	default:
		pic.FrameNumOffset = prevFrameNumOffset
	}

	numRefCycle := int(pic.SPS.NumRefFramesInPicOrderCntCycle)
	var absFrameNum int
	if numRefCycle != 0 {
		absFrameNum = pic.FrameNumOffset + pic.FrameNum
	}
	if pic.NalRefIdc == 0 && absFrameNum > 0 {
		absFrameNum--
	}

	var expectedDeltaPerCycle int
	for _, off := range pic.SPS.OffsetForRefFrame {
		expectedDeltaPerCycle += off
	}

	var expectedPicOrderCnt int
	if absFrameNum > 0 && numRefCycle != 0 {
		cycleCnt := (absFrameNum - 1) / numRefCycle
		inCycle := (absFrameNum - 1) % numRefCycle
		expectedPicOrderCnt = cycleCnt * expectedDeltaPerCycle
		for i := 0; i <= inCycle && i < len(pic.SPS.OffsetForRefFrame); i++ {
			expectedPicOrderCnt += pic.SPS.OffsetForRefFrame[i]
		}
	}
	if pic.NalRefIdc == 0 {
		expectedPicOrderCnt += pic.SPS.OffsetForNonRefPic
	}

	pic.TopFieldOrderCnt = expectedPicOrderCnt + pic.Header.DeltaPicOrderCnt[0]
	pic.BottomFieldOrderCnt = pic.TopFieldOrderCnt + pic.SPS.OffsetForTopToBottomField + pic.Header.DeltaPicOrderCnt[1]
}

// pocType2 implements 8.2.1.3.
func (b *Buffer) pocType2(pic *picture.Picture) {
	var frameNumOffset, frameNum int
	var mmco5 bool
	if b.prev.valid {
		frameNumOffset = b.prev.frameNumOffset
		mmco5 = b.prev.mmco5Applied
		frameNum = b.prev.frameNum
	}

	prevFrameNumOffset := 0
	if !pic.IsIDR && !mmco5 {
		prevFrameNumOffset = frameNumOffset
	}

	maxFN := maxFrameNum(pic.SPS.Log2MaxFrameNumMinus4)
	switch {
	case pic.IsIDR:
		pic.FrameNumOffset = 0
	case frameNum > pic.FrameNum:
		pic.FrameNumOffset = prevFrameNumOffset + maxFN
	default:
		pic.FrameNumOffset = prevFrameNumOffset
	}

	var tempPOC int
	switch {
	case pic.IsIDR:
		tempPOC = 0
	case pic.NalRefIdc == 0:
		tempPOC = 2*(pic.FrameNumOffset+pic.FrameNum) - 1
	default:
		tempPOC = 2 * (pic.FrameNumOffset + pic.FrameNum)
	}

	pic.TopFieldOrderCnt = tempPOC
	pic.BottomFieldOrderCnt = tempPOC
}
