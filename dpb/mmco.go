/*
DESCRIPTION
  mmco.go implements the two reference picture marking processes that
  run when a picture is not an IDR: the sliding window process
  (8.2.5.3) and the adaptive memory control process (8.2.5.4) driven by
  a decoded memory_management_control_operation loop.

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/slice/dpb/mod.rs sliding_window/adaptive_memory_control.
*/

package dpb

import (
	"github.com/coastwatch/h264dec/picture"
	"github.com/coastwatch/h264dec/slice"
)

// slidingWindow implements 8.2.5.3: when the DPB already holds
// max(maxNumRefFrames, 1) reference pictures, the short-term reference
// with the smallest FrameNumWrap is evicted to make room.
func (b *Buffer) slidingWindow(maxNumRefFrames int) {
	numShort, numLong := 0, 0
	for _, ref := range b.Pictures {
		switch ref.Marking {
		case picture.ShortTerm:
			numShort++
		case picture.LongTerm:
			numLong++
		}
	}

	limit := maxNumRefFrames
	if limit < 1 {
		limit = 1
	}
	if numShort+numLong != limit || numShort == 0 {
		return
	}

	evictIdx := -1
	minWrap := 0
	for i, ref := range b.Pictures {
		if ref.Marking != picture.ShortTerm {
			continue
		}
		if evictIdx == -1 || ref.FrameNumWrap < minWrap {
			evictIdx = i
			minWrap = ref.FrameNumWrap
		}
	}
	if evictIdx >= 0 {
		b.Pictures = append(b.Pictures[:evictIdx], b.Pictures[evictIdx+1:]...)
	}
}

// adaptiveMemoryControl implements 8.2.5.4, running every decoded
// memory_management_control_operation entry in order against the DPB.
func (b *Buffer) adaptiveMemoryControl(pic *picture.Picture) {
	ops := pic.Header.DecRefPicMarking.Ops
	for _, op := range ops {
		switch op.Op {
		case slice.MMCOMarkShortTermUnused:
			picNumX := pic.FrameNum - (int(op.DifferenceOfPicNumsMinus1) + 1)
			b.removeWhere(func(ref *picture.Picture) bool {
				return ref.Marking == picture.ShortTerm && ref.PicNum == picNumX
			})
		case slice.MMCOMarkLongTermUnused:
			b.removeWhere(func(ref *picture.Picture) bool {
				return ref.Marking == picture.LongTerm && ref.LongTermPicNum == int(op.LongTermPicNum)
			})
		case slice.MMCOAssignLongTerm:
			picNumX := pic.FrameNum - (int(op.DifferenceOfPicNumsMinus1) + 1)
			b.removeWhere(func(ref *picture.Picture) bool {
				return ref.Marking == picture.LongTerm && ref.LongTermFrameIdx == int(op.LongTermFrameIdx)
			})
			for _, ref := range b.Pictures {
				if ref.Marking == picture.ShortTerm && ref.PicNum == picNumX {
					ref.Marking = picture.LongTerm
					ref.LongTermFrameIdx = int(op.LongTermFrameIdx)
				}
			}
		case slice.MMCOSetMaxLongTermFrameIdx:
			maxIdx := int(op.MaxLongTermFrameIdxPlus1) - 1
			b.removeWhere(func(ref *picture.Picture) bool {
				return ref.Marking == picture.LongTerm && ref.LongTermFrameIdx > maxIdx
			})
		case slice.MMCOMarkAllUnusedSetCurrent:
			b.Pictures = b.Pictures[:0]
			pic.MMCO5Applied = true
		case slice.MMCOMarkCurrentLongTerm:
			b.removeWhere(func(ref *picture.Picture) bool {
				return ref.Marking == picture.LongTerm && ref.LongTermFrameIdx == int(op.LongTermFrameIdx)
			})
			pic.Marking = picture.LongTerm
			pic.LongTermFrameIdx = int(op.LongTermFrameIdx)
		}
	}
}

func (b *Buffer) removeWhere(match func(*picture.Picture) bool) {
	kept := b.Pictures[:0]
	for _, ref := range b.Pictures {
		if !match(ref) {
			kept = append(kept, ref)
		}
	}
	b.Pictures = kept
}
