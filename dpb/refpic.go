/*
DESCRIPTION
  refpic.go implements the reference picture list construction and
  modification processes of 8.2.4: picture numbering (8.2.4.1),
  initialization for P/SP and B slices (8.2.4.2), and the
  short-term/long-term list modification loops (8.2.4.3) driven by a
  decoded ref_pic_list_modification() structure.

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/slice/dpb/ref_pic.rs for the List 0 loop; the Rust original never
  implements the mirrored List 1 case, so modifyShortTerm/modifyLongTerm
  here are generalized to operate on either list (selected by mod.Flag[1]/
  mod.Entries[1] and pic.Header.NumRefIdxL1ActiveMinus1) directly from
  8.2.4.3's text rather than from a ported reference.
*/

package dpb

import (
	"sort"

	"github.com/coastwatch/h264dec/picture"
	"github.com/coastwatch/h264dec/slice"
)

func (b *Buffer) constructReferencePictureLists(pic *picture.Picture) {
	b.RefPicList0 = b.RefPicList0[:0]
	b.RefPicList1 = b.RefPicList1[:0]

	b.assignPictureNumbers(pic)
	b.initReferencePictureLists(pic)
	b.modifyReferencePictureLists(pic)
}

// assignPictureNumbers implements 8.2.4.1.
func (b *Buffer) assignPictureNumbers(pic *picture.Picture) {
	maxFN := maxFrameNum(pic.SPS.Log2MaxFrameNumMinus4)
	for _, ref := range b.Pictures {
		if ref.Marking == picture.ShortTerm {
			if ref.FrameNum > pic.FrameNum {
				ref.FrameNumWrap = ref.FrameNum - maxFN
			} else {
				ref.FrameNumWrap = ref.FrameNum
			}
		}
	}
	for _, ref := range b.Pictures {
		switch ref.Marking {
		case picture.ShortTerm:
			ref.PicNum = ref.FrameNumWrap
		case picture.LongTerm:
			ref.LongTermPicNum = ref.LongTermFrameIdx
		}
	}
}

// initReferencePictureLists implements 8.2.4.2, dispatching on slice
// type and then truncating each list to its signalled active length.
func (b *Buffer) initReferencePictureLists(pic *picture.Picture) {
	baseType := slice.BaseType(pic.Header.SliceType)
	switch baseType {
	case slice.SliceTypeP, slice.SliceTypeSP:
		b.initPSliceList(pic)
	case slice.SliceTypeB:
		b.initBSliceLists(pic)
	}

	activeL0 := int(pic.Header.NumRefIdxL0ActiveMinus1) + 1
	if len(b.RefPicList0) > activeL0 {
		b.RefPicList0 = b.RefPicList0[:activeL0]
	}
	activeL1 := int(pic.Header.NumRefIdxL1ActiveMinus1) + 1
	if len(b.RefPicList1) > activeL1 {
		b.RefPicList1 = b.RefPicList1[:activeL1]
	}
}

// initPSliceList implements 8.2.4.2.1: short-term references ordered
// by decreasing PicNum, followed by long-term references ordered by
// increasing LongTermPicNum.
func (b *Buffer) initPSliceList(pic *picture.Picture) {
	var short, long []*picture.Picture
	for _, ref := range b.Pictures {
		switch ref.Marking {
		case picture.ShortTerm:
			short = append(short, ref)
		case picture.LongTerm:
			long = append(long, ref)
		}
	}
	sort.SliceStable(short, func(i, j int) bool { return short[i].PicNum > short[j].PicNum })
	sort.SliceStable(long, func(i, j int) bool { return long[i].LongTermPicNum < long[j].LongTermPicNum })

	b.RefPicList0 = append(b.RefPicList0, short...)
	b.RefPicList0 = append(b.RefPicList0, long...)
}

// initBSliceLists implements 8.2.4.2.3 (frame case of 8.2.4.2.4):
// List 0 is short-term pictures with POC < current (descending POC)
// then short-term pictures with POC > current (ascending POC), then
// long-term pictures by ascending LongTermPicNum; List 1 swaps the two
// short-term orderings. If the two lists end up identical (length > 1)
// the first two entries of List 1 are swapped.
func (b *Buffer) initBSliceLists(pic *picture.Picture) {
	b.RefPicList0 = append(b.RefPicList0, buildBList(b.Pictures, pic.PicOrderCnt, true)...)
	b.RefPicList1 = append(b.RefPicList1, buildBList(b.Pictures, pic.PicOrderCnt, false)...)

	if len(b.RefPicList1) > 1 && len(b.RefPicList1) == len(b.RefPicList0) {
		identical := true
		for i := range b.RefPicList1 {
			if b.RefPicList1[i] != b.RefPicList0[i] {
				identical = false
				break
			}
		}
		if identical {
			b.RefPicList1[0], b.RefPicList1[1] = b.RefPicList1[1], b.RefPicList1[0]
		}
	}
}

func buildBList(pictures []*picture.Picture, poc int, list0 bool) []*picture.Picture {
	var before, after, long []*picture.Picture
	for _, ref := range pictures {
		switch ref.Marking {
		case picture.ShortTerm:
			if (ref.PicOrderCnt < poc) == list0 {
				before = append(before, ref)
			} else {
				after = append(after, ref)
			}
		case picture.LongTerm:
			long = append(long, ref)
		}
	}
	if list0 {
		sort.SliceStable(before, func(i, j int) bool { return before[i].PicOrderCnt > before[j].PicOrderCnt })
		sort.SliceStable(after, func(i, j int) bool { return after[i].PicOrderCnt < after[j].PicOrderCnt })
	} else {
		sort.SliceStable(before, func(i, j int) bool { return before[i].PicOrderCnt < before[j].PicOrderCnt })
		sort.SliceStable(after, func(i, j int) bool { return after[i].PicOrderCnt > after[j].PicOrderCnt })
	}
	sort.SliceStable(long, func(i, j int) bool { return long[i].LongTermPicNum < long[j].LongTermPicNum })

	out := make([]*picture.Picture, 0, len(before)+len(after)+len(long))
	out = append(out, before...)
	out = append(out, after...)
	out = append(out, long...)
	return out
}

// modifyReferencePictureLists implements 8.2.4.3 for both lists,
// consuming a decoded ref_pic_list_modification() (slice.RefPicListModification).
// List 1 only applies to B slices, but mod.Flag[1]/mod.Entries[1] are
// simply unset for P/SP slices (slice.NewRefPicListModification never
// populates them outside SliceTypeB), so running the same loop
// unconditionally for both indices is safe.
func (b *Buffer) modifyReferencePictureLists(pic *picture.Picture) {
	mod := pic.Header.RefPicListModification
	if mod == nil {
		return
	}

	maxPicNum := maxFrameNum(pic.SPS.Log2MaxFrameNumMinus4)

	if mod.Flag[0] && len(b.RefPicList0) > 0 {
		b.modifyList(&b.RefPicList0, mod.Entries[0], currPicNum(pic), maxPicNum, int(pic.Header.NumRefIdxL0ActiveMinus1))
	}
	if mod.Flag[1] && len(b.RefPicList1) > 0 {
		b.modifyList(&b.RefPicList1, mod.Entries[1], currPicNum(pic), maxPicNum, int(pic.Header.NumRefIdxL1ActiveMinus1))
	}
}

// modifyList runs 8.2.4.3's modification loop against whichever list
// listPtr points to, mirroring the List 0 process for List 1 (8.2.4.3
// applies identically to both, substituting RefPicList1/refIdxL1/
// num_ref_idx_l1_active_minus1 throughout).
func (b *Buffer) modifyList(listPtr *[]*picture.Picture, entries []slice.RefPicListModEntry, currPicNum, maxPicNum, numRefIdxLXActiveMinus1 int) {
	refIdx := 0
	picNumPred := currPicNum

	for _, e := range entries {
		switch e.Op {
		case slice.ModOpSubtractAbsDiff, slice.ModOpAddAbsDiff:
			modifyShortTerm(listPtr, &refIdx, &picNumPred, int(e.AbsDiffPicNumMinus1), int(e.Op), numRefIdxLXActiveMinus1, maxPicNum, currPicNum)
		case slice.ModOpLongTerm:
			modifyLongTerm(listPtr, &refIdx, int(e.LongTermPicNum), numRefIdxLXActiveMinus1)
		default:
			return
		}
	}
}

// currPicNum is PicNum of the current picture itself (8.2.4.1's
// CurrPicNum, frame case): just its frame_num.
func currPicNum(pic *picture.Picture) int { return pic.FrameNum }

// modifyShortTerm implements 8.2.4.3.1 against whichever list listPtr
// points to (RefPicList0 or RefPicList1).
func modifyShortTerm(listPtr *[]*picture.Picture, refIdxLX, picNumLXPred *int, absDiffPicNumMinus1, modOp, numRefIdxLXActiveMinus1, maxPicNum, currPicNum int) {
	var picNumLXNoWrap int
	if modOp == slice.ModOpSubtractAbsDiff {
		if *picNumLXPred-(absDiffPicNumMinus1+1) < 0 {
			picNumLXNoWrap = *picNumLXPred - (absDiffPicNumMinus1 + 1) + maxPicNum
		} else {
			picNumLXNoWrap = *picNumLXPred - (absDiffPicNumMinus1 + 1)
		}
	} else if *picNumLXPred+(absDiffPicNumMinus1+1) >= maxPicNum {
		picNumLXNoWrap = *picNumLXPred + (absDiffPicNumMinus1 + 1) - maxPicNum
	} else {
		picNumLXNoWrap = *picNumLXPred + (absDiffPicNumMinus1 + 1)
	}
	*picNumLXPred = picNumLXNoWrap

	picNumLX := picNumLXNoWrap
	if picNumLXNoWrap > currPicNum {
		picNumLX = picNumLXNoWrap - maxPicNum
	}

	list := *listPtr
	length := numRefIdxLXActiveMinus1 + 1
	if length > len(list) {
		length = len(list)
	}

	list = append(list, nil)
	for cIdx := length; cIdx > *refIdxLX; cIdx-- {
		list[cIdx] = list[cIdx-1]
	}

	idx := 0
	for idx < length {
		if list[idx] != nil && list[idx].PicNum == picNumLX && list[idx].Marking == picture.ShortTerm {
			break
		}
		idx++
	}
	if idx < len(list) {
		list[*refIdxLX] = list[idx]
	}
	*refIdxLX++

	nIdx := *refIdxLX
	for cIdx := *refIdxLX; cIdx <= length && cIdx < len(list); cIdx++ {
		picNumF := maxPicNum
		if list[cIdx] != nil && list[cIdx].Marking == picture.ShortTerm {
			picNumF = list[cIdx].PicNum
		}
		if picNumF != picNumLX {
			list[nIdx] = list[cIdx]
			nIdx++
		}
	}

	if numRefIdxLXActiveMinus1+1 < len(list) {
		list = list[:numRefIdxLXActiveMinus1+1]
	}
	*listPtr = list
}

// modifyLongTerm implements 8.2.4.3.2 against whichever list listPtr
// points to (RefPicList0 or RefPicList1).
func modifyLongTerm(listPtr *[]*picture.Picture, refIdxLX *int, longTermPicNum, numRefIdxLXActiveMinus1 int) {
	list := *listPtr
	length := numRefIdxLXActiveMinus1 + 1
	if length > len(list) {
		length = len(list)
	}

	list = append(list, nil)
	for cIdx := length; cIdx > *refIdxLX; cIdx-- {
		list[cIdx] = list[cIdx-1]
	}

	idx := 0
	for idx < length {
		if list[idx] != nil && list[idx].LongTermPicNum == longTermPicNum {
			break
		}
		idx++
	}
	if idx < len(list) {
		list[*refIdxLX] = list[idx]
	}
	*refIdxLX++

	nIdx := *refIdxLX
	for cIdx := *refIdxLX; cIdx <= length && cIdx < len(list); cIdx++ {
		longTermPicNumF := 0
		if list[cIdx] != nil && list[cIdx].Marking == picture.LongTerm {
			longTermPicNumF = list[cIdx].LongTermPicNum
		}
		if longTermPicNumF != longTermPicNum {
			list[nIdx] = list[cIdx]
			nIdx++
		}
	}

	if numRefIdxLXActiveMinus1+1 < len(list) {
		list = list[:numRefIdxLXActiveMinus1+1]
	}
	*listPtr = list
}
