/*
DESCRIPTION
  scaling.go provides the default scaling-list matrices (table 7-3/7-4) and
  the scaling_list() parsing process (7.3.2.1.1.1) shared by SPS and PPS.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
  h264dec contributors
*/

package paramsets

import (
	"github.com/pkg/errors"

	"github.com/coastwatch/h264dec/bits"
)

// Chroma formats, table 6-1.
const (
	ChromaMonochrome = iota
	Chroma420
	Chroma422
	Chroma444
)

// DefaultScalingMatrix4x4 holds the intra/inter default 4x4 scaling lists
// (table 7-3).
var DefaultScalingMatrix4x4 = [2][16]int{
	{6, 13, 13, 20, 20, 20, 28, 28, 28, 28, 32, 32, 32, 37, 37, 42},
	{10, 14, 14, 20, 20, 20, 24, 24, 24, 24, 27, 27, 27, 30, 30, 34},
}

// DefaultScalingMatrix8x8 holds the intra/inter default 8x8 scaling lists
// (table 7-4), in zig-zag scan order as the standard lists them.
var DefaultScalingMatrix8x8 = [2][64]int{
	{
		6, 10, 10, 13, 11, 13, 16, 16,
		16, 16, 18, 18, 18, 18, 18, 23,
		23, 23, 23, 23, 23, 25, 25, 25,
		25, 25, 25, 25, 27, 27, 27, 27,
		27, 27, 27, 27, 29, 29, 29, 29,
		29, 29, 29, 31, 31, 31, 31, 31,
		31, 33, 33, 33, 33, 33, 36, 36,
		36, 36, 38, 38, 38, 40, 40, 42,
	},
	{
		9, 13, 13, 15, 13, 15, 17, 17,
		17, 17, 19, 19, 19, 19, 19, 21,
		21, 21, 21, 21, 21, 22, 22, 22,
		22, 22, 22, 22, 24, 24, 24, 24,
		24, 24, 24, 24, 25, 25, 25, 25,
		25, 25, 25, 27, 27, 27, 27, 27,
		27, 28, 28, 28, 28, 28, 30, 30,
		30, 30, 32, 32, 32, 33, 33, 35,
	},
}

// FlatScalingList returns a size-entry flat (value 16 everywhere) scaling
// list, used when scaling lists are neither signalled nor defaulted.
func FlatScalingList(size int) []int {
	l := make([]int, size)
	for i := range l {
		l[i] = 16
	}
	return l
}

// ScalingList parses the scaling_list() syntax structure (7.3.2.1.1.1),
// writing size entries into a fresh slice. useDefault reports whether the
// decoder should substitute defaultList entirely, per the syntax's
// "next_scale == 0 on i == 0" rule.
func ScalingList(r *bits.Reader, size int, defaultList []int) (list []int, useDefault bool, err error) {
	list = make([]int, size)
	lastScale, nextScale := 8, 8
	for i := 0; i < size; i++ {
		if nextScale != 0 {
			deltaScale, err := r.SignedExpGolomb()
			if err != nil {
				return nil, false, errors.Wrap(err, "ScalingList: could not read delta_scale")
			}
			nextScale = (lastScale + int(deltaScale) + 256) % 256
			if i == 0 && nextScale == 0 {
				useDefault = true
			}
		}
		if nextScale == 0 {
			list[i] = lastScale
		} else {
			list[i] = nextScale
		}
		lastScale = list[i]
	}
	if useDefault {
		copy(list, defaultList)
	}
	return list, useDefault, nil
}
