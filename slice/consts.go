/*
DESCRIPTION
  consts.go holds slice_type (table 7-6) and related small enumerations
  shared across the slice package's syntax structures.

AUTHORS
  h264dec contributors
*/

// Package slice decodes slice_header() and its nested syntax structures
// (ref_pic_list_modification, pred_weight_table, dec_ref_pic_marking); the
// per-macroblock slice_data() loop lives in package decoder.
package slice

// Slice types, table 7-6. slice_type values 5-9 repeat 0-4 to additionally
// signal that every slice in the picture has the same type; %5 recovers the
// base type everywhere this package needs it.
const (
	SliceTypeP  = 0
	SliceTypeB  = 1
	SliceTypeI  = 2
	SliceTypeSP = 3
	SliceTypeSI = 4
)

// BaseType returns sliceType mod 5, the type family regardless of the
// all-slices-this-type signalling variants 5-9.
func BaseType(sliceType uint) uint { return sliceType % 5 }

// Name returns the slice type's display name, e.g. "P", "B", "I".
func Name(sliceType uint) string {
	switch BaseType(sliceType) {
	case SliceTypeP:
		return "P"
	case SliceTypeB:
		return "B"
	case SliceTypeI:
		return "I"
	case SliceTypeSP:
		return "SP"
	case SliceTypeSI:
		return "SI"
	default:
		return "unknown"
	}
}
