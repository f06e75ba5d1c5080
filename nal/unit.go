/*
DESCRIPTION
  unit.go describes a network abstraction layer unit, as defined in section
  7.3.1 of ITU-T H.264, and its header byte decoding.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
  mrmod <mcmoranbjr@gmail.com>
  h264dec contributors
*/

// Package nal provides network abstraction layer unit framing: an
// Annex-B start-code Scanner for container-agnostic callers, a NAL-length-
// prefixed Split for MP4/avcC-fed samples, and the Unit header decoder both
// paths share.
package nal

import (
	"github.com/pkg/errors"
)

// Type identifies the RBSP payload kind carried by a NAL unit, per table
// 7-1 of the specification. Only the subset this decoder dispatches on is
// named; anything else is logged and skipped per spec section 7.
type Type uint8

const (
	TypeUnspecified0       Type = 0
	TypeSliceNonIDR        Type = 1
	TypeSliceDataPartitionA Type = 2
	TypeSliceDataPartitionB Type = 3
	TypeSliceDataPartitionC Type = 4
	TypeSliceIDR           Type = 5
	TypeSEI                Type = 6
	TypeSPS                Type = 7
	TypePPS                Type = 8
	TypeAUD                Type = 9
	TypeEndOfSequence      Type = 10
	TypeEndOfStream        Type = 11
	TypeFillerData         Type = 12
	TypeSPSExtension       Type = 13
	TypePrefixNALU         Type = 14
	TypeSubsetSPS          Type = 15
	TypeSliceLayerExtRBSP  Type = 20
	TypeSliceLayerExtRBSP2 Type = 21
)

// Unit is a parsed NAL unit header plus its RBSP payload, with emulation-
// prevention bytes still present (bits.Reader strips them on the fly).
type Unit struct {
	// forbidden_zero_bit, always 0.
	ForbiddenZeroBit uint8
	// nal_ref_idc: 0 means the NAL carries no reference picture / parameter
	// set data; non-zero means it does (spec section 6).
	RefIdc uint8
	// nal_unit_type, table 7-1.
	Type Type
	// RBSP is the NAL unit's raw byte sequence payload, header byte(s)
	// already removed, emulation-prevention bytes still present.
	RBSP []byte
}

// IsReference reports whether this NAL unit type is one a reference picture
// may depend on, i.e. nal_ref_idc must not be 0 for it per 7.4.1.
func (u *Unit) IsReference() bool { return u.RefIdc != 0 }

// Parse decodes a NAL unit's one-byte header and stores the remaining bytes
// as RBSP, ready for bits.NewReader. It does not handle the SVC/MVC/3D-AVC
// header extensions (nal_unit_type 14, 20, 21): this decoder targets
// Baseline/Main/High AVC, not the scalable/multiview/3D extensions, per
// spec section 1 scope.
func Parse(raw []byte) (*Unit, error) {
	if len(raw) < 1 {
		return nil, errors.New("nal: empty unit")
	}
	header := raw[0]
	u := &Unit{
		ForbiddenZeroBit: header >> 7 & 0x1,
		RefIdc:           header >> 5 & 0x3,
		Type:             Type(header & 0x1f),
		RBSP:             raw[1:],
	}
	if u.ForbiddenZeroBit != 0 {
		return nil, errors.New("nal: forbidden_zero_bit set")
	}
	return u, nil
}
