/*
DESCRIPTION
  errs.go provides the decoder's typed error-kind surface, layered on top
  of github.com/pkg/errors the way the rest of this module wraps errors.

AUTHORS
  h264dec contributors
*/

// Package errs provides the h264dec error-kind surface described in
// spec section 6 (External interfaces / error surface).
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a decode failure. Kinds are not codes: callers switch on
// Kind, not on an integer, and new kinds may be added.
type Kind int

const (
	// BitstreamExhausted indicates a read past the end of the available bits.
	BitstreamExhausted Kind = iota
	// InvalidSyntax indicates a syntax element took on a value the standard
	// forbids for the current context.
	InvalidSyntax
	// UnsupportedProfile indicates a bitstream feature outside Baseline/Main/
	// High 4:2:0 8-bit.
	UnsupportedProfile
	// MissingParamSet indicates a slice referenced an SPS/PPS id that was
	// never decoded.
	MissingParamSet
	// ReferencePictureMissing indicates a reference list operation needed a
	// picture no longer (or never) in the DPB.
	ReferencePictureMissing
	// CabacEngineInvariant indicates the CABAC engine observed a state the
	// standard declares impossible (e.g. cod_i_offset in {510, 511} at init).
	CabacEngineInvariant
	// MacroblockBounds indicates a macroblock or neighbour index fell outside
	// [0, PicSizeInMbs).
	MacroblockBounds
)

// String names the error kind, e.g. for the "kind" field in structured logs.
func (k Kind) String() string {
	switch k {
	case BitstreamExhausted:
		return "BitstreamExhausted"
	case InvalidSyntax:
		return "InvalidSyntax"
	case UnsupportedProfile:
		return "UnsupportedProfile"
	case MissingParamSet:
		return "MissingParamSet"
	case ReferencePictureMissing:
		return "ReferencePictureMissing"
	case CabacEngineInvariant:
		return "CabacEngineInvariant"
	case MacroblockBounds:
		return "MacroblockBounds"
	default:
		return "Unknown"
	}
}

// DecodeError pairs a Kind with a wrapped cause. Callers match on kind with
// errors.As; Error() still renders the full pkg/errors chain for humans.
type DecodeError struct {
	Kind  Kind
	cause error
}

// New returns a DecodeError of the given kind wrapping a fresh message.
func New(kind Kind, msg string) *DecodeError {
	return &DecodeError{Kind: kind, cause: errors.New(msg)}
}

// Wrap returns a DecodeError of the given kind wrapping cause with msg, or
// nil if cause is nil.
func Wrap(kind Kind, cause error, msg string) *DecodeError {
	if cause == nil {
		return nil
	}
	return &DecodeError{Kind: kind, cause: errors.Wrap(cause, msg)}
}

// Wrapf is Wrap with a format string.
func Wrapf(kind Kind, cause error, format string, args ...interface{}) *DecodeError {
	if cause == nil {
		return nil
	}
	return &DecodeError{Kind: kind, cause: errors.Wrap(cause, fmt.Sprintf(format, args...))}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// Is reports whether target is a *DecodeError with the same Kind, so
// errors.Is(err, errs.New(errs.MissingParamSet, "")) works for sentinel-style
// checks even though the message differs.
func (e *DecodeError) Is(target error) bool {
	other, ok := target.(*DecodeError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}
