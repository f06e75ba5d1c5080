/*
DESCRIPTION
  engine.go implements the CABAC arithmetic decoding engine: initialization
  (9.3.1.2), the decision/bypass/terminate decoding processes (9.3.3.2), and
  renormalization (9.3.3.2.2).

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
  h264dec contributors
*/

// Package cabac implements the context-adaptive binary arithmetic coding
// engine: context state storage and initialization, the arithmetic decoding
// primitives, and the binarization tables needed to turn a bin string back
// into a syntax element value.
package cabac

import (
	"github.com/pkg/errors"

	"github.com/coastwatch/h264dec/bits"
)

// Engine is one arithmetic decoding engine instance, holding codIRange and
// codIOffset (9.3.3.2) and a reference to the bit cursor it reads renorm
// bits from. One Engine exists per slice; a fresh Engine never survives
// across slice boundaries since codIRange/codIOffset are reinitialized at
// the start of every slice's CABAC-coded data.
type Engine struct {
	r         *bits.Reader
	codIRange uint32
	codIOffset uint32
}

// NewEngine initializes the arithmetic decoding engine per 9.3.1.2: r must
// be positioned at the start of cabac_alignment_one_bit-aligned data (the
// caller aligns r before calling NewEngine).
func NewEngine(r *bits.Reader) (*Engine, error) {
	offset, err := r.Bits(9)
	if err != nil {
		return nil, errors.Wrap(err, "cabac: could not read initial codIOffset")
	}
	return &Engine{r: r, codIRange: 510, codIOffset: uint32(offset)}, nil
}

// ContextState is one ctxIdx's state variable: pStateIdx (0-63) and valMPS
// (9.3.1.1).
type ContextState struct {
	PStateIdx int
	ValMPS    int
}

// Init initializes this state per 9.3.1.1, given the (m, n) pair assigned to
// its ctxIdx by table 9-12 through 9-33 and the current SliceQPY.
func (s *ContextState) Init(m, n, sliceQPY int) {
	preCtxState := clip3(1, 126, ((m*clip3(0, 51, sliceQPY))>>4)+n)
	if preCtxState <= 63 {
		s.PStateIdx = 63 - preCtxState
		s.ValMPS = 0
	} else {
		s.PStateIdx = preCtxState - 64
		s.ValMPS = 1
	}
}

func clip3(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DecodeDecision implements DecodeDecision(ctxIdx) per 9.3.3.2.1, mutating
// state in place as the standard's process requires.
func (e *Engine) DecodeDecision(s *ContextState) (int, error) {
	qCodIRangeIdx := (e.codIRange >> 6) & 0x3
	codIRangeLPS, err := RangeTabLPS(s.PStateIdx, int(qCodIRangeIdx))
	if err != nil {
		return 0, errors.Wrap(err, "cabac: DecodeDecision")
	}
	e.codIRange -= uint32(codIRangeLPS)

	var binVal int
	if e.codIOffset >= e.codIRange {
		binVal = 1 - s.ValMPS
		e.codIOffset -= e.codIRange
		e.codIRange = uint32(codIRangeLPS)
		if s.PStateIdx == 0 {
			s.ValMPS = 1 - s.ValMPS
		}
		s.PStateIdx = TransIdxLPS(s.PStateIdx)
	} else {
		binVal = s.ValMPS
		s.PStateIdx = TransIdxMPS(s.PStateIdx)
	}

	if err := e.renorm(); err != nil {
		return 0, errors.Wrap(err, "cabac: DecodeDecision renorm")
	}
	return binVal, nil
}

// DecodeBypass implements DecodeBypass() per 9.3.3.2.3.
func (e *Engine) DecodeBypass() (int, error) {
	bit, err := e.r.Bits(1)
	if err != nil {
		return 0, errors.Wrap(err, "cabac: DecodeBypass")
	}
	e.codIOffset = (e.codIOffset << 1) | uint32(bit)
	if e.codIOffset >= e.codIRange {
		e.codIOffset -= e.codIRange
		return 1, nil
	}
	return 0, nil
}

// DecodeTerminate implements DecodeTerminate() per 9.3.3.2.4.
func (e *Engine) DecodeTerminate() (int, error) {
	e.codIRange -= 2
	if e.codIOffset >= e.codIRange {
		return 1, nil
	}
	if err := e.renorm(); err != nil {
		return 0, errors.Wrap(err, "cabac: DecodeTerminate renorm")
	}
	return 0, nil
}

// Reader exposes the underlying bit cursor, for callers that need to
// realign to a byte boundary and reinitialize the engine mid-slice (the
// I_PCM macroblock's "two-phase" CABAC re-entry, 9.3.1.2).
func (e *Engine) Reader() *bits.Reader { return e.r }

// renorm implements RenormD() per 9.3.3.2.2.
func (e *Engine) renorm() error {
	for e.codIRange < 256 {
		bit, err := e.r.Bits(1)
		if err != nil {
			return errors.Wrap(err, "cabac: RenormD ran out of bits")
		}
		e.codIRange <<= 1
		e.codIOffset = (e.codIOffset << 1) | uint32(bit)
	}
	return nil
}
