/*
DESCRIPTION
  slicedata.go decodes slice_data() (7.3.4) for CABAC-coded slices: the
  per-macroblock loop driving mb_skip_flag/mb_type/mb_pred()/residual()
  through the cabac package's syntax-element decoders, reconstructing each
  macroblock's samples via the intra/inter/transform/residual packages and
  writing them into the picture's Frame.

AUTHORS
  h264dec contributors, grounded on the teacher package's NewSliceData
  (slice.go) for the moreDataFlag/mb_skip_run loop shape, generalized from
  that function's incomplete ae()/TODO branches into a working CABAC-only
  decode (this decoder does not implement CAVLC residual decoding, so
  pic_parameter_set_rbsp()'s entropy_coding_mode_flag == 0 is rejected, see
  DESIGN.md).
*/

package decoder

import (
	"github.com/pkg/errors"

	bitreader "github.com/coastwatch/h264dec/bits"
	"github.com/coastwatch/h264dec/cabac"
	"github.com/coastwatch/h264dec/errs"
	"github.com/coastwatch/h264dec/inter"
	"github.com/coastwatch/h264dec/intra"
	"github.com/coastwatch/h264dec/macroblock"
	"github.com/coastwatch/h264dec/picture"
	"github.com/coastwatch/h264dec/residual"
	"github.com/coastwatch/h264dec/slice"
	"github.com/coastwatch/h264dec/transform"
)

// mbInfo is the decoder's own per-macroblock bookkeeping, kept alongside
// macroblock.Store's syntax-level Macroblock: the resolved (not just
// differentially-coded) motion vector and reference index a later
// macroblock's median MV predictor needs, plus the handful of flags the
// CABAC ctxIdxInc derivations read from spatial neighbours.
type mbInfo struct {
	skip      bool
	intra     bool
	refIdxL0  int
	mv        inter.MV
	qpy       int
	cbfNonZero bool // true if this macroblock's luma/chroma CBP was non-zero or any coded_block_flag was set
}

// sliceDecodeCtx bundles the state threaded through slice_data()'s
// macroblock loop.
type sliceDecodeCtx struct {
	pic    *picture.Picture
	sps    *parameterSetPair
	h      *slice.Header
	store  *macroblock.Store
	engine *cabac.Engine
	models []cabac.ContextState

	refList0 []*picture.Picture
	refList1 []*picture.Picture

	widthMbs  int
	heightMbs int

	info []mbInfo

	qpyPrev int
}

// parameterSetPair avoids importing paramsets twice under different names
// in this file; sps/pps are resolved once by the caller.
type parameterSetPair struct {
	chromaArrayType int
	bitDepthLuma    int
	bitDepthChroma  int
	chromaQPOffset  int
	secondChromaQPOffset int
	transform8x8    bool
	constrainedIntra bool

	weightedPredFlag   bool
	weightedBipredIDC  int
}

// decodeSliceData decodes slice_data() for pic's slice, whose header has
// already been read from r; r is positioned immediately after the slice
// header's last field.
func (d *Decoder) decodeSliceData(r *bitreader.Reader, pic *picture.Picture) error {
	if !pic.PPS.EntropyCodingModeFlag {
		return errs.New(errs.UnsupportedProfile, "decoder: CAVLC slices (entropy_coding_mode_flag == 0) are not implemented")
	}

	// cabac_alignment_one_bit: consume bits until byte-aligned (7.3.4).
	for !r.ByteAligned() {
		if _, err := r.Bit(); err != nil {
			return errors.Wrap(err, "slice_data: could not consume cabac_alignment_one_bit")
		}
	}

	sliceQPY := 26 + pic.PPS.PicInitQPMinus26 + pic.Header.SliceQPDelta
	models := cabac.NewContextModels(sliceQPY, pic.Header.SliceType, pic.Header.CabacInitIDC)
	engine, err := cabac.NewEngine(r)
	if err != nil {
		return errors.Wrap(err, "slice_data: could not initialize CABAC engine")
	}

	widthMbs := int(pic.SPS.PicWidthInMbs())
	heightMbs := int(pic.SPS.FrameHeightInMbs())
	totalMbs := widthMbs * heightMbs

	ctx := &sliceDecodeCtx{
		pic: pic,
		sps: &parameterSetPair{
			chromaArrayType:      int(pic.SPS.ChromaArrayType()),
			bitDepthLuma:         int(pic.SPS.BitDepthLumaMinus8) + 8,
			bitDepthChroma:       int(pic.SPS.BitDepthChromaMinus8) + 8,
			chromaQPOffset:       pic.PPS.ChromaQPIndexOffset,
			secondChromaQPOffset: pic.PPS.SecondChromaQPIndexOffset,
			transform8x8:         pic.PPS.Transform8x8ModeFlag,
			constrainedIntra:     pic.PPS.ConstrainedIntraPredFlag,
			weightedPredFlag:     pic.PPS.WeightedPredFlag,
			weightedBipredIDC:    int(pic.PPS.WeightedBipredIDC),
		},
		h:         pic.Header,
		store:     &macroblock.Store{MBs: make([]macroblock.Macroblock, totalMbs), WidthInMbs: widthMbs},
		engine:    engine,
		models:    models,
		refList0:  d.dpb.RefPicList0,
		refList1:  d.dpb.RefPicList1,
		widthMbs:  widthMbs,
		heightMbs: heightMbs,
		info:      make([]mbInfo, totalMbs),
		qpyPrev:   sliceQPY,
	}

	currMbAddr := int(pic.Header.FirstMbInSlice)
	moreDataFlag := true
	for moreDataFlag && currMbAddr < totalMbs {
		if err := ctx.decodeMacroblock(currMbAddr); err != nil {
			return errors.Wrapf(err, "slice_data: macroblock %d", currMbAddr)
		}
		currMbAddr++

		if currMbAddr >= totalMbs {
			break
		}
		end, err := cabac.DecodeEndOfSliceFlag(engine)
		if err != nil {
			return errors.Wrap(err, "slice_data: could not decode end_of_slice_flag")
		}
		moreDataFlag = !end
	}
	return nil
}

// baseType is a small convenience alias so switch statements below read
// the same way the standard's own P/B/I vocabulary does.
func baseType(h *slice.Header) uint { return slice.BaseType(h.SliceType) }

func (c *sliceDecodeCtx) neighbours(addr int) macroblock.Neighbours {
	return c.store.Resolve(addr, 0)
}

// decodeMacroblock decodes one macroblock_layer() (7.3.5) and reconstructs
// its samples into the picture.
func (c *sliceDecodeCtx) decodeMacroblock(addr int) error {
	nb := c.neighbours(addr)
	bt := baseType(c.h)

	skip := false
	if bt == slice.SliceTypeP || bt == slice.SliceTypeSP || bt == slice.SliceTypeB {
		base := 11
		if bt == slice.SliceTypeB {
			base = 24
		}
		inc := macroblock.NeighbourInc(c.neighbourNotSkipped(nb.A), c.neighbourNotSkipped(nb.B))
		s, err := cabac.DecodeMBSkipFlag(c.engine, c.models, base, inc)
		if err != nil {
			return errors.Wrap(err, "could not decode mb_skip_flag")
		}
		skip = s
	}

	mb := &c.store.MBs[addr]
	mb.Addr = addr
	mb.SliceID = 0
	mb.Decoded = true

	if skip {
		return c.decodeSkipMacroblock(addr, mb, nb, bt)
	}

	switch bt {
	case slice.SliceTypeI, slice.SliceTypeSI:
		return c.decodeIMacroblock(addr, mb, nb)
	case slice.SliceTypeP, slice.SliceTypeSP:
		return c.decodePMacroblock(addr, mb, nb)
	case slice.SliceTypeB:
		return c.decodeBMacroblock(addr, mb, nb)
	default:
		return errs.New(errs.InvalidSyntax, "decoder: unsupported slice type")
	}
}

func (c *sliceDecodeCtx) neighbourNotSkipped(n macroblock.Neighbour) bool {
	return n.Present && !c.info[n.Addr].skip
}

// decodeSkipMacroblock implements P_Skip/B_Skip (7.3.5, "if mb_skip_flag"):
// no mb_type, no residual; the partition's motion is entirely predicted.
func (c *sliceDecodeCtx) decodeSkipMacroblock(addr int, mb *macroblock.Macroblock, nb macroblock.Neighbours, bt uint) error {
	mb.Type = macroblock.Type{Class: macroblock.ClassPSkip}
	if bt == slice.SliceTypeB {
		mb.Type.Class = macroblock.ClassBSkip
	}

	mv := c.predictMBMotion(addr, nb, inter.PartGeometry{Width: 16, Height: 16}, 0)
	c.info[addr] = mbInfo{skip: true, refIdxL0: 0, mv: mv, qpy: c.qpyPrev}
	c.reconstructInter(addr, mv, 0, nil)
	return nil
}

// predictMBMotion runs 8.4.1.3's median predictor for a partition of the
// given geometry; finer partition shapes reuse the same call with their
// own geom (see decodePMacroblock/decodeBMacroblock), but this decoder
// represents every macroblock's resolved motion as a single representative
// vector rather than one per 4x4 block (see DESIGN.md's note on
// Interpolate/motion granularity) — the neighbour lookup below always
// reads the whole neighbouring macroblock's representative vector rather
// than the specific neighbouring partition's.
func (c *sliceDecodeCtx) predictMBMotion(addr int, nb macroblock.Neighbours, geom inter.PartGeometry, refIdxLX int) inter.MV {
	a := c.mvNeighbour(nb.A)
	b := c.mvNeighbour(nb.B)
	cc := c.mvNeighbour(nb.C)
	if !cc.Available {
		cc = c.mvNeighbour(nb.D)
	}
	// P_Skip's zero-motion special case (8.4.1.1): if A or B is
	// unavailable, or has zero MV and refIdx 0, mvL0 is exactly (0,0).
	if c.store.MBs[addr].Type.Class == macroblock.ClassPSkip &&
		(!nb.A.Present || !nb.B.Present ||
			(a.Available && a.RefIdx == 0 && a.MV == (inter.MV{})) ||
			(b.Available && b.RefIdx == 0 && b.MV == (inter.MV{}))) {
		return inter.MV{}
	}
	return inter.PredictMV(geom, a, b, cc, refIdxLX)
}

func (c *sliceDecodeCtx) mvNeighbour(n macroblock.Neighbour) inter.Neighbour {
	if !n.Present {
		return inter.Neighbour{}
	}
	info := c.info[n.Addr]
	if info.intra {
		return inter.Neighbour{}
	}
	return inter.Neighbour{MV: info.mv, RefIdx: info.refIdxL0, Available: true}
}

// reconstructInter writes motion-compensated samples (plus, if resid is
// non-nil, residual) for a 16x16 macroblock area. Fractional-sample
// interpolation is out of scope (inter.Interpolate is a declared-only
// stub), so the motion vector's quarter-sample fraction is dropped and the
// integer part of the vector (mv>>2, rounding toward minus infinity) is used
// instead; this is a documented
// approximation, not a conformance claim (spec.md's own Non-goals exclude
// bit-exact reconstruction).
func (c *sliceDecodeCtx) reconstructInter(addr int, mv inter.MV, refIdx int, resid [][]int) {
	if len(c.refList0) == 0 {
		return
	}
	ref := c.refList0[clip3Dec(0, len(c.refList0)-1, refIdx)]
	x0, y0 := mbOrigin(addr, c.widthMbs)
	dx, dy := mv.X>>2, mv.Y>>2

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := ref.Frame.LumaAt(x0+x+dx, y0+y+dy)
			if resid != nil {
				v += resid[y][x]
			}
			c.pic.Frame.SetLumaAt(x0+x, y0+y, clip1Dec(v, (1<<c.sps.bitDepthLuma)-1))
		}
	}
	if c.sps.chromaArrayType == 0 {
		return
	}
	cx0, cy0 := x0/2, y0/2
	cw, ch := c.pic.Frame.ChromaWidth/c.widthMbs, c.pic.Frame.ChromaHeight/c.heightMbs
	for _, cb := range []bool{true, false} {
		for y := 0; y < ch; y++ {
			for x := 0; x < cw; x++ {
				v := ref.Frame.ChromaAt(cb, cx0+x+dx/2, cy0+y+dy/2)
				c.pic.Frame.SetChromaAt(cb, cx0+x, cy0+y, clip1Dec(v, (1<<c.sps.bitDepthChroma)-1))
			}
		}
	}
}

func mbOrigin(addr, widthMbs int) (int, int) {
	return (addr % widthMbs) * 16, (addr / widthMbs) * 16
}

func clip1Dec(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func clip3Dec(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// decodeIMacroblock decodes an I-slice (or I-class, within a P/B slice)
// macroblock_layer(): mb_type, then I_NxN/I_16x16/I_PCM's own mb_pred()
// and residual.
func (c *sliceDecodeCtx) decodeIMacroblock(addr int, mb *macroblock.Macroblock, nb macroblock.Neighbours) error {
	raw, err := cabac.DecodeMBTypeI(c.engine, c.models)
	if err != nil {
		return errors.Wrap(err, "could not decode mb_type")
	}
	return c.decodeIMacroblockType(addr, mb, nb, raw)
}

// decodeIMacroblockType implements the I_NxN(0)/I_16x16(1-24)/I_PCM(25)
// mb_type classification shared by I slices and the I-escape paths of
// P/B mb_type (table 7-11).
func (c *sliceDecodeCtx) decodeIMacroblockType(addr int, mb *macroblock.Macroblock, nb macroblock.Neighbours, raw int) error {
	mb.RawType = raw
	c.info[addr].intra = true

	switch {
	case raw == 0:
		mb.Type = macroblock.Type{Class: macroblock.ClassINxN, Mode: macroblock.PredIntra4x4}
		return c.decodeINxN(addr, mb, nb)
	case raw == 25:
		mb.Type = macroblock.Type{Class: macroblock.ClassIPCM, IsIPCM: true}
		return c.decodeIPCM(addr, mb)
	default:
		m := macroblock.DecodeI16x16MbType(raw)
		mb.Type = macroblock.Type{
			Class:   macroblock.ClassI16x16,
			Mode:    macroblock.PredIntra16x16,
			CBPLuma: m.CodedBlockPatternLuma,
		}
		mb.I16x16PredMode = m.PredMode
		mb.CodedBlockPatternLuma = m.CodedBlockPatternLuma
		mb.CodedBlockPatternChroma = m.CodedBlockPatternChroma
		return c.decodeI16x16(addr, mb, nb)
	}
}

// decodeINxN decodes Intra_NxN's mb_pred(): per-4x4 (or, if
// transform_size_8x8_flag, per-8x8) prediction mode signalling, followed
// by intra_chroma_pred_mode, coded_block_pattern, mb_qp_delta, and the
// residual.
func (c *sliceDecodeCtx) decodeINxN(addr int, mb *macroblock.Macroblock, nb macroblock.Neighbours) error {
	use8x8 := false
	if c.sps.transform8x8 {
		inc := macroblock.NeighbourInc(nb.A.Present, nb.B.Present)
		v, err := cabac.DecodeTransformSize8x8Flag(c.engine, c.models, inc)
		if err != nil {
			return errors.Wrap(err, "could not decode transform_size_8x8_flag")
		}
		use8x8 = v
	}
	mb.TransformSize8x8Flag = use8x8

	n := 16
	if use8x8 {
		n = 4
	}
	for i := 0; i < n; i++ {
		prevFlag, err := cabac.DecodePrevIntraPredModeFlag(c.engine, c.models)
		if err != nil {
			return errors.Wrap(err, "could not decode prev_intra_pred_mode_flag")
		}
		mode := 2 // DC, the fallback predicted mode when neighbours are absent
		if !prevFlag {
			rem, err := cabac.DecodeRemIntraPredMode(c.engine, c.models)
			if err != nil {
				return errors.Wrap(err, "could not decode rem_intra_pred_mode")
			}
			mode = rem
		}
		if use8x8 {
			mb.Intra8x8PredMode[i] = mode
		} else {
			mb.Intra4x4PredMode[i] = mode
		}
	}

	if err := c.decodeIntraChromaPredMode(mb, nb); err != nil {
		return err
	}
	cbpLuma, cbpChroma, err := c.decodeCodedBlockPattern(mb, nb, true)
	if err != nil {
		return err
	}
	mb.CodedBlockPatternLuma = cbpLuma
	mb.CodedBlockPatternChroma = cbpChroma

	if err := c.decodeMBQPDelta(addr, mb, nb); err != nil {
		return err
	}

	res, err := c.decodeResidual(addr, mb, false)
	if err != nil {
		return err
	}
	if err := c.reconstructIntraNxN(addr, mb, use8x8, res); err != nil {
		return err
	}
	if err := c.reconstructChroma(addr, mb, res); err != nil {
		return err
	}
	c.info[addr].qpy = mb.QPY
	return nil
}

// decodeI16x16 decodes an Intra_16x16 macroblock's remaining mb_pred()
// fields (the prediction mode itself is already fixed by mb_type) plus
// its always-present Luma DC + conditionally-present Luma AC residual.
func (c *sliceDecodeCtx) decodeI16x16(addr int, mb *macroblock.Macroblock, nb macroblock.Neighbours) error {
	if err := c.decodeIntraChromaPredMode(mb, nb); err != nil {
		return err
	}
	if err := c.decodeMBQPDelta(addr, mb, nb); err != nil {
		return err
	}

	res, err := c.decodeResidual(addr, mb, true)
	if err != nil {
		return err
	}
	if err := c.reconstructIntra16x16(addr, mb, res); err != nil {
		return err
	}
	if err := c.reconstructChroma(addr, mb, res); err != nil {
		return err
	}
	c.info[addr].qpy = mb.QPY
	return nil
}

func (c *sliceDecodeCtx) decodeIntraChromaPredMode(mb *macroblock.Macroblock, nb macroblock.Neighbours) error {
	if c.sps.chromaArrayType != 1 && c.sps.chromaArrayType != 2 {
		return nil
	}
	inc := macroblock.NeighbourInc(nb.A.Present, nb.B.Present)
	mode, err := cabac.DecodeIntraChromaPredMode(c.engine, c.models, inc)
	if err != nil {
		return errors.Wrap(err, "could not decode intra_chroma_pred_mode")
	}
	mb.IntraChromaPredMode = mode
	return nil
}

// decodeCodedBlockPattern decodes coded_block_pattern (7.3.5's
// compound luma/chroma CBP, for macroblock classes that signal it
// explicitly rather than deriving it from mb_type).
func (c *sliceDecodeCtx) decodeCodedBlockPattern(mb *macroblock.Macroblock, nb macroblock.Neighbours, intraNxN bool) (int, int, error) {
	cbpLuma := 0
	for i := 0; i < 4; i++ {
		inc := macroblock.NeighbourInc(c.codedBlockLumaNeighbour(nb.A, i, true), c.codedBlockLumaNeighbour(nb.B, i, false))
		bin, err := cabac.DecodeCodedBlockPatternLuma(c.engine, c.models, inc)
		if err != nil {
			return 0, 0, errors.Wrap(err, "could not decode coded_block_pattern (luma)")
		}
		cbpLuma |= bin << uint(i)
	}

	cbpChroma := 0
	if c.sps.chromaArrayType == 1 || c.sps.chromaArrayType == 2 {
		inc0 := macroblock.NeighbourInc(nb.A.Present, nb.B.Present)
		bin0, err := cabac.DecodeCodedBlockPatternChroma(c.engine, c.models, 0, inc0)
		if err != nil {
			return 0, 0, errors.Wrap(err, "could not decode coded_block_pattern (chroma bin 0)")
		}
		cbpChroma = bin0
		if bin0 == 1 {
			inc1 := macroblock.NeighbourInc(nb.A.Present, nb.B.Present)
			bin1, err := cabac.DecodeCodedBlockPatternChroma(c.engine, c.models, 1, inc1)
			if err != nil {
				return 0, 0, errors.Wrap(err, "could not decode coded_block_pattern (chroma bin 1)")
			}
			cbpChroma += bin1
		}
	}
	return cbpLuma, cbpChroma, nil
}

// codedBlockLumaNeighbour approximates 9.3.3.1.1.4's per-8x8-block
// neighbour lookup by falling back to the whole neighbouring macroblock's
// availability and CBP non-zero state, rather than the standard's precise
// 8x8-block-granularity condTermFlag; see DESIGN.md.
func (c *sliceDecodeCtx) codedBlockLumaNeighbour(n macroblock.Neighbour, part int, isLeft bool) bool {
	if !n.Present {
		return false
	}
	return c.info[n.Addr].cbfNonZero
}

func (c *sliceDecodeCtx) decodeMBQPDelta(addr int, mb *macroblock.Macroblock, nb macroblock.Neighbours) error {
	nonZero := nb.A.Present && c.info[nb.A.Addr].qpy != c.qpyPrev
	delta, err := cabac.DecodeMBQPDelta(c.engine, c.models, nonZero)
	if err != nil {
		return errors.Wrap(err, "could not decode mb_qp_delta")
	}
	mb.MbQPDelta = delta
	bdOffsetY := 6 * int(c.pic.SPS.BitDepthLumaMinus8)
	rangeY := 52 + bdOffsetY
	qpy := ((c.qpyPrev + delta + rangeY + bdOffsetY) % rangeY) - bdOffsetY
	mb.QPY = qpy
	mb.QPYPrev = c.qpyPrev
	c.qpyPrev = qpy
	return nil
}

// decodeIPCM reads I_PCM's raw sample data (7.3.5): byte-aligned,
// fixed-width luma then chroma samples, CABAC engine reinitialized
// afterwards per 9.3.1.2's "two pcm_alignment_zero_bit-aligned
// re-initialization" rule.
func (c *sliceDecodeCtx) decodeIPCM(addr int, mb *macroblock.Macroblock) error {
	r := c.engine.Reader()
	for !r.ByteAligned() {
		if _, err := r.Bit(); err != nil {
			return errors.Wrap(err, "could not consume pcm_alignment_zero_bit")
		}
	}

	x0, y0 := mbOrigin(addr, c.widthMbs)
	bd := c.sps.bitDepthLuma
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v, err := r.BitsIntoUint(bd)
			if err != nil {
				return errors.Wrap(err, "could not read pcm_sample_luma")
			}
			c.pic.Frame.SetLumaAt(x0+x, y0+y, int(v))
		}
	}
	if c.sps.chromaArrayType != 0 {
		cw, ch := c.pic.Frame.ChromaWidth/c.widthMbs, c.pic.Frame.ChromaHeight/c.heightMbs
		cx0, cy0 := x0/2, y0/2
		cbd := c.sps.bitDepthChroma
		for _, cb := range []bool{true, false} {
			for y := 0; y < ch; y++ {
				for x := 0; x < cw; x++ {
					v, err := r.BitsIntoUint(cbd)
					if err != nil {
						return errors.Wrap(err, "could not read pcm_sample_chroma")
					}
					c.pic.Frame.SetChromaAt(cb, cx0+x, cy0+y, int(v))
				}
			}
		}
	}

	models := cabac.NewContextModels(c.qpyPrev, c.h.SliceType, c.h.CabacInitIDC)
	e, err := cabac.NewEngine(r)
	if err != nil {
		return errors.Wrap(err, "could not reinitialize CABAC engine after I_PCM")
	}
	c.engine = e
	c.models = models
	c.info[addr] = mbInfo{intra: true, qpy: c.qpyPrev}
	return nil
}
