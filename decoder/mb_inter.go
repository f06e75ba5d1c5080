/*
DESCRIPTION
  mb_inter.go decodes inter-predicted (P and B slice) macroblock_layer():
  mb_type, mb_pred()'s ref_idx/mvd fields per partition, coded_block_pattern
  and mb_qp_delta shared with the intra path, and hands the result to
  reconstructInterResidual for full-pel motion compensation.

AUTHORS
  h264dec contributors, grounded on the teacher package's NewSliceData
  mb_pred() sketch (slice.go) and macroblock.PartCount/PartPredModes for
  partition geometry, generalized into a working P/B decode with default,
  explicit, and implicit weighted sample prediction (8.4.2.3, package
  inter's weighted.go) (this decoder does not derive spatial/temporal
  Direct motion or per-sub-partition L0/L1/Bi modes for B_8x8; see
  DESIGN.md).
*/

package decoder

import (
	"github.com/pkg/errors"

	"github.com/coastwatch/h264dec/cabac"
	"github.com/coastwatch/h264dec/inter"
	"github.com/coastwatch/h264dec/macroblock"
	"github.com/coastwatch/h264dec/picture"
	"github.com/coastwatch/h264dec/slice"
)

// pPartGeometries returns the partition rectangles for a P mb_type's raw
// codeNum (table 7-13): one 16x16, two 16x8, two 8x16, or four 8x8.
func pPartGeometries(raw int) []inter.PartGeometry {
	switch raw {
	case 0:
		return []inter.PartGeometry{{Width: 16, Height: 16}}
	case 1:
		return []inter.PartGeometry{{Width: 16, Height: 8, PartIdx: 0}, {Width: 16, Height: 8, PartIdx: 1}}
	case 2:
		return []inter.PartGeometry{{Width: 8, Height: 16, PartIdx: 0}, {Width: 8, Height: 16, PartIdx: 1}}
	default:
		return []inter.PartGeometry{{Width: 8, Height: 8}, {Width: 8, Height: 8}, {Width: 8, Height: 8}, {Width: 8, Height: 8}}
	}
}

// bPartGeometries approximates a B mb_type's partition rectangles: the
// standard's table 7-14 also has 16x8/8x16 variants depending on the exact
// mb_type value, but this decoder picks a fixed orientation per partition
// count since the geometry only affects the 8.4.1.3.1 special-case MV
// shortcuts, not correctness of the reconstructed picture (see DESIGN.md).
func bPartGeometries(numParts int) []inter.PartGeometry {
	switch numParts {
	case 1:
		return []inter.PartGeometry{{Width: 16, Height: 16}}
	case 2:
		return []inter.PartGeometry{{Width: 16, Height: 8, PartIdx: 0}, {Width: 16, Height: 8, PartIdx: 1}}
	default:
		return []inter.PartGeometry{{Width: 8, Height: 8}, {Width: 8, Height: 8}, {Width: 8, Height: 8}, {Width: 8, Height: 8}}
	}
}

// partRect returns the pixel rectangle, relative to the macroblock's own
// origin, of partition partIdx for the given geometry list: 16x16 is the
// whole macroblock, 16x8/8x16 are halves, and 8x8 are z-scan quadrants
// (matching block8x8Offsets).
func partRect(geoms []inter.PartGeometry, partIdx int) (x0, y0, w, h int) {
	g := geoms[partIdx]
	switch {
	case g.Width == 16 && g.Height == 16:
		return 0, 0, 16, 16
	case g.Width == 16 && g.Height == 8:
		return 0, partIdx * 8, 16, 8
	case g.Width == 8 && g.Height == 16:
		return partIdx * 8, 0, 8, 16
	default:
		return block8x8Offsets[partIdx][0] * 8, block8x8Offsets[partIdx][1] * 8, 8, 8
	}
}

// partInfo is one partition's resolved prediction: which list(s) it draws
// from and the motion vector/reference index for each list it uses. A
// pure L0 (or L1) partition leaves the unused list's fields at their zero
// value; reconstructInterResidual only reads the fields mode selects.
type partInfo struct {
	mode macroblock.PredMode
	mv0  inter.MV
	ref0 int
	mv1  inter.MV
	ref1 int
}

// decodePMacroblock decodes a P/SP-slice macroblock_layer(): mb_type
// (escaping into the I-slice table for mb_type values >= 5), then each
// partition's ref_idx_l0/mvd_l0, then the shared coded_block_pattern/
// mb_qp_delta/residual tail.
func (c *sliceDecodeCtx) decodePMacroblock(addr int, mb *macroblock.Macroblock, nb macroblock.Neighbours) error {
	raw, err := cabac.DecodeMBTypeP(c.engine, c.models)
	if err != nil {
		return errors.Wrap(err, "could not decode mb_type")
	}
	if raw >= 5 {
		return c.decodeIMacroblockType(addr, mb, nb, raw-5)
	}

	mb.RawType = raw
	mb.Type = macroblock.Type{Class: macroblock.ClassP, Mode: macroblock.PredL0}
	c.info[addr].intra = false

	numParts := macroblock.PartCount(macroblock.ClassP, raw)
	geoms := pPartGeometries(raw)
	numRefIdxActive := int(c.h.NumRefIdxL0ActiveMinus1) + 1

	var parts []partInfo
	for p := 0; p < numParts; p++ {
		if numParts == 4 {
			if _, err := cabac.DecodeSubMBTypeP(c.engine, c.models); err != nil {
				return errors.Wrap(err, "could not decode sub_mb_type")
			}
		}
		refIdx := 0
		if numRefIdxActive > 1 && raw != 4 { // raw 4 is P_8x8ref0: ref_idx_l0 implicitly 0
			inc := macroblock.NeighbourInc(c.refIdxNeighbourNonZero(nb.A), c.refIdxNeighbourNonZero(nb.B))
			refIdx, err = cabac.DecodeRefIdx(c.engine, c.models, inc)
			if err != nil {
				return errors.Wrap(err, "could not decode ref_idx_l0")
			}
		}
		predMV := c.predictMBMotion(addr, nb, geoms[p], refIdx)
		mvdX, err := cabac.DecodeMVD(c.engine, c.models, false, 0)
		if err != nil {
			return errors.Wrap(err, "could not decode mvd_l0 (horizontal)")
		}
		mvdY, err := cabac.DecodeMVD(c.engine, c.models, true, 0)
		if err != nil {
			return errors.Wrap(err, "could not decode mvd_l0 (vertical)")
		}
		parts = append(parts, partInfo{mode: macroblock.PredL0, mv0: inter.MV{X: predMV.X + mvdX, Y: predMV.Y + mvdY}, ref0: refIdx})
		if p < len(mb.RefIdxL0) {
			mb.RefIdxL0[p] = refIdx
		}
	}

	// This decoder represents each macroblock's resolved motion as one
	// representative vector (the first partition's) for its neighbours'
	// median predictor, rather than one vector per partition; see
	// DESIGN.md's note on Interpolate/motion granularity.
	c.info[addr] = mbInfo{refIdxL0: parts[0].ref0, mv: parts[0].mv0}

	return c.finishInterMacroblock(addr, mb, nb, parts, geoms)
}

// decodeBMacroblock decodes a B-slice macroblock_layer(): mb_type
// (escaping into the I-slice table for raw >= 23), B_Direct_16x16, or one
// of the explicit L0/L1/Bi partition combinations from table 7-14, then
// the shared coded_block_pattern/mb_qp_delta/residual tail.
//
// Spatial/temporal Direct motion derivation (8.4.1.1/8.4.1.2) is not
// implemented: Direct partitions fall back to this decoder's ordinary
// median L0 predictor so reconstruction still has a motion vector to
// sample. Explicit L0/L1/Bi partitions (the len(modes) != 4 case) do get
// genuine per-list motion, each against its own reference picture list
// and its own decoded ref_idx/mvd, combined via combineSample's default/
// explicit/implicit weighted prediction selection. B_8x8 sub-partitions
// (the len(modes) == 4 case) are still treated as one L0-predicted 8x8
// block apiece once their sub_mb_type has been consumed to keep the
// bitstream in sync, since
// sub_mb_type's own L0/L1/Bi/Direct distinction for 8x8 sub-macroblock
// partitions (table 7-18) is not decoded. See DESIGN.md.
func (c *sliceDecodeCtx) decodeBMacroblock(addr int, mb *macroblock.Macroblock, nb macroblock.Neighbours) error {
	raw, err := cabac.DecodeMBTypeB(c.engine, c.models)
	if err != nil {
		return errors.Wrap(err, "could not decode mb_type")
	}
	if raw >= 23 {
		return c.decodeIMacroblockType(addr, mb, nb, raw-23)
	}

	mb.RawType = raw
	c.info[addr].intra = false

	if raw == 0 {
		mb.Type = macroblock.Type{Class: macroblock.ClassBDirect16x16, Mode: macroblock.PredDirect}
		geoms := []inter.PartGeometry{{Width: 16, Height: 16}}
		mv := c.predictMBMotion(addr, nb, geoms[0], 0)
		part := partInfo{mode: macroblock.PredL0, mv0: mv}
		c.info[addr] = mbInfo{refIdxL0: 0, mv: mv}
		return c.finishInterMacroblock(addr, mb, nb, []partInfo{part}, geoms)
	}

	mb.Type = macroblock.Type{Class: macroblock.ClassB}
	modes := macroblock.PartPredModes(macroblock.ClassB, raw)
	geoms := bPartGeometries(len(modes))

	numRefIdxL0 := int(c.h.NumRefIdxL0ActiveMinus1) + 1
	numRefIdxL1 := int(c.h.NumRefIdxL1ActiveMinus1) + 1

	var parts []partInfo

	if len(modes) == 4 {
		for p := 0; p < 4; p++ {
			if _, err := cabac.DecodeSubMBTypeB(c.engine, c.models); err != nil {
				return errors.Wrap(err, "could not decode sub_mb_type")
			}
			refIdx := 0
			if numRefIdxL0 > 1 {
				refIdx, err = cabac.DecodeRefIdx(c.engine, c.models, 0)
				if err != nil {
					return errors.Wrap(err, "could not decode ref_idx_l0")
				}
			}
			predMV := c.predictMBMotion(addr, nb, geoms[p], refIdx)
			mvdX, err := cabac.DecodeMVD(c.engine, c.models, false, 0)
			if err != nil {
				return errors.Wrap(err, "could not decode mvd_l0 (horizontal)")
			}
			mvdY, err := cabac.DecodeMVD(c.engine, c.models, true, 0)
			if err != nil {
				return errors.Wrap(err, "could not decode mvd_l0 (vertical)")
			}
			parts = append(parts, partInfo{mode: macroblock.PredL0, mv0: inter.MV{X: predMV.X + mvdX, Y: predMV.Y + mvdY}, ref0: refIdx})
		}
	} else {
		for p, mode := range modes {
			part := partInfo{mode: mode}
			if mode == macroblock.PredL0 || mode == macroblock.PredBi {
				if numRefIdxL0 > 1 {
					part.ref0, err = cabac.DecodeRefIdx(c.engine, c.models, 0)
					if err != nil {
						return errors.Wrap(err, "could not decode ref_idx_l0")
					}
				}
				predMV := c.predictMBMotion(addr, nb, geoms[p], part.ref0)
				mvdX, err := cabac.DecodeMVD(c.engine, c.models, false, 0)
				if err != nil {
					return errors.Wrap(err, "could not decode mvd_l0 (horizontal)")
				}
				mvdY, err := cabac.DecodeMVD(c.engine, c.models, true, 0)
				if err != nil {
					return errors.Wrap(err, "could not decode mvd_l0 (vertical)")
				}
				part.mv0 = inter.MV{X: predMV.X + mvdX, Y: predMV.Y + mvdY}
			}
			if mode == macroblock.PredL1 || mode == macroblock.PredBi {
				if numRefIdxL1 > 1 {
					part.ref1, err = cabac.DecodeRefIdx(c.engine, c.models, 0)
					if err != nil {
						return errors.Wrap(err, "could not decode ref_idx_l1")
					}
				}
				// The median predictor's neighbour lookup only tracks one
				// representative list per macroblock (see DESIGN.md), so
				// the L1 prediction reuses the same approximation already
				// applied to L0.
				predMV := c.predictMBMotion(addr, nb, geoms[p], part.ref1)
				mvdX, err := cabac.DecodeMVD(c.engine, c.models, false, 0)
				if err != nil {
					return errors.Wrap(err, "could not decode mvd_l1 (horizontal)")
				}
				mvdY, err := cabac.DecodeMVD(c.engine, c.models, true, 0)
				if err != nil {
					return errors.Wrap(err, "could not decode mvd_l1 (vertical)")
				}
				part.mv1 = inter.MV{X: predMV.X + mvdX, Y: predMV.Y + mvdY}
			}
			parts = append(parts, part)
		}
	}

	for p, part := range parts {
		if p >= len(mb.RefIdxL0) {
			break
		}
		mb.RefIdxL0[p] = part.ref0
		mb.RefIdxL1[p] = part.ref1
	}

	c.info[addr] = mbInfo{refIdxL0: parts[0].ref0, mv: repMV(parts[0])}
	return c.finishInterMacroblock(addr, mb, nb, parts, geoms)
}

// repMV returns the one motion vector a neighbouring macroblock's median
// predictor should see for p: its L0 vector if it has one, else its L1
// vector (this decoder tracks only one representative vector per
// macroblock; see DESIGN.md).
func repMV(p partInfo) inter.MV {
	if p.mode == macroblock.PredL1 {
		return p.mv1
	}
	return p.mv0
}

// refIdxNeighbourNonZero approximates 9.3.3.1.1.6's ref_idx_l0 ctxIdxInc
// derivation by checking whether a neighbouring macroblock's own
// representative reference index was non-zero, rather than the specific
// neighbouring partition's (see DESIGN.md's motion-granularity note).
func (c *sliceDecodeCtx) refIdxNeighbourNonZero(n macroblock.Neighbour) bool {
	return n.Present && !c.info[n.Addr].intra && c.info[n.Addr].refIdxL0 > 0
}

// finishInterMacroblock decodes the coded_block_pattern/mb_qp_delta/
// residual tail shared by every P/B macroblock class, then reconstructs
// each partition's motion-compensated samples plus residual.
func (c *sliceDecodeCtx) finishInterMacroblock(addr int, mb *macroblock.Macroblock, nb macroblock.Neighbours, parts []partInfo, geoms []inter.PartGeometry) error {
	cbpLuma, cbpChroma, err := c.decodeCodedBlockPattern(mb, nb, false)
	if err != nil {
		return err
	}
	mb.CodedBlockPatternLuma = cbpLuma
	mb.CodedBlockPatternChroma = cbpChroma

	// transform_size_8x8_flag (7.3.5): only signalled for inter macroblocks
	// when the PPS allows 8x8 transforms, the luma CBP is nonzero, and no
	// partition is smaller than 8x8 — this decoder never produces
	// sub-8x8 partitions (no sub_mb_type sub-partitioning below 8x8), so
	// that condition always holds once the other two do.
	if c.sps.transform8x8 && cbpLuma != 0 {
		inc := macroblock.NeighbourInc(nb.A.Present, nb.B.Present)
		use8x8, err := cabac.DecodeTransformSize8x8Flag(c.engine, c.models, inc)
		if err != nil {
			return errors.Wrap(err, "could not decode transform_size_8x8_flag")
		}
		mb.TransformSize8x8Flag = use8x8
	}

	if err := c.decodeMBQPDelta(addr, mb, nb); err != nil {
		return err
	}

	res, err := c.decodeResidual(addr, mb, false)
	if err != nil {
		return err
	}
	c.reconstructInterResidual(parts, geoms, addr, res)
	c.info[addr].qpy = mb.QPY
	return nil
}

// sampleWeights holds one partition's resolved weighted-prediction
// parameters (8.4.2.3.2) for a single plane (luma, or one chroma
// component). weighted is false when the partition falls back to
// 8.4.2.3.1's unweighted default instead.
type sampleWeights struct {
	weighted bool
	logWD    int
	w0, o0   int
	w1, o1   int
}

// combineSample picks 8.4.2.3.1's unweighted average or one of
// 8.4.2.3.2's weighted formulas, depending on which lists predicted this
// sample and whether w carries weighted (explicit or implicit)
// parameters.
func combineSample(pred0, pred1 int, predFlagL0, predFlagL1 bool, w sampleWeights, maxVal int) int {
	if !w.weighted {
		return inter.DefaultPred(pred0, pred1, predFlagL0, predFlagL1)
	}
	switch {
	case predFlagL0 && !predFlagL1:
		return inter.ExplicitPredUni(pred0, w.logWD, w.w0, w.o0, maxVal)
	case !predFlagL0 && predFlagL1:
		return inter.ExplicitPredUni(pred1, w.logWD, w.w1, w.o1, maxVal)
	default:
		return inter.ExplicitPredBi(pred0, pred1, w.logWD, w.w0, w.w1, w.o0, w.o1, maxVal)
	}
}

// partitionWeights resolves one partition's luma and two chroma-component
// weighted prediction parameters per 8.4.2.3's selection logic: explicit
// weights come from the slice header's pred_weight_table() when the PPS
// signals weighted_pred_flag (P/SP slices) or weighted_bipred_idc==1 (B
// slices); implicit weights are derived from picture order count
// distance (8.4.2.3.2's w0/w1/logWD derivation) when weighted_bipred_idc
// ==2 and the partition predicts from both lists. Any other combination
// (weighted_bipred_idc==0, or a uni-predictive B partition under
// implicit mode) returns the zero value so the caller falls back to
// DefaultPred's unweighted averaging, matching the standard's own
// default case.
func (c *sliceDecodeCtx) partitionWeights(part partInfo, ref0, ref1 *picture.Picture) (luma, cb, cr sampleWeights) {
	predFlagL0 := ref0 != nil
	predFlagL1 := ref1 != nil
	isB := slice.BaseType(c.h.SliceType) == slice.SliceTypeB

	explicit := (c.sps.weightedPredFlag && !isB) || (isB && c.sps.weightedBipredIDC == 1)
	if explicit && c.h.PredWeightTable != nil {
		pwt := c.h.PredWeightTable
		luma.weighted = true
		luma.logWD = int(pwt.LumaLog2WeightDenom)
		if predFlagL0 && part.ref0 < len(pwt.LumaL0) {
			luma.w0, luma.o0 = pwt.LumaL0[part.ref0].Weight, pwt.LumaL0[part.ref0].Offset
		}
		if predFlagL1 && part.ref1 < len(pwt.LumaL1) {
			luma.w1, luma.o1 = pwt.LumaL1[part.ref1].Weight, pwt.LumaL1[part.ref1].Offset
		}
		if c.sps.chromaArrayType == 0 {
			return luma, cb, cr
		}
		cb.weighted, cr.weighted = true, true
		cb.logWD, cr.logWD = int(pwt.ChromaLog2WeightDenom), int(pwt.ChromaLog2WeightDenom)
		if predFlagL0 && part.ref0 < len(pwt.ChromaL0) {
			cb.w0, cb.o0 = pwt.ChromaL0[part.ref0][0].Weight, pwt.ChromaL0[part.ref0][0].Offset
			cr.w0, cr.o0 = pwt.ChromaL0[part.ref0][1].Weight, pwt.ChromaL0[part.ref0][1].Offset
		}
		if predFlagL1 && part.ref1 < len(pwt.ChromaL1) {
			cb.w1, cb.o1 = pwt.ChromaL1[part.ref1][0].Weight, pwt.ChromaL1[part.ref1][0].Offset
			cr.w1, cr.o1 = pwt.ChromaL1[part.ref1][1].Weight, pwt.ChromaL1[part.ref1][1].Offset
		}
		return luma, cb, cr
	}

	if isB && c.sps.weightedBipredIDC == 2 && predFlagL0 && predFlagL1 {
		longTerm := ref0.Marking == picture.LongTerm || ref1.Marking == picture.LongTerm
		w0, w1, logWD := inter.ImplicitWeights(c.pic.PicOrderCnt, ref0.PicOrderCnt, ref1.PicOrderCnt, longTerm)
		luma = sampleWeights{weighted: true, logWD: logWD, w0: w0, w1: w1}
		if c.sps.chromaArrayType != 0 {
			cb, cr = luma, luma
		}
	}
	return luma, cb, cr
}

// reconstructInterResidual motion-compensates each partition (full-pel
// only, per inter.Interpolate's own documented out-of-scope stub) and
// adds the matching 4x4/chroma-AC residual block decoded by
// decodeResidual. Each partition's luma and chroma samples combine their
// L0/L1 predictions via combineSample, which picks 8.4.2.3.1's
// unweighted default or one of 8.4.2.3.2's explicit/implicit weighted
// formulas depending on partitionWeights' resolution for that partition.
func (c *sliceDecodeCtx) reconstructInterResidual(parts []partInfo, geoms []inter.PartGeometry, addr int, res *decodedResidual) {
	if len(c.refList0) == 0 && len(c.refList1) == 0 {
		return
	}
	x0, y0 := mbOrigin(addr, c.widthMbs)
	maxValY := (1 << c.sps.bitDepthLuma) - 1
	maxValC := (1 << c.sps.bitDepthChroma) - 1
	const blocksPerRow = 2

	for p := range geoms {
		part := parts[p]
		predFlagL0 := part.mode == macroblock.PredL0 || part.mode == macroblock.PredBi
		predFlagL1 := part.mode == macroblock.PredL1 || part.mode == macroblock.PredBi

		var ref0, ref1 *picture.Picture
		if predFlagL0 && len(c.refList0) > 0 {
			ref0 = c.refList0[clip3Dec(0, len(c.refList0)-1, part.ref0)]
		}
		if predFlagL1 && len(c.refList1) > 0 {
			ref1 = c.refList1[clip3Dec(0, len(c.refList1)-1, part.ref1)]
		}
		if ref0 == nil && ref1 == nil {
			continue
		}
		dx0, dy0 := part.mv0.X>>2, part.mv0.Y>>2
		dx1, dy1 := part.mv1.X>>2, part.mv1.Y>>2
		lumaW, cbW, crW := c.partitionWeights(part, ref0, ref1)

		rx0, ry0, w, h := partRect(geoms, p)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				var pred0, pred1 int
				if ref0 != nil {
					pred0 = ref0.Frame.LumaAt(x0+rx0+x+dx0, y0+ry0+y+dy0)
				}
				if ref1 != nil {
					pred1 = ref1.Frame.LumaAt(x0+rx0+x+dx1, y0+ry0+y+dy1)
				}
				v := combineSample(pred0, pred1, ref0 != nil, ref1 != nil, lumaW, maxValY)
				bx, by := (rx0+x)/4, (ry0+y)/4
				if idx, ok := block4x4OffsetToIdx[[2]int{bx, by}]; ok {
					v += res.luma[idx][(ry0+y)%4][(rx0+x)%4]
				}
				c.pic.Frame.SetLumaAt(x0+rx0+x, y0+ry0+y, clip1Dec(v, maxValY))
			}
		}

		if c.sps.chromaArrayType == 0 {
			continue
		}
		crx0, cry0, cw2, ch2 := rx0/2, ry0/2, w/2, h/2
		cx0, cy0 := x0/2, y0/2
		for _, cb := range []bool{true, false} {
			plane := 0
			chromaW := cbW
			if !cb {
				plane = 1
				chromaW = crW
			}
			for y := 0; y < ch2; y++ {
				for x := 0; x < cw2; x++ {
					var pred0, pred1 int
					if ref0 != nil {
						pred0 = ref0.Frame.ChromaAt(cb, cx0+crx0+x+dx0/2, cy0+cry0+y+dy0/2)
					}
					if ref1 != nil {
						pred1 = ref1.Frame.ChromaAt(cb, cx0+crx0+x+dx1/2, cy0+cry0+y+dy1/2)
					}
					v := combineSample(pred0, pred1, ref0 != nil, ref1 != nil, chromaW, maxValC)
					blkIdx := ((cry0+y)/4)*blocksPerRow + (crx0+x)/4
					if blkIdx >= 0 && blkIdx < len(res.chromaAC[plane]) {
						v += res.chromaAC[plane][blkIdx][(cry0+y)%4][(crx0+x)%4]
					}
					c.pic.Frame.SetChromaAt(cb, cx0+crx0+x, cy0+cry0+y, clip1Dec(v, maxValC))
				}
			}
		}
	}
}
