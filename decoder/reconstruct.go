/*
DESCRIPTION
  reconstruct.go turns a decoded intra macroblock's prediction modes plus
  its residual() output into final reconstructed samples: it gathers each
  block's left/above/above-left reference samples straight out of the
  picture's Frame (already-decoded neighbouring macroblocks, or
  already-written earlier blocks of the same macroblock, per 6.4.3's
  z-scan order) and hands them to the intra package's pure predictors.

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/frame/pred4x4.rs/pred8x8.rs/pred16x16.rs/trans_chroma.rs
  reference-sample gathering loops, adapted from per-pixel frame-buffer
  access to this decoder's Neighbourhood-snapshot style (intra package has
  no picture dependency of its own).
*/

package decoder

import (
	"github.com/coastwatch/h264dec/intra"
	"github.com/coastwatch/h264dec/macroblock"
)

// block4x4Offsets maps a luma4x4BlkIdx (0-15, z-scan order, 6.4.3) to its
// pixel offset within a 16x16 macroblock, in 4-pixel units.
var block4x4Offsets = [16][2]int{
	{0, 0}, {1, 0}, {0, 1}, {1, 1},
	{2, 0}, {3, 0}, {2, 1}, {3, 1},
	{0, 2}, {1, 2}, {0, 3}, {1, 3},
	{2, 2}, {3, 2}, {2, 3}, {3, 3},
}

// block8x8Offsets maps an 8x8 luma block index (0-3, z-scan) to its pixel
// offset within a 16x16 macroblock, in 8-pixel units.
var block8x8Offsets = [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

var block4x4OffsetToIdx = buildBlock4x4OffsetToIdx()

func buildBlock4x4OffsetToIdx() map[[2]int]int {
	m := make(map[[2]int]int, 16)
	for i, o := range block4x4Offsets {
		m[o] = i
	}
	return m
}

// reconstructIntraNxN predicts and reconstructs an Intra_NxN macroblock's
// luma samples, one block at a time in z-scan order so each block's own
// prediction can read its already-reconstructed left/above neighbours.
func (c *sliceDecodeCtx) reconstructIntraNxN(addr int, mb *macroblock.Macroblock, use8x8 bool, res *decodedResidual) error {
	x0, y0 := mbOrigin(addr, c.widthMbs)
	maxVal := (1 << c.sps.bitDepthLuma) - 1
	var written [16]bool

	if use8x8 {
		for i := 0; i < 4; i++ {
			bx, by := block8x8Offsets[i][0]*8, block8x8Offsets[i][1]*8
			n := intra.FilterReferenceSamples8x8(c.lumaNeighbourhood(addr, x0, y0, x0+bx, y0+by, 8, &written))
			pred := intra.Predict8x8(mb.Intra8x8PredMode[i], n)
			for sub := 0; sub < 4; sub++ {
				rx, ry := block4x4Offsets[sub][0]*4, block4x4Offsets[sub][1]*4
				blk := res.luma[i*4+sub]
				for dy := 0; dy < 4; dy++ {
					for dx := 0; dx < 4; dx++ {
						v := pred[ry+dy][rx+dx] + blk[dy][dx]
						c.pic.Frame.SetLumaAt(x0+bx+rx+dx, y0+by+ry+dy, clip1Dec(v, maxVal))
					}
				}
				written[i*4+sub] = true
			}
		}
		return nil
	}

	for idx := 0; idx < 16; idx++ {
		bx, by := block4x4Offsets[idx][0]*4, block4x4Offsets[idx][1]*4
		n := c.lumaNeighbourhood(addr, x0, y0, x0+bx, y0+by, 4, &written)
		pred := intra.Predict4x4(mb.Intra4x4PredMode[idx], n)
		blk := res.luma[idx]
		for dy := 0; dy < 4; dy++ {
			for dx := 0; dx < 4; dx++ {
				v := pred[dy][dx] + blk[dy][dx]
				c.pic.Frame.SetLumaAt(x0+bx+dx, y0+by+dy, clip1Dec(v, maxVal))
			}
		}
		written[idx] = true
	}
	return nil
}

// reconstructIntra16x16 predicts the whole 16x16 luma block in one pass
// (its mode is fixed for the whole macroblock, unlike Intra_NxN) and adds
// the per-4x4-block residual decodeResidual already placed in z-scan order.
func (c *sliceDecodeCtx) reconstructIntra16x16(addr int, mb *macroblock.Macroblock, res *decodedResidual) error {
	x0, y0 := mbOrigin(addr, c.widthMbs)
	maxVal := (1 << c.sps.bitDepthLuma) - 1
	var written [16]bool // whole-MB prediction never references a same-MB sample
	n := c.lumaNeighbourhood(addr, x0, y0, x0, y0, 16, &written)
	pred := intra.Predict16x16(mb.I16x16PredMode, n, c.sps.bitDepthLuma)

	for idx := 0; idx < 16; idx++ {
		bx, by := block4x4Offsets[idx][0]*4, block4x4Offsets[idx][1]*4
		blk := res.luma[idx]
		for dy := 0; dy < 4; dy++ {
			for dx := 0; dx < 4; dx++ {
				v := pred[by+dy][bx+dx] + blk[dy][dx]
				c.pic.Frame.SetLumaAt(x0+bx+dx, y0+by+dy, clip1Dec(v, maxVal))
			}
		}
	}
	return nil
}

// reconstructChroma predicts and reconstructs both chroma planes for an
// intra-coded macroblock using the whole-block Intra_Chroma modes (8.3.4);
// the residual AC blocks already carry their DC contribution folded in by
// decodeResidual's ChromaDCTransform pass.
func (c *sliceDecodeCtx) reconstructChroma(addr int, mb *macroblock.Macroblock, res *decodedResidual) error {
	if c.sps.chromaArrayType != 1 && c.sps.chromaArrayType != 2 {
		return nil
	}
	x0, y0 := mbOrigin(addr, c.widthMbs)
	cx0, cy0 := x0/2, y0/2
	cw, ch := c.pic.Frame.ChromaWidth/c.widthMbs, c.pic.Frame.ChromaHeight/c.heightMbs
	maxVal := (1 << c.sps.bitDepthChroma) - 1
	const blocksPerRow = 2 // matches decodeResidual's b%2/b/2 chroma AC block addressing

	for plane := 0; plane < 2; plane++ {
		cb := plane == 0
		n := c.chromaNeighbourhood(addr, cb, cx0, cy0, cw, ch)
		pred := intra.PredictChroma(mb.IntraChromaPredMode, n, cw, ch, c.sps.bitDepthChroma)
		for y := 0; y < ch; y++ {
			for x := 0; x < cw; x++ {
				blkIdx := (y/4)*blocksPerRow + x/4
				v := pred[y][x] + res.chromaAC[plane][blkIdx][y%4][x%4]
				c.pic.Frame.SetChromaAt(cb, cx0+x, cy0+y, clip1Dec(v, maxVal))
			}
		}
	}
	return nil
}

// lumaNeighbourhood gathers a block's intra.Neighbourhood at absolute
// picture coordinates (px, py): samples from other macroblocks are
// available once that macroblock's Decoded flag is set (raster decode
// order guarantees that means "fully reconstructed"); samples from the
// current macroblock are available only once written marks their 4x4
// block done, modelling 6.4.3's "later block in z-scan order" rule.
func (c *sliceDecodeCtx) lumaNeighbourhood(addr, x0, y0, px, py, size int, written *[16]bool) intra.Neighbourhood {
	n := intra.Neighbourhood{Size: size, Top: make([]int, 2*size), Left: make([]int, size)}

	n.TopOK = true
	for i := 0; i < size; i++ {
		v, ok := c.lumaSample(addr, x0, y0, px+i, py-1, written)
		n.Top[i] = v
		if !ok {
			n.TopOK = false
		}
	}
	n.TopRightOK = true
	for i := size; i < 2*size; i++ {
		v, ok := c.lumaSample(addr, x0, y0, px+i, py-1, written)
		n.Top[i] = v
		if !ok {
			n.TopRightOK = false
		}
	}
	n.LeftOK = true
	for i := 0; i < size; i++ {
		v, ok := c.lumaSample(addr, x0, y0, px-1, py+i, written)
		n.Left[i] = v
		if !ok {
			n.LeftOK = false
		}
	}
	n.TopLeft, n.TopLeftOK = c.lumaSample(addr, x0, y0, px-1, py-1, written)
	return n
}

// lumaSample resolves one reference luma sample's value and availability
// for the neighbourhood gathering above.
func (c *sliceDecodeCtx) lumaSample(addr, x0, y0, x, y int, written *[16]bool) (int, bool) {
	if x < 0 || y < 0 || x >= c.pic.Frame.Width || y >= c.pic.Frame.Height {
		return 0, false
	}
	mbx, mby := x/16, y/16
	nAddr := mby*c.widthMbs + mbx
	if nAddr == addr {
		bx, by := (x-x0)/4, (y-y0)/4
		if bx < 0 || by < 0 || bx > 3 || by > 3 {
			return 0, false
		}
		idx, ok := block4x4OffsetToIdx[[2]int{bx, by}]
		if !ok || !written[idx] {
			return 0, false
		}
		return c.pic.Frame.LumaAt(x, y), true
	}
	if nAddr < 0 || nAddr >= len(c.store.MBs) || !c.store.MBs[nAddr].Decoded {
		return 0, false
	}
	if c.sps.constrainedIntra && !c.info[nAddr].intra {
		return 0, false
	}
	return c.pic.Frame.LumaAt(x, y), true
}

// chromaNeighbourhood gathers the whole chroma block's reference samples;
// unlike luma, Intra_Chroma prediction runs once over the whole
// MbWidthC x MbHeightC block, so there is no same-macroblock case to
// model (the block being predicted has not written anything yet).
func (c *sliceDecodeCtx) chromaNeighbourhood(addr int, cb bool, cx0, cy0, cw, ch int) intra.Neighbourhood {
	n := intra.Neighbourhood{Size: cw, Top: make([]int, 2*cw), Left: make([]int, ch)}

	n.TopOK = true
	for i := 0; i < cw; i++ {
		v, ok := c.chromaSample(addr, cb, cx0+i, cy0-1)
		n.Top[i] = v
		if !ok {
			n.TopOK = false
		}
	}
	for i := cw; i < 2*cw; i++ {
		v, _ := c.chromaSample(addr, cb, cx0+i, cy0-1)
		n.Top[i] = v
	}
	n.LeftOK = true
	for i := 0; i < ch; i++ {
		v, ok := c.chromaSample(addr, cb, cx0-1, cy0+i)
		n.Left[i] = v
		if !ok {
			n.LeftOK = false
		}
	}
	n.TopLeft, n.TopLeftOK = c.chromaSample(addr, cb, cx0-1, cy0-1)
	return n
}

// chromaSample resolves one reference chroma sample's value and
// availability for the neighbourhood gathering above.
func (c *sliceDecodeCtx) chromaSample(addr int, cb bool, x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= c.pic.Frame.ChromaWidth || y >= c.pic.Frame.ChromaHeight {
		return 0, false
	}
	cw, ch := c.pic.Frame.ChromaWidth/c.widthMbs, c.pic.Frame.ChromaHeight/c.heightMbs
	mbx, mby := x/cw, y/ch
	nAddr := mby*c.widthMbs + mbx
	if nAddr == addr {
		return 0, false
	}
	if nAddr < 0 || nAddr >= len(c.store.MBs) || !c.store.MBs[nAddr].Decoded {
		return 0, false
	}
	if c.sps.constrainedIntra && !c.info[nAddr].intra {
		return 0, false
	}
	return c.pic.Frame.ChromaAt(cb, x, y), true
}
