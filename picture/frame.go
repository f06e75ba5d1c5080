/*
DESCRIPTION
  frame.go implements the reconstructed sample storage for one decoded
  picture: a luma plane plus zero, one, or two subsampled chroma planes,
  matching the format 4:0:0/4:2:0/4:2:2/4:4:4 geometry of clause 6.2.

AUTHORS
  h264dec contributors, grounded on the Rust original's
  video/slice/dpb/picture.rs Picture::new's Frame construction and on
  the deepteams-webp teacher's animation/frame.go for the plane-holder
  style (a plain struct of sample buffers rather than a live image.Image,
  since reconstructed samples may exceed 8 bits and image/color has no
  type for that).
*/

package picture

// Frame holds one picture's reconstructed sample planes. Luma is always
// present; Cb/Cr are nil when ChromaArrayType is 0 (monochrome).
type Frame struct {
	Width, Height             int
	ChromaWidth, ChromaHeight int

	Luma     []int
	Cb, Cr   []int
	BitDepth int
}

// NewFrame allocates zeroed sample planes sized for a picture of the
// given luma and chroma dimensions (in samples). Pass chromaWidth == 0
// for monochrome.
func NewFrame(width, height, chromaWidth, chromaHeight, bitDepth int) *Frame {
	f := &Frame{
		Width: width, Height: height,
		ChromaWidth: chromaWidth, ChromaHeight: chromaHeight,
		BitDepth: bitDepth,
		Luma:     make([]int, width*height),
	}
	if chromaWidth > 0 && chromaHeight > 0 {
		f.Cb = make([]int, chromaWidth*chromaHeight)
		f.Cr = make([]int, chromaWidth*chromaHeight)
	}
	return f
}

// LumaAt returns the luma sample at (x, y), or 0 if out of bounds.
func (f *Frame) LumaAt(x, y int) int {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0
	}
	return f.Luma[y*f.Width+x]
}

// SetLumaAt stores a luma sample at (x, y). Out-of-bounds writes are
// silently dropped: callers at picture edges clip coordinates upstream
// per the prediction processes' own availability rules.
func (f *Frame) SetLumaAt(x, y, v int) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.Luma[y*f.Width+x] = v
}

// ChromaAt returns the Cb or Cr sample at (x, y); cb selects the plane.
func (f *Frame) ChromaAt(cb bool, x, y int) int {
	if f.Cb == nil || x < 0 || y < 0 || x >= f.ChromaWidth || y >= f.ChromaHeight {
		return 0
	}
	if cb {
		return f.Cb[y*f.ChromaWidth+x]
	}
	return f.Cr[y*f.ChromaWidth+x]
}

// SetChromaAt stores a Cb or Cr sample at (x, y); cb selects the plane.
func (f *Frame) SetChromaAt(cb bool, x, y, v int) {
	if f.Cb == nil || x < 0 || y < 0 || x >= f.ChromaWidth || y >= f.ChromaHeight {
		return
	}
	if cb {
		f.Cb[y*f.ChromaWidth+x] = v
	} else {
		f.Cr[y*f.ChromaWidth+x] = v
	}
}

// WriteBlock stores an NxN luma block with its top-left corner at
// (x, y) via SetLumaAt. The decoder package writes reconstructed samples
// with SetLumaAt directly and does not call WriteBlock.
func (f *Frame) WriteBlock(x, y int, block [][]int) {
	for by := range block {
		for bx := range block[by] {
			f.SetLumaAt(x+bx, y+by, block[by][bx])
		}
	}
}
