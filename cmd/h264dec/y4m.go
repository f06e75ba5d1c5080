/*
DESCRIPTION
  y4m.go writes decoded pictures out in the YUV4MPEG2 streaming format:
  a single stream header line followed by one FRAME header plus raw
  planar samples per picture. Sample values are truncated to 8 bits per
  the C420/C422/C444 tags y4m readers expect; this driver does not
  support the 9-16 bit extended tags.

AUTHORS
  h264dec contributors.
*/

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/coastwatch/h264dec/picture"
)

// writeY4M writes every picture in pics to w as a single y4m stream. All
// pictures must share the same dimensions and chroma subsampling, which
// holds for every stream this decoder can produce (one SPS per stream).
func writeY4M(w io.Writer, pics []*picture.Picture) error {
	bw := bufio.NewWriter(w)

	first := pics[0].Frame
	colorspace := "C420"
	switch {
	case first.Cb == nil:
		colorspace = "Cmono"
	case first.ChromaWidth == first.Width:
		colorspace = "C444"
	case first.ChromaHeight == first.Height:
		colorspace = "C422"
	}
	if _, err := fmt.Fprintf(bw, "YUV4MPEG2 W%d H%d F25:1 Ip A1:1 %s\n", first.Width, first.Height, colorspace); err != nil {
		return err
	}

	for _, pic := range pics {
		if err := writeY4MFrame(bw, pic.Frame); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeY4MFrame(bw *bufio.Writer, f *picture.Frame) error {
	if _, err := bw.WriteString("FRAME\n"); err != nil {
		return err
	}
	if err := writePlane8(bw, f.Luma, f.BitDepth); err != nil {
		return err
	}
	if f.Cb == nil {
		return nil
	}
	if err := writePlane8(bw, f.Cb, f.BitDepth); err != nil {
		return err
	}
	return writePlane8(bw, f.Cr, f.BitDepth)
}

// writePlane8 writes one sample plane, truncating to 8 bits per sample by
// right-shifting away any bit depth beyond 8 (this driver only emits the
// plain 8-bit y4m tags above, never the 9-16 bit extended ones).
func writePlane8(bw *bufio.Writer, plane []int, bitDepth int) error {
	shift := bitDepth - 8
	if shift < 0 {
		shift = 0
	}
	buf := make([]byte, len(plane))
	for i, v := range plane {
		buf[i] = byte(v >> uint(shift))
	}
	_, err := bw.Write(buf)
	return err
}
