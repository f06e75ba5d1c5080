package main

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coastwatch/h264dec/picture"
)

func TestWriteY4MHeaderPicksColorspace(t *testing.T) {
	f := picture.NewFrame(4, 4, 2, 2, 8)
	pic := &picture.Picture{Frame: f}

	var buf bytes.Buffer
	require.NoError(t, writeY4M(&buf, []*picture.Picture{pic}))

	out := buf.String()
	require.Contains(t, out, "YUV4MPEG2 W4 H4")
	require.Contains(t, out, "C420")
	require.Contains(t, out, "FRAME\n")
}

func TestWriteY4MMonochrome(t *testing.T) {
	f := picture.NewFrame(2, 2, 0, 0, 8)
	pic := &picture.Picture{Frame: f}

	var buf bytes.Buffer
	require.NoError(t, writeY4M(&buf, []*picture.Picture{pic}))
	require.Contains(t, buf.String(), "Cmono")
}

func TestWritePlane8TruncatesHighBitDepth(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	require.NoError(t, writePlane8(bw, []int{0x3ff, 0x100}, 10))
	require.NoError(t, bw.Flush())
	require.Equal(t, []byte{0xff, 0x40}, buf.Bytes())
}
