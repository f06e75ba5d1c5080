package cabac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coastwatch/h264dec/bits"
)

func TestContextStateInitClip(t *testing.T) {
	var s ContextState
	s.Init(0, 64, 26) // neutral pair used as the init.go fallback
	require.Equal(t, 0, s.PStateIdx)
	require.Equal(t, 1, s.ValMPS)
}

func TestNewEngineReadsInitialOffset(t *testing.T) {
	// codIOffset is the first 9 bits read verbatim.
	r := bits.NewReader([]byte{0xff, 0x80})
	e, err := NewEngine(r)
	require.NoError(t, err)
	require.EqualValues(t, 510, e.codIRange)
	require.EqualValues(t, 0x1ff, e.codIOffset)
}

func TestDecodeBypassSequence(t *testing.T) {
	// With codIRange fixed at 510, bypass decoding is a direct function of
	// the next input bit and the running codIOffset; this just exercises
	// that DecodeBypass terminates and returns 0/1 without erroring across
	// a short run of bits.
	r := bits.NewReader([]byte{0x00, 0x00, 0x00})
	e, err := NewEngine(r)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		_, err := e.DecodeBypass()
		require.NoErrorf(t, err, "DecodeBypass() #%d", i)
	}
}

func TestRangeTabLPSRow33Fixed(t *testing.T) {
	v, err := RangeTabLPS(33, 0)
	require.NoError(t, err)
	require.Equal(t, 25, v, "standard table 9-44, not the teacher's transcription error")
}

func TestDecodeUnaryAllZeroIsZero(t *testing.T) {
	// A single 0 bypass bit decodes to unary value 0. Two bytes: NewEngine
	// consumes the first 9 bits as codIOffset, leaving the bypass bit.
	r := bits.NewReader([]byte{0x00, 0x00})
	e, err := NewEngine(r)
	require.NoError(t, err)
	v, err := DecodeUnary(e, nil)
	require.NoError(t, err)
	require.Equal(t, 0, v)
}
