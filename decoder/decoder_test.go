package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coastwatch/h264dec/bits"
)

func TestConfigKeepPicture(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		idx  int
		want bool
	}{
		{"default keeps everything", Config{}, 5, true},
		{"before seek is dropped", Config{Seek: 3}, 2, false},
		{"at seek is kept", Config{Seek: 3}, 3, true},
		{"past end is dropped", Config{End: 4}, 5, false},
		{"at end is kept", Config{End: 4}, 4, true},
		{"step skips non-multiples", Config{Seek: 2, Step: 2}, 3, false},
		{"step keeps multiples", Config{Seek: 2, Step: 2}, 4, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, c.cfg.keepPicture(c.idx))
		})
	}
}

func TestMBOriginRasterOrder(t *testing.T) {
	x, y := mbOrigin(0, 10)
	require.Equal(t, 0, x)
	require.Equal(t, 0, y)

	x, y = mbOrigin(11, 10)
	require.Equal(t, 16, x)
	require.Equal(t, 16, y)
}

func TestClip1Dec(t *testing.T) {
	require.Equal(t, 0, clip1Dec(-5, 255))
	require.Equal(t, 255, clip1Dec(300, 255))
	require.Equal(t, 128, clip1Dec(128, 255))
}

// peekSliceHeaderPPSID is exercised directly here rather than through a
// full slice_header() decode: first_mb_in_slice=0 ue(0), slice_type=2
// ue(2) (I), pic_parameter_set_id=0 ue(0) encode to bits 1 011 1,
// byte-padded to 0xb8.
func TestPeekSliceHeaderPPSID(t *testing.T) {
	id, err := peekSliceHeaderPPSID([]byte{0xb8})
	require.NoError(t, err)
	require.EqualValues(t, 0, id)
}

// peekPPSSeqParameterSetID: pic_parameter_set_id=0 ue(0), seq_parameter_set_id=1
// ue(1) encode to bits 1 010, byte-padded to 0xa0.
func TestPeekPPSSeqParameterSetID(t *testing.T) {
	id, err := peekPPSSeqParameterSetID([]byte{0xa0})
	require.NoError(t, err)
	require.EqualValues(t, 1, id)
}

func TestPeekSliceHeaderPPSIDPropagatesShortReadError(t *testing.T) {
	_, err := peekSliceHeaderPPSID([]byte{})
	require.Error(t, err)
}

// sanity check on the Exp-Golomb fixtures above: decoding all three fields
// off the same bytes in sequence should reproduce the values baked into
// the bit patterns.
func TestSliceHeaderFixtureBitsDecodeInOrder(t *testing.T) {
	r := bits.NewReader([]byte{0xb8})
	firstMB, err := r.ExpGolombUint()
	require.NoError(t, err)
	require.EqualValues(t, 0, firstMB)

	sliceType, err := r.ExpGolombUint()
	require.NoError(t, err)
	require.EqualValues(t, 2, sliceType)

	ppsID, err := r.ExpGolombUint()
	require.NoError(t, err)
	require.EqualValues(t, 0, ppsID)
}
