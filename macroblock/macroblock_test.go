package macroblock

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coastwatch/h264dec/bits"
)

func TestDecodeI16x16MbType(t *testing.T) {
	// mb_type 1 is the first Intra_16x16 type: predMode 0, cbpChroma 0, cbpLuma 0.
	want := I16x16Mode{PredMode: 0, CodedBlockPatternChroma: 0, CodedBlockPatternLuma: 0}
	if diff := cmp.Diff(want, DecodeI16x16MbType(1)); diff != "" {
		t.Errorf("DecodeI16x16MbType(1) mismatch (-want +got):\n%s", diff)
	}

	// mb_type 24 is the last: predMode 3, cbpChroma 2, cbpLuma 15.
	want = I16x16Mode{PredMode: 3, CodedBlockPatternChroma: 2, CodedBlockPatternLuma: 15}
	if diff := cmp.Diff(want, DecodeI16x16MbType(24)); diff != "" {
		t.Errorf("DecodeI16x16MbType(24) mismatch (-want +got):\n%s", diff)
	}
}

func TestPartCountP(t *testing.T) {
	cases := []struct {
		mbType int
		want   int
	}{{0, 1}, {1, 2}, {2, 2}, {3, 4}, {4, 4}}
	for _, c := range cases {
		if got := PartCount(ClassP, c.mbType); got != c.want {
			t.Errorf("PartCount(ClassP, %d) = %d, want %d", c.mbType, got, c.want)
		}
	}
}

func TestDecodeCodedBlockPatternCAVLCIntra(t *testing.T) {
	// codeNum 0 maps to intra value 47 for ChromaArrayType 1.
	r := bits.NewReader([]byte{0x80}) // ue(v) codeNum 0 is a single 1 bit
	v, err := DecodeCodedBlockPatternCAVLC(r, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	if v != 47 {
		t.Errorf("cbp = %d, want 47", v)
	}
}

func TestNeighbourResolveBounds(t *testing.T) {
	s := &Store{MBs: make([]Macroblock, 9), WidthInMbs: 3}
	for i := range s.MBs {
		s.MBs[i].Decoded = true
	}
	n := s.Resolve(4, 0)
	if !n.A.Present || n.A.Addr != 3 {
		t.Errorf("A = %+v, want addr 3", n.A)
	}
	if !n.B.Present || n.B.Addr != 1 {
		t.Errorf("B = %+v, want addr 1", n.B)
	}
	n = s.Resolve(0, 0)
	if n.A.Present || n.B.Present || n.C.Present || n.D.Present {
		t.Errorf("top-left macroblock should have no neighbours, got %+v", n)
	}
}
