package bits

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStripEmulationPrevention(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"no EP bytes", []byte{0x01, 0x02, 0x03, 0x04}, []byte{0x01, 0x02, 0x03, 0x04}},
		{"single EP byte", []byte{0x00, 0x00, 0x03, 0x01}, []byte{0x00, 0x00, 0x01}},
		{"EP byte not after two zeros", []byte{0x00, 0x01, 0x03, 0x02}, []byte{0x00, 0x01, 0x03, 0x02}},
		{"run of zeros then EP byte", []byte{0x00, 0x00, 0x00, 0x03, 0x00}, []byte{0x00, 0x00, 0x00, 0x00}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := stripEmulationPrevention(c.in)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("stripEmulationPrevention() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBitsLadder(t *testing.T) {
	// 1000 1111 1110 0011
	r := NewReader([]byte{0x8f, 0xe3})
	for _, tc := range []struct {
		n    int
		want uint64
	}{
		{4, 0x8},
		{2, 0x3},
		{4, 0xf},
		{6, 0x23},
	} {
		got, err := r.Bits(tc.n)
		if err != nil {
			t.Fatalf("Bits(%d): %v", tc.n, err)
		}
		if got != tc.want {
			t.Errorf("Bits(%d) = %#x, want %#x", tc.n, got, tc.want)
		}
	}
}

func TestExpGolombLadder(t *testing.T) {
	// bits: 1 010 011 00100 00101 00110 00111
	r := NewReader(binToBytes(t, "1 010 011 00100 00101 00110 00111"))
	want := []uint64{0, 1, 2, 3, 4, 5, 6}
	for i, w := range want {
		got, err := r.ExpGolomb()
		if err != nil {
			t.Fatalf("ExpGolomb() #%d: %v", i, err)
		}
		if got != w {
			t.Errorf("ExpGolomb() #%d = %d, want %d", i, got, w)
		}
	}
}

func TestSignedExpGolomb(t *testing.T) {
	// codeNum 0..6 map to se(v) 0,1,-1,2,-2,3,-3
	r := NewReader(binToBytes(t, "1 010 011 00100 00101 00110 00111"))
	want := []int64{0, 1, -1, 2, -2, 3, -3}
	for i, w := range want {
		got, err := r.SignedExpGolomb()
		if err != nil {
			t.Fatalf("SignedExpGolomb() #%d: %v", i, err)
		}
		if got != w {
			t.Errorf("SignedExpGolomb() #%d = %d, want %d", i, got, w)
		}
	}
}

func TestByteAlignedAndSkipTrailingBits(t *testing.T) {
	r := NewReader([]byte{0xff, 0x00})
	if !r.ByteAligned() {
		t.Fatal("expected fresh reader to be byte aligned")
	}
	if _, err := r.Bits(3); err != nil {
		t.Fatal(err)
	}
	if r.ByteAligned() {
		t.Fatal("expected reader to not be byte aligned after reading 3 bits")
	}
	r.SkipTrailingBits()
	if !r.ByteAligned() {
		t.Fatal("expected reader to be byte aligned after SkipTrailingBits")
	}
	if r.Pos() != 8 {
		t.Errorf("Pos() = %d, want 8", r.Pos())
	}
}

func TestBitsExhausted(t *testing.T) {
	r := NewReader([]byte{0xff})
	if _, err := r.Bits(9); err == nil {
		t.Fatal("expected error reading past end of data")
	}
}

// binToBytes converts a whitespace-separated binary string into bytes,
// padding the final byte with zero bits.
func binToBytes(t *testing.T, s string) []byte {
	t.Helper()
	var bitStr []byte
	for _, c := range s {
		if c == '0' || c == '1' {
			bitStr = append(bitStr, byte(c))
		} else if c != ' ' {
			t.Fatalf("invalid character %q in binary string", c)
		}
	}
	for len(bitStr)%8 != 0 {
		bitStr = append(bitStr, '0')
	}
	out := make([]byte, len(bitStr)/8)
	for i, c := range bitStr {
		if c == '1' {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}
