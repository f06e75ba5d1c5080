/*
DESCRIPTION
  scanner.go provides two NAL unit framing strategies: an Annex-B start-code
  Scanner, grounded on ausocean-av's codec/h264/extract.go NAL boundary
  search and codec/codecutil's byte-lexing idiom, and a length-prefixed
  Split for NAL units handed over by an MP4/avcC container reader.

AUTHORS
  h264dec contributors
*/

package nal

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// startCode is the three-byte Annex-B start code prefix; a leading extra
// zero byte (four-byte form) is tolerated by Scanner.
var startCode = [3]byte{0x00, 0x00, 0x01}

// Scanner splits an Annex-B byte stream (as produced by, e.g., a bare .h264
// elementary stream, or by stripping MP4 framing upstream) into raw NAL
// unit byte ranges, start codes removed. It is container-agnostic: spec
// section 1 places MP4/ISO-BMFF parsing itself out of scope, so Scanner
// only understands the Annex-B delimiter convention, not `avcC` boxes.
type Scanner struct {
	data []byte
	pos  int
}

// NewScanner returns a Scanner over data.
func NewScanner(data []byte) *Scanner { return &Scanner{data: data} }

// Next returns the next NAL unit's raw bytes (header byte included, start
// code excluded), or ok=false once the stream is exhausted.
func (s *Scanner) Next() (raw []byte, ok bool) {
	start := s.findStart(s.pos)
	if start < 0 {
		return nil, false
	}
	bodyStart := start + 3
	next := s.findStart(bodyStart)
	end := len(s.data)
	if next >= 0 {
		end = next
		// Trailing zero byte before the next start code belongs to that
		// start code's four-byte form, not to this NAL's payload.
		for end > bodyStart && s.data[end-1] == 0x00 {
			end--
		}
	}
	s.pos = bodyStart
	if next >= 0 {
		s.pos = next
	} else {
		s.pos = len(s.data)
	}
	return s.data[bodyStart:end], true
}

// findStart returns the byte offset of the next start code at or after
// from, or -1 if none remains.
func (s *Scanner) findStart(from int) int {
	for i := from; i+3 <= len(s.data); i++ {
		if s.data[i] == startCode[0] && s.data[i+1] == startCode[1] && s.data[i+2] == startCode[2] {
			return i
		}
	}
	return -1
}

// Split splits one access-unit sample buffer into raw NAL unit byte ranges,
// each prefixed by a big-endian length field lengthSize bytes wide
// (nal_length_size_minus_one + 1 from the avcC configuration record), per
// spec section 6's description of per-sample NAL framing.
func Split(sample []byte, lengthSize int) ([][]byte, error) {
	if lengthSize < 1 || lengthSize > 4 {
		return nil, errors.Errorf("nal: invalid length size %d", lengthSize)
	}
	var units [][]byte
	pos := 0
	for pos < len(sample) {
		if pos+lengthSize > len(sample) {
			return nil, errors.New("nal: truncated length prefix")
		}
		var length int
		switch lengthSize {
		case 1:
			length = int(sample[pos])
		case 2:
			length = int(binary.BigEndian.Uint16(sample[pos : pos+2]))
		case 3:
			length = int(sample[pos])<<16 | int(sample[pos+1])<<8 | int(sample[pos+2])
		case 4:
			length = int(binary.BigEndian.Uint32(sample[pos : pos+4]))
		}
		pos += lengthSize
		if pos+length > len(sample) {
			return nil, errors.New("nal: NAL length exceeds remaining sample bytes")
		}
		units = append(units, sample[pos:pos+length])
		pos += length
	}
	return units, nil
}
