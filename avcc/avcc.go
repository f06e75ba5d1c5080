/*
DESCRIPTION
  avcc.go decodes the AVCDecoderConfigurationRecord ("avcC") that an MP4/
  ISO-BMFF container reader hands the decoder at start-of-stream: the NAL
  length field width and the initial SPS/PPS NAL bodies.

AUTHORS
  h264dec contributors, grounded on go-webdl-media-codec's avc package.
*/

// Package avcc decodes the avcC configuration record (ISO/IEC 14496-15
// section 5.3.3.1). It is the one MP4-container-facing surface this module
// owns; everything above it (atom trees, moov/trak walking) is the external
// container reader's job, per spec section 1.
package avcc

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ConfigurationRecord is the decoded avcC record.
type ConfigurationRecord struct {
	ConfigurationVersion  uint8
	AVCProfileIndication  uint8
	ProfileCompatibility  uint8
	AVCLevelIndication    uint8
	LengthSizeMinusOne    uint8 // nal_length_size_minus_one; +1 is the NAL length-prefix width.
	SequenceParameterSets [][]byte
	PictureParameterSets  [][]byte

	// High-profile-only fields (AVCProfileIndication in {100,110,122,144}).
	HasHighProfileFields     bool
	ChromaFormat             uint8
	BitDepthLumaMinus8       uint8
	BitDepthChromaMinus8     uint8
	SequenceParameterSetExts [][]byte
}

// NALLengthSize returns the width, in bytes, of the length prefix that
// precedes each NAL unit in a sample, for use with nal.Split.
func (c *ConfigurationRecord) NALLengthSize() int {
	return int(c.LengthSizeMinusOne) + 1
}

// isHighProfile reports whether profile_idc implies the high-profile-only
// chroma/bit-depth fields are present, per section 5.3.3.1.2.
func isHighProfile(profileIDC uint8) bool {
	switch profileIDC {
	case 100, 110, 122, 144:
		return true
	default:
		return false
	}
}

// Parse decodes a ConfigurationRecord from r.
func Parse(r io.Reader) (*ConfigurationRecord, error) {
	var head [6]uint8
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, errors.Wrap(err, "avcc: could not read fixed header")
	}

	c := &ConfigurationRecord{
		ConfigurationVersion: head[0],
		AVCProfileIndication: head[1],
		ProfileCompatibility: head[2],
		AVCLevelIndication:   head[3],
		LengthSizeMinusOne:   head[4] & 0x3,
	}

	numSPS := head[5] & 0x1f
	for i := uint8(0); i < numSPS; i++ {
		b, err := readLengthPrefixed(r, 2)
		if err != nil {
			return nil, errors.Wrap(err, "avcc: could not read SPS")
		}
		c.SequenceParameterSets = append(c.SequenceParameterSets, b)
	}

	var numPPSByte [1]uint8
	if _, err := io.ReadFull(r, numPPSByte[:]); err != nil {
		return nil, errors.Wrap(err, "avcc: could not read numOfPictureParameterSets")
	}
	for i := uint8(0); i < numPPSByte[0]; i++ {
		b, err := readLengthPrefixed(r, 2)
		if err != nil {
			return nil, errors.Wrap(err, "avcc: could not read PPS")
		}
		c.PictureParameterSets = append(c.PictureParameterSets, b)
	}

	if !isHighProfile(c.AVCProfileIndication) {
		return c, nil
	}
	c.HasHighProfileFields = true

	var tail [4]uint8
	if _, err := io.ReadFull(r, tail[:]); err != nil {
		// Some writers omit the high-profile tail despite the profile;
		// treat absence as "no extra fields" rather than a fatal error,
		// matching spec section 7's "unused atom" leniency.
		return c, nil
	}
	c.ChromaFormat = tail[0] & 0x3
	c.BitDepthLumaMinus8 = tail[1] & 0x7
	c.BitDepthChromaMinus8 = tail[2] & 0x7
	numExt := tail[3]
	for i := uint8(0); i < numExt; i++ {
		b, err := readLengthPrefixed(r, 2)
		if err != nil {
			return nil, errors.Wrap(err, "avcc: could not read SPS extension")
		}
		c.SequenceParameterSetExts = append(c.SequenceParameterSetExts, b)
	}
	return c, nil
}

// readLengthPrefixed reads a lengthBytes-wide big-endian length followed by
// that many bytes.
func readLengthPrefixed(r io.Reader, lengthBytes int) ([]byte, error) {
	switch lengthBytes {
	case 2:
		var l uint16
		if err := binary.Read(r, binary.BigEndian, &l); err != nil {
			return nil, err
		}
		buf := make([]byte, l)
		_, err := io.ReadFull(r, buf)
		return buf, err
	default:
		return nil, errors.Errorf("avcc: unsupported length prefix width %d", lengthBytes)
	}
}
