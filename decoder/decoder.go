/*
DESCRIPTION
  decoder.go implements the top-level Decoder: the NAL unit dispatch loop
  that owns the active SPS/PPS sets, drives the decoded picture buffer, and
  turns slice NAL units into reconstructed pictures.

AUTHORS
  h264dec contributors, grounded on the teacher package's decode.go
  NAL-to-picture dispatch (Decode/NewNALUnit) and NewSliceData's
  per-picture driving loop in slice.go.
*/

// Package decoder implements the decoder driver: it iterates NAL units,
// dispatches SPS/PPS/SEI/IDR/non-IDR, maintains the decoded picture buffer,
// and writes reconstructed YCbCr planes. Every other package in this module
// is a pure function of syntax already read off the bitstream; this package
// is the only one that holds decode state across NAL unit boundaries.
package decoder

import (
	"github.com/pkg/errors"

	bitreader "github.com/coastwatch/h264dec/bits"
	"github.com/coastwatch/h264dec/dpb"
	"github.com/coastwatch/h264dec/errs"
	log "github.com/coastwatch/h264dec/internal/log"
	"github.com/coastwatch/h264dec/nal"
	"github.com/coastwatch/h264dec/paramsets"
	"github.com/coastwatch/h264dec/picture"
	"github.com/coastwatch/h264dec/slice"
)

// Decoder turns an Annex-B byte stream or a sequence of avcC-framed
// samples into decoded pictures, in decoding order.
type Decoder struct {
	cfg Config

	sps map[uint]*paramsets.SPS
	pps map[uint]*paramsets.PPS

	dpb *dpb.Buffer

	// outputIdx counts the pictures decoded so far, in decoding order; it
	// is the index keepPicture tests against Seek/End/Step. This decoder
	// treats every slice NAL unit as its own picture (later slices of a
	// multi-slice picture are not merged into an earlier one), matching the
	// common one-slice-per-picture case the teacher's own sample streams use.
	outputIdx int
}

// New returns a Decoder configured by cfg.
func New(cfg Config) *Decoder {
	log.SetDebug(cfg.Debug)
	return &Decoder{
		cfg: cfg,
		sps: make(map[uint]*paramsets.SPS),
		pps: make(map[uint]*paramsets.PPS),
		dpb: dpb.New(),
	}
}

// DecodeAnnexB decodes every NAL unit in an Annex-B elementary stream,
// returning the pictures reconstructed in decoding order.
func (d *Decoder) DecodeAnnexB(data []byte) ([]*picture.Picture, error) {
	s := nal.NewScanner(data)
	var out []*picture.Picture
	for {
		raw, ok := s.Next()
		if !ok {
			break
		}
		pic, err := d.decodeNALUnit(raw)
		if err != nil {
			return out, err
		}
		if pic != nil {
			out = append(out, pic)
		}
	}
	return out, nil
}

// DecodeSample decodes one avcC-framed access unit (a sequence of
// length-prefixed NAL units, lengthSize bytes per prefix), returning the
// picture it completes, or nil if the sample only carried parameter sets
// or other non-picture NAL units.
func (d *Decoder) DecodeSample(sample []byte, lengthSize int) (*picture.Picture, error) {
	units, err := nal.Split(sample, lengthSize)
	if err != nil {
		return nil, errors.Wrap(err, "decoder: could not split sample into NAL units")
	}
	var pic *picture.Picture
	for _, raw := range units {
		p, err := d.decodeNALUnit(raw)
		if err != nil {
			return nil, err
		}
		if p != nil {
			pic = p
		}
	}
	return pic, nil
}

// LoadConfigurationRecord seeds the decoder's SPS/PPS maps from an avcC
// ConfigurationRecord's embedded parameter sets, so that DecodeSample
// callers need not send the SPS/PPS NAL units through the normal stream
// first (MP4 carries them once, out of band, in the sample description
// rather than interleaved with slice data).
func (d *Decoder) LoadConfigurationRecord(spsNALs, ppsNALs [][]byte) error {
	for _, raw := range spsNALs {
		if _, err := d.decodeNALUnit(raw); err != nil {
			return errors.Wrap(err, "decoder: could not load SPS from configuration record")
		}
	}
	for _, raw := range ppsNALs {
		if _, err := d.decodeNALUnit(raw); err != nil {
			return errors.Wrap(err, "decoder: could not load PPS from configuration record")
		}
	}
	return nil
}

// decodeNALUnit dispatches one NAL unit by type, returning a fully
// reconstructed picture if this NAL unit was a slice that completed one,
// nil otherwise.
func (d *Decoder) decodeNALUnit(raw []byte) (*picture.Picture, error) {
	u, err := nal.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "decoder: could not parse NAL unit header")
	}

	switch u.Type {
	case nal.TypeSPS:
		sps, err := paramsets.NewSPS(u.RBSP)
		if err != nil {
			return nil, errors.Wrap(err, "decoder: could not decode SPS")
		}
		d.sps[sps.ID] = sps
		log.L.Info().Uint("sps_id", sps.ID).Msg("decoded SPS")
		return nil, nil

	case nal.TypePPS:
		// pic_parameter_set_id and seq_parameter_set_id are both read
		// before the fields NewPPS needs to size scaling lists, so a
		// cheap pre-pass resolves seq_parameter_set_id first.
		spsID, err := peekPPSSeqParameterSetID(u.RBSP)
		if err != nil {
			return nil, errors.Wrap(err, "decoder: could not peek PPS seq_parameter_set_id")
		}
		sps, ok := d.sps[spsID]
		if !ok {
			return nil, errs.New(errs.MissingParamSet, "decoder: PPS references unknown SPS")
		}
		pps, err := paramsets.NewPPS(u.RBSP, sps.ChromaFormatIDC)
		if err != nil {
			return nil, errors.Wrap(err, "decoder: could not decode PPS")
		}
		d.pps[pps.ID] = pps
		log.L.Info().Uint("pps_id", pps.ID).Msg("decoded PPS")
		return nil, nil

	case nal.TypeSliceIDR, nal.TypeSliceNonIDR:
		return d.decodeSliceNAL(u)

	case nal.TypeSEI, nal.TypeAUD, nal.TypeFillerData, nal.TypeEndOfSequence, nal.TypeEndOfStream:
		log.L.Debug().Uint8("nal_type", uint8(u.Type)).Msg("skipping NAL unit outside decoding scope")
		return nil, nil

	default:
		log.L.Debug().Uint8("nal_type", uint8(u.Type)).Msg("ignoring unsupported NAL unit type")
		return nil, nil
	}
}

// decodeSliceNAL decodes a slice_layer_without_partitioning_rbsp(): its
// slice_header(), then its slice_data(), reconstructing the picture the
// slice belongs to.
func (d *Decoder) decodeSliceNAL(u *nal.Unit) (*picture.Picture, error) {
	r := bitreader.NewReader(u.RBSP)

	ppsID, err := peekSliceHeaderPPSID(u.RBSP)
	if err != nil {
		return nil, errors.Wrap(err, "decoder: could not peek slice_header pic_parameter_set_id")
	}
	pps, ok := d.pps[ppsID]
	if !ok {
		return nil, errs.New(errs.MissingParamSet, "decoder: slice references unknown PPS")
	}
	sps, ok := d.sps[pps.SPSID]
	if !ok {
		return nil, errs.New(errs.MissingParamSet, "decoder: PPS references unknown SPS")
	}

	isIDR := u.Type == nal.TypeSliceIDR
	h, err := slice.NewHeader(r, sps, pps, isIDR, u.RefIdc)
	if err != nil {
		return nil, errors.Wrap(err, "decoder: could not decode slice_header")
	}

	bitDepthY := int(sps.BitDepthLumaMinus8) + 8
	bitDepthC := int(sps.BitDepthChromaMinus8) + 8
	pic := picture.New(h, sps, pps, u.RefIdc, isIDR, bitDepthY, bitDepthC)

	d.dpb.InitPicture(pic)

	if err := d.decodeSliceData(r, pic); err != nil {
		return nil, errors.Wrap(err, "decoder: could not decode slice_data")
	}

	d.dpb.Push(pic)
	keep := d.cfg.keepPicture(d.outputIdx)
	d.outputIdx++
	if !keep {
		return nil, nil
	}
	return pic, nil
}

// peekPPSSeqParameterSetID reads just pic_parameter_set_id and
// seq_parameter_set_id off the front of a pic_parameter_set_rbsp(),
// discarding the reader afterwards; NewPPS re-reads the RBSP from the
// start once the referenced SPS is known.
func peekPPSSeqParameterSetID(rbsp []byte) (uint, error) {
	r := bitreader.NewReader(rbsp)
	if _, err := r.ExpGolombUint(); err != nil { // pic_parameter_set_id
		return 0, err
	}
	return r.ExpGolombUint() // seq_parameter_set_id
}

// peekSliceHeaderPPSID reads first_mb_in_slice, slice_type, and
// pic_parameter_set_id off the front of a slice_header(), the three
// fields that precede pic_parameter_set_id's dependents.
func peekSliceHeaderPPSID(rbsp []byte) (uint, error) {
	r := bitreader.NewReader(rbsp)
	if _, err := r.ExpGolombUint(); err != nil { // first_mb_in_slice
		return 0, err
	}
	if _, err := r.ExpGolombUint(); err != nil { // slice_type
		return 0, err
	}
	return r.ExpGolombUint() // pic_parameter_set_id
}
