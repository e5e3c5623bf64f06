package decoder

import (
	"github.com/ericlevine/qrfix"
	"github.com/ericlevine/qrfix/internal"
)

// Decoder extracts and parses the payload of a repaired matrix under one
// format hypothesis.
type Decoder struct {
	layout qrfix.Interleave
}

// NewDecoder creates a Decoder that regroups codewords with layout.
func NewDecoder(layout qrfix.Interleave) *Decoder {
	return &Decoder{layout: layout}
}

// Decode reads the data modules of m through the mask named by fi,
// regroups the codewords and parses the payload. The matrix must already
// be in canonical orientation.
func (d *Decoder) Decode(m *qrfix.Matrix, version *Version, fi *FormatInformation, characterSet string) (*internal.DecoderResult, error) {
	raw, err := ReadCodewords(m, version, fi.Mask())
	if err != nil {
		return nil, err
	}
	data, erasures := DataCodewords(raw, version, fi.ECLevel, d.layout)
	result, err := DecodeBitStream(data, erasures, version, fi.ECLevel, characterSet)
	if err != nil {
		return nil, err
	}
	result.DataMask = int(fi.DataMask)
	return result, nil
}
