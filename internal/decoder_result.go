// Package internal provides the result types shared by the decoder and the
// reconstruction driver.
package internal

// Segment is one decoded mode segment of a bit stream.
type Segment struct {
	Mode           string
	CharacterCount int
	Text           string
	Bytes          []byte
}

// DecoderResult encapsulates the result of decoding the data codewords of
// a matrix.
type DecoderResult struct {
	RawBytes     []byte
	NumBits      int
	Text         string
	Segments     []Segment
	ByteSegments [][]byte
	ECLevel      string
	DataMask     int
}

// NewDecoderResult creates a DecoderResult with the basic fields.
func NewDecoderResult(rawBytes []byte, text string, segments []Segment, ecLevel string) *DecoderResult {
	numBits := 0
	if rawBytes != nil {
		numBits = 8 * len(rawBytes)
	}
	var byteSegments [][]byte
	for _, s := range segments {
		if s.Bytes != nil {
			byteSegments = append(byteSegments, s.Bytes)
		}
	}
	return &DecoderResult{
		RawBytes:     rawBytes,
		NumBits:      numBits,
		Text:         text,
		Segments:     segments,
		ByteSegments: byteSegments,
		ECLevel:      ecLevel,
	}
}
