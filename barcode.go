// Package qrfix reconstructs and decodes partially damaged QR code matrices.
//
// A matrix is a square grid of Black, White and Unknown cells. The fixed
// structural regions are repaired from the version geometry, the format
// field is recovered by wildcard matching against the 32 reference
// codewords, and the payload is read back through the data mask.
package qrfix

import "time"

// Result encapsulates a successful reconstruction.
type Result struct {
	Text         string
	RawBytes     []byte
	NumBits      int
	ECLevel      string
	DataMask     int
	QuarterTurns int
	// Attempts counts the candidate formats decoded, the successful one
	// included. Orientations without a matching format do not count.
	Attempts     int
	Timestamp    time.Time
}

// NewResult creates a new Result with the given text and raw bytes.
func NewResult(text string, rawBytes []byte) *Result {
	numBits := 0
	if rawBytes != nil {
		numBits = 8 * len(rawBytes)
	}
	return &Result{
		Text:      text,
		RawBytes:  rawBytes,
		NumBits:   numBits,
		Timestamp: time.Now(),
	}
}
