package qrfix

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSize is returned when a matrix dimension is not 4*version+17
	// for a version in [1, 40].
	ErrInvalidSize = errors.New("invalid size")

	// ErrMalformedCell is returned when a matrix row is ragged or holds a
	// character other than 'x', '.' or '*'.
	ErrMalformedCell = errors.New("malformed cell")

	// ErrNoConfigurationMatch is returned when no reference format codeword
	// agrees with the observed format field.
	ErrNoConfigurationMatch = errors.New("no configuration match")

	// ErrMalformedBitstream is returned when the payload bits cannot be parsed.
	ErrMalformedBitstream = errors.New("malformed bitstream")

	// ErrUnsupportedMode is returned for numeric and kanji segments.
	ErrUnsupportedMode = errors.New("unsupported mode")

	// ErrDataTooLarge is returned when a payload does not fit the chosen
	// version and layout.
	ErrDataTooLarge = errors.New("data too large")

	// ErrUnknownCharacterSet is returned when a byte segment encoding name
	// is not recognized.
	ErrUnknownCharacterSet = errors.New("unknown character set")

	// ErrReconstructionFailed is returned when every orientation and
	// configuration candidate has been tried without a successful decode.
	ErrReconstructionFailed = errors.New("reconstruction failed")
)

// Attempt records one failed (orientation, configuration) decode attempt.
type Attempt struct {
	QuarterTurns int
	ECLevel      string
	DataMask     int
	Err          error
}

func (a Attempt) String() string {
	if a.ECLevel == "" {
		return fmt.Sprintf("turns=%d: %v", a.QuarterTurns, a.Err)
	}
	return fmt.Sprintf("turns=%d ec=%s mask=%d: %v", a.QuarterTurns, a.ECLevel, a.DataMask, a.Err)
}

// ReconstructionError is returned when all attempts have been exhausted.
type ReconstructionError struct {
	Attempts []Attempt
}

func (e *ReconstructionError) Error() string {
	if len(e.Attempts) == 0 {
		return ErrReconstructionFailed.Error() + ": nothing attempted"
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s after %d attempts: %s", ErrReconstructionFailed, len(e.Attempts), strings.Join(parts, "; "))
}

func (e *ReconstructionError) Unwrap() error {
	return ErrReconstructionFailed
}
