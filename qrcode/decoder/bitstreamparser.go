package decoder

import (
	"fmt"
	"strings"

	"github.com/ericlevine/qrfix"
	"github.com/ericlevine/qrfix/bitutil"
	"github.com/ericlevine/qrfix/charset"
	"github.com/ericlevine/qrfix/internal"
)

const alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// alphanumericOddBits is the width of a trailing unpaired alphanumeric
// character. Streams produced by the tool this decoder interoperates with
// spend a full pair width on it.
const alphanumericOddBits = 11

// bitReader reads payload bits and refuses any bit taken from an Unknown
// module.
type bitReader struct {
	bits     *bitutil.BitSource
	erasures *bitutil.BitSource
}

func newBitReader(data, erasures []byte) *bitReader {
	r := &bitReader{bits: bitutil.NewBitSource(data)}
	if erasures != nil {
		r.erasures = bitutil.NewBitSource(erasures)
	}
	return r
}

func (r *bitReader) read(numBits int, what string) (int, error) {
	if numBits > r.bits.Available() {
		return 0, fmt.Errorf("%w: %s needs %d bits, %d left",
			qrfix.ErrMalformedBitstream, what, numBits, r.bits.Available())
	}
	v, err := r.bits.ReadBits(numBits)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", qrfix.ErrMalformedBitstream, err)
	}
	if r.erasures != nil && r.erasures.Available() >= numBits {
		if e, _ := r.erasures.ReadBits(numBits); e != 0 {
			return 0, fmt.Errorf("%w: %s covers unknown modules", qrfix.ErrMalformedBitstream, what)
		}
	}
	return v, nil
}

type segment struct {
	mode  Mode
	count int
	text  string
	bytes []byte
}

// segmentReader produces the segments of a bit stream one at a time.
type segmentReader struct {
	r            *bitReader
	version      *Version
	characterSet string
}

func (sr *segmentReader) next() (segment, error) {
	if sr.r.bits.Available() < 4 {
		return segment{}, fmt.Errorf("%w: bit stream ended without terminator", qrfix.ErrMalformedBitstream)
	}
	modeBits, err := sr.r.read(4, "mode indicator")
	if err != nil {
		return segment{}, err
	}
	mode, err := ModeForBits(modeBits)
	if err != nil {
		return segment{}, err
	}

	switch mode {
	case ModeTerminator:
		return segment{mode: mode}, nil
	case ModeNumeric, ModeKanji:
		return segment{}, fmt.Errorf("%w: %s segment", qrfix.ErrUnsupportedMode, mode)
	}

	count, err := sr.r.read(mode.CharacterCountBits(sr.version), "character count")
	if err != nil {
		return segment{}, err
	}
	seg := segment{mode: mode, count: count}
	switch mode {
	case ModeAlphanumeric:
		seg.text, err = decodeAlphanumericSegment(sr.r, count)
	case ModeByte:
		seg.bytes, err = decodeByteSegment(sr.r, count)
		if err == nil {
			seg.text = charset.DecodeBytes(seg.bytes, sr.characterSet)
		}
	}
	if err != nil {
		return segment{}, err
	}
	return seg, nil
}

// DecodeBitStream decodes the payload codewords into text. Erasures may be
// nil when every bit is known. Decoding stops at the terminator; running
// out of bits first is an error, as is reaching a numeric or kanji segment.
func DecodeBitStream(data, erasures []byte, version *Version, ecLevel ErrorCorrectionLevel, characterSet string) (*internal.DecoderResult, error) {
	sr := &segmentReader{
		r:            newBitReader(data, erasures),
		version:      version,
		characterSet: characterSet,
	}
	var result strings.Builder
	result.Grow(50)
	var segments []internal.Segment
	for {
		seg, err := sr.next()
		if err != nil {
			return nil, err
		}
		if seg.mode == ModeTerminator {
			break
		}
		result.WriteString(seg.text)
		segments = append(segments, internal.Segment{
			Mode:           seg.mode.String(),
			CharacterCount: seg.count,
			Text:           seg.text,
			Bytes:          seg.bytes,
		})
	}
	return internal.NewDecoderResult(data, result.String(), segments, ecLevel.String()), nil
}

func decodeByteSegment(r *bitReader, count int) ([]byte, error) {
	readBytes := make([]byte, count)
	for i := 0; i < count; i++ {
		val, err := r.read(8, "byte")
		if err != nil {
			return nil, err
		}
		readBytes[i] = byte(val)
	}
	return readBytes, nil
}

func toAlphaNumericChar(value int) (byte, error) {
	if value >= len(alphanumericChars) {
		return 0, fmt.Errorf("%w: alphanumeric value %d out of range", qrfix.ErrMalformedBitstream, value)
	}
	return alphanumericChars[value], nil
}

func decodeAlphanumericSegment(r *bitReader, count int) (string, error) {
	var result strings.Builder
	for count > 1 {
		nextTwo, err := r.read(11, "alphanumeric pair")
		if err != nil {
			return "", err
		}
		c1, err := toAlphaNumericChar(nextTwo / 45)
		if err != nil {
			return "", err
		}
		c2, err := toAlphaNumericChar(nextTwo % 45)
		if err != nil {
			return "", err
		}
		result.WriteByte(c1)
		result.WriteByte(c2)
		count -= 2
	}
	if count == 1 {
		val, err := r.read(alphanumericOddBits, "alphanumeric character")
		if err != nil {
			return "", err
		}
		c, err := toAlphaNumericChar(val)
		if err != nil {
			return "", err
		}
		result.WriteByte(c)
	}
	return result.String(), nil
}
