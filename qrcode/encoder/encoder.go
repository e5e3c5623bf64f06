// Package encoder builds clean QR matrices carrying alphanumeric or byte
// payloads in the layouts the decoder reads back. It is used to produce
// fixtures for damage experiments.
package encoder

import (
	"fmt"
	"math"
	"strings"

	"github.com/ericlevine/qrfix"
	"github.com/ericlevine/qrfix/bitutil"
	"github.com/ericlevine/qrfix/charset"
	"github.com/ericlevine/qrfix/qrcode/decoder"
)

const (
	numMaskPatterns = 8

	// AutoMask selects the mask with the lowest penalty score.
	AutoMask = -1

	alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
)

// Options controls symbol construction.
type Options struct {
	// Version is the symbol version, or 0 for the smallest that fits.
	Version int
	ECLevel decoder.ErrorCorrectionLevel
	// Mask is the data mask, or AutoMask.
	Mask         int
	Layout       qrfix.Interleave
	CharacterSet string
}

// Symbol is an encoded matrix together with its configuration.
type Symbol struct {
	Matrix  *qrfix.Matrix
	Version *decoder.Version
	Format  *decoder.FormatInformation
	Mode    decoder.Mode
}

// ChooseMode returns alphanumeric when every character of text is in the
// alphanumeric set and byte otherwise. The empty string is byte mode.
func ChooseMode(text string) decoder.Mode {
	if text == "" {
		return decoder.ModeByte
	}
	for i := 0; i < len(text); i++ {
		if strings.IndexByte(alphanumericChars, text[i]) < 0 {
			return decoder.ModeByte
		}
	}
	return decoder.ModeAlphanumeric
}

// Encode builds a symbol for text.
func Encode(text string, opts Options) (*Symbol, error) {
	if opts.Mask < AutoMask || opts.Mask >= numMaskPatterns {
		return nil, fmt.Errorf("qrcode/encoder: invalid mask %d", opts.Mask)
	}
	mode := ChooseMode(text)
	body := bitutil.NewBitArray(0)
	count := len(text)
	if mode == decoder.ModeAlphanumeric {
		appendAlphanumeric(text, body)
	} else {
		data, err := charset.EncodeString(text, opts.CharacterSet)
		if err != nil {
			return nil, err
		}
		for _, b := range data {
			body.AppendBits(uint32(b), 8)
		}
		count = len(data)
	}

	version, capacity, err := chooseVersion(mode, count, body.Size(), opts)
	if err != nil {
		return nil, err
	}

	stream := bitutil.NewBitArray(0)
	stream.AppendBits(uint32(mode.Bits()), 4)
	stream.AppendBits(uint32(count), mode.CharacterCountBits(version))
	for i := 0; i < body.Size(); i++ {
		stream.AppendBit(body.Get(i))
	}
	terminate(stream, capacity)

	var codewords []byte
	if opts.Layout == qrfix.InterleaveBlocks {
		codewords = decoder.InterleaveBlocks(stream.Bytes(), version, opts.ECLevel)
	} else {
		codewords = decoder.InterleavePaired(stream.Bytes())
	}

	mask := opts.Mask
	if mask == AutoMask {
		mask, err = chooseMask(codewords, version, opts.ECLevel)
		if err != nil {
			return nil, err
		}
	}
	fi, err := decoder.LookupFormatInformation(opts.ECLevel, mask)
	if err != nil {
		return nil, err
	}
	m, err := buildMatrix(codewords, version, fi)
	if err != nil {
		return nil, err
	}
	return &Symbol{Matrix: m, Version: version, Format: fi, Mode: mode}, nil
}

// appendAlphanumeric packs pairs into 11 bits. A trailing odd character
// also takes 11 bits, matching what the decoder reads.
func appendAlphanumeric(text string, bits *bitutil.BitArray) {
	for i := 0; i < len(text); i += 2 {
		c1 := strings.IndexByte(alphanumericChars, text[i])
		if i+1 < len(text) {
			c2 := strings.IndexByte(alphanumericChars, text[i+1])
			bits.AppendBits(uint32(c1*45+c2), 11)
		} else {
			bits.AppendBits(uint32(c1), 11)
		}
	}
}

// dataCapacity returns the number of payload codewords the decoder reads
// back for version under opts.
func dataCapacity(version *decoder.Version, opts Options) int {
	if opts.Layout == qrfix.InterleaveBlocks {
		return version.ECBlocksForLevel(opts.ECLevel).TotalDataCodewords()
	}
	return 26
}

func chooseVersion(mode decoder.Mode, count, bodyBits int, opts Options) (*decoder.Version, int, error) {
	first, last := qrfix.MinVersion, qrfix.MaxVersion
	if opts.Version != 0 {
		first, last = opts.Version, opts.Version
	}
	for n := first; n <= last; n++ {
		version, err := decoder.GetVersionForNumber(n)
		if err != nil {
			return nil, 0, err
		}
		countBits := mode.CharacterCountBits(version)
		capacity := dataCapacity(version, opts)
		if count < 1<<uint(countBits) && 4+countBits+bodyBits <= 8*capacity {
			return version, capacity, nil
		}
	}
	if opts.Version != 0 {
		return nil, 0, fmt.Errorf("%w: %d %s characters in version %d", qrfix.ErrDataTooLarge, count, mode, opts.Version)
	}
	return nil, 0, fmt.Errorf("%w: %d %s characters", qrfix.ErrDataTooLarge, count, mode)
}

// terminate appends the terminator, pads to a byte boundary and fills the
// remaining capacity with alternating 0xEC 0x11 pad codewords.
func terminate(bits *bitutil.BitArray, capacity int) {
	for i := 0; i < 4 && bits.Size() < 8*capacity; i++ {
		bits.AppendBit(false)
	}
	for bits.Size()%8 != 0 {
		bits.AppendBit(false)
	}
	for i := 0; bits.SizeInBytes() < capacity; i++ {
		if i%2 == 0 {
			bits.AppendBits(0xEC, 8)
		} else {
			bits.AppendBits(0x11, 8)
		}
	}
}

func buildMatrix(codewords []byte, version *decoder.Version, fi *decoder.FormatInformation) (*qrfix.Matrix, error) {
	m, err := qrfix.NewMatrixForVersion(version.Number)
	if err != nil {
		return nil, err
	}
	m.Fill(qrfix.White)
	decoder.RepairFunctionPatterns(m, version)
	decoder.WriteFormatField(m, fi)
	if err := decoder.WriteCodewords(m, version, fi.Mask(), codewords); err != nil {
		return nil, err
	}
	return m, nil
}

func chooseMask(codewords []byte, version *decoder.Version, ecLevel decoder.ErrorCorrectionLevel) (int, error) {
	best, minPenalty := 0, math.MaxInt32
	for mask := 0; mask < numMaskPatterns; mask++ {
		fi, err := decoder.LookupFormatInformation(ecLevel, mask)
		if err != nil {
			return 0, err
		}
		m, err := buildMatrix(codewords, version, fi)
		if err != nil {
			return 0, err
		}
		if p := MaskPenalty(m); p < minPenalty {
			best, minPenalty = mask, p
		}
	}
	return best, nil
}
