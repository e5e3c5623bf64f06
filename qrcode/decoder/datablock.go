package decoder

import (
	"github.com/ericlevine/qrfix"
	"github.com/ericlevine/qrfix/reedsolomon"
)

// pairedCodewords is the number of leading codewords regrouped by the paired
// layout: two blocks of 13 codewords, interleaved.
const pairedCodewords = 26

// DataBlock represents a block of data and error-correction codewords.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// GetDataBlocks separates interleaved QR code data into original blocks.
func GetDataBlocks(rawCodewords []byte, version *Version, ecLevel ErrorCorrectionLevel) []DataBlock {
	ecBlocks := version.ECBlocksForLevel(ecLevel)

	result := make([]DataBlock, ecBlocks.NumBlocks())
	numResultBlocks := 0
	for _, block := range ecBlocks.Blocks {
		for i := 0; i < block.Count; i++ {
			numDataCodewords := block.DataCodewords
			numBlockCodewords := ecBlocks.ECCodewordsPerBlock + numDataCodewords
			result[numResultBlocks] = DataBlock{
				NumDataCodewords: numDataCodewords,
				Codewords:        make([]byte, numBlockCodewords),
			}
			numResultBlocks++
		}
	}

	// Find where longer blocks start
	shorterBlocksTotalCodewords := len(result[0].Codewords)
	longerBlocksStartAt := len(result) - 1
	for longerBlocksStartAt >= 0 {
		if len(result[longerBlocksStartAt].Codewords) == shorterBlocksTotalCodewords {
			break
		}
		longerBlocksStartAt--
	}
	longerBlocksStartAt++

	shorterBlocksNumDataCodewords := shorterBlocksTotalCodewords - ecBlocks.ECCodewordsPerBlock

	// De-interleave: fill data codewords
	rawCodewordsOffset := 0
	for i := 0; i < shorterBlocksNumDataCodewords; i++ {
		for j := 0; j < numResultBlocks; j++ {
			result[j].Codewords[i] = rawCodewords[rawCodewordsOffset]
			rawCodewordsOffset++
		}
	}
	// Fill extra data byte in longer blocks
	for j := longerBlocksStartAt; j < numResultBlocks; j++ {
		result[j].Codewords[shorterBlocksNumDataCodewords] = rawCodewords[rawCodewordsOffset]
		rawCodewordsOffset++
	}
	// Fill EC codewords
	max := len(result[0].Codewords)
	for i := shorterBlocksNumDataCodewords; i < max; i++ {
		for j := 0; j < numResultBlocks; j++ {
			iOffset := i
			if j >= longerBlocksStartAt {
				iOffset = i + 1
			}
			result[j].Codewords[iOffset] = rawCodewords[rawCodewordsOffset]
			rawCodewordsOffset++
		}
	}

	return result
}

// DeinterleavePaired regroups the first 26 codewords (or fewer, if fewer
// are given) by taking every even position followed by every odd position.
// Later codewords are dropped.
func DeinterleavePaired(raw []byte) []byte {
	n := len(raw)
	if n > pairedCodewords {
		n = pairedCodewords
	}
	out := make([]byte, 0, n)
	for i := 0; i < n; i += 2 {
		out = append(out, raw[i])
	}
	for i := 1; i < n; i += 2 {
		out = append(out, raw[i])
	}
	return out
}

// InterleavePaired is the inverse of DeinterleavePaired.
func InterleavePaired(data []byte) []byte {
	n := len(data)
	if n > pairedCodewords {
		n = pairedCodewords
	}
	out := make([]byte, n)
	even := (n + 1) / 2
	for i := 0; i < n; i++ {
		if i < even {
			out[2*i] = data[i]
		} else {
			out[2*(i-even)+1] = data[i]
		}
	}
	return out
}

// DataCodewords regroups raw codewords into the payload byte order using
// the given layout. Erasure bytes travel with their codewords.
func DataCodewords(raw *Codewords, v *Version, ecLevel ErrorCorrectionLevel, layout qrfix.Interleave) (data, erasures []byte) {
	if layout == qrfix.InterleaveBlocks {
		return blockData(raw.Data, v, ecLevel), blockData(raw.Erasures, v, ecLevel)
	}
	return DeinterleavePaired(raw.Data), DeinterleavePaired(raw.Erasures)
}

func blockData(raw []byte, v *Version, ecLevel ErrorCorrectionLevel) []byte {
	blocks := GetDataBlocks(raw, v, ecLevel)
	out := make([]byte, 0, v.ECBlocksForLevel(ecLevel).TotalDataCodewords())
	for _, db := range blocks {
		out = append(out, db.Codewords[:db.NumDataCodewords]...)
	}
	return out
}

// InterleaveBlocks is the inverse of the block layout: it splits data into
// the version's blocks, computes each block's error correction codewords and
// interleaves data then error correction codewords in placement order.
func InterleaveBlocks(data []byte, v *Version, ecLevel ErrorCorrectionLevel) []byte {
	ecBlocks := v.ECBlocksForLevel(ecLevel)
	enc := reedsolomon.NewEncoder()
	var dataBlocks, ecCodewords [][]byte
	offset := 0
	for _, block := range ecBlocks.Blocks {
		for i := 0; i < block.Count; i++ {
			b := make([]byte, block.DataCodewords)
			if offset < len(data) {
				copy(b, data[offset:])
			}
			offset += block.DataCodewords
			dataBlocks = append(dataBlocks, b)
			ecCodewords = append(ecCodewords, enc.Encode(b, ecBlocks.ECCodewordsPerBlock))
		}
	}
	out := make([]byte, 0, v.TotalCodewords)
	out = appendColumns(out, dataBlocks)
	out = appendColumns(out, ecCodewords)
	return out
}

// appendColumns appends the i-th byte of every block for increasing i,
// skipping blocks that are already exhausted.
func appendColumns(out []byte, blocks [][]byte) []byte {
	for i := 0; ; i++ {
		wrote := false
		for _, b := range blocks {
			if i < len(b) {
				out = append(out, b[i])
				wrote = true
			}
		}
		if !wrote {
			return out
		}
	}
}
