package qrfix

import "go.uber.org/zap"

// Interleave selects how the extracted codewords are regrouped before the
// payload is parsed.
type Interleave int

const (
	// InterleavePaired regroups the first 26 codewords as two interleaved
	// 13-codeword blocks (even positions first, then odd positions). It only
	// fits small payloads laid out in that arrangement.
	InterleavePaired Interleave = iota

	// InterleaveBlocks de-interleaves using the version's error correction
	// block table and keeps the data codewords of every block.
	InterleaveBlocks
)

// String returns the interleave name.
func (i Interleave) String() string {
	switch i {
	case InterleavePaired:
		return "paired"
	case InterleaveBlocks:
		return "blocks"
	}
	return "unknown"
}

// ParseInterleave parses an interleave name as printed by String.
func ParseInterleave(s string) (Interleave, bool) {
	switch s {
	case "", "paired":
		return InterleavePaired, true
	case "blocks":
		return InterleaveBlocks, true
	}
	return 0, false
}

// FixOptions configures reconstruction.
type FixOptions struct {
	// TryAllOrientations tries every corner found missing a finder pattern
	// instead of only the canonical bottom-right one.
	TryAllOrientations bool

	// Parallel runs the configuration candidates of an orientation
	// concurrently. The result is the same as a sequential run.
	Parallel bool

	// Interleave selects the codeword regrouping.
	Interleave Interleave

	// CharacterSet names the encoding of byte segments. Empty means
	// ISO-8859-1, where every byte is its own code point. Any other name
	// must be known to the charset package.
	CharacterSet string

	// Logger receives attempt-level diagnostics. Nil disables logging.
	Logger *zap.Logger
}
