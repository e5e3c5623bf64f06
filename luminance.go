package qrfix

// LuminanceSource exposes an image as 8-bit luminance samples, row-major,
// where 0 is black and 255 is white.
type LuminanceSource interface {
	// Row copies row y into row, allocating when row is too short.
	Row(y int, row []byte) []byte

	// Matrix returns a copy of every sample.
	Matrix() []byte

	Width() int
	Height() int
}
