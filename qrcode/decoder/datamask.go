package decoder

// DataMaskFunc is a function that returns true if the module at (row, col)
// is inverted by the mask.
type DataMaskFunc func(row, col int) bool

// DataMasks contains the 8 QR code data mask patterns, indexed by the mask
// number carried in the format information.
var DataMasks = [8]DataMaskFunc{
	func(i, j int) bool { return (i+j)%2 == 0 },             // 000
	func(i, j int) bool { return i%2 == 0 },                 // 001
	func(i, j int) bool { return j%3 == 0 },                 // 010
	func(i, j int) bool { return (i+j)%3 == 0 },             // 011
	func(i, j int) bool { return (i/2+j/3)%2 == 0 },         // 100
	func(i, j int) bool { return (i*j)%2+(i*j)%3 == 0 },     // 101
	func(i, j int) bool { return ((i*j)%2+(i*j)%3)%2 == 0 }, // 110
	func(i, j int) bool { return ((i*j)%3+(i+j)%2)%2 == 0 }, // 111
}

// MaskBit returns bit XORed with the mask at (row, col). Applying it twice
// returns the original bit.
func MaskBit(mask DataMaskFunc, row, col int, bit bool) bool {
	return bit != mask(row, col)
}
