// Package bitutil provides the bit containers used while reading a QR matrix.
package bitutil

import "strings"

// BitArray is a growable array of bits packed into uint32 words. Bit 0 is
// the first bit appended.
type BitArray struct {
	bits []uint32
	size int
}

// NewBitArray creates a new BitArray holding size zero bits.
func NewBitArray(size int) *BitArray {
	if size <= 0 {
		return &BitArray{}
	}
	return &BitArray{bits: make([]uint32, (size+31)/32), size: size}
}

// Size returns the number of bits in the array.
func (ba *BitArray) Size() int {
	return ba.size
}

// SizeInBytes returns the number of bytes needed to hold the bits.
func (ba *BitArray) SizeInBytes() int {
	return (ba.size + 7) / 8
}

func (ba *BitArray) ensureCapacity(newSize int) {
	if newSize > len(ba.bits)*32 {
		grown := make([]uint32, (newSize+newSize/2+31)/32)
		copy(grown, ba.bits)
		ba.bits = grown
	}
}

// Get returns true if bit i is set.
func (ba *BitArray) Get(i int) bool {
	return ba.bits[i/32]&(1<<uint(i&0x1F)) != 0
}

// Set sets bit i.
func (ba *BitArray) Set(i int) {
	ba.bits[i/32] |= 1 << uint(i&0x1F)
}

// AppendBit appends a single bit.
func (ba *BitArray) AppendBit(bit bool) {
	ba.ensureCapacity(ba.size + 1)
	if bit {
		ba.Set(ba.size)
	}
	ba.size++
}

// AppendBits appends the least-significant numBits bits of value, most
// significant first.
func (ba *BitArray) AppendBits(value uint32, numBits int) {
	if numBits < 0 || numBits > 32 {
		panic("bitarray: numBits must be between 0 and 32")
	}
	for i := numBits - 1; i >= 0; i-- {
		ba.AppendBit(value&(1<<uint(i)) != 0)
	}
}

// Bytes packs the bits into bytes, most significant bit first. A trailing
// partial byte is padded with zero bits.
func (ba *BitArray) Bytes() []byte {
	out := make([]byte, ba.SizeInBytes())
	for i := 0; i < ba.size; i++ {
		if ba.Get(i) {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// String returns the bits as '1' and '0' characters, grouped by byte.
func (ba *BitArray) String() string {
	var sb strings.Builder
	sb.Grow(ba.size + ba.size/8)
	for i := 0; i < ba.size; i++ {
		if i > 0 && i%8 == 0 {
			sb.WriteByte(' ')
		}
		if ba.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
