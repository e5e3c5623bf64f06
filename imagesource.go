package qrfix

import (
	"image"
	"image/color"
)

// ImageLuminanceSource is a LuminanceSource backed by a decoded image.
type ImageLuminanceSource struct {
	pix    []byte
	width  int
	height int
}

// NewImageLuminanceSource converts img to luminance samples. Greyscale
// images are copied as is; other images use
// (306*R + 601*G + 117*B + 0x200) >> 10 over 8-bit components, and fully
// transparent pixels read as white.
func NewImageLuminanceSource(img image.Image) *ImageLuminanceSource {
	if g, ok := img.(*image.Gray); ok {
		return NewGrayImageLuminanceSource(g)
	}
	b := img.Bounds()
	s := newImageLuminanceSource(b.Dx(), b.Dy())
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.pix[y*s.width+x] = luma(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return s
}

// NewGrayImageLuminanceSource copies the pixels of img.
func NewGrayImageLuminanceSource(img *image.Gray) *ImageLuminanceSource {
	b := img.Bounds()
	s := newImageLuminanceSource(b.Dx(), b.Dy())
	for y := 0; y < s.height; y++ {
		start := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(s.pix[y*s.width:(y+1)*s.width], img.Pix[start:start+s.width])
	}
	return s
}

func newImageLuminanceSource(width, height int) *ImageLuminanceSource {
	return &ImageLuminanceSource{pix: make([]byte, width*height), width: width, height: height}
}

func luma(c color.Color) byte {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return 0xFF
	}
	r, g, b = r>>8, g>>8, b>>8
	return byte((306*r + 601*g + 117*b + 0x200) >> 10)
}

func (s *ImageLuminanceSource) Row(y int, row []byte) []byte {
	if y < 0 || y >= s.height {
		return nil
	}
	if len(row) < s.width {
		row = make([]byte, s.width)
	}
	copy(row, s.pix[y*s.width:(y+1)*s.width])
	return row
}

func (s *ImageLuminanceSource) Matrix() []byte {
	return append([]byte(nil), s.pix...)
}

func (s *ImageLuminanceSource) Width() int  { return s.width }
func (s *ImageLuminanceSource) Height() int { return s.height }
