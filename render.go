package qrfix

import (
	"image"
	"image/color"
)

// DefaultRenderScale is the number of pixels per module used by the renderer.
const DefaultRenderScale = 8

// MatrixToImage renders each module as a scale x scale block: Black modules
// black, White modules white and Unknown modules as a one-pixel checkerboard.
func MatrixToImage(m *Matrix, scale int) *image.Gray {
	if scale < 1 {
		scale = DefaultRenderScale
	}
	size := m.Dimension() * scale
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var v uint8
			switch m.Get(y/scale, x/scale) {
			case Black:
				v = 0
			case White:
				v = 255
			default:
				if (x+y)%2 == 1 {
					v = 255
				}
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}
