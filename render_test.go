package qrfix

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixToImage(t *testing.T) {
	m, err := NewMatrix(21)
	require.NoError(t, err)
	m.Fill(White)
	m.Set(0, 0, Black)
	m.Set(0, 1, Unknown)

	img := MatrixToImage(m, 4)
	require.Equal(t, 84, img.Bounds().Dx())
	require.Equal(t, 84, img.Bounds().Dy())

	assert.Equal(t, uint8(0), img.GrayAt(3, 3).Y)
	assert.Equal(t, uint8(255), img.GrayAt(8, 0).Y)
	// Unknown modules alternate pixel by pixel.
	assert.Equal(t, uint8(0), img.GrayAt(4, 0).Y)
	assert.Equal(t, uint8(255), img.GrayAt(5, 0).Y)
	assert.Equal(t, uint8(255), img.GrayAt(4, 1).Y)
	assert.Equal(t, uint8(0), img.GrayAt(5, 1).Y)

	assert.Equal(t, 21*DefaultRenderScale, MatrixToImage(m, 0).Bounds().Dx())
}

func TestImageLuminanceSource(t *testing.T) {
	m, err := NewMatrix(21)
	require.NoError(t, err)
	m.Fill(Black)
	m.Set(20, 20, White)
	img := MatrixToImage(m, 2)

	for _, src := range []LuminanceSource{NewImageLuminanceSource(img), NewGrayImageLuminanceSource(img)} {
		assert.Equal(t, 42, src.Width())
		assert.Equal(t, 42, src.Height())
		row := src.Row(41, nil)
		require.Len(t, row, 42)
		assert.Equal(t, byte(0), row[0])
		assert.Equal(t, byte(255), row[41])
		assert.Nil(t, src.Row(42, nil))
		assert.Len(t, src.Matrix(), 42*42)
	}
}

func TestImageLuminanceSourceColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(2, 0, color.NRGBA{})

	row := NewImageLuminanceSource(img).Row(0, make([]byte, 8))
	assert.Equal(t, []byte{76, 255, 255}, row[:3])
}

func TestGrayImageLuminanceSourceSubImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(2, 3, color.Gray{Y: 9})
	sub := img.SubImage(image.Rect(1, 2, 4, 4)).(*image.Gray)

	src := NewGrayImageLuminanceSource(sub)
	require.Equal(t, 3, src.Width())
	require.Equal(t, 2, src.Height())
	assert.Equal(t, byte(9), src.Matrix()[1*3+1])
}
