// Package binarizer samples luminance data into tri-state matrices.
package binarizer

import (
	"errors"
	"fmt"

	"github.com/ericlevine/qrfix"
)

// Default thresholds on the 0-255 luminance scale. A block darker than the
// black threshold is Black, one lighter than the white threshold is White
// and anything in between is Unknown.
const (
	DefaultBlackThreshold = 120
	DefaultWhiteThreshold = 180
)

const luminanceBuckets = 256

// ErrImageTooSmall is returned when the image has fewer pixels than modules
// along an axis.
var ErrImageTooSmall = errors.New("binarizer: image too small")

// Statistic selects how the pixels of one block are summarized.
type Statistic int

const (
	StatisticMedian Statistic = iota
	StatisticAverage
)

func (s Statistic) String() string {
	switch s {
	case StatisticMedian:
		return "median"
	case StatisticAverage:
		return "average"
	}
	return fmt.Sprintf("statistic(%d)", int(s))
}

// ParseStatistic parses a statistic name as printed by String.
func ParseStatistic(name string) (Statistic, error) {
	switch name {
	case "", "median":
		return StatisticMedian, nil
	case "average", "mean":
		return StatisticAverage, nil
	}
	return 0, fmt.Errorf("binarizer: unknown statistic %q", name)
}

// BlockSampler divides a margin-free image into an N x N grid and maps each
// block to a cell by thresholding one statistic of its luminance.
type BlockSampler struct {
	source         qrfix.LuminanceSource
	Statistic      Statistic
	BlackThreshold int
	WhiteThreshold int
	buckets        [luminanceBuckets]int
}

// NewBlockSampler creates a BlockSampler with the median statistic and the
// default thresholds.
func NewBlockSampler(source qrfix.LuminanceSource) *BlockSampler {
	return &BlockSampler{
		source:         source,
		Statistic:      StatisticMedian,
		BlackThreshold: DefaultBlackThreshold,
		WhiteThreshold: DefaultWhiteThreshold,
	}
}

// Sample returns the dimension x dimension matrix read from the image.
func (b *BlockSampler) Sample(dimension int) (*qrfix.Matrix, error) {
	m, err := qrfix.NewMatrix(dimension)
	if err != nil {
		return nil, err
	}
	if b.BlackThreshold > b.WhiteThreshold {
		return nil, fmt.Errorf("binarizer: black threshold %d above white threshold %d",
			b.BlackThreshold, b.WhiteThreshold)
	}
	width, height := b.source.Width(), b.source.Height()
	if width < dimension || height < dimension {
		return nil, fmt.Errorf("%w: %dx%d pixels for %d modules", ErrImageTooSmall, width, height, dimension)
	}

	luminances := b.source.Matrix()
	for row := 0; row < dimension; row++ {
		top, bottom := row*height/dimension, (row+1)*height/dimension
		for col := 0; col < dimension; col++ {
			left, right := col*width/dimension, (col+1)*width/dimension
			m.Set(row, col, b.classify(b.blockStatistic(luminances, width, left, top, right, bottom)))
		}
	}
	return m, nil
}

func (b *BlockSampler) classify(value float64) qrfix.Cell {
	switch {
	case value < float64(b.BlackThreshold):
		return qrfix.Black
	case value > float64(b.WhiteThreshold):
		return qrfix.White
	}
	return qrfix.Unknown
}

// blockStatistic summarizes the pixels in [left, right) x [top, bottom).
func (b *BlockSampler) blockStatistic(luminances []byte, width, left, top, right, bottom int) float64 {
	for i := range b.buckets {
		b.buckets[i] = 0
	}
	count, sum := 0, 0
	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			v := int(luminances[y*width+x])
			b.buckets[v]++
			sum += v
			count++
		}
	}
	if b.Statistic == StatisticAverage {
		return float64(sum) / float64(count)
	}
	return medianOfBuckets(b.buckets[:], count)
}

// medianOfBuckets returns the median of count samples held in a histogram.
// An even count averages the two middle samples.
func medianOfBuckets(buckets []int, count int) float64 {
	lowRank, highRank := (count-1)/2, count/2
	low, high := -1, -1
	seen := 0
	for v, n := range buckets {
		if n == 0 {
			continue
		}
		seen += n
		if low < 0 && seen > lowRank {
			low = v
		}
		if seen > highRank {
			high = v
			break
		}
	}
	return float64(low+high) / 2
}
