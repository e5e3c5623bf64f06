package qrfix

import "fmt"

const (
	// MinVersion is the smallest QR version.
	MinVersion = 1
	// MaxVersion is the largest QR version.
	MaxVersion = 40
)

// SizeToVersion returns the version of a QR matrix with the given dimension.
func SizeToVersion(dimension int) (int, error) {
	if dimension < 17 || (dimension-17)%4 != 0 {
		return 0, fmt.Errorf("%w: N = 4*version+17 required, got N=%d", ErrInvalidSize, dimension)
	}
	version := (dimension - 17) / 4
	if version < MinVersion || version > MaxVersion {
		return 0, fmt.Errorf("%w: unknown version %d", ErrInvalidSize, version)
	}
	return version, nil
}

// VersionToSize returns the dimension of a QR matrix of the given version.
func VersionToSize(version int) int {
	return 4*version + 17
}
