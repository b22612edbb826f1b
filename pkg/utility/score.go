package utility

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned by Kernel when it is called with absent
// input or a length that the inputs cannot satisfy.
var ErrInvalidArgument = errors.New("utility: invalid argument")

// Score returns the weighted mean of factors.
// It returns 0 when the slices are empty, differ in length, or when the
// weights sum to exactly 0.
func Score(factors, weights []float32) float32 {
	if len(factors) == 0 || len(factors) != len(weights) {
		return 0
	}
	return weightedMean(factors, weights, len(factors))
}

// Kernel is the strict form of Score used at the native boundary.
// Both slices must be present and hold at least length entries, and length
// must be positive; anything else is a caller bug and fails with
// ErrInvalidArgument.
func Kernel(factors, weights []float32, length int) (float32, error) {
	if factors == nil || weights == nil || length <= 0 {
		return 0, fmt.Errorf("%w: factors and weights must be non-nil with a positive length", ErrInvalidArgument)
	}
	if length > len(factors) || length > len(weights) {
		return 0, fmt.Errorf("%w: length %d exceeds input (factors=%d, weights=%d)",
			ErrInvalidArgument, length, len(factors), len(weights))
	}
	return weightedMean(factors, weights, length), nil
}

func weightedMean(factors, weights []float32, n int) float32 {
	var sum, total float32
	for i := 0; i < n; i++ {
		sum += factors[i] * weights[i]
		total += weights[i]
	}
	if total == 0 {
		return 0
	}
	return sum / total
}
