package emath

// Some summary statistics over plain float slices. None of them modify their input.

import(
	"errors"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrEmpty = errors.New("emath: no values")

// Median returns the middle value of x; for an even number of values it is the
// mean of the two middle values.
func Median(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}

	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted) % 2 == 1 {
		return sorted[mid], nil
	}
	return stat.Mean(sorted[mid-1:mid+1], nil), nil
}

func Mean(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}
	return stat.Mean(x, nil), nil
}

func Min(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}
	return floats.Min(x), nil
}
