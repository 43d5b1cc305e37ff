package emath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{name: "single", in: []float64{4.2}, want: 4.2},
		{name: "odd", in: []float64{3, 1, 2}, want: 2},
		{name: "even averages middle pair", in: []float64{4, 1, 3, 2}, want: 2.5},
		{name: "duplicates", in: []float64{5, 5, 1, 5}, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Median(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestMedianLeavesInputAlone(t *testing.T) {
	in := []float64{3, 1, 2}
	_, err := Median(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestEmptyInput(t *testing.T) {
	_, err := Median(nil)
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = Mean([]float64{})
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = Min(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMeanAndMin(t *testing.T) {
	mean, err := Mean([]float64{1, 2, 3, 6})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, mean, 1e-12)

	min, err := Min([]float64{2.5, 1.5, 3})
	require.NoError(t, err)
	assert.Equal(t, 1.5, min)
}
