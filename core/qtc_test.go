package core

import (
	"math"
	"testing"

	"github.com/movelab/motifscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trajsFromDistances builds a trajectory pair whose per-frame distance equals
// the given series: one joint pinned at the origin, the other on the X axis.
func trajsFromDistances(distances []float64) ([]schema.Vec3, []schema.Vec3) {
	a := make([]schema.Vec3, len(distances))
	b := make([]schema.Vec3, len(distances))
	for i, d := range distances {
		b[i] = schema.Vec3{X: d}
	}
	return a, b
}

func countNonStationary(symbols []schema.Symbol) int {
	var n int
	for _, s := range symbols {
		if s != schema.Stationary {
			n++
		}
	}
	return n
}

// TestDeriveSymbolsClassification pins the per-frame classification rules,
// including the precedence between the stationary check and the cross
// override: a reversal whose magnitude is below the threshold stays
// stationary.
func TestDeriveSymbolsClassification(t *testing.T) {
	tests := []struct {
		name      string
		distances []float64
		threshold float64
		expected  []schema.Symbol
	}{
		{
			name:      "static pair is entirely stationary",
			distances: []float64{100, 100, 100, 100},
			threshold: 2.5,
			expected:  []schema.Symbol{schema.Stationary, schema.Stationary, schema.Stationary},
		},
		{
			name:      "constant closing speed is entirely approach",
			distances: []float64{100, 95, 90, 85, 80},
			threshold: 2.5,
			expected:  []schema.Symbol{schema.Approach, schema.Approach, schema.Approach, schema.Approach},
		},
		{
			name:      "constant opening speed is entirely diverge",
			distances: []float64{80, 85, 90, 95},
			threshold: 2.5,
			expected:  []schema.Symbol{schema.Diverge, schema.Diverge, schema.Diverge},
		},
		{
			// The documented numeric edge case: deltas [-3, -3, +2, +3].
			// The +2 reversal is below the 2.5mm threshold, so the
			// stationary rule wins and no cross is emitted; the following
			// +3 frame follows a stationary frame, so it diverges.
			name:      "sub-threshold reversal is stationary not cross",
			distances: []float64{100, 97, 94, 96, 99},
			threshold: 2.5,
			expected: []schema.Symbol{
				schema.Approach, schema.Approach, schema.Stationary, schema.Diverge,
			},
		},
		{
			name:      "over-threshold reversal is cross",
			distances: []float64{100, 97, 94, 97, 100},
			threshold: 2.5,
			expected: []schema.Symbol{
				schema.Approach, schema.Approach, schema.Cross, schema.Diverge,
			},
		},
		{
			name:      "double reversal crosses twice",
			distances: []float64{100, 95, 100, 95, 100},
			threshold: 2.5,
			expected: []schema.Symbol{
				schema.Approach, schema.Cross, schema.Cross, schema.Cross,
			},
		},
		{
			name:      "stationary frame breaks the reversal window",
			distances: []float64{100, 95, 95, 100},
			threshold: 2.5,
			expected: []schema.Symbol{
				schema.Approach, schema.Stationary, schema.Diverge,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := trajsFromDistances(tt.distances)
			symbols, distances, err := DeriveSymbols(a, b, tt.threshold)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, symbols)
			assert.Len(t, symbols, len(tt.distances)-1)
			assert.Len(t, distances, len(tt.distances))
		})
	}
}

// TestDeriveSymbolsIdempotent verifies that re-running on identical input
// yields a bit-identical sequence.
func TestDeriveSymbolsIdempotent(t *testing.T) {
	a, b := trajsFromDistances([]float64{100, 97, 94, 96, 99, 95, 90, 93})
	first, _, err := DeriveSymbols(a, b, 2.5)
	require.NoError(t, err)
	second, _, err := DeriveSymbols(a, b, 2.5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestDeriveSymbolsThresholdMonotonic verifies that raising the threshold
// never increases the count of non-stationary symbols.
func TestDeriveSymbolsThresholdMonotonic(t *testing.T) {
	distances := []float64{100, 98, 94, 95, 99, 99.5, 94, 90, 91, 97}
	a, b := trajsFromDistances(distances)

	prev := len(distances) // upper bound
	for _, threshold := range []float64{0.5, 1.0, 2.5, 4.0, 6.0, 10.0} {
		symbols, _, err := DeriveSymbols(a, b, threshold)
		require.NoError(t, err)
		moving := countNonStationary(symbols)
		assert.LessOrEqual(t, moving, prev, "threshold %v", threshold)
		prev = moving
	}
}

// TestDeriveSymbolsCrossPlacement verifies that cross only appears at a
// direction reversal between adjacent frames and never as the first symbol.
func TestDeriveSymbolsCrossPlacement(t *testing.T) {
	distances := []float64{100, 95, 100, 95, 95.5, 100, 95}
	a, b := trajsFromDistances(distances)
	symbols, _, err := DeriveSymbols(a, b, 2.5)
	require.NoError(t, err)

	assert.NotEqual(t, schema.Cross, symbols[0], "first symbol can never be cross")
	for i := 1; i < len(symbols); i++ {
		if symbols[i] != schema.Cross {
			continue
		}
		prev := symbols[i-1]
		assert.NotEqual(t, schema.Stationary, prev,
			"cross at %d must follow a moving frame", i)
	}
}

func TestDeriveSymbolsRejections(t *testing.T) {
	t.Run("mismatched lengths", func(t *testing.T) {
		a, _ := trajsFromDistances([]float64{1, 2, 3})
		_, b := trajsFromDistances([]float64{1, 2})
		_, _, err := DeriveSymbols(a, b, 2.5)
		assert.ErrorIs(t, err, schema.ErrInvalidTrajectory)
	})

	t.Run("too few frames", func(t *testing.T) {
		a, b := trajsFromDistances([]float64{1})
		_, _, err := DeriveSymbols(a, b, 2.5)
		assert.ErrorIs(t, err, schema.ErrInvalidTrajectory)
	})

	t.Run("non-finite position", func(t *testing.T) {
		a, b := trajsFromDistances([]float64{1, 2, 3})
		b[1].Y = math.NaN()
		_, _, err := DeriveSymbols(a, b, 2.5)
		assert.ErrorIs(t, err, schema.ErrInvalidTrajectory)
	})
}

func TestStateDistribution(t *testing.T) {
	symbols := []schema.Symbol{
		schema.Approach, schema.Approach, schema.Cross, schema.Diverge,
	}
	dist := StateDistribution(symbols)
	assert.InDelta(t, 0.5, dist.Approach, 1e-9)
	assert.InDelta(t, 0.25, dist.Diverge, 1e-9)
	assert.InDelta(t, 0.25, dist.Cross, 1e-9)
	assert.InDelta(t, 0.0, dist.Stationary, 1e-9)

	assert.Equal(t, schema.Distribution{}, StateDistribution(nil))
}
