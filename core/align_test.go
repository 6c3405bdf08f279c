package core

import (
	"testing"

	"github.com/movelab/motifscan/schema"
	"github.com/stretchr/testify/assert"
)

func runs(parts ...schema.Run) []schema.Run {
	return parts
}

func TestAlignSimilarityIdentical(t *testing.T) {
	w := schema.DefaultAlignWeights()
	shape := runs(
		schema.Run{Symbol: schema.Approach, Start: 0, Length: 10},
		schema.Run{Symbol: schema.Diverge, Start: 10, Length: 8},
	)
	assert.InDelta(t, 1.0, AlignSimilarity(shape, shape, w), 1e-9)
}

func TestAlignSimilarityEmpty(t *testing.T) {
	w := schema.DefaultAlignWeights()
	shape := runs(schema.Run{Symbol: schema.Approach, Length: 5})
	assert.Zero(t, AlignSimilarity(nil, shape, w))
	assert.Zero(t, AlignSimilarity(shape, nil, w))
	assert.Zero(t, AlignSimilarity(nil, nil, w))
}

func TestAlignSimilaritySymmetric(t *testing.T) {
	w := schema.DefaultAlignWeights()
	a := runs(
		schema.Run{Symbol: schema.Approach, Length: 10},
		schema.Run{Symbol: schema.Cross, Length: 1},
		schema.Run{Symbol: schema.Diverge, Length: 6},
	)
	b := runs(
		schema.Run{Symbol: schema.Approach, Length: 7},
		schema.Run{Symbol: schema.Diverge, Length: 9},
	)
	assert.InDelta(t, AlignSimilarity(a, b, w), AlignSimilarity(b, a, w), 1e-12)
}

func TestAlignSimilarityPenalties(t *testing.T) {
	w := schema.DefaultAlignWeights()
	base := runs(
		schema.Run{Symbol: schema.Approach, Length: 10},
		schema.Run{Symbol: schema.Diverge, Length: 10},
	)

	tests := []struct {
		name  string
		other []schema.Run
	}{
		{
			name: "length drift",
			other: runs(
				schema.Run{Symbol: schema.Approach, Length: 8},
				schema.Run{Symbol: schema.Diverge, Length: 12},
			),
		},
		{
			name: "symbol mismatch",
			other: runs(
				schema.Run{Symbol: schema.Diverge, Length: 10},
				schema.Run{Symbol: schema.Approach, Length: 10},
			),
		},
		{
			name: "extra run pays a gap",
			other: runs(
				schema.Run{Symbol: schema.Approach, Length: 10},
				schema.Run{Symbol: schema.Cross, Length: 1},
				schema.Run{Symbol: schema.Diverge, Length: 10},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := AlignSimilarity(base, tt.other, w)
			assert.Greater(t, sim, 0.0)
			assert.Less(t, sim, 1.0)
		})
	}
}

// TestAlignSimilarityOrdering checks that a mild length drift scores closer to
// identity than a full symbol swap of the same shape.
func TestAlignSimilarityOrdering(t *testing.T) {
	w := schema.DefaultAlignWeights()
	base := runs(
		schema.Run{Symbol: schema.Approach, Length: 10},
		schema.Run{Symbol: schema.Diverge, Length: 10},
	)
	drifted := runs(
		schema.Run{Symbol: schema.Approach, Length: 9},
		schema.Run{Symbol: schema.Diverge, Length: 11},
	)
	swapped := runs(
		schema.Run{Symbol: schema.Diverge, Length: 10},
		schema.Run{Symbol: schema.Approach, Length: 10},
	)
	assert.Greater(t, AlignSimilarity(base, drifted, w), AlignSimilarity(base, swapped, w))
}

func TestAlignSimilarityCustomWeights(t *testing.T) {
	a := runs(schema.Run{Symbol: schema.Approach, Length: 10})
	b := runs(schema.Run{Symbol: schema.Diverge, Length: 10})

	// With the symbol penalty zeroed, these shapes look identical.
	free := schema.AlignWeights{SymbolMismatch: 0, LengthMismatch: 0.5, Gap: 1.0}
	assert.InDelta(t, 1.0, AlignSimilarity(a, b, free), 1e-9)

	harsh := schema.AlignWeights{SymbolMismatch: 5.0, LengthMismatch: 0.5, Gap: 1.0}
	assert.Less(t,
		AlignSimilarity(a, b, harsh),
		AlignSimilarity(a, b, schema.DefaultAlignWeights()))
}
