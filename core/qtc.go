// Package core implements the QTC state engine, the motif scanner and the
// sequence-alignment motif ranker.
package core

import (
	"fmt"
	"math"

	"github.com/movelab/motifscan/schema"
)

// DeriveSymbols converts two equal-length trajectories into a QTC symbol
// sequence of length N−1 plus the per-frame distance series of length N.
// Frame 0 contributes no symbol. Distances stay in the input unit
// (millimeters); any normalization for visualization happens downstream.
//
// Classification per frame i in [1, N): delta = d[i] − d[i−1].
// |delta| < threshold is Stationary. Otherwise the sign picks Approach or
// Diverge, overridden to Cross when the previous frame moved over the
// threshold in the opposite direction with no stationary frame between.
// The stationary check wins over the reversal check: a reversal whose own
// magnitude is below the threshold is Stationary, never Cross.
func DeriveSymbols(trajA, trajB []schema.Vec3, thresholdMM float64) ([]schema.Symbol, []float64, error) {
	if len(trajA) != len(trajB) {
		return nil, nil, fmt.Errorf("%w: trajectory lengths differ (%d vs %d)",
			schema.ErrInvalidTrajectory, len(trajA), len(trajB))
	}
	if len(trajA) < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 frames, got %d",
			schema.ErrInvalidTrajectory, len(trajA))
	}

	distances := make([]float64, len(trajA))
	for i := range trajA {
		if !trajA[i].IsFinite() || !trajB[i].IsFinite() {
			return nil, nil, fmt.Errorf("%w: non-finite position at frame %d",
				schema.ErrInvalidTrajectory, i)
		}
		distances[i] = trajA[i].Dist(trajB[i])
	}

	// Explicit fold over the distance sequence: prevSign carries the sign of
	// the previous frame's delta (0 when it was below threshold), so the
	// reversal lookback never reaches past one frame.
	symbols := make([]schema.Symbol, 0, len(trajA)-1)
	prevSign := 0
	for i := 1; i < len(distances); i++ {
		delta := distances[i] - distances[i-1]
		sym, sign := classifyDelta(delta, thresholdMM)
		if sign != 0 && prevSign == -sign {
			sym = schema.Cross
		}
		symbols = append(symbols, sym)
		prevSign = sign
	}
	return symbols, distances, nil
}

// classifyDelta maps one distance delta to its base symbol and direction sign.
// The sign is 0 for stationary frames, −1 for approach, +1 for diverge.
func classifyDelta(delta, threshold float64) (schema.Symbol, int) {
	switch {
	case math.Abs(delta) < threshold:
		return schema.Stationary, 0
	case delta < 0:
		return schema.Approach, -1
	default:
		return schema.Diverge, +1
	}
}

// StateDistribution returns the share of each QTC state in a symbol sequence.
func StateDistribution(symbols []schema.Symbol) schema.Distribution {
	if len(symbols) == 0 {
		return schema.Distribution{}
	}
	var dist schema.Distribution
	for _, s := range symbols {
		switch s {
		case schema.Approach:
			dist.Approach++
		case schema.Diverge:
			dist.Diverge++
		case schema.Cross:
			dist.Cross++
		default:
			dist.Stationary++
		}
	}
	total := float64(len(symbols))
	dist.Approach /= total
	dist.Diverge /= total
	dist.Stationary /= total
	dist.Cross /= total
	return dist
}
