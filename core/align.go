package core

import (
	"math"

	"github.com/movelab/motifscan/schema"
)

// AlignSimilarity scores how alike two motif instances' run-length shapes are,
// on [0, 1] with 1 for identical shapes. It runs an edit-distance alignment
// over the run sequences: substituting a run of a different symbol costs
// SymbolMismatch, matched runs pay LengthMismatch times their relative length
// difference, and inserting or deleting a run costs Gap. The accumulated cost
// is normalized by the longer run count, then mapped to a similarity.
//
// The weights are a tunable parameter of the ranker, not a fixed constant.
func AlignSimilarity(a, b []schema.Run, w schema.AlignWeights) float64 {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0
	}

	// (n+1) x (m+1) cost matrix; row/column 0 are pure gap chains.
	dp := make([][]float64, n+1)
	for i := range dp {
		dp[i] = make([]float64, m+1)
	}
	for i := 1; i <= n; i++ {
		dp[i][0] = float64(i) * w.Gap
	}
	for j := 1; j <= m; j++ {
		dp[0][j] = float64(j) * w.Gap
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			match := dp[i-1][j-1] + runCost(a[i-1], b[j-1], w)
			dp[i][j] = min3(match, dp[i-1][j]+w.Gap, dp[i][j-1]+w.Gap)
		}
	}

	norm := dp[n][m] / float64(max(n, m))
	return 1.0 / (1.0 + norm)
}

// runCost is the cost of aligning two runs against each other.
func runCost(a, b schema.Run, w schema.AlignWeights) float64 {
	var cost float64
	if a.Symbol != b.Symbol {
		cost += w.SymbolMismatch
	}
	la, lb := float64(a.Length), float64(b.Length)
	cost += w.LengthMismatch * math.Abs(la-lb) / math.Max(la, lb)
	return cost
}

func min3(a, b, c float64) float64 {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}
