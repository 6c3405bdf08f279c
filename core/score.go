package core

import (
	"github.com/movelab/motifscan/schema"
)

// Tunable maxima to normalize score components. Values beyond these saturate.
const (
	maxRecurrence = 12.0  // members beyond this saturate
	maxDuration   = 600.0 // frames; ~10 seconds at the reference 60fps
	maxAmplitude  = 50.0  // mm of single-frame distance change
)

// computeScore calculates a cluster's salience score (0-100) from its
// recurrence (membership count), the representative instance's duration, and
// its peak distance change. Weights come from the configuration so the
// composite can be tuned per deployment; the breakdown is saved on the
// cluster (scaled to percent contributions) for explain mode.
func computeScore(cluster *schema.MotifCluster, weights map[schema.BreakdownKey]float64) float64 {
	clamp01 := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}

	// --- Normalized components [0,1] ---
	nRecurrence := clamp01(float64(cluster.MemberCount()) / maxRecurrence)
	nSalience := clamp01(float64(cluster.Representative.DurationFrames()) / maxDuration)
	nAmplitude := clamp01(cluster.Representative.PeakDeltaMM / maxAmplitude)

	breakdown := map[schema.BreakdownKey]float64{
		schema.BreakdownRecurrence: weights[schema.BreakdownRecurrence] * nRecurrence,
		schema.BreakdownSalience:   weights[schema.BreakdownSalience] * nSalience,
		schema.BreakdownAmplitude:  weights[schema.BreakdownAmplitude] * nAmplitude,
	}

	// Sum in a fixed order; float addition is not associative, and map
	// iteration order would otherwise leak into the score bits.
	raw := breakdown[schema.BreakdownRecurrence] +
		breakdown[schema.BreakdownSalience] +
		breakdown[schema.BreakdownAmplitude]
	score := raw * 100.0

	if cluster.Breakdown == nil {
		cluster.Breakdown = make(map[schema.BreakdownKey]float64, len(breakdown))
	}
	for k, v := range breakdown {
		cluster.Breakdown[k] = v * 100.0
	}
	return score
}
