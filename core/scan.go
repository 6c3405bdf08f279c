package core

import (
	"math"

	"github.com/movelab/motifscan/schema"
)

// maxCrossBridge is the longest Cross run allowed to sit between an approach
// run and a diverge run without breaking their adjacency. Reversals longer
// than this are genuine direction churn, not a bridge.
const maxCrossBridge = 2

// EncodeRuns segments a symbol sequence into maximal runs of identical
// symbols (run-length encoding).
func EncodeRuns(symbols []schema.Symbol) []schema.Run {
	if len(symbols) == 0 {
		return nil
	}
	var runs []schema.Run
	current := schema.Run{Symbol: symbols[0], Start: 0, Length: 1}
	for i := 1; i < len(symbols); i++ {
		if symbols[i] == current.Symbol {
			current.Length++
			continue
		}
		runs = append(runs, current)
		current = schema.Run{Symbol: symbols[i], Start: i, Length: 1}
	}
	return append(runs, current)
}

// ScanMotifs emits candidate motif instances for one pair: every approach run
// adjacent to a diverge run (directly, or bridged by a short Cross run), in
// either order. Instances shorter than minDuration frames are discarded as
// noise. Candidates from different pairs are never merged here.
func ScanMotifs(pair schema.JointPair, symbols []schema.Symbol, distances []float64, minDuration int) []schema.MotifInstance {
	runs := EncodeRuns(symbols)
	var instances []schema.MotifInstance

	for i := 0; i < len(runs)-1; i++ {
		first := runs[i]
		if first.Symbol != schema.Approach && first.Symbol != schema.Diverge {
			continue
		}

		j := i + 1
		if runs[j].Symbol == schema.Cross && runs[j].Length <= maxCrossBridge {
			j++
			if j >= len(runs) {
				break
			}
		}
		second := runs[j]
		if !oppositeSymbols(first.Symbol, second.Symbol) {
			continue
		}

		shape := schema.ApproachDiverge
		if first.Symbol == schema.Diverge {
			shape = schema.DivergeApproach
		}

		span := make([]schema.Run, j-i+1)
		copy(span, runs[i:j+1])

		// Symbol index k describes the transition into frame k+1, so the
		// instance covers frames [first.Start+1, second.End()+1).
		startSym := first.Start
		endSym := second.End()
		inst := schema.MotifInstance{
			Pair:        pair,
			Shape:       shape,
			StartFrame:  startSym + 1,
			EndFrame:    endSym + 1,
			Runs:        span,
			NetDeltaMM:  distances[endSym] - distances[startSym],
			PeakDeltaMM: peakDelta(distances, startSym, endSym),
		}
		if inst.DurationFrames() < minDuration {
			continue
		}
		instances = append(instances, inst)
	}
	return instances
}

// oppositeSymbols reports whether two symbols form an approach/diverge pairing.
func oppositeSymbols(a, b schema.Symbol) bool {
	return (a == schema.Approach && b == schema.Diverge) ||
		(a == schema.Diverge && b == schema.Approach)
}

// peakDelta returns the largest single-frame |distance delta| across the
// symbol index range [startSym, endSym).
func peakDelta(distances []float64, startSym, endSym int) float64 {
	var peak float64
	for k := startSym; k < endSym; k++ {
		if d := math.Abs(distances[k+1] - distances[k]); d > peak {
			peak = d
		}
	}
	return peak
}
