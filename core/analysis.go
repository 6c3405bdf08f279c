package core

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
	"gonum.org/v1/gonum/stat"
)

// AnalyzePair derives the QTC symbol sequence for one joint pair and scans it
// for candidate motif instances. The capture is read-only; all outputs are
// freshly allocated.
func AnalyzePair(capture *schema.Capture, pair schema.JointPair, cfg *contract.Config) (schema.PairAnalysis, error) {
	trajA := capture.Trajectory(pair.A)
	if trajA == nil {
		return schema.PairAnalysis{}, fmt.Errorf("%w: joint %q not captured", schema.ErrInvalidTrajectory, pair.A)
	}
	trajB := capture.Trajectory(pair.B)
	if trajB == nil {
		return schema.PairAnalysis{}, fmt.Errorf("%w: joint %q not captured", schema.ErrInvalidTrajectory, pair.B)
	}

	symbols, distances, err := DeriveSymbols(trajA, trajB, cfg.ThresholdFor(pair))
	if err != nil {
		return schema.PairAnalysis{}, err
	}

	absDeltas := make([]float64, len(distances)-1)
	for i := 1; i < len(distances); i++ {
		absDeltas[i-1] = math.Abs(distances[i] - distances[i-1])
	}

	return schema.PairAnalysis{
		Pair:         pair,
		Symbols:      symbols,
		Distances:    distances,
		Distribution: StateDistribution(symbols),
		MeanAbsDelta: stat.Mean(absDeltas, nil),
		StdAbsDelta:  stat.StdDev(absDeltas, nil),
		Candidates:   ScanMotifs(pair, symbols, distances, cfg.MinDuration),
	}, nil
}

// Run performs the full batch analysis: per-pair QTC derivation and motif
// scanning on a worker pool, then cross-pair clustering and ranking.
//
// Per-pair failures are isolated: a rejected trajectory pair lands in
// Failures while the remaining pairs are analyzed and ranked normally.
// The ranker is the single join point; it starts only after every pair's
// candidate set is in.
func Run(ctx context.Context, capture *schema.Capture, cfg *contract.Config) (*schema.AnalysisResult, error) {
	if capture == nil || len(capture.Joints) == 0 {
		return nil, fmt.Errorf("%w: capture has no joints", schema.ErrInvalidTrajectory)
	}

	type indexed struct {
		idx      int
		analysis schema.PairAnalysis
		err      error
	}

	pairCh := make(chan int, len(cfg.Pairs))
	resultCh := make(chan indexed, len(cfg.Pairs))
	var wg sync.WaitGroup

	workers := min(cfg.Workers, len(cfg.Pairs))
	for range workers {
		wg.Go(func() {
			for idx := range pairCh {
				if ctx.Err() != nil {
					resultCh <- indexed{idx: idx, err: ctx.Err()}
					continue
				}
				analysis, err := AnalyzePair(capture, cfg.Pairs[idx], cfg)
				resultCh <- indexed{idx: idx, analysis: analysis, err: err}
			}
		})
	}

	for idx := range cfg.Pairs {
		pairCh <- idx
	}
	close(pairCh)
	wg.Wait()
	close(resultCh)

	// Re-order worker results into the configured pair order so the output
	// is reproducible regardless of scheduling.
	analyses := make([]*schema.PairAnalysis, len(cfg.Pairs))
	errs := make([]error, len(cfg.Pairs))
	for r := range resultCh {
		if r.err != nil {
			errs[r.idx] = r.err
			continue
		}
		a := r.analysis
		analyses[r.idx] = &a
	}

	result := &schema.AnalysisResult{
		FPS:         capture.FPS,
		TotalFrames: capture.FrameCount,
	}
	var candidates []schema.MotifInstance
	for idx, pair := range cfg.Pairs {
		if errs[idx] != nil {
			result.Failures = append(result.Failures, schema.PairFailure{
				Pair: pair,
				Err:  errs[idx].Error(),
			})
			continue
		}
		result.Pairs = append(result.Pairs, *analyses[idx])
		candidates = append(candidates, analyses[idx].Candidates...)
	}

	result.Clusters, result.TotalDetected = RankMotifs(candidates, cfg)
	return result, nil
}
