package core

import (
	"sort"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
)

// RankMotifs clusters the candidate instances from all pairs by alignment
// similarity, scores and labels each cluster, and returns the ranked top-N
// plus the total cluster count before truncation.
//
// Clustering is greedy and deterministic: candidates are ordered by duration
// (longest first, ties by start frame then pair ID), each unassigned candidate
// seeds a cluster and absorbs every later unassigned candidate whose alignment
// similarity reaches the cutoff. The seed is the cluster's representative, so
// every cluster is represented by its longest member. Membership is disjoint.
func RankMotifs(candidates []schema.MotifInstance, cfg *contract.Config) ([]schema.MotifCluster, int) {
	if len(candidates) == 0 {
		return nil, 0
	}

	ordered := make([]schema.MotifInstance, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.DurationFrames() != b.DurationFrames() {
			return a.DurationFrames() > b.DurationFrames()
		}
		if a.StartFrame != b.StartFrame {
			return a.StartFrame < b.StartFrame
		}
		return a.Pair.ID() < b.Pair.ID()
	})

	assigned := make([]bool, len(ordered))
	var clusters []schema.MotifCluster
	for i := range ordered {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		seed := ordered[i]
		cluster := schema.MotifCluster{
			Shape:          seed.Shape,
			Representative: seed,
			Members:        []schema.MotifInstance{seed},
		}

		var simSum float64
		for j := i + 1; j < len(ordered); j++ {
			if assigned[j] {
				continue
			}
			sim := AlignSimilarity(seed.Runs, ordered[j].Runs, cfg.AlignWeights)
			if sim < cfg.SimilarityCutoff {
				continue
			}
			assigned[j] = true
			cluster.Members = append(cluster.Members, ordered[j])
			simSum += sim
		}

		if n := len(cluster.Members); n > 1 {
			cluster.AvgSimilarity = simSum / float64(n-1)
		} else {
			cluster.AvgSimilarity = 1.0
		}
		cluster.Label = LabelFor(seed)
		cluster.Score = computeScore(&cluster, cfg.ScoreWeights)
		clusters = append(clusters, cluster)
	}

	total := len(clusters)
	rankClusters(clusters)
	if len(clusters) > cfg.TopN {
		clusters = clusters[:cfg.TopN]
	}
	return clusters, total
}

// rankClusters sorts clusters by score in descending order. Ties break on the
// representative's start frame (earliest first), then pair ID, keeping the
// output reproducible for identical inputs.
func rankClusters(clusters []schema.MotifCluster) {
	sort.SliceStable(clusters, func(i, j int) bool {
		a, b := clusters[i], clusters[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Representative.StartFrame != b.Representative.StartFrame {
			return a.Representative.StartFrame < b.Representative.StartFrame
		}
		return a.Representative.Pair.ID() < b.Representative.Pair.ID()
	})
}
