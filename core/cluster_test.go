package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankerConfig() *contract.Config {
	return &contract.Config{
		ThresholdMM:      contract.DefaultThresholdMM,
		TopN:             contract.DefaultTopN,
		MinDuration:      2,
		SimilarityCutoff: contract.DefaultSimilarityCutoff,
		Workers:          2,
		AlignWeights:     schema.DefaultAlignWeights(),
		ScoreWeights:     schema.DefaultScoreWeights(),
	}
}

// adInstance builds an approach-diverge instance with the given run lengths.
func adInstance(pair schema.JointPair, start, approach, diverge int, peak float64) schema.MotifInstance {
	return schema.MotifInstance{
		Pair:       pair,
		Shape:      schema.ApproachDiverge,
		StartFrame: start,
		EndFrame:   start + approach + diverge,
		Runs: []schema.Run{
			{Symbol: schema.Approach, Start: start - 1, Length: approach},
			{Symbol: schema.Diverge, Start: start - 1 + approach, Length: diverge},
		},
		PeakDeltaMM: peak,
	}
}

func TestRankMotifsEmpty(t *testing.T) {
	clusters, total := RankMotifs(nil, rankerConfig())
	assert.Nil(t, clusters)
	assert.Zero(t, total)
}

func TestRankMotifsClustersSimilarShapes(t *testing.T) {
	hands := schema.NewJointPair("l_hand", "r_hand")
	feet := schema.NewJointPair("l_foot", "pelvis")

	candidates := []schema.MotifInstance{
		// Three near-identical hand episodes.
		adInstance(hands, 100, 30, 30, 8),
		adInstance(hands, 400, 29, 31, 7),
		adInstance(hands, 700, 30, 29, 9),
		// One foot episode with a very different shape.
		adInstance(feet, 50, 4, 90, 3),
	}

	clusters, total := RankMotifs(candidates, rankerConfig())
	require.Len(t, clusters, 2)
	assert.Equal(t, 2, total)

	var handCluster, footCluster *schema.MotifCluster
	for i := range clusters {
		switch clusters[i].Representative.Pair {
		case hands:
			handCluster = &clusters[i]
		case feet:
			footCluster = &clusters[i]
		}
	}
	require.NotNil(t, handCluster)
	require.NotNil(t, footCluster)

	assert.Equal(t, 3, handCluster.MemberCount())
	assert.Equal(t, 1, footCluster.MemberCount())
	assert.Equal(t, 1.0, footCluster.AvgSimilarity)
	assert.Greater(t, handCluster.AvgSimilarity, rankerConfig().SimilarityCutoff)

	// The representative is the longest member.
	for _, m := range handCluster.Members {
		assert.GreaterOrEqual(t,
			handCluster.Representative.DurationFrames(), m.DurationFrames())
	}
}

func TestRankMotifsDisjointMembership(t *testing.T) {
	pair := schema.NewJointPair("l_hand", "head")
	candidates := []schema.MotifInstance{
		adInstance(pair, 10, 20, 20, 5),
		adInstance(pair, 100, 20, 20, 5),
		adInstance(pair, 200, 5, 60, 5),
		adInstance(pair, 300, 5, 60, 5),
	}

	clusters, _ := RankMotifs(candidates, rankerConfig())

	seen := make(map[int]bool)
	var members int
	for _, c := range clusters {
		for _, m := range c.Members {
			assert.False(t, seen[m.StartFrame], "instance at %d in two clusters", m.StartFrame)
			seen[m.StartFrame] = true
			members++
		}
	}
	assert.Equal(t, len(candidates), members)
}

func TestRankMotifsRankedDescending(t *testing.T) {
	pair := schema.NewJointPair("r_hand", "head")
	var candidates []schema.MotifInstance
	// Shapes distinct enough to land in separate clusters.
	for i := range 5 {
		candidates = append(candidates,
			adInstance(pair, 10+i*500, 10+i*40, 10, float64(2+i*10)))
	}

	clusters, _ := RankMotifs(candidates, rankerConfig())
	for i := 1; i < len(clusters); i++ {
		assert.GreaterOrEqual(t, clusters[i-1].Score, clusters[i].Score)
	}
	for _, c := range clusters {
		assert.NotEmpty(t, c.Label)
		assert.Contains(t, c.Breakdown, schema.BreakdownRecurrence)
		assert.Contains(t, c.Breakdown, schema.BreakdownSalience)
		assert.Contains(t, c.Breakdown, schema.BreakdownAmplitude)
	}
}

func TestRankMotifsTopNTruncation(t *testing.T) {
	pair := schema.NewJointPair("l_hand", "l_foot")
	var candidates []schema.MotifInstance
	for i := range 8 {
		candidates = append(candidates,
			adInstance(pair, 10+i*400, 2+i*25, 120-i*12, 5))
	}

	cfg := rankerConfig()
	cfg.TopN = 3
	// A near-exact cutoff keeps every distinct shape in its own cluster.
	cfg.SimilarityCutoff = 0.99
	clusters, total := RankMotifs(candidates, cfg)
	assert.Len(t, clusters, 3)
	assert.Equal(t, 8, total, "truncation keeps the pre-cut count")
}

func TestRankMotifsDeterministic(t *testing.T) {
	pair := schema.NewJointPair("head", "pelvis")
	candidates := []schema.MotifInstance{
		adInstance(pair, 500, 25, 25, 6),
		adInstance(pair, 100, 25, 25, 6),
		adInstance(pair, 300, 3, 80, 12),
	}

	first, firstTotal := RankMotifs(candidates, rankerConfig())
	second, secondTotal := RankMotifs(candidates, rankerConfig())
	assert.Equal(t, first, second)
	assert.Equal(t, firstTotal, secondTotal)
}

// TestComputeScoreRepeatable pins the reproducibility contract at the bit
// level: recomputing the score of the same cluster must never drift, no
// matter how the three weighted components happen to be stored.
func TestComputeScoreRepeatable(t *testing.T) {
	weights := schema.DefaultScoreWeights()
	pair := schema.NewJointPair("l_hand", "head")

	rng := rand.New(rand.NewSource(7))
	for trial := range 50 {
		inst := adInstance(pair,
			10+rng.Intn(1000),
			1+rng.Intn(300),
			1+rng.Intn(300),
			rng.Float64()*60)
		cluster := schema.MotifCluster{Representative: inst}
		for range 1 + rng.Intn(10) {
			cluster.Members = append(cluster.Members, inst)
		}

		baseline := computeScore(&cluster, weights)
		for iter := range 100 {
			got := computeScore(&cluster, weights)
			require.Equal(t, math.Float64bits(baseline), math.Float64bits(got),
				"trial %d iter %d: %v != %v", trial, iter, baseline, got)
		}
	}
}

func TestComputeScoreBounds(t *testing.T) {
	weights := schema.DefaultScoreWeights()

	t.Run("tiny singleton scores low", func(t *testing.T) {
		inst := adInstance(schema.NewJointPair("l_hand", "head"), 10, 2, 2, 0.5)
		cluster := schema.MotifCluster{Representative: inst, Members: []schema.MotifInstance{inst}}
		score := computeScore(&cluster, weights)
		assert.Greater(t, score, 0.0)
		assert.Less(t, score, 20.0)
	})

	t.Run("saturated components cap at 100", func(t *testing.T) {
		inst := adInstance(schema.NewJointPair("l_hand", "head"), 10, 500, 500, 500)
		cluster := schema.MotifCluster{Representative: inst}
		for range 20 {
			cluster.Members = append(cluster.Members, inst)
		}
		score := computeScore(&cluster, weights)
		assert.InDelta(t, 100.0, score, 1e-9)
	})
}
