package assemble

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureCapture() *schema.Capture {
	head := make([]schema.Vec3, 8)
	hand := make([]schema.Vec3, 8)
	for i := range head {
		head[i] = schema.Vec3{X: 0, Y: 1700, Z: 0}
		hand[i] = schema.Vec3{X: float64(100 + i*10), Y: 900, Z: 50}
	}
	return &schema.Capture{
		FPS:        60,
		FrameCount: 8,
		Joints:     map[string][]schema.Vec3{"head": head, "l_hand": hand},
	}
}

func fixtureResult() *schema.AnalysisResult {
	pair := schema.NewJointPair("l_hand", "head")
	inst := schema.MotifInstance{
		Pair:       pair,
		Shape:      schema.ApproachDiverge,
		StartFrame: 1,
		EndFrame:   7,
	}
	return &schema.AnalysisResult{
		FPS:         60,
		TotalFrames: 8,
		Pairs: []schema.PairAnalysis{
			{
				Pair: pair,
				Symbols: []schema.Symbol{
					schema.Approach, schema.Approach, schema.Cross,
					schema.Diverge, schema.Diverge, schema.Stationary, schema.Stationary,
				},
				Distribution: schema.Distribution{Approach: 2.0 / 7, Diverge: 2.0 / 7, Stationary: 2.0 / 7, Cross: 1.0 / 7},
			},
		},
		Clusters: []schema.MotifCluster{
			{
				Label:          "Reaching Gesture",
				Shape:          schema.ApproachDiverge,
				Representative: inst,
				Members:        []schema.MotifInstance{inst, inst},
				Score:          62.5,
			},
		},
		TotalDetected: 1,
	}
}

func artifactConfig() *contract.Config {
	return &contract.Config{
		CapturePath: "/captures/ekombi_take1.csv",
		ThresholdMM: 2.5,
		SampleRate:  2,
	}
}

func TestBuildArtifact(t *testing.T) {
	art := Build(fixtureCapture(), fixtureResult(), artifactConfig())

	assert.Equal(t, "ekombi_take1.csv", art.Title)
	assert.Equal(t, 60.0, art.FPS)
	assert.Equal(t, 8, art.TotalFrames)
	assert.Equal(t, 2, art.SampleRate)
	assert.Equal(t, []string{"head", "l_hand"}, art.Joints)
	assert.Equal(t, "L Hand", art.JointNames["l_hand"])

	require.Len(t, art.Frames, 4)
	assert.Equal(t, len(art.Frames), art.SampledFrames)
	assert.Equal(t, 0, art.Frames[0].Frame)
	assert.Equal(t, 2, art.Frames[1].Frame)

	require.Len(t, art.Pairs, 1)
	assert.Equal(t, "head-l_hand", art.Pairs[0].PairID)
	assert.Equal(t, "Head ↔ L Hand", art.Pairs[0].Label)

	seq := art.Sequences["head-l_hand"]
	require.Len(t, seq, 4, "7 symbols at stride 2")
	assert.Equal(t, "+0", seq[0].State)
	assert.Equal(t, "0c", seq[1].State)
	assert.InDelta(t, 1.0/60.0, seq[0].T, 0.01)

	require.Len(t, art.Motifs, 1)
	assert.Equal(t, "head-l_hand_motif_1", art.Motifs[0].MotifID)
	assert.Equal(t, "Reaching Gesture", art.Motifs[0].Label)
	assert.Equal(t, "approach-diverge", art.Motifs[0].Pattern)
	assert.Equal(t, 2, art.Motifs[0].Count)
	assert.InDelta(t, 62.5, art.Motifs[0].Score, 1e-9)

	assert.Equal(t, 2.5, art.Metadata.QTCThreshold)
	assert.Equal(t, "QTC_B", art.Metadata.QTCVariant)
	assert.NotEmpty(t, art.Metadata.GeneratedAt)
}

// TestBuildNormalizesFrames: positions land inside a unit bounding box
// centered on the skeleton.
func TestBuildNormalizesFrames(t *testing.T) {
	art := Build(fixtureCapture(), fixtureResult(), artifactConfig())
	for _, frame := range art.Frames {
		for joint, p := range frame.Joints {
			assert.GreaterOrEqual(t, p.X, -0.5, joint)
			assert.LessOrEqual(t, p.X, 0.5, joint)
			assert.GreaterOrEqual(t, p.Y, -0.5, joint)
			assert.LessOrEqual(t, p.Y, 0.5, joint)
			assert.GreaterOrEqual(t, p.Z, -0.5, joint)
			assert.LessOrEqual(t, p.Z, 0.5, joint)
		}
	}
}

func TestBuildMotifsSortedByStart(t *testing.T) {
	result := fixtureResult()
	late := result.Clusters[0]
	late.Representative.StartFrame = 120
	late.Representative.EndFrame = 240
	result.Clusters = append([]schema.MotifCluster{late}, result.Clusters...)

	capture := fixtureCapture()
	capture.FrameCount = 8

	art := Build(capture, result, artifactConfig())
	require.Len(t, art.Motifs, 2)
	assert.Less(t, art.Motifs[0].StartT, art.Motifs[1].StartT)
}

func TestArtifactWrite(t *testing.T) {
	art := Build(fixtureCapture(), fixtureResult(), artifactConfig())
	path := filepath.Join(t.TempDir(), "out", "artifact.json")
	require.NoError(t, art.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "qtc_sequences")
	assert.Contains(t, decoded, "sam_motifs")
	assert.Contains(t, decoded, "frames")
	assert.Contains(t, decoded, "metadata")
}
