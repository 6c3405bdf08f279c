package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
)

func fixtureResult() *schema.AnalysisResult {
	handPair := schema.NewJointPair("head", "l_hand")
	footPair := schema.NewJointPair("l_foot", "pelvis")

	rep := schema.MotifInstance{
		Pair:       handPair,
		Shape:      schema.ApproachDiverge,
		StartFrame: 10,
		EndFrame:   40,
	}

	return &schema.AnalysisResult{
		FPS:         60,
		TotalFrames: 6,
		Pairs: []schema.PairAnalysis{
			{
				Pair:         handPair,
				Distances:    []float64{100, 95, 90, 92, 96, 100},
				MeanAbsDelta: 4.0,
				StdAbsDelta:  0.9,
				Candidates:   []schema.MotifInstance{rep},
			},
			{
				Pair:      footPair,
				Distances: []float64{300, 300, 300, 300, 300, 300},
			},
		},
		Clusters: []schema.MotifCluster{
			{
				Label:          "Reaching Gesture",
				Shape:          schema.ApproachDiverge,
				Representative: rep,
				Members:        []schema.MotifInstance{rep, rep},
				AvgSimilarity:  0.9,
				Score:          72.4,
			},
			{
				Label:          "Grounded Step",
				Shape:          schema.DivergeApproach,
				Representative: rep,
				Members:        []schema.MotifInstance{rep},
				AvgSimilarity:  1.0,
				Score:          38.1,
			},
		},
		TotalDetected: 5,
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	cfg := &contract.Config{ThresholdMM: 2.5, ReportDir: dir}

	require.NoError(t, WriteAll(fixtureResult(), cfg))

	html, err := os.ReadFile(filepath.Join(dir, HTMLFileName))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Motif Salience")
	assert.Contains(t, string(html), "Reaching Gesture")
	assert.Contains(t, string(html), "Head ↔ L Hand")

	png, err := os.Stat(filepath.Join(dir, PNGFileName))
	require.NoError(t, err)
	assert.Positive(t, png.Size())
}

func TestWriteAllRequiresDirectory(t *testing.T) {
	cfg := &contract.Config{ThresholdMM: 2.5}
	err := WriteAll(fixtureResult(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrInvalidConfig)
}

func TestBuildPageChartContent(t *testing.T) {
	cfg := &contract.Config{ThresholdMM: 2.5}
	page := BuildPage(fixtureResult(), cfg)

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))
	out := buf.String()

	// One bar chart plus one scatter per pair.
	assert.Contains(t, out, "1. Reaching Gesture")
	assert.Contains(t, out, "2. Grounded Step")
	assert.Contains(t, out, "Head ↔ L Hand")
	assert.Contains(t, out, "L Foot ↔ Pelvis")
	assert.Contains(t, out, "Distance (mm)")
}

func TestBuildPageSkipsEmptyClusterChart(t *testing.T) {
	result := fixtureResult()
	result.Clusters = nil
	cfg := &contract.Config{ThresholdMM: 2.5}

	var buf bytes.Buffer
	require.NoError(t, BuildPage(result, cfg).Render(&buf))
	assert.NotContains(t, buf.String(), "Motif Salience")
}

func TestWriteDistancePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.png")
	require.NoError(t, WriteDistancePlot(fixtureResult(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteHTMLReportBadPath(t *testing.T) {
	cfg := &contract.Config{ThresholdMM: 2.5}
	err := WriteHTMLReport(fixtureResult(), cfg, filepath.Join(t.TempDir(), "missing", "report.html"))
	assert.Error(t, err)
}
