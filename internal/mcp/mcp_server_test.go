package mcp_test

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/movelab/motifscan/internal/capture"
	"github.com/movelab/motifscan/internal/contract"
	mcp_internal "github.com/movelab/motifscan/internal/mcp"
	"github.com/movelab/motifscan/internal/runstore"
	"github.com/movelab/motifscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		ThresholdMM:      2.5,
		Pairs:            schema.DefaultPairs,
		TopN:             15,
		MinDuration:      3,
		SimilarityCutoff: 0.75,
		Workers:          1,
		AlignWeights:     schema.DefaultAlignWeights(),
		ScoreWeights:     schema.DefaultScoreWeights(),
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func textContent(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), &capture.CapturySource{}, runstore.NewMockRunStore())

	t.Run("analyze_motifs missing capture_path", func(t *testing.T) {
		res := callTool(t, s, "analyze_motifs", map[string]any{})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, textContent(t, res), "capture_path is required")
	})

	t.Run("analyze_motifs malformed pairs", func(t *testing.T) {
		res := callTool(t, s, "analyze_motifs", map[string]any{
			"capture_path": "session.csv",
			"pairs":        "head-l_hand,pelvis", // missing separator
		})
		assert.True(t, res.IsError)
		assert.Contains(t, textContent(t, res), "invalid pairs")
	})

	t.Run("analyze_motifs missing capture file", func(t *testing.T) {
		res := callTool(t, s, "analyze_motifs", map[string]any{
			"capture_path": "/nonexistent/session.csv",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, textContent(t, res), "failed to load capture")
	})

	t.Run("analyze_pair malformed pair", func(t *testing.T) {
		res := callTool(t, s, "analyze_pair", map[string]any{
			"capture_path": "session.csv",
			"pair":         "head", // not a pair
		})
		assert.True(t, res.IsError)
		assert.Contains(t, textContent(t, res), "invalid pair")
	})
}

func TestMCPServerHandlers_StoreTools(t *testing.T) {
	store := runstore.NewMockRunStore()
	started := time.Now().UTC()
	runID, err := store.BeginRun(started, nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordClusters(runID, 60, []schema.MotifCluster{
		{
			Label:          "Reaching Gesture",
			Shape:          schema.ApproachDiverge,
			Representative: schema.MotifInstance{Pair: schema.NewJointPair("head", "l_hand"), StartFrame: 60, EndFrame: 180},
			Members:        make([]schema.MotifInstance, 2),
			AvgSimilarity:  0.9,
			Score:          72.4,
		},
	}))

	s := mcp_internal.NewMCPServer(baseConfig(), &capture.CapturySource{}, store)

	t.Run("list_runs returns tracked runs", func(t *testing.T) {
		res := callTool(t, s, "list_runs", map[string]any{"limit": 10.0})
		require.False(t, res.IsError)
		assert.Contains(t, textContent(t, res), "\"run_id\": 1")
	})

	t.Run("list_motifs returns persisted rows", func(t *testing.T) {
		res := callTool(t, s, "list_motifs", map[string]any{})
		require.False(t, res.IsError)
		out := textContent(t, res)
		assert.Contains(t, out, "Reaching Gesture")
		assert.Contains(t, out, "head-l_hand")
	})

	t.Run("run_store_status reports counts", func(t *testing.T) {
		res := callTool(t, s, "run_store_status", map[string]any{})
		require.False(t, res.IsError)
		assert.Contains(t, textContent(t, res), "\"run_count\": 1")
	})

	t.Run("store errors surface as tool errors", func(t *testing.T) {
		failing := runstore.NewMockRunStore()
		failing.FailWith = assert.AnError
		sErr := mcp_internal.NewMCPServer(baseConfig(), &capture.CapturySource{}, failing)

		res := callTool(t, sErr, "list_runs", map[string]any{})
		// Reads are unaffected by FailWith; only mutations fail.
		require.False(t, res.IsError)
	})
}
