package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/movelab/motifscan/core"
	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	source  contract.Source
	store   contract.RunStore
}

// motifSummary is the per-cluster row returned to MCP clients. It carries the
// ranking facts without the per-frame payloads of the full analysis result.
type motifSummary struct {
	Rank          int     `json:"rank"`
	Label         string  `json:"label"`
	Shape         string  `json:"shape"`
	PairID        string  `json:"pair_id"`
	StartFrame    int     `json:"start_frame"`
	EndFrame      int     `json:"end_frame"`
	StartTime     string  `json:"start_time"`
	DurationSec   float64 `json:"duration_sec"`
	MemberCount   int     `json:"member_count"`
	AvgSimilarity float64 `json:"avg_similarity"`
	Score         float64 `json:"score"`
}

type analyzeResponse struct {
	FPS           float64               `json:"fps"`
	TotalFrames   int                   `json:"total_frames"`
	TotalDetected int                   `json:"total_detected"`
	Motifs        []motifSummary        `json:"motifs"`
	Failures      []schema.PairFailure  `json:"failures,omitempty"`
}

type candidateSummary struct {
	Shape       string  `json:"shape"`
	StartFrame  int     `json:"start_frame"`
	EndFrame    int     `json:"end_frame"`
	StartTime   string  `json:"start_time"`
	NetDeltaMM  float64 `json:"net_delta_mm"`
	PeakDeltaMM float64 `json:"peak_delta_mm"`
}

type pairResponse struct {
	PairID       string              `json:"pair_id"`
	Label        string              `json:"label"`
	TotalFrames  int                 `json:"total_frames"`
	Distribution schema.Distribution `json:"distribution"`
	MeanAbsDelta float64             `json:"mean_abs_delta_mm"`
	StdAbsDelta  float64             `json:"std_abs_delta_mm"`
	Candidates   []candidateSummary  `json:"candidates"`
}

func (h *toolHandler) handleAnalyzeMotifs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.CapturePath = request.GetString("capture_path", "")
	if cfg.CapturePath == "" {
		return mcp.NewToolResultError("capture_path is required"), nil
	}
	if v := request.GetFloat("threshold", 0); v > 0 {
		cfg.ThresholdMM = v
	}
	if p := request.GetString("pairs", ""); p != "" {
		pairs, err := schema.ParsePairs(p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid pairs: %v", err)), nil
		}
		cfg.Pairs = pairs
	}
	if n := request.GetInt("top_n", 0); n > 0 {
		cfg.TopN = n
	}
	if d := request.GetInt("min_duration", 0); d > 0 {
		cfg.MinDuration = d
	}

	capture, err := h.source.Load(ctx, cfg.CapturePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load capture: %v", err)), nil
	}

	result, err := core.Run(ctx, capture, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	resp := analyzeResponse{
		FPS:           result.FPS,
		TotalFrames:   result.TotalFrames,
		TotalDetected: result.TotalDetected,
		Motifs:        make([]motifSummary, 0, len(result.Clusters)),
		Failures:      result.Failures,
	}
	for i, c := range result.Clusters {
		rep := c.Representative
		resp.Motifs = append(resp.Motifs, motifSummary{
			Rank:          i + 1,
			Label:         c.Label,
			Shape:         string(c.Shape),
			PairID:        rep.Pair.ID(),
			StartFrame:    rep.StartFrame,
			EndFrame:      rep.EndFrame,
			StartTime:     schema.FormatFrameTime(rep.StartFrame, result.FPS),
			DurationSec:   rep.DurationSeconds(result.FPS),
			MemberCount:   c.MemberCount(),
			AvgSimilarity: c.AvgSimilarity,
			Score:         c.Score,
		})
	}

	jsonData, _ := json.MarshalIndent(resp, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzePair(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.CapturePath = request.GetString("capture_path", "")
	if cfg.CapturePath == "" {
		return mcp.NewToolResultError("capture_path is required"), nil
	}
	if v := request.GetFloat("threshold", 0); v > 0 {
		cfg.ThresholdMM = v
	}

	pairs, err := schema.ParsePairs(request.GetString("pair", ""))
	if err != nil || len(pairs) != 1 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid pair: %v", err)), nil
	}
	pair := pairs[0]

	capture, err := h.source.Load(ctx, cfg.CapturePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load capture: %v", err)), nil
	}

	analysis, err := core.AnalyzePair(capture, pair, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pair analysis failed: %v", err)), nil
	}

	resp := pairResponse{
		PairID:       analysis.Pair.ID(),
		Label:        analysis.Pair.Label(),
		TotalFrames:  capture.FrameCount,
		Distribution: analysis.Distribution,
		MeanAbsDelta: analysis.MeanAbsDelta,
		StdAbsDelta:  analysis.StdAbsDelta,
		Candidates:   make([]candidateSummary, 0, len(analysis.Candidates)),
	}
	for _, c := range analysis.Candidates {
		resp.Candidates = append(resp.Candidates, candidateSummary{
			Shape:       string(c.Shape),
			StartFrame:  c.StartFrame,
			EndFrame:    c.EndFrame,
			StartTime:   schema.FormatFrameTime(c.StartFrame, capture.FPS),
			NetDeltaMM:  c.NetDeltaMM,
			PeakDeltaMM: c.PeakDeltaMM,
		})
	}

	jsonData, _ := json.MarshalIndent(resp, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("run tracking is disabled"), nil
	}

	runs, err := h.store.ListRuns(request.GetInt("limit", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list runs: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListMotifs(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("run tracking is disabled"), nil
	}

	motifs, err := h.store.ListMotifs(request.GetInt("limit", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list motifs: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(motifs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRunStoreStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("run tracking is disabled"), nil
	}

	status, err := h.store.Status()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read store status: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
