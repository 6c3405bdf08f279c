// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/movelab/motifscan/internal/contract"
)

// NewMCPServer initializes and configures the Motifscan MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, source contract.Source, store contract.RunStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Motifscan Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		source:  source,
		store:   store,
	}

	// --- 1. Tool: analyze_motifs ---
	s.AddTool(mcp.NewTool("analyze_motifs",
		mcp.WithDescription("Run the full QTC motif analysis on a motion-capture CSV export and return the ranked motif clusters."),
		mcp.WithString("capture_path", mcp.Description("Path to the capture CSV export."), mcp.Required()),
		mcp.WithNumber("threshold", mcp.Description("Stationary/cross distance boundary in millimeters. Defaults to the configured value.")),
		mcp.WithString("pairs", mcp.Description("Comma-separated joint pairs to analyze, e.g. 'head-l_hand,l_foot-pelvis'. Defaults to the built-in pair set.")),
		mcp.WithNumber("top_n", mcp.Description("Limit the number of ranked motifs returned.")),
		mcp.WithNumber("min_duration", mcp.Description("Minimum episode length in frames.")),
	), h.handleAnalyzeMotifs)

	// --- 2. Tool: analyze_pair ---
	s.AddTool(mcp.NewTool("analyze_pair",
		mcp.WithDescription("Derive the QTC state sequence for one joint pair and summarize its motion."),
		mcp.WithString("capture_path", mcp.Description("Path to the capture CSV export."), mcp.Required()),
		mcp.WithString("pair", mcp.Description("Joint pair to analyze, e.g. 'head-l_hand'."), mcp.Required()),
		mcp.WithNumber("threshold", mcp.Description("Stationary/cross distance boundary in millimeters.")),
	), h.handleAnalyzePair)

	// --- 3. Tool: list_runs ---
	s.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List tracked analysis runs, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of runs returned.")),
	), h.handleListRuns)

	// --- 4. Tool: list_motifs ---
	s.AddTool(mcp.NewTool("list_motifs",
		mcp.WithDescription("List persisted ranked motifs from tracked runs, newest run first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of motif rows returned.")),
	), h.handleListMotifs)

	// --- 5. Tool: run_store_status ---
	s.AddTool(mcp.NewTool("run_store_status",
		mcp.WithDescription("Report run-tracking storage details and row counts."),
	), h.handleRunStoreStatus)

	return s
}

// StartMCPServer starts the Motifscan MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, source contract.Source, store contract.RunStore) error {
	s := NewMCPServer(baseCfg, source, store)
	return server.ServeStdio(s)
}
