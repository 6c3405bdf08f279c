package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/movelab/motifscan/core"
	"github.com/movelab/motifscan/internal/assemble"
	"github.com/movelab/motifscan/internal/capture"
	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/internal/outwriter"
	"github.com/movelab/motifscan/internal/runstore"
	"github.com/movelab/motifscan/schema"
	"github.com/spf13/cobra"
)

// analyzeCmd performs the full QTC derivation and motif ranking on a capture.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [capture-path]",
	Short: "Find the top recurring motion motifs in a capture session.",
	Long: `Derive qualitative inter-joint states for every tracked joint pair and
rank the recurring approach/diverge gestures found across the session.

For each joint pair, the distance trace is classified frame by frame into
approach, diverge, stationary, and cross states. Contiguous episodes are
aligned against each other, clustered by shape similarity, and ranked by
how often they recur, how long they last, and how large they move.

Examples:
  # Rank motifs in a capture with the default pair set
  motifscan analyze session.csv

  # Focus on hand gestures with a looser boundary
  motifscan analyze session.csv --pairs head-l_hand,head-r_hand --threshold 4

  # Include score breakdowns and per-motif metadata
  motifscan analyze session.csv --detail --explain

  # Export findings to CSV and write the viewer artifact
  motifscan analyze session.csv --output csv --output-file motifs.csv --artifact-file viewer.json

  # Track the run in the local SQLite store
  motifscan analyze session.csv --run-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runAnalyze(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run motif analysis", err)
		}
	},
}

// runAnalyze loads the capture, runs the engine, and fans the result out to
// the configured sinks: terminal/file output, viewer artifact, run store.
func runAnalyze(ctx context.Context, cfg *contract.Config) error {
	if cfg.CapturePath == "" {
		return fmt.Errorf("%w: capture path is required", schema.ErrInvalidConfig)
	}

	session, err := capture.NewCapturySource().Load(ctx, cfg.CapturePath)
	if err != nil {
		return fmt.Errorf("failed to load capture: %w", err)
	}

	store, err := runstore.NewRunStore(cfg.RunBackend, cfg.RunDBConnect)
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer func() { _ = store.Close() }()

	started := time.Now().UTC()
	runID, err := store.BeginRun(started, runParams(cfg))
	if err != nil {
		contract.LogWarn("Could not begin run tracking", err)
	}

	result, err := core.Run(ctx, session, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	if err := outwriter.NewOutWriter().WriteMotifs(result, cfg, elapsed); err != nil {
		return err
	}

	if cfg.ArtifactFile != "" {
		artifact := assemble.Build(session, result, cfg)
		if err := artifact.Write(cfg.ArtifactFile); err != nil {
			return fmt.Errorf("failed to write viewer artifact: %w", err)
		}
	}

	if runID > 0 {
		if err := store.RecordClusters(runID, result.FPS, result.Clusters); err != nil {
			contract.LogWarn("Could not record motifs", err)
		}
		if err := store.EndRun(runID, time.Now().UTC(), result.TotalDetected); err != nil {
			contract.LogWarn("Could not finalize run tracking", err)
		}
	}
	return nil
}

// runParams flattens the knobs that shape a run's outcome for persistence.
func runParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"threshold":         cfg.ThresholdMM,
		"top_n":             cfg.TopN,
		"min_duration":      cfg.MinDuration,
		"similarity_cutoff": cfg.SimilarityCutoff,
		"workers":           cfg.Workers,
	}
}
