package cmd

import (
	"fmt"

	"github.com/movelab/motifscan/core"
	"github.com/movelab/motifscan/internal/capture"
	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/internal/outwriter"
	"github.com/movelab/motifscan/schema"
	"github.com/spf13/cobra"
)

// pairsCmd summarizes the per-pair state derivation without motif ranking.
var pairsCmd = &cobra.Command{
	Use:   "pairs [capture-path]",
	Short: "Show per-pair state distributions and motion statistics.",
	Long: `Derive the qualitative state sequence for every tracked joint pair and
summarize it: how much of the session each pair spent approaching,
diverging, stationary, or crossing the boundary, plus the mean and spread
of its frame-to-frame distance change.

Use this to sanity-check a capture before motif ranking, to tune the
stationary threshold, or to pick a pair set worth analyzing in depth.

Examples:
  # Summarize the default pair set
  motifscan pairs session.csv

  # Inspect how a looser boundary shifts the distributions
  motifscan pairs session.csv --threshold 5

  # Export the summaries for a notebook
  motifscan pairs session.csv --output json --output-file pairs.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runPairs(); err != nil {
			contract.LogFatal("Cannot run pair analysis", err)
		}
	},
}

func runPairs() error {
	if cfg.CapturePath == "" {
		return fmt.Errorf("%w: capture path is required", schema.ErrInvalidConfig)
	}

	session, err := capture.NewCapturySource().Load(rootCtx, cfg.CapturePath)
	if err != nil {
		return fmt.Errorf("failed to load capture: %w", err)
	}

	result, err := core.Run(rootCtx, session, cfg)
	if err != nil {
		return err
	}

	return outwriter.NewOutWriter().WritePairs(result, cfg)
}
