package cmd

import (
	"fmt"
	"os"

	"github.com/movelab/motifscan/core"
	"github.com/movelab/motifscan/internal/capture"
	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/internal/report"
	"github.com/movelab/motifscan/schema"
	"github.com/spf13/cobra"
)

// reportCmd renders visual summaries of a capture analysis.
var reportCmd = &cobra.Command{
	Use:   "report [capture-path]",
	Short: "Render an HTML report and distance plot for a capture session.",
	Long: `Run the full motif analysis and render its results as visual artifacts:

- An interactive HTML page with a motif score chart and one distance
  scatter per joint pair, colored by frame-to-frame movement.
- A static PNG plotting every pair's distance trace over time.

Both land in the report directory (created if missing).

Examples:
  # Render into ./reports
  motifscan report session.csv

  # Render into a session-specific directory
  motifscan report session.csv --report-dir out/session-07`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runReport(); err != nil {
			contract.LogFatal("Cannot render report", err)
		}
	},
}

func runReport() error {
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

	if err := report.WriteAll(result, cfg); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Wrote report to %s\n", cfg.ReportDir)
	return nil
}
