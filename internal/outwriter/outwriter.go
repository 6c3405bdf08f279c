// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteMotifs prints the ranked motif clusters using the configured output format.
func (ow *OutWriter) WriteMotifs(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	return WriteMotifResults(result, cfg, duration)
}

// WritePairs prints the per-pair QTC summaries using the configured output format.
func (ow *OutWriter) WritePairs(result *schema.AnalysisResult, cfg *contract.Config) error {
	return WritePairResults(result, cfg)
}

// WriteRuns prints tracked run records using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	return WriteRunResults(runs, cfg)
}

// WriteStatus prints the run-store status summary.
func (ow *OutWriter) WriteStatus(status schema.RunStoreStatus, cfg *contract.Config) error {
	return WriteStatusResult(status, cfg)
}
