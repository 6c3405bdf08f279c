// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/movelab/motifscan/schema"
)

// Source defines the ingestion collaborator: it loads a capture session into
// the in-memory trajectory store. This keeps the analysis core independent of
// the capture system's export format and lets tests feed synthetic captures.
type Source interface {
	// Load reads a capture file and returns the joint→trajectory mapping
	// plus the capture frame rate. All trajectories have equal length.
	Load(ctx context.Context, path string) (*schema.Capture, error)
}

// RunStore defines the interface for run-tracking storage.
// This allows mocking the store for testing and disabling it entirely.
type RunStore interface {
	// BeginRun records the start of an analysis run and returns its ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun finalizes a run with its end time and pre-truncation cluster count.
	EndRun(runID int64, endTime time.Time, totalDetected int) error

	// RecordClusters persists the ranked clusters of a run.
	RecordClusters(runID int64, fps float64, clusters []schema.MotifCluster) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// ListMotifs returns the persisted motif rows for export, newest run first.
	ListMotifs(limit int) ([]schema.MotifRecord, error)

	// Status returns row counts and storage details.
	Status() (schema.RunStoreStatus, error)

	// Clear removes all tracked runs and motifs.
	Clear() error

	// Close releases the underlying database handle.
	Close() error
}
