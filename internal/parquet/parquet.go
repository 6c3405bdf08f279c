// Package parquet provides data structures and functions for exporting
// tracked runs and motifs to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/movelab/motifscan/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single tracked analysis run with metadata.
// This struct maps to the motifscan_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the externally shareable identifier for this run
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// TotalDetected is the cluster count before top-N truncation
	TotalDetected int32 `parquet:"total_detected,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Motif represents one persisted ranked motif cluster.
// This struct maps to the motifscan_motifs database table.
type Motif struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// Rank is the cluster's position in the run's ranking
	Rank int32 `parquet:"motif_rank,snappy"`

	// Label is the vocabulary name assigned to the cluster
	Label string `parquet:"label,snappy"`

	// Shape is the qualitative shape signature of the representative
	Shape string `parquet:"shape,snappy"`

	// PairID identifies the representative's joint pair
	PairID string `parquet:"pair_id,snappy"`

	// StartFrame is the representative's first frame
	StartFrame int32 `parquet:"start_frame,snappy"`

	// EndFrame is one past the representative's last frame
	EndFrame int32 `parquet:"end_frame,snappy"`

	// DurationSec is the representative's length in seconds
	DurationSec float64 `parquet:"duration_sec,snappy"`

	// MemberCount is the cluster's recurrence count
	MemberCount int32 `parquet:"member_count,snappy"`

	// AvgSimilarity is the mean alignment similarity to the representative
	AvgSimilarity float64 `parquet:"avg_similarity,snappy"`

	// Score is the composite salience score (0-100)
	Score float64 `parquet:"score,snappy"`

	// RecordedAt is when the row was persisted
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteMotifsParquet writes a slice of Motif structs to a Parquet file.
func WriteMotifsParquet(data []Motif, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the Motif struct tags
	writer := parquet.NewGenericWriter[Motif](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		var configParams *string
		if record.ConfigParams != "" {
			cp := record.ConfigParams
			configParams = &cp
		}
		result[i] = Run{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			TotalDetected: int32(record.TotalDetected),
			ConfigParams:  configParams,
		}
	}
	return result
}

// ConvertMotifRecords converts schema.MotifRecord to Motif for Parquet export.
func ConvertMotifRecords(records []schema.MotifRecord) []Motif {
	result := make([]Motif, len(records))
	for i, record := range records {
		result[i] = Motif{
			RunID:         record.RunID,
			Rank:          int32(record.Rank),
			Label:         record.Label,
			Shape:         record.Shape,
			PairID:        record.PairID,
			StartFrame:    int32(record.StartFrame),
			EndFrame:      int32(record.EndFrame),
			DurationSec:   record.DurationSec,
			MemberCount:   int32(record.MemberCount),
			AvgSimilarity: record.AvgSimilarity,
			Score:         record.Score,
			RecordedAt:    record.RecordedAt,
		}
	}
	return result
}
