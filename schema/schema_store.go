package schema

import "time"

// RunRecord is one tracked analysis run as persisted by the run store.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	RunUUID       string     `json:"run_uuid"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	TotalDetected int        `json:"total_detected"`
	ConfigParams  string     `json:"config_params,omitempty"` // JSON-encoded
}

// MotifRecord is one persisted ranked cluster row, flattened for export.
type MotifRecord struct {
	RunID         int64     `json:"run_id"`
	Rank          int       `json:"rank"`
	Label         string    `json:"label"`
	Shape         string    `json:"shape"`
	PairID        string    `json:"pair_id"`
	StartFrame    int       `json:"start_frame"`
	EndFrame      int       `json:"end_frame"`
	DurationSec   float64   `json:"duration_sec"`
	MemberCount   int       `json:"member_count"`
	AvgSimilarity float64   `json:"avg_similarity"`
	Score         float64   `json:"score"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// RunStoreStatus summarizes the run store for the status command.
type RunStoreStatus struct {
	Backend    DatabaseBackend `json:"backend"`
	Location   string          `json:"location,omitempty"`
	RunCount   int64           `json:"run_count"`
	MotifCount int64           `json:"motif_count"`
}
