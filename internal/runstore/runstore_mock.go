package runstore

import (
	"time"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
)

// MockRunStore is an in-memory RunStore for testing.
type MockRunStore struct {
	Runs    []schema.RunRecord
	Motifs  []schema.MotifRecord
	Cleared bool
	Closed  bool

	// FailWith, when set, is returned by every mutating call.
	FailWith error
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// NewMockRunStore creates an empty in-memory store.
func NewMockRunStore() *MockRunStore {
	return &MockRunStore{}
}

// BeginRun records the start of a run in memory.
func (m *MockRunStore) BeginRun(startTime time.Time, _ map[string]any) (int64, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	id := int64(len(m.Runs) + 1)
	m.Runs = append(m.Runs, schema.RunRecord{RunID: id, StartTime: startTime})
	return id, nil
}

// EndRun finalizes an in-memory run.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalDetected int) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	for i := range m.Runs {
		if m.Runs[i].RunID == runID {
			m.Runs[i].EndTime = &endTime
			m.Runs[i].TotalDetected = totalDetected
		}
	}
	return nil
}

// RecordClusters stores flattened cluster rows in memory.
func (m *MockRunStore) RecordClusters(runID int64, fps float64, clusters []schema.MotifCluster) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	for i, c := range clusters {
		rep := c.Representative
		m.Motifs = append(m.Motifs, schema.MotifRecord{
			RunID:         runID,
			Rank:          i + 1,
			Label:         c.Label,
			Shape:         string(c.Shape),
			PairID:        rep.Pair.ID(),
			StartFrame:    rep.StartFrame,
			EndFrame:      rep.EndFrame,
			DurationSec:   rep.DurationSeconds(fps),
			MemberCount:   c.MemberCount(),
			AvgSimilarity: c.AvgSimilarity,
			Score:         c.Score,
		})
	}
	return nil
}

// ListRuns returns the in-memory runs, newest first.
func (m *MockRunStore) ListRuns(limit int) ([]schema.RunRecord, error) {
	runs := make([]schema.RunRecord, 0, len(m.Runs))
	for i := len(m.Runs) - 1; i >= 0 && (limit <= 0 || len(runs) < limit); i-- {
		runs = append(runs, m.Runs[i])
	}
	return runs, nil
}

// ListMotifs returns the in-memory motif rows.
func (m *MockRunStore) ListMotifs(limit int) ([]schema.MotifRecord, error) {
	if limit <= 0 || limit > len(m.Motifs) {
		limit = len(m.Motifs)
	}
	return m.Motifs[:limit], nil
}

// Status reports in-memory counts.
func (m *MockRunStore) Status() (schema.RunStoreStatus, error) {
	return schema.RunStoreStatus{
		Backend:    schema.NoneBackend,
		RunCount:   int64(len(m.Runs)),
		MotifCount: int64(len(m.Motifs)),
	}, nil
}

// Clear wipes the in-memory state.
func (m *MockRunStore) Clear() error {
	m.Runs = nil
	m.Motifs = nil
	m.Cleared = true
	return nil
}

// Close marks the store closed.
func (m *MockRunStore) Close() error {
	m.Closed = true
	return nil
}
