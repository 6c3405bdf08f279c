package schema

// Distribution is the share of each QTC state within one pair's symbol sequence.
// The four shares sum to 1 for a non-empty sequence.
type Distribution struct {
	Approach   float64 `json:"approach"`
	Diverge    float64 `json:"diverge"`
	Stationary float64 `json:"stationary"`
	Cross      float64 `json:"cross"`
}

// PairAnalysis is the per-pair output of the QTC engine and motif scanner:
// the derived symbol sequence, its per-frame distances, summary statistics,
// and the candidate motif instances found in it.
type PairAnalysis struct {
	Pair         JointPair       `json:"pair"`
	Symbols      []Symbol        `json:"symbols"`
	Distances    []float64       `json:"distances"` // distance per frame, length N
	Distribution Distribution    `json:"distribution"`
	MeanAbsDelta float64         `json:"mean_abs_delta_mm"`
	StdAbsDelta  float64         `json:"std_abs_delta_mm"`
	Candidates   []MotifInstance `json:"candidates"`
}

// PairFailure records a pair whose analysis was rejected. Failures are isolated:
// other pairs continue and are reported alongside.
type PairFailure struct {
	Pair JointPair `json:"pair"`
	Err  string    `json:"error"`
}

// AnalysisResult is the full output contract handed to the result assembler
// and the output writers.
type AnalysisResult struct {
	FPS           float64        `json:"fps"`
	TotalFrames   int            `json:"total_frames"`
	Pairs         []PairAnalysis `json:"pairs"`
	Failures      []PairFailure  `json:"failures,omitempty"`
	Clusters      []MotifCluster `json:"clusters"`
	TotalDetected int            `json:"total_detected"` // cluster count before top-N truncation
}
