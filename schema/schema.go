// Package schema has configs, models and shared constants for all parts of motifscan.
package schema

import "math"

// Vec3 is a single joint position in millimeters, as exported by the capture system.
// Positions are immutable once captured; all analysis reads them in place.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Dist returns the Euclidean distance to another position, in millimeters.
func (v Vec3) Dist(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// IsFinite reports whether all three components are finite numbers.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Capture is an in-memory motion capture session: one position sequence per joint,
// all sequences of equal length, plus the capture frame rate.
// The frame rate is only used for time labels, never by the analysis itself.
type Capture struct {
	FPS        float64           `json:"fps"`
	FrameCount int               `json:"frame_count"`
	Joints     map[string][]Vec3 `json:"joints"`
}

// Trajectory returns the position sequence for a joint, or nil if the joint
// was not captured.
func (c *Capture) Trajectory(joint string) []Vec3 {
	return c.Joints[joint]
}

// Duration returns the capture length in seconds.
func (c *Capture) Duration() float64 {
	if c.FPS <= 0 {
		return 0
	}
	return float64(c.FrameCount) / c.FPS
}

// JointPair is an unordered pair of two distinct joints whose relative distance
// is tracked over time. Construct with NewJointPair so the identity is canonical.
type JointPair struct {
	A string `json:"joint_a"`
	B string `json:"joint_b"`
}

// NewJointPair returns the canonical form of a pair: joints ordered
// lexicographically so {head, l_hand} and {l_hand, head} compare equal.
func NewJointPair(a, b string) JointPair {
	if b < a {
		a, b = b, a
	}
	return JointPair{A: a, B: b}
}

// ID returns the stable identifier used in output documents and sort tie-breaks.
func (p JointPair) ID() string {
	return p.A + "-" + p.B
}

// Label returns the display label for the pair, e.g. "L Hand ↔ Head".
func (p JointPair) Label() string {
	return DisplayName(p.A) + " ↔ " + DisplayName(p.B)
}

// Symbol is one QTC relative-motion state for a joint pair at a single frame.
type Symbol string

// The four QTC states. Frame 0 has no symbol: relative-motion direction
// requires a previous frame.
const (
	Approach   Symbol = "approach"   // distance decreasing
	Diverge    Symbol = "diverge"    // distance increasing
	Stationary Symbol = "stationary" // distance stable within threshold
	Cross      Symbol = "cross"      // direction reversed on the very next frame
)

// Code returns the compact QTC-B wire code used in viewer artifacts.
func (s Symbol) Code() string {
	switch s {
	case Approach:
		return "+0"
	case Diverge:
		return "0-"
	case Cross:
		return "0c"
	default:
		return "00"
	}
}

// Run is a maximal run of identical symbols within a symbol sequence.
// Start indexes into the symbol sequence; symbol index i describes frame i+1.
type Run struct {
	Symbol Symbol `json:"symbol"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
}

// End returns the symbol index one past the run.
func (r Run) End() int {
	return r.Start + r.Length
}

// MotifInstance is a contiguous approach/diverge episode in one pair's symbol
// sequence. StartFrame/EndFrame are frame indices: the half-open range
// [StartFrame, EndFrame) always lies within [1, N).
type MotifInstance struct {
	Pair        JointPair `json:"pair"`
	Shape       Shape     `json:"shape"`
	StartFrame  int       `json:"start_frame"`
	EndFrame    int       `json:"end_frame"`
	Runs        []Run     `json:"runs"`
	NetDeltaMM  float64   `json:"net_delta_mm"`  // sum of distance deltas across the span
	PeakDeltaMM float64   `json:"peak_delta_mm"` // largest single-frame |delta| in the span
}

// DurationFrames returns the instance length in frames.
func (m MotifInstance) DurationFrames() int {
	return m.EndFrame - m.StartFrame
}

// DurationSeconds returns the instance length in seconds at the given frame rate.
func (m MotifInstance) DurationSeconds(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(m.DurationFrames()) / fps
}

// MotifCluster is a group of motif instances judged similar by the alignment
// score. Membership is disjoint across clusters and deterministic for a given
// input and configuration.
type MotifCluster struct {
	Label          string          `json:"label"`
	Shape          Shape           `json:"shape"`
	Representative MotifInstance   `json:"representative"`
	Members        []MotifInstance `json:"members"`
	AvgSimilarity  float64         `json:"avg_similarity"`
	Score          float64         `json:"score"`
	// Breakdown holds the normalized contribution of each score component
	// for debugging/tuning.
	Breakdown map[BreakdownKey]float64 `json:"breakdown,omitempty"`
}

// MemberCount returns the cluster's recurrence count.
func (c MotifCluster) MemberCount() int {
	return len(c.Members)
}

// Pairs returns the distinct pair IDs contributing to the cluster, in member order.
func (c MotifCluster) Pairs() []string {
	seen := make(map[string]struct{}, len(c.Members))
	var ids []string
	for _, m := range c.Members {
		id := m.Pair.ID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
