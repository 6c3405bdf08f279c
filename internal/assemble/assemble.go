// Package assemble builds the combined viewer artifact: normalized skeleton
// frames, sampled QTC state streams, and the ranked motifs, in one JSON
// document a browser viewer can load directly.
package assemble

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
)

// Artifact is the viewer document. Positions inside are normalized to a unit
// bounding box; every analysis number was computed on raw millimeters first.
type Artifact struct {
	Title         string            `json:"title"`
	Duration      float64           `json:"duration"`
	FPS           float64           `json:"fps"`
	TotalFrames   int               `json:"total_frames"`
	SampledFrames int               `json:"sampled_frames"`
	SampleRate    int               `json:"sample_rate"`
	Joints        []string          `json:"joints"`
	JointNames    map[string]string `json:"joint_display_names"`

	Pairs     []PairSummary            `json:"qtc_pairs"`
	Sequences map[string][]StateSample `json:"qtc_sequences"`
	Motifs    []MotifSummary           `json:"sam_motifs"`
	Frames    []Frame                  `json:"frames"`

	Metadata Metadata `json:"metadata"`
}

// PairSummary carries one pair's identity and its QTC state distribution.
type PairSummary struct {
	PairID       string              `json:"pair_id"`
	JointA       string              `json:"joint_a"`
	JointB       string              `json:"joint_b"`
	Label        string              `json:"label"`
	Distribution schema.Distribution `json:"distribution"`
}

// StateSample is one sampled QTC state with its timestamp.
type StateSample struct {
	T     float64 `json:"t"`
	State string  `json:"state"`
}

// MotifSummary is one ranked motif cluster flattened for the viewer timeline.
type MotifSummary struct {
	MotifID string  `json:"motif_id"`
	PairID  string  `json:"pair_id"`
	StartT  float64 `json:"start_t"`
	EndT    float64 `json:"end_t"`
	Label   string  `json:"label"`
	Pattern string  `json:"pattern"`
	Score   float64 `json:"score"`
	Count   int     `json:"count"`
}

// Frame is one sampled skeleton frame with normalized joint positions.
type Frame struct {
	Frame  int                    `json:"frame"`
	Joints map[string]schema.Vec3 `json:"joints"`
}

// Metadata records provenance for the artifact.
type Metadata struct {
	GeneratedAt   string  `json:"generated_at"`
	SourceFile    string  `json:"source_file"`
	QTCThreshold  float64 `json:"qtc_threshold"`
	QTCVariant    string  `json:"qtc_variant"`
	CaptureSystem string  `json:"capture_system"`
}

// Build assembles the artifact from a capture and its analysis result.
// Frames and state streams are thinned by cfg.SampleRate to keep the
// document loadable in a browser.
func Build(capture *schema.Capture, result *schema.AnalysisResult, cfg *contract.Config) *Artifact {
	stride := max(cfg.SampleRate, 1)

	joints := make([]string, 0, len(capture.Joints))
	for joint := range capture.Joints {
		joints = append(joints, joint)
	}
	sort.Strings(joints)

	names := make(map[string]string, len(joints))
	for _, joint := range joints {
		names[joint] = schema.DisplayName(joint)
	}

	art := &Artifact{
		Title:         filepath.Base(cfg.CapturePath),
		Duration:      capture.Duration(),
		FPS:           capture.FPS,
		TotalFrames:   capture.FrameCount,
		SampleRate:    stride,
		Joints:        joints,
		JointNames:    names,
		Sequences:     make(map[string][]StateSample, len(result.Pairs)),
		Motifs:        motifSummaries(result, capture.FPS),
		Frames:        normalizedFrames(capture, joints, stride),
		Metadata: Metadata{
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
			SourceFile:    filepath.Base(cfg.CapturePath),
			QTCThreshold:  cfg.ThresholdMM,
			QTCVariant:    "QTC_B",
			CaptureSystem: "Captury Live",
		},
	}
	art.SampledFrames = len(art.Frames)

	for _, pa := range result.Pairs {
		art.Pairs = append(art.Pairs, PairSummary{
			PairID:       pa.Pair.ID(),
			JointA:       pa.Pair.A,
			JointB:       pa.Pair.B,
			Label:        pa.Pair.Label(),
			Distribution: pa.Distribution,
		})
		art.Sequences[pa.Pair.ID()] = sampleStates(pa.Symbols, capture.FPS, stride)
	}
	return art
}

// Write marshals the artifact to path, creating parent directories as needed.
func (a *Artifact) Write(path string) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// motifSummaries flattens the ranked clusters onto the viewer timeline,
// ordered by representative start time.
func motifSummaries(result *schema.AnalysisResult, fps float64) []MotifSummary {
	summaries := make([]MotifSummary, 0, len(result.Clusters))
	for i, cluster := range result.Clusters {
		rep := cluster.Representative
		summaries = append(summaries, MotifSummary{
			MotifID: fmt.Sprintf("%s_motif_%d", rep.Pair.ID(), i+1),
			PairID:  rep.Pair.ID(),
			StartT:  round2(frameTime(rep.StartFrame, fps)),
			EndT:    round2(frameTime(rep.EndFrame, fps)),
			Label:   cluster.Label,
			Pattern: string(cluster.Shape),
			Score:   round2(cluster.Score),
			Count:   cluster.MemberCount(),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].StartT != summaries[j].StartT {
			return summaries[i].StartT < summaries[j].StartT
		}
		return summaries[i].PairID < summaries[j].PairID
	})
	return summaries
}

// sampleStates thins a symbol stream to every stride-th state, rendered as
// compact QTC-B codes with the timestamp of the frame each symbol describes.
func sampleStates(symbols []schema.Symbol, fps float64, stride int) []StateSample {
	samples := make([]StateSample, 0, (len(symbols)+stride-1)/stride)
	for i := 0; i < len(symbols); i += stride {
		samples = append(samples, StateSample{
			T:     round2(frameTime(i+1, fps)),
			State: symbols[i].Code(),
		})
	}
	return samples
}

// normalizedFrames centers all positions on the capture's bounding box and
// scales them into a unit cube, then keeps every stride-th frame.
func normalizedFrames(capture *schema.Capture, joints []string, stride int) []Frame {
	lo := schema.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := schema.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, joint := range joints {
		for _, p := range capture.Joints[joint] {
			lo.X = math.Min(lo.X, p.X)
			lo.Y = math.Min(lo.Y, p.Y)
			lo.Z = math.Min(lo.Z, p.Z)
			hi.X = math.Max(hi.X, p.X)
			hi.Y = math.Max(hi.Y, p.Y)
			hi.Z = math.Max(hi.Z, p.Z)
		}
	}
	center := schema.Vec3{
		X: (lo.X + hi.X) / 2,
		Y: (lo.Y + hi.Y) / 2,
		Z: (lo.Z + hi.Z) / 2,
	}
	scale := math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))
	if scale <= 0 {
		scale = 1
	}

	frames := make([]Frame, 0, (capture.FrameCount+stride-1)/stride)
	for i := 0; i < capture.FrameCount; i += stride {
		frame := Frame{Frame: i, Joints: make(map[string]schema.Vec3, len(joints))}
		for _, joint := range joints {
			p := capture.Joints[joint][i]
			frame.Joints[joint] = schema.Vec3{
				X: (p.X - center.X) / scale,
				Y: (p.Y - center.Y) / scale,
				Z: (p.Z - center.Z) / scale,
			}
		}
		frames = append(frames, frame)
	}
	return frames
}

func frameTime(frame int, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frame) / fps
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
