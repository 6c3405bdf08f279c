// Package capture loads motion-capture sessions from Captury Live CSV exports.
package capture

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
)

// jointColumns maps joint identifiers to their X column index in a Captury
// Live CSV row. Y and Z follow immediately after X.
var jointColumns = map[string]int{
	"pelvis":     3,   // CenterOfGravity
	"l_hand":     6,   // LWristPositions
	"l_elbow":    12,  // LElbowPositions
	"l_shoulder": 18,  // LShoulderPositions
	"r_hand":     24,  // RWristPositions
	"r_elbow":    30,  // RElbowPositions
	"r_shoulder": 36,  // RShoulderPositions
	"l_foot":     48,  // LAnklePositions
	"l_knee":     54,  // LKneePositions
	"l_hip":      60,  // LHipPositions
	"r_foot":     72,  // RAnklePositions
	"r_knee":     78,  // RKneePositions
	"r_hip":      84,  // RHipPositions
	"spine_base": 132, // SpinePosition
	"spine_mid":  144, // Spine2Position
	"sternum":    150, // Spine3Position
	"neck":       162, // NeckPosition
	"head":       168, // HeadPosition
}

// minColumns is the narrowest data row that still carries every mapped joint.
// The widest index used is head Z at 170.
const minColumns = 171

// headerRows is the fixed preamble length of a Captury Live export.
const headerRows = 5

// defaultFPS applies when the preamble carries no Frame Rate cell.
const defaultFPS = 60.0

// CapturySource loads captures from Captury Live semicolon-delimited CSV files.
type CapturySource struct{}

var _ contract.Source = &CapturySource{} // Compile-time check

// NewCapturySource returns a Source for Captury Live CSV exports.
func NewCapturySource() *CapturySource {
	return &CapturySource{}
}

// Load reads the capture at path. Malformed data rows (too narrow, or with
// non-numeric position cells) are skipped, matching the tolerant behavior of
// the capture system's own tooling: a few dropped frames beat a dead session.
func (s *CapturySource) Load(ctx context.Context, path string) (*schema.Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()
	return s.parse(ctx, f)
}

func (s *CapturySource) parse(ctx context.Context, r io.Reader) (*schema.Capture, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // header rows are narrower than data rows
	reader.LazyQuotes = true

	fps := defaultFPS
	for range headerRows {
		row, err := reader.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: capture file has no data rows", schema.ErrInvalidTrajectory)
		}
		if err != nil {
			return nil, fmt.Errorf("read capture header: %w", err)
		}
		if v, ok := frameRateFrom(row); ok {
			fps = v
		}
	}

	joints := make(map[string][]schema.Vec3, len(jointColumns))
	var frames int
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read capture row: %w", err)
		}
		if len(row) < minColumns {
			continue
		}

		positions, ok := parseRow(row)
		if !ok {
			continue
		}
		for joint, pos := range positions {
			joints[joint] = append(joints[joint], pos)
		}
		frames++
	}

	if frames < 2 {
		return nil, fmt.Errorf("%w: capture has %d usable frames, need at least 2",
			schema.ErrInvalidTrajectory, frames)
	}
	return &schema.Capture{
		FPS:        fps,
		FrameCount: frames,
		Joints:     joints,
	}, nil
}

// parseRow extracts every mapped joint position from one data row. A single
// bad cell rejects the whole row so trajectories stay frame-aligned.
func parseRow(row []string) (map[string]schema.Vec3, bool) {
	positions := make(map[string]schema.Vec3, len(jointColumns))
	for joint, x := range jointColumns {
		pos, err := parseVec3(row[x], row[x+1], row[x+2])
		if err != nil {
			return nil, false
		}
		positions[joint] = pos
	}
	return positions, true
}

func parseVec3(xs, ys, zs string) (schema.Vec3, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return schema.Vec3{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return schema.Vec3{}, err
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(zs), 64)
	if err != nil {
		return schema.Vec3{}, err
	}
	return schema.Vec3{X: x, Y: y, Z: z}, nil
}

// frameRateFrom scans one header row for a "Frame Rate" cell followed by a
// numeric value.
func frameRateFrom(row []string) (float64, bool) {
	for i, cell := range row {
		if !strings.Contains(cell, "Frame Rate") || i+1 >= len(row) {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64); err == nil && v > 0 {
			return v, true
		}
	}
	return 0, false
}

// Downsample returns a capture keeping every stride-th frame. The effective
// frame rate drops by the same factor, so time labels stay correct.
// A stride of 1 returns the capture unchanged.
func Downsample(c *schema.Capture, stride int) *schema.Capture {
	if stride <= 1 {
		return c
	}
	joints := make(map[string][]schema.Vec3, len(c.Joints))
	var frames int
	for joint, traj := range c.Joints {
		sampled := make([]schema.Vec3, 0, (len(traj)+stride-1)/stride)
		for i := 0; i < len(traj); i += stride {
			sampled = append(sampled, traj[i])
		}
		joints[joint] = sampled
		frames = len(sampled)
	}
	return &schema.Capture{
		FPS:        c.FPS / float64(stride),
		FrameCount: frames,
		Joints:     joints,
	}
}
