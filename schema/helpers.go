package schema

import (
	"fmt"
	"strings"
)

// ParsePairs parses a comma-separated pair list into canonical joint pairs.
// Both "l_hand:head" and "l_hand-head" separate the joints; the dash form is
// what pair IDs render as. Joint names themselves never contain either
// separator. Duplicate pairs collapse to one entry; order of first
// appearance is kept.
func ParsePairs(s string) ([]JointPair, error) {
	var pairs []JointPair
	seen := make(map[string]struct{})
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sep := ":"
		if !strings.Contains(part, ":") {
			sep = "-"
		}
		joints := strings.Split(part, sep)
		if len(joints) != 2 {
			return nil, fmt.Errorf("pair %q must have the form jointA:jointB or jointA-jointB", part)
		}
		a := strings.TrimSpace(joints[0])
		b := strings.TrimSpace(joints[1])
		if a == "" || b == "" {
			return nil, fmt.Errorf("pair %q has an empty joint name", part)
		}
		if a == b {
			return nil, fmt.Errorf("pair %q relates a joint to itself", part)
		}
		p := NewJointPair(a, b)
		if _, ok := seen[p.ID()]; ok {
			continue
		}
		seen[p.ID()] = struct{}{}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// FormatFrameTime renders a frame index as a "m:ss.s" time label at the given
// frame rate. Used only for display; the analysis never depends on wall time.
func FormatFrameTime(frame int, fps float64) string {
	if fps <= 0 {
		return fmt.Sprintf("frame %d", frame)
	}
	secs := float64(frame) / fps
	mins := int(secs) / 60
	return fmt.Sprintf("%d:%04.1f", mins, secs-float64(mins*60))
}
