package capture

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/movelab/motifscan/schema"
)

// WriteSyntheticCSV writes a Captury-style CSV with scripted motion: the hands
// swing toward and away from the head at different tempos, the feet tap
// against the pelvis, and everything else holds still. Benchmarks and
// integration tests use it to get captures of arbitrary length with known
// recurring gestures.
//
// The swings are radial triangle waves with vertices on frame boundaries, so
// the per-frame distance change keeps its magnitude through each reversal and
// every cycle yields one clean approach/diverge episode.
func WriteSyntheticCSV(path string, frames int, fps float64) error {
	if frames < 2 {
		return fmt.Errorf("synthetic capture needs at least 2 frames, got %d", frames)
	}
	if fps <= 0 {
		return fmt.Errorf("synthetic capture needs a positive frame rate, got %v", fps)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create synthetic capture: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "Captury Live;session export")
	fmt.Fprintf(w, "Frame Rate;%g\n", fps)
	fmt.Fprintln(w, "Joints;18")
	fmt.Fprintln(w, "Units;mm")
	fmt.Fprintln(w, "Frame;Time;Flags")

	row := make([]string, minColumns)
	for frame := 0; frame < frames; frame++ {
		for i := range row {
			row[i] = "0.000000"
		}
		row[0] = strconv.Itoa(frame)

		for joint, pos := range syntheticPose(frame) {
			x := jointColumns[joint]
			row[x] = formatMM(pos.X)
			row[x+1] = formatMM(pos.Y)
			row[x+2] = formatMM(pos.Z)
		}
		fmt.Fprintln(w, strings.Join(row, ";"))
	}
	return w.Flush()
}

// syntheticPose returns the scripted joint positions at a frame. Unlisted
// joints stay at the origin, so their pairs read as stationary.
func syntheticPose(frame int) map[string]schema.Vec3 {
	head := schema.Vec3{X: 0, Y: 1700, Z: 0}
	pelvis := schema.Vec3{X: 0, Y: 1000, Z: 0}

	return map[string]schema.Vec3{
		"head":   head,
		"pelvis": pelvis,
		// A slow reach: 2.5s cycles at 60fps, 300-900mm from the head.
		"l_hand": radial(head, schema.Vec3{X: 0.6, Y: -0.8, Z: 0}, 300, 600, frame, 150),
		// A counter-tempo reach on the right, 4s cycles.
		"r_hand": radial(head, schema.Vec3{X: -0.6, Y: -0.8, Z: 0}, 350, 600, frame, 240),
		// Foot taps at step tempo, 1s cycles against the pelvis.
		"l_foot": radial(pelvis, schema.Vec3{X: 0.28, Y: -0.96, Z: 0}, 900, 300, frame, 60),
		"r_foot": radial(pelvis, schema.Vec3{X: -0.28, Y: -0.96, Z: 0}, 900, 300, frame, 60),
	}
}

// radial places a joint on the line through anchor along unit direction dir,
// at distance base + amplitude*triangle(frame/period).
func radial(anchor, dir schema.Vec3, base, amplitude float64, frame, period int) schema.Vec3 {
	r := base + amplitude*triangle(frame, period)
	return schema.Vec3{
		X: anchor.X + r*dir.X,
		Y: anchor.Y + r*dir.Y,
		Z: anchor.Z + r*dir.Z,
	}
}

// triangle is a 0..1..0 wave with vertices exactly on frame boundaries.
func triangle(frame, period int) float64 {
	ph := frame % period
	half := period / 2
	if ph <= half {
		return float64(ph) / float64(half)
	}
	return float64(period-ph) / float64(half)
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
