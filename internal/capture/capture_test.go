package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/movelab/motifscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dataRow renders one 171-column data row with every joint at the origin
// except the given overrides.
func dataRow(frame int, overrides map[string]schema.Vec3) string {
	cells := make([]string, minColumns)
	for i := range cells {
		cells[i] = "0.0"
	}
	cells[0] = fmt.Sprintf("%d", frame)
	for joint, pos := range overrides {
		x := jointColumns[joint]
		cells[x] = fmt.Sprintf("%f", pos.X)
		cells[x+1] = fmt.Sprintf("%f", pos.Y)
		cells[x+2] = fmt.Sprintf("%f", pos.Z)
	}
	return strings.Join(cells, ";")
}

func writeCapture(t *testing.T, header []string, rows []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.csv")
	content := strings.Join(append(header, rows...), "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func standardHeader() []string {
	return []string{
		"Captury Live;1.0.263f",
		"Session;Ekombi;Frame Rate;120;Units;mm",
		"Performer;Sinclair",
		"Joints;CenterOfGravity;LWristPositions;...",
		"Frame;X;Y;Z;X;Y;Z",
	}
}

func TestLoadParsesFramesAndRate(t *testing.T) {
	rows := []string{
		dataRow(0, map[string]schema.Vec3{"l_hand": {X: 100}}),
		dataRow(1, map[string]schema.Vec3{"l_hand": {X: 95}}),
		dataRow(2, map[string]schema.Vec3{"l_hand": {X: 90}}),
	}
	path := writeCapture(t, standardHeader(), rows)

	capture, err := NewCapturySource().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 120.0, capture.FPS)
	assert.Equal(t, 3, capture.FrameCount)
	require.Len(t, capture.Trajectory("l_hand"), 3)
	assert.InDelta(t, 95.0, capture.Trajectory("l_hand")[1].X, 1e-9)
	assert.Len(t, capture.Trajectory("head"), 3, "every mapped joint is captured")
	assert.Nil(t, capture.Trajectory("prop_marker"))
}

func TestLoadDefaultFrameRate(t *testing.T) {
	header := []string{"a", "b", "c", "d", "e"}
	rows := []string{dataRow(0, nil), dataRow(1, nil)}
	path := writeCapture(t, header, rows)

	capture, err := NewCapturySource().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, defaultFPS, capture.FPS)
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	corrupted := strings.Replace(
		dataRow(2, map[string]schema.Vec3{"pelvis": {X: 12345.5}}),
		"12345.500000", "not-a-number", 1)
	rows := []string{
		dataRow(0, nil),
		"1;too;short",
		corrupted,
		dataRow(3, nil),
	}
	path := writeCapture(t, standardHeader(), rows)

	capture, err := NewCapturySource().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, capture.FrameCount)
	for joint := range jointColumns {
		assert.Len(t, capture.Trajectory(joint), 2, joint)
	}
}

func TestLoadRejections(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewCapturySource().Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("no data rows", func(t *testing.T) {
		path := writeCapture(t, standardHeader(), nil)
		_, err := NewCapturySource().Load(context.Background(), path)
		assert.ErrorIs(t, err, schema.ErrInvalidTrajectory)
	})

	t.Run("single usable frame", func(t *testing.T) {
		path := writeCapture(t, standardHeader(), []string{dataRow(0, nil)})
		_, err := NewCapturySource().Load(context.Background(), path)
		assert.ErrorIs(t, err, schema.ErrInvalidTrajectory)
	})

	t.Run("truncated header", func(t *testing.T) {
		path := writeCapture(t, []string{"only", "two"}, nil)
		_, err := NewCapturySource().Load(context.Background(), path)
		assert.ErrorIs(t, err, schema.ErrInvalidTrajectory)
	})

	t.Run("canceled context", func(t *testing.T) {
		path := writeCapture(t, standardHeader(), []string{dataRow(0, nil), dataRow(1, nil)})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewCapturySource().Load(ctx, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDownsample(t *testing.T) {
	traj := make([]schema.Vec3, 10)
	for i := range traj {
		traj[i] = schema.Vec3{X: float64(i)}
	}
	c := &schema.Capture{
		FPS:        60,
		FrameCount: 10,
		Joints:     map[string][]schema.Vec3{"head": traj},
	}

	down := Downsample(c, 2)
	assert.Equal(t, 5, down.FrameCount)
	assert.Equal(t, 30.0, down.FPS)
	assert.Equal(t, 4.0, down.Trajectory("head")[2].X)

	assert.Same(t, c, Downsample(c, 1), "stride 1 is a no-op")
}
