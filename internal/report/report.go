// Package report renders visual summaries of an analysis run: an interactive
// HTML page built with go-echarts (per-pair distance scatters plus a motif
// score bar chart) and a static PNG distance plot built with gonum/plot.
package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
)

const (
	// HTMLFileName is the interactive report written into the report directory.
	HTMLFileName = "report.html"

	// PNGFileName is the static distance plot written into the report directory.
	PNGFileName = "distances.png"

	// maxScatterPoints caps the per-pair scatter payload so long captures
	// stay renderable in a browser.
	maxScatterPoints = 8000
)

// WriteAll renders the full report set into cfg.ReportDir: the go-echarts
// HTML page and the gonum/plot PNG. The directory is created if missing.
func WriteAll(result *schema.AnalysisResult, cfg *contract.Config) error {
	if cfg.ReportDir == "" {
		return fmt.Errorf("%w: report directory is empty", schema.ErrInvalidConfig)
	}
	if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := WriteHTMLReport(result, cfg, filepath.Join(cfg.ReportDir, HTMLFileName)); err != nil {
		return err
	}
	return WriteDistancePlot(result, filepath.Join(cfg.ReportDir, PNGFileName))
}

// WriteHTMLReport assembles the chart page and renders it to path.
func WriteHTMLReport(result *schema.AnalysisResult, cfg *contract.Config, path string) error {
	page := BuildPage(result, cfg)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := page.Render(file); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// BuildPage assembles one page holding the motif score bar chart followed by
// a distance scatter per analyzed pair, in result order.
func BuildPage(result *schema.AnalysisResult, cfg *contract.Config) *components.Page {
	page := components.NewPage()
	page.PageTitle = "Motion Motif Report"

	if len(result.Clusters) > 0 {
		page.AddCharts(motifScoreChart(result, cfg))
	}
	for i := range result.Pairs {
		page.AddCharts(distanceChart(&result.Pairs[i], result.FPS, cfg.ThresholdFor(result.Pairs[i].Pair)))
	}
	return page
}

// motifScoreChart builds a bar chart of ranked cluster scores. Bars are
// labeled "<rank>. <label>" so repeated vocabulary names stay distinct.
func motifScoreChart(result *schema.AnalysisResult, cfg *contract.Config) *charts.Bar {
	x := make([]string, 0, len(result.Clusters))
	y := make([]opts.BarData, 0, len(result.Clusters))
	for i, c := range result.Clusters {
		x = append(x, fmt.Sprintf("%d. %s", i+1, c.Label))
		y = append(y, opts.BarData{Value: math.Round(c.Score*10) / 10})
	}

	subtitle := fmt.Sprintf("top %d of %d detected · threshold %.1f mm · %s",
		len(result.Clusters), result.TotalDetected, cfg.ThresholdMM, time.Now().Format(time.RFC3339))

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Motif Salience", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score", Min: 0, Max: 100}),
	)
	bar.SetXAxis(x).
		AddSeries("score", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// distanceChart builds a scatter of a pair's distance trace over time, with
// the per-frame |delta| mapped to color so approach/diverge bursts stand out
// against the stationary band.
func distanceChart(pa *schema.PairAnalysis, fps, threshold float64) *charts.Scatter {
	stride := 1
	if len(pa.Distances) > maxScatterPoints {
		stride = int(math.Ceil(float64(len(pa.Distances)) / float64(maxScatterPoints)))
	}

	data := make([]opts.ScatterData, 0, len(pa.Distances)/stride+1)
	maxDelta := threshold // keep the color ramp meaningful for quiet pairs
	for i := 0; i < len(pa.Distances); i += stride {
		t := frameTime(i, fps)
		delta := 0.0
		if i > 0 {
			delta = math.Abs(pa.Distances[i] - pa.Distances[i-1])
		}
		if delta > maxDelta {
			maxDelta = delta
		}
		data = append(data, opts.ScatterData{Value: []interface{}{t, pa.Distances[i], delta}})
	}

	subtitle := fmt.Sprintf("mean |Δ| %.2f mm · std %.2f mm · %d candidates · stride %d",
		pa.MeanAbsDelta, pa.StdAbsDelta, len(pa.Candidates), stride)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: pa.Pair.Label(), Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Distance (mm)", NameLocation: "middle", NameGap: 45}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxDelta),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#31688e", "#35b779", "#fde725"}},
		}),
	)
	scatter.AddSeries("distance", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))
	return scatter
}

// WriteDistancePlot renders every pair's distance trace as one line each on
// a single PNG plot, legend keyed by pair label.
func WriteDistancePlot(result *schema.AnalysisResult, path string) error {
	p := plot.New()
	p.Title.Text = "Joint Pair Distances"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Distance (mm)"
	p.Legend.Top = true

	for i := range result.Pairs {
		pa := &result.Pairs[i]
		pts := make(plotter.XYs, 0, len(pa.Distances))
		for f, d := range pa.Distances {
			pts = append(pts, plotter.XY{X: frameTime(f, result.FPS), Y: d})
		}
		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to build line for %s: %w", pa.Pair.ID(), err)
		}
		line.Color = plotColor(i)
		p.Add(line)
		p.Legend.Add(pa.Pair.Label(), line)
	}

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save distance plot: %w", err)
	}
	return nil
}

// plotColor picks a distinct line color per pair index, cycling evenly
// around the hue wheel so adjacent traces stay distinguishable.
func plotColor(i int) color.Color {
	hues := []color.RGBA{
		{R: 49, G: 104, B: 142, A: 255},
		{R: 53, G: 183, B: 121, A: 255},
		{R: 237, G: 100, B: 90, A: 255},
		{R: 253, G: 190, B: 37, A: 255},
		{R: 142, G: 68, B: 173, A: 255},
		{R: 38, G: 130, B: 142, A: 255},
		{R: 214, G: 97, B: 162, A: 255},
		{R: 110, G: 110, B: 110, A: 255},
	}
	return hues[i%len(hues)]
}

// frameTime converts a frame index to seconds, guarding a zero frame rate.
func frameTime(frame int, fps float64) float64 {
	if fps <= 0 {
		return float64(frame)
	}
	return float64(frame) / fps
}
