package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMotifResults outputs the ranked clusters, dispatching based on the output format configured.
func WriteMotifResults(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForMotifs(w, result)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForMotifs(w, result, fmtFloat, intFmt)
		}, "CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMotifTable(result, cfg, fmtFloat, duration, w)
		}, "table")
	}
}

// writeMotifTable generates and writes the human-readable table.
func writeMotifTable(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Label", "Pair", "Start", "Duration", "Count", "Score", "Salience"}
	if cfg.Detail {
		headers = append(headers, "AvgSim", "NetΔ (mm)", "PeakΔ (mm)")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxLabel := GetMaxTableLabelWidth(cfg)
	var data [][]string
	for i, c := range result.Clusters {
		rep := c.Representative
		label := c.Label
		salience := contract.GetPlainLabel(c.Score)
		if cfg.UseColors {
			salience = contract.GetColorLabel(c.Score)
		}
		row := []string{
			strconv.Itoa(i + 1),                          // Rank
			contract.TruncateLabel(label, maxLabel),      // Label
			rep.Pair.ID(),                                // Pair
			schema.FormatFrameTime(rep.StartFrame, result.FPS),            // Start
			fmt.Sprintf("%.1fs", rep.DurationSeconds(result.FPS)),         // Duration
			strconv.Itoa(c.MemberCount()),                                 // Count
			fmtFloat(c.Score),                                             // Score
			salience,                                                      // Salience
		}
		if cfg.Detail {
			row = append(
				row,
				fmt.Sprintf("%.2f", c.AvgSimilarity), // AvgSim
				fmtFloat(rep.NetDeltaMM),             // NetDelta
				fmtFloat(rep.PeakDeltaMM),            // PeakDelta
			)
		}
		if cfg.Explain {
			row = append(row, formatScoreBreakdown(&c)) // Breakdown explanation
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Compute summary stats
	if _, err := fmt.Fprintf(writer, "Showing top %d of %d detected motifs across %d pairs\n",
		len(result.Clusters), result.TotalDetected, len(result.Pairs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	for _, failure := range result.Failures {
		if _, err := fmt.Fprintf(writer, "Skipped pair %s: %s\n", failure.Pair.ID(), failure.Err); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVResultsForMotifs writes the ranked clusters in CSV format.
func writeCSVResultsForMotifs(w io.Writer, result *schema.AnalysisResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"label",
		"pair",
		"shape",
		"start_frame",
		"end_frame",
		"duration_sec",
		"count",
		"avg_similarity",
		"net_delta_mm",
		"peak_delta_mm",
		"score",
		"salience",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, c := range result.Clusters {
			rep := c.Representative
			rec := []string{
				strconv.Itoa(i + 1),
				c.Label,
				rep.Pair.ID(),
				string(c.Shape),
				fmt.Sprintf(intFmt, rep.StartFrame),
				fmt.Sprintf(intFmt, rep.EndFrame),
				fmt.Sprintf("%.2f", rep.DurationSeconds(result.FPS)),
				fmt.Sprintf(intFmt, c.MemberCount()),
				fmt.Sprintf("%.3f", c.AvgSimilarity),
				fmtFloat(rep.NetDeltaMM),
				fmtFloat(rep.PeakDeltaMM),
				fmtFloat(c.Score),
				contract.GetPlainLabel(c.Score),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForMotifs writes the ranked clusters in JSON format.
func writeJSONResultsForMotifs(w io.Writer, result *schema.AnalysisResult) error {
	// 1. Prepare the data structure for JSON with rank and salience added
	type JSONMotifResult struct {
		Rank     int    `json:"rank"`
		Salience string `json:"salience"`
		schema.MotifCluster
	}

	output := struct {
		FPS           float64           `json:"fps"`
		TotalFrames   int               `json:"total_frames"`
		TotalDetected int               `json:"total_detected"`
		Motifs        []JSONMotifResult `json:"motifs"`
		Failures      []schema.PairFailure `json:"failures,omitempty"`
	}{
		FPS:           result.FPS,
		TotalFrames:   result.TotalFrames,
		TotalDetected: result.TotalDetected,
		Motifs:        make([]JSONMotifResult, len(result.Clusters)),
		Failures:      result.Failures,
	}
	for i, c := range result.Clusters {
		output.Motifs[i] = JSONMotifResult{
			Rank:         i + 1,
			Salience:     contract.GetPlainLabel(c.Score),
			MotifCluster: c,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// formatScoreBreakdown renders the dominant score components for explain mode,
// largest contribution first.
func formatScoreBreakdown(c *schema.MotifCluster) string {
	type part struct {
		key   schema.BreakdownKey
		value float64
	}
	parts := make([]part, 0, len(c.Breakdown))
	for k, v := range c.Breakdown {
		parts = append(parts, part{k, v})
	}
	sort.Slice(parts, func(i, j int) bool {
		if parts[i].value != parts[j].value {
			return parts[i].value > parts[j].value
		}
		return parts[i].key < parts[j].key
	})

	rendered := make([]string, 0, len(parts))
	for _, p := range parts {
		rendered = append(rendered, fmt.Sprintf("%s=%.1f", p.key, p.value))
	}
	return strings.Join(rendered, " ")
}
