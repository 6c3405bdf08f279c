package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WritePairResults outputs the per-pair QTC summaries, dispatching based on
// the output format configured.
func WritePairResults(result *schema.AnalysisResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForPairs(w, result)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForPairs(w, result, fmtFloat)
		}, "CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePairTable(result, fmtFloat, w)
		}, "table")
	}
}

// writePairTable generates and writes the human-readable pair summary table.
func writePairTable(result *schema.AnalysisResult, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{
		"Pair", "Approach", "Diverge", "Stationary", "Cross", "MeanΔ (mm)", "StdΔ (mm)", "Candidates",
	})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, pa := range result.Pairs {
		data = append(data, []string{
			pa.Pair.Label(),
			formatPercent(pa.Distribution.Approach),
			formatPercent(pa.Distribution.Diverge),
			formatPercent(pa.Distribution.Stationary),
			formatPercent(pa.Distribution.Cross),
			fmtFloat(pa.MeanAbsDelta),
			fmtFloat(pa.StdAbsDelta),
			strconv.Itoa(len(pa.Candidates)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analyzed %d pairs over %d frames at %.1f fps\n",
		len(result.Pairs), result.TotalFrames, result.FPS); err != nil {
		return err
	}
	for _, failure := range result.Failures {
		if _, err := fmt.Fprintf(writer, "Skipped pair %s: %s\n", failure.Pair.ID(), failure.Err); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVResultsForPairs writes the per-pair summaries in CSV format.
func writeCSVResultsForPairs(w io.Writer, result *schema.AnalysisResult, fmtFloat func(float64) string) error {
	header := []string{
		"pair",
		"approach",
		"diverge",
		"stationary",
		"cross",
		"mean_abs_delta_mm",
		"std_abs_delta_mm",
		"candidates",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, pa := range result.Pairs {
			rec := []string{
				pa.Pair.ID(),
				fmt.Sprintf("%.4f", pa.Distribution.Approach),
				fmt.Sprintf("%.4f", pa.Distribution.Diverge),
				fmt.Sprintf("%.4f", pa.Distribution.Stationary),
				fmt.Sprintf("%.4f", pa.Distribution.Cross),
				fmtFloat(pa.MeanAbsDelta),
				fmtFloat(pa.StdAbsDelta),
				strconv.Itoa(len(pa.Candidates)),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForPairs writes the per-pair summaries in JSON format.
// The raw symbol and distance streams are omitted; they belong in the viewer
// artifact, not a terminal summary.
func writeJSONResultsForPairs(w io.Writer, result *schema.AnalysisResult) error {
	type JSONPairResult struct {
		Pair         schema.JointPair    `json:"pair"`
		Label        string              `json:"label"`
		Distribution schema.Distribution `json:"distribution"`
		MeanAbsDelta float64             `json:"mean_abs_delta_mm"`
		StdAbsDelta  float64             `json:"std_abs_delta_mm"`
		Candidates   int                 `json:"candidates"`
	}

	output := struct {
		FPS         float64              `json:"fps"`
		TotalFrames int                  `json:"total_frames"`
		Pairs       []JSONPairResult     `json:"pairs"`
		Failures    []schema.PairFailure `json:"failures,omitempty"`
	}{
		FPS:         result.FPS,
		TotalFrames: result.TotalFrames,
		Pairs:       make([]JSONPairResult, len(result.Pairs)),
		Failures:    result.Failures,
	}
	for i, pa := range result.Pairs {
		output.Pairs[i] = JSONPairResult{
			Pair:         pa.Pair,
			Label:        pa.Pair.Label(),
			Distribution: pa.Distribution,
			MeanAbsDelta: pa.MeanAbsDelta,
			StdAbsDelta:  pa.StdAbsDelta,
			Candidates:   len(pa.Candidates),
		}
	}
	return writeJSON(w, output)
}
