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

// timeFormat is the display format for run timestamps.
const timeFormat = "2006-01-02 15:04:05"

// WriteRunResults outputs tracked run records, dispatching based on the
// output format configured.
func WriteRunResults(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForRuns(w, runs)
		}, "CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunTable(runs, w)
		}, "table")
	}
}

// writeRunTable generates and writes the human-readable run listing.
func writeRunTable(runs []schema.RunRecord, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run", "UUID", "Started", "Ended", "Motifs"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, run := range runs {
		ended := "running"
		if run.EndTime != nil {
			ended = run.EndTime.Format(timeFormat)
		}
		data = append(data, []string{
			strconv.FormatInt(run.RunID, 10),
			run.RunUUID,
			run.StartTime.Format(timeFormat),
			ended,
			strconv.Itoa(run.TotalDetected),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d tracked runs\n", len(runs))
	return err
}

// writeCSVResultsForRuns writes the run records in CSV format.
func writeCSVResultsForRuns(w io.Writer, runs []schema.RunRecord) error {
	header := []string{"run_id", "run_uuid", "start_time", "end_time", "total_detected"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, run := range runs {
			ended := ""
			if run.EndTime != nil {
				ended = run.EndTime.Format(timeFormat)
			}
			rec := []string{
				strconv.FormatInt(run.RunID, 10),
				run.RunUUID,
				run.StartTime.Format(timeFormat),
				ended,
				strconv.Itoa(run.TotalDetected),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteStatusResult prints the run-store status summary.
func WriteStatusResult(status schema.RunStoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Backend:  %s\n", status.Backend); err != nil {
			return err
		}
		if status.Location != "" {
			if _, err := fmt.Fprintf(w, "Location: %s\n", status.Location); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Runs:     %d\n", status.RunCount); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "Motifs:   %d\n", status.MotifCount)
		return err
	}, "status")
}
