package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Salience label constants.
const (
	PrimaryValue  = "Primary"  // dominant recurring motif
	StrongValue   = "Strong"   // strong recurring motif
	ModerateValue = "Moderate" // moderate recurrence or salience
	FaintValue    = "Faint"    // barely above the noise cutoffs
)

// Color variables for console output.
var (
	PrimaryColor  = color.New(color.FgGreen, color.Bold) // primaryColor marks the headline motifs.
	StrongColor   = color.New(color.FgCyan, color.Bold)  // strongColor marks clearly recurring motifs.
	ModerateColor = color.New(color.FgYellow)            // moderateColor represents middling evidence, not bold.
	FaintColor    = color.New(color.FgWhite)             // faintColor represents low-confidence signal.
)

// GetPlainLabel returns a plain text salience label based on the cluster score.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return PrimaryValue
	case score >= 60:
		return StrongValue
	case score >= 40:
		return ModerateValue
	default:
		return FaintValue
	}
}

// GetColorLabel returns a colored salience label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case PrimaryValue:
		return PrimaryColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Faint"
		return FaintColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateLabel shortens a label to maxWidth runes, marking the cut with "…".
func TruncateLabel(label string, maxWidth int) string {
	rr := []rune(label)
	if maxWidth <= 1 || len(rr) <= maxWidth {
		return label
	}
	return string(rr[:maxWidth-1]) + "…"
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".motifscan_runs.db"
	}
	return filepath.Join(homeDir, ".motifscan_runs.db")
}
