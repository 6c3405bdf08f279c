// Package main provides a performance benchmarking tool for the Motifscan CLI.
// It measures execution times across synthetic capture sessions of different
// lengths and command types, running each test multiple times, treating the
// first successful run as cold and averaging the rest as warm, generating CSV
// output for performance analysis and documentation.
//
// Prerequisites:
// - motifscan binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory to generate synthetic capture sessions into
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/movelab/motifscan/internal/capture"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Session  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir      string
	Timeout      time.Duration
	Runs         int
	FPS          float64
	SessionSizes map[string]int
	WorkerCounts []int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 5 * time.Minute,
		Runs:    4,
		FPS:     60,
		SessionSizes: map[string]int{
			"short":  1800,   // 30s
			"medium": 18000,  // 5min
			"long":   108000, // 30min
		},
		WorkerCounts: []int{1, 4, 8},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	sessions, err := generateSessions(config)
	if err != nil {
		fmt.Printf("Failed to generate sessions: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, sessions)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the motifscan binary and work directory exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("motifscan"); err != nil {
		return fmt.Errorf("motifscan binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0755); err != nil {
		return fmt.Errorf("cannot create work dir: %w", err)
	}
	return nil
}

// generateSessions writes one synthetic capture per configured size and
// returns name -> path.
func generateSessions(config BenchmarkConfig) (map[string]string, error) {
	sessions := make(map[string]string, len(config.SessionSizes))
	for name, frames := range config.SessionSizes {
		path := filepath.Join(config.WorkDir, fmt.Sprintf("session_%s.csv", name))
		fmt.Printf("Generating %s session (%d frames)\n", name, frames)
		if err := capture.WriteSyntheticCSV(path, frames, config.FPS); err != nil {
			return nil, err
		}
		sessions[name] = path
	}
	return sessions, nil
}

// runBenchmarks executes all benchmark tests across configured sessions.
func runBenchmarks(config BenchmarkConfig, sessions map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sessions, %v timeout, %d runs each\n",
		len(sessions), config.Timeout, config.Runs)

	for name, path := range sessions {
		fmt.Printf("Benchmarking %s\n", name)

		// Ranked analysis at each worker count
		for _, workers := range config.WorkerCounts {
			command := fmt.Sprintf("analyze (workers=%d)", workers)
			args := []string{"analyze", path, "--workers", fmt.Sprintf("%d", workers)}
			results = append(results, runBenchmarkSuite(config, name, command, args))
		}

		// Per-pair summaries
		results = append(results, runBenchmarkSuite(config, name, "pairs",
			[]string{"pairs", path}))
	}

	return results
}

// runBenchmarkSuite runs one command repeatedly and summarizes cold/warm times.
func runBenchmarkSuite(config BenchmarkConfig, session, command string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s (%d runs)\n", command, session, config.Runs)

	cold, warmTimes := runBenchmark(config, args)

	coldTimeStr := "TIMEOUT"
	if cold > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", cold)
	}

	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Session:  session,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a motifscan command multiple times and returns the
// cold time plus the warm times.
func runBenchmark(config BenchmarkConfig, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("motifscan", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, args[0]) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	if command == "pairs" {
		return strings.Contains(outputStr, "Analyzed") && strings.Contains(outputStr, "pairs over")
	}
	return strings.Contains(outputStr, "Showing top") && strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/motifscan_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"session", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Session, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, result := range results {
		fmt.Printf("  %-8s %-20s: Cold: %s, Warm: %s\n",
			result.Session, result.Command, result.ColdTime, result.WarmTime)
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
