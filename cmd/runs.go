package cmd

import (
	"fmt"
	"strings"

	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/internal/outwriter"
	"github.com/movelab/motifscan/internal/parquet"
	"github.com/movelab/motifscan/internal/runstore"
	"github.com/movelab/motifscan/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsSetup loads the minimal configuration needed for run-store operations.
// This avoids capture loading and full config processing for simple
// bookkeeping commands.
func runsSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("run-backend")
	connStr := viper.GetString("run-db-connect")

	// Handle empty backend as NoneBackend
	backend := schema.DatabaseBackend(strings.ToLower(backendStr))
	if backend == "" {
		backend = schema.NoneBackend
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	output := schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if output == "" {
		output = schema.TableOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("unknown output format %q", viper.GetString("output"))
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	cfg.Output = output
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = contract.DefaultPrecision
	return nil
}

// runsMigrateSetup is a specialized setup that does NOT open the store or
// create tables, allowing migrations to run on a fresh database.
func runsMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("run-backend")
	connStr := viper.GetString("run-db-connect")

	backend := schema.DatabaseBackend(strings.ToLower(backendStr))
	if backend == "" {
		backend = schema.NoneBackend
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunDBFilePath()
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	return nil
}

// openRunStore opens the configured run store for a single command.
func openRunStore() (contract.RunStore, error) {
	return runstore.NewRunStore(cfg.RunBackend, cfg.RunDBConnect)
}

// runsCmd groups the run-tracking management commands.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage tracked analysis runs and exports",
	Long: `Manage the historical record of analysis runs.

When run tracking is enabled, every analyze invocation stores:
- Run metadata (timestamps, configuration, detected motif count)
- The ranked motifs of the run (label, pair, span, score)

This enables longitudinal comparison across capture sessions and data
export for notebooks and BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show recent tracked runs
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  motifscan runs status --run-backend sqlite

  # Export for analysis in pandas/DuckDB
  motifscan runs export --run-backend sqlite --output-file runs.parquet`,
}

// runsListCmd lists recent tracked runs.
var runsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show recent tracked analysis runs, newest first",
	PreRunE: runsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openRunStore()
		if err != nil {
			contract.LogFatal("Failed to open run store", err)
		}
		defer func() { _ = store.Close() }()

		runs, err := store.ListRuns(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		if err := outwriter.NewOutWriter().WriteRuns(runs, cfg); err != nil {
			contract.LogFatal("Failed to write runs", err)
		}
	},
}

// runsStatusCmd shows run-tracking statistics.
var runsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display run tracking statistics and connection details",
	PreRunE: runsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openRunStore()
		if err != nil {
			contract.LogFatal("Failed to open run store", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.Status()
		if err != nil {
			contract.LogFatal("Failed to get run store status", err)
		}
		if err := outwriter.NewOutWriter().WriteStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write status", err)
		}
	},
}

// runsExportCmd exports tracked data to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tracked runs and motifs to Parquet for analytics",
	Long: `Export all stored run-tracking data to Parquet format.

Exports two datasets next to the requested output path:
- <name>-runs.parquet   - metadata about each analysis run
- <name>-motifs.parquet - the ranked motifs of every run

Requires: --output-file parameter

Examples:
  # Export all data
  motifscan runs export --run-backend sqlite --output-file sessions.parquet

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('sessions-motifs.parquet') LIMIT 10"`,
	PreRunE: runsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openRunStore()
		if err != nil {
			contract.LogFatal("Failed to open run store", err)
		}
		defer func() { _ = store.Close() }()

		if err := exportRuns(store, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run data", err)
		}
	},
}

// runsClearCmd clears the tracked data.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all tracked runs and motifs",
	Long: `Delete all stored analysis runs and their ranked motifs.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  motifscan runs export --run-backend sqlite --output-file backup.parquet
  motifscan runs clear --run-backend sqlite`,
	PreRunE: runsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openRunStore()
		if err != nil {
			contract.LogFatal("Failed to open run store", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear run data", err)
		}
		fmt.Println("Run tracking data cleared successfully.")
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  motifscan runs migrate --run-backend sqlite

  # Rollback to initial state
  motifscan runs migrate --run-backend sqlite --target-version 0`,
	PreRunE: runsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.Migrate(cfg.RunBackend, cfg.RunDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// exportRuns writes the runs and motifs datasets next to the requested path.
func exportRuns(store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("--output-file is required for export")
	}

	runs, err := store.ListRuns(0)
	if err != nil {
		return fmt.Errorf("failed to read runs: %w", err)
	}
	motifs, err := store.ListMotifs(0)
	if err != nil {
		return fmt.Errorf("failed to read motifs: %w", err)
	}

	base := strings.TrimSuffix(outputFile, ".parquet")
	runsPath := base + "-runs.parquet"
	motifsPath := base + "-motifs.parquet"

	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsPath); err != nil {
		return err
	}
	if err := parquet.WriteMotifsParquet(parquet.ConvertMotifRecords(motifs), motifsPath); err != nil {
		return err
	}

	fmt.Printf("Exported %d runs to %s\n", len(runs), runsPath)
	fmt.Printf("Exported %d motifs to %s\n", len(motifs), motifsPath)
	return nil
}
