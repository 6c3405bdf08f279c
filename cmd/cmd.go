// Package cmd defines the command-line interface for motifscan.
package cmd

import (
	"github.com/movelab/motifscan/internal/contract"
	"github.com/movelab/motifscan/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(pairsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Float64P("threshold", "t", contract.DefaultThresholdMM, "Stationary/cross distance boundary in millimeters")
	rootCmd.PersistentFlags().StringP("pairs", "p", "", "Comma-separated joint pairs to analyze (e.g. 'head-l_hand,l_foot-pelvis')")
	rootCmd.PersistentFlags().IntP("top-n", "n", contract.DefaultTopN, "Number of ranked motifs to display")
	rootCmd.PersistentFlags().Int("min-duration", contract.DefaultMinDuration, "Minimum motif length in frames")
	rootCmd.PersistentFlags().Float64("similarity-cutoff", contract.DefaultSimilarityCutoff, "Alignment similarity required to join a cluster (0-1]")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent per-pair workers")
	rootCmd.PersistentFlags().String("output", string(schema.TableOut), "Output format: table or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-motif metadata (similarity, net/peak distance change)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("run-backend", string(schema.NoneBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().Bool("explain", false, "Print per-motif component score breakdown")
	analyzeCmd.Flags().String("artifact-file", "", "Optional path to write the viewer artifact JSON")
	analyzeCmd.Flags().Int("sample-rate", contract.DefaultSampleRate, "Frame stride for the viewer artifact")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("report-dir", "reports", "Directory to write the HTML report and distance plot into")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of runsListCmd to Viper
	runsListCmd.Flags().IntP("limit", "l", 50, "Number of rows to list")
	if err := viper.BindPFlags(runsListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs list flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
