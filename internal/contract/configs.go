package contract

import (
	"fmt"
	"maps"
	"runtime"
	"strings"

	"github.com/movelab/motifscan/schema"
)

// Default values for configuration.
const (
	DefaultThresholdMM      = 2.5  // stationary/cross decision boundary in millimeters
	DefaultTopN             = 15   // cluster truncation size
	DefaultMinDuration      = 60   // minimum motif length in frames (1s at the reference 60fps)
	DefaultSimilarityCutoff = 0.75 // clustering threshold on alignment similarity
	DefaultSampleRate       = 2    // artifact frame stride
	DefaultPrecision        = 1
	MaxTopN                 = 500
)

// DefaultWorkers is the default number of concurrent per-pair workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the validated runtime configuration for the analysis.
// It is passed explicitly into each engine call; there is no process-wide
// mutable analysis state, so multiple sessions can run concurrently.
type Config struct {
	CapturePath string

	ThresholdMM    float64            // global stationary/cross boundary
	PairThresholds map[string]float64 // per-pair overrides keyed by pair ID
	Pairs          []schema.JointPair

	TopN             int
	MinDuration      int // frames
	SimilarityCutoff float64
	Workers          int

	Output       schema.OutputMode
	OutputFile   string
	ArtifactFile string
	SampleRate   int
	ReportDir    string

	Detail    bool
	Explain   bool
	Precision int
	Width     int // terminal width override (0 = auto-detect)
	UseColors bool

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // please use env var as this is plaintext

	// AlignWeights are the tunable alignment penalties of the SAM ranker.
	AlignWeights schema.AlignWeights

	// ScoreWeights is the final cluster-score weight map, computed from
	// defaults + config-file overrides.
	ScoreWeights map[schema.BreakdownKey]float64
}

// ThresholdFor returns the stationary/cross boundary for a pair, honoring
// per-pair overrides from the config file.
func (c *Config) ThresholdFor(pair schema.JointPair) float64 {
	if t, ok := c.PairThresholds[pair.ID()]; ok {
		return t
	}
	return c.ThresholdMM
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Pairs != nil {
		clone.Pairs = make([]schema.JointPair, len(c.Pairs))
		copy(clone.Pairs, c.Pairs)
	}
	if c.PairThresholds != nil {
		clone.PairThresholds = make(map[string]float64, len(c.PairThresholds))
		maps.Copy(clone.PairThresholds, c.PairThresholds)
	}
	if c.ScoreWeights != nil {
		clone.ScoreWeights = make(map[schema.BreakdownKey]float64, len(c.ScoreWeights))
		maps.Copy(clone.ScoreWeights, c.ScoreWeights)
	}
	return &clone
}

// AlignWeightsRaw holds the optional alignment-penalty overrides from the
// YAML config file. Use float64 pointers so absent keys keep defaults.
type AlignWeightsRaw struct {
	SymbolMismatch *float64 `mapstructure:"symbol_mismatch"`
	LengthMismatch *float64 `mapstructure:"length_mismatch"`
	Gap            *float64 `mapstructure:"gap"`
}

// ScoreWeightsRaw holds the optional cluster-score weight overrides from the
// YAML config file.
type ScoreWeightsRaw struct {
	Recurrence *float64 `mapstructure:"recurrence"`
	Salience   *float64 `mapstructure:"salience"`
	Amplitude  *float64 `mapstructure:"amplitude"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	CapturePathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Threshold        float64 `mapstructure:"threshold"`
	PairsStr         string  `mapstructure:"pairs"`
	TopN             int     `mapstructure:"top-n"`
	MinDuration      int     `mapstructure:"min-duration"`
	SimilarityCutoff float64 `mapstructure:"similarity-cutoff"`
	Workers          int     `mapstructure:"workers"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	ArtifactFile     string  `mapstructure:"artifact-file"`
	SampleRate       int     `mapstructure:"sample-rate"`
	Detail           bool    `mapstructure:"detail"`
	Precision        int     `mapstructure:"precision"`
	Width            int     `mapstructure:"width"`
	Color            string  `mapstructure:"color"`
	RunBackend       string  `mapstructure:"run-backend"`
	RunDBConnect     string  `mapstructure:"run-db-connect"`

	// --- Fields from analyzeCmd.Flags() ---
	Explain bool `mapstructure:"explain"`

	// --- Fields from reportCmd.Flags() ---
	ReportDir string `mapstructure:"report-dir"`

	// --- Config-file-only sections ---
	AlignWeights   AlignWeightsRaw    `mapstructure:"align_weights"`
	ScoreWeights   ScoreWeightsRaw    `mapstructure:"score_weights"`
	PairThresholds map[string]float64 `mapstructure:"pair_thresholds"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct. Any failure here is fatal to the
// whole run: no partial analysis starts on a bad configuration.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return fmt.Errorf("%w: %w", schema.ErrInvalidConfig, err)
	}
	if err := processPairs(cfg, input); err != nil {
		return fmt.Errorf("%w: %w", schema.ErrInvalidConfig, err)
	}
	if err := processWeights(cfg, input); err != nil {
		return fmt.Errorf("%w: %w", schema.ErrInvalidConfig, err)
	}
	return nil
}

// validateSimpleInputs handles the scalar options and their bounds.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %v", input.Threshold)
	}
	cfg.ThresholdMM = input.Threshold

	if input.TopN <= 0 {
		return fmt.Errorf("top-n must be positive, got %d", input.TopN)
	}
	if input.TopN > MaxTopN {
		return fmt.Errorf("top-n cannot exceed %d", MaxTopN)
	}
	cfg.TopN = input.TopN

	if input.MinDuration < 1 {
		return fmt.Errorf("min-duration must be at least 1 frame, got %d", input.MinDuration)
	}
	cfg.MinDuration = input.MinDuration

	if input.SimilarityCutoff <= 0 || input.SimilarityCutoff > 1 {
		return fmt.Errorf("similarity-cutoff must be in (0, 1], got %v", input.SimilarityCutoff)
	}
	cfg.SimilarityCutoff = input.SimilarityCutoff

	if input.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.SampleRate < 1 {
		return fmt.Errorf("sample-rate must be at least 1, got %d", input.SampleRate)
	}
	cfg.SampleRate = input.SampleRate

	output := schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("unknown output format %q", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile
	cfg.ArtifactFile = input.ArtifactFile
	cfg.ReportDir = input.ReportDir

	backend := schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("unknown run-backend %q", input.RunBackend)
	}
	if err := ValidateDatabaseConnectionString(backend, input.RunDBConnect); err != nil {
		return err
	}
	cfg.RunBackend = backend
	cfg.RunDBConnect = input.RunDBConnect

	precision := input.Precision
	if precision < 1 {
		precision = 1
	}
	if precision > 2 {
		precision = 2
	}
	cfg.Precision = precision
	cfg.Width = input.Width
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.UseColors = parseBoolFlag(input.Color, true)
	cfg.CapturePath = input.CapturePathStr
	return nil
}

// processPairs resolves the joint-pair relation set and per-pair thresholds.
func processPairs(cfg *Config, input *ConfigRawInput) error {
	if strings.TrimSpace(input.PairsStr) == "" {
		cfg.Pairs = make([]schema.JointPair, len(schema.DefaultPairs))
		copy(cfg.Pairs, schema.DefaultPairs)
	} else {
		pairs, err := schema.ParsePairs(input.PairsStr)
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			return fmt.Errorf("joint-pair set is empty")
		}
		cfg.Pairs = pairs
	}

	if len(input.PairThresholds) > 0 {
		cfg.PairThresholds = make(map[string]float64, len(input.PairThresholds))
		for id, t := range input.PairThresholds {
			if t <= 0 {
				return fmt.Errorf("pair threshold for %q must be positive, got %v", id, t)
			}
			cfg.PairThresholds[id] = t
		}
	}
	return nil
}

// processWeights merges config-file overrides into the default alignment
// penalties and cluster-score weights.
func processWeights(cfg *Config, input *ConfigRawInput) error {
	aw := schema.DefaultAlignWeights()
	if v := input.AlignWeights.SymbolMismatch; v != nil {
		aw.SymbolMismatch = *v
	}
	if v := input.AlignWeights.LengthMismatch; v != nil {
		aw.LengthMismatch = *v
	}
	if v := input.AlignWeights.Gap; v != nil {
		aw.Gap = *v
	}
	if aw.SymbolMismatch < 0 || aw.LengthMismatch < 0 || aw.Gap < 0 {
		return fmt.Errorf("alignment weights must be non-negative")
	}
	cfg.AlignWeights = aw

	sw := schema.DefaultScoreWeights()
	if v := input.ScoreWeights.Recurrence; v != nil {
		sw[schema.BreakdownRecurrence] = *v
	}
	if v := input.ScoreWeights.Salience; v != nil {
		sw[schema.BreakdownSalience] = *v
	}
	if v := input.ScoreWeights.Amplitude; v != nil {
		sw[schema.BreakdownAmplitude] = *v
	}
	var total float64
	for key, w := range sw {
		if w < 0 {
			return fmt.Errorf("score weight %q must be non-negative", key)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("score weights must not all be zero")
	}
	cfg.ScoreWeights = sw
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string should look like user:pass@tcp(host:port)/dbname")
		}
		return nil
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		return nil
	default:
		return fmt.Errorf("unsupported backend %q", backend)
	}
}

// parseBoolFlag interprets the yes/no style string flags.
func parseBoolFlag(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}
