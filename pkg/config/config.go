// Package config provides configuration management for GNvmr.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - VMR: vmr_url, xlsx_sheet
//   - Download: max_retries, timeout_sec
//   - Retrieval: pipeline, timeout_sec
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Reconcile.WithPrune (update command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNVMR_ prefix with underscores for nesting:
//
//	GNVMR_VMR_URL=https://ictv.global/vmr/current
//	GNVMR_RETRIEVAL_TIMEOUT_SEC=300
//	GNVMR_LOG_LEVEL=info
//	GNVMR_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete GNvmr configuration.
type Config struct {
	// VMRURL is the location of the current VMR spreadsheet.
	VMRURL string `mapstructure:"vmr_url" yaml:"vmr_url"`

	// XLSXSheet is the spreadsheet tab with the VMR table. Empty value
	// means the first sheet.
	XLSXSheet string `mapstructure:"xlsx_sheet" yaml:"xlsx_sheet"`

	// Download contains settings for fetching the VMR spreadsheet.
	Download DownloadConfig `mapstructure:"download" yaml:"download"`

	// Retrieval contains settings of the external GenBank retrieval tool.
	Retrieval RetrievalConfig `mapstructure:"retrieval" yaml:"retrieval"`

	// Reconcile contains settings specific to the update command.
	Reconcile ReconcileConfig `mapstructure:"reconcile" yaml:"reconcile"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of records downloaded concurrently.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DownloadConfig contains HTTP settings for the VMR spreadsheet download.
type DownloadConfig struct {
	// MaxRetries is the number of attempts before giving up.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`

	// TimeoutSec limits the duration of one attempt.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// RetrievalConfig describes how one GenBank record is fetched.
type RetrievalConfig struct {
	// Pipeline is a chain of external commands. Standard output of a stage
	// is the standard input of the next one, output of the last stage is
	// saved as the GenBank file. The AccessionPlaceholder in arguments is
	// replaced by the accession.
	Pipeline []StageConfig `mapstructure:"pipeline" yaml:"pipeline"`

	// TimeoutSec limits the time given to the whole pipeline for one
	// accession. Timed out accessions are treated as failed downloads.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// StageConfig is one external command of the retrieval pipeline.
type StageConfig struct {
	Exec string   `mapstructure:"exec" yaml:"exec"`
	Args []string `mapstructure:"args" yaml:"args"`
}

// ReconcileConfig contains settings specific to the update command.
type ReconcileConfig struct {
	// WithPrune removes directories of flagged records after the table
	// is updated. It is irreversible.
	WithPrune bool `mapstructure:"with_prune" yaml:"with_prune"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		VMRURL: DefaultVMRURL,
		Download: DownloadConfig{
			MaxRetries: 3,
			TimeoutSec: 600,
		},
		Retrieval: RetrievalConfig{
			Pipeline:   DefaultPipeline(),
			TimeoutSec: 300,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// DefaultPipeline returns EDirect commands equivalent to
//
//	esearch -db nuccore -query ACCESSION | efetch -format genbank
func DefaultPipeline() []StageConfig {
	return []StageConfig{
		{
			Exec: "esearch",
			Args: []string{"-db", "nuccore", "-query", AccessionPlaceholder},
		},
		{
			Exec: "efetch",
			Args: []string{"-format", "genbank"},
		},
	}
}
