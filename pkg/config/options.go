package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptVMRURL sets the URL of the VMR spreadsheet.
func OptVMRURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("VMR URL", s) {
			c.VMRURL = s
		}
	}
}

// OptXLSXSheet sets the name of the spreadsheet tab with VMR data.
// Empty string selects the first sheet.
func OptXLSXSheet(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.XLSXSheet = s
	}
}

// OptDownloadMaxRetries sets the number of attempts to download the VMR.
func OptDownloadMaxRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Download MaxRetries", i) {
			c.Download.MaxRetries = i
		}
	}
}

// OptDownloadTimeoutSec sets the timeout of one VMR download attempt.
func OptDownloadTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Download TimeoutSec", i) {
			c.Download.TimeoutSec = i
		}
	}
}

// OptRetrievalPipeline sets the chain of commands that fetch one GenBank
// record. A pipeline with a stage without executable is rejected.
func OptRetrievalPipeline(stages []StageConfig) Option {
	res := make([]StageConfig, len(stages))
	for i := range stages {
		res[i] = StageConfig{
			Exec: strings.TrimSpace(stages[i].Exec),
			Args: append([]string(nil), stages[i].Args...),
		}
	}
	return func(c *Config) {
		if isValidPipeline(res) {
			c.Retrieval.Pipeline = res
		}
	}
}

// OptRetrievalTimeoutSec sets the time limit for fetching one accession.
func OptRetrievalTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Retrieval TimeoutSec", i) {
			c.Retrieval.TimeoutSec = i
		}
	}
}

// OptReconcileWithPrune enables removal of flagged record directories.
// Runtime-only field - not in ToOptions().
func OptReconcileWithPrune(b bool) Option {
	return func(c *Config) {
		c.Reconcile.WithPrune = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of records processed concurrently.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
