package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Reconcile.WithPrune).
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.VMRURL
	if s != "" {
		res = append(res, OptVMRURL(s))
	}
	s = c.XLSXSheet
	if s != "" {
		res = append(res, OptXLSXSheet(s))
	}

	i = c.Download.MaxRetries
	if i > 0 {
		res = append(res, OptDownloadMaxRetries(i))
	}
	i = c.Download.TimeoutSec
	if i > 0 {
		res = append(res, OptDownloadTimeoutSec(i))
	}

	if len(c.Retrieval.Pipeline) > 0 {
		res = append(res, OptRetrievalPipeline(c.Retrieval.Pipeline))
	}
	i = c.Retrieval.TimeoutSec
	if i > 0 {
		res = append(res, OptRetrievalTimeoutSec(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		gn.Warn("<em>%s</em> is not a valid http(s) URL, ignoring '%s'", name, s)
		return false
	}
	return true
}

func isValidPipeline(stages []StageConfig) bool {
	if len(stages) == 0 {
		gn.Warn("<em>Retrieval Pipeline</em> cannot be empty, ignoring")
		return false
	}
	for i, v := range stages {
		if v.Exec == "" {
			gn.Warn(
				"<em>Retrieval Pipeline</em> stage %d has no executable, ignoring",
				i+1,
			)
			return false
		}
	}
	return true
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
