package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in a valid
// state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option

	if s := c.Database.Host; s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	if i := c.Database.Port; i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	if s := c.Database.User; s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	if s := c.Database.Password; s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	if s := c.Database.Database; s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	if s := c.Database.SSLMode; s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	if i := c.Database.BatchSize; i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}

	if i := c.Fetch.Attempts; i > 0 {
		res = append(res, OptFetchAttempts(i))
	}
	if i := c.Fetch.DelaySec; i >= 0 {
		res = append(res, OptFetchDelaySec(i))
	}
	if f := c.Fetch.RequestsPerSec; f > 0 {
		res = append(res, OptFetchRequestsPerSec(f))
	}

	if s := c.Pipeline.WorkDir; s != "" {
		res = append(res, OptPipelineWorkDir(s))
	}
	if s := c.Pipeline.BackupDir; s != "" {
		res = append(res, OptPipelineBackupDir(s))
	}
	if i := c.Pipeline.MaxActiveRuns; i > 0 {
		res = append(res, OptPipelineMaxActiveRuns(i))
	}
	if i := c.Pipeline.TaskAttempts; i > 0 {
		res = append(res, OptPipelineTaskAttempts(i))
	}
	if i := c.Pipeline.TaskDelaySec; i >= 0 {
		res = append(res, OptPipelineTaskDelaySec(i))
	}

	if s := c.Server.Host; s != "" {
		res = append(res, OptServerHost(s))
	}
	if i := c.Server.Port; i > 0 {
		res = append(res, OptServerPort(i))
	}

	if s := c.Log.Format; s != "" {
		res = append(res, OptLogFormat(s))
	}
	if s := c.Log.Level; s != "" {
		res = append(res, OptLogLevel(s))
	}
	if s := c.Log.Destination; s != "" {
		res = append(res, OptLogDestination(s))
	}

	if i := c.JobsNumber; i > 0 {
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

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stdout": s, "stderr": s},
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
