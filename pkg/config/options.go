package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per bulk-load batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptFetchAttempts sets the retry budget for one upstream catalog call.
func OptFetchAttempts(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Attempts", i) {
			c.Fetch.Attempts = i
		}
	}
}

// OptFetchDelaySec sets the fixed delay between upstream retries.
func OptFetchDelaySec(i int) Option {
	return func(c *Config) {
		if i >= 0 {
			c.Fetch.DelaySec = i
		}
	}
}

// OptFetchRequestsPerSec caps the upstream request rate.
func OptFetchRequestsPerSec(f float64) Option {
	return func(c *Config) {
		if f > 0 {
			c.Fetch.RequestsPerSec = f
		}
	}
}

// OptPipelineWorkDir sets the staging working directory.
func OptPipelineWorkDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Pipeline WorkDir", s) {
			c.Pipeline.WorkDir = s
		}
	}
}

// OptPipelineBackupDir sets the root for timestamped artifact archives.
func OptPipelineBackupDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Pipeline BackupDir", s) {
			c.Pipeline.BackupDir = s
		}
	}
}

// OptPipelineMaxActiveRuns caps concurrently executing pipeline runs.
func OptPipelineMaxActiveRuns(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Active Runs", i) {
			c.Pipeline.MaxActiveRuns = i
		}
	}
}

// OptPipelineTaskAttempts sets the retry budget for a retryable task.
func OptPipelineTaskAttempts(i int) Option {
	return func(c *Config) {
		if isValidInt("Task Attempts", i) {
			c.Pipeline.TaskAttempts = i
		}
	}
}

// OptPipelineTaskDelaySec sets the fixed delay between task retries.
func OptPipelineTaskDelaySec(i int) Option {
	return func(c *Config) {
		if i >= 0 {
			c.Pipeline.TaskDelaySec = i
		}
	}
}

// OptServerHost sets the interface the transform service binds to.
func OptServerHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server Host", s) {
			c.Server.Host = s
		}
	}
}

// OptServerPort sets the transform service port.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
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
// Valid values: "json", "text".
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

// OptJobsNumber sets the number of concurrent workers for parallel
// operations. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, staging and log
// locations. Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
