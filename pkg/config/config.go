// Package config provides configuration management for BarDB.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults.
//
// # Design Principles
//
//   - Default config (from New()) is always valid - no validation needed
//   - All mutations go through Option functions - the only way to modify
//     Config
//   - Invalid options are rejected with gn.Warn() - config remains in a
//     valid state
//   - ToOptions() converts persistent fields (those in config.yaml)
//   - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use BARDB_ prefix with underscores for nesting:
//
//	BARDB_DATABASE_HOST=localhost
//	BARDB_DATABASE_PORT=5432
//	BARDB_LOG_LEVEL=info
package config

import (
	"fmt"
	"runtime"

	"github.com/barcraft/bardb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/go-playground/validator/v10"
)

// Config represents the complete BarDB configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Fetch contains upstream catalog client settings.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`

	// Pipeline contains staging and orchestration settings.
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`

	// Server contains transform service settings.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations. Defaults to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number" validate:"gt=0"`

	// HomeDir determines where config, staging and log directories
	// reside. It is set by the CLI during init, there is no default.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host" validate:"required"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port" validate:"gt=0,lte=65535"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user" validate:"required"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database" validate:"required"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode" validate:"oneof=disable require verify-ca verify-full"`

	// BatchSize defines the number of rows per batch for bulk load
	// operations. Larger batches are faster but use more memory.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size" validate:"gt=0"`
}

// FetchConfig contains settings for the upstream catalog client.
type FetchConfig struct {
	// Attempts is the retry budget for one upstream call.
	Attempts int `mapstructure:"attempts" yaml:"attempts" validate:"gt=0"`

	// DelaySec is the fixed delay between retry attempts, in seconds.
	DelaySec int `mapstructure:"delay_sec" yaml:"delay_sec" validate:"gte=0"`

	// RequestsPerSec caps the upstream request rate. The catalog is a
	// free public API, so the client stays polite by default.
	RequestsPerSec float64 `mapstructure:"requests_per_sec" yaml:"requests_per_sec" validate:"gt=0"`
}

// PipelineConfig contains staging and orchestration settings.
type PipelineConfig struct {
	// WorkDir is the working directory for staging artifacts.
	// Empty means <HomeDir>/.cache/bardb/staging.
	WorkDir string `mapstructure:"work_dir" yaml:"work_dir"`

	// BackupDir is the root for timestamped artifact archives.
	// Empty means <HomeDir>/.local/share/bardb/backup.
	BackupDir string `mapstructure:"backup_dir" yaml:"backup_dir"`

	// MaxActiveRuns caps concurrently executing pipeline runs
	// process-wide.
	MaxActiveRuns int `mapstructure:"max_active_runs" yaml:"max_active_runs" validate:"gt=0"`

	// TaskAttempts is the retry budget for a retryable pipeline task.
	TaskAttempts int `mapstructure:"task_attempts" yaml:"task_attempts" validate:"gt=0"`

	// TaskDelaySec is the fixed delay between task retries, in seconds.
	TaskDelaySec int `mapstructure:"task_delay_sec" yaml:"task_delay_sec" validate:"gte=0"`
}

// ServerConfig contains transform service listener settings.
type ServerConfig struct {
	// Host is the interface the transform service binds to.
	Host string `mapstructure:"host" yaml:"host" validate:"required"`

	// Port is the transform service port.
	Port int `mapstructure:"port" yaml:"port" validate:"gt=0,lte=65535"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format" validate:"oneof=json text"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level" validate:"oneof=debug info warn error"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination" validate:"oneof=file stdout stderr"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "bardb",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Fetch: FetchConfig{
			Attempts:       5,
			DelaySec:       5,
			RequestsPerSec: 4,
		},
		Pipeline: PipelineConfig{
			MaxActiveRuns: 2,
			TaskAttempts:  2,
			TaskDelaySec:  5,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
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

// Validate checks the Config against its struct tags.
// Returns a user-presentable error naming the first offending field.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var field string
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		field = errs[0].Namespace()
	}

	return &gn.Error{
		Code: errcode.ConfigValidationError,
		Msg: `Configuration is invalid

<em>Offending field:</em> %s

<em>How to fix:</em>
  1. Check the config file: <em>~/.config/bardb/config.yaml</em>
  2. Check BARDB_* environment variables`,
		Vars: []any{field},
		Err:  fmt.Errorf("invalid configuration: %w", err),
	}
}
