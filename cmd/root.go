/*
Copyright © 2025 Blake Ordway <blakeordway2@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/barcraft/bardb/internal/iofs"
	"github.com/barcraft/bardb/internal/iologger"
	"github.com/barcraft/bardb/pkg/bardb"
	"github.com/barcraft/bardb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf(
		"version: %s\nbuild:   %s", bardb.Version, bardb.Build),
	Use:   "bardb",
	Short: "Manage the BarDB cocktail database",
	Long: `BarDB ingests the public cocktail catalog into PostgreSQL.

It fetches drinks and ingredients from the upstream JSON API, validates
and normalizes them, reconciles them against already stored records,
cross-references drinks with their ingredients and bulk-loads the result.

Commands:
  create   create or update the database schema
  run      execute one full reconciliation pipeline run
  serve    expose the transform operations as an HTTP service`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	err = iologger.Init(config.LogDir(homeDir), defaultLog, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureCatalogFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, appending to the log
	// file created above.
	err = iologger.Init(config.LogDir(homeDir), cfg.Log, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = cfg.Validate(); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "bardb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.Flags().BoolP("version", "V", false, "version for bardb")

	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getRunCmd())
	rootCmd.AddCommand(getServeCmd())
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed. These match the fields included in
	// config.ToOptions(), i.e. persistent configuration that can be
	// stored in config.yaml.
	v.SetEnvPrefix("BARDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.database", "DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "DATABASE_BATCH_SIZE")

	// Fetch configuration
	v.BindEnv("fetch.attempts", "FETCH_ATTEMPTS")
	v.BindEnv("fetch.delay_sec", "FETCH_DELAY_SEC")
	v.BindEnv("fetch.requests_per_sec", "FETCH_REQUESTS_PER_SEC")

	// Pipeline configuration
	v.BindEnv("pipeline.work_dir", "PIPELINE_WORK_DIR")
	v.BindEnv("pipeline.backup_dir", "PIPELINE_BACKUP_DIR")
	v.BindEnv("pipeline.max_active_runs", "PIPELINE_MAX_ACTIVE_RUNS")
	v.BindEnv("pipeline.task_attempts", "PIPELINE_TASK_ATTEMPTS")
	v.BindEnv("pipeline.task_delay_sec", "PIPELINE_TASK_DELAY_SEC")

	// Server configuration
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.port", "SERVER_PORT")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}
