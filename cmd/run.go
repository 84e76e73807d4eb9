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
	"context"
	"os/signal"
	"syscall"

	"github.com/barcraft/bardb/internal/iocatalog"
	"github.com/barcraft/bardb/internal/iodb"
	"github.com/barcraft/bardb/internal/iofetch"
	"github.com/barcraft/bardb/internal/iopipeline"
	"github.com/barcraft/bardb/internal/iostage"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one catalog reconciliation pipeline",
		Long: `Execute one full reconciliation of the upstream catalog.

This command:
  1. Fetches drinks for the configured letters, plus altered versions
     found by name search
  2. Validates and dedupes the raw batch
  3. Drops records already stored, transforms the rest
  4. Fetches ingredient details for every unique mention
  5. Bulk-loads drinks, ingredients and drink-ingredient links
  6. Archives the transformed artifacts and cleans the working area

The upstream catalog is described in:
  ~/.config/bardb/catalog.yaml

Examples:
  bardb run`,
		RunE: runPipeline,
	}

	return runCmd
}

func runPipeline(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := iocatalog.New(cfg).Load()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	stgr, err := iostage.New(cfg.WorkDir(), cfg.BackupRoot())
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: %s@%s:%d/%s",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
	gn.Info("Fetching catalog from <em>%s</em>", cat.BaseURL)

	client := iofetch.New(&cfg.Fetch, cat)
	p := iopipeline.New(cfg, stgr, op, client)

	summary, err := p.Run(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Artifacts archived to <em>%s</em>", summary.BackupDir)
	return nil
}
