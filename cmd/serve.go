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
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/barcraft/bardb/internal/iodb"
	"github.com/barcraft/bardb/internal/ioserver"
	"github.com/barcraft/bardb/internal/iostage"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transform operations over HTTP",
		Long: `Start the transform service.

The service exposes the pipeline stage operations as POST endpoints
taking staging-file references:

  /drinks/validate  /drinks/filter  /drinks/transform  /drinks/store
  /ingredients/unique  /ingredients/filter
  /ingredients/transform  /ingredients/store
  /drink/link/ingredients/transform  /drink/link/ingredients/store

Business outcomes answer HTTP 200 with a status object; malformed
requests answer HTTP 400.

Examples:
  bardb serve`,
		RunE: runServe,
	}

	return serveCmd
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	srv := ioserver.New(cfg, stgr, op)
	err = srv.Run(ctx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
