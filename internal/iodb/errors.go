package iodb

import (
	"fmt"
	"runtime"

	"github.com/barcraft/bardb/pkg/errcode"
	"github.com/gnames/gn"
)

func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  1. PostgreSQL is not running
  2. Database configuration is incorrect
  3. Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify the database exists:
     <em>psql -h %s -U %s -l</em>

  3. Check the config file:
     <em>~/.config/bardb/config.yaml</em>`
	vars := []any{host, port, host, user}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s:%d/%s: %w",
			fn, host, port, database, err),
	}
}

func NotConnectedError() error {
	msg := "Database is not connected"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: operator used before Connect", fn),
	}
}

func QueryError(table string, err error) error {
	msg := "Query against table <em>%s</em> failed"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: query on %s failed: %w",
			fn, table, err),
	}
}

func BulkLoadError(table string, err error) error {
	msg := `Bulk load into table <em>%s</em> failed

The load runs in a single transaction; no partial rows were written.`
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBBulkLoadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: bulk load into %s failed: %w",
			fn, table, err),
	}
}
