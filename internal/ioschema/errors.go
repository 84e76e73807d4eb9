package ioschema

import (
	"fmt"
	"runtime"

	"github.com/barcraft/bardb/pkg/errcode"
	"github.com/gnames/gn"
)

func NotConnectedError() error {
	msg := "Database is not connected"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: schema manager used before Connect", fn),
	}
}

func GORMConnectionError(err error) error {
	msg := "Cannot open a GORM session on the connection pool"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: gorm open failed: %w", fn, err),
	}
}

func CreateSchemaError(err error) error {
	msg := `Cannot create the database schema

<em>How to fix:</em>
  1. Check that the configured user can create tables
  2. Check PostgreSQL logs for details`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: schema creation failed: %w", fn, err),
	}
}

func MigrateSchemaError(err error) error {
	msg := "Cannot migrate the database schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: schema migration failed: %w", fn, err),
	}
}
