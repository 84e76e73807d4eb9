package iocatalog

import (
	"fmt"
	"runtime"

	"github.com/barcraft/bardb/pkg/errcode"
	"github.com/gnames/gn"
)

func CatalogConfigError(path string, err error) error {
	msg := `Cannot load catalog description from <em>%s</em>

<em>How to fix:</em>
  1. Check that the file exists and is readable
  2. Check its YAML syntax; delete it to regenerate the default`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogConfigError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load catalog config: %w",
			fn, err),
	}
}
