package iofetch

import (
	"fmt"
	"runtime"

	"github.com/barcraft/bardb/pkg/errcode"
	"github.com/gnames/gn"
)

func RequestError(url string, err error) error {
	msg := `Upstream catalog request failed

<em>URL:</em> %s

<em>Possible causes:</em>
  1. The catalog API is temporarily unavailable
  2. Network connectivity issues`
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: request to %s failed: %w",
			fn, url, err),
	}
}

func DecodeError(url string, err error) error {
	msg := `Cannot decode upstream catalog response

<em>URL:</em> %s`
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchDecodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot decode response from %s: %w",
			fn, url, err),
	}
}
