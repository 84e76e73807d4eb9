package iopipeline

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/barcraft/bardb/pkg/errcode"
	"github.com/barcraft/bardb/pkg/records"
	"github.com/gnames/gn"
)

func ValidationError(invalid []records.InvalidRecord) error {
	lines := make([]string, len(invalid))
	for i, rec := range invalid {
		lines[i] = fmt.Sprintf("  %s: missing %s",
			rec.ID, strings.Join(rec.MissingFields, ", "))
	}

	msg := `Raw drink batch failed validation

<em>Invalid records:</em>
%s

The batch was rejected before any transformation.`
	vars := []any{strings.Join(lines, "\n")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineValidationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %d invalid drink records",
			fn, len(invalid)),
	}
}

func RunsExceededError(max int) error {
	msg := `Too many active pipeline runs

<em>Limit:</em> %d

Wait for a running pipeline to finish before starting another.`
	vars := []any{max}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineRunsExceededError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: active run limit of %d reached",
			fn, max),
	}
}

func TaskConflictError(name string, err error) error {
	msg := `Task <em>%s</em> is already running in another pipeline

The run was cancelled while waiting for the task to become free.`
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineTaskConflictError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: task %s blocked by concurrent run: %w",
			fn, name, err),
	}
}

func TaskFailedError(name string, err error) error {
	msg := "Pipeline task <em>%s</em> failed"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineTaskFailedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: task %s: %w", fn, name, err),
	}
}
