package iostage

import (
	"fmt"
	"runtime"

	"github.com/barcraft/bardb/pkg/errcode"
	"github.com/gnames/gn"
)

func CreateDirError(dir string, err error) error {
	msg := "Cannot create %s"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create directory: %w",
			fn, err),
	}
}

func MissingStagingFileError(path string) error {
	msg := `Staging artifact <em>%s</em> does not exist

A staged reference pointed at a file that is gone. The producing task
either failed to write it or a concurrent run cleaned it up.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StageMissingFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: staging artifact %s does not exist",
			fn, path),
	}
}

func WriteArtifactError(ref string, err error) error {
	msg := "Cannot write staging artifact <em>%s</em>"
	vars := []any{ref}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StageWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write artifact %s: %w",
			fn, ref, err),
	}
}

func ReadArtifactError(ref string, err error) error {
	msg := "Cannot read staging artifact <em>%s</em>"
	vars := []any{ref}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StageReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read artifact %s: %w",
			fn, ref, err),
	}
}

func ArchiveError(path string, err error) error {
	msg := "Cannot archive staging artifact <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StageArchiveError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot archive %s: %w",
			fn, path, err),
	}
}

func CleanupError(path string, err error) error {
	msg := `Cannot clean up working area entry <em>%s</em>

Leftover staging files can leak disk space and confuse later runs, so
cleanup failures stop the pipeline.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StageCleanupError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot remove %s: %w",
			fn, path, err),
	}
}
