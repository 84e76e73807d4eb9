package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	ConfigValidationError
	CatalogConfigError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBQueryError
	DBBulkLoadError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Catalog fetch errors
	FetchRequestError
	FetchDecodeError

	// Staging errors
	StageMissingFileError
	StageWriteError
	StageReadError
	StageArchiveError
	StageCleanupError

	// Pipeline errors
	PipelineValidationError
	PipelineMissingFieldError
	PipelineBadRecordIDError
	PipelineRunsExceededError
	PipelineTaskConflictError
	PipelineTaskFailedError
)
