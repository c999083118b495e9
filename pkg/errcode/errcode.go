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

	// Workflow errors
	MissingPreconditionError
	StateConflictError

	// Table errors
	VMRDownloadError
	TableLoadError
	TableColumnError
	TableSortIDError
	PersistError

	// Record directory errors
	DirectoryConflictError
	RecordDirError

	// Retrieval errors
	RetrievalError

	// Scan and reconcile errors
	ScanError
	FlagLogError
	InvalidSortIDError
	PruneError
)
