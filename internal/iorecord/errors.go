package iorecord

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvmr/pkg/errcode"
)

// DirectoryConflictError is returned when a record directory already
// exists. The existing directory is left as is.
func DirectoryConflictError(path string) error {
	msg := `Record directory already exists

<em>Directory:</em> %s

It was not modified. Remove it or use a new working directory.`

	return &gn.Error{
		Code: errcode.DirectoryConflictError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("record directory %s already exists", path),
	}
}

// RecordDirError is returned when a record directory cannot be created
// or read.
func RecordDirError(path string, err error) error {
	msg := "Cannot prepare record directory <em>%s</em>"

	return &gn.Error{
		Code: errcode.RecordDirError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("record directory %s: %w", path, err),
	}
}
