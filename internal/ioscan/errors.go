package ioscan

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvmr/pkg/errcode"
)

// ScanError is returned when record directories cannot be read.
func ScanError(path string, err error) error {
	msg := "Cannot scan <em>%s</em>"

	return &gn.Error{
		Code: errcode.ScanError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot scan %s: %w", path, err),
	}
}

// FlagLogError is returned when the flagged files log cannot be written.
func FlagLogError(err error) error {
	msg := "Cannot write to the log of flagged files"

	return &gn.Error{
		Code: errcode.FlagLogError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot write flagged file: %w", err),
	}
}

// PruneError is returned when a record directory cannot be removed.
func PruneError(dir string, err error) error {
	msg := `Cannot remove record directory

<em>Directory:</em> %s

The canonical table is already updated, remove the directory manually.`

	return &gn.Error{
		Code: errcode.PruneError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot remove %s: %w", dir, err),
	}
}
