package ioretrieve

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvmr/pkg/errcode"
)

// RetrievalError is returned when the external pipeline does not produce
// a GenBank record for an accession.
func RetrievalError(acc string, err error) error {
	msg := "Cannot retrieve GenBank record for <em>%s</em>"

	return &gn.Error{
		Code: errcode.RetrievalError,
		Msg:  msg,
		Vars: []any{acc},
		Err:  fmt.Errorf("retrieval of %s failed: %w", acc, err),
	}
}

// OutputError is returned when GenBank files cannot be saved.
func OutputError(dir string, err error) error {
	msg := "Cannot write GenBank files to <em>%s</em>"

	return &gn.Error{
		Code: errcode.RecordDirError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot write to %s: %w", dir, err),
	}
}
