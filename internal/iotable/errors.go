package iotable

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvmr/pkg/errcode"
)

// TableLoadError is returned when a VMR table cannot be read or decoded.
func TableLoadError(path string, err error) error {
	msg := `Cannot load VMR table

<em>File:</em> %s

<em>Possible causes:</em>
  - The file does not exist (was 'gnvmr acquire' run?)
  - The download was interrupted or returned an HTML page
  - The file is not a spreadsheet or tab-separated table`

	return &gn.Error{
		Code: errcode.TableLoadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot load table %s: %w", path, err),
	}
}

// PersistError is returned when the canonical table cannot be written.
func PersistError(path string, err error) error {
	msg := "Cannot save VMR table to <em>%s</em>"

	return &gn.Error{
		Code: errcode.PersistError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot save table %s: %w", path, err),
	}
}
