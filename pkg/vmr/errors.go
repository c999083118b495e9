package vmr

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvmr/pkg/errcode"
)

// ColumnError is returned when a required column is missing.
func ColumnError(column string) error {
	msg := `VMR table misses a required column

<em>Column:</em> %s

<em>Possible causes:</em>
  - ICTV changed the layout of the spreadsheet
  - A wrong sheet was selected (see <em>xlsx_sheet</em> in config)`

	return &gn.Error{
		Code: errcode.TableColumnError,
		Msg:  msg,
		Vars: []any{column},
		Err:  fmt.Errorf("missing column %q", column),
	}
}

// SortIDError is returned when a Sort cell is not an integer.
func SortIDError(line int, value string, err error) error {
	msg := "Sort value <em>'%s'</em> on line %d is not an integer"

	return &gn.Error{
		Code: errcode.TableSortIDError,
		Msg:  msg,
		Vars: []any{value, line},
		Err:  fmt.Errorf("bad Sort value %q on line %d: %w", value, line, err),
	}
}

// DuplicateSortIDError is returned when two records share a Sort id.
func DuplicateSortIDError(id int) error {
	msg := "Sort id <em>%d</em> appears more than once in the VMR table"

	return &gn.Error{
		Code: errcode.TableSortIDError,
		Msg:  msg,
		Vars: []any{id},
		Err:  fmt.Errorf("duplicate Sort id %d", id),
	}
}

// InvalidSortIDError is returned when a record directory name cannot be
// mapped back to a Sort id.
func InvalidSortIDError(dir string, err error) error {
	msg := "Directory <em>%s</em> is not named after a Sort id"

	return &gn.Error{
		Code: errcode.InvalidSortIDError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot get Sort id from %s: %w", dir, err),
	}
}
