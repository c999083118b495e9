package vmr

import (
	"path/filepath"
	"strconv"
)

// SortIDsFromDirs converts record directory paths into Sort ids using
// their base names.
func SortIDsFromDirs(dirs []string) ([]int, error) {
	res := make([]int, 0, len(dirs))
	for _, d := range dirs {
		id, err := strconv.Atoi(filepath.Base(d))
		if err != nil {
			return nil, InvalidSortIDError(d, err)
		}
		res = append(res, id)
	}
	return res, nil
}

// Reconcile removes records owning suspect directories from the table.
// It does not touch the file system; the input table is left intact and
// the result preserves its order.
func Reconcile(t *Table, suspectDirs []string) (*Table, error) {
	ids, err := SortIDsFromDirs(suspectDirs)
	if err != nil {
		return nil, err
	}
	return t.Without(ids), nil
}
