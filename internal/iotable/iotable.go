// Package iotable reads the VMR spreadsheet and reads/writes the canonical
// tab-separated table of a working directory.
package iotable

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/gnames/gnvmr/pkg/vmr"
	"github.com/xuri/excelize/v2"
)

// LoadXLSX decodes the VMR spreadsheet. An empty sheet name selects the
// first sheet. Rows above the header (the first row with a Sort cell) are
// ignored.
func LoadXLSX(path, sheet string) (*vmr.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, TableLoadError(path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, TableLoadError(path, errors.New("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, TableLoadError(path, err)
	}

	hdrIdx := slices.IndexFunc(rows, func(row []string) bool {
		return slices.Contains(row, vmr.SortColumn)
	})
	if hdrIdx < 0 {
		return nil, vmr.ColumnError(vmr.SortColumn)
	}

	return vmr.NewTable(rows[hdrIdx], rows[hdrIdx+1:])
}

// LoadTSV reads the canonical table.
func LoadTSV(path string) (*vmr.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, TableLoadError(path, err)
	}
	defer f.Close()

	header, rows, err := readTSV(f)
	if err != nil {
		return nil, TableLoadError(path, err)
	}
	if header == nil {
		return nil, TableLoadError(path, errors.New("file is empty"))
	}
	return vmr.NewTable(header, rows)
}

// SaveTSV writes the table to path. The file is written next to its
// destination first and then renamed, so readers never see a partial
// table.
func SaveTSV(t *vmr.Table, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.tsv")
	if err != nil {
		return PersistError(path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err = writeTSV(tmp, t); err != nil {
		_ = tmp.Close()
		return PersistError(path, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return PersistError(path, err)
	}
	if err = tmp.Close(); err != nil {
		return PersistError(path, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return PersistError(path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return PersistError(path, err)
	}
	return nil
}

func readTSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

func writeTSV(w io.Writer, t *vmr.Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows()); err != nil {
		return err
	}
	return cw.Error()
}
