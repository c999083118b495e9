package iotable_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnvmr/internal/iotable"
	"github.com/gnames/gnvmr/pkg/errcode"
	"github.com/gnames/gnvmr/pkg/vmr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "vmr.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeXLSX(t, "Sheet1", [][]any{
		{"ICTV Virus Metadata Resource"},
		{"Sort", "Species", "Virus GENBANK accession"},
		{1, "Alpha virus", "MF176343; MF176344"},
		{2, "Beta virus", ""},
		{3, "Gamma virus", "DNA-A: KX384574; DNA-B: KX384573"},
	})

	tbl, err := iotable.LoadXLSX(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sort", "Species", "Virus GENBANK accession"}, tbl.Header)
	assert.Equal(t, []int{1, 3}, tbl.SortIDs())
	assert.Equal(t, 1, tbl.Skipped)
	assert.Equal(t, "MF176343; MF176344", tbl.Records[0].Accession())
}

func TestLoadXLSXSheet(t *testing.T) {
	path := writeXLSX(t, "VMR MSL39", [][]any{
		{"Sort", "Virus GENBANK accession"},
		{10, "NC_001477"},
	})

	tbl, err := iotable.LoadXLSX(path, "VMR MSL39")
	require.NoError(t, err)
	assert.Equal(t, []int{10}, tbl.SortIDs())

	_, err = iotable.LoadXLSX(path, "Missing")
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.TableLoadError, gnErr.Code)
}

func TestLoadXLSXErrors(t *testing.T) {
	dir := t.TempDir()
	notXLSX := filepath.Join(dir, "page.xlsx")
	require.NoError(t, os.WriteFile(notXLSX, []byte("<html></html>"), 0644))

	noSort := writeXLSX(t, "Sheet1", [][]any{
		{"Species", "Virus GENBANK accession"},
		{"Alpha virus", "MF176343"},
	})

	tests := []struct {
		msg  string
		path string
		code gn.ErrorCode
	}{
		{"missing", filepath.Join(dir, "none.xlsx"), errcode.TableLoadError},
		{"html", notXLSX, errcode.TableLoadError},
		{"no sort", noSort, errcode.TableColumnError},
	}

	for _, v := range tests {
		_, err := iotable.LoadXLSX(v.path, "")
		require.Error(t, err, v.msg)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}
}

func TestSaveLoadTSV(t *testing.T) {
	hdr := []string{"Sort", "Species", "Virus GENBANK accession", "Note"}
	tbl, err := vmr.NewTable(hdr, [][]string{
		{"1", "Alpha virus", "MF176343;MF176344", `has "quotes"`},
		{"5", "Gamma virus", "KX384574", "tab\tinside"},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "current_VMR.tsv")
	require.NoError(t, iotable.SaveTSV(tbl, path))

	res, err := iotable.LoadTSV(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Header, res.Header)
	assert.Equal(t, tbl.Rows(), res.Rows())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is renamed")
}

func TestSaveTSVReplaces(t *testing.T) {
	hdr := []string{"Sort", "Virus GENBANK accession"}
	path := filepath.Join(t.TempDir(), "current_VMR.tsv")

	full, err := vmr.NewTable(hdr, [][]string{{"1", "A00001"}, {"2", "A00002"}})
	require.NoError(t, err)
	require.NoError(t, iotable.SaveTSV(full, path))

	require.NoError(t, iotable.SaveTSV(full.Without([]int{1}), path))
	res, err := iotable.LoadTSV(path)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, res.SortIDs())
}

func TestTSVErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.tsv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))

	_, err := iotable.LoadTSV(empty)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.TableLoadError, gnErr.Code)

	tbl, err := vmr.NewTable([]string{"Sort", "Virus GENBANK accession"}, nil)
	require.NoError(t, err)
	err = iotable.SaveTSV(tbl, filepath.Join(dir, "no", "such", "dir.tsv"))
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.PersistError, gnErr.Code)
}
