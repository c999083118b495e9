package iopipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnvmr/internal/iotable"
	"github.com/gnames/gnvmr/pkg/config"
	"github.com/gnames/gnvmr/pkg/errcode"
	"github.com/gnames/gnvmr/pkg/gnvmr"
	"github.com/gnames/gnvmr/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testURL = "https://example.org/vmr.xlsx"

// locus is a 79 characters first line of a GenBank file.
const locus = "LOCUS       %-8s                2746 bp    DNA     circular VRL 05-JUL-2017\n"

type xlsxDownloader struct {
	rows [][]any
}

func (d xlsxDownloader) Download(_ context.Context, url, path string) error {
	if url != testURL {
		return errors.New("unexpected url " + url)
	}
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range d.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow("Sheet1", cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// genbankFetcher returns a valid record for every accession except the
// ones listed as bad.
type genbankFetcher map[string]bool

func (f genbankFetcher) Fetch(_ context.Context, acc string) ([]byte, error) {
	if f[acc] {
		return []byte("Error: bad accession\n"), errors.New("failed")
	}
	first := strings.Replace(locus, "%-8s", acc[:min(len(acc), 8)], 1)
	return []byte(first + "//\n"), nil
}

var vmrRows = [][]any{
	{"Sort", "Species", "Virus GENBANK accession"},
	{1, "Alpha virus", "MF176343; MF176344"},
	{2, "Beta virus", ""},
	{5, "Gamma virus", "KX384574"},
	{7, "Delta virus", "DNA-A: AB000001; DNA-B: AB000002"},
	{9, "Epsilon virus", "ZZ000009"},
}

func testPipeline(bad genbankFetcher) gnvmr.Pipeline {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptJobsNumber(2)})
	return New(cfg, xlsxDownloader{rows: vmrRows}, bad, nil)
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr), "error is *gn.Error")
	return gnErr.Code
}

func TestPreconditions(t *testing.T) {
	ctx := context.Background()
	wd := filepath.Join(t.TempDir(), "vmr")
	p := testPipeline(nil)

	err := p.Download(ctx, wd)
	assert.Equal(t, errcode.MissingPreconditionError, errCode(t, err))
	assert.NoDirExists(t, wd, "failed download does not create anything")

	err = p.Update(ctx, wd, false)
	assert.Equal(t, errcode.MissingPreconditionError, errCode(t, err))

	require.NoError(t, p.Acquire(ctx, testURL, wd))
	err = p.Acquire(ctx, testURL, wd)
	assert.Equal(t, errcode.StateConflictError, errCode(t, err))

	err = p.Update(ctx, wd, false)
	assert.Equal(t, errcode.MissingPreconditionError, errCode(t, err))

	require.NoError(t, p.Download(ctx, wd))
	err = p.Download(ctx, wd)
	assert.Equal(t, errcode.StateConflictError, errCode(t, err))
}

func TestAcquire(t *testing.T) {
	wd := filepath.Join(t.TempDir(), "vmr")
	p := testPipeline(nil)
	require.NoError(t, p.Acquire(context.Background(), testURL, wd))

	assert.FileExists(t, config.SourcePath(wd))
	tbl, err := iotable.LoadTSV(config.TablePath(wd))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 7, 9}, tbl.SortIDs())
	assert.Equal(t, "MF176343;MF176344", tbl.Records[0].Accession())
	assert.Equal(t, "AB000001;AB000002", tbl.Records[2].Accession())

	st, err := p.Status(wd)
	require.NoError(t, err)
	assert.Equal(t, state.Acquired, st.State)
	assert.Equal(t, "Acquired", st.StateName)
	assert.Equal(t, 4, st.Records)
}

func TestAcquireInterrupted(t *testing.T) {
	wd := t.TempDir()
	require.NoError(t, os.WriteFile(config.SourcePath(wd), []byte("partial"), 0644))

	p := testPipeline(nil)
	st, err := p.Status(wd)
	require.NoError(t, err)
	assert.Equal(t, state.Acquiring, st.State)

	require.NoError(t, p.Acquire(context.Background(), testURL, wd))
	assert.FileExists(t, config.TablePath(wd))
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	wd := filepath.Join(t.TempDir(), "vmr")
	p := testPipeline(nil)
	require.NoError(t, p.Acquire(ctx, testURL, wd))
	require.NoError(t, p.Download(ctx, wd))

	data := config.DataPath(wd)
	for _, v := range []string{
		"1/GenBank/MF176343.gb",
		"1/GenBank/MF176344.gb",
		"5/GenBank/KX384574.gb",
		"7/GenBank/AB000001.gb",
		"7/GenBank/AB000002.gb",
		"9/GenBank/ZZ000009.gb",
		"7/accessions.txt",
		"7/download_genbank.sh",
	} {
		assert.FileExists(t, filepath.Join(data, v))
	}
	assert.NoDirExists(t, filepath.Join(data, "2"))

	acc, err := os.ReadFile(filepath.Join(data, "7", "accessions.txt"))
	require.NoError(t, err)
	assert.Equal(t, "AB000001\nAB000002\n", string(acc))

	// identifiers come from the canonical column of the stored table
	acc, err = os.ReadFile(filepath.Join(data, "1", "accessions.txt"))
	require.NoError(t, err)
	assert.Equal(t, "MF176343\nMF176344\n", string(acc))

	st, err := p.Status(wd)
	require.NoError(t, err)
	assert.Equal(t, state.Downloaded, st.State)
	assert.Equal(t, 4, st.RecordDirs)
}

func TestDownloadConflict(t *testing.T) {
	ctx := context.Background()
	wd := filepath.Join(t.TempDir(), "vmr")
	p := testPipeline(nil)
	require.NoError(t, p.Acquire(ctx, testURL, wd))

	tbl, err := iotable.LoadTSV(config.TablePath(wd))
	require.NoError(t, err)
	data := config.DataPath(wd)
	existing := filepath.Join(data, "5")
	require.NoError(t, os.MkdirAll(existing, 0755))
	marker := filepath.Join(existing, "keep.txt")
	require.NoError(t, os.WriteFile(marker, []byte("keep"), 0644))

	_, err = p.(*pipeline).downloadRecords(ctx, tbl, data)
	assert.Equal(t, errcode.DirectoryConflictError, errCode(t, err))

	assert.FileExists(t, filepath.Join(data, "1", "GenBank", "MF176343.gb"))
	assert.FileExists(t, filepath.Join(data, "9", "GenBank", "ZZ000009.gb"))
	assert.NoFileExists(t, filepath.Join(existing, "accessions.txt"))
	bs, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(bs))
}

func TestDownloadCancel(t *testing.T) {
	wd := filepath.Join(t.TempDir(), "vmr")
	p := testPipeline(nil)
	require.NoError(t, p.Acquire(context.Background(), testURL, wd))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Download(ctx, wd)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.True(t, errors.Is(gnErr.Err, context.Canceled))

	// records without directories are flagged by update
	require.NoError(t, p.Update(context.Background(), wd, false))
	tbl, err := iotable.LoadTSV(config.TablePath(wd))
	require.NoError(t, err)
	assert.Zero(t, tbl.Len())

	st, err := p.Status(wd)
	require.NoError(t, err)
	assert.Equal(t, 4, st.FlaggedFiles)
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		msg   string
		prune bool
	}{
		{"keep directories", false},
		{"prune directories", true},
	}

	for _, v := range tests {
		ctx := context.Background()
		wd := filepath.Join(t.TempDir(), "vmr")
		p := testPipeline(genbankFetcher{"ZZ000009": true, "MF176344": true})
		require.NoError(t, p.Acquire(ctx, testURL, wd), v.msg)
		require.NoError(t, p.Download(ctx, wd), v.msg)
		require.NoError(t, p.Update(ctx, wd, v.prune), v.msg)

		tbl, err := iotable.LoadTSV(config.TablePath(wd))
		require.NoError(t, err, v.msg)
		assert.Equal(t, []int{5, 7}, tbl.SortIDs(), v.msg)

		flagged, err := os.ReadFile(config.FlaggedPath(wd))
		require.NoError(t, err, v.msg)
		data := config.DataPath(wd)
		assert.Equal(t,
			filepath.Join(data, "1", "GenBank", "MF176344.gb")+"\n"+
				filepath.Join(data, "9", "GenBank", "ZZ000009.gb")+"\n",
			string(flagged), v.msg)

		for _, id := range []string{"1", "9"} {
			if v.prune {
				assert.NoDirExists(t, filepath.Join(data, id), v.msg)
			} else {
				assert.DirExists(t, filepath.Join(data, id), v.msg)
			}
		}
		assert.DirExists(t, filepath.Join(data, "5"), v.msg)

		st, err := p.Status(wd)
		require.NoError(t, err, v.msg)
		assert.Equal(t, state.Updated, st.State, v.msg)
		assert.Equal(t, 2, st.Records, v.msg)
		assert.Equal(t, 2, st.FlaggedFiles, v.msg)
	}
}

func TestUpdateHealthy(t *testing.T) {
	ctx := context.Background()
	wd := filepath.Join(t.TempDir(), "vmr")
	var logs bytes.Buffer
	p := New(config.New(), xlsxDownloader{rows: [][]any{
		{"Sort", "Virus GENBANK accession"},
		{5, "KX384574"},
		{7, "NC_001477"},
	}}, genbankFetcher{}, slog.New(slog.NewTextHandler(&logs, nil)))

	require.NoError(t, p.Acquire(ctx, testURL, wd))
	require.NoError(t, p.Download(ctx, wd))
	require.NoError(t, p.Update(ctx, wd, true))

	info, err := os.Stat(config.FlaggedPath(wd))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
	assert.Contains(t, logs.String(), "No suspect GenBank files found")
	assert.Contains(t, logs.String(), "flagged-records=0")

	tbl, err := iotable.LoadTSV(config.TablePath(wd))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 7}, tbl.SortIDs())

	// update can run again and appends to the flagged log
	require.NoError(t, p.Update(ctx, wd, false))
}
