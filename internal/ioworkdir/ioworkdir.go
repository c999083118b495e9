// Package ioworkdir inspects artifacts of a gnvmr working directory.
package ioworkdir

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/gnames/gnvmr/internal/iofs"
	"github.com/gnames/gnvmr/pkg/config"
	"github.com/gnames/gnvmr/pkg/state"
)

// Inspect reports which artifacts exist in workDir. A missing workDir has
// no artifacts.
func Inspect(workDir string) (state.Artifacts, error) {
	var res state.Artifacts
	var err error

	if res.Source, err = iofs.Exists(config.SourcePath(workDir)); err != nil {
		return res, err
	}
	if res.Table, err = iofs.Exists(config.TablePath(workDir)); err != nil {
		return res, err
	}
	if res.Data, err = iofs.DirExists(config.DataPath(workDir)); err != nil {
		return res, err
	}
	if res.Flagged, err = iofs.Exists(config.FlaggedPath(workDir)); err != nil {
		return res, err
	}
	return res, nil
}

// State derives the state of workDir from its artifacts.
func State(workDir string) (state.State, error) {
	a, err := Inspect(workDir)
	if err != nil {
		return state.Idle, err
	}
	return state.FromArtifacts(a), nil
}

// RecordDirs returns paths of record directories (the ones named by an
// integer) sorted by Sort id. A missing data directory has no records.
func RecordDirs(workDir string) ([]string, error) {
	dataDir := config.DataPath(workDir)
	entries, err := os.ReadDir(dataDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, iofs.ReadFileError(dataDir, err)
	}

	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if id, err := strconv.Atoi(e.Name()); err == nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	res := make([]string, len(ids))
	for i, id := range ids {
		res[i] = filepath.Join(dataDir, strconv.Itoa(id))
	}
	return res, nil
}

// CountLines returns the number of non-empty lines of a file. A missing
// file has no lines.
func CountLines(path string) (int, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	var res int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if len(sc.Bytes()) > 0 {
			res++
		}
	}
	if err = sc.Err(); err != nil {
		return 0, iofs.ReadFileError(path, err)
	}
	return res, nil
}
