// Package iorecord creates and reads per-record directories of a gnvmr
// working directory.
//
// A record directory is named by the Sort id of its record and contains
// the list of accessions, a directory for GenBank files and a shell script
// that repeats the retrieval by hand.
package iorecord

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnames/gnvmr/pkg/config"
)

// RecordDir describes the file system layout of one record.
type RecordDir struct {
	SortID         int
	Path           string
	AccessionsFile string
	OutputDir      string
	ScriptFile     string
}

// Manager creates record directories under a common base directory.
type Manager struct {
	baseDir  string
	pipeline []config.StageConfig
}

// New creates a Manager for baseDir. The pipeline is used to render the
// download script of each record.
func New(baseDir string, pipeline []config.StageConfig) *Manager {
	return &Manager{baseDir: baseDir, pipeline: pipeline}
}

func layout(path string, sortID int) RecordDir {
	return RecordDir{
		SortID:         sortID,
		Path:           path,
		AccessionsFile: filepath.Join(path, config.AccessionsFile),
		OutputDir:      filepath.Join(path, config.OutputDir),
		ScriptFile:     filepath.Join(path, config.ScriptFile),
	}
}

// Materialize creates the directory of a record with its accessions list.
// If the directory already exists, DirectoryConflictError is returned and
// nothing inside it is modified. The accessions file is complete and closed
// when Materialize returns.
func (m *Manager) Materialize(sortID int, ids []string) (RecordDir, error) {
	path := filepath.Join(m.baseDir, strconv.Itoa(sortID))
	res := layout(path, sortID)

	err := os.Mkdir(path, 0755)
	if errors.Is(err, fs.ErrExist) {
		return res, DirectoryConflictError(path)
	}
	if err != nil {
		return res, RecordDirError(path, err)
	}

	if err = os.Mkdir(res.OutputDir, 0755); err != nil {
		return res, RecordDirError(path, err)
	}

	var sb strings.Builder
	for _, v := range ids {
		sb.WriteString(v)
		sb.WriteByte('\n')
	}
	if err = os.WriteFile(res.AccessionsFile, []byte(sb.String()), 0644); err != nil {
		return res, RecordDirError(path, err)
	}

	script := Script(m.pipeline, ids)
	if err = os.WriteFile(res.ScriptFile, []byte(script), 0755); err != nil {
		return res, RecordDirError(path, err)
	}

	return res, nil
}

// Open returns the layout of an existing record directory.
func Open(path string) (RecordDir, error) {
	var res RecordDir
	id, err := strconv.Atoi(filepath.Base(path))
	if err != nil {
		return res, RecordDirError(path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return res, RecordDirError(path, err)
	}
	if !info.IsDir() {
		return res, RecordDirError(path, errors.New("not a directory"))
	}

	return layout(path, id), nil
}

// Accessions reads the accessions file of the record. A missing file
// results in an empty list.
func (r RecordDir) Accessions() ([]string, error) {
	f, err := os.Open(r.AccessionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, RecordDirError(r.Path, err)
	}
	defer f.Close()

	var res []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			res = append(res, line)
		}
	}
	if err = sc.Err(); err != nil {
		return nil, RecordDirError(r.Path, err)
	}
	return res, nil
}

// OutputPath returns the GenBank file path of an accession.
func (r RecordDir) OutputPath(id string) string {
	return filepath.Join(r.OutputDir, config.OutputName(id))
}
