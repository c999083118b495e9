// Package ioscan finds records with suspect GenBank files and removes
// their directories on request.
package ioscan

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/gnames/gnvmr/internal/iorecord"
)

// MinFirstLine is the shortest acceptable first line of a GenBank file,
// counting its line terminator. A valid file starts with a LOCUS line that
// is 79 characters long. Error messages and empty files are shorter.
const MinFirstLine = 80

// Result of a scan.
type Result struct {
	// Suspects are record directories with at least one suspect file,
	// ordered by Sort id.
	Suspects []string
	// Files are suspect file paths in the order they were found. Files
	// that should exist but do not are included too.
	Files []string
}

// Empty reports if the scan found nothing suspect.
func (r Result) Empty() bool {
	return len(r.Suspects) == 0
}

// Scanner checks GenBank files of all record directories.
type Scanner struct {
	flagged io.Writer
	log     *slog.Logger
}

// New creates a Scanner that writes every suspect file path as a line to
// flagged. A nil logger falls back to slog.Default().
func New(flagged io.Writer, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{flagged: flagged, log: logger}
}

type recordEntry struct {
	id   int
	path string
}

// Scan walks record directories of dataRoot. Directories with names that
// are not integers are skipped. A returned error means the scan itself
// could not be completed.
func (s *Scanner) Scan(dataRoot string) (Result, error) {
	var res Result

	entries, err := os.ReadDir(dataRoot)
	if err != nil {
		return res, ScanError(dataRoot, err)
	}

	var records []recordEntry
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id, err := strconv.Atoi(e.Name())
		if err != nil {
			s.log.Warn("Skipping directory not named by Sort id",
				"dir", filepath.Join(dataRoot, e.Name()))
			continue
		}
		records = append(records, recordEntry{id: id, path: filepath.Join(dataRoot, e.Name())})
	}
	slices.SortFunc(records, func(a, b recordEntry) int { return cmp.Compare(a.id, b.id) })

	for _, r := range records {
		files, err := s.scanRecord(r.path)
		if err != nil {
			return res, err
		}
		if len(files) == 0 {
			continue
		}
		for _, f := range files {
			if _, err = fmt.Fprintln(s.flagged, f); err != nil {
				return res, FlagLogError(err)
			}
		}
		res.Suspects = append(res.Suspects, r.path)
		res.Files = append(res.Files, files...)
	}

	s.log.Info("Scan finished",
		"records", len(records),
		"suspect-records", len(res.Suspects),
		"suspect-files", len(res.Files),
	)
	return res, nil
}

// scanRecord returns suspect files of one record directory.
func (s *Scanner) scanRecord(path string) ([]string, error) {
	rd, err := iorecord.Open(path)
	if err != nil {
		return nil, ScanError(path, err)
	}

	entries, err := os.ReadDir(rd.OutputDir)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("GenBank directory is missing", "dir", rd.OutputDir)
		return []string{rd.OutputDir}, nil
	}
	if err != nil {
		return nil, ScanError(rd.OutputDir, err)
	}

	var res []string
	present := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		file := filepath.Join(rd.OutputDir, e.Name())
		present[file] = struct{}{}

		short, err := isShort(file)
		if err != nil {
			return nil, ScanError(file, err)
		}
		if short {
			s.log.Debug("Suspect GenBank file", "file", file)
			res = append(res, file)
		}
	}

	ids, err := rd.Accessions()
	if err != nil {
		return nil, ScanError(path, err)
	}
	for _, id := range ids {
		file := rd.OutputPath(id)
		if _, ok := present[file]; !ok {
			s.log.Warn("GenBank file is missing", "file", file)
			res = append(res, file)
		}
	}
	return res, nil
}

// isShort reports whether the first line of a file, with its terminator,
// is shorter than MinFirstLine.
func isShort(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	r := bufio.NewReader(io.LimitReader(f, MinFirstLine))
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return len(line) < MinFirstLine, nil
}

// Prune deletes record directories recursively. It cannot be undone.
func Prune(dirs []string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	for _, d := range dirs {
		if err := os.RemoveAll(d); err != nil {
			return PruneError(d, err)
		}
		logger.Info("Removed record directory", "dir", d)
	}
	return nil
}
