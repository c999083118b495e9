// Package gnvmr defines interfaces of the components that keep a local
// mirror of the ICTV Virus Metadata Resource and its GenBank records.
package gnvmr

import (
	"context"

	"github.com/gnames/gnvmr/pkg/state"
)

// Downloader saves a remote file to a local path.
type Downloader interface {
	// Download fetches url and writes its body to path. Partial files
	// are not left behind on failure.
	Download(ctx context.Context, url, path string) error
}

// Fetcher retrieves one GenBank record from the nucleotide database.
type Fetcher interface {
	// Fetch returns the GenBank flat file of an accession. On failure it
	// returns an error together with whatever output was produced, so
	// that the caller can keep it for inspection.
	Fetch(ctx context.Context, accession string) ([]byte, error)
}

// Pipeline runs the three phases of the VMR mirror workflow on a working
// directory. Each phase checks the state of the working directory first
// and refuses to run when its precondition is not met.
type Pipeline interface {
	// Acquire downloads the VMR spreadsheet from url into a new working
	// directory and saves its canonical table.
	Acquire(ctx context.Context, url, workDir string) error

	// Download creates one directory per record of the canonical table
	// and retrieves GenBank files for all its accessions.
	Download(ctx context.Context, workDir string) error

	// Update flags records with suspect GenBank files, removes them from
	// the canonical table and, if prune is true, deletes their directories.
	Update(ctx context.Context, workDir string, prune bool) error

	// Status reports the state of a working directory.
	Status(workDir string) (Status, error)
}

// Status summarizes a working directory.
type Status struct {
	WorkDir string      `yaml:"work_dir"`
	State   state.State `yaml:"-"`
	// StateName is the human-readable form of State.
	StateName string `yaml:"state"`
	// Records is the number of records in the canonical table.
	Records int `yaml:"records"`
	// RecordDirs is the number of record directories.
	RecordDirs int `yaml:"record_dirs"`
	// FlaggedFiles is the number of lines in the flagged files log.
	FlaggedFiles int `yaml:"flagged_files"`
}
