package ioretrieve

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnvmr/pkg/config"
	"github.com/gnames/gnvmr/pkg/gnvmr"
)

// Driver saves GenBank files of accessions into an output directory.
type Driver struct {
	fetcher gnvmr.Fetcher
	log     *slog.Logger
}

// NewDriver creates a Driver. A nil logger falls back to slog.Default().
func NewDriver(f gnvmr.Fetcher, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{fetcher: f, log: logger}
}

// Retrieve fetches accessions one by one and writes each of them into
// outDir, even when retrieval fails (such files are caught later by the
// integrity scan). Failures are logged, never retried. It returns the
// number of files in outDir when done.
//
// An error is returned only if outDir cannot be written or read, or if
// the context is canceled.
func (d *Driver) Retrieve(ctx context.Context, ids []string, outDir string) (int, error) {
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		data, err := d.fetcher.Fetch(ctx, id)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return 0, ctxErr
			}
			d.log.Warn("GenBank retrieval failed",
				"accession", id, "dir", outDir, "error", err)
		}

		path := filepath.Join(outDir, config.OutputName(id))
		if err = os.WriteFile(path, data, 0644); err != nil {
			return 0, OutputError(outDir, err)
		}
	}

	return countFiles(outDir)
}

func countFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, OutputError(dir, err)
	}
	var res int
	for _, e := range entries {
		if e.Type().IsRegular() {
			res++
		}
	}
	return res, nil
}

// IsCanceled reports whether err comes from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
