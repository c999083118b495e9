package iopipeline

import (
	"context"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnvmr/internal/iofs"
	"github.com/gnames/gnvmr/internal/iotable"
	"github.com/gnames/gnvmr/pkg/config"
	"github.com/gnames/gnvmr/pkg/state"
)

// Acquire downloads the VMR spreadsheet and saves its canonical table.
// It runs on a new working directory, or on one where a previous acquire
// was interrupted.
func (p *pipeline) Acquire(ctx context.Context, url, workDir string) error {
	start := time.Now()
	st, err := p.checkState(workDir, "acquire", state.Idle, state.Acquiring)
	if err != nil {
		return err
	}
	p.transition(workDir, st, state.Acquiring)

	if err = os.MkdirAll(workDir, 0755); err != nil {
		return iofs.CreateDirError(workDir, err)
	}

	gn.Info("(1/2) Downloading VMR from <em>%s</em>", url)
	src := config.SourcePath(workDir)
	if err = p.dl.Download(ctx, url, src); err != nil {
		return err
	}

	gn.Info("(2/2) Converting spreadsheet to a table")
	tbl, err := iotable.LoadXLSX(src, p.cfg.XLSXSheet)
	if err != nil {
		return err
	}
	tbl.Canonicalize()

	if err = ctx.Err(); err != nil {
		return CancelledError(err)
	}
	if err = iotable.SaveTSV(tbl, config.TablePath(workDir)); err != nil {
		return err
	}
	p.transition(workDir, state.Acquiring, state.Acquired)

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	p.log.Info("VMR acquired",
		"work-dir", workDir,
		"records", tbl.Len(),
		"skipped", tbl.Skipped,
		"duration", dur,
	)
	gn.Info(`VMR table is saved

Records: <em>%s</em>, without accessions (skipped): %s.
Elapsed time: <em>%s</em>`,
		humanize.Comma(int64(tbl.Len())),
		humanize.Comma(int64(tbl.Skipped)),
		dur,
	)
	return nil
}
