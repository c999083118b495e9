package iopipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnvmr/internal/iofs"
	"github.com/gnames/gnvmr/internal/ioscan"
	"github.com/gnames/gnvmr/internal/iotable"
	"github.com/gnames/gnvmr/pkg/config"
	"github.com/gnames/gnvmr/pkg/state"
	"github.com/gnames/gnvmr/pkg/vmr"
)

// Update flags records with suspect GenBank files and removes them from
// the canonical table. Directories of flagged records are deleted only
// when prune is true.
func (p *pipeline) Update(ctx context.Context, workDir string, prune bool) error {
	start := time.Now()
	st, err := p.checkState(workDir, "update", state.Downloaded, state.Updated)
	if err != nil {
		return err
	}
	p.transition(workDir, st, state.Updating)

	tbl, err := iotable.LoadTSV(config.TablePath(workDir))
	if err != nil {
		return err
	}

	gn.Info("(1/3) Scanning GenBank files")
	suspects, files, err := p.scan(workDir, tbl)
	if err != nil {
		return err
	}

	gn.Info("(2/3) Updating VMR table")
	upd, err := vmr.Reconcile(tbl, suspects)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return CancelledError(err)
	}
	if err = iotable.SaveTSV(upd, config.TablePath(workDir)); err != nil {
		return err
	}

	if prune {
		gn.Info("(3/3) Removing <em>%d</em> flagged record directories",
			len(suspects))
		if err = ioscan.Prune(suspects, p.log); err != nil {
			return err
		}
	} else {
		gn.Info("(3/3) Flagged record directories are kept")
	}
	p.transition(workDir, state.Updating, state.Updated)

	removed := tbl.Len() - upd.Len()
	dur := gnfmt.TimeString(time.Since(start).Seconds())
	p.log.Info("VMR updated",
		"work-dir", workDir,
		"flagged-files", files,
		"flagged-records", len(suspects),
		"removed-records", removed,
		"pruned", prune,
		"duration", dur,
	)
	gn.Info(`Update complete

Flagged files: <em>%s</em>, records removed from table: <em>%s</em>.
Records left: %s.
Elapsed time: <em>%s</em>`,
		humanize.Comma(int64(files)),
		humanize.Comma(int64(removed)),
		humanize.Comma(int64(upd.Len())),
		dur,
	)
	return nil
}

// scan runs the integrity scan, appending suspect files to the flagged
// log. The log is created even if nothing is found. Records of the table
// that never got a directory (an interrupted download) are flagged too.
// It returns suspect record directories and the number of flagged paths.
func (p *pipeline) scan(workDir string, tbl *vmr.Table) ([]string, int, error) {
	path := config.FlaggedPath(workDir)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, 0, ioscan.FlagLogError(err)
	}

	dataDir := config.DataPath(workDir)
	res, err := ioscan.New(f, p.log).Scan(dataDir)
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}

	missing, err := p.missingDirs(f, tbl, dataDir)
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}

	if err = f.Close(); err != nil {
		return nil, 0, ioscan.FlagLogError(err)
	}
	if res.Empty() && len(missing) == 0 {
		p.log.Info("No suspect GenBank files found", "data-dir", dataDir)
		return nil, 0, nil
	}
	suspects := append(res.Suspects, missing...)
	return suspects, len(res.Files) + len(missing), nil
}

func (p *pipeline) missingDirs(
	w io.Writer,
	tbl *vmr.Table,
	dataDir string,
) ([]string, error) {
	var res []string
	for _, r := range tbl.Records {
		dir := filepath.Join(dataDir, strconv.Itoa(r.SortID))
		ok, err := iofs.DirExists(dir)
		if err != nil {
			return nil, err
		}
		if ok {
			continue
		}
		p.log.Warn("Record directory is missing", "sort", r.SortID, "dir", dir)
		if _, err = fmt.Fprintln(w, dir); err != nil {
			return nil, ioscan.FlagLogError(err)
		}
		res = append(res, dir)
	}
	return res, nil
}
