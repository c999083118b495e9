package iopipeline

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnvmr/internal/iofs"
	"github.com/gnames/gnvmr/internal/iorecord"
	"github.com/gnames/gnvmr/internal/ioretrieve"
	"github.com/gnames/gnvmr/internal/iotable"
	"github.com/gnames/gnvmr/pkg/config"
	"github.com/gnames/gnvmr/pkg/errcode"
	"github.com/gnames/gnvmr/pkg/state"
	"github.com/gnames/gnvmr/pkg/vmr"
	"golang.org/x/sync/errgroup"
)

// Download creates a directory for every record of the canonical table
// and retrieves its GenBank files.
func (p *pipeline) Download(ctx context.Context, workDir string) error {
	start := time.Now()
	st, err := p.checkState(workDir, "download", state.Acquired)
	if err != nil {
		return err
	}

	tbl, err := iotable.LoadTSV(config.TablePath(workDir))
	if err != nil {
		return err
	}

	dataDir := config.DataPath(workDir)
	if err = os.Mkdir(dataDir, 0755); err != nil {
		return iofs.CreateDirError(dataDir, err)
	}
	p.transition(workDir, st, state.Downloading)

	gn.Info("Downloading GenBank files for <em>%s</em> records",
		humanize.Comma(int64(tbl.Len())))
	files, err := p.downloadRecords(ctx, tbl, dataDir)
	if err != nil {
		return err
	}
	p.transition(workDir, state.Downloading, state.Downloaded)

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	p.log.Info("GenBank files downloaded",
		"work-dir", workDir,
		"records", tbl.Len(),
		"files", files,
		"duration", dur,
	)
	gn.Info(`Download complete

GenBank files: <em>%s</em> for %s records.
Elapsed time: <em>%s</em>`,
		humanize.Comma(int64(files)),
		humanize.Comma(int64(tbl.Len())),
		dur,
	)
	return nil
}

// downloadRecords processes records concurrently. A record which
// directory already exists is skipped, the other records are still
// processed and DirectoryConflictError lists all skipped directories at
// the end. It returns the total number of files in output directories.
func (p *pipeline) downloadRecords(
	ctx context.Context,
	tbl *vmr.Table,
	dataDir string,
) (int, error) {
	mgr := iorecord.New(dataDir, p.cfg.Retrieval.Pipeline)
	drv := ioretrieve.NewDriver(p.fetcher, p.log)

	bar := pb.Full.Start(tbl.Len())
	bar.Set("prefix", "Records: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var files atomic.Int64
	var mu sync.Mutex
	var conflicts []string

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.cfg.JobsNumber, 1))

	for _, rec := range tbl.Records {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			defer bar.Increment()

			ids := rec.Accessions()
			rd, err := mgr.Materialize(rec.SortID, ids)
			if err != nil {
				if !isConflict(err) {
					return err
				}
				p.log.Error("Record directory exists, skipping record",
					"sort", rec.SortID, "dir", rd.Path)
				mu.Lock()
				conflicts = append(conflicts, rd.Path)
				mu.Unlock()
				return nil
			}

			n, err := drv.Retrieve(gCtx, ids, rd.OutputDir)
			if err != nil {
				return err
			}
			files.Add(int64(n))
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if ioretrieve.IsCanceled(err) {
			return 0, CancelledError(err)
		}
		return 0, err
	}

	if len(conflicts) > 0 {
		return int(files.Load()), DirectoryConflictsError(conflicts)
	}
	return int(files.Load()), nil
}

func isConflict(err error) bool {
	var gnErr *gn.Error
	return errors.As(err, &gnErr) && gnErr.Code == errcode.DirectoryConflictError
}
