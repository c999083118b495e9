// Package iopipeline implements the gnvmr.Pipeline interface. It runs the
// acquire, download and update phases on a working directory.
//
// The working directory is the only state store. Each phase derives the
// current state from artifacts on disk and refuses to run when the state
// does not fit.
package iopipeline

import (
	"log/slog"

	"github.com/gnames/gnvmr/internal/iofetch"
	"github.com/gnames/gnvmr/internal/ioretrieve"
	"github.com/gnames/gnvmr/internal/iotable"
	"github.com/gnames/gnvmr/internal/ioworkdir"
	"github.com/gnames/gnvmr/pkg/config"
	"github.com/gnames/gnvmr/pkg/gnvmr"
	"github.com/gnames/gnvmr/pkg/state"
)

type pipeline struct {
	cfg     *config.Config
	dl      gnvmr.Downloader
	fetcher gnvmr.Fetcher
	log     *slog.Logger
}

// New creates a Pipeline. When dl or f are nil, the HTTP downloader and
// the external retrieval pipeline from cfg are used. A nil logger falls
// back to slog.Default().
func New(
	cfg *config.Config,
	dl gnvmr.Downloader,
	f gnvmr.Fetcher,
	logger *slog.Logger,
) gnvmr.Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if dl == nil {
		dl = iofetch.New(cfg.Download, logger)
	}
	if f == nil {
		f = ioretrieve.NewPipeline(cfg.Retrieval)
	}
	return &pipeline{cfg: cfg, dl: dl, fetcher: f, log: logger}
}

// Status reports the state of a working directory and its counts.
func (p *pipeline) Status(workDir string) (gnvmr.Status, error) {
	res := gnvmr.Status{WorkDir: workDir}

	a, err := ioworkdir.Inspect(workDir)
	if err != nil {
		return res, err
	}
	res.State = state.FromArtifacts(a)
	res.StateName = res.State.String()

	if a.Table {
		tbl, err := iotable.LoadTSV(config.TablePath(workDir))
		if err != nil {
			return res, err
		}
		res.Records = tbl.Len()
	}

	dirs, err := ioworkdir.RecordDirs(workDir)
	if err != nil {
		return res, err
	}
	res.RecordDirs = len(dirs)

	res.FlaggedFiles, err = ioworkdir.CountLines(config.FlaggedPath(workDir))
	if err != nil {
		return res, err
	}
	return res, nil
}

// checkState returns the current state of workDir if it is one of the
// allowed states. Otherwise it returns MissingPreconditionError when an
// earlier phase has to run first, or StateConflictError when the phase
// already ran.
func (p *pipeline) checkState(
	workDir, phase string,
	allowed ...state.State,
) (state.State, error) {
	st, err := ioworkdir.State(workDir)
	if err != nil {
		return st, err
	}
	if st.In(allowed...) {
		return st, nil
	}
	if st < allowed[0] {
		return st, MissingPreconditionError(workDir, phase, st)
	}
	return st, StateConflictError(workDir, phase, st)
}

func (p *pipeline) transition(workDir string, from, to state.State) {
	p.log.Info("State transition",
		"work-dir", workDir, "from", from.String(), "to", to.String())
}
