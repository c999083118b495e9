// Package ioretrieve fetches GenBank records with external command line
// tools and stores them in record directories.
package ioretrieve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gnames/gnvmr/pkg/config"
	"github.com/gnames/gnvmr/pkg/gnvmr"
)

const waitDelay = 2 * time.Second

// Pipeline runs a chain of external commands for every accession. It is
// the equivalent of a shell pipe, but no shell is involved and arguments
// are passed as is.
type Pipeline struct {
	stages  []config.StageConfig
	timeout time.Duration
}

// NewPipeline creates a Fetcher from the retrieval settings.
func NewPipeline(cfg config.RetrievalConfig) gnvmr.Fetcher {
	return &Pipeline{
		stages:  cfg.Pipeline,
		timeout: time.Duration(cfg.TimeoutSec) * time.Second,
	}
}

// Fetch runs the pipeline for one accession and returns the standard
// output of its last stage. Output is returned even when a stage fails,
// times out, or when the output is empty, together with a RetrievalError.
func (p *Pipeline) Fetch(ctx context.Context, acc string) ([]byte, error) {
	if len(p.stages) == 0 {
		return nil, RetrievalError(acc, errors.New("retrieval pipeline is empty"))
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cmds := make([]*exec.Cmd, len(p.stages))
	stderr := make([]bytes.Buffer, len(p.stages))
	for i, st := range p.stages {
		args := make([]string, len(st.Args))
		for j := range st.Args {
			args[j] = strings.ReplaceAll(st.Args[j], config.AccessionPlaceholder, acc)
		}
		cmds[i] = exec.CommandContext(ctx, st.Exec, args...)
		cmds[i].Stderr = &stderr[i]
		// killed stages may leave children holding the output open
		cmds[i].WaitDelay = waitDelay
	}

	var stdout bytes.Buffer
	cmds[len(cmds)-1].Stdout = &stdout

	// parent copies of pipe ends are closed once children inherit them
	var pipes []*os.File
	closePipes := func() {
		for _, f := range pipes {
			_ = f.Close()
		}
		pipes = nil
	}
	for i := 0; i < len(cmds)-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			closePipes()
			return nil, RetrievalError(acc, err)
		}
		cmds[i].Stdout = w
		cmds[i+1].Stdin = r
		pipes = append(pipes, r, w)
	}

	started := 0
	var startErr error
	for _, cmd := range cmds {
		if startErr = cmd.Start(); startErr != nil {
			break
		}
		started++
	}
	closePipes()

	if startErr != nil {
		for _, cmd := range cmds[:started] {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
		}
		return nil, RetrievalError(acc, startErr)
	}

	var errs []error
	for i, cmd := range cmds {
		if err := cmd.Wait(); err != nil {
			msg := strings.TrimSpace(stderr[i].String())
			errs = append(errs, fmt.Errorf("%s: %w %s", cmd.Path, err, msg))
		}
	}

	res := stdout.Bytes()
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return res, RetrievalError(acc, fmt.Errorf("timeout after %s", p.timeout))
	case len(errs) > 0:
		return res, RetrievalError(acc, errors.Join(errs...))
	case len(res) == 0:
		return res, RetrievalError(acc, errors.New("empty output"))
	}
	return res, nil
}
