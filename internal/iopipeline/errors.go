package iopipeline

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnvmr/pkg/errcode"
	"github.com/gnames/gnvmr/pkg/state"
)

// previous phase that has to run before a phase.
var previous = map[string]string{
	"download": "acquire",
	"update":   "download",
}

// MissingPreconditionError is returned when a phase runs before the phase
// it depends on.
func MissingPreconditionError(workDir, phase string, st state.State) error {
	msg := `Cannot run <em>%s</em> yet

<em>Working directory:</em> %s
<em>State:</em> %s

<em>How to fix:</em>
  Run 'gnvmr %s' on this directory first`

	return &gn.Error{
		Code: errcode.MissingPreconditionError,
		Msg:  msg,
		Vars: []any{phase, workDir, st, previous[phase]},
		Err: fmt.Errorf("%s requires %s first, state of %s is %s",
			phase, previous[phase], workDir, st),
	}
}

// StateConflictError is returned when a phase already ran on a working
// directory.
func StateConflictError(workDir, phase string, st state.State) error {
	msg := `Cannot run <em>%s</em> again

<em>Working directory:</em> %s
<em>State:</em> %s

<em>How to fix:</em>
  Use a new working directory`

	return &gn.Error{
		Code: errcode.StateConflictError,
		Msg:  msg,
		Vars: []any{phase, workDir, st},
		Err:  fmt.Errorf("%s is not allowed, state of %s is %s", phase, workDir, st),
	}
}

// DirectoryConflictsError is returned after a download when some records
// were skipped because their directories already existed.
func DirectoryConflictsError(dirs []string) error {
	msg := `<warn>%d record directories already existed and were skipped</warn>

%s

Existing directories were not modified.`

	return &gn.Error{
		Code: errcode.DirectoryConflictError,
		Msg:  msg,
		Vars: []any{len(dirs), strings.Join(dirs, "\n")},
		Err:  fmt.Errorf("%d record directories already exist", len(dirs)),
	}
}

// CancelledError is returned when a phase is interrupted.
func CancelledError(err error) error {
	msg := "Operation was cancelled"

	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  msg,
		Err:  fmt.Errorf("cancelled: %w", err),
	}
}
