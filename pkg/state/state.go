// Package state describes the workflow of a gnvmr working directory.
//
// The working directory is the only state store: its state is derived from
// the artifacts it contains every time a command starts.
package state

import "fmt"

// State of a working directory.
type State int

const (
	Idle State = iota
	Acquiring
	Acquired
	Downloading
	Downloaded
	Updating
	Updated
)

var stateNames = []string{
	"Idle",
	"Acquiring",
	"Acquired",
	"Downloading",
	"Downloaded",
	"Updating",
	"Updated",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Artifacts lists which persisted files of a working directory exist.
type Artifacts struct {
	// Source is the downloaded spreadsheet.
	Source bool
	// Table is the canonical TSV table.
	Table bool
	// Data is the directory with per-record subdirectories.
	Data bool
	// Flagged is the log of suspect files.
	Flagged bool
}

// FromArtifacts derives the persisted state of a working directory.
// Transient states (Downloading, Updating) cannot be observed on disk;
// Acquiring means that a spreadsheet was downloaded, but the canonical
// table was never written.
func FromArtifacts(a Artifacts) State {
	switch {
	case !a.Table && a.Source:
		return Acquiring
	case !a.Table:
		return Idle
	case a.Data && a.Flagged:
		return Updated
	case a.Data:
		return Downloaded
	default:
		return Acquired
	}
}

// In reports whether s is one of the given states.
func (s State) In(states ...State) bool {
	for _, v := range states {
		if s == v {
			return true
		}
	}
	return false
}
