package state_test

import (
	"testing"

	"github.com/gnames/gnvmr/pkg/state"
	"github.com/stretchr/testify/assert"
)

func TestFromArtifacts(t *testing.T) {
	tests := []struct {
		msg string
		a   state.Artifacts
		res state.State
	}{
		{"empty", state.Artifacts{}, state.Idle},
		{"spreadsheet only", state.Artifacts{Source: true}, state.Acquiring},
		{"table", state.Artifacts{Source: true, Table: true}, state.Acquired},
		{"table without spreadsheet", state.Artifacts{Table: true}, state.Acquired},
		{"data", state.Artifacts{Source: true, Table: true, Data: true}, state.Downloaded},
		{"flagged", state.Artifacts{Source: true, Table: true, Data: true, Flagged: true}, state.Updated},
		{"data without table", state.Artifacts{Data: true}, state.Idle},
		{"flagged without data", state.Artifacts{Table: true, Flagged: true}, state.Acquired},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, state.FromArtifacts(v.a), v.msg)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "Idle", state.Idle.String())
	assert.Equal(t, "Updated", state.Updated.String())
	assert.Equal(t, "State(99)", state.State(99).String())
}

func TestIn(t *testing.T) {
	assert.True(t, state.Downloaded.In(state.Downloaded, state.Updated))
	assert.False(t, state.Acquired.In(state.Downloaded, state.Updated))
	assert.False(t, state.Idle.In())
}
