package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnvmr/internal/iofs"
	"github.com/gnames/gnvmr/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func ensureTestConfig(home string) error {
	if err := iofs.EnsureDirs(home); err != nil {
		return err
	}
	return iofs.EnsureConfigFile(home)
}

func TestGetAcquireCmd(t *testing.T) {
	cmd := getAcquireCmd()
	assert.Equal(t, "acquire [url] <workdir>", cmd.Use)
	assert.Contains(t, cmd.Aliases, "connect")
	assert.Contains(t, cmd.Long, "current_VMR.tsv")

	flag := cmd.Flags().Lookup("sheet")
	require.NotNil(t, flag)
	assert.Equal(t, "s", flag.Shorthand)

	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"wd"}))
	assert.NoError(t, cmd.Args(cmd, []string{"https://example.org", "wd"}))
	assert.Error(t, cmd.Args(cmd, []string{"a", "b", "c"}))
}

func TestGetDownloadCmd(t *testing.T) {
	cmd := getDownloadCmd()
	assert.Equal(t, "download <workdir>", cmd.Use)
	for _, v := range []struct{ name, short string }{
		{"jobs", "j"},
		{"timeout", "t"},
	} {
		flag := cmd.Flags().Lookup(v.name)
		require.NotNil(t, flag, v.name)
		assert.Equal(t, v.short, flag.Shorthand, v.name)
	}
	assert.Error(t, cmd.Args(cmd, nil))
}

func TestGetUpdateCmd(t *testing.T) {
	tests := []struct {
		msg  string
		args []string
		res  bool
	}{
		{"default", nil, false},
		{"long", []string{"--prune"}, true},
		{"short", []string{"-p"}, true},
		{"alias", []string{"--delete-dirs"}, true},
	}

	for _, v := range tests {
		cmd := getUpdateCmd()
		require.NoError(t, cmd.ParseFlags(v.args), v.msg)

		cfg = config.New()
		applyFlags(cmd, pruneFlag)
		assert.Equal(t, v.res, cfg.Reconcile.WithPrune, v.msg)
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := getDownloadCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-j", "7", "--timeout", "30"}))

	cfg = config.New()
	applyFlags(cmd, jobsFlag, timeoutFlag)
	assert.Equal(t, 7, cfg.JobsNumber)
	assert.Equal(t, 30, cfg.Retrieval.TimeoutSec)

	cmd = getAcquireCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-s", "VMR MSL39"}))
	applyFlags(cmd, sheetFlag)
	assert.Equal(t, "VMR MSL39", cfg.XLSXSheet)
}

func TestRunStatus(t *testing.T) {
	cfg = config.New()
	wd := t.TempDir()
	require.NoError(t, os.WriteFile(config.TablePath(wd),
		[]byte("Sort\tVirus GENBANK accession\n1\tMF176343\n2\tKX384574\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(config.DataPath(wd), "1"), 0755))

	cmd := getStatusCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	require.NoError(t, runStatus(cmd, []string{wd}, "yaml"))

	var res map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, "Downloaded", res["state"])
	assert.Equal(t, 2, res["records"])
	assert.Equal(t, 1, res["record_dirs"])
	assert.Equal(t, 0, res["flagged_files"])

	buf.Reset()
	require.NoError(t, runStatus(cmd, []string{wd}, "text"))
	assert.Contains(t, buf.String(), "State: Downloaded")

	assert.Error(t, runStatus(cmd, []string{wd}, "xml"))
}

func TestRunDownloadBeforeAcquire(t *testing.T) {
	cfg = config.New()
	cmd := getDownloadCmd()
	err := runDownload(cmd, []string{t.TempDir()})
	assert.Error(t, err)
}
