package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "gnvmr", cmd.Use,
		"Command name should be gnvmr")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		cmd := getRootCmd()
		cmd.Version = "version: v1.2.3\nbuild:   abc123"

		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{flag})

		err := cmd.Execute()
		require.NoError(t, err, flag)

		output := buf.String()
		assert.Contains(t, output, "v1.2.3", flag)
		assert.Contains(t, output, "abc123", flag)
	}
}

// TestGetRootCmd_Subcommands verifies all phases are registered.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	for _, name := range []string{"acquire", "connect", "download", "update", "status"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.NotEqual(t, cmd, sub, name)
	}
}

// TestGetRootCmd_Descriptions verifies help texts.
func TestGetRootCmd_Descriptions(t *testing.T) {
	cmd := getRootCmd()

	assert.Contains(t, cmd.Short, "VMR")
	assert.Contains(t, cmd.Long, "acquire")
	assert.Contains(t, cmd.Long, "download")
	assert.Contains(t, cmd.Long, "update")
	assert.Contains(t, cmd.Long, "GNVMR_")
	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
}

// TestInitEnvVars verifies GNVMR_ variables override config values.
func TestInitEnvVars(t *testing.T) {
	t.Setenv("GNVMR_JOBS_NUMBER", "3")
	t.Setenv("GNVMR_LOG_LEVEL", "debug")
	t.Setenv("GNVMR_RETRIEVAL_TIMEOUT_SEC", "42")

	v := viper.New()
	initEnvVars(v)

	assert.Equal(t, 3, v.GetInt("jobs_number"))
	assert.Equal(t, "debug", v.GetString("log.level"))
	assert.Equal(t, 42, v.GetInt("retrieval.timeout_sec"))
}

// TestInitConfig verifies the embedded config is read back by viper.
func TestInitConfig(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, ensureTestConfig(home))

	res, err := initConfig(home)
	require.NoError(t, err)
	assert.Equal(t, "https://ictv.global/vmr/current", res.VMRURL)
	assert.Equal(t, 3, res.Download.MaxRetries)
	require.Len(t, res.Retrieval.Pipeline, 2)
	assert.Equal(t, "esearch", res.Retrieval.Pipeline[0].Exec)
	assert.Equal(t, "{accession}", res.Retrieval.Pipeline[0].Args[3])
	assert.Equal(t, "file", res.Log.Destination)

	_, err = initConfig(t.TempDir())
	assert.Error(t, err, "missing config file")
}
