/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnvmr/internal/iofs"
	"github.com/gnames/gnvmr/internal/iologger"
	"github.com/gnames/gnvmr/internal/iopipeline"
	gnvmr "github.com/gnames/gnvmr/pkg"
	"github.com/gnames/gnvmr/pkg/config"
	pipe "github.com/gnames/gnvmr/pkg/gnvmr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command when called without any subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", gnvmr.Version, gnvmr.Build),
		Use:     "gnvmr",
		Short:   "GNvmr keeps a local mirror of ICTV VMR with GenBank records",
		Long: `GNvmr keeps a local mirror of the ICTV Virus Metadata Resource (VMR)
cross-referenced with GenBank records of every virus.

A mirror lives in a working directory and is built in three phases:
  - acquire: download the VMR spreadsheet and save its canonical table
  - download: create a directory per record and fetch its GenBank files
  - update: flag broken GenBank files and remove their records

Every phase checks the state of the working directory first. Use
'gnvmr status' to see it.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNVMR_*)
  3. Config file (~/.config/gnvmr/config.yaml)
  4. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "gnvmr version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnvmr")

	rootCmd.AddCommand(
		getAcquireCmd(),
		getDownloadCmd(),
		getUpdateCmd(),
		getStatusCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	_ = iologger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNVMR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// VMR source
	_ = v.BindEnv("vmr_url", "GNVMR_VMR_URL")
	_ = v.BindEnv("xlsx_sheet", "GNVMR_XLSX_SHEET")

	// VMR download
	_ = v.BindEnv("download.max_retries", "GNVMR_DOWNLOAD_MAX_RETRIES")
	_ = v.BindEnv("download.timeout_sec", "GNVMR_DOWNLOAD_TIMEOUT_SEC")

	// GenBank retrieval
	_ = v.BindEnv("retrieval.timeout_sec", "GNVMR_RETRIEVAL_TIMEOUT_SEC")

	// Log configuration
	_ = v.BindEnv("log.level", "GNVMR_LOG_LEVEL")
	_ = v.BindEnv("log.format", "GNVMR_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "GNVMR_LOG_DESTINATION")

	// General configuration
	_ = v.BindEnv("jobs_number", "GNVMR_JOBS_NUMBER")

	v.AutomaticEnv()
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// newPipeline creates the pipeline with the loaded configuration.
func newPipeline() pipe.Pipeline {
	return iopipeline.New(cfg, nil, nil, slog.Default())
}
