package cmd

import (
	"github.com/gnames/gnvmr/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// funcFlag converts an explicitly set flag into a config option.
type funcFlag func(cmd *cobra.Command) (config.Option, bool)

func sheetFlag(cmd *cobra.Command) (config.Option, bool) {
	if !cmd.Flags().Changed("sheet") {
		return nil, false
	}
	s, _ := cmd.Flags().GetString("sheet")
	return config.OptXLSXSheet(s), true
}

func jobsFlag(cmd *cobra.Command) (config.Option, bool) {
	if !cmd.Flags().Changed("jobs") {
		return nil, false
	}
	i, _ := cmd.Flags().GetInt("jobs")
	return config.OptJobsNumber(i), true
}

func timeoutFlag(cmd *cobra.Command) (config.Option, bool) {
	if !cmd.Flags().Changed("timeout") {
		return nil, false
	}
	i, _ := cmd.Flags().GetInt("timeout")
	return config.OptRetrievalTimeoutSec(i), true
}

func pruneFlag(cmd *cobra.Command) (config.Option, bool) {
	if !cmd.Flags().Changed("prune") {
		return nil, false
	}
	b, _ := cmd.Flags().GetBool("prune")
	return config.OptReconcileWithPrune(b), true
}

// applyFlags updates the global config with options of changed flags.
func applyFlags(cmd *cobra.Command, flags ...funcFlag) {
	var res []config.Option
	for _, f := range flags {
		if opt, ok := f(cmd); ok {
			res = append(res, opt)
		}
	}
	if len(res) > 0 {
		cfg.Update(res)
	}
}

// pruneAlias makes --delete-dirs an alias of --prune.
func pruneAlias(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "delete-dirs" {
		name = "prune"
	}
	return pflag.NormalizedName(name)
}
