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
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getAcquireCmd returns the acquire command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getAcquireCmd() *cobra.Command {
	acquireCmd := &cobra.Command{
		Use:   "acquire [url] <workdir>",
		Short: "Download VMR spreadsheet into a new working directory",
		Long: `Download the ICTV Virus Metadata Resource spreadsheet and save it
as a canonical tab-separated table.

This command:
  1. Creates the working directory
  2. Downloads the spreadsheet to current_VMR.xlsx
  3. Drops records without GenBank accessions
  4. Normalizes accessions to a ';'-separated list
  5. Saves the table to current_VMR.tsv

When url is omitted, vmr_url from config.yaml is used.
The command fails if the working directory already has a table.

Examples:
  gnvmr acquire ./vmr
  gnvmr acquire https://ictv.global/vmr/current ./vmr
  gnvmr acquire -s "VMR MSL39" ./vmr`,
		Aliases: []string{"connect"},
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAcquire(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	acquireCmd.Flags().StringP(
		"sheet", "s", "",
		"spreadsheet tab with the VMR table (empty = first tab)",
	)

	return acquireCmd
}

func runAcquire(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, sheetFlag)

	url, workDir := cfg.VMRURL, args[0]
	if len(args) == 2 {
		url, workDir = args[0], args[1]
	}

	ctx, stop := signalContext()
	defer stop()

	return newPipeline().Acquire(ctx, url, workDir)
}
