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
	"fmt"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// getStatusCmd returns the status command.
func getStatusCmd() *cobra.Command {
	var format string

	statusCmd := &cobra.Command{
		Use:   "status <workdir>",
		Short: "Show state of a working directory",
		Long: `Show the workflow state of a working directory together with
the number of records in the table, record directories, and flagged
files.

States:
  Idle        nothing acquired yet
  Acquiring   spreadsheet downloaded, table is missing
  Acquired    table is ready, run 'gnvmr download'
  Downloaded  record directories exist, run 'gnvmr update'
  Updated     table was reconciled with flagged files

Examples:
  gnvmr status ./vmr
  gnvmr status -f text ./vmr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runStatus(cmd, args, format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	statusCmd.Flags().StringVarP(
		&format, "format", "f", "yaml",
		"output format: yaml or text",
	)

	return statusCmd
}

func runStatus(cmd *cobra.Command, args []string, format string) error {
	st, err := newPipeline().Status(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "text":
		_, err = fmt.Fprintf(out,
			"Working directory: %s\nState: %s\nRecords: %d\n"+
				"Record directories: %d\nFlagged files: %d\n",
			st.WorkDir, st.StateName, st.Records,
			st.RecordDirs, st.FlaggedFiles,
		)
		return err
	case "yaml":
		bs, err := yaml.Marshal(st)
		if err != nil {
			return err
		}
		_, err = out.Write(bs)
		return err
	default:
		return fmt.Errorf("unknown format %q, use yaml or text", format)
	}
}
