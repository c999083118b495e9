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

// getUpdateCmd returns the update command.
func getUpdateCmd() *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update <workdir>",
		Short: "Remove records with broken GenBank files from VMR table",
		Long: `Scan downloaded GenBank files and remove records with suspect
files from the canonical table.

A file is suspect when its first line is shorter than a GenBank
LOCUS line. Records with missing GenBank files are suspect too.
Paths of suspect files are appended to <workdir>/flagged.txt.

Directories of removed records are kept unless --prune is given.
Pruning cannot be undone.

Examples:
  gnvmr update ./vmr
  gnvmr update --prune ./vmr
  gnvmr update -p ./vmr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runUpdate(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	updateCmd.Flags().BoolP(
		"prune", "p", false,
		"delete directories of removed records (alias --delete-dirs)",
	)
	updateCmd.Flags().SetNormalizeFunc(pruneAlias)

	return updateCmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, pruneFlag)

	ctx, stop := signalContext()
	defer stop()

	return newPipeline().Update(ctx, args[0], cfg.Reconcile.WithPrune)
}
