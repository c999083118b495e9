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

// getDownloadCmd returns the download command.
func getDownloadCmd() *cobra.Command {
	downloadCmd := &cobra.Command{
		Use:   "download <workdir>",
		Short: "Download GenBank files for every VMR record",
		Long: `Create a directory for every record of the canonical table and
retrieve GenBank files of its accessions.

Record directories are created in <workdir>/Data and named by the
Sort value of the record. Each of them contains:
  - accessions.txt: normalized accessions, one per line
  - GenBank/: one <accession>.gb file per accession
  - download_genbank.sh: the same retrieval as a shell script

GenBank files are retrieved by the external pipeline from config.yaml
(NCBI EDirect by default). Failed retrievals leave short or empty
files that are flagged later by 'gnvmr update'.

Examples:
  gnvmr download ./vmr
  gnvmr download -j 4 -t 120 ./vmr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDownload(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	downloadCmd.Flags().IntP(
		"jobs", "j", 0,
		"number of records processed concurrently",
	)
	downloadCmd.Flags().IntP(
		"timeout", "t", 0,
		"time limit in seconds to retrieve one accession",
	)

	return downloadCmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, jobsFlag, timeoutFlag)

	ctx, stop := signalContext()
	defer stop()

	return newPipeline().Download(ctx, args[0])
}
