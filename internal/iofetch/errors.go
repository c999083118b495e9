package iofetch

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvmr/pkg/errcode"
)

// VMRDownloadError is returned when the VMR spreadsheet cannot be
// downloaded.
func VMRDownloadError(url string, err error) error {
	msg := `Cannot download VMR spreadsheet

<em>URL:</em> %s

<em>Possible causes:</em>
  - No network connection
  - ICTV moved the spreadsheet (set <em>vmr_url</em> in config)
  - The server is temporarily unavailable, try again later`

	return &gn.Error{
		Code: errcode.VMRDownloadError,
		Msg:  msg,
		Vars: []any{url},
		Err:  fmt.Errorf("cannot download %s: %w", url, err),
	}
}
