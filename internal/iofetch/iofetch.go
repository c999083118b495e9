// Package iofetch downloads remote files over HTTP with retries.
package iofetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnvmr/pkg/config"
	"github.com/gnames/gnvmr/pkg/gnvmr"
	"github.com/sethgrid/pester"
)

type downloader struct {
	client *pester.Client
	log    *slog.Logger
}

// New creates a Downloader that retries failed requests with exponential
// backoff. A nil logger falls back to slog.Default().
func New(cfg config.DownloadConfig, logger *slog.Logger) gnvmr.Downloader {
	return newDownloader(cfg, logger)
}

func newDownloader(cfg config.DownloadConfig, logger *slog.Logger) *downloader {
	if logger == nil {
		logger = slog.Default()
	}
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = cfg.MaxRetries
	client.RetryOnHTTP429 = true
	client.Timeout = time.Duration(cfg.TimeoutSec) * time.Second
	return &downloader{client: client, log: logger}
}

// Download saves the body of url to path. The body is written to a
// temporary file in the same directory and renamed when complete.
func (d *downloader) Download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return VMRDownloadError(url, err)
	}

	d.log.Info("Downloading VMR", "url", url, "path", path)
	resp, err := d.client.Do(req)
	if err != nil {
		return VMRDownloadError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VMRDownloadError(url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return VMRDownloadError(url, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		_ = tmp.Close()
		return VMRDownloadError(url, err)
	}
	if err = tmp.Close(); err != nil {
		return VMRDownloadError(url, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return VMRDownloadError(url, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return VMRDownloadError(url, err)
	}

	d.log.Info("VMR downloaded", "path", path, "size", humanize.Bytes(uint64(n)))
	return nil
}
