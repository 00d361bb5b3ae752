package drive

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

// DefaultTimeout bounds a single download request.
const DefaultTimeout = 30 * time.Second

// DefaultDelay is the politeness pause between successive downloads.
const DefaultDelay = 500 * time.Millisecond

// defaultBaseURL is the direct-download endpoint.
const defaultBaseURL = "https://drive.google.com/uc"

// userAgent is a browser-like UA string; the download endpoint rejects
// obvious non-browser clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36" +
	" (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// warningPhrase appears in the body of an interstitial confirmation page.
const warningPhrase = "virus scan warning"

// Fetcher downloads Drive files to local paths. Ordinary HTTP failures are
// logged and reported as false, never as errors: a missing photo skips one
// entry, it does not abort a batch.
type Fetcher struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// FetcherConfig holds construction options for Fetcher. Zero values get
// sensible defaults.
type FetcherConfig struct {
	Client  *http.Client
	BaseURL string // override for tests
	Logger  *slog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	fetcher := &Fetcher{
		client:  cfg.Client,
		baseURL: cfg.BaseURL,
		logger:  cfg.Logger,
	}

	if fetcher.client == nil {
		fetcher.client = &http.Client{Timeout: DefaultTimeout}
	}

	if fetcher.baseURL == "" {
		fetcher.baseURL = defaultBaseURL
	}

	if fetcher.logger == nil {
		fetcher.logger = slog.Default()
	}

	return fetcher
}

// Fetch downloads the file behind fileID to destPath. Idempotent: when
// destPath already exists no network call is made. Returns true when
// destPath holds the file afterwards.
func (f *Fetcher) Fetch(ctx context.Context, fileID, destPath string) bool {
	if _, err := os.Stat(destPath); err == nil {
		f.logger.Info("already downloaded, skipping", "path", destPath)

		return true
	}

	body, ok := f.download(ctx, f.downloadURL(fileID, ""))
	if !ok {
		return false
	}

	// Large files get an interstitial confirmation page instead of content.
	// Retry once with the token from the redirect URL; without a token the
	// interstitial body is persisted as-is, matching a plain browser fetch.
	if interstitial(body) {
		if token := body.finalURL.Query().Get("confirm"); token != "" {
			body, ok = f.download(ctx, f.downloadURL(fileID, token))
			if !ok {
				return false
			}
		}
	}

	writeErr := atomic.WriteFile(destPath, bytes.NewReader(body.data))
	if writeErr != nil {
		f.logger.Error("cannot write download", "path", destPath, "err", writeErr)

		return false
	}

	f.logger.Info("downloaded", "path", destPath, "bytes", len(body.data))

	return true
}

// response is the part of an HTTP exchange the confirmation logic needs.
type response struct {
	data     []byte
	finalURL *url.URL
}

func (f *Fetcher) downloadURL(fileID, confirmTok string) string {
	query := url.Values{"export": {"download"}, "id": {fileID}}
	if confirmTok != "" {
		query.Set("confirm", confirmTok)
	}

	return f.baseURL + "?" + query.Encode()
}

func (f *Fetcher) download(ctx context.Context, rawURL string) (response, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		f.logger.Error("cannot build request", "url", rawURL, "err", err)

		return response{}, false
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error("network error", "url", rawURL, "err", err)

		return response{}, false
	}

	defer func() {
		closeErr := resp.Body.Close()
		_ = closeErr
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		f.logger.Error("cannot read response", "url", rawURL, "err", err)

		return response{}, false
	}

	if resp.StatusCode != http.StatusOK {
		f.logger.Error("download failed", "url", rawURL, "status", resp.StatusCode)

		return response{}, false
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "image") {
		f.logger.Warn("downloaded file may not be an image", "content_type", contentType)
	}

	return response{
		data:     data,
		finalURL: resp.Request.URL,
	}, true
}

// interstitial reports whether resp looks like a confirmation page rather
// than file content.
func interstitial(resp response) bool {
	if resp.finalURL != nil && resp.finalURL.Query().Get("confirm") != "" {
		return true
	}

	return strings.Contains(strings.ToLower(string(resp.data)), warningPhrase)
}
