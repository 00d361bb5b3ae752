package drive

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFetcher(server *httptest.Server) *Fetcher {
	return NewFetcher(FetcherConfig{
		Client:  server.Client(),
		BaseURL: server.URL,
		Logger:  discardLogger(),
	})
}

func TestFetchSuccess(t *testing.T) {
	t.Parallel()

	content := []byte("image-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "download", r.URL.Query().Get("export"))
		require.Equal(t, "abc123", r.URL.Query().Get("id"))
		require.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(content)
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "photo.jpg")

	ok := newTestFetcher(server).Fetch(context.Background(), "abc123", destPath)
	require.True(t, ok)

	got, err := os.ReadFile(destPath)
	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestFetchConfirmTokenRetry(t *testing.T) {
	t.Parallel()

	content := []byte("real-image")

	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		if r.URL.Query().Get("confirm") == "" {
			// First request: redirect to a confirm URL serving the
			// interstitial page, like the real endpoint does for large files.
			http.Redirect(w, r, "/?export=download&id=abc123&confirm=tok42", http.StatusFound)

			return
		}

		if requests == 2 {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>Virus scan warning</html>"))

			return
		}

		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(content)
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "photo.jpg")

	ok := newTestFetcher(server).Fetch(context.Background(), "abc123", destPath)
	require.True(t, ok)

	got, err := os.ReadFile(destPath)
	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestFetchHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "photo.jpg")

	ok := newTestFetcher(server).Fetch(context.Background(), "abc123", destPath)
	require.False(t, ok)

	_, err := os.Stat(destPath)
	require.True(t, os.IsNotExist(err))
}

func TestFetchSkipsExistingFile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for an existing file")
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(destPath, []byte("cached"), 0o644))

	ok := newTestFetcher(server).Fetch(context.Background(), "abc123", destPath)
	require.True(t, ok)
}

func TestFetchCancelledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	destPath := filepath.Join(t.TempDir(), "photo.jpg")

	ok := newTestFetcher(server).Fetch(ctx, "abc123", destPath)
	require.False(t, ok)
}
