package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joelazwar/spotifyDragDrop/internal/core"
)

// ArtworkFetcher downloads album art to a local file.
type ArtworkFetcher interface {
	Fetch(ctx context.Context, artURL, outputPath string) error
}

// HTTPArtworkFetcher fetches artwork over plain HTTP.
type HTTPArtworkFetcher struct {
	http *http.Client
}

// NewHTTPArtworkFetcher creates an artwork fetcher with the given request
// timeout.
func NewHTTPArtworkFetcher(timeout time.Duration) *HTTPArtworkFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPArtworkFetcher{
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads the artwork file. Callers treat failures as non-fatal;
// art is cosmetic, not required for a usable audio file.
func (f *HTTPArtworkFetcher) Fetch(ctx context.Context, artURL, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrTransport, err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: artwork fetch status %d", core.ErrTransport, resp.StatusCode)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create artwork file: %w", err)
	}

	// A failed download must not leave a truncated file behind; nothing
	// deletes the artwork path unless the fetch reported success.
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(outputPath)
		return fmt.Errorf("write artwork file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(outputPath)
		return fmt.Errorf("write artwork file: %w", err)
	}

	return nil
}
