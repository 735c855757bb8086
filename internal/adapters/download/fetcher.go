package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/ports"
)

// HTTPFetcher streams assets over HTTP into local files
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher. The client carries no overall
// timeout; long transfers are bounded by the request context.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{},
	}
}

// Ensure it implements the interface
var _ ports.Fetcher = (*HTTPFetcher)(nil)

// Fetch downloads url into destPath, truncating any existing file.
// progress receives cumulative bytes after each chunk; total is 0 when
// the server did not declare a content length. A failed fetch may
// leave a truncated file behind, which the next attempt overwrites.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, destPath string, progress ports.ProgressFunc) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: %d %s", domain.ErrUnexpectedStatus, resp.StatusCode, resp.Status)
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	out, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create file %s: %w", destPath, err)
	}
	defer out.Close()

	var written int64
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return written, fmt.Errorf("write chunk to %s: %w", destPath, writeErr)
			}
			written += int64(n)
			if progress != nil {
				progress(written, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return written, fmt.Errorf("download chunk: %w", readErr)
		}
	}

	return written, nil
}
