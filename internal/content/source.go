package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/starford/pymaster/internal/storage"
)

// FSSource reads candidates from a storage.Provider.
type FSSource struct {
	store storage.Provider
}

// NewFSSource wraps store as a Source.
func NewFSSource(store storage.Provider) *FSSource {
	return &FSSource{store: store}
}

// Fetch implements Source.
func (s *FSSource) Fetch(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.Read(key)
}

// maxDocumentBytes caps a single fetched document.
const maxDocumentBytes = 10 << 20

// HTTPSource reads candidates from a static file server.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates a Source issuing GET requests below baseURL.
// A nil client means http.DefaultClient.
func NewHTTPSource(baseURL string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("content: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("content: base url must be http(s): %s", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

// Fetch implements Source. Any non-2xx status is an error; 404 wraps
// os.ErrNotExist.
func (s *HTTPSource) Fetch(ctx context.Context, key string) ([]byte, error) {
	u := *s.base
	u.Path = u.Path + "/" + strings.TrimPrefix(key, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("content: build request: %w", err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content: fetch %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("content: fetch %s: %w", key, os.ErrNotExist)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("content: fetch %s: status %d", key, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", key, err)
	}
	return data, nil
}
