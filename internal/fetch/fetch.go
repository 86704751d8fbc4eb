package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/vortechstudio/app-installer/internal/logging"
	"github.com/vortechstudio/app-installer/internal/system"
)

// Getter performs HTTP requests. *http.Client satisfies it.
type Getter interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ Getter = (*http.Client)(nil)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Fetcher writes remote documents under a project root.
type Fetcher struct {
	root   string
	client Getter
	fs     system.FileSystem
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client.
func WithClient(c Getter) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithFileSystem sets the filesystem written to.
func WithFileSystem(fsys system.FileSystem) Option {
	return func(f *Fetcher) {
		f.fs = fsys
	}
}

// New creates a Fetcher rooted at projectRoot.
func New(projectRoot string, opts ...Option) *Fetcher {
	f := &Fetcher{
		root:   projectRoot,
		client: cleanhttp.DefaultClient(),
		fs:     system.DefaultFS(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Resolve returns the absolute destination path for dest, confined to the
// project root.
func (f *Fetcher) Resolve(dest string) (string, error) {
	root, err := filepath.Abs(f.root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}
	path, err := securejoin.SecureJoin(root, dest)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dest, err)
	}
	return path, nil
}

// FetchAndWrite downloads sourceURL and overwrites dest with the body. It
// returns the number of bytes written.
func (f *Fetcher) FetchAndWrite(ctx context.Context, sourceURL, dest string) (int, error) {
	path, err := f.Resolve(dest)
	if err != nil {
		return 0, err
	}

	body, err := f.get(ctx, sourceURL)
	if err != nil {
		return 0, err
	}

	if err := f.write(path, body); err != nil {
		return 0, err
	}
	logging.Debug("template written", "url", sourceURL, "path", path, "bytes", len(body))
	return len(body), nil
}

// WriteEmpty creates or truncates dest without any network access.
func (f *Fetcher) WriteEmpty(dest string) error {
	path, err := f.Resolve(dest)
	if err != nil {
		return err
	}
	return f.write(path, nil)
}

func (f *Fetcher) get(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid template URL %s: %w", sourceURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: sourceURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: failed to read body: %w", sourceURL, err)
	}
	return body, nil
}

func (f *Fetcher) write(path string, data []byte) error {
	if err := f.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := f.fs.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
