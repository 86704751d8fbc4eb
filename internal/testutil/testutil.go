// Package testutil provides test utilities for integration tests
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"

	"github.com/vortechstudio/app-installer/internal/envfile"
)

// Project is a throwaway project root on disk
type Project struct {
	T    *testing.T
	Root string
	Repo *git.Repository
}

// ProjectOption configures NewProject
type ProjectOption func(*Project)

// WithGit initializes a git repository in the project root
func WithGit() ProjectOption {
	return func(p *Project) {
		repo, err := git.PlainInit(p.Root, false)
		if err != nil {
			p.T.Fatalf("Failed to init git repository: %v", err)
		}
		p.Repo = repo
	}
}

// WithoutEnvExample leaves the project without a .env.example
func WithoutEnvExample() ProjectOption {
	return func(p *Project) {
		if err := os.Remove(p.Path(".env.example")); err != nil {
			p.T.Fatalf("Failed to remove .env.example: %v", err)
		}
	}
}

// NewProject creates a project root seeded with the fixture .env.example
func NewProject(t *testing.T, opts ...ProjectOption) *Project {
	t.Helper()

	p := &Project{T: t, Root: t.TempDir()}
	p.WriteFile(".env.example", EnvExample())
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Path resolves rel against the project root
func (p *Project) Path(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}

// WriteFile writes a project file, creating parent directories
func (p *Project) WriteFile(rel, content string) {
	p.T.Helper()

	path := p.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		p.T.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		p.T.Fatalf("Failed to write %s: %v", rel, err)
	}
}

// ReadFile returns a project file's content
func (p *Project) ReadFile(rel string) string {
	p.T.Helper()

	data, err := os.ReadFile(p.Path(rel))
	if err != nil {
		p.T.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}

// Env parses the project's .env
func (p *Project) Env() *envfile.Document {
	p.T.Helper()
	return envfile.Parse(p.ReadFile(".env"))
}

// TemplateServer serves "# template <path>" for every request except
// paths ending in one of missing, which get a 404.
func TemplateServer(t *testing.T, missing ...string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, m := range missing {
			if strings.HasSuffix(r.URL.Path, m) {
				http.NotFound(w, r)
				return
			}
		}
		fmt.Fprintf(w, "# template %s\n", r.URL.Path)
	}))
	t.Cleanup(srv.Close)
	return srv
}
