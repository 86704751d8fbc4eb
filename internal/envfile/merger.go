package envfile

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/vortechstudio/app-installer/internal/logging"
	"github.com/vortechstudio/app-installer/internal/system"
)

const defaultPerm fs.FileMode = 0644

// Merger applies merges to env files on disk.
type Merger struct {
	fs system.FileSystem
}

// NewMerger creates a Merger. A nil filesystem uses system.DefaultFS().
func NewMerger(fsys system.FileSystem) *Merger {
	if fsys == nil {
		fsys = system.DefaultFS()
	}
	return &Merger{fs: fsys}
}

// Read loads the document at path. A missing file is an empty document.
func (m *Merger) Read(path string) (*Document, error) {
	data, err := m.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Parse(""), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// MergeFile upserts pairs into the file at path and rewrites it atomically.
func (m *Merger) MergeFile(path string, pairs []Pair) error {
	doc, err := m.Read(path)
	if err != nil {
		return err
	}

	doc.Apply(pairs)
	logging.Debug("merging env file", "path", path, "keys", len(pairs))

	perm := defaultPerm
	if info, statErr := m.fs.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp := path + ".tmp"
	if err := m.fs.WriteFile(tmp, []byte(doc.String()), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := m.fs.Rename(tmp, path); err != nil {
		_ = m.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
