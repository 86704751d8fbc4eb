package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/vortechstudio/app-installer/internal/logging"
	"github.com/vortechstudio/app-installer/internal/system"
)

// Load reads the manifest at path. An empty path resolves to
// <projectRoot>/installer.toml when that file exists and to the embedded
// default otherwise.
func Load(fsys system.FileSystem, projectRoot, path string) (*Manifest, error) {
	if fsys == nil {
		fsys = system.DefaultFS()
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(projectRoot, FileName)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logging.Debug("no project manifest, using embedded default", "path", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	m, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Debug("loaded manifest", "path", path, "features", len(m.Features))
	return m, nil
}
