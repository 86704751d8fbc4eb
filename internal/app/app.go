package app

import (
	"github.com/hashicorp/go-cleanhttp"

	"github.com/vortechstudio/app-installer/internal/errors"
	"github.com/vortechstudio/app-installer/internal/fetch"
	"github.com/vortechstudio/app-installer/internal/installer"
	"github.com/vortechstudio/app-installer/internal/logging"
	"github.com/vortechstudio/app-installer/internal/manifest"
	"github.com/vortechstudio/app-installer/internal/prompt"
	"github.com/vortechstudio/app-installer/internal/system"
	"github.com/vortechstudio/app-installer/internal/vcs"
)

// App holds the application dependencies
type App struct {
	// FS is the filesystem the installer reads and writes
	FS system.FileSystem

	// Executor runs project commands
	Executor system.CommandExecutor

	// HTTPClient downloads templates
	HTTPClient fetch.Getter

	// Confirmer answers feature prompts. When nil a terminal prompt is used
	// if user output is a terminal, defaults otherwise.
	Confirmer prompt.Confirmer

	// Snapshotter overrides the go-git snapshotter
	Snapshotter vcs.Snapshotter

	// Migrator overrides the manifest-selected migration runner
	Migrator installer.MigrationRunner
}

// Option is a function that configures the App
type Option func(*App)

// WithFileSystem sets a custom filesystem
func WithFileSystem(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c fetch.Getter) Option {
	return func(a *App) {
		a.HTTPClient = c
	}
}

// WithConfirmer sets a custom confirmer
func WithConfirmer(c prompt.Confirmer) Option {
	return func(a *App) {
		a.Confirmer = c
	}
}

// WithSnapshotter sets a custom version control snapshotter
func WithSnapshotter(s vcs.Snapshotter) Option {
	return func(a *App) {
		a.Snapshotter = s
	}
}

// WithMigrator sets a custom migration runner
func WithMigrator(m installer.MigrationRunner) Option {
	return func(a *App) {
		a.Migrator = m
	}
}

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		FS:         system.DefaultFS(),
		Executor:   system.DefaultExecutor(),
		HTTPClient: cleanhttp.DefaultClient(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// LoadManifest loads the manifest for projectRoot. An empty path selects
// installer.toml in the project or the embedded default.
func (a *App) LoadManifest(projectRoot, path string) (*manifest.Manifest, error) {
	m, err := manifest.Load(a.FS, projectRoot, path)
	if err != nil {
		return nil, errors.ManifestError("failed to load manifest", err)
	}
	return m, nil
}

// Installer builds an orchestrator for projectRoot using m.
func (a *App) Installer(projectRoot string, m *manifest.Manifest) *installer.Orchestrator {
	confirmer := a.Confirmer
	if confirmer == nil {
		if logging.Interactive() {
			confirmer = prompt.NewTerminal(nil, logging.UserWriter())
		} else {
			logging.Debug("user output is not a terminal, using prompt defaults")
			confirmer = prompt.Defaults{}
		}
	}

	opts := []installer.Option{
		installer.WithFileSystem(a.FS),
		installer.WithExecutor(a.Executor),
		installer.WithManifest(m),
		installer.WithConfirmer(confirmer),
		installer.WithFetcher(fetch.New(projectRoot,
			fetch.WithClient(a.HTTPClient),
			fetch.WithFileSystem(a.FS),
		)),
	}
	if a.Snapshotter != nil {
		opts = append(opts, installer.WithSnapshotter(a.Snapshotter))
	}
	if a.Migrator != nil {
		opts = append(opts, installer.WithMigrator(a.Migrator))
	}
	return installer.New(opts...)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
