package manifest

import (
	_ "embed"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	shellquote "github.com/kballard/go-shellquote"
)

// FileName is the project-level manifest override.
const FileName = "installer.toml"

//go:embed default.toml
var defaultManifest string

// Migration drivers.
const (
	MigrationDriverGorm    = "gorm"
	MigrationDriverCommand = "command"
)

// Commands used when a manifest leaves the migrations section out.
const (
	DefaultMigrateCommand = "php artisan migrate:fresh --force"
	DefaultSeedCommand    = "php artisan db:seed --force"
)

// Manifest describes the template repository, the optional features and
// the follow-up commands of an installation.
type Manifest struct {
	BaseURL    string           `toml:"base_url"`
	Prompt     PromptLabels     `toml:"prompt"`
	Key        KeyConfig        `toml:"key"`
	Migrations MigrationsConfig `toml:"migrations"`
	Features   []Feature        `toml:"features"`
	Finalize   FinalizeConfig   `toml:"finalize"`
	VCS        VCSConfig        `toml:"vcs"`
}

// PromptLabels holds the affirmative and negative answer labels.
type PromptLabels struct {
	Yes string `toml:"yes"`
	No  string `toml:"no"`
}

// KeyConfig configures application key generation. When Command is set it
// replaces in-process generation.
type KeyConfig struct {
	Cipher  string `toml:"cipher"`
	Command string `toml:"command"`
}

// MigrationsConfig selects the migrate+seed facility.
type MigrationsConfig struct {
	Driver         string `toml:"driver"`
	MigrateCommand string `toml:"migrate_command"`
	SeedCommand    string `toml:"seed_command"`
}

// Argv splits the migrate and seed commands.
func (c MigrationsConfig) Argv() (migrate, seed []string, err error) {
	migrate, err = Command{Run: c.MigrateCommand}.Argv()
	if err != nil {
		return nil, nil, err
	}
	seed, err = Command{Run: c.SeedCommand}.Argv()
	if err != nil {
		return nil, nil, err
	}
	return migrate, seed, nil
}

// Feature is an optional, confirmation-gated scaffold.
type Feature struct {
	Key         string    `toml:"key"`
	Label       string    `toml:"label"`
	Default     bool      `toml:"default"`
	Hint        string    `toml:"hint"`
	PreCommands []Command `toml:"pre_commands"`
	Assets      []Asset   `toml:"assets"`
}

// Asset is a template file written into the project.
type Asset struct {
	// Source is a URL or a path relative to the manifest base URL.
	Source string `toml:"source"`

	// Destination is relative to the project root.
	Destination string `toml:"destination"`

	// Empty assets are written with no content and no fetch.
	Empty bool `toml:"empty"`
}

// Command is a labelled command line.
type Command struct {
	Label string `toml:"label"`
	Run   string `toml:"run"`
}

// FinalizeConfig lists the unconditional follow-up commands.
type FinalizeConfig struct {
	Steps []Command `toml:"steps"`
}

// VCSConfig configures the closing commit and push.
type VCSConfig struct {
	Remote      string `toml:"remote"`
	Branch      string `toml:"branch"`
	Message     string `toml:"message"`
	AuthorName  string `toml:"author_name"`
	AuthorEmail string `toml:"author_email"`
}

// Argv splits the command line into arguments.
func (c Command) Argv() ([]string, error) {
	args, err := shellquote.Split(c.Run)
	if err != nil {
		return nil, fmt.Errorf("invalid command %q: %w", c.Run, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return args, nil
}

// DisplayLabel returns the label, falling back to the command line.
func (c Command) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Run
}

// URL resolves the asset source against base.
func (a Asset) URL(base string) string {
	if u, err := url.Parse(a.Source); err == nil && u.Scheme != "" {
		return a.Source
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(a.Source, "/")
}

// Default returns the embedded manifest.
func Default() *Manifest {
	m, err := Parse(defaultManifest)
	if err != nil {
		panic(fmt.Errorf("embedded manifest is invalid: %w", err))
	}
	return m
}

// Parse decodes and validates a manifest document.
func Parse(data string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.Decode(data, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown manifest keys: %s", strings.Join(keys, ", "))
	}

	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Prompt.Yes == "" {
		m.Prompt.Yes = "Yes"
	}
	if m.Prompt.No == "" {
		m.Prompt.No = "No"
	}
	if m.Migrations.Driver == "" {
		m.Migrations.Driver = MigrationDriverCommand
		if m.Migrations.MigrateCommand == "" {
			m.Migrations.MigrateCommand = DefaultMigrateCommand
		}
		if m.Migrations.SeedCommand == "" {
			m.Migrations.SeedCommand = DefaultSeedCommand
		}
	}
	if m.VCS.Remote == "" {
		m.VCS.Remote = "origin"
	}
	if m.VCS.Branch == "" {
		m.VCS.Branch = "master"
	}
	if m.VCS.Message == "" {
		m.VCS.Message = "Init System"
	}
}

// Validate checks the manifest for structural errors.
func (m *Manifest) Validate() error {
	switch m.Migrations.Driver {
	case MigrationDriverGorm:
	case MigrationDriverCommand:
		if m.Migrations.MigrateCommand == "" || m.Migrations.SeedCommand == "" {
			return fmt.Errorf("migrations: command driver requires migrate_command and seed_command")
		}
		if _, _, err := m.Migrations.Argv(); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	default:
		return fmt.Errorf("migrations: unknown driver %q (must be gorm or command)", m.Migrations.Driver)
	}

	if m.Key.Command != "" {
		if _, err := (Command{Run: m.Key.Command}).Argv(); err != nil {
			return fmt.Errorf("key: %w", err)
		}
	}

	seen := make(map[string]bool)
	for i, f := range m.Features {
		if f.Key == "" {
			return fmt.Errorf("features[%d]: key is required", i)
		}
		if seen[f.Key] {
			return fmt.Errorf("features[%d]: duplicate key %q", i, f.Key)
		}
		seen[f.Key] = true

		if f.Label == "" {
			return fmt.Errorf("feature %s: label is required", f.Key)
		}
		if len(f.Assets) == 0 {
			return fmt.Errorf("feature %s: at least one asset is required", f.Key)
		}
		for _, a := range f.Assets {
			if err := a.validate(m.BaseURL); err != nil {
				return fmt.Errorf("feature %s: %w", f.Key, err)
			}
		}
		for _, c := range f.PreCommands {
			if _, err := c.Argv(); err != nil {
				return fmt.Errorf("feature %s: %w", f.Key, err)
			}
		}
	}

	for _, c := range m.Finalize.Steps {
		if _, err := c.Argv(); err != nil {
			return fmt.Errorf("finalize: %w", err)
		}
	}

	if (m.VCS.AuthorName == "") != (m.VCS.AuthorEmail == "") {
		return fmt.Errorf("vcs: author_name and author_email must both be set or both be empty")
	}

	return nil
}

func (a Asset) validate(base string) error {
	if a.Destination == "" {
		return fmt.Errorf("asset destination is required")
	}
	if filepath.IsAbs(a.Destination) {
		return fmt.Errorf("asset destination %q must be relative to the project root", a.Destination)
	}
	if a.Empty {
		return nil
	}
	if a.Source == "" {
		return fmt.Errorf("asset %s: source is required", a.Destination)
	}
	if u, err := url.Parse(a.Source); err == nil && u.Scheme != "" {
		return nil
	}
	if base == "" {
		return fmt.Errorf("asset %s: relative source requires base_url", a.Destination)
	}
	return nil
}

// Feature returns the feature with key.
func (m *Manifest) Feature(key string) (Feature, bool) {
	for _, f := range m.Features {
		if f.Key == key {
			return f, true
		}
	}
	return Feature{}, false
}
