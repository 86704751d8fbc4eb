package manifest

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vortechstudio/app-installer/internal/system"
)

func TestDefault_Catalog(t *testing.T) {
	m := Default()

	keys := make([]string, len(m.Features))
	for i, f := range m.Features {
		keys[i] = f.Key
	}
	assert.Equal(t, []string{
		"close-issue", "labeler", "php-style", "phpstan",
		"pr-update", "release", "test", "changelog",
	}, keys)

	defaults := map[string]bool{
		"close-issue": true, "labeler": true, "php-style": true, "phpstan": true,
		"pr-update": true, "release": false, "test": false, "changelog": false,
	}
	for _, f := range m.Features {
		assert.Equal(t, defaults[f.Key], f.Default, f.Key)
	}

	assert.Equal(t, MigrationDriverCommand, m.Migrations.Driver)
	migrate, seed, err := m.Migrations.Argv()
	require.NoError(t, err)
	assert.Equal(t, []string{"php", "artisan", "migrate:fresh", "--force"}, migrate)
	assert.Equal(t, []string{"php", "artisan", "db:seed", "--force"}, seed)
	assert.Equal(t, "origin", m.VCS.Remote)
	assert.Equal(t, "master", m.VCS.Branch)
	assert.Equal(t, "Init System", m.VCS.Message)
	assert.Len(t, m.Finalize.Steps, 5)
}

func TestParse_MigrationsDefaults(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantDriver  string
		wantMigrate string
		wantSeed    string
	}{
		{
			name:        "section omitted",
			doc:         "",
			wantDriver:  MigrationDriverCommand,
			wantMigrate: DefaultMigrateCommand,
			wantSeed:    DefaultSeedCommand,
		},
		{
			name:        "custom seed command",
			doc:         "[migrations]\nseed_command = \"php artisan db:seed --class=InstallSeeder --force\"\n",
			wantDriver:  MigrationDriverCommand,
			wantMigrate: DefaultMigrateCommand,
			wantSeed:    "php artisan db:seed --class=InstallSeeder --force",
		},
		{
			name:       "gorm driver",
			doc:        "[migrations]\ndriver = \"gorm\"\n",
			wantDriver: MigrationDriverGorm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, m.Migrations.Driver)
			assert.Equal(t, tt.wantMigrate, m.Migrations.MigrateCommand)
			assert.Equal(t, tt.wantSeed, m.Migrations.SeedCommand)
		})
	}
}

func TestDefault_PhpstanPreCommands(t *testing.T) {
	f, ok := Default().Feature("phpstan")
	require.True(t, ok)
	require.Len(t, f.PreCommands, 3)

	argv, err := f.PreCommands[2].Argv()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"php", "artisan", "vendor:publish",
		`--provider=NunoMaduro\Larastan\LarastanServiceProvider`,
		"--tag=config",
	}, argv)
}

func TestDefault_ChangelogIsEmptyAsset(t *testing.T) {
	f, ok := Default().Feature("changelog")
	require.True(t, ok)

	last := f.Assets[len(f.Assets)-1]
	assert.True(t, last.Empty)
	assert.Equal(t, "CHANGELOG.md", last.Destination)
}

func TestAsset_URL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		source string
		want   string
	}{
		{"relative", "https://example.com/raw/main", "github/labeler.yml", "https://example.com/raw/main/github/labeler.yml"},
		{"trailing slash", "https://example.com/raw/main/", "/phpstan.dist.neon", "https://example.com/raw/main/phpstan.dist.neon"},
		{"absolute", "https://example.com", "https://other.test/x.yml", "https://other.test/x.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Asset{Source: tt.source}.URL(tt.base))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "unknown key",
			doc:     "base_url = \"https://x\"\nbogus = 1\n",
			wantErr: "unknown manifest keys: bogus",
		},
		{
			name: "duplicate feature",
			doc: `base_url = "https://x"
[[features]]
key = "a"
label = "A?"
  [[features.assets]]
  source = "a.yml"
  destination = "a.yml"
[[features]]
key = "a"
label = "A again?"
  [[features.assets]]
  source = "a.yml"
  destination = "a.yml"
`,
			wantErr: `duplicate key "a"`,
		},
		{
			name: "no assets",
			doc: `[[features]]
key = "a"
label = "A?"
`,
			wantErr: "at least one asset",
		},
		{
			name: "relative source without base",
			doc: `[[features]]
key = "a"
label = "A?"
  [[features.assets]]
  source = "a.yml"
  destination = "a.yml"
`,
			wantErr: "requires base_url",
		},
		{
			name: "absolute destination",
			doc: `base_url = "https://x"
[[features]]
key = "a"
label = "A?"
  [[features.assets]]
  source = "a.yml"
  destination = "/etc/a.yml"
`,
			wantErr: "must be relative",
		},
		{
			name: "unterminated quote",
			doc: `[[finalize.steps]]
run = "composer require 'oops"
`,
			wantErr: "finalize",
		},
		{
			name:    "unknown migration driver",
			doc:     "[migrations]\ndriver = \"flyway\"\n",
			wantErr: `unknown driver "flyway"`,
		},
		{
			name:    "command driver without commands",
			doc:     "[migrations]\ndriver = \"command\"\n",
			wantErr: "requires migrate_command",
		},
		{
			name:    "author half set",
			doc:     "[vcs]\nauthor_name = \"bot\"\n",
			wantErr: "author_name and author_email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCommand_DisplayLabel(t *testing.T) {
	assert.Equal(t, "Install", Command{Label: "Install", Run: "composer install"}.DisplayLabel())
	assert.Equal(t, "composer install", Command{Run: "composer install"}.DisplayLabel())
}

func TestLoad(t *testing.T) {
	override := `base_url = "https://templates.test"

[[features]]
key = "only"
label = "Only?"
default = true
  [[features.assets]]
  source = "only.yml"
  destination = ".github/workflows/only.yml"
`

	t.Run("falls back to embedded default", func(t *testing.T) {
		m, err := Load(system.NewMockFS(), "/project", "")
		require.NoError(t, err)
		assert.Len(t, m.Features, 8)
	})

	t.Run("project override", func(t *testing.T) {
		fsys := system.NewMockFS()
		fsys.AddFile("/project/installer.toml", []byte(override), 0o644)

		m, err := Load(fsys, "/project", "")
		require.NoError(t, err)
		require.Len(t, m.Features, 1)
		assert.Equal(t, "only", m.Features[0].Key)
		assert.Equal(t, "Yes", m.Prompt.Yes)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(system.NewMockFS(), "/project", "/elsewhere/custom.toml")
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("invalid override names the file", func(t *testing.T) {
		fsys := system.NewMockFS()
		fsys.AddFile("/project/installer.toml", []byte("nope = true\n"), 0o644)

		_, err := Load(fsys, "/project", "")
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "/project/installer.toml"))
	})
}
