package testutil

import (
	"embed"
	"fmt"
	"strings"

	"github.com/vortechstudio/app-installer/internal/manifest"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// EnvExample returns the stock .env.example of a fresh project.
func EnvExample() string {
	data, err := LoadFixture("env.example")
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Manifest loads the two-feature fixture manifest pointed at baseURL,
// migrating through gorm. The "test" feature resolves against the template
// server; the "broken" feature asks for a file TemplateServer answers with
// 404.
func Manifest(baseURL string) (*manifest.Manifest, error) {
	return ManifestWithDriver(baseURL, manifest.MigrationDriverGorm)
}

// ManifestWithDriver is Manifest with the given migrations driver. The
// command driver runs the default artisan commands.
func ManifestWithDriver(baseURL, driver string) (*manifest.Manifest, error) {
	data, err := LoadFixture("manifest.toml")
	if err != nil {
		return nil, err
	}
	doc := strings.NewReplacer(
		"{{base_url}}", baseURL,
		"{{migrations_driver}}", driver,
	).Replace(string(data))
	if driver == manifest.MigrationDriverCommand {
		doc = strings.Replace(doc, "[migrations]\n", fmt.Sprintf("[migrations]\nmigrate_command = %q\nseed_command = %q\n",
			manifest.DefaultMigrateCommand, manifest.DefaultSeedCommand), 1)
	}
	return manifest.Parse(doc)
}
