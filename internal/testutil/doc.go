// Package testutil provides project fixtures for integration tests.
//
// # Projects
//
// NewProject creates a temporary project root holding the fixture
// .env.example, optionally with a git repository:
//
//	p := testutil.NewProject(t, testutil.WithGit())
//	p.WriteFile("database/.gitkeep", "")
//	key, _ := p.Env().Get("APP_KEY")
//
// # Template Server
//
// TemplateServer stands in for the asset host:
//
//	srv := testutil.TemplateServer(t, "missing.yml")
//	m, err := testutil.Manifest(srv.URL)
package testutil
