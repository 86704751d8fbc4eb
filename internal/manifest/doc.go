// Package manifest loads the installer manifest.
//
// The manifest is a TOML document naming the remote template repository,
// the ordered catalog of optional features (each with its prompt, default,
// hint, pre-commands and template assets), the unconditional finalization
// commands and the closing commit settings.
//
// An embedded default manifest reproduces the stock installation. A project
// replaces it by committing an installer.toml at its root:
//
//	base_url = "https://example.com/templates/raw/main"
//
//	[[features]]
//	key = "test"
//	label = "Use 'Test'?"
//	default = false
//	hint = "Runs the test suite on every push"
//
//	  [[features.assets]]
//	  source = "github/workflows/test.yml"
//	  destination = ".github/workflows/test.yml"
//
// Unknown keys are rejected so typos surface before anything is installed.
package manifest
