// Package app provides the application context for app-installer.
//
// App is the composition root: it holds the filesystem, command executor,
// HTTP client and prompt used by the commands, and builds a configured
// installer.Orchestrator for a project. Tests replace the package-level
// Default with SetDefault to inject mocks.
package app
