// Package installer runs the one-shot application installation.
//
// # State machine
//
// An Orchestrator moves through fixed phases:
//
//	Validating -> MandatorySetup -> OptionalFeatures -> Finalizing -> Done
//	     |              |
//	     +--------------+--> Aborted
//
// Validating rejects missing or malformed options before anything is
// touched. MandatorySetup runs, strictly in order: create .env from
// .env.example when absent, generate APP_KEY, merge the DB_* entries, apply
// the connection to the datastore registry and run the fresh migrate+seed.
// A failure in any of these aborts the run with a cause-specific
// *errors.InstallError.
//
// OptionalFeatures walks the manifest catalog in order. Each feature is
// confirmed independently; a selected feature runs its pre-commands and
// writes its template assets. A failed asset marks only its own feature as
// failed.
//
// Finalizing always runs the manifest follow-up commands, then stages,
// commits and pushes. Failures there are recorded as warnings.
//
// # Usage
//
//	o := installer.New(
//	    installer.WithManifest(m),
//	    installer.WithConfirmer(prompt.NewTerminal(nil, nil)),
//	)
//	result, err := o.Run(ctx, opts)
//
// Collaborators that are not supplied are built from the run options: a
// fetch.Fetcher rooted at the project, a fresh datastore.Registry, a
// migrate.Runner over the manifest-selected facility and a go-git
// snapshotter.
package installer
