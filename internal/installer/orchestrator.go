package installer

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/vortechstudio/app-installer/internal/datastore"
	"github.com/vortechstudio/app-installer/internal/envfile"
	"github.com/vortechstudio/app-installer/internal/errors"
	"github.com/vortechstudio/app-installer/internal/fetch"
	"github.com/vortechstudio/app-installer/internal/keygen"
	"github.com/vortechstudio/app-installer/internal/logging"
	"github.com/vortechstudio/app-installer/internal/manifest"
	"github.com/vortechstudio/app-installer/internal/migrate"
	"github.com/vortechstudio/app-installer/internal/prompt"
	"github.com/vortechstudio/app-installer/internal/system"
	"github.com/vortechstudio/app-installer/internal/vcs"
)

// Step names recorded in the Result.
const (
	StepEnvFile     = "env-file"
	StepAppKey      = "app-key"
	StepEnvDatabase = "env-database"
	StepDatastore   = "datastore"
	StepMigrations  = "migrations"
	StepGitStage    = "git-stage"
	StepGitCommit   = "git-commit"
	StepGitPush     = "git-push"
)

// Fetcher writes template assets into the project.
type Fetcher interface {
	FetchAndWrite(ctx context.Context, sourceURL, dest string) (int, error)
	WriteEmpty(dest string) error
}

// Reconfigurer applies datastore connection parameters.
type Reconfigurer interface {
	Apply(name string, cfg datastore.ConnectionConfig) error
}

// MigrationRunner runs the fresh migrate+seed step.
type MigrationRunner interface {
	RunFreshAndSeed(ctx context.Context) migrate.Outcome
}

// KeyGenerator produces application keys.
type KeyGenerator interface {
	Generate() (string, error)
}

// Orchestrator runs an installation. Collaborators left unset are built
// from the run options.
type Orchestrator struct {
	fs        system.FileSystem
	exec      system.CommandExecutor
	manifest  *manifest.Manifest
	confirmer prompt.Confirmer
	fetcher   Fetcher
	registry  Reconfigurer
	migrator  MigrationRunner
	vcs       vcs.Snapshotter
	keys      KeyGenerator
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithFileSystem sets the filesystem.
func WithFileSystem(fsys system.FileSystem) Option {
	return func(o *Orchestrator) { o.fs = fsys }
}

// WithExecutor sets the subprocess runner.
func WithExecutor(exec system.CommandExecutor) Option {
	return func(o *Orchestrator) { o.exec = exec }
}

// WithManifest sets the feature manifest.
func WithManifest(m *manifest.Manifest) Option {
	return func(o *Orchestrator) { o.manifest = m }
}

// WithConfirmer sets the prompt used for interactive runs.
func WithConfirmer(c prompt.Confirmer) Option {
	return func(o *Orchestrator) { o.confirmer = c }
}

// WithFetcher sets the template fetcher.
func WithFetcher(f Fetcher) Option {
	return func(o *Orchestrator) { o.fetcher = f }
}

// WithRegistry sets the datastore registry.
func WithRegistry(r Reconfigurer) Option {
	return func(o *Orchestrator) { o.registry = r }
}

// WithMigrator sets the migration runner.
func WithMigrator(m MigrationRunner) Option {
	return func(o *Orchestrator) { o.migrator = m }
}

// WithSnapshotter sets the version control snapshotter.
func WithSnapshotter(s vcs.Snapshotter) Option {
	return func(o *Orchestrator) { o.vcs = s }
}

// WithKeyGenerator sets the application key generator.
func WithKeyGenerator(k KeyGenerator) Option {
	return func(o *Orchestrator) { o.keys = k }
}

// New creates an Orchestrator.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range opts {
		opt(o)
	}
	if o.fs == nil {
		o.fs = system.DefaultFS()
	}
	if o.exec == nil {
		o.exec = system.DefaultExecutor()
	}
	if o.manifest == nil {
		o.manifest = manifest.Default()
	}
	if o.confirmer == nil {
		o.confirmer = prompt.Defaults{}
	}
	return o
}

// run holds the per-invocation state.
type run struct {
	*Orchestrator
	opts      Options
	result    *Result
	merger    *envfile.Merger
	confirmer prompt.Confirmer
	fetcher   Fetcher
	registry  Reconfigurer
	migrator  MigrationRunner
	vcs       vcs.Snapshotter
	owned     *datastore.Registry
}

// Run executes the installation. A non-nil error is an *errors.InstallError
// and the Result is then in StateAborted.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Result, error) {
	r := &run{
		Orchestrator: o,
		opts:         opts,
		result:       &Result{State: StateValidating},
	}

	if err := opts.Validate(); err != nil {
		return r.abort(err)
	}
	defer r.close()
	if err := r.wire(); err != nil {
		logging.UserError("Unable to prepare the migrations")
		return r.abort(errors.DatastoreError("failed to prepare migrations", err))
	}

	r.result.State = StateMandatorySetup
	logging.UserInfo("Application is installing...")
	if err := r.mandatorySetup(ctx); err != nil {
		return r.abort(err)
	}

	r.result.State = StateOptionalFeatures
	r.optionalFeatures(ctx)

	r.result.State = StateFinalizing
	r.finalize(ctx)

	r.result.State = StateDone
	logging.UserAlert("Application is installed successfully.")
	if n := len(r.result.Warnings); n > 0 {
		logging.UserWarning("Completed with %d warning(s)", n)
	}
	return r.result, nil
}

func (r *run) wire() error {
	root := r.opts.ProjectRoot

	r.merger = envfile.NewMerger(r.fs)

	r.confirmer = r.Orchestrator.confirmer
	if r.opts.NoInteraction {
		r.confirmer = prompt.Defaults{}
	}

	r.fetcher = r.Orchestrator.fetcher
	if r.fetcher == nil {
		r.fetcher = fetch.New(root, fetch.WithFileSystem(r.fs))
	}

	r.registry = r.Orchestrator.registry
	if r.registry == nil {
		r.owned = datastore.NewRegistry()
		r.registry = r.owned
	}

	r.migrator = r.Orchestrator.migrator
	if r.migrator == nil {
		m, err := r.migrationRunner()
		if err != nil {
			return err
		}
		r.migrator = m
	}

	r.vcs = r.Orchestrator.vcs
	if r.vcs == nil {
		v := r.manifest.VCS
		r.vcs = vcs.New(root, vcs.WithAuthor(v.AuthorName, v.AuthorEmail))
	}
	return nil
}

// migrationRunner builds the runner for the manifest's driver. The command
// driver opens the connection first so driver errors are classified before
// the project commands run.
func (r *run) migrationRunner() (*migrate.Runner, error) {
	conn, ok := r.registry.(migrate.Connector)
	if !ok {
		return nil, fmt.Errorf("datastore registry %T cannot open connections", r.registry)
	}

	cfg := r.manifest.Migrations
	if cfg.Driver == manifest.MigrationDriverCommand {
		migrateArgv, seedArgv, err := cfg.Argv()
		if err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		facility := migrate.NewCommandFacility(r.exec, r.opts.ProjectRoot, migrateArgv, seedArgv)
		return migrate.NewRunner(facility, migrate.WithConnectionCheck(conn, datastore.DefaultConnection)), nil
	}

	return migrate.NewRunner(migrate.NewGormFacility(conn, datastore.DefaultConnection)), nil
}

func (r *run) close() {
	if r.owned == nil {
		return
	}
	if err := r.owned.Close(); err != nil {
		logging.Debug("failed to close datastore connections", "error", err)
	}
}

func (r *run) abort(err error) (*Result, error) {
	r.result.State = StateAborted
	r.result.Err = err
	return r.result, err
}

func (r *run) mandatorySetup(ctx context.Context) error {
	if err := r.ensureEnvFile(); err != nil {
		r.result.addStep(StepEnvFile, StepFailed, err.Error())
		logging.UserError("Unable to create the env file")
		return errors.EnvFileError("copy", err)
	}

	if err := r.generateKey(ctx); err != nil {
		r.result.addStep(StepAppKey, StepFailed, err.Error())
		logging.UserError("Unable to generate the application key")
		return errors.EnvFileError("key generation", err)
	}
	r.result.addStep(StepAppKey, StepOK, "")

	if err := r.merger.MergeFile(r.opts.EnvPath(), r.opts.EnvPairs()); err != nil {
		r.result.addStep(StepEnvDatabase, StepFailed, err.Error())
		logging.UserError("Unable to write the database settings")
		return errors.EnvFileError("merge", err)
	}
	r.result.addStep(StepEnvDatabase, StepOK, "")

	cfg := r.opts.ConnectionConfig()
	if err := r.registry.Apply(datastore.DefaultConnection, cfg); err != nil {
		r.result.addStep(StepDatastore, StepFailed, err.Error())
		logging.UserError("Unable to configure the database connection")
		return errors.DatastoreError("failed to configure the database connection", err)
	}
	r.result.addStep(StepDatastore, StepOK, cfg.String())

	var outcome migrate.Outcome
	_ = logging.Spin("Running migrations and seeders...", func() error {
		outcome = r.migrator.RunFreshAndSeed(ctx)
		return outcome.Err
	})
	if !outcome.OK {
		r.result.addStep(StepMigrations, StepFailed, outcome.Kind.String())
		logging.UserError("%s", outcome.Message())
		return errors.MigrationFailed(outcome.Message(), outcome.Err)
	}
	r.result.addStep(StepMigrations, StepOK, "")
	logging.UserSuccess("Database migrated and seeded")
	return nil
}

// ensureEnvFile copies .env.example to .env when .env is absent.
func (r *run) ensureEnvFile() error {
	envPath := r.opts.EnvPath()
	if r.fs.Exists(envPath) {
		r.result.addStep(StepEnvFile, StepSkipped, "env file already exists")
		return nil
	}

	example := r.opts.EnvExamplePath()
	if !r.fs.IsFile(example) {
		r.result.addStep(StepEnvFile, StepSkipped, "no .env.example")
		logging.Debug("no env template, env file will be created on merge", "path", example)
		return nil
	}

	if err := r.fs.CopyFile(example, envPath); err != nil {
		return err
	}
	r.result.addStep(StepEnvFile, StepOK, "copied from .env.example")
	logging.UserSuccess("Env file created successfully.")
	return nil
}

func (r *run) generateKey(ctx context.Context) error {
	if cmd := r.manifest.Key.Command; cmd != "" {
		return r.runCommand(ctx, manifest.Command{Label: "Generating application key", Run: cmd})
	}

	keys := r.keys
	if keys == nil {
		gen, err := keygen.New(r.manifest.Key.Cipher)
		if err != nil {
			return err
		}
		keys = gen
	}

	key, err := keys.Generate()
	if err != nil {
		return err
	}
	if err := r.merger.MergeFile(r.opts.EnvPath(), []envfile.Pair{{Key: keygen.EnvKey, Value: key}}); err != nil {
		return err
	}
	logging.UserSuccess("Application key set")
	return nil
}

func (r *run) optionalFeatures(ctx context.Context) {
	aborted := false
	for _, f := range r.manifest.Features {
		report := FeatureReport{Key: f.Key, Label: f.Label, Status: FeatureDeclined}
		if !aborted {
			selected, err := r.ask(ctx, f)
			if err != nil {
				aborted = true
				r.result.warn(fmt.Sprintf("feature prompts stopped at %s: %v", f.Key, err))
			}
			report.Selected = selected
		}
		if report.Selected {
			r.installFeature(ctx, f, &report)
		}
		r.result.Features = append(r.result.Features, report)
	}
}

func (r *run) ask(ctx context.Context, f manifest.Feature) (bool, error) {
	q := prompt.Question{
		Label:   f.Label,
		Hint:    f.Hint,
		Default: f.Default,
		Yes:     r.manifest.Prompt.Yes,
		No:      r.manifest.Prompt.No,
	}
	v, err := r.confirmer.Confirm(ctx, q)
	if err != nil {
		if stderrors.Is(err, prompt.ErrAborted) {
			logging.UserWarning("Prompt aborted, remaining features are skipped")
		}
		return false, err
	}
	logging.Debug("feature answered", "feature", f.Key, "selected", v)
	return v, nil
}

func (r *run) installFeature(ctx context.Context, f manifest.Feature, report *FeatureReport) {
	for _, c := range f.PreCommands {
		if err := r.runCommand(ctx, c); err != nil {
			r.result.warn(fmt.Sprintf("%s: %v", f.Key, err))
			logging.UserWarning("%s failed: %v", c.DisplayLabel(), err)
		}
	}

	for _, a := range f.Assets {
		if err := r.writeAsset(ctx, a); err != nil {
			report.Status = FeatureFailed
			report.Err = err
			r.result.warn(fmt.Sprintf("%s: %v", f.Key, err))
			logging.UserError("%s could not be installed: %v", f.Key, err)
			return
		}
		report.Files = append(report.Files, a.Destination)
	}

	report.Status = FeatureInstalled
	logging.UserSuccess("%s installed", f.Key)
}

func (r *run) writeAsset(ctx context.Context, a manifest.Asset) error {
	if a.Empty {
		return r.fetcher.WriteEmpty(a.Destination)
	}
	url := a.URL(r.manifest.BaseURL)
	return logging.Spin("Fetching "+a.Destination, func() error {
		_, err := r.fetcher.FetchAndWrite(ctx, url, a.Destination)
		return err
	})
}

func (r *run) finalize(ctx context.Context) {
	if r.opts.SkipFinalize {
		logging.UserInfo("Skipping finalization")
		return
	}

	for _, c := range r.manifest.Finalize.Steps {
		name := "finalize: " + c.DisplayLabel()
		if err := r.runCommand(ctx, c); err != nil {
			r.result.addStep(name, StepWarning, err.Error())
			r.result.warn(fmt.Sprintf("%s: %v", c.DisplayLabel(), err))
			logging.UserWarning("%s failed: %v", c.DisplayLabel(), err)
			continue
		}
		r.result.addStep(name, StepOK, "")
	}

	r.snapshot(ctx)
}

func (r *run) snapshot(ctx context.Context) {
	v := r.manifest.VCS

	if err := r.vcs.StageAll(ctx); err != nil {
		r.gitWarning(StepGitStage, err)
		return
	}
	r.result.addStep(StepGitStage, StepOK, "")

	hash, err := r.vcs.Commit(ctx, v.Message)
	if err != nil {
		r.gitWarning(StepGitCommit, err)
		return
	}
	r.result.addStep(StepGitCommit, StepOK, hash)
	logging.UserSuccess("Committed %q", v.Message)

	if r.opts.SkipPush {
		r.result.addStep(StepGitPush, StepSkipped, "")
		return
	}
	err = logging.Spin(fmt.Sprintf("Pushing to %s %s", v.Remote, v.Branch), func() error {
		return r.vcs.Push(ctx, v.Remote, v.Branch)
	})
	if err != nil {
		r.gitWarning(StepGitPush, err)
		return
	}
	r.result.addStep(StepGitPush, StepOK, v.Remote+"/"+v.Branch)
}

func (r *run) gitWarning(step string, err error) {
	r.result.addStep(step, StepWarning, err.Error())
	r.result.warn(fmt.Sprintf("%s: %v", step, err))
	logging.UserWarning("%s failed: %v", step, err)
}

// runCommand runs a manifest command in the project root.
func (r *run) runCommand(ctx context.Context, c manifest.Command) error {
	argv, err := c.Argv()
	if err != nil {
		return err
	}
	return logging.Spin(c.DisplayLabel(), func() error {
		out, err := r.exec.Execute(ctx, r.opts.ProjectRoot, argv[0], argv[1:]...)
		if err != nil {
			if detail := strings.TrimSpace(string(out)); detail != "" {
				logging.Debug("command output", "command", c.Run, "output", detail)
			}
			return fmt.Errorf("%s: %w", c.Run, err)
		}
		return nil
	})
}
