package vcs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/vortechstudio/app-installer/internal/logging"
)

// ErrNotRepository is returned when the project is not a git checkout.
var ErrNotRepository = errors.New("not a git repository")

// Snapshotter records the installed project in version control.
type Snapshotter interface {
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) (string, error)
	Push(ctx context.Context, remote, branch string) error
}

// Signature identifies a commit author.
type Signature struct {
	Name  string
	Email string
}

// Git is a go-git backed Snapshotter for the repository containing root.
type Git struct {
	root   string
	author *Signature
	now    func() time.Time
}

// Option configures Git.
type Option func(*Git)

// WithAuthor sets an explicit commit author.
func WithAuthor(name, email string) Option {
	return func(g *Git) {
		if name != "" && email != "" {
			g.author = &Signature{Name: name, Email: email}
		}
	}
}

// New creates a Snapshotter for the repository containing root.
func New(root string, opts ...Option) *Git {
	g := &Git{root: root, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Git) open() (*git.Repository, *git.Worktree, error) {
	repo, err := git.PlainOpenWithOptions(g.root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil, fmt.Errorf("%s: %w", g.root, ErrNotRepository)
		}
		return nil, nil, fmt.Errorf("failed to open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	return repo, wt, nil
}

// StageAll stages every new, modified and deleted file.
func (g *Git) StageAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, wt, err := g.open()
	if err != nil {
		return err
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	return nil
}

// Commit records the staged changes and returns the commit hash.
func (g *Git) Commit(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if message == "" {
		return "", fmt.Errorf("commit message cannot be empty")
	}
	_, wt, err := g.open()
	if err != nil {
		return "", err
	}

	opts := &git.CommitOptions{}
	if g.author != nil {
		sig := &object.Signature{Name: g.author.Name, Email: g.author.Email, When: g.now()}
		opts.Author = sig
		opts.Committer = sig
	}

	hash, err := wt.Commit(message, opts)
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	logging.Debug("committed", "hash", hash.String(), "message", message)
	return hash.String(), nil
}

// Push pushes branch to the same branch on remote. An up-to-date remote is
// not an error.
func (g *Git) Push(ctx context.Context, remote, branch string) error {
	repo, _, err := g.open()
	if err != nil {
		return err
	}

	ref := plumbing.NewBranchReferenceName(branch)
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{config.RefSpec(ref.String() + ":" + ref.String())},
	})
	switch {
	case err == nil:
		logging.Debug("pushed", "remote", remote, "branch", branch)
		return nil
	case errors.Is(err, git.NoErrAlreadyUpToDate):
		logging.Debug("remote already up to date", "remote", remote, "branch", branch)
		return nil
	case errors.Is(err, git.ErrRemoteNotFound):
		return fmt.Errorf("remote %s not found: %w", remote, err)
	default:
		return fmt.Errorf("failed to push %s to %s: %w", branch, remote, err)
	}
}
