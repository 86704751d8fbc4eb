package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/vortechstudio/app-installer/internal/system"
)

// CommandError is a failed facility command with its combined output.
type CommandError struct {
	Command string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, out)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// CommandFacility runs project commands in the project root.
type CommandFacility struct {
	exec    system.CommandExecutor
	dir     string
	migrate []string
	seed    []string
}

// NewCommandFacility creates a facility from pre-split argument vectors.
func NewCommandFacility(exec system.CommandExecutor, dir string, migrate, seed []string) *CommandFacility {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &CommandFacility{exec: exec, dir: dir, migrate: migrate, seed: seed}
}

// Fresh runs the migrate command.
func (f *CommandFacility) Fresh(ctx context.Context) error {
	return f.run(ctx, f.migrate)
}

// Seed runs the seed command.
func (f *CommandFacility) Seed(ctx context.Context) error {
	return f.run(ctx, f.seed)
}

func (f *CommandFacility) run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("no command configured")
	}
	out, err := f.exec.Execute(ctx, f.dir, argv[0], argv[1:]...)
	if err != nil {
		return &CommandError{Command: strings.Join(argv, " "), Output: string(out), Err: err}
	}
	return nil
}
