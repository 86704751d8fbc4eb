package migrate

import (
	"context"
	"fmt"

	"github.com/vortechstudio/app-installer/internal/logging"
)

// Runner runs a Facility and converts its result into an Outcome.
type Runner struct {
	facility Facility
	conn     Connector
	connName string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithConnectionCheck makes the runner open the named connection before
// touching the schema, so unreachable or misconfigured databases are
// reported with their driver error.
func WithConnectionCheck(conn Connector, name string) RunnerOption {
	return func(r *Runner) {
		r.conn = conn
		r.connName = name
	}
}

// NewRunner creates a runner for facility.
func NewRunner(facility Facility, opts ...RunnerOption) *Runner {
	r := &Runner{facility: facility}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFreshAndSeed drops, migrates and seeds. It never panics.
func (r *Runner) RunFreshAndSeed(ctx context.Context) (out Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = Outcome{Kind: KindSchema, Err: fmt.Errorf("migration panicked: %v", p)}
		}
	}()

	if r.conn != nil {
		if _, err := r.conn.DB(ctx, r.connName); err != nil {
			err = fmt.Errorf("%w: %w", ErrConnect, err)
			kind := Classify(err, KindConnection)
			logging.Debug("connection check failed", "kind", kind.String(), "error", err)
			return Outcome{Kind: kind, Err: err}
		}
	}

	if err := r.facility.Fresh(ctx); err != nil {
		kind := Classify(err, KindSchema)
		logging.Debug("migration failed", "kind", kind.String(), "error", err)
		return Outcome{Kind: kind, Err: err}
	}

	if err := r.facility.Seed(ctx); err != nil {
		kind := Classify(err, KindSeed)
		logging.Debug("seeding failed", "kind", kind.String(), "error", err)
		return Outcome{Kind: kind, Err: err}
	}

	return Outcome{OK: true}
}
