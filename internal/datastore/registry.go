package datastore

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vortechstudio/app-installer/internal/logging"
)

// OpenFunc opens a gorm handle for a configuration.
type OpenFunc func(cfg ConnectionConfig) (*gorm.DB, error)

// Registry owns named connection profiles and their pooled handles.
type Registry struct {
	mu      sync.Mutex
	configs map[string]ConnectionConfig
	pools   map[string]*gorm.DB
	open    OpenFunc
}

// Option configures a Registry.
type Option func(*Registry)

// WithOpenFunc replaces how handles are opened.
func WithOpenFunc(fn OpenFunc) Option {
	return func(r *Registry) {
		r.open = fn
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		configs: make(map[string]ConnectionConfig),
		pools:   make(map[string]*gorm.DB),
		open:    Open,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open opens a gorm handle with logging silenced.
func Open(cfg ConnectionConfig) (*gorm.DB, error) {
	dialector, err := cfg.Dialector()
	if err != nil {
		return nil, err
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// Apply stores cfg under name and discards any pooled handle so the next
// DB call reconnects with the new parameters.
func (r *Registry) Apply(name string, cfg ConnectionConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("connection %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.configs[name] = cfg
	r.discardLocked(name)
	logging.Debug("applied connection config", "name", name, "connection", cfg.String())
	return nil
}

// Config returns the profile stored under name.
func (r *Registry) Config(name string) (ConnectionConfig, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.configs[name]
	return cfg, ok
}

// Connected reports whether a pooled handle exists for name.
func (r *Registry) Connected(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pools[name]
	return ok
}

// DB returns the handle for name, opening and pinging it on first use.
func (r *Registry) DB(ctx context.Context, name string) (*gorm.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if db, ok := r.pools[name]; ok {
		return db.WithContext(ctx), nil
	}

	cfg, ok := r.configs[name]
	if !ok {
		return nil, fmt.Errorf("connection %s is not configured", name)
	}

	db, err := r.open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access pool for %s: %w", cfg, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg, err)
	}

	r.pools[name] = db
	logging.Debug("opened connection", "name", name, "connection", cfg.String())
	return db.WithContext(ctx), nil
}

// Close closes every pooled handle.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for name, db := range r.pools {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("failed to close connection %s: %w", name, err)
			}
		}
		delete(r.pools, name)
	}
	return firstErr
}

func (r *Registry) discardLocked(name string) {
	db, ok := r.pools[name]
	if !ok {
		return
	}
	delete(r.pools, name)

	sqlDB, err := db.DB()
	if err != nil {
		logging.Debug("failed to access stale pool", "name", name, "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logging.Debug("failed to close stale pool", "name", name, "error", err)
	}
}
