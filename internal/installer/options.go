package installer

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/vortechstudio/app-installer/internal/datastore"
	"github.com/vortechstudio/app-installer/internal/envfile"
	"github.com/vortechstudio/app-installer/internal/errors"
)

// Option defaults.
const (
	DefaultHost        = "localhost"
	DefaultPort        = 3306
	DefaultUsername    = "root"
	DefaultConnection  = datastore.DriverMySQL
	DefaultProjectRoot = "."
)

// Env keys written during mandatory setup.
const (
	EnvConnection = "DB_CONNECTION"
	EnvHost       = "DB_HOST"
	EnvPort       = "DB_PORT"
	EnvDatabase   = "DB_DATABASE"
	EnvUsername   = "DB_USERNAME"
	EnvPassword   = "DB_PASSWORD"
)

// Options holds the user-supplied installation parameters.
type Options struct {
	// Database is the database name (required)
	Database string

	// Host is the database server host
	Host string

	// Port is the database server port, 1..65535
	Port int

	// Username is the database user
	Username string

	// Password is the database password, possibly empty
	Password string

	// Connection is the datastore driver (mysql or sqlite)
	Connection string

	// ConnectionSet records that Connection was chosen explicitly, in which
	// case DB_CONNECTION is written to the env file
	ConnectionSet bool

	// ProjectRoot is the application checkout
	ProjectRoot string

	// NoInteraction answers every feature prompt with its default
	NoInteraction bool

	// SkipFinalize skips the follow-up commands and the git snapshot
	SkipFinalize bool

	// SkipPush commits without pushing
	SkipPush bool
}

// DefaultOptions returns options with every optional field at its default.
func DefaultOptions() Options {
	return Options{
		Host:        DefaultHost,
		Port:        DefaultPort,
		Username:    DefaultUsername,
		Connection:  DefaultConnection,
		ProjectRoot: DefaultProjectRoot,
	}
}

// Validate checks the options before anything is touched.
func (o Options) Validate() error {
	if o.Database == "" {
		return errors.ValidationError("Missing required options: --db-database")
	}
	if o.Port < 1 || o.Port > 65535 {
		return errors.ValidationError(fmt.Sprintf("invalid port %d: must be between 1 and 65535", o.Port))
	}
	switch o.Connection {
	case datastore.DriverMySQL:
		if o.Host == "" {
			return errors.ValidationError("database host cannot be empty")
		}
	case datastore.DriverSQLite:
	default:
		return errors.ValidationError(fmt.Sprintf("unsupported connection %q: must be %s or %s",
			o.Connection, datastore.DriverMySQL, datastore.DriverSQLite))
	}
	if o.ProjectRoot == "" {
		return errors.ValidationError("project path cannot be empty")
	}
	return nil
}

// EnvPairs returns the database entries merged into the env file.
func (o Options) EnvPairs() []envfile.Pair {
	var pairs []envfile.Pair
	if o.ConnectionSet {
		pairs = append(pairs, envfile.Pair{Key: EnvConnection, Value: o.Connection})
	}
	return append(pairs,
		envfile.Pair{Key: EnvHost, Value: envfile.Quote(o.Host)},
		envfile.Pair{Key: EnvPort, Value: strconv.Itoa(o.Port)},
		envfile.Pair{Key: EnvDatabase, Value: envfile.Quote(o.Database)},
		envfile.Pair{Key: EnvUsername, Value: envfile.Quote(o.Username)},
		envfile.Pair{Key: EnvPassword, Value: envfile.Quote(o.Password)},
	)
}

// ConnectionConfig returns the datastore profile for the options. SQLite
// database paths are resolved against the project root.
func (o Options) ConnectionConfig() datastore.ConnectionConfig {
	cfg := datastore.ConnectionConfig{
		Driver:   o.Connection,
		Host:     o.Host,
		Port:     o.Port,
		Database: o.Database,
		Username: o.Username,
		Password: o.Password,
	}
	if o.Connection == datastore.DriverSQLite && !filepath.IsAbs(o.Database) {
		cfg.Database = filepath.Join(o.ProjectRoot, o.Database)
	}
	return cfg
}

// EnvPath returns the path of the project env file.
func (o Options) EnvPath() string {
	return filepath.Join(o.ProjectRoot, ".env")
}

// EnvExamplePath returns the path of the env template.
func (o Options) EnvExamplePath() string {
	return filepath.Join(o.ProjectRoot, ".env.example")
}
