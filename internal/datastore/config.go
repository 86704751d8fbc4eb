package datastore

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Supported drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// DefaultConnection is the connection name the installer configures.
const DefaultConnection = "default"

// ConnectionConfig holds the parameters of one datastore connection.
type ConnectionConfig struct {
	Driver   string
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

// Validate checks that the configuration can produce a dialector.
func (c ConnectionConfig) Validate() error {
	switch c.Driver {
	case DriverMySQL:
		if c.Host == "" {
			return fmt.Errorf("host is required")
		}
		if c.Port < 1 || c.Port > 65535 {
			return fmt.Errorf("invalid port %d", c.Port)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported driver %q (must be %s or %s)", c.Driver, DriverMySQL, DriverSQLite)
	}
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	return nil
}

// DSN returns the driver-specific data source name.
func (c ConnectionConfig) DSN() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	if c.Driver == DriverSQLite {
		return c.Database, nil
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.DBName = c.Database
	cfg.User = c.Username
	cfg.Passwd = c.Password
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN(), nil
}

// Dialector returns the gorm dialector for the configuration.
func (c ConnectionConfig) Dialector() (gorm.Dialector, error) {
	dsn, err := c.DSN()
	if err != nil {
		return nil, err
	}
	if c.Driver == DriverSQLite {
		return sqlite.Open(dsn), nil
	}
	return gormmysql.Open(dsn), nil
}

// String describes the connection without its password.
func (c ConnectionConfig) String() string {
	if c.Driver == DriverSQLite {
		return fmt.Sprintf("sqlite:%s", c.Database)
	}
	return fmt.Sprintf("mysql://%s@%s/%s", c.Username, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Database)
}
