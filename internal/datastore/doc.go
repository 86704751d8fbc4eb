// Package datastore holds the named database connection profiles used by
// the installer.
//
// A Registry maps a connection name to a ConnectionConfig and to at most one
// pooled *gorm.DB. Applying a new configuration closes and discards the pool
// for that name; the next call to DB opens a fresh one against the new
// parameters. MySQL connections are opened through gorm.io/driver/mysql with
// a DSN built by go-sql-driver/mysql, SQLite through gorm.io/driver/sqlite.
package datastore
