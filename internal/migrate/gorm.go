package migrate

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vortechstudio/app-installer/internal/logging"
)

// Connector yields a database handle. *datastore.Registry satisfies it.
type Connector interface {
	DB(ctx context.Context, name string) (*gorm.DB, error)
}

// GormFacility migrates the application schema through gorm.
type GormFacility struct {
	conn     Connector
	name     string
	models   []any
	settings []Setting
}

// NewGormFacility creates a facility using the named connection.
func NewGormFacility(conn Connector, name string) *GormFacility {
	return &GormFacility{
		conn:     conn,
		name:     name,
		models:   Models(),
		settings: DefaultSettings(),
	}
}

func (f *GormFacility) db(ctx context.Context) (*gorm.DB, error) {
	db, err := f.conn.DB(ctx, f.name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return db, nil
}

// Fresh drops every existing table and auto-migrates the schema.
func (f *GormFacility) Fresh(ctx context.Context) error {
	db, err := f.db(ctx)
	if err != nil {
		return err
	}

	migrator := db.Migrator()
	tables, err := migrator.GetTables()
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	tables = userTables(tables)
	for _, table := range tables {
		logging.Debug("dropping table", "table", table)
		if err := migrator.DropTable(table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	if err := db.AutoMigrate(f.models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logging.Debug("schema migrated", "dropped", len(tables), "models", len(f.models))
	return nil
}

// userTables filters out tables owned by the database engine, such as
// sqlite_sequence, which cannot be dropped.
func userTables(tables []string) []string {
	kept := make([]string, 0, len(tables))
	for _, t := range tables {
		if strings.HasPrefix(strings.ToLower(t), "sqlite_") {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// Seed inserts the default settings that are not present yet.
func (f *GormFacility) Seed(ctx context.Context) error {
	db, err := f.db(ctx)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range f.settings {
			row := Setting{Key: s.Key, Value: s.Value}
			if err := tx.Where(&Setting{Key: s.Key}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("failed to seed setting %s: %w", s.Key, err)
			}
		}
		return nil
	})
}
