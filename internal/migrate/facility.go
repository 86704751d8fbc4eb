package migrate

import "context"

// Facility drops and recreates the schema, then seeds it.
type Facility interface {
	// Fresh drops every table and migrates from scratch.
	Fresh(ctx context.Context) error

	// Seed populates the freshly migrated schema.
	Seed(ctx context.Context) error
}
