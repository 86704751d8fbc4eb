// Package migrate runs the "drop all tables, migrate, seed" step of an
// installation and classifies its failures.
//
// A Facility performs the two phases. CommandFacility delegates to project
// commands such as "php artisan migrate:fresh --force" and is what the
// default manifest uses; GormFacility drives the schema declared in
// schema.go through a datastore.Registry connection.
//
// WithConnectionCheck opens the connection before the facility runs, so an
// unreachable server or rejected credentials surface as driver errors:
//
//	runner := migrate.NewRunner(facility, migrate.WithConnectionCheck(registry, "default"))
//
// Runner never panics and never returns a bare error. Every run ends in an
// Outcome whose FailureKind selects the message shown to the user:
//
//	out := migrate.NewRunner(facility).RunFreshAndSeed(ctx)
//	if !out.OK {
//	    logging.UserError("%s", out.Message())
//	}
package migrate
