// Package pg bootstraps the shared PostgreSQL layer: the pgx/v5
// connection pool the rls guard leases from, schema migrations (which
// install the row-security policies alongside the tables they protect),
// a health check, and error classifiers for the SQLSTATEs tenant-scoped
// code actually encounters.
//
// Configuration comes from the environment via the struct tags on
// [Config]; see pkg/config for loading.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
// The pool is handed to the rls guard once at startup
// (rls.NewPgxPool(pool)); application code never acquires connections
// from it directly.
package pg
