// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool
// configured from the environment, goose schema migrations, a health probe
// and common error classification helpers.
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//	    panic(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    panic(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    panic(err)
//	}
package pg
