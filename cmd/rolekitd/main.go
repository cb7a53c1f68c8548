package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/rolekit/modules/users"
	"github.com/dmitrymomot/rolekit/pkg/authguard"
	"github.com/dmitrymomot/rolekit/pkg/config"
	"github.com/dmitrymomot/rolekit/pkg/httpserver"
	"github.com/dmitrymomot/rolekit/pkg/logger"
	"github.com/dmitrymomot/rolekit/pkg/notify"
	"github.com/dmitrymomot/rolekit/pkg/org"
	"github.com/dmitrymomot/rolekit/pkg/pg"
	"github.com/dmitrymomot/rolekit/pkg/rbac"
	"github.com/dmitrymomot/rolekit/pkg/redis"
)

type appConfig struct {
	Log   logger.Config
	HTTP  httpserver.Config
	PG    pg.Config
	Redis redis.Config
	Guard authguard.Config

	CatalogPath   string `env:"RBAC_CATALOG_PATH"`                       // optional YAML file overriding the builtin permission catalog
	OrgHeader     string `env:"ORG_HEADER" envDefault:"X-Org-ID"`        // request header carrying the organization context
	NotifyChannel string `env:"NOTIFY_CHANNEL_PREFIX" envDefault:"rolekit"` // prefix for event pub/sub channels
}

func main() {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	log := logger.New(cfg.Log, org.LoggerExtractor())
	ctx := context.Background()

	if err := run(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "rolekitd stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	rbacStore := rbac.NewPostgresStore(pool)
	registry := rbac.NewRegistry(rbacStore, catalog, rbac.WithRegistryLogger(log))
	if err := registry.SyncToDB(ctx); err != nil {
		return err
	}
	roles := rbac.NewManager(rbacStore)

	guard, err := authguard.New(authguard.NewRedisStore(redisClient), cfg.Guard)
	if err != nil {
		return err
	}

	svc := users.NewService(
		users.NewPostgresStore(pool),
		roles,
		registry,
		users.WithGuard(guard),
		users.WithPublisher(notify.NewRedisPublisher(redisClient, cfg.NotifyChannel)),
		users.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, pg.Healthcheck(pool), redis.Healthcheck(redisClient)))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(org.Middleware(cfg.OrgHeader))
		r.Mount("/users", users.Router(users.NewHandler(svc, log)))
	})

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

func loadCatalog(path string) (*rbac.Catalog, error) {
	if path == "" {
		return rbac.NewCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rbac.NewCatalogFromFile(f)
}
