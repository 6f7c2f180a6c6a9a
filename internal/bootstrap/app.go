// Package bootstrap wires repositories, services and handlers into a running
// application. A configured database and rules engine are used when present;
// otherwise the app falls back to in-memory storage and the canned engine so
// dev setups work with zero configuration.
package bootstrap

import (
	"context"
	"database/sql"
	"log"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/advisor"
	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/engine"
	"stackadvisor-backend/internal/explanations"
	"stackadvisor-backend/internal/shared/config"
	"stackadvisor-backend/internal/shared/server"
	"stackadvisor-backend/internal/shared/storage/db"
)

// App is the assembled application.
type App struct {
	Cfg    config.Config
	Router *gin.Engine
	DB     *sql.DB
}

// Build assembles the application from configuration.
func Build(ctx context.Context, cfg config.Config) *App {
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else if err := db.RunMigrations(ctx, conn); err != nil {
			log.Printf("failed to run migrations, falling back to memory: %v", err)
			conn.Close()
		} else {
			sqlDB = conn
		}
	}

	var catalogRepo catalog.Repo
	var advisorRepo advisor.Repo
	var explanationsRepo explanations.Repo
	if sqlDB != nil {
		catalogRepo = &catalog.PGRepo{DB: sqlDB}
		advisorRepo = &advisor.PGRepo{DB: sqlDB}
		explanationsRepo = &explanations.PGRepo{DB: sqlDB}
	} else {
		catalogRepo = catalog.NewMemoryRepo()
		advisorRepo = advisor.NewMemoryRepo()
		explanationsRepo = explanations.NewMemoryRepo()
	}

	var engineClient engine.Client
	if cfg.EngineBaseURL != "" {
		client, err := engine.NewHTTPClient(cfg.EngineBaseURL, cfg.EngineAPIKey, cfg.EngineTimeout)
		if err != nil {
			log.Printf("engine client misconfigured, falling back to placeholder: %v", err)
			engineClient = engine.Placeholder{}
		} else {
			engineClient = client
		}
	} else {
		engineClient = engine.Placeholder{}
	}

	catalogSvc := catalog.NewService(catalogRepo)
	explanationsSvc := explanations.NewService(explanationsRepo)
	explanationsSvc.TopN = cfg.TopRecsLimit
	advisorSvc := advisor.NewService(engineClient, advisorRepo, catalogTechnologies{Svc: catalogSvc}, explanationsSvc)

	router := server.NewRouter(server.RouterDeps{
		Cfg:          cfg,
		Advisor:      advisor.NewHandler(advisorSvc),
		Explanations: explanations.NewHandler(explanationsSvc),
		Catalog:      catalog.NewHandler(catalogSvc),
	})

	return &App{Cfg: cfg, Router: router, DB: sqlDB}
}

// Close releases resources held by the app.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// catalogTechnologies presents the reference-data catalog as the advisor's
// technology listing.
type catalogTechnologies struct {
	Svc *catalog.Service
}

func (s catalogTechnologies) Technologies(ctx context.Context) ([]advisor.Technology, error) {
	langs, err := s.Svc.ListLanguages(ctx)
	if err != nil {
		return nil, err
	}
	fws, err := s.Svc.ListFrameworks(ctx)
	if err != nil {
		return nil, err
	}
	storages, err := s.Svc.ListDataStorages(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]advisor.Technology, 0, len(langs)+len(fws)+len(storages))
	for _, lang := range langs {
		out = append(out, advisor.Technology{Name: lang.Name, Category: explanations.TypeLanguage})
	}
	for _, fw := range fws {
		out = append(out, advisor.Technology{Name: fw.Name, Category: explanations.TypeFramework})
	}
	for _, ds := range storages {
		out = append(out, advisor.Technology{Name: ds.Name, Category: explanations.TypeDataStorage})
	}
	return out, nil
}
