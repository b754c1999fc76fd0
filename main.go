package main

import (
	"context"
	"log"

	"gobayes/adapters/mcmc"
	"gobayes/adapters/ols"
	"gobayes/adapters/postgres"
	"gobayes/adapters/sim"
	"gobayes/app"
	"gobayes/internal"
	"gobayes/internal/config"
	"gobayes/internal/errors"
	"gobayes/internal/rng"
	"gobayes/ports"
	"gobayes/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to the optional run ledger. Returns nil without
// error when no DATABASE_URL is configured.
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	if appConfig.Database.URL == "" {
		return nil, nil
	}

	dsn := postgres.DSNWithSSLMode(appConfig.Database.URL, appConfig.Database.SSLMode)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return db, nil
}

func main() {
	// .env is optional; environment variables win
	_ = godotenv.Load()

	logger := internal.DefaultLogger

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("database initialization failed: %v", err)
	}

	var repo ports.RunRepository
	if db != nil {
		defer db.Close()
		runRepo := postgres.NewRunRepository(db)
		if impl, ok := runRepo.(*postgres.RunRepositoryImpl); ok {
			if err := impl.EnsureSchema(context.Background()); err != nil {
				log.Fatalf("schema setup failed: %v", err)
			}
		}
		repo = runRepo
		logger.Info("run persistence enabled")
	} else {
		logger.Info("no DATABASE_URL configured, runs will not be persisted")
	}

	rngPort := rng.NewStreamAdapter()
	analysisService := app.NewAnalysisService(
		sim.NewGenerator(rngPort),
		ols.NewFitter(),
		mcmc.NewAdapter(rngPort),
		repo,
		logger,
	)

	server := ui.NewServer(analysisService, repo, appConfig, logger)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
