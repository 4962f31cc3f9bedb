// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movie-review/cmd"
	"movie-review/internal/catalog"
	"movie-review/internal/data/repository"
	"movie-review/internal/wire"
	"movie-review/pkg/cache"
	"movie-review/pkg/database"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using zap production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Bool("vote_atomic", config.Vote.Atomic),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	catalogCache := cache.Open(config.Redis, logger)
	defer catalogCache.Close()

	httpClient, err := catalog.NewHTTPClient(config.Catalog, logger)
	if err != nil {
		logger.Fatal("Failed to build catalog client", zap.Error(err))
	}
	client := catalog.NewCachedClient(httpClient, catalogCache,
		time.Duration(config.Catalog.CacheTTLMinutes)*time.Minute, logger)

	app := wire.Wiring(repos, client, config, logger)

	if config.App.SeedData {
		n, err := app.Service.Movie.SeedFallbackMovies(ctx)
		if err != nil {
			logger.Error("Failed to seed fallback movies", zap.Error(err))
		} else if n > 0 {
			logger.Info("Fallback movies seeded", zap.Int("count", n))
		}
	}

	go purgeSessions(ctx, repos.Session, logger)

	if err := cmd.APIServer(ctx, app.Router, config, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

// purgeSessions drops long-expired sessions once an hour.
func purgeSessions(ctx context.Context, sessions repository.SessionRepository, logger *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("Session purge failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("Expired sessions purged", zap.Int64("count", n))
			}
		}
	}
}
