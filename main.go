package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"s7scheduling/cache"
	"s7scheduling/config"
	"s7scheduling/database"
	"s7scheduling/handlers"
	"s7scheduling/logging"
	"s7scheduling/scheduling"
	"s7scheduling/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create context with timeout for initial connections
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	st, kind, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer st.Close()

	var boards *cache.Stripboards
	if cfg.Cache.RedisURL != "" {
		boards, err = cache.Connect(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer boards.Close()
		logger.Info("Stripboard cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	svc := scheduling.New(st, boards, logger)
	r := handlers.NewRouter(svc, logger, handlers.RouterOptions{
		APIKey:      cfg.Auth.APIKey,
		CORSOrigins: cfg.Server.CORSOrigins,
		StoreKind:   kind,
		Version:     cfg.App.Version,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("store", kind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}

// openStore uses PostgreSQL when DATABASE_URL is set and the in-memory store
// otherwise. Only the in-memory store is seeded at startup.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, string, error) {
	if cfg.Database.URL != "" {
		db, err := database.Connect(ctx, cfg.Database.URL, logger)
		if err != nil {
			return nil, "", err
		}
		applied, err := db.Migrate(ctx)
		if err != nil {
			db.Close()
			return nil, "", err
		}
		if len(applied) > 0 {
			logger.Info("Applied migrations", zap.Strings("files", applied))
		}
		return db, "postgres", nil
	}

	mem := store.NewMemory()
	if cfg.App.SeedFixtures {
		fixtures, err := store.DefaultFixtures()
		if err != nil {
			return nil, "", err
		}
		n, err := store.Seed(ctx, mem, fixtures)
		if err != nil {
			return nil, "", err
		}
		logger.Info("Seeded in-memory store", zap.Int("projects", n))
	}
	return mem, "memory", nil
}
