package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/ridesplit/internal/auth"
	"github.com/mmynk/ridesplit/internal/config"
	"github.com/mmynk/ridesplit/internal/routing"
	"github.com/mmynk/ridesplit/internal/service"
	"github.com/mmynk/ridesplit/internal/storage/sqlite"
	"github.com/mmynk/ridesplit/pkg/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logging.Setup()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	store, err := sqlite.New(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Storage.DBPath)

	secret := cfg.Share.Secret
	if secret == "" {
		secret = uuid.NewString()
		slog.Warn("SHARE_SECRET not set, share links will stop working after a restart")
	}
	shares := auth.NewShareManager(secret, cfg.ShareTokenDuration())

	lookup, closeLookup, err := newDistanceLookup(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLookup()

	staticDir, err := filepath.Abs(cfg.Server.StaticPath)
	if err != nil {
		return err
	}
	slog.Info("Serving static files", "path", staticDir)

	svc := service.NewRideService(store, shares, lookup)

	// h2c for HTTP/2 without TLS
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(newRouter(svc, shares, staticDir), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newDistanceLookup returns nil when no Maps API key is configured.
// The Redis cache is optional; if it cannot be reached lookups go straight to Maps.
func newDistanceLookup(ctx context.Context, cfg config.Config) (routing.DistanceLookup, func(), error) {
	noop := func() {}
	if cfg.Maps.APIKey == "" {
		slog.Info("Distance lookup disabled, GOOGLE_MAPS_API_KEY not set")
		return nil, noop, nil
	}

	gm, err := routing.NewGoogleMaps(cfg.Maps.APIKey,
		routing.WithLanguage(cfg.Maps.Language),
		routing.WithRegion(cfg.Maps.Region),
	)
	if err != nil {
		return nil, noop, err
	}

	if cfg.Cache.RedisAddr == "" {
		return gm, noop, nil
	}

	cache := routing.NewRedisCache(cfg.Cache.RedisAddr)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		slog.Warn("Redis unavailable, distance cache disabled", "addr", cfg.Cache.RedisAddr, "error", err)
		cache.Close()
		return gm, noop, nil
	}

	slog.Info("Distance cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.CacheTTL())
	return routing.NewCachedLookup(gm, cache, cfg.CacheTTL()), func() { cache.Close() }, nil
}
