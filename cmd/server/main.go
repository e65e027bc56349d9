package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	redisv9 "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"astrology_backend/internal/app/di"
	"astrology_backend/internal/app/router"
	"astrology_backend/internal/platform/config"
	"astrology_backend/internal/platform/db"
	"astrology_backend/internal/platform/http/handler"
	platformredis "astrology_backend/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.Logging.NewLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Redis は任意。接続できなければキャッシュなしで起動する
	rdb, err := platformredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	eph, err := di.NewEphemeris(cfg.Ephemeris, rdb, cfg.Redis.TTL)
	if err != nil {
		return err
	}
	narrator, err := di.NewNarrator(ctx, cfg.Gemini)
	if err != nil {
		return err
	}
	h := di.NewHandlers(gdb, eph, cfg.Ephemeris.Ayanamsa, narrator)

	checks := []handler.Check{{Name: "database", Ping: sqlDB.PingContext}}
	if rdb != nil {
		checks = append(checks, redisCheck(rdb))
	}

	// JWT_SECRET チェック（開発中の注意喚起）
	if cfg.JWT.Secret == "" {
		slog.Warn("jwt.secret is not set. Write endpoints are open; set a strong secret in production.")
	}

	engine := router.NewRouter(router.Options{
		Server: cfg.Server,
		JWT:    cfg.JWT,
		Checks: checks,
	}, h.Chart, h.Synastry)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: cfg.Server.RequestTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", srv.Addr, "ephemeris", cfg.Ephemeris.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
		defer cancel()
		slog.Info("shutting down", "grace", cfg.Server.ShutdownGrace)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func redisCheck(rdb *redisv9.Client) handler.Check {
	return handler.Check{
		Name: "redis",
		Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
}
