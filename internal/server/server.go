// Package server boots the process: logging, database, cache, event feed,
// HTTP and optional gRPC, and shuts them down on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shashiranjanraj/stockroom/config"
	_ "github.com/shashiranjanraj/stockroom/database/migrations"
	"github.com/shashiranjanraj/stockroom/internal/kernel"
	"github.com/shashiranjanraj/stockroom/pkg/auth"
	"github.com/shashiranjanraj/stockroom/pkg/cache"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/event"
	stockgrpc "github.com/shashiranjanraj/stockroom/pkg/grpc"
	"github.com/shashiranjanraj/stockroom/pkg/logger"
	"github.com/shashiranjanraj/stockroom/pkg/migration"
	"github.com/shashiranjanraj/stockroom/pkg/ws"
)

const shutdownTimeout = 15 * time.Second

// SetupLogging installs the process logger. When LOG_MONGO_URI is set,
// records are also shipped to MongoDB; the returned func flushes them.
func SetupLogging(ctx context.Context) func(context.Context) error {
	opts := logger.Options{Production: config.IsProduction()}
	noop := func(context.Context) error { return nil }

	uri := config.LogMongoURI()
	if uri == "" {
		logger.Setup(opts)
		return noop
	}

	level := slog.LevelDebug
	if opts.Production {
		level = slog.LevelInfo
	}
	mh, err := logger.NewMongoHandler(ctx, logger.MongoOptions{
		URI:        uri,
		Database:   config.LogMongoDB(),
		Collection: config.LogMongoCollection(),
		App:        config.AppName(),
		Level:      level,
	})
	if err != nil {
		logger.Setup(opts)
		logger.Warn("logger: mongo sink disabled", "error", err)
		return noop
	}
	opts.Extra = append(opts.Extra, mh)
	logger.Setup(opts)
	return mh.Close
}

// OpenStore connects to the configured database.
func OpenStore(ctx context.Context) (*database.Store, error) {
	return database.Open(ctx, database.Options{
		Driver:  config.DatabaseDriver(),
		DSN:     config.DatabaseDSN(),
		Retries: 5,
	})
}

// NewHTTP builds the HTTP application from config around store.
func NewHTTP(store *database.Store, c cache.Store, bus *event.Bus, hub *ws.Hub) (*kernel.HTTP, error) {
	return kernel.NewHTTP(kernel.Deps{
		Store:        store,
		Cache:        c,
		Tokens:       auth.NewManager(config.JWTSecret(), config.JWTTTL()),
		Bus:          bus,
		Hub:          hub,
		CacheTTL:     config.CacheTTL(),
		RateLimit:    config.RateLimitPerMinute(),
		CORSOrigins:  config.CORSAllowedOrigins(),
		MaxBodyBytes: config.MaxBodyBytes(),
	})
}

// Run serves until ctx is cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	flushLogs := SetupLogging(ctx)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = flushLogs(flushCtx)
	}()

	if config.JWTSecret() == "change-me-in-production" && config.IsProduction() {
		return errors.New("server: JWT_SECRET must be set in production")
	}

	store, err := OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := migration.New(store.DB(ctx), os.Stdout).Run(ctx); err != nil {
		return err
	}

	c := cache.Connect(ctx)
	if closer, ok := c.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	bus := event.NewBus()
	hub := ws.NewHub()

	app, err := NewHTTP(store, c, bus, hub)
	if err != nil {
		return fmt.Errorf("server: build http: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		logger.Info("http: serving", "addr", srv.Addr, "env", config.AppEnv(), "db", store.Driver(), "cache", c.Driver())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})

	if port := config.GRPCPort(); port != "" {
		lis, err := net.Listen("tcp", ":"+port)
		if err != nil {
			return fmt.Errorf("grpc: listen on :%s: %w", port, err)
		}
		gs := stockgrpc.New(store.Ping)
		g.Go(func() error { return stockgrpc.Serve(gs, lis) })
		g.Go(func() error {
			<-gctx.Done()
			stockgrpc.Stop(gs, shutdownTimeout)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
