// Package main is the entry point for the truck logbook API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/trucklog/backend/internal/config"
	"github.com/trucklog/backend/internal/handler"
	"github.com/trucklog/backend/internal/middleware"
	"github.com/trucklog/backend/internal/repo"
	"github.com/trucklog/backend/internal/repo/filedb"
	"github.com/trucklog/backend/internal/service"
	"github.com/trucklog/backend/migrations"
)

// stores bundles the four repo interfaces the services need, regardless of
// which backend produced them.
type stores struct {
	entries    repo.EntryRepo
	transports repo.TransportRepo
	users      repo.UserRepo
	sessions   repo.SessionRepo
}

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet; the default text handler is fine here.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Record store -----------------------------------------------------
	// A startup failure here is fatal: the process refuses to serve traffic
	// over a store it could not load.
	st, cleanup, err := openStores(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open record store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer cleanup()
	slog.Info("record store ready", "driver", cfg.StoreDriver)

	// --- Services and handlers --------------------------------------------
	authSvc := service.NewAuthService(st.users, st.sessions)
	entrySvc := service.NewEntryService(st.entries)
	transportSvc := service.NewTransportService(st.transports)
	srv := handler.NewServer(authSvc, entrySvc, transportSvc)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body cap. The auth gate sits further in, inside handler.Routes,
	// so login and signup stay reachable without a session.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStores builds the store bundle for the configured driver.
// The returned cleanup releases whatever the backend holds open.
func openStores(ctx context.Context, cfg config.Config) (stores, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverFile:
		store, err := filedb.Open(cfg.FileDBPath)
		if err != nil {
			return stores{}, nil, err
		}
		return stores{
			entries:    store.Entries(),
			transports: store.Transports(),
			users:      store.Users(),
			sessions:   store.Sessions(),
		}, func() {}, nil

	case config.DriverPostgres:
		if err := migrate(ctx, cfg.DatabaseURL); err != nil {
			return stores{}, nil, fmt.Errorf("migrate: %w", err)
		}

		// pgxpool manages a pool of Postgres connections.
		// New() does not open connections immediately — the first query does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return stores{}, nil, err
		}

		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return stores{}, nil, err
		}

		return stores{
			entries:    repo.NewEntryRepo(pool),
			transports: repo.NewTransportRepo(pool),
			users:      repo.NewUserRepo(pool),
			sessions:   repo.NewSessionRepo(pool),
		}, pool.Close, nil

	default:
		return stores{}, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// migrate applies all embedded goose migrations.
// It uses a short-lived database/sql connection because goose drives that
// interface, while the rest of the app talks pgx natively.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("applied migration", "migration", res.Source.Path)
	}
	return nil
}
