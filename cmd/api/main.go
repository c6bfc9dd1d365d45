// Package main is the entry point for the Safarnama API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/adhingra/safarnama/backend/internal/ai"
	"github.com/adhingra/safarnama/backend/internal/config"
	"github.com/adhingra/safarnama/backend/internal/handler"
	"github.com/adhingra/safarnama/backend/internal/middleware"
	"github.com/adhingra/safarnama/backend/internal/places"
	"github.com/adhingra/safarnama/backend/internal/repo"
	"github.com/adhingra/safarnama/backend/internal/service"
	"github.com/adhingra/safarnama/backend/migrations"
)

// maxRequestBody caps JSON request bodies. Itinerary documents travel in
// responses, not requests, so 1 MiB is generous.
const maxRequestBody = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a local-development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// The database often comes up a beat after the API container does, so
	// the readiness ping retries with exponential backoff before giving up.
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 30*time.Second)
	err = retry.Do(pingCtx, retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond)), func(ctx context.Context) error {
		return retry.RetryableError(pool.Ping(ctx))
	})
	cancelPing()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := migrateUp(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Services ---------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	itineraryRepo := repo.NewItineraryRepo(pool)
	expenseRepo := repo.NewExpenseRepo(pool)

	aiClient := ai.NewClient(cfg.AIGatewayURL, cfg.AIAPIKey, cfg.AIModel)
	placesClient := places.NewClient(cfg.PlacesBaseURL, cfg.PlacesAPIKey)

	server := handler.NewServer(
		service.NewTripService(tripRepo),
		service.NewItineraryService(tripRepo, itineraryRepo, aiClient, logger),
		service.NewPlaceService(tripRepo, placesClient, cfg.PlaceLookupDelay, logger),
		service.NewExpenseService(tripRepo, expenseRepo),
		service.NewAssistantService(tripRepo, itineraryRepo, expenseRepo, aiClient),
		service.NewExportService(tripRepo, itineraryRepo),
		logger,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → CORS →
	// body-size cap. SlogLogger logs the matched route pattern, not the raw
	// path, so share-link tokens never reach the logs.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxRequestBody))

	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// The write timeout is generous because the assistant endpoint streams
	// model tokens over a single long-lived response.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrateUp applies all pending schema migrations from the embedded FS.
// goose drives database/sql, so it gets its own short-lived connection.
func migrateUp(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
