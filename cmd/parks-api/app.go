package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/osu-parks/parks-api/internal/config"
	"github.com/osu-parks/parks-api/internal/domain"
	"github.com/osu-parks/parks-api/internal/jsonapi"
	"github.com/osu-parks/parks-api/internal/platform/metrics"
	"github.com/osu-parks/parks-api/internal/platform/postgres"
	"github.com/osu-parks/parks-api/internal/service/auth"
	"github.com/osu-parks/parks-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	schema     *domain.Schema
	serializer *jsonapi.Serializer
	metrics    *metrics.Metrics

	parkStore  store.ParkStore
	ownerStore store.OwnerStore

	jwtService    auth.JWTService
	authenticator *auth.ClientAuthenticator
}

// newApplication wires every dependency around an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		schema: domain.DefaultSchema(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.authenticator = auth.NewClientAuthenticator(cfg.Auth, auth.NewBcryptVerifier())
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.parkStore = postgres.NewPostgresParkStore(db, app.schema, logger)
	app.ownerStore = postgres.NewPostgresOwnerStore(db, logger)
	app.serializer = jsonapi.NewSerializer(app.schema, cfg.Server.BaseURL)

	app.metrics = metrics.New()
	if err := app.metrics.RegisterDB(db, "parks"); err != nil {
		return nil, fmt.Errorf("failed to register database metrics: %w", err)
	}

	logger.Info("application initialized",
		slog.Int("amenities", len(app.schema.Amenities())))
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
