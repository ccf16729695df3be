// Package app wires configuration, logging, storage, services and the HTTP
// transport together and runs the server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql (migrations)
	"github.com/pressly/goose/v3"

	"cargoledger/internal/adapter/postgres"
	cargorepo "cargoledger/internal/adapter/postgres/cargo"
	modelrepo "cargoledger/internal/adapter/postgres/model"
	recordrepo "cargoledger/internal/adapter/postgres/record"
	"cargoledger/internal/adapter/postgres/refdata"
	"cargoledger/internal/config"
	"cargoledger/internal/domain"
	"cargoledger/internal/service/catalog"
	"cargoledger/internal/service/movement"
	"cargoledger/internal/speccodec"
	"cargoledger/internal/transport/middleware"
	"cargoledger/internal/transport/rest"
	"cargoledger/migrations"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, connects to the database, assembles the services and serves
// HTTP until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := migrate(ctx, cfg.Database.DSN, logger); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	cargoRepo := cargorepo.New(pool)
	modelRepo := modelrepo.New(pool)
	recordRepo := recordrepo.New(pool)
	refs := map[domain.RefKind]catalog.RefRepo{
		domain.RefKindCategory: refdata.New(pool, domain.RefKindCategory),
		domain.RefKindUnit:     refdata.New(pool, domain.RefKindUnit),
		domain.RefKindBrand:    refdata.New(pool, domain.RefKindBrand),
	}

	codec := speccodec.New(cfg.Ledger.SpecMaxDepth)

	movementSvc := movement.NewService(logger, modelRepo, recordRepo, txm)
	catalogSvc := catalog.NewService(logger, cargoRepo, modelRepo, refs, codec)

	healthHandler := rest.NewHealthHandler(pool, BuildVersion())
	catalogHandler := rest.NewCatalogHandler(catalogSvc, logger)
	recordHandler := rest.NewRecordHandler(movementSvc, logger, cfg.Ledger.MaxLinesPerRecord)

	router := rest.NewRouter(healthHandler, catalogHandler, recordHandler)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// migrate applies the embedded goose migrations through database/sql.
func migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
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
	for _, r := range results {
		logger.Info("migration applied", slog.String("source", r.Source.Path))
	}
	return nil
}
