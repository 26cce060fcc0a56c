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
	"time"

	"github.com/spf13/cobra"
	"github.com/tourbook/catalog/db"
	"github.com/tourbook/catalog/internal/auth"
	"github.com/tourbook/catalog/internal/config"
	"github.com/tourbook/catalog/internal/graph"
	"github.com/tourbook/catalog/internal/handlers"
	"github.com/tourbook/catalog/internal/observability"
	"github.com/tourbook/catalog/internal/repository"
	"github.com/tourbook/catalog/internal/router"
	"github.com/tourbook/catalog/internal/scheduler"
	"github.com/tourbook/catalog/internal/services"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout     = 10 * time.Second
	storageProbeTimeout = 5 * time.Second
)

func newManager(cfg *config.Config) (*auth.Manager, error) {
	return auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
}

// openStore returns the configured store and a function releasing it.
func openStore(cfg *config.Config, migrate bool) (*repository.Store, func(), error) {
	if cfg.DBDriver == db.DriverMemory {
		slog.Warn("Using in-memory storage; data is lost on restart")
		return repository.NewMemoryStore(), func() {}, nil
	}

	conn, err := db.ConnectDatabase(cfg.DBDriver, cfg.DatabaseURL)

	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := conn.DB()

	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	closeDB := func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}

	if migrate {
		if err := db.MigrateDatabase(conn); err != nil {
			closeDB()
			return nil, nil, err
		}
		slog.Info("Database migrated", "driver", cfg.DBDriver)
	}

	return repository.NewGormStore(conn), closeDB, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()

	if err != nil {
		return err
	}

	if cfg.DBDriver == db.DriverMemory {
		return errors.New("nothing to migrate for DB_DRIVER=memory")
	}

	_, closeStore, err := openStore(cfg, true)

	if err != nil {
		return err
	}

	closeStore()
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()

	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.ServiceName, cfg.OTLPExporterEndpoint)

	if err != nil {
		return err
	}
	defer shutdownTracer(context.Background())

	store, closeStore, err := openStore(cfg, cfg.AutoMigrate)

	if err != nil {
		return err
	}
	defer closeStore()

	hub := handlers.NewHub(cfg.AllowedOrigins())
	publishers := services.Publishers{hub}

	var webhook *services.WebhookPublisher

	if cfg.WebhookURL != "" {
		if webhook, err = services.NewWebhookPublisher(cfg.WebhookURL, cfg.WebhookFormat, nil); err != nil {
			return err
		}
		publishers = append(publishers, webhook)
	}

	catalog := services.NewCatalog(store, publishers)

	jobs := scheduler.NewScheduler()
	jobs.Add(scheduler.StorageProbe(cfg.StorageProbeInterval, storageProbeTimeout, catalog.Ping))
	defer jobs.Stop()

	schema, err := graph.NewSchema(catalog)

	if err != nil {
		return fmt.Errorf("failed to build GraphQL schema: %w", err)
	}

	opts := router.Options{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins(),
		Catalog:        catalog,
		Schema:         schema,
		Hub:            hub,
		Jobs:           jobs,
	}

	if cfg.AdminEnabled() {
		if opts.Manager, err = newManager(cfg); err != nil {
			return err
		}
		opts.Credentials = auth.Credentials{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash}
	} else {
		slog.Warn("Admin login disabled; set JWT_SECRET and ADMIN_PASSWORD_HASH to enable it")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if webhook != nil {
		g.Go(func() error { return webhook.Run(gctx) })
	}

	g.Go(func() error {
		slog.Info("Server listening", "addr", srv.Addr, "driver", cfg.DBDriver)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")

		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
