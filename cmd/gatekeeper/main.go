package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumivault/gatekeeper/internal/database"
	"github.com/lumivault/gatekeeper/internal/database/migrations"
	"github.com/lumivault/gatekeeper/internal/rest"
	"github.com/lumivault/gatekeeper/internal/setup"
	"github.com/lumivault/gatekeeper/internal/setup/config"
	"github.com/lumivault/gatekeeper/internal/setup/telemetry"
	"github.com/lumivault/gatekeeper/internal/worker/maintenance"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	// APILogDir specifies where API server log files are stored.
	APILogDir = "logs/api_logs"

	// WorkerLogDir specifies where worker log files are stored.
	WorkerLogDir = "logs/worker_logs"
)

// Server timeouts.
const (
	ReadTimeout     = 5 * time.Second
	WriteTimeout    = 10 * time.Second
	ShutdownTimeout = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "gatekeeper",
		Usage: "Trust-tier access engine",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the REST API server",
				Action: runServe,
			},
			{
				Name:   "sweep",
				Usage:  "Start the maintenance sweep worker",
				Action: runSweep,
			},
			{
				Name:     "db",
				Usage:    "Database management tool",
				Commands: dbCommands(),
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

func runServe(ctx context.Context, _ *cli.Command) error {
	app, err := setup.InitializeApp(ctx, telemetry.ServiceAPI, APILogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup(context.Background())

	handler := rest.NewServer(app.DB, app.Engine, app.Table, &app.Config.Server, app.Logger)

	addr := fmt.Sprintf("%s:%d", app.Config.Server.Host, app.Config.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("API server started on %s", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	app.Logger.Info("Shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	app.Logger.Info("Server gracefully stopped")

	return nil
}

func runSweep(ctx context.Context, _ *cli.Command) error {
	app, err := setup.InitializeApp(ctx, telemetry.ServiceWorker, WorkerLogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup(context.Background())

	worker := maintenance.New(
		app.DB, app.Statistics, app.Config.Worker.SweepIntervalDuration(), app.Logger,
	)

	runCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	worker.Start(runCtx)

	return nil
}

// dbCommands returns the migration management subcommands.
func dbCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init",
			Usage: "Initialize migration tables",
			Action: withMigrator(func(ctx context.Context, migrator *migrate.Migrator, _ *zap.Logger) error {
				return migrator.Init(ctx)
			}),
		},
		{
			Name:  "migrate",
			Usage: "Run pending migrations",
			Action: withMigrator(func(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger) error {
				if err := migrator.Lock(ctx); err != nil {
					return err
				}
				defer migrator.Unlock(ctx) //nolint:errcheck

				group, err := migrator.Migrate(ctx)
				if err != nil {
					return err
				}

				if group.IsZero() {
					logger.Info("No new migrations to run (database is up to date)")
					return nil
				}

				logger.Info("Successfully migrated", zap.String("group", group.String()))

				return nil
			}),
		},
		{
			Name:  "rollback",
			Usage: "Rollback the last migration group",
			Action: withMigrator(func(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger) error {
				if err := migrator.Lock(ctx); err != nil {
					return err
				}
				defer migrator.Unlock(ctx) //nolint:errcheck

				group, err := migrator.Rollback(ctx)
				if err != nil {
					return err
				}

				if group.IsZero() {
					logger.Info("No groups to roll back")
					return nil
				}

				logger.Info("Successfully rolled back", zap.String("group", group.String()))

				return nil
			}),
		},
		{
			Name:  "status",
			Usage: "Show migration status",
			Action: withMigrator(func(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger) error {
				ms, err := migrator.MigrationsWithStatus(ctx)
				if err != nil {
					return err
				}

				logger.Info("Migration status",
					zap.String("migrations", ms.String()),
					zap.String("unapplied", ms.Unapplied().String()),
					zap.String("last_group", ms.LastGroup().String()))

				return nil
			}),
		},
	}
}

// withMigrator connects to the database and hands a migrator to the action.
func withMigrator(action func(context.Context, *migrate.Migrator, *zap.Logger) error) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		cfg, _, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		db, err := database.NewConnection(ctx, &cfg.PostgreSQL, logger, false)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		migrator := migrate.NewMigrator(db.DB(), migrations.Migrations)

		return action(ctx, migrator, logger)
	}
}
