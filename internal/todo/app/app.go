package app

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/aussiebroadwan/taskhub/internal/todo/dispatch"
	"github.com/aussiebroadwan/taskhub/internal/todo/server"
	"github.com/aussiebroadwan/taskhub/internal/todo/service"
	"github.com/aussiebroadwan/taskhub/internal/todo/store"
	"github.com/aussiebroadwan/taskhub/internal/todo/store/drivers/file"
	"github.com/aussiebroadwan/taskhub/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/taskhub/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the todo service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	svc        *service.Service
	dispatcher *dispatch.Dispatcher
	server     *server.Server
}

// New creates an Application with all dependencies initialized: the
// snapshot store is opened (and migrated for the sqlite driver), the domain
// state restored, and the server wired up.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "todo-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	svc, err := service.New(app.db, app.logger)
	if err != nil {
		return nil, err
	}
	app.svc = svc

	app.dispatcher = dispatch.New(svc, dispatch.NewRegistry(), app.logger)
	app.server = server.New(server.Config{
		Addr:      net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		RateLimit: cfg.RateLimit,
	}, app.dispatcher, app.logger)

	return app, nil
}

func (app *Application) initStore() error {
	switch app.cfg.StoreDriver {
	case "file":
		app.db = file.NewStore(app.cfg.SnapshotFile)
		return nil

	case "sqlite":
		db, err := sqlite.NewStore(app.cfg.DatabaseFile)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		app.db = db
		return nil

	default:
		return fmt.Errorf("unknown store driver %q (expected file or sqlite)", app.cfg.StoreDriver)
	}
}

// Ready is closed once the server socket is bound.
func (app *Application) Ready() <-chan struct{} { return app.server.Ready() }

// Addr returns the server's bound address once Ready has fired.
func (app *Application) Addr() net.Addr { return app.server.Addr() }

// Run starts the server and blocks until shutdown is requested or the
// server fails.
func (app *Application) Run() error {
	app.logger.Info("todo service starting",
		slog.String("addr", net.JoinHostPort(app.cfg.Host, strconv.Itoa(app.cfg.Port))),
		slog.String("driver", app.cfg.StoreDriver),
		slog.String("version", BuildVersion),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.Run()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.close()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil

	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.Any("signal", sig))
		app.Shutdown()
		return nil
	}
}

// Shutdown stops the server and releases the store.
func (app *Application) Shutdown() {
	app.logger.Info("shutting down todo service...")
	app.server.Stop()
	app.close()
}

func (app *Application) close() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", slog.Any("error", err))
	}
}
