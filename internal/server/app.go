// Package server wires configuration, storage, services and both transports
// together and runs them until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/farmauth/internal/logging"
	"github.com/dmitrijs2005/farmauth/internal/server/auth"
	"github.com/dmitrijs2005/farmauth/internal/server/config"
	"github.com/dmitrijs2005/farmauth/internal/server/httpapi"
	"github.com/dmitrijs2005/farmauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/farmauth/internal/server/services"

	gs "github.com/dmitrijs2005/farmauth/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	sessions    *services.SessionResolver
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if c.UsesInsecureSecret() {
		logger.Warn(ctx, "SECRET_KEY is not set; signing tokens with the insecure development secret")
	}

	db, m, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	codec := auth.NewTokenCodec([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	us, err := services.NewUserService(db, m, auth.NewArgon2(), codec, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	ss := services.NewSessionResolver(db, m, codec, logger)

	return &App{config: c, logger: logger, db: db, userService: us, sessions: ss}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.sessions, app.config.RequestTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(httpapi.Options{
		Address:        app.config.EndpointAddrHTTP,
		RequestTimeout: app.config.RequestTimeout,
		CORSOrigins:    app.config.CORSOrigins,
		Ready:          app.db.PingContext,
	}, app.logger, app.userService, app.sessions)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
		cancelFunc()
	}
}

// Run serves both transports until a signal arrives or one of them fails,
// then closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
