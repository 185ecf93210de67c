// Package httpapi serves the account operations as a JSON/form HTTP API on
// Fiber: /register, /token (OAuth2 password form) and /users/me.
package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/farmauth/internal/logging"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
	"github.com/dmitrijs2005/farmauth/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Users is the part of services.UserService the HTTP API needs.
type Users interface {
	Register(ctx context.Context, email, password, displayName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenResponse, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

// Sessions resolves bearer tokens.
type Sessions interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type Options struct {
	Address        string
	RequestTimeout time.Duration
	CORSOrigins    []string
	// Ready backs /readyz. Nil means always ready.
	Ready func(context.Context) error
}

type HTTPServer struct {
	opts     Options
	users    Users
	sessions Sessions
	logger   logging.Logger
	app      *fiber.App
}

func NewHTTPServer(opts Options, l logging.Logger, us Users, ss Sessions) *HTTPServer {
	s := &HTTPServer{
		opts:     opts,
		users:    us,
		sessions: ss,
		logger:   l.With("module", "http_server"),
	}
	s.app = s.newApp()
	return s
}

// App exposes the underlying Fiber app, mainly for app.Test.
func (s *HTTPServer) App() *fiber.App { return s.app }

func (s *HTTPServer) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "farmauth",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
		ReadTimeout:           30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(s.logRequest)
	if len(s.opts.CORSOrigins) > 0 {
		// Credentials require an explicit origin list; fiber panics on "*".
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(s.opts.CORSOrigins, ","),
			AllowCredentials: true,
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			AllowMethods:     "GET,POST,DELETE,OPTIONS",
		}))
	}
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			if s.opts.Ready == nil {
				return true
			}
			return s.opts.Ready(c.UserContext()) == nil
		},
	}))
	app.Use(s.withTimeout)

	app.Post("/register", s.register)
	app.Post("/token", s.token)

	me := app.Group("/users/me", s.requireUser)
	me.Get("", s.me)
	me.Delete("", s.deleteMe)

	return app
}

// Run listens on the configured address until ctx is done.
func (s *HTTPServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)
	return s.app.Listen(s.opts.Address)
}
