package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/farmauth/internal/common"
	"github.com/dmitrijs2005/farmauth/internal/server/auth"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "user"

// logRequest logs method, path, status and latency. Bodies and headers are
// never logged: they carry passwords and tokens.
func (s *HTTPServer) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			status = statusFor(err)
		}
	}

	s.logger.Info(c.UserContext(), "HTTP request",
		"request_id", c.Locals("requestid"),
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration", time.Since(start),
	)
	return err
}

// withTimeout bounds the request context handed to the services.
func (s *HTTPServer) withTimeout(c *fiber.Ctx) error {
	if s.opts.RequestTimeout <= 0 {
		return c.Next()
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), s.opts.RequestTimeout)
	defer cancel()
	c.SetUserContext(ctx)
	return c.Next()
}

// requireUser resolves the bearer token and stores the user in Locals.
func (s *HTTPServer) requireUser(c *fiber.Ctx) error {
	token := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		return common.ErrorUnauthorized
	}

	user, err := s.sessions.Resolve(c.UserContext(), token)
	if err != nil {
		return err
	}

	c.Locals(userLocalKey, user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	u, ok := c.Locals(userLocalKey).(*models.User)
	return u, ok && u != nil
}
