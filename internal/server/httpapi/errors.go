package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/farmauth/internal/common"
	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, common.ErrDuplicateEmail):
		return fiber.StatusBadRequest
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrorUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *HTTPServer) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(errorResponse{Detail: fe.Message})
	}

	code := statusFor(err)
	var detail string
	switch {
	case errors.Is(err, common.ErrorValidation):
		detail = err.Error()
	case errors.Is(err, common.ErrDuplicateEmail):
		detail = "Email already registered"
	case errors.Is(err, common.ErrInvalidCredentials):
		detail = "Incorrect email or password"
	case errors.Is(err, common.ErrorUnauthorized):
		detail = "Could not validate credentials"
	case errors.Is(err, common.ErrorNotFound):
		detail = "Not Found"
	default:
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
		detail = "Internal Server Error"
	}

	if code == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, common.BearerScheme)
	}
	return c.Status(code).JSON(errorResponse{Detail: detail})
}
