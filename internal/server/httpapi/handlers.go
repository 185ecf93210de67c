package httpapi

import (
	"fmt"

	"github.com/dmitrijs2005/farmauth/internal/common"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type userResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{UserID: u.ID, Email: u.Email, Name: u.DisplayName}
}

func (s *HTTPServer) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrorValidation)
	}

	u, err := s.users.Register(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(toUserResponse(u))
}

// token implements the OAuth2 password grant: form fields username (the
// email) and password.
func (s *HTTPServer) token(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	tok, err := s.users.Login(c.UserContext(), username, password)
	if err != nil {
		return err
	}
	return c.JSON(tokenResponse{AccessToken: tok.AccessToken, TokenType: tok.TokenType})
}

func (s *HTTPServer) me(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return common.ErrorUnauthorized
	}
	return c.JSON(toUserResponse(u))
}

func (s *HTTPServer) deleteMe(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return common.ErrorUnauthorized
	}
	if err := s.users.DeleteAccount(c.UserContext(), u.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
