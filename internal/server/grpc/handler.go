package grpc

import (
	"context"

	"github.com/dmitrijs2005/farmauth/internal/api"
	"github.com/dmitrijs2005/farmauth/internal/common"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
)

func userResponse(u *models.User) *api.UserResponse {
	return &api.UserResponse{UserID: u.ID, Email: u.Email, Name: u.DisplayName}
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.UserResponse, error) {
	u, err := s.users.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return userResponse(u), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenResponse, error) {
	tok, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.TokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresIn:   int64(tok.ExpiresIn.Seconds()),
	}, nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *api.MeRequest) (*api.UserResponse, error) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrorUnauthorized)
	}
	return userResponse(u), nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, _ *api.DeleteAccountRequest) (*api.DeleteAccountResponse, error) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrorUnauthorized)
	}
	if err := s.users.DeleteAccount(ctx, u.ID); err != nil {
		return nil, toStatus(err)
	}
	return &api.DeleteAccountResponse{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}
