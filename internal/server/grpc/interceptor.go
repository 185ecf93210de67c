package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/farmauth/internal/api"
	"github.com/dmitrijs2005/farmauth/internal/common"
	"github.com/dmitrijs2005/farmauth/internal/server/auth"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	userKey      ctxKey = "user"
	requestIDKey ctxKey = "requestID"
)

const requestIDHeader = "x-request-id"

// authenticatedMethods require a valid bearer token.
var authenticatedMethods = map[string]struct{}{
	api.AuthService_Me_FullMethodName:            {},
	api.AuthService_DeleteAccount_FullMethodName: {},
}

// UserFromContext returns the user stored by the access token interceptor.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}

// RequestIDFromContext returns the id assigned to the current call.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *GRPCServer) requestIDInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	var id string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(requestIDHeader); len(v) > 0 {
			id = v[0]
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, id))

	return handler(context.WithValue(ctx, requestIDKey, id), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "gRPC request",
		"request_id", RequestIDFromContext(ctx),
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}

func (s *GRPCServer) timeoutInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if s.requestTimeout <= 0 {
		return handler(ctx, req)
	}
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	return handler(ctx, req)
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := authenticatedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			accessToken = auth.BearerToken(values[0])
		}
	}

	user, err := s.sessions.Resolve(ctx, accessToken)
	if err != nil {
		return nil, toStatus(err)
	}

	return handler(context.WithValue(ctx, userKey, user), req)
}
