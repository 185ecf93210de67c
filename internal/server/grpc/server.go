// Package grpc exposes the account services over gRPC: AuthService with a
// JSON codec plus the standard health service.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/farmauth/internal/api"
	"github.com/dmitrijs2005/farmauth/internal/logging"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
	"github.com/dmitrijs2005/farmauth/internal/server/services"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Users is the part of services.UserService the transport needs.
type Users interface {
	Register(ctx context.Context, email, password, displayName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenResponse, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

// Sessions resolves bearer tokens.
type Sessions interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type GRPCServer struct {
	address        string
	users          Users
	sessions       Sessions
	logger         logging.Logger
	requestTimeout time.Duration
	health         *health.Server
}

var _ api.AuthServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, us Users, ss Sessions, requestTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		users:          us,
		sessions:       ss,
		requestTimeout: requestTimeout,
		health:         health.NewServer(),
	}
}

// newServer builds the grpc.Server with interceptors, tracing hook and
// both services registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			s.requestIDInterceptor,
			s.loggingInterceptor,
			s.timeoutInterceptor,
			s.accessTokenInterceptor,
		),
	)

	api.RegisterAuthServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then drains in-flight
// calls.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
