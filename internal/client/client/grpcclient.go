package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/farmauth/internal/api"
	"github.com/dmitrijs2005/farmauth/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// User is the account as the server reports it.
type User struct {
	ID    int64
	Email string
	Name  string
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.AuthServiceClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewFarmAuthClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewAuthServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// SetAccessToken sets the token sent with subsequent calls.
func (s *GRPCClient) SetAccessToken(token string) { s.accessToken = token }

func (s *GRPCClient) Register(ctx context.Context, email, password, name string) (*User, error) {
	res, err := s.client.Register(ctx, &api.RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &User{ID: res.UserID, Email: res.Email, Name: res.Name}, nil
}

// Login returns the access token and remembers it for later calls.
func (s *GRPCClient) Login(ctx context.Context, email, password string) (string, error) {
	res, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	s.accessToken = res.AccessToken
	return res.AccessToken, nil
}

func (s *GRPCClient) Me(ctx context.Context) (*User, error) {
	res, err := s.client.Me(ctx, &api.MeRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &User{ID: res.UserID, Email: res.Email, Name: res.Name}, nil
}

func (s *GRPCClient) DeleteAccount(ctx context.Context) error {
	if _, err := s.client.DeleteAccount(ctx, &api.DeleteAccountRequest{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	if _, err := s.client.Ping(ctx, &api.PingRequest{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		if st.Message() == common.ErrInvalidCredentials.Error() {
			return ErrInvalidCredentials
		}
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrUnauthorized
	case codes.AlreadyExists:
		return ErrAlreadyRegistered
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
