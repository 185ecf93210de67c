package client

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/farmauth/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fakeAPI struct {
	lastRegisterReq *api.RegisterRequest
	lastLoginReq    *api.LoginRequest

	registerResp *api.UserResponse
	registerErr  error

	loginResp *api.TokenResponse
	loginErr  error

	meResp *api.UserResponse
	meErr  error

	deleteErr error
	pingErr   error
}

func (f *fakeAPI) Register(_ context.Context, in *api.RegisterRequest, _ ...grpc.CallOption) (*api.UserResponse, error) {
	f.lastRegisterReq = in
	return f.registerResp, f.registerErr
}
func (f *fakeAPI) Login(_ context.Context, in *api.LoginRequest, _ ...grpc.CallOption) (*api.TokenResponse, error) {
	f.lastLoginReq = in
	return f.loginResp, f.loginErr
}
func (f *fakeAPI) Me(context.Context, *api.MeRequest, ...grpc.CallOption) (*api.UserResponse, error) {
	return f.meResp, f.meErr
}
func (f *fakeAPI) DeleteAccount(context.Context, *api.DeleteAccountRequest, ...grpc.CallOption) (*api.DeleteAccountResponse, error) {
	return &api.DeleteAccountResponse{}, f.deleteErr
}
func (f *fakeAPI) Ping(context.Context, *api.PingRequest, ...grpc.CallOption) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, f.pingErr
}

func TestRegisterAndLogin(t *testing.T) {
	f := &fakeAPI{
		registerResp: &api.UserResponse{UserID: 3, Email: "alice@example.com", Name: "Alice"},
		loginResp:    &api.TokenResponse{AccessToken: "tok", TokenType: "bearer"},
	}
	c := &GRPCClient{client: f}
	ctx := context.Background()

	u, err := c.Register(ctx, "alice@example.com", "pw", "Alice")
	require.NoError(t, err)
	assert.Equal(t, &User{ID: 3, Email: "alice@example.com", Name: "Alice"}, u)
	assert.Equal(t, "pw", f.lastRegisterReq.Password)

	tok, err := c.Login(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
	assert.Equal(t, "tok", c.accessToken)
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		in   error
		want error
	}{
		{status.Error(codes.Unauthenticated, "incorrect email or password"), ErrInvalidCredentials},
		{status.Error(codes.Unauthenticated, "invalid token"), ErrUnauthorized},
		{status.Error(codes.AlreadyExists, "email already registered"), ErrAlreadyRegistered},
		{status.Error(codes.InvalidArgument, "validation error: email: must be a valid email address."), ErrInvalidInput},
		{status.Error(codes.Unavailable, "down"), ErrUnavailable},
		{status.Error(codes.DeadlineExceeded, "slow"), ErrUnavailable},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, c.mapError(tt.in), tt.want, "%v", tt.in)
	}

	assert.Nil(t, c.mapError(nil))
	other := c.mapError(status.Error(codes.Internal, "internal error"))
	assert.Contains(t, other.Error(), "rpc error")
}

func TestMe_MapsErrors(t *testing.T) {
	c := &GRPCClient{client: &fakeAPI{meErr: status.Error(codes.Unauthenticated, "invalid token")}}
	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)

	c = &GRPCClient{client: &fakeAPI{deleteErr: errors.New("boom")}}
	require.Error(t, c.DeleteAccount(context.Background()))
}

func TestAccessTokenInterceptor(t *testing.T) {
	c := &GRPCClient{}

	var got metadata.MD
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		got, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/m", nil, nil, nil, invoker))
	assert.Empty(t, got.Get("authorization"))

	c.SetAccessToken("abc")
	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/m", nil, nil, nil, invoker))
	assert.Equal(t, []string{"Bearer abc"}, got.Get("authorization"))
}

func TestNewFarmAuthClient(t *testing.T) {
	c, err := NewFarmAuthClient("127.0.0.1:1")
	require.NoError(t, err)
	assert.NotNil(t, c.client)
	require.NoError(t, c.Close())
	require.NoError(t, (&GRPCClient{}).Close())
}
