package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/farmauth/internal/api"
	"github.com/dmitrijs2005/farmauth/internal/common"
	"github.com/dmitrijs2005/farmauth/internal/logging"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fakeSessions struct {
	gotToken string
	user     *models.User
	err      error
}

func (f *fakeSessions) Resolve(_ context.Context, token string) (*models.User, error) {
	f.gotToken = token
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	return f.user, f.err
}

func TestAccessTokenInterceptor(t *testing.T) {
	alice := &models.User{ID: 1, Email: "alice@example.com"}

	tests := []struct {
		name      string
		method    string
		md        metadata.MD
		sessions  *fakeSessions
		wantCode  codes.Code
		wantToken string
		wantUser  bool
	}{
		{
			name:     "public method skips auth",
			method:   api.AuthService_Login_FullMethodName,
			sessions: &fakeSessions{},
			wantCode: codes.OK,
		},
		{
			name:      "valid bearer",
			method:    api.AuthService_Me_FullMethodName,
			md:        metadata.Pairs("authorization", "Bearer abc"),
			sessions:  &fakeSessions{user: alice},
			wantCode:  codes.OK,
			wantToken: "abc",
			wantUser:  true,
		},
		{
			name:     "missing header",
			method:   api.AuthService_Me_FullMethodName,
			sessions: &fakeSessions{user: alice},
			wantCode: codes.Unauthenticated,
		},
		{
			name:     "wrong scheme",
			method:   api.AuthService_DeleteAccount_FullMethodName,
			md:       metadata.Pairs("authorization", "Basic abc"),
			sessions: &fakeSessions{user: alice},
			wantCode: codes.Unauthenticated,
		},
		{
			name:      "store down",
			method:    api.AuthService_Me_FullMethodName,
			md:        metadata.Pairs("authorization", "Bearer abc"),
			sessions:  &fakeSessions{err: common.ErrStoreUnavailable},
			wantCode:  codes.Internal,
			wantToken: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGRPCServer("", logging.Nop{}, nil, tt.sessions, 0)

			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}

			var sawUser bool
			handler := func(ctx context.Context, req any) (any, error) {
				_, sawUser = UserFromContext(ctx)
				return "ok", nil
			}

			_, err := s.accessTokenInterceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: tt.method}, handler)
			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Equal(t, tt.wantToken, tt.sessions.gotToken)
			assert.Equal(t, tt.wantUser, sawUser)
		})
	}
}

func TestTimeoutInterceptor(t *testing.T) {
	s := NewGRPCServer("", logging.Nop{}, nil, nil, 50*time.Millisecond)

	_, err := s.timeoutInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, _ any) (any, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		return nil, nil
	})
	require.NoError(t, err)

	s = NewGRPCServer("", logging.Nop{}, nil, nil, 0)
	_, err = s.timeoutInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, _ any) (any, error) {
		_, ok := ctx.Deadline()
		assert.False(t, ok)
		return nil, nil
	})
	require.NoError(t, err)
}

func TestRequestIDInterceptor_KeepsIncomingID(t *testing.T) {
	s := NewGRPCServer("", logging.Nop{}, nil, nil, 0)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "req-42"))

	var got string
	_, err := s.requestIDInterceptor(ctx, nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, _ any) (any, error) {
		got = RequestIDFromContext(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "req-42", got)
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{common.ErrorValidation, codes.InvalidArgument},
		{common.ErrDuplicateEmail, codes.AlreadyExists},
		{common.ErrInvalidCredentials, codes.Unauthenticated},
		{common.ErrorUnauthorized, codes.Unauthenticated},
		{common.ErrorNotFound, codes.NotFound},
		{common.ErrStoreUnavailable, codes.Internal},
		{errors.New("db error: connection refused"), codes.Internal},
	}
	for _, tt := range tests {
		st, _ := status.FromError(toStatus(tt.err))
		assert.Equal(t, tt.want, st.Code(), "%v", tt.err)
		if tt.want == codes.Internal {
			assert.Equal(t, "internal error", st.Message(), "internal details must not leak")
		}
	}
}
