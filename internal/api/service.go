package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "farmauth.v1.AuthService"

const (
	AuthService_Register_FullMethodName      = "/" + ServiceName + "/Register"
	AuthService_Login_FullMethodName         = "/" + ServiceName + "/Login"
	AuthService_Me_FullMethodName            = "/" + ServiceName + "/Me"
	AuthService_DeleteAccount_FullMethodName = "/" + ServiceName + "/DeleteAccount"
	AuthService_Ping_FullMethodName          = "/" + ServiceName + "/Ping"
)

// AuthServiceServer is implemented by the server side of AuthService.
type AuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*UserResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	Me(context.Context, *MeRequest) (*UserResponse, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteAccountResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(AuthServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		handler := func(ctx context.Context, req any) (any, error) {
			out, err := call(srv.(AuthServiceServer), ctx, req.(*Req))
			if err != nil {
				return nil, err
			}
			return out, nil
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, handler)
	}
}

var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler:    unaryHandler(AuthService_Register_FullMethodName, AuthServiceServer.Register),
		},
		{
			MethodName: "Login",
			Handler:    unaryHandler(AuthService_Login_FullMethodName, AuthServiceServer.Login),
		},
		{
			MethodName: "Me",
			Handler:    unaryHandler(AuthService_Me_FullMethodName, AuthServiceServer.Me),
		},
		{
			MethodName: "DeleteAccount",
			Handler:    unaryHandler(AuthService_DeleteAccount_FullMethodName, AuthServiceServer.DeleteAccount),
		},
		{
			MethodName: "Ping",
			Handler:    unaryHandler(AuthService_Ping_FullMethodName, AuthServiceServer.Ping),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "farmauth/v1/auth.json",
}
