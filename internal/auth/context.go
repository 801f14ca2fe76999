package auth

import (
	"context"
	"crypto/subtle"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// AdminTokenHeader is the metadata key carrying the admin token.
const AdminTokenHeader = "x-admin-token"

type contextKey string

const adminTokenKey contextKey = "admin_token"

// GetAdminToken returns the token set by ContextInterceptor, falling back to
// the incoming metadata.
func GetAdminToken(ctx context.Context) string {
	if val, ok := ctx.Value(adminTokenKey).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(AdminTokenHeader); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

// ContextInterceptor copies the admin token from metadata into the context.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if val := md.Get(AdminTokenHeader); len(val) > 0 {
				ctx = context.WithValue(ctx, adminTokenKey, val[0])
			}
		}
		return handler(ctx, req)
	}
}

// RequireAdmin checks the caller's token against expected. An empty expected
// token disables admin operations entirely.
func RequireAdmin(ctx context.Context, expected string) error {
	if expected == "" {
		return status.Error(codes.PermissionDenied, "admin operations are disabled")
	}
	got := GetAdminToken(ctx)
	if got == "" {
		return status.Error(codes.Unauthenticated, "missing admin token")
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
		return status.Error(codes.PermissionDenied, "invalid admin token")
	}
	return nil
}
