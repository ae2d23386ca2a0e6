package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	LoginWithEmployeeCode(ctx context.Context, req LoginEmployeeCodeRequest) (TokenResponse, error)
	OAuthCallbackGoogle(ctx context.Context, email, providerID string) (TokenResponse, error)
	// Logout revokes the presented refresh token.
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	// StreamToken mints a short-lived token the browser can put in a query
	// string when opening an SSE connection.
	StreamToken(ctx context.Context) (StreamTokenResponse, error)
}
