package auth

import (
	"context"
	"time"
)

// IAuthUsecase resolves bearer credentials against the external auth
// provider. It never stores credentials locally.
type IAuthUsecase interface {
	SignUp(ctx context.Context, request SignupRequest) (AuthResponse, error)
	SignIn(ctx context.Context, request SigninRequest) (AuthResponse, error)
	SignOut(ctx context.Context, accessToken string) bool
	// ResolveRequired fails with an unauthenticated error when the token is
	// missing or does not resolve to a user.
	ResolveRequired(ctx context.Context, accessToken string) (User, error)
	// ResolveOptional never fails the caller: any resolution problem is
	// reported as an absent identity.
	ResolveOptional(ctx context.Context, accessToken string) (User, bool)
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	FullName         string     `json:"full_name,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}
