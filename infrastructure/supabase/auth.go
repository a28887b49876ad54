package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// authUser mirrors the GoTrue user object, only the fields we read.
type authUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	CreatedAt        time.Time  `json:"created_at"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	UserMetadata     struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

// AuthResult is the raw auth provider outcome. Session fields are zero when
// the project requires email confirmation before issuing tokens.
type AuthResult struct {
	User         authUser
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64
}

type sessionResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    int64     `json:"expires_at"`
	User         *authUser `json:"user"`
}

// SignUp registers a user. Depending on project settings GoTrue answers with
// either a full session or a bare user object (confirmation email pending),
// so both shapes are parsed.
func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (AuthResult, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}
	if fullName != "" {
		payload["data"] = map[string]any{"full_name": fullName}
	}

	var raw json.RawMessage
	err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/auth/v1/signup", "", payload, &raw)
	if err != nil {
		return AuthResult{}, err
	}

	var session sessionResponse
	if err := json.Unmarshal(raw, &session); err == nil && session.User != nil {
		return AuthResult{
			User:         *session.User,
			AccessToken:  session.AccessToken,
			RefreshToken: session.RefreshToken,
			ExpiresAt:    session.ExpiresAt,
		}, nil
	}

	var user authUser
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		return AuthResult{}, errors.New("supabase: unexpected signup response")
	}
	return AuthResult{User: user}, nil
}

// SignIn exchanges credentials for a session via the password grant.
func (c *Client) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}

	var session sessionResponse
	url := c.baseURL + "/auth/v1/token?grant_type=password"
	if err := c.doJSON(ctx, http.MethodPost, url, "", payload, &session); err != nil {
		return AuthResult{}, err
	}
	if session.User == nil {
		return AuthResult{}, errors.New("supabase: signin response missing user")
	}

	return AuthResult{
		User:         *session.User,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// GetUser resolves an access token to its user.
func (c *Client) GetUser(ctx context.Context, accessToken string) (AuthResult, error) {
	var user authUser
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", accessToken, nil, &user); err != nil {
		return AuthResult{}, err
	}
	if user.ID == "" {
		return AuthResult{}, errors.New("supabase: token did not resolve to a user")
	}
	return AuthResult{User: user}, nil
}

// SignOut revokes the session behind the token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.doJSON(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", accessToken, nil, nil)
}
