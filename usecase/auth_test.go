package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraff116/vugru-music-mvp/config"
	domainAuth "github.com/mraff116/vugru-music-mvp/domains/auth"
	"github.com/mraff116/vugru-music-mvp/infrastructure/supabase"
	pkgError "github.com/mraff116/vugru-music-mvp/pkg/error"
)

func TestSignUp_WithSession(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "jwt-token",
			"refresh_token": "refresh",
			"expires_at":    1234567890,
			"user": map[string]any{
				"id":    "user-1",
				"email": "new@example.com",
			},
		})
	}))

	response, err := NewAuthService(backend).SignUp(context.Background(), domainAuth.SignupRequest{
		Email:    "new@example.com",
		Password: "secret123",
		FullName: "New User",
	})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", response.AccessToken)
	assert.Equal(t, "user-1", response.User.ID)
}

func TestSignUp_ConfirmationPendingIssuesPlaceholderToken(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No session: the project requires email confirmation first.
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "user-1",
			"email": "new@example.com",
		})
	}))

	response, err := NewAuthService(backend).SignUp(context.Background(), domainAuth.SignupRequest{
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "temp_token_user-1", response.AccessToken)
}

func TestSignUp_InvalidPayloadNeverReachesBackend(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for invalid payloads")
	}))

	service := NewAuthService(backend)
	for _, request := range []domainAuth.SignupRequest{
		{Email: "", Password: "secret123"},
		{Email: "not-an-email", Password: "secret123"},
		{Email: "a@b.com", Password: "short"},
	} {
		_, err := service.SignUp(context.Background(), request)
		var validationErr pkgError.ValidationError
		require.ErrorAs(t, err, &validationErr)
	}
}

func TestSignIn_BadCredentials(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	}))

	_, err := NewAuthService(backend).SignIn(context.Background(), domainAuth.SigninRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	var authErr pkgError.UnauthenticatedError
	require.ErrorAs(t, err, &authErr)
}

func TestResolveRequired(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":            "user-1",
			"email":         "user@example.com",
			"user_metadata": map[string]any{"full_name": "Test User"},
		})
	}))

	service := NewAuthService(backend)

	user, err := service.ResolveRequired(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Test User", user.FullName)

	_, err = service.ResolveRequired(context.Background(), "bad-token")
	var authErr pkgError.UnauthenticatedError
	require.ErrorAs(t, err, &authErr)

	_, err = service.ResolveRequired(context.Background(), "")
	require.ErrorAs(t, err, &authErr)
}

func TestResolveOptional_NeverFails(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	service := NewAuthService(backend)

	_, ok := service.ResolveOptional(context.Background(), "bad-token")
	assert.False(t, ok)

	_, ok = service.ResolveOptional(context.Background(), "")
	assert.False(t, ok)
}

func TestAuth_UnconfiguredBackend(t *testing.T) {
	service := NewAuthService(supabase.NewClient(config.SupabaseConfig{}))

	_, err := service.SignUp(context.Background(), domainAuth.SignupRequest{
		Email: "a@b.com", Password: "secret123",
	})
	var notConfigured pkgError.NotConfiguredError
	require.ErrorAs(t, err, &notConfigured)

	assert.False(t, service.SignOut(context.Background(), "token"))
}
