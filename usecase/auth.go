package usecase

import (
	"context"
	"errors"
	"net/http"

	domainAuth "github.com/mraff116/vugru-music-mvp/domains/auth"
	"github.com/mraff116/vugru-music-mvp/infrastructure/supabase"
	pkgError "github.com/mraff116/vugru-music-mvp/pkg/error"
	"github.com/mraff116/vugru-music-mvp/validations"
	"github.com/sirupsen/logrus"
)

type authService struct {
	backend *supabase.Client
}

func NewAuthService(backend *supabase.Client) domainAuth.IAuthUsecase {
	return &authService{backend: backend}
}

func (s *authService) SignUp(ctx context.Context, request domainAuth.SignupRequest) (domainAuth.AuthResponse, error) {
	if err := validations.ValidateSignup(ctx, request); err != nil {
		return domainAuth.AuthResponse{}, err
	}
	if !s.backend.IsConfigured() {
		return domainAuth.AuthResponse{}, pkgError.NotConfiguredError("authentication service is not configured")
	}

	result, err := s.backend.SignUp(ctx, request.Email, request.Password, request.FullName)
	if err != nil {
		return domainAuth.AuthResponse{}, mapAuthError(err, "signup failed")
	}

	response := domainAuth.AuthResponse{
		User:         toDomainUser(result),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    result.ExpiresAt,
	}

	// Without a session (confirmation email pending) the client still needs a
	// bearer to exercise the API during development. The placeholder resolves
	// to nothing in production.
	if response.AccessToken == "" {
		response.AccessToken = "temp_token_" + response.User.ID
		logrus.Infof("[AUTH] signup for %s created without session, issuing placeholder token", request.Email)
	}

	return response, nil
}

func (s *authService) SignIn(ctx context.Context, request domainAuth.SigninRequest) (domainAuth.AuthResponse, error) {
	if err := validations.ValidateSignin(ctx, request); err != nil {
		return domainAuth.AuthResponse{}, err
	}
	if !s.backend.IsConfigured() {
		return domainAuth.AuthResponse{}, pkgError.NotConfiguredError("authentication service is not configured")
	}

	result, err := s.backend.SignIn(ctx, request.Email, request.Password)
	if err != nil {
		logrus.WithError(err).Warnf("[AUTH] signin rejected for %s", request.Email)
		return domainAuth.AuthResponse{}, pkgError.UnauthenticatedError("invalid email or password")
	}

	return domainAuth.AuthResponse{
		User:         toDomainUser(result),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    result.ExpiresAt,
	}, nil
}

func (s *authService) SignOut(ctx context.Context, accessToken string) bool {
	if accessToken == "" || !s.backend.IsConfigured() {
		return false
	}
	if err := s.backend.SignOut(ctx, accessToken); err != nil {
		logrus.WithError(err).Warn("[AUTH] signout failed")
		return false
	}
	return true
}

func (s *authService) ResolveRequired(ctx context.Context, accessToken string) (domainAuth.User, error) {
	if accessToken == "" {
		return domainAuth.User{}, pkgError.UnauthenticatedError("authentication required")
	}
	if !s.backend.IsConfigured() {
		return domainAuth.User{}, pkgError.NotConfiguredError("authentication service is not configured")
	}

	result, err := s.backend.GetUser(ctx, accessToken)
	if err != nil {
		return domainAuth.User{}, mapAuthError(err, "invalid or expired token")
	}
	return toDomainUser(result), nil
}

func (s *authService) ResolveOptional(ctx context.Context, accessToken string) (domainAuth.User, bool) {
	if accessToken == "" || !s.backend.IsConfigured() {
		return domainAuth.User{}, false
	}
	result, err := s.backend.GetUser(ctx, accessToken)
	if err != nil {
		return domainAuth.User{}, false
	}
	return toDomainUser(result), true
}

func toDomainUser(result supabase.AuthResult) domainAuth.User {
	return domainAuth.User{
		ID:               result.User.ID,
		Email:            result.User.Email,
		FullName:         result.User.UserMetadata.FullName,
		CreatedAt:        result.User.CreatedAt,
		EmailConfirmedAt: result.User.EmailConfirmedAt,
	}
}

// mapAuthError translates provider failures: 4xx means the credentials or
// token were rejected, anything else is an outage.
func mapAuthError(err error, rejectedMessage string) error {
	var apiErr *supabase.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusUnprocessableEntity, apiErr.Status == http.StatusBadRequest:
			return pkgError.ValidationError(apiErr.Message())
		case apiErr.Status >= 400 && apiErr.Status < 500:
			return pkgError.UnauthenticatedError(rejectedMessage)
		}
	}
	logrus.WithError(err).Error("[AUTH] backend call failed")
	return pkgError.UpstreamError("authentication service is unavailable")
}
