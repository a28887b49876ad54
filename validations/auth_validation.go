package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	domainAuth "github.com/mraff116/vugru-music-mvp/domains/auth"
	pkgError "github.com/mraff116/vugru-music-mvp/pkg/error"
)

func ValidateSignup(ctx context.Context, request domainAuth.SignupRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Email, validation.Required, is.EmailFormat),
		validation.Field(&request.Password, validation.Required, validation.Length(6, 72)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateSignin(ctx context.Context, request domainAuth.SigninRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Email, validation.Required, is.EmailFormat),
		validation.Field(&request.Password, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
