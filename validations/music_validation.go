package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	domainMusic "github.com/mraff116/vugru-music-mvp/domains/music"
	pkgError "github.com/mraff116/vugru-music-mvp/pkg/error"
)

func ValidateGenerateMusic(ctx context.Context, request domainMusic.GenerateRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Prompt, validation.Required, validation.Length(1, 1000)),
		validation.Field(&request.Duration,
			validation.Required.Error("duration is required"),
			validation.Min(10).Error("duration must be between 10 and 60 seconds"),
			validation.Max(60).Error("duration must be between 10 and 60 seconds"),
		),
		validation.Field(&request.VocalsMode, validation.In(
			"",
			domainMusic.VocalsModeInstrumental,
			domainMusic.VocalsModeVocals,
		)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
