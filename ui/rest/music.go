package rest

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	domainAuth "github.com/mraff116/vugru-music-mvp/domains/auth"
	domainMusic "github.com/mraff116/vugru-music-mvp/domains/music"
	"github.com/mraff116/vugru-music-mvp/pkg/utils"
	"github.com/mraff116/vugru-music-mvp/ui/rest/middleware"
)

const promptHeaderMaxLen = 500

type Music struct {
	Service domainMusic.IMusicUsecase
}

func InitRestMusic(app fiber.Router, service domainMusic.IMusicUsecase, auth domainAuth.IAuthUsecase) Music {
	rest := Music{Service: service}
	app.Post("/generate_music", middleware.BearerRequired(auth), rest.Generate)
	app.Get("/track/:id", rest.Track)
	app.Get("/recent_tracks", rest.RecentTracks)
	app.Get("/credits", middleware.BearerRequired(auth), rest.Credits)

	return rest
}

func (handler *Music) Generate(c *fiber.Ctx) error {
	var request domainMusic.GenerateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	request.ClientKey = utils.ClientKey(c)
	if user, ok := middleware.UserFrom(c); ok {
		request.UserID = user.ID
		request.AccessToken = middleware.TokenFrom(c)
	}

	result, err := handler.Service.Generate(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Set("X-Track-ID", result.TrackID)
	c.Set("X-Prompt", headerSafePrompt(result.Prompt))
	if result.StorageURL != "" {
		c.Set("X-Storage-URL", result.StorageURL)
	}
	return c.Send(result.Audio)
}

func (handler *Music) Track(c *fiber.Ctx) error {
	track, err := handler.Service.CachedTrack(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", track.Filename))
	c.Set("X-Track-ID", track.ID)
	c.Set("X-Prompt", headerSafePrompt(track.Prompt))
	return c.Send(track.Audio)
}

func (handler *Music) RecentTracks(c *fiber.Ctx) error {
	recent := handler.Service.RecentTracks(c.UserContext())

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Recent tracks fetched",
		Results: fiber.Map{"tracks": recent},
	})
}

func (handler *Music) Credits(c *fiber.Ctx) error {
	info, err := handler.Service.Credits(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Credit information fetched",
		Results: info,
	})
}

// headerSafePrompt makes a prompt safe for an HTTP header: newlines stripped,
// length capped.
func headerSafePrompt(prompt string) string {
	prompt = strings.ReplaceAll(prompt, "\n", " ")
	prompt = strings.ReplaceAll(prompt, "\r", " ")
	if runes := []rune(prompt); len(runes) > promptHeaderMaxLen {
		prompt = string(runes[:promptHeaderMaxLen])
	}
	return prompt
}
