package rest

import (
	"github.com/gofiber/fiber/v2"
	domainAuth "github.com/mraff116/vugru-music-mvp/domains/auth"
	domainTrack "github.com/mraff116/vugru-music-mvp/domains/track"
	"github.com/mraff116/vugru-music-mvp/pkg/utils"
	"github.com/mraff116/vugru-music-mvp/ui/rest/middleware"
)

type Track struct {
	Service domainTrack.ITrackUsecase
}

func InitRestTrack(app fiber.Router, service domainTrack.ITrackUsecase, auth domainAuth.IAuthUsecase) Track {
	rest := Track{Service: service}
	app.Get("/user_tracks", middleware.BearerRequired(auth), rest.List)
	app.Delete("/user_tracks/:id", middleware.BearerRequired(auth), rest.Delete)

	return rest
}

func (handler *Track) List(c *fiber.Ctx) error {
	user, _ := middleware.UserFrom(c)

	tracks, err := handler.Service.ListByUser(c.UserContext(), user.ID)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "User tracks fetched",
		Results: fiber.Map{"tracks": tracks},
	})
}

func (handler *Track) Delete(c *fiber.Ctx) error {
	user, _ := middleware.UserFrom(c)

	deleted, err := handler.Service.Delete(c.UserContext(), c.Params("id"), user.ID)
	utils.PanicIfNeeded(err)

	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(utils.ResponseData{
			Status:  fiber.StatusNotFound,
			Code:    "NOT_FOUND_ERROR",
			Message: "track not found",
		})
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Track deleted",
	})
}
