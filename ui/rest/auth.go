package rest

import (
	"github.com/gofiber/fiber/v2"
	domainAuth "github.com/mraff116/vugru-music-mvp/domains/auth"
	"github.com/mraff116/vugru-music-mvp/pkg/utils"
	"github.com/mraff116/vugru-music-mvp/ui/rest/middleware"
)

type Auth struct {
	Service domainAuth.IAuthUsecase
}

func InitRestAuth(app fiber.Router, service domainAuth.IAuthUsecase) Auth {
	rest := Auth{Service: service}
	app.Post("/auth/signup", rest.SignUp)
	app.Post("/auth/signin", rest.SignIn)
	app.Post("/auth/signout", middleware.BearerRequired(service), rest.SignOut)
	app.Get("/auth/user", middleware.BearerOptional(service), rest.CurrentUser)

	return rest
}

func (handler *Auth) SignUp(c *fiber.Ctx) error {
	var request domainAuth.SignupRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	response, err := handler.Service.SignUp(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(response)
}

func (handler *Auth) SignIn(c *fiber.Ctx) error {
	var request domainAuth.SigninRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	response, err := handler.Service.SignIn(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(response)
}

func (handler *Auth) SignOut(c *fiber.Ctx) error {
	success := handler.Service.SignOut(c.UserContext(), middleware.TokenFrom(c))
	return c.JSON(fiber.Map{"success": success})
}

func (handler *Auth) CurrentUser(c *fiber.Ctx) error {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ResponseData{
			Status:  fiber.StatusUnauthorized,
			Code:    "UNAUTHENTICATED",
			Message: "authentication required",
		})
	}
	return c.JSON(user)
}
