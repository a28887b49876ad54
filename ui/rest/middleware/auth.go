package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	domainAuth "github.com/mraff116/vugru-music-mvp/domains/auth"
	"github.com/mraff116/vugru-music-mvp/pkg/utils"
)

const (
	localsUserKey  = "auth.user"
	localsTokenKey = "auth.token"
)

// BearerRequired resolves the Authorization header to a user and aborts with
// 401 when it cannot.
func BearerRequired(service domainAuth.IAuthUsecase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		user, err := service.ResolveRequired(c.UserContext(), token)
		utils.PanicIfNeeded(err)

		c.Locals(localsUserKey, user)
		c.Locals(localsTokenKey, token)
		return c.Next()
	}
}

// BearerOptional resolves the Authorization header when present. Requests
// without a valid identity continue anonymously.
func BearerOptional(service domainAuth.IAuthUsecase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if user, ok := service.ResolveOptional(c.UserContext(), token); ok {
			c.Locals(localsUserKey, user)
			c.Locals(localsTokenKey, token)
		}
		return c.Next()
	}
}

// UserFrom returns the authenticated user stored by the bearer middleware.
func UserFrom(c *fiber.Ctx) (domainAuth.User, bool) {
	user, ok := c.Locals(localsUserKey).(domainAuth.User)
	return user, ok
}

// TokenFrom returns the raw bearer token stored by the bearer middleware.
func TokenFrom(c *fiber.Ctx) string {
	token, _ := c.Locals(localsTokenKey).(string)
	return token
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
