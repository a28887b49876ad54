package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientKey identifies the requester for the admission gate. Behind a proxy
// the transport peer is the proxy itself, so the first X-Forwarded-For hop
// wins when present.
func ClientKey(c *fiber.Ctx) string {
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}
