package middleware

import (
	"github.com/giglance/giglance_be/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// CookieName is the session cookie shared by the HTTP API and the websocket handshake.
const CookieName = "gl_token"

func JWTFromCookie(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(CookieName)
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
