package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/remaep/registry_service/internal/helper"
)

// AuthMiddleware gates the admin surface. Token lookup is cookie first so a
// browser session survives reloads, Authorization header as fallback.
func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		session, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("adminID", session.AdminID)
		ctx.Locals("session", session)
		return ctx.Next()
	}
}
