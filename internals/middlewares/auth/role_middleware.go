package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/policy"
)

// RequireAction: guard route berbasis access policy. Penolakan bersifat
// terminal untuk request tsb (403), tidak pernah downgrade scope diam-diam.
func RequireAction(action policy.Action, customForbiddenMessage ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.GetUserEmail(c) == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing identity")
		}
		role := helperAuth.GetUserRole(c)
		if !policy.CanPerform(role, action) {
			msg := "Forbidden: you are not authorized to access this resource"
			if len(customForbiddenMessage) > 0 && customForbiddenMessage[0] != "" {
				msg = customForbiddenMessage[0]
			}
			return helper.JsonError(c, fiber.StatusForbidden, msg)
		}
		return c.Next()
	}
}

// OnlyRoles: varian ketat untuk route yang memang role-spesifik
// (mis. /guru/stats menolak admin juga).
func OnlyRoles(customMessage string, roles ...policy.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.GetUserEmail(c) == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing identity")
		}
		role := helperAuth.GetUserRole(c)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		if customMessage == "" {
			customMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customMessage)
	}
}
