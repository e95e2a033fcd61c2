package auth

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/policy"
)

// Accessor locals hasil AuthMiddleware. Seragam: "user_id", "user_email",
// "userRole".

func GetUserID(c *fiber.Ctx) uint {
	if v, ok := c.Locals("user_id").(uint); ok {
		return v
	}
	return 0
}

func GetUserEmail(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_email").(string); ok {
		return v
	}
	return ""
}

// GetUserRole: RoleNone kalau email token tidak punya baris lokal.
// Caller TIDAK boleh memperlakukan RoleNone sebagai error; access policy
// yang akan menolaknya.
func GetUserRole(c *fiber.Ctx) policy.Role {
	if v, ok := c.Locals("userRole").(string); ok {
		return policy.ParseRole(v)
	}
	return policy.RoleNone
}
