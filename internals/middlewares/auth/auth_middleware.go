package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/users/identity"
	helper "sekolahku_backend/internals/helpers"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	// Authorization header atau fallback cookie
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

// AuthMiddleware memverifikasi JWT lalu mengisi locals:
// user_id, user_email, userRole. Role SELALU di-resolve ulang dari tabel
// users (Identity Resolver), bukan dipercaya dari klaim token; email yang
// tidak punya baris lokal jalan terus dengan role kosong dan ditolak oleh
// access policy, bukan oleh middleware ini.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		if configs.JWTSecret == "" {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(configs.JWTSecret), nil
		}); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if exp, ok := claims["exp"].(float64); !ok || time.Now().Unix() > int64(exp) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		email, _ := claims["email"].(string)
		if email == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Missing email claim")
		}

		if id, ok := claims["user_id"].(float64); ok {
			c.Locals("user_id", uint(id))
		}
		c.Locals("user_email", email)

		role, err := identity.ResolveRole(db, email)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal resolve identitas")
		}
		c.Locals("userRole", string(role))

		return c.Next()
	}
}
