package controller

import (
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/users/identity"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /login — tukar Google ID token (dari sesi identity provider) dengan
// JWT lokal. Login pertama membuat baris user role siswa dengan username
// dari bagian lokal email.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_token dibutuhkan")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email, name := claimSet.Email, claimSet.Name

	user, err := ctrl.upsertUser(email, name)
	if err != nil {
		log.Printf("[ERROR] Upsert user login gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan data pengguna")
	}

	token, err := issueAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": token,
		"user":         user,
	})
}

// GET /me — user lokal hasil resolve token aktif
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	user, err := identity.ResolveUser(ctrl.DB, helperAuth.GetUserEmail(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pengguna")
	}
	if user == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
	}
	return helper.JsonOK(c, "Profil pengguna", user)
}

func (ctrl *AuthController) upsertUser(email, name string) (*userModel.UserModel, error) {
	existing, err := identity.ResolveUser(ctrl.DB, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	// Username digenerate dari email
	username := strings.SplitN(email, "@", 2)[0]
	user := userModel.UserModel{
		UserName:     name,
		UserEmail:    email,
		UserUsername: &username,
		UserRole:     userModel.RoleSiswa,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func issueAccessToken(user *userModel.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.UserID,
		"email":   user.UserEmail,
		"role":    user.UserRole,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
