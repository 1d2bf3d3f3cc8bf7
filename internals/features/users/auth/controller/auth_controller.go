package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"schoolpay_backend/internals/configs"
	"schoolpay_backend/internals/features/users/auth/dto"
	authmodel "schoolpay_backend/internals/features/users/auth/model"
	helper "schoolpay_backend/internals/helpers"
)

const (
	accessTokenTTL  = 60 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthController struct {
	DB *gorm.DB
}

// -----------------------------------------
// Login (POST /api/token)
// -----------------------------------------
func (h *AuthController) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}

	var user authmodel.User
	if err := h.DB.Where("user_username = ?", in.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if !user.CheckPassword(in.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password")
	}

	tokens, err := issueTokenPair(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to sign token")
	}
	return c.Status(fiber.StatusOK).JSON(tokens)
}

// -----------------------------------------
// Refresh (POST /api/token/refresh)
// -----------------------------------------
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(in.Refresh, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTRefreshSecret), nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	rawID, _ := claims["user_id"].(string)
	var user authmodel.User
	if err := h.DB.Where("user_id = ?", rawID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	tokens, err := issueTokenPair(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to sign token")
	}
	return c.Status(fiber.StatusOK).JSON(tokens)
}

// -----------------------------------------
// Logout (POST /api/logout) — blacklists the current access token
// -----------------------------------------
func (h *AuthController) Logout(c *fiber.Ctx) error {
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) <= len(p) {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing token")
	}
	token := auth[len(p):]

	entry := authmodel.TokenBlacklist{
		Token:     token,
		ExpiredAt: time.Now().Add(accessTokenTTL),
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "logged out", nil)
}

// -----------------------------------------
// Me (GET /api/me)
// -----------------------------------------
func (h *AuthController) Me(c *fiber.Ctx) error {
	rawID, _ := c.Locals("user_id").(string)
	var user authmodel.User
	if err := h.DB.Where("user_id = ?", rawID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "user not found")
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(user))
}

func issueTokenPair(user authmodel.User) (dto.TokenResponse, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.UserID.String(),
		"username": user.UserUsername,
		"role":     user.UserRole,
		"iat":      now.Unix(),
		"exp":      now.Add(accessTokenTTL).Unix(),
	})
	accessStr, err := access.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return dto.TokenResponse{}, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.UserID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(refreshTokenTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return dto.TokenResponse{}, err
	}

	return dto.TokenResponse{Access: accessStr, Refresh: refreshStr}, nil
}
