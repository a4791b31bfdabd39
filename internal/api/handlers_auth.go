package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleinsights/internal/models"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

type loginPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "error.too_many_attempts")
	}

	var payload loginPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	user, err := handler.authService.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.recordFailure(limiterKey, now)
			return apiError(c, fiber.StatusUnauthorized, "error.invalid_credentials")
		}
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}
	handler.loginLimiter.reset(limiterKey)

	token, expiresAt, err := handler.setAuthCookie(c, &user, now)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}
	return c.JSON(fiber.Map{
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, user *models.User, now time.Time) (string, time.Time, error) {
	token, err := services.BuildSessionToken(handler.secretKey, user, services.DefaultSessionTTL, now)
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := now.Add(services.DefaultSessionTTL)
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  expiresAt,
	})
	return token, expiresAt, nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
