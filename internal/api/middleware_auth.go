package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleinsights/internal/models"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

// authenticateRequest prefers a bearer token and falls back to the session cookie.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	rawToken := bearerToken(c.Get(fiber.HeaderAuthorization))
	if rawToken == "" {
		rawToken = c.Cookies(authCookieName)
	}

	claims, err := services.ParseSessionToken(handler.secretKey, rawToken, handler.now())
	if err != nil {
		return nil, err
	}

	user, err := handler.authService.ResolveSession(claims)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
