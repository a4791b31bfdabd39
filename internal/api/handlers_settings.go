package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleinsights/internal/models"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

type cycleSettingsPayload struct {
	CycleLength     int    `json:"cycle_length"`
	PeriodLength    int    `json:"period_length"`
	LastPeriodStart string `json:"last_period_start"`
	ReminderConsent bool   `json:"reminder_consent"`
}

type cycleSettingsResponse struct {
	CycleLength     int     `json:"cycle_length"`
	PeriodLength    int     `json:"period_length"`
	LastPeriodStart *string `json:"last_period_start"`
	ReminderConsent bool    `json:"reminder_consent"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (handler *Handler) GetCycleSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	settings, err := handler.settingsService.LoadSettings(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}
	return c.JSON(buildCycleSettingsResponse(settings))
}

func (handler *Handler) UpdateCycleSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	var payload cycleSettingsPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	update, err := handler.settingsService.ValidateCycleSettings(services.CycleSettingsValidationInput{
		CycleLength:        payload.CycleLength,
		PeriodLength:       payload.PeriodLength,
		LastPeriodStartRaw: payload.LastPeriodStart,
		ReminderConsent:    payload.ReminderConsent,
	}, handler.localNow())
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.settingsService.SaveCycleSettings(user.ID, update); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}

	user.CycleLength = update.CycleLength
	user.PeriodLength = update.PeriodLength
	user.LastPeriodStart = &update.LastPeriodStart
	user.ReminderConsent = update.ReminderConsent
	return c.JSON(buildCycleSettingsResponse(*user))
}

// ChangePassword revokes every earlier session and hands back a fresh token.
func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	var payload changePasswordPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	if err := handler.settingsService.ChangePassword(
		user.ID,
		user.PasswordHash,
		payload.CurrentPassword,
		payload.NewPassword,
		payload.ConfirmPassword,
	); err != nil {
		return respondServiceError(c, err)
	}

	updated, err := handler.authService.FindByID(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}
	token, expiresAt, err := handler.setAuthCookie(c, &updated, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}
	return c.JSON(fiber.Map{
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}

func (handler *Handler) ClearData(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	if err := handler.settingsService.ClearAllData(user.ID, handler.localNow()); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func buildCycleSettingsResponse(user models.User) cycleSettingsResponse {
	response := cycleSettingsResponse{
		CycleLength:     user.CycleLength,
		PeriodLength:    user.PeriodLength,
		ReminderConsent: user.ReminderConsent,
	}
	if user.LastPeriodStart != nil {
		formatted := services.FormatDay(*user.LastPeriodStart)
		response.LastPeriodStart = &formatted
	}
	return response
}
