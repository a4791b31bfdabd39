package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

// apiError responds with {"error": message}, translating key into the request language.
func apiError(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{"error": translateMessage(currentMessages(c), key)})
}

// serviceErrorKey maps service sentinel errors to a status and message key.
// Anything unrecognised is reported as a storage failure.
func serviceErrorKey(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrCycleLengthOutOfRange):
		return fiber.StatusBadRequest, "error.cycle_length_range"
	case errors.Is(err, services.ErrPeriodLengthOutOfRange):
		return fiber.StatusBadRequest, "error.period_length_range"
	case errors.Is(err, services.ErrPeriodLengthIncompatible):
		return fiber.StatusBadRequest, "error.period_length_incompatible"
	case errors.Is(err, services.ErrSettingsCycleStartDateInvalid):
		return fiber.StatusBadRequest, "error.last_period_start_invalid"
	case errors.Is(err, services.ErrLastPeriodStartMissing):
		return fiber.StatusUnprocessableEntity, "error.last_period_start_missing"
	case errors.Is(err, services.ErrInvalidMenstruationIntensity),
		errors.Is(err, services.ErrInvalidSymptomIntensity),
		errors.Is(err, services.ErrInvalidSymptomID),
		errors.Is(err, services.ErrInvalidSleepHours),
		errors.Is(err, services.ErrInvalidWaterCount):
		return fiber.StatusBadRequest, "error.invalid_day_log"
	case errors.Is(err, services.ErrSettingsPasswordChangeInvalidInput):
		return fiber.StatusBadRequest, "error.password_invalid_input"
	case errors.Is(err, services.ErrSettingsPasswordMismatch):
		return fiber.StatusBadRequest, "error.password_mismatch"
	case errors.Is(err, services.ErrSettingsInvalidCurrentPassword):
		return fiber.StatusUnauthorized, "error.password_current_invalid"
	case errors.Is(err, services.ErrSettingsNewPasswordMustDiffer):
		return fiber.StatusBadRequest, "error.password_must_differ"
	case errors.Is(err, services.ErrSettingsWeakPassword):
		return fiber.StatusBadRequest, "error.password_weak"
	case errors.Is(err, services.ErrExportFromDateInvalid),
		errors.Is(err, services.ErrExportToDateInvalid):
		return fiber.StatusBadRequest, "error.invalid_date"
	case errors.Is(err, services.ErrExportRangeInvalid):
		return fiber.StatusBadRequest, "error.invalid_range"
	default:
		return fiber.StatusInternalServerError, "error.storage"
	}
}

func respondServiceError(c *fiber.Ctx, err error) error {
	status, key := serviceErrorKey(err)
	return apiError(c, status, key)
}

func setAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
