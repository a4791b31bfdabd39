package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

func (handler *Handler) ListDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return respondServiceError(c, err)
	}

	logs, err := handler.dayService.FetchLogsForOptionalRange(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}
	return c.JSON(logs)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_date")
	}

	entry, err := handler.dayService.FetchLogByDate(user.ID, day)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}
	return c.JSON(entry)
}

// UpsertDay overwrites the whole day with the request body.
func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_date")
	}

	var input services.DayLogInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_input")
	}
	input, err = services.NormalizeDayLogInput(input)
	if err != nil {
		return respondServiceError(c, err)
	}

	entry, err := handler.dayService.UpsertDayLog(user.ID, day, input, handler.localNow())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_date")
	}

	if err := handler.dayService.DeleteDayLog(user.ID, day, handler.localNow()); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
