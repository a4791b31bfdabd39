package api

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, from, to, status, key := handler.exportUserAndRange(c)
	if status != 0 {
		return apiError(c, status, key)
	}

	var output bytes.Buffer
	if err := handler.exportService.WriteCSV(&output, user, from, to); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}

	setAttachmentHeaders(c, "text/csv", buildExportFilename(handler.localNow(), "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	user, from, to, status, key := handler.exportUserAndRange(c)
	if status != 0 {
		return apiError(c, status, key)
	}

	entries, err := handler.exportService.BuildJSONEntries(user, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}

	now := handler.localNow()
	setAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(now, "json"))
	return c.JSON(fiber.Map{
		"exported_at": now.UTC().Format(time.RFC3339),
		"entries":     entries,
	})
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user, from, to, status, key := handler.exportUserAndRange(c)
	if status != 0 {
		return apiError(c, status, key)
	}

	summary, err := handler.exportService.BuildSummary(user, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}
	return c.JSON(summary)
}

func (handler *Handler) exportUserAndRange(c *fiber.Ctx) (uint, *time.Time, *time.Time, int, string) {
	user, ok := currentUser(c)
	if !ok {
		return 0, nil, nil, fiber.StatusUnauthorized, "error.unauthorized"
	}

	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	if err != nil {
		status, key := serviceErrorKey(err)
		return 0, nil, nil, status, key
	}
	return user.ID, from, to, 0, ""
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("cycleinsights-export-%s.%s", now.Format("2006-01-02"), extension)
}
