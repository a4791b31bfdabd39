package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Use(handler.LanguageMiddleware)
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")
	api.Post("/auth/login", handler.Login)
	api.Post("/auth/logout", handler.Logout)

	protected := api.Group("", handler.AuthRequired)
	protected.Get("/days", handler.ListDays)
	protected.Get("/days/:date", handler.GetDay)
	protected.Put("/days/:date", handler.UpsertDay)
	protected.Delete("/days/:date", handler.DeleteDay)

	protected.Get("/settings/cycle", handler.GetCycleSettings)
	protected.Put("/settings/cycle", handler.UpdateCycleSettings)
	protected.Post("/settings/password", handler.ChangePassword)
	protected.Post("/settings/clear-data", handler.ClearData)

	protected.Get("/predictions", handler.Predictions)
	protected.Get("/insights", handler.Insights)
	protected.Get("/calendar", handler.Calendar)

	protected.Get("/export/csv", handler.ExportCSV)
	protected.Get("/export/json", handler.ExportJSON)
	protected.Get("/export/summary", handler.ExportSummary)

	app.Use(handler.NotFound)
}
