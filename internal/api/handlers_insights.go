package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

type predictionsResponse struct {
	NextPeriodStart string    `json:"next_period_start"`
	Ovulation       string    `json:"ovulation"`
	FertileWindow   [2]string `json:"fertile_window"`
	DaysUntilPeriod int       `json:"days_until_period"`
	CycleDay        int       `json:"cycle_day"`
	Phase           string    `json:"phase"`
	PhaseLabel      string    `json:"phase_label"`
}

func (handler *Handler) Predictions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	overview, err := handler.insightsService.BuildOverview(user, handler.today())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(predictionsResponse{
		NextPeriodStart: services.FormatDay(overview.NextPeriodStart),
		Ovulation:       services.FormatDay(overview.Ovulation),
		FertileWindow: [2]string{
			services.FormatDay(overview.FertileWindow[0]),
			services.FormatDay(overview.FertileWindow[1]),
		},
		DaysUntilPeriod: overview.DaysUntilPeriod,
		CycleDay:        overview.CycleDay,
		Phase:           overview.Phase,
		PhaseLabel:      translateMessage(currentMessages(c), "phase."+overview.Phase),
	})
}

func (handler *Handler) Insights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	cycleCount := services.DefaultInsightsCycleCount
	if raw := c.Query("cycles"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "error.invalid_input")
		}
		cycleCount = services.NormalizeInsightsCycleCount(parsed)
	}

	insights, err := handler.insightsService.BuildInsights(user, cycleCount)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "error.storage")
	}
	return c.JSON(insights)
}

func (handler *Handler) Calendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	today := handler.today()
	month, err := parseMonthQuery(c.Query("month"), today)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_month")
	}

	days, err := handler.insightsService.BuildCalendar(user, month, today)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"month": month.Format("2006-01"),
		"days":  days,
	})
}
