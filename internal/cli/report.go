package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
	"github.com/terraincognita07/cycleinsights/internal/report"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

type ReportUserLookup interface {
	FindByNormalizedEmail(email string) (models.User, bool, error)
}

type ReportInsights interface {
	BuildInsights(user *models.User, cycleCount int) (services.Insights, error)
	BuildOverview(user *models.User, today time.Time) (services.Overview, error)
}

type ReportOptions struct {
	Email    string
	Cycles   int
	Language string
	Width    int
	Now      time.Time
}

// RunReportCommand renders the insights of one owner to out. A missing or
// invalid cycle model only drops the prediction block.
func RunReportCommand(out io.Writer, users ReportUserLookup, insights ReportInsights, translator report.Translator, options ReportOptions) error {
	email := services.NormalizeAuthEmail(options.Email)
	if email == "" {
		return fmt.Errorf("invalid email address %q", options.Email)
	}

	user, found, err := users.FindByNormalizedEmail(email)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if !found {
		return fmt.Errorf("user %s not found", email)
	}

	data, err := insights.BuildInsights(&user, options.Cycles)
	if err != nil {
		return fmt.Errorf("build insights: %w", err)
	}

	reportData := report.Data{
		Insights: data,
		Language: options.Language,
		Width:    options.Width,
	}
	overview, err := insights.BuildOverview(&user, options.Now)
	switch {
	case err == nil:
		reportData.Overview = &overview
	case errors.Is(err, services.ErrLastPeriodStartMissing),
		errors.Is(err, services.ErrCycleLengthOutOfRange),
		errors.Is(err, services.ErrPeriodLengthOutOfRange),
		errors.Is(err, services.ErrPeriodLengthIncompatible):
	default:
		return fmt.Errorf("build overview: %w", err)
	}

	fmt.Fprintln(out, report.Render(translator, reportData))
	return nil
}
