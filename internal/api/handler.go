package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/db"
	"github.com/terraincognita07/cycleinsights/internal/i18n"
	"github.com/terraincognita07/cycleinsights/internal/services"
	"gorm.io/gorm"
)

const (
	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	loginLimiter *attemptLimiter
	now          func() time.Time

	authService     *services.AuthService
	dayService      *services.DayService
	settingsService *services.SettingsService
	insightsService *services.InsightsService
	exportService   *services.ExportService
	setupService    *services.SetupService
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if secretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.UTC
	}

	repositories := db.NewRepositories(database)
	dayService := services.NewDayService(repositories.DayLogs, repositories.Users)

	return &Handler{
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
		i18n:         i18nManager,
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:          time.Now,

		authService:     services.NewAuthService(repositories.Users),
		dayService:      dayService,
		settingsService: services.NewSettingsService(repositories.Users),
		insightsService: services.NewInsightsService(dayService),
		exportService:   services.NewExportService(dayService),
		setupService:    services.NewSetupService(repositories.Users),
	}, nil
}

func (handler *Handler) localNow() time.Time {
	return handler.now().In(handler.location)
}

// today is the owner's calendar date in the configured timezone.
func (handler *Handler) today() time.Time {
	return services.DateOnly(handler.localNow())
}
