package services

import (
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

type SettingsUserRepository interface {
	UpdateByID(userID uint, updates map[string]any) error
	UpdatePassword(userID uint, passwordHash string) error
	LoadSettingsByID(userID uint) (models.User, error)
	ClearAllDataAndResetSettings(userID uint, lastPeriodStart time.Time) error
}

type CycleSettingsUpdate struct {
	CycleLength     int
	PeriodLength    int
	LastPeriodStart time.Time
	ReminderConsent bool
}

type SettingsService struct {
	users SettingsUserRepository
}

func NewSettingsService(users SettingsUserRepository) *SettingsService {
	return &SettingsService{users: users}
}

func (service *SettingsService) SaveCycleSettings(userID uint, settings CycleSettingsUpdate) error {
	return service.users.UpdateByID(userID, map[string]any{
		"cycle_length":      settings.CycleLength,
		"period_length":     settings.PeriodLength,
		"last_period_start": settings.LastPeriodStart,
		"reminder_consent":  settings.ReminderConsent,
	})
}

func (service *SettingsService) LoadSettings(userID uint) (models.User, error) {
	return service.users.LoadSettingsByID(userID)
}

// ClearAllData drops every logged day and resets the cycle model to the defaults
// anchored at today, the same state a fresh profile starts from.
func (service *SettingsService) ClearAllData(userID uint, now time.Time) error {
	return service.users.ClearAllDataAndResetSettings(userID, DateOnly(now))
}
