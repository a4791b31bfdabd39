package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

var (
	ErrSettingsCycleStartDateInvalid = errors.New("settings cycle start date invalid")
)

type CycleSettingsValidationInput struct {
	CycleLength        int
	PeriodLength       int
	LastPeriodStartRaw string
	ReminderConsent    bool
}

// ValidateCycleSettings checks a settings form against the predictor's contract.
// The last period start may not lie in the future or more than a year back.
func (service *SettingsService) ValidateCycleSettings(input CycleSettingsValidationInput, now time.Time) (CycleSettingsUpdate, error) {
	parsedDay, err := ParseDay(strings.TrimSpace(input.LastPeriodStartRaw))
	if err != nil {
		return CycleSettingsUpdate{}, ErrSettingsCycleStartDateInvalid
	}

	minCycleStart, today := SettingsCycleStartDateBounds(now)
	if parsedDay.Before(minCycleStart) || parsedDay.After(today) {
		return CycleSettingsUpdate{}, ErrSettingsCycleStartDateInvalid
	}

	config := models.CycleConfig{
		AverageLength:   input.CycleLength,
		PeriodLength:    input.PeriodLength,
		LastPeriodStart: parsedDay,
	}
	if err := ValidateCycleConfig(config); err != nil {
		return CycleSettingsUpdate{}, err
	}

	return CycleSettingsUpdate{
		CycleLength:     input.CycleLength,
		PeriodLength:    input.PeriodLength,
		LastPeriodStart: parsedDay,
		ReminderConsent: input.ReminderConsent,
	}, nil
}

func SettingsCycleStartDateBounds(now time.Time) (time.Time, time.Time) {
	today := DateOnly(now)
	return today.AddDate(-1, 0, 0), today
}
