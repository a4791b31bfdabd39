package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

var (
	ErrInvalidMenstruationIntensity = errors.New("invalid menstruation intensity")
	ErrInvalidSymptomIntensity      = errors.New("invalid symptom intensity")
	ErrInvalidSymptomID             = errors.New("invalid symptom id")
	ErrInvalidSleepHours            = errors.New("invalid sleep hours")
	ErrInvalidWaterCount            = errors.New("invalid water count")
)

const maxSymptomIDLength = 64

// DayLogInput is everything a user can record for one day.
type DayLogInput struct {
	Menstruation models.Menstruation `json:"menstruation"`
	Symptoms     map[string]int      `json:"symptoms"`
	Mood         *string             `json:"mood"`
	SleepHours   *float64            `json:"sleep"`
	Water        *int                `json:"water"`
	Sex          models.SexActivity  `json:"sex"`
	Notes        string              `json:"notes"`
}

// NormalizeDayLogInput enforces the data-entry bounds and drops values that only
// make sense alongside an active flag.
func NormalizeDayLogInput(input DayLogInput) (DayLogInput, error) {
	if !input.Menstruation.Active {
		input.Menstruation.Intensity = nil
		input.Menstruation.DischargeColor = nil
	} else if intensity := input.Menstruation.Intensity; intensity != nil &&
		(*intensity < 1 || *intensity > models.MaxMenstruationIntensity) {
		return input, ErrInvalidMenstruationIntensity
	}
	input.Menstruation.DischargeColor = trimOptional(input.Menstruation.DischargeColor)

	symptoms := make(map[string]int, len(input.Symptoms))
	for rawID, intensity := range input.Symptoms {
		symptomID := strings.ToLower(strings.TrimSpace(rawID))
		if symptomID == "" || len(symptomID) > maxSymptomIDLength {
			return input, ErrInvalidSymptomID
		}
		if intensity < 0 || intensity > models.MaxSymptomIntensity {
			return input, ErrInvalidSymptomIntensity
		}
		if intensity == 0 {
			continue
		}
		symptoms[symptomID] = intensity
	}
	input.Symptoms = symptoms

	if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > models.MaxSleepHours) {
		return input, ErrInvalidSleepHours
	}
	if input.Water != nil && (*input.Water < 0 || *input.Water > models.MaxWaterCount) {
		return input, ErrInvalidWaterCount
	}

	input.Mood = trimOptional(input.Mood)
	if !input.Sex.Active {
		input.Sex.Contraception = nil
		input.Sex.Discomfort = nil
	}
	input.Sex.Contraception = trimOptional(input.Sex.Contraception)
	input.Notes = TrimDayNotes(input.Notes)
	return input, nil
}

func TrimDayNotes(value string) string {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) <= models.MaxNotesLength {
		return value
	}
	return string([]rune(value)[:models.MaxNotesLength])
}

func (input DayLogInput) applyTo(entry *models.DayLog) {
	entry.Menstruation = input.Menstruation
	entry.Symptoms = input.Symptoms
	if entry.Symptoms == nil {
		entry.Symptoms = map[string]int{}
	}
	entry.Mood = input.Mood
	entry.SleepHours = input.SleepHours
	entry.Water = input.Water
	entry.Sex = input.Sex
	entry.Notes = input.Notes
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
