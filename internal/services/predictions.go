package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

const (
	LutealPhaseDays      = 14
	fertileWindowPadding = 2
)

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
)

var (
	ErrCycleLengthOutOfRange    = errors.New("cycle length out of range")
	ErrPeriodLengthOutOfRange   = errors.New("period length out of range")
	ErrPeriodLengthIncompatible = errors.New("period length exceeds cycle length")
	ErrLastPeriodStartMissing   = errors.New("last period start is not set")
)

type Predictions struct {
	NextPeriodStart time.Time    `json:"next_period_start"`
	Ovulation       time.Time    `json:"ovulation"`
	FertileWindow   [2]time.Time `json:"fertile_window"`
	DaysUntilPeriod int          `json:"days_until_period"`
}

func IsValidCycleLength(value int) bool {
	return value >= models.MinCycleLength && value <= models.MaxCycleLength
}

func IsValidPeriodLength(value int) bool {
	return value >= models.MinPeriodLength && value <= models.MaxPeriodLength
}

// ValidateCycleConfig rejects configurations the predictor is undefined for.
func ValidateCycleConfig(config models.CycleConfig) error {
	if !IsValidCycleLength(config.AverageLength) {
		return fmt.Errorf("%w: %d", ErrCycleLengthOutOfRange, config.AverageLength)
	}
	if !IsValidPeriodLength(config.PeriodLength) {
		return fmt.Errorf("%w: %d", ErrPeriodLengthOutOfRange, config.PeriodLength)
	}
	if config.PeriodLength > config.AverageLength {
		return ErrPeriodLengthIncompatible
	}
	if config.LastPeriodStart.IsZero() {
		return ErrLastPeriodStartMissing
	}
	return nil
}

// PredictNextCycle projects the next period start from the configured model,
// advancing whole cycles until it is not before today. Ovulation sits a fixed
// luteal phase before that start regardless of cycle length.
func PredictNextCycle(config models.CycleConfig, today time.Time) (Predictions, error) {
	if err := ValidateCycleConfig(config); err != nil {
		return Predictions{}, err
	}

	lastStart := DateOnly(config.LastPeriodStart)
	today = DateOnly(today)

	nextStart := AddDays(lastStart, config.AverageLength)
	if nextStart.Before(today) {
		elapsed := DaysBetween(lastStart, today)
		cyclesPassed := (elapsed + config.AverageLength - 1) / config.AverageLength
		nextStart = AddDays(lastStart, cyclesPassed*config.AverageLength)
	}

	ovulation := AddDays(nextStart, -LutealPhaseDays)
	daysUntil := DaysBetween(today, nextStart)
	if daysUntil < 0 {
		daysUntil = 0
	}

	return Predictions{
		NextPeriodStart: nextStart,
		Ovulation:       ovulation,
		FertileWindow: [2]time.Time{
			AddDays(ovulation, -fertileWindowPadding),
			AddDays(ovulation, fertileWindowPadding),
		},
		DaysUntilPeriod: daysUntil,
	}, nil
}

// CurrentCycleDay projects today onto the periodic model and names its phase.
// Days before the configured start count as cycle day 1.
func CurrentCycleDay(config models.CycleConfig, today time.Time) (int, string, error) {
	if err := ValidateCycleConfig(config); err != nil {
		return 0, "", err
	}

	elapsed := DaysBetween(config.LastPeriodStart, today)
	if elapsed < 0 {
		elapsed = 0
	}
	cycleDay := elapsed%config.AverageLength + 1
	return cycleDay, phaseForCycleDay(cycleDay, config), nil
}

func phaseForCycleDay(cycleDay int, config models.CycleConfig) string {
	ovulationDay := config.AverageLength - LutealPhaseDays
	switch {
	case cycleDay <= config.PeriodLength:
		return PhaseMenstrual
	case cycleDay == ovulationDay:
		return PhaseOvulation
	case cycleDay > ovulationDay:
		return PhaseLuteal
	default:
		return PhaseFollicular
	}
}
