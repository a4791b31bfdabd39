package services

import (
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

const (
	calendarGridDays = 42

	// Future days further out than this carry no projected markers.
	calendarProjectionHorizonDays = 60
)

type CalendarDayState struct {
	Date              time.Time `json:"-"`
	DateString        string    `json:"date"`
	Day               int       `json:"day"`
	InMonth           bool      `json:"in_month"`
	IsToday           bool      `json:"is_today"`
	CycleDay          int       `json:"cycle_day,omitempty"`
	IsPeriod          bool      `json:"is_period"`
	IsPredictedPeriod bool      `json:"is_predicted_period"`
	IsFertile         bool      `json:"is_fertile"`
	IsOvulation       bool      `json:"is_ovulation"`
	HasData           bool      `json:"has_data"`
}

// BuildCalendarMonth lays out a Monday-first six-week grid around the month that
// contains monthStart and marks logged bleeding alongside the periodic projection.
func BuildCalendarMonth(config models.CycleConfig, logs DayLogIndex, monthStart time.Time, today time.Time) ([]CalendarDayState, error) {
	if err := ValidateCycleConfig(config); err != nil {
		return nil, err
	}

	year, month, _ := monthStart.Date()
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offsetFromMonday := (int(firstOfMonth.Weekday()) + 6) % 7
	gridStart := AddDays(firstOfMonth, -offsetFromMonday)

	today = DateOnly(today)
	lastStart := DateOnly(config.LastPeriodStart)
	ovulationDay := config.AverageLength - LutealPhaseDays

	days := make([]CalendarDayState, 0, calendarGridDays)
	for offset := 0; offset < calendarGridDays; offset++ {
		day := AddDays(gridStart, offset)
		key := FormatDay(day)
		entry, hasEntry := logs[key]

		state := CalendarDayState{
			Date:       day,
			DateString: key,
			Day:        day.Day(),
			InMonth:    day.Month() == month,
			IsToday:    day.Equal(today),
			IsPeriod:   hasEntry && entry.Menstruation.Active,
			HasData:    hasEntry && DayHasData(entry),
		}

		sinceStart := DaysBetween(lastStart, day)
		if sinceStart >= 0 {
			state.CycleDay = sinceStart%config.AverageLength + 1
			if DaysBetween(today, day) <= calendarProjectionHorizonDays {
				state.IsPredictedPeriod = state.CycleDay <= config.PeriodLength
				state.IsOvulation = state.CycleDay == ovulationDay
				state.IsFertile = state.CycleDay >= ovulationDay-fertileWindowPadding &&
					state.CycleDay <= ovulationDay+fertileWindowPadding
			}
		}
		if state.IsPeriod {
			state.IsPredictedPeriod = false
		}

		days = append(days, state)
	}
	return days, nil
}
