package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

const DayLayout = "2006-01-02"

var ErrInvalidDay = errors.New("invalid calendar day")

// ParseDay parses a strict YYYY-MM-DD string into UTC midnight of that date.
func ParseDay(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := time.ParseInLocation(DayLayout, trimmed, time.UTC)
	if err != nil || len(trimmed) != len(DayLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, raw)
	}
	return parsed, nil
}

func FormatDay(value time.Time) string {
	return value.Format(DayLayout)
}

// DateOnly keeps the calendar date of value (in its own location) as UTC midnight.
func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

func AddDays(value time.Time, days int) time.Time {
	return DateOnly(value).AddDate(0, 0, days)
}

// DaysBetween is the signed number of calendar days from from to to.
func DaysBetween(from time.Time, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}

func sameCalendarDay(a time.Time, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

func DayHasData(entry models.DayLog) bool {
	if entry.Menstruation.Active || entry.Sex.Active {
		return true
	}
	if len(entry.Symptoms) > 0 {
		return true
	}
	if entry.Mood != nil && strings.TrimSpace(*entry.Mood) != "" {
		return true
	}
	return strings.TrimSpace(entry.Notes) != ""
}
