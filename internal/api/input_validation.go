package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/services"
)

var errMonthInvalid = errors.New("invalid month")

func parseDayParam(raw string) (time.Time, error) {
	return services.ParseDay(strings.TrimSpace(raw))
}

// parseMonthQuery defaults to the month containing today.
func parseMonthQuery(raw string, today time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.ParseInLocation("2006-01", raw, time.UTC)
	if err != nil {
		return time.Time{}, errMonthInvalid
	}
	return parsed, nil
}
