package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

const (
	MinCycleLength = 15
	MaxCycleLength = 90

	// Only bleeding days this close to the cycle start count towards its period length.
	periodLengthScanDays = 10
)

var ErrDayLogIndexMismatch = errors.New("day log index key does not match entry date")

// DayLogIndex is a snapshot of logged days keyed by YYYY-MM-DD. Each key must be
// the entry's own Date; build it with IndexDayLogs.
type DayLogIndex map[string]models.DayLog

type Cycle struct {
	ID           string          `json:"id"`
	StartDate    time.Time       `json:"start_date"`
	Length       int             `json:"length"`
	PeriodLength int             `json:"period_length"`
	Logs         []models.DayLog `json:"-"`
}

// IndexDayLogs keys logs by calendar date. When two logs share a date the most
// recently modified one wins.
func IndexDayLogs(logs []models.DayLog) DayLogIndex {
	index := make(DayLogIndex, len(logs))
	for _, entry := range logs {
		key := FormatDay(DateOnly(entry.Date))
		existing, exists := index[key]
		if !exists || !entry.LastModified.Before(existing.LastModified) {
			index[key] = entry
		}
	}
	return index
}

func (index DayLogIndex) sortedDays() ([]string, error) {
	days := make([]string, 0, len(index))
	for key, entry := range index {
		if _, err := ParseDay(key); err != nil {
			return nil, err
		}
		if FormatDay(DateOnly(entry.Date)) != key {
			return nil, fmt.Errorf("%w: %s holds %s", ErrDayLogIndexMismatch, key, FormatDay(entry.Date))
		}
		days = append(days, key)
	}
	sort.Strings(days)
	return days, nil
}

func (index DayLogIndex) bleedingOn(day time.Time) bool {
	entry, ok := index[FormatDay(day)]
	return ok && entry.Menstruation.Active
}

// DetectCycleStarts returns the first day of every contiguous bleeding run, ascending.
func DetectCycleStarts(logs DayLogIndex) ([]time.Time, error) {
	days, err := logs.sortedDays()
	if err != nil {
		return nil, err
	}

	starts := make([]time.Time, 0)
	for _, key := range days {
		if !logs[key].Menstruation.Active {
			continue
		}
		day, _ := ParseDay(key)
		if logs.bleedingOn(AddDays(day, -1)) {
			continue
		}
		starts = append(starts, day)
	}
	return starts, nil
}

// DetectCycles segments the log history into cycles anchored at inferred period
// starts. lastPeriodStart is added as an anchor when it is set and not already a
// start. Cycles shorter than MinCycleLength or longer than MaxCycleLength are dropped.
func DetectCycles(logs DayLogIndex, lastPeriodStart time.Time) ([]Cycle, error) {
	starts, err := DetectCycleStarts(logs)
	if err != nil {
		return nil, err
	}

	if !lastPeriodStart.IsZero() {
		anchor := DateOnly(lastPeriodStart)
		if !containsDay(starts, anchor) {
			starts = append(starts, anchor)
			sort.Slice(starts, func(i, j int) bool {
				return starts[i].Before(starts[j])
			})
		}
	}

	cycles := make([]Cycle, 0, len(starts))
	for i := 0; i+1 < len(starts); i++ {
		start := starts[i]
		length := DaysBetween(start, starts[i+1])
		if length < MinCycleLength || length > MaxCycleLength {
			continue
		}

		cycleLogs := make([]models.DayLog, 0)
		periodLength := 0
		for offset := 0; offset < length; offset++ {
			entry, ok := logs[FormatDay(AddDays(start, offset))]
			if !ok {
				continue
			}
			cycleLogs = append(cycleLogs, entry)
			if entry.Menstruation.Active && offset < periodLengthScanDays {
				periodLength++
			}
		}
		if periodLength < 1 {
			periodLength = 1
		}

		cycles = append(cycles, Cycle{
			ID:           FormatDay(start),
			StartDate:    start,
			Length:       length,
			PeriodLength: periodLength,
			Logs:         cycleLogs,
		})
	}

	return cycles, nil
}

func containsDay(days []time.Time, needle time.Time) bool {
	for _, day := range days {
		if sameCalendarDay(day, needle) {
			return true
		}
	}
	return false
}
