package services

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

type dayLogRepositoryStub struct {
	entries   map[string]models.DayLog
	nextID    uint
	findErr   error
	createErr error
	saveErr   error
}

func newDayLogRepositoryStub() *dayLogRepositoryStub {
	return &dayLogRepositoryStub{
		entries: make(map[string]models.DayLog),
		nextID:  1,
	}
}

func (stub *dayLogRepositoryStub) sorted(filter func(models.DayLog) bool) []models.DayLog {
	logs := make([]models.DayLog, 0, len(stub.entries))
	for _, entry := range stub.entries {
		if filter(entry) {
			logs = append(logs, entry)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
	return logs
}

func (stub *dayLogRepositoryStub) ListByUser(userID uint) ([]models.DayLog, error) {
	return stub.sorted(func(entry models.DayLog) bool { return entry.UserID == userID }), nil
}

func (stub *dayLogRepositoryStub) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DayLog, error) {
	return stub.sorted(func(entry models.DayLog) bool {
		if entry.UserID != userID {
			return false
		}
		if fromStart != nil && entry.Date.Before(*fromStart) {
			return false
		}
		if toEnd != nil && !entry.Date.Before(*toEnd) {
			return false
		}
		return true
	}), nil
}

func (stub *dayLogRepositoryStub) ListPeriodDays(userID uint) ([]models.DayLog, error) {
	return stub.sorted(func(entry models.DayLog) bool {
		return entry.UserID == userID && entry.Menstruation.Active
	}), nil
}

func (stub *dayLogRepositoryStub) FindByUserAndDay(userID uint, day time.Time) (models.DayLog, bool, error) {
	if stub.findErr != nil {
		return models.DayLog{}, false, stub.findErr
	}
	entry, ok := stub.entries[FormatDay(day)]
	if !ok || entry.UserID != userID {
		return models.DayLog{}, false, nil
	}
	return entry, true, nil
}

func (stub *dayLogRepositoryStub) Create(entry *models.DayLog) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	entry.ID = stub.nextID
	stub.nextID++
	stub.entries[FormatDay(entry.Date)] = *entry
	return nil
}

func (stub *dayLogRepositoryStub) Save(entry *models.DayLog) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.entries[FormatDay(entry.Date)] = *entry
	return nil
}

func (stub *dayLogRepositoryStub) DeleteByUserAndDay(userID uint, day time.Time) error {
	key := FormatDay(day)
	if entry, ok := stub.entries[key]; ok && entry.UserID == userID {
		delete(stub.entries, key)
	}
	return nil
}

type dayUserRepositoryStub struct {
	updates []map[string]any
}

func (stub *dayUserRepositoryStub) UpdateByID(_ uint, updates map[string]any) error {
	stub.updates = append(stub.updates, updates)
	return nil
}

func (stub *dayUserRepositoryStub) lastPeriodStart() (time.Time, bool) {
	if len(stub.updates) == 0 {
		return time.Time{}, false
	}
	value, ok := stub.updates[len(stub.updates)-1]["last_period_start"].(time.Time)
	return value, ok
}

func bleedingInput() DayLogInput {
	return DayLogInput{Menstruation: models.Menstruation{Active: true}}
}

func TestUpsertDayLogCreatesThenOverwrites(t *testing.T) {
	logs := newDayLogRepositoryStub()
	users := &dayUserRepositoryStub{}
	service := NewDayService(logs, users)
	now := time.Date(2026, time.February, 20, 10, 0, 0, 0, time.UTC)
	day := mustParseDay(t, "2026-02-18")

	mood := "tired"
	created, err := service.UpsertDayLog(1, day, DayLogInput{
		Symptoms: map[string]int{"cramps": 2},
		Mood:     &mood,
	}, now)
	if err != nil {
		t.Fatalf("UpsertDayLog() unexpected error: %v", err)
	}
	if created.ID == 0 || !created.LastModified.Equal(now) {
		t.Fatalf("expected created entry with id and last modified, got %+v", created)
	}

	later := now.Add(time.Hour)
	updated, err := service.UpsertDayLog(1, day, DayLogInput{Notes: "only notes"}, later)
	if err != nil {
		t.Fatalf("UpsertDayLog() unexpected error: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected update to keep id %d, got %d", created.ID, updated.ID)
	}
	if updated.Mood != nil || len(updated.Symptoms) != 0 || updated.Notes != "only notes" {
		t.Fatalf("expected wholesale overwrite, got %+v", updated)
	}
	if !updated.LastModified.Equal(later) {
		t.Fatalf("expected last modified %s, got %s", later, updated.LastModified)
	}
}

func TestUpsertDayLogSyncsLastPeriodStart(t *testing.T) {
	logs := newDayLogRepositoryStub()
	users := &dayUserRepositoryStub{}
	service := NewDayService(logs, users)
	now := time.Date(2026, time.February, 20, 10, 0, 0, 0, time.UTC)

	for _, raw := range []string{"2026-01-20", "2026-01-21", "2026-02-17", "2026-02-18"} {
		if _, err := service.UpsertDayLog(1, mustParseDay(t, raw), bleedingInput(), now); err != nil {
			t.Fatalf("UpsertDayLog(%s) unexpected error: %v", raw, err)
		}
	}

	start, ok := users.lastPeriodStart()
	if !ok || FormatDay(start) != "2026-02-17" {
		t.Fatalf("expected last period start 2026-02-17, got %v (ok=%v)", start, ok)
	}

	if err := service.DeleteDayLog(1, mustParseDay(t, "2026-02-17"), now); err != nil {
		t.Fatalf("DeleteDayLog() unexpected error: %v", err)
	}
	start, _ = users.lastPeriodStart()
	if FormatDay(start) != "2026-02-18" {
		t.Fatalf("expected last period start 2026-02-18 after delete, got %s", FormatDay(start))
	}
}

func TestUpsertDayLogKeepsConfiguredStartWhenBleedingUnchanged(t *testing.T) {
	logs := newDayLogRepositoryStub()
	users := &dayUserRepositoryStub{}
	service := NewDayService(logs, users)
	now := time.Date(2024, time.February, 12, 9, 0, 0, 0, time.UTC)

	for _, raw := range []string{"2023-12-04", "2024-01-01"} {
		if _, err := service.UpsertDayLog(1, mustParseDay(t, raw), bleedingInput(), now); err != nil {
			t.Fatalf("UpsertDayLog(%s) unexpected error: %v", raw, err)
		}
	}
	syncs := len(users.updates)
	if syncs != 2 {
		t.Fatalf("expected a sync per new bleeding day, got %d", syncs)
	}

	// Settings moved the start to 2024-02-10 outside the day service.
	if _, err := service.UpsertDayLog(1, mustParseDay(t, "2024-02-12"), DayLogInput{Symptoms: map[string]int{"headache": 1}}, now); err != nil {
		t.Fatalf("UpsertDayLog() unexpected error: %v", err)
	}
	if _, err := service.UpsertDayLog(1, mustParseDay(t, "2024-01-01"), DayLogInput{
		Menstruation: models.Menstruation{Active: true},
		Notes:        "still bleeding",
	}, now); err != nil {
		t.Fatalf("UpsertDayLog() unexpected error: %v", err)
	}
	if err := service.DeleteDayLog(1, mustParseDay(t, "2024-02-12"), now); err != nil {
		t.Fatalf("DeleteDayLog() unexpected error: %v", err)
	}
	if len(users.updates) != syncs {
		t.Fatalf("expected configured start untouched by non-bleeding writes, got updates %v", users.updates)
	}

	if _, err := service.UpsertDayLog(1, mustParseDay(t, "2024-01-01"), DayLogInput{Notes: "spotting only"}, now); err != nil {
		t.Fatalf("UpsertDayLog() unexpected error: %v", err)
	}
	start, ok := users.lastPeriodStart()
	if len(users.updates) != syncs+1 || !ok || FormatDay(start) != "2023-12-04" {
		t.Fatalf("expected resync to 2023-12-04 when bleeding is cleared, got %v after %d updates", start, len(users.updates))
	}
}

func TestRefreshUserLastPeriodStartIgnoresFutureAndEmpty(t *testing.T) {
	logs := newDayLogRepositoryStub()
	users := &dayUserRepositoryStub{}
	service := NewDayService(logs, users)
	now := time.Date(2026, time.February, 20, 10, 0, 0, 0, time.UTC)

	if err := service.RefreshUserLastPeriodStart(1, now); err != nil {
		t.Fatalf("RefreshUserLastPeriodStart() unexpected error: %v", err)
	}
	if len(users.updates) != 0 {
		t.Fatalf("expected no update without logged bleeding, got %v", users.updates)
	}

	for _, raw := range []string{"2026-02-01", "2026-03-01"} {
		entry := makeLog(raw, true)
		entry.UserID = 1
		logs.entries[raw] = entry
	}
	if err := service.RefreshUserLastPeriodStart(1, now); err != nil {
		t.Fatalf("RefreshUserLastPeriodStart() unexpected error: %v", err)
	}
	start, ok := users.lastPeriodStart()
	if !ok || FormatDay(start) != "2026-02-01" {
		t.Fatalf("expected future start to be skipped, got %v", start)
	}
}

func TestUpsertDayLogRepositoryErrors(t *testing.T) {
	now := time.Now()
	day := mustParseDay(t, "2026-02-18")

	logs := newDayLogRepositoryStub()
	logs.findErr = errors.New("read failed")
	if _, err := NewDayService(logs, &dayUserRepositoryStub{}).UpsertDayLog(1, day, DayLogInput{}, now); !errors.Is(err, ErrDayLogLoadFailed) {
		t.Fatalf("expected ErrDayLogLoadFailed, got %v", err)
	}

	logs = newDayLogRepositoryStub()
	logs.createErr = errors.New("write failed")
	if _, err := NewDayService(logs, &dayUserRepositoryStub{}).UpsertDayLog(1, day, DayLogInput{}, now); !errors.Is(err, ErrDayLogSaveFailed) {
		t.Fatalf("expected ErrDayLogSaveFailed, got %v", err)
	}
}

func TestFetchLogsRangeIsInclusive(t *testing.T) {
	logs := newDayLogRepositoryStub()
	service := NewDayService(logs, &dayUserRepositoryStub{})
	for _, raw := range []string{"2026-02-09", "2026-02-10", "2026-02-15", "2026-02-16"} {
		entry := makeLog(raw, false)
		entry.UserID = 1
		logs.entries[raw] = entry
	}

	result, err := service.FetchLogs(1, mustParseDay(t, "2026-02-10"), mustParseDay(t, "2026-02-15"))
	if err != nil {
		t.Fatalf("FetchLogs() unexpected error: %v", err)
	}
	if len(result) != 2 || FormatDay(result[0].Date) != "2026-02-10" || FormatDay(result[1].Date) != "2026-02-15" {
		t.Fatalf("expected inclusive range of two days, got %d", len(result))
	}

	open, err := service.FetchLogsForOptionalRange(1, nil, nil)
	if err != nil || len(open) != 4 {
		t.Fatalf("expected all four logs for open range, got %d (%v)", len(open), err)
	}

	empty, err := service.FetchLogByDate(1, mustParseDay(t, "2026-01-01"))
	if err != nil || empty.ID != 0 || empty.Symptoms == nil {
		t.Fatalf("expected empty log for unsaved day, got %+v (%v)", empty, err)
	}
}
