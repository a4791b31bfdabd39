package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

var (
	ErrDayLogLoadFailed     = errors.New("load day log failed")
	ErrDayLogSaveFailed     = errors.New("save day log failed")
	ErrDeleteDayFailed      = errors.New("delete day failed")
	ErrSyncLastPeriodFailed = errors.New("sync last period failed")
)

type DayLogRepository interface {
	ListByUser(userID uint) ([]models.DayLog, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DayLog, error)
	ListPeriodDays(userID uint) ([]models.DayLog, error)
	FindByUserAndDay(userID uint, day time.Time) (models.DayLog, bool, error)
	Create(entry *models.DayLog) error
	Save(entry *models.DayLog) error
	DeleteByUserAndDay(userID uint, day time.Time) error
}

type DayUserRepository interface {
	UpdateByID(userID uint, updates map[string]any) error
}

type DayService struct {
	logs  DayLogRepository
	users DayUserRepository
}

func NewDayService(logs DayLogRepository, users DayUserRepository) *DayService {
	return &DayService{
		logs:  logs,
		users: users,
	}
}

func (service *DayService) FetchLogs(userID uint, from time.Time, to time.Time) ([]models.DayLog, error) {
	fromStart := DateOnly(from)
	toEnd := AddDays(to, 1)
	return service.logs.ListByUserRange(userID, &fromStart, &toEnd)
}

func (service *DayService) FetchAllLogsForUser(userID uint) ([]models.DayLog, error) {
	return service.logs.ListByUser(userID)
}

// FetchLogByDate returns an empty log for days that were never saved.
func (service *DayService) FetchLogByDate(userID uint, day time.Time) (models.DayLog, error) {
	entry, found, err := service.logs.FindByUserAndDay(userID, DateOnly(day))
	if err != nil {
		return models.DayLog{}, err
	}
	if !found {
		return models.DayLog{
			UserID:   userID,
			Date:     DateOnly(day),
			Symptoms: map[string]int{},
		}, nil
	}
	return entry, nil
}

// UpsertDayLog replaces the stored day wholesale with input. The owner's last
// period start is resynced only when the write flips the day's bleeding state.
func (service *DayService) UpsertDayLog(userID uint, day time.Time, input DayLogInput, now time.Time) (models.DayLog, error) {
	day = DateOnly(day)
	entry, found, err := service.logs.FindByUserAndDay(userID, day)
	if err != nil {
		return models.DayLog{}, ErrDayLogLoadFailed
	}
	wasBleeding := found && entry.Menstruation.Active

	input.applyTo(&entry)
	entry.UserID = userID
	entry.Date = day
	entry.LastModified = now.UTC()

	if found {
		err = service.logs.Save(&entry)
	} else {
		err = service.logs.Create(&entry)
	}
	if err != nil {
		return models.DayLog{}, ErrDayLogSaveFailed
	}

	if wasBleeding == entry.Menstruation.Active {
		return entry, nil
	}
	if err := service.RefreshUserLastPeriodStart(userID, now); err != nil {
		return models.DayLog{}, ErrSyncLastPeriodFailed
	}
	return entry, nil
}

func (service *DayService) DeleteDayLog(userID uint, day time.Time, now time.Time) error {
	day = DateOnly(day)
	existing, found, err := service.logs.FindByUserAndDay(userID, day)
	if err != nil {
		return ErrDayLogLoadFailed
	}
	if err := service.logs.DeleteByUserAndDay(userID, day); err != nil {
		return ErrDeleteDayFailed
	}
	if !found || !existing.Menstruation.Active {
		return nil
	}
	if err := service.RefreshUserLastPeriodStart(userID, now); err != nil {
		return ErrSyncLastPeriodFailed
	}
	return nil
}

// RefreshUserLastPeriodStart stores the latest detected period start that is not
// in the future. Without any logged bleeding the configured start is left alone.
func (service *DayService) RefreshUserLastPeriodStart(userID uint, now time.Time) error {
	periodLogs, err := service.logs.ListPeriodDays(userID)
	if err != nil {
		return err
	}
	starts, err := DetectCycleStarts(IndexDayLogs(periodLogs))
	if err != nil {
		return err
	}

	today := DateOnly(now)
	for index := len(starts) - 1; index >= 0; index-- {
		if starts[index].After(today) {
			continue
		}
		return service.users.UpdateByID(userID, map[string]any{"last_period_start": starts[index]})
	}
	return nil
}

// FetchLogsForOptionalRange treats a nil bound as open.
func (service *DayService) FetchLogsForOptionalRange(userID uint, from *time.Time, to *time.Time) ([]models.DayLog, error) {
	var fromStart, toEnd *time.Time
	if from != nil {
		value := DateOnly(*from)
		fromStart = &value
	}
	if to != nil {
		value := AddDays(*to, 1)
		toEnd = &value
	}
	return service.logs.ListByUserRange(userID, fromStart, toEnd)
}
