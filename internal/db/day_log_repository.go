package db

import (
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
	"gorm.io/gorm"
)

type DayLogRepository struct {
	database *gorm.DB
}

func NewDayLogRepository(database *gorm.DB) *DayLogRepository {
	return &DayLogRepository{database: database}
}

func (repo *DayLogRepository) ListByUser(userID uint) ([]models.DayLog, error) {
	logs := make([]models.DayLog, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListByUserRange treats fromStart as inclusive and toEnd as exclusive.
func (repo *DayLogRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DayLog, error) {
	query := repo.database.Model(&models.DayLog{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	logs := make([]models.DayLog, 0)
	if err := query.Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DayLogRepository) ListPeriodDays(userID uint) ([]models.DayLog, error) {
	logs := make([]models.DayLog, 0)
	if err := repo.database.
		Select("date", "menstruation_active", "last_modified").
		Where("user_id = ? AND menstruation_active = ?", userID, true).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DayLogRepository) FindByUserAndDay(userID uint, day time.Time) (models.DayLog, bool, error) {
	entry := models.DayLog{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, day, day.AddDate(0, 0, 1)).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DayLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DayLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *DayLogRepository) Create(entry *models.DayLog) error {
	return repo.database.Create(entry).Error
}

func (repo *DayLogRepository) Save(entry *models.DayLog) error {
	return repo.database.Save(entry).Error
}

func (repo *DayLogRepository) DeleteByUserAndDay(userID uint, day time.Time) error {
	return repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, day, day.AddDate(0, 0, 1)).
		Delete(&models.DayLog{}).Error
}
