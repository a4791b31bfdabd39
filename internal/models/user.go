package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5

	MinCycleLength  = 21
	MaxCycleLength  = 45
	MinPeriodLength = 1
	MaxPeriodLength = 8
)

type User struct {
	ID              uint       `gorm:"primaryKey"`
	Email           string     `gorm:"uniqueIndex;not null"`
	PasswordHash    string     `gorm:"not null"`
	CycleLength     int        `gorm:"not null;default:28"`
	PeriodLength    int        `gorm:"not null;default:5"`
	LastPeriodStart *time.Time `gorm:"type:date"`
	ReminderConsent bool       `gorm:"not null;default:false"`
	CreatedAt       time.Time  `gorm:"not null"`
}

// CycleConfig is the periodic model the predictor projects from.
type CycleConfig struct {
	AverageLength   int       `json:"average_length"`
	PeriodLength    int       `json:"period_length"`
	LastPeriodStart time.Time `json:"last_period_start"`
}

func (user *User) CycleConfig() CycleConfig {
	config := CycleConfig{
		AverageLength: user.CycleLength,
		PeriodLength:  user.PeriodLength,
	}
	if user.LastPeriodStart != nil {
		config.LastPeriodStart = *user.LastPeriodStart
	}
	return config
}
