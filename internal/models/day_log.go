package models

import "time"

const (
	MaxMenstruationIntensity = 4
	MaxSymptomIntensity      = 3
	MaxSleepHours            = 24
	MaxWaterCount            = 20
	MaxNotesLength           = 500
)

type Menstruation struct {
	Active         bool    `json:"active" gorm:"not null;default:false"`
	Intensity      *int    `json:"intensity,omitempty"`
	DischargeColor *string `json:"discharge_color,omitempty"`
}

type SexActivity struct {
	Active        bool    `json:"active" gorm:"not null;default:false"`
	Contraception *string `json:"contraception,omitempty"`
	Discomfort    *bool   `json:"discomfort,omitempty"`
}

// DayLog is one saved day. Optional measurements are nil when the user did not
// record them, so a logged zero stays distinguishable from a missing value.
type DayLog struct {
	ID           uint           `json:"-" gorm:"primaryKey"`
	UserID       uint           `json:"-" gorm:"not null;uniqueIndex:uidx_day_logs_user_date"`
	Date         time.Time      `json:"date" gorm:"type:date;not null;uniqueIndex:uidx_day_logs_user_date"`
	Menstruation Menstruation   `json:"menstruation" gorm:"embedded;embeddedPrefix:menstruation_"`
	Symptoms     map[string]int `json:"symptoms" gorm:"serializer:json"`
	Mood         *string        `json:"mood,omitempty"`
	SleepHours   *float64       `json:"sleep,omitempty"`
	Water        *int           `json:"water,omitempty"`
	Sex          SexActivity    `json:"sex" gorm:"embedded;embeddedPrefix:sex_"`
	Notes        string         `json:"notes,omitempty"`
	LastModified time.Time      `json:"last_modified" gorm:"not null"`
}

func (DayLog) TableName() string {
	return "day_logs"
}
