package db

import "gorm.io/gorm"

type Repositories struct {
	Users   *UserRepository
	DayLogs *DayLogRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(database),
		DayLogs: NewDayLogRepository(database),
	}
}
