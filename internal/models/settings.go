package models

import "time"

// Settings is a singleton row (ID = 1), created lazily on first access.
type Settings struct {
	ID                uint `gorm:"primaryKey"`
	AllowRegistration bool `gorm:"not null;default:true"`
	UpdatedAt         time.Time
}

const SettingsID = 1
