package models

import "gorm.io/gorm"

// Tag names are unique by exact match; no case folding is applied anywhere.
type Tag struct {
	gorm.Model

	Name string `gorm:"uniqueIndex;not null"`
}
