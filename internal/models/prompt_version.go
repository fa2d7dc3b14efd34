package models

import "gorm.io/gorm"

// PromptVersion is an append-only snapshot of a prompt's editable content.
// Rows are written on create and on every content-affecting update and are
// never mutated afterwards.
type PromptVersion struct {
	gorm.Model

	PromptID uint   `gorm:"not null;index"`
	Title    string `gorm:"not null"`
	Body     string `gorm:"not null;type:text"`
	Notes    string `gorm:"type:text"`
}
