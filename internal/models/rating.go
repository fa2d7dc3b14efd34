package models

import "gorm.io/gorm"

// Rating holds one score per (user, prompt) pair. The composite unique index
// is the source of truth for that invariant; writes go through an atomic
// ON CONFLICT upsert.
type Rating struct {
	gorm.Model

	PromptID uint `gorm:"not null;index:idx_user_prompt_rating,unique,priority:2"`
	UserID   uint `gorm:"not null;index:idx_user_prompt_rating,unique,priority:1"`
	Value    int  `gorm:"not null"`
}
