package models

import "gorm.io/gorm"

const (
	VisibilityPrivate = "PRIVATE"
	VisibilityTeam    = "TEAM"
)

type Prompt struct {
	gorm.Model

	Title            string  `gorm:"not null"`
	Body             string  `gorm:"not null;type:text"`
	Variables        string  `gorm:"type:text"`
	Notes            string  `gorm:"type:text"`
	ModelHints       string
	Visibility       string  `gorm:"not null;default:'PRIVATE'"`
	IsPubliclyShared bool    `gorm:"not null;default:false"`
	PublicShareID    *string `gorm:"uniqueIndex"`
	UserID           uint    `gorm:"not null;index"`

	// Relationships
	User     User            `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Versions []PromptVersion `gorm:"foreignKey:PromptID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Ratings  []Rating        `gorm:"foreignKey:PromptID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
