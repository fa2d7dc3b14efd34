package models

import "time"

// PromptTag joins prompts to tags. The pair is the identity; tag-set updates
// replace all rows for a prompt rather than diffing them.
type PromptTag struct {
	ID        uint `gorm:"primaryKey"`
	PromptID  uint `gorm:"not null;index:idx_prompt_tag,unique"`
	TagID     uint `gorm:"not null;index:idx_prompt_tag,unique"`
	CreatedAt time.Time
}
