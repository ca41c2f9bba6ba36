package models

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string      `gorm:"type:text;not null" json:"name"`
	Email     string      `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Traits    TraitScores `gorm:"embedded" json:"personality_traits"`
	CreatedAt time.Time   `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time   `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}
