package models

import "github.com/google/uuid"

// Question is a prompt shown on a space's public submission form. UserID
// denormalizes the space owner so mutations can scope by owner in one query.
type Question struct {
	Base
	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	SpaceID uuid.UUID `gorm:"type:uuid;index;not null" json:"spaceId"`
	Message string    `gorm:"not null" json:"message"`

	// Relationships
	Space *Space `gorm:"foreignKey:SpaceID" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}
