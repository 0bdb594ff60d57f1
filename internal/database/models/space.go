package models

import "github.com/google/uuid"

// Space is a testimonial collection container owned by exactly one user.
// Name is stored lowercase so the public slug (spaces swapped for hyphens)
// round-trips by exact match.
type Space struct {
	Base
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Name        string    `gorm:"index" json:"name"`
	Header      string    `json:"header"`
	Description string    `json:"description"`

	// Which respondent fields the public form collects.
	CollectName    bool `gorm:"default:false" json:"userName"`
	CollectEmail   bool `gorm:"default:false" json:"userEmail"`
	CollectAddress bool `gorm:"default:false" json:"userAddress"`
	CollectSocials bool `gorm:"default:false" json:"userSocials"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID" json:"-"`
	Questions    []Question    `gorm:"foreignKey:SpaceID" json:"-"`
	Testimonials []Testimonial `gorm:"foreignKey:SpaceID" json:"-"`
}

func (Space) TableName() string {
	return "spaces"
}
