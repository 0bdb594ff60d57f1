package models

import "github.com/google/uuid"

// Testimonial is an anonymous public submission against a space. UserID is
// the space owner's id (respondents are unauthenticated); it exists so the
// owner's list/like/stats queries can scope by owner directly.
type Testimonial struct {
	Base
	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	SpaceID uuid.UUID `gorm:"type:uuid;index;not null" json:"spaceId"`

	Review string `gorm:"not null" json:"review"`
	Rating int    `gorm:"not null" json:"rating"`

	// Optional respondent details, collected only when the matching space
	// flag is set. Contact fields are stored age-encrypted.
	UserName    string `json:"userName,omitempty"`
	UserEmail   string `json:"userEmail,omitempty"`
	UserAddress string `json:"userAddress,omitempty"`
	UserSocials string `json:"userSocials,omitempty"`

	IsLiked bool `gorm:"default:false;index" json:"isLiked"`

	// Relationships
	Space *Space `gorm:"foreignKey:SpaceID" json:"-"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
