package models

import "time"

type User struct {
	Base
	// Username uniqueness is enforced in the service against verified rows
	// only, so an abandoned signup does not squat the name forever.
	Username     string `gorm:"index;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsVerified   bool   `gorm:"default:false" json:"is_verified"`

	// One-time numeric verification code; kept after verification succeeds,
	// so a stale re-verify fails rather than silently succeeding.
	VerifyCode       string    `json:"-"`
	VerifyCodeExpiry time.Time `json:"-"`

	Image string `json:"image,omitempty"`

	// Relationships
	Spaces       []Space       `gorm:"foreignKey:UserID" json:"-"`
	Testimonials []Testimonial `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
