package models

import "gorm.io/gorm"

// User is the primary user model. The core treats Role as an opaque
// capability tag; authorization decisions live in app/policy.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     Role   `gorm:"size:50;default:STUDENT" json:"role"`
}
