package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// User is an account that can sign in. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string         `gorm:"size:100;not null" json:"name"`
	Email             string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Photo             string         `gorm:"size:255;default:'default.jpg'" json:"photo"`
	Password          string         `gorm:"not null" json:"-"`
	Role              string         `gorm:"size:20;not null;default:'user'" json:"role"`
	PasswordChangedAt *time.Time     `json:"-"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// ChangedPasswordAfter reports whether a token issued at issuedAt predates
// the last password change. A token issued in the same millisecond as the
// change counts as older.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return !u.PasswordChangedAt.Before(issuedAt)
}

// HasRole reports whether the user's role is one of roles.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// WithoutPassword is the default projection for user reads.
func WithoutPassword(db *gorm.DB) *gorm.DB {
	return db.Omit("password")
}
