package models

import (
	"time"

	"github.com/keshevplus/leadhub/internal/shared/constants"
)

// IdentityModel is the persistence model for the users table.
// Email and phone are unique when present; NULLs never collide.
type IdentityModel struct {
	ID            uint    `gorm:"primarykey"`
	Name          string  `gorm:"not null;size:255"`
	Email         *string `gorm:"uniqueIndex:idx_users_email;size:255"`
	Phone         *string `gorm:"uniqueIndex:idx_users_phone;size:32"`
	Username      string  `gorm:"not null;size:255"`
	Role          string  `gorm:"not null;default:contact;size:20;index"`
	PasswordHash  *string `gorm:"size:255"`
	LoggedIn      bool    `gorm:"not null;default:false"`
	DuplicateOfID *uint   `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (IdentityModel) TableName() string {
	return constants.TableUsers
}
