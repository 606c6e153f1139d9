package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel is the database model for an account. The pending reset
// token lives on the row itself rather than in a side table.
type AccountModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username            string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash        string     `gorm:"type:varchar(255);not null"`
	ResetToken          *string    `gorm:"type:varchar(128);index"`
	ResetTokenExpiresAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt           time.Time  `gorm:"not null"`
}

func (AccountModel) TableName() string {
	return "accounts"
}
