package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email          string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHashed string     `gorm:"type:varchar(255);not null"`
	FullName       string     `gorm:"type:varchar(255);not null"`
	Role           string     `gorm:"type:varchar(50);not null;default:'operator';index"`
	CompanyID      uuid.UUID  `gorm:"type:uuid;index"`
	PartnerID      *uuid.UUID `gorm:"type:uuid"`
	IsActive       bool       `gorm:"default:true;not null"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
