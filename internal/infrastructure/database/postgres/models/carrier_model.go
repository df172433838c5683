package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CarrierModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Kind            string          `gorm:"type:varchar(20);not null"`
	Product         string          `gorm:"type:varchar(255)"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;index"`
	Active          bool            `gorm:"not null;default:true"`
	SLADeliveryDays int             `gorm:"column:sla_delivery_days;type:integer;not null;default:0"`
	FixedPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	AgencyCode        string          `gorm:"type:varchar(16)"`
	CustomerCode      string          `gorm:"type:varchar(16)"`
	ServiceCode       string          `gorm:"type:varchar(8)"`
	Payer             string          `gorm:"type:varchar(20)"`
	Packaging         string          `gorm:"type:varchar(20)"`
	WithReturn        bool            `gorm:"not null;default:false"`
	MinWeight         decimal.Decimal `gorm:"type:numeric(10,3);not null;default:0"`
	SendCustomerEmail bool            `gorm:"not null;default:false"`
	ValidateAddress   bool            `gorm:"not null;default:false"`
	CredentialID      *uuid.UUID      `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CarrierModel) TableName() string {
	return "carriers"
}

type CredentialModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Login        string    `gorm:"type:varchar(255);not null"`
	Password     string    `gorm:"type:varchar(255);not null"`
	DeliveryKind string    `gorm:"type:varchar(20);not null"`
	CompanyID    uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (CredentialModel) TableName() string {
	return "carrier_credentials"
}
