package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PartnerModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Street      string    `gorm:"type:varchar(255)"`
	Street2     string    `gorm:"type:varchar(255)"`
	City        string    `gorm:"type:varchar(128)"`
	Zip         string    `gorm:"type:varchar(16)"`
	StateName   string    `gorm:"type:varchar(128)"`
	CountryCode string    `gorm:"type:char(2)"`
	Phone       string    `gorm:"type:varchar(32)"`
	Mobile      string    `gorm:"type:varchar(32)"`
	Email       string    `gorm:"type:varchar(255)"`
	CompanyID   uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (PartnerModel) TableName() string {
	return "partners"
}

type SaleOrderModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name          string     `gorm:"type:varchar(64);not null"`
	PartnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	SalespersonID *uuid.UUID `gorm:"type:uuid"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;index"`
	CreatedAt     time.Time  `gorm:"not null"`
}

func (SaleOrderModel) TableName() string {
	return "sale_orders"
}

// PickingModel stores outbound delivery orders
type PickingModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name               string          `gorm:"type:varchar(64);not null;index"`
	State              string          `gorm:"type:varchar(20);not null;default:'draft'"`
	PartnerID          uuid.UUID       `gorm:"type:uuid;not null"`
	WarehousePartnerID uuid.UUID       `gorm:"type:uuid"`
	SaleID             *uuid.UUID      `gorm:"type:uuid;index"`
	CompanyID          uuid.UUID       `gorm:"type:uuid;index"`
	Origin             string          `gorm:"type:varchar(255)"`
	Note               string          `gorm:"type:text"`
	ShippingWeight     decimal.Decimal `gorm:"type:numeric(10,3);not null;default:0"`
	NumberOfPackages   int             `gorm:"type:integer;not null;default:0"`
	CarrierID          *uuid.UUID      `gorm:"type:uuid"`
	CarrierPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CarrierTrackingRef string          `gorm:"type:varchar(128)"`
	ExpeditionCode     string          `gorm:"type:varchar(128)"`
	AgencyRef          string          `gorm:"type:varchar(64)"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

func (PickingModel) TableName() string {
	return "pickings"
}
