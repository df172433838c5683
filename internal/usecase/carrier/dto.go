package carrier

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainCarrier "shipping-management/internal/domain/carrier"
)

// Request DTOs
type CarrierRequest struct {
	Name              string                     `json:"name" validate:"required,min=2,max=100"`
	Kind              domainCarrier.ProviderKind `json:"kind" validate:"required,oneof=fixed base_on_rule nacex"`
	Product           string                     `json:"product" validate:"omitempty,max=100"`
	CompanyID         uuid.UUID                  `json:"company_id"`
	Active            *bool                      `json:"active"`
	SLADeliveryDays   int                        `json:"sla_delivery_days" validate:"min=0,max=365"`
	FixedPrice        decimal.Decimal            `json:"fixed_price"`
	AgencyCode        string                     `json:"agency_code" validate:"omitempty,max=10"`
	CustomerCode      string                     `json:"customer_code" validate:"omitempty,max=20"`
	ServiceCode       string                     `json:"service_code" validate:"omitempty,max=4"`
	Payer             domainCarrier.Payer        `json:"payer" validate:"omitempty,oneof=origin destination third"`
	Packaging         domainCarrier.Packaging    `json:"packaging" validate:"omitempty,oneof=documents bag parcel"`
	WithReturn        bool                       `json:"with_return"`
	MinWeight         decimal.Decimal            `json:"min_weight"`
	SendCustomerEmail bool                       `json:"send_customer_email"`
	ValidateAddress   bool                       `json:"validate_address"`
	CredentialID      *uuid.UUID                 `json:"credential_id"`
}

type CredentialRequest struct {
	Login        string                     `json:"login" validate:"required,max=100"`
	Password     string                     `json:"password" validate:"required,max=100"`
	DeliveryKind domainCarrier.ProviderKind `json:"delivery_kind" validate:"omitempty,oneof=fixed base_on_rule nacex"`
	CompanyID    uuid.UUID                  `json:"company_id"`
}

type LookupRequest struct {
	Zip string `json:"zip" form:"zip" validate:"required,min=4,max=10"`
}

// Response DTOs
type CarrierResponse struct {
	ID                uuid.UUID                  `json:"id"`
	Name              string                     `json:"name"`
	Kind              domainCarrier.ProviderKind `json:"kind"`
	Product           string                     `json:"product,omitempty"`
	CompanyID         uuid.UUID                  `json:"company_id"`
	Active            bool                       `json:"active"`
	SLADeliveryDays   int                        `json:"sla_delivery_days"`
	FixedPrice        decimal.Decimal            `json:"fixed_price"`
	AgencyCode        string                     `json:"agency_code,omitempty"`
	CustomerCode      string                     `json:"customer_code,omitempty"`
	ServiceCode       string                     `json:"service_code,omitempty"`
	ServiceLabel      string                     `json:"service_label,omitempty"`
	Payer             domainCarrier.Payer        `json:"payer,omitempty"`
	Packaging         domainCarrier.Packaging    `json:"packaging,omitempty"`
	WithReturn        bool                       `json:"with_return"`
	MinWeight         decimal.Decimal            `json:"min_weight"`
	SendCustomerEmail bool                       `json:"send_customer_email"`
	ValidateAddress   bool                       `json:"validate_address"`
	CredentialID      *uuid.UUID                 `json:"credential_id,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}

type CredentialResponse struct {
	ID           uuid.UUID                  `json:"id"`
	Login        string                     `json:"login"`
	DeliveryKind domainCarrier.ProviderKind `json:"delivery_kind,omitempty"`
	CompanyID    uuid.UUID                  `json:"company_id"`
	CreatedAt    time.Time                  `json:"created_at"`
}

type LookupResponse struct {
	Zip    string   `json:"zip"`
	Cities []string `json:"cities,omitempty"`
	Answer string   `json:"answer,omitempty"`
}

// Conversion functions
func ToCarrierResponse(c *domainCarrier.Carrier) *CarrierResponse {
	return &CarrierResponse{
		ID:                c.ID,
		Name:              c.Name,
		Kind:              c.Kind,
		Product:           c.Product,
		CompanyID:         c.CompanyID,
		Active:            c.Active,
		SLADeliveryDays:   c.SLADeliveryDays,
		FixedPrice:        c.FixedPrice,
		AgencyCode:        c.AgencyCode,
		CustomerCode:      c.CustomerCode,
		ServiceCode:       c.ServiceCode,
		ServiceLabel:      c.ServiceLabel(),
		Payer:             c.Payer,
		Packaging:         c.Packaging,
		WithReturn:        c.WithReturn,
		MinWeight:         c.MinWeight,
		SendCustomerEmail: c.SendCustomerEmail,
		ValidateAddress:   c.ValidateAddress,
		CredentialID:      c.CredentialID,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func ToCredentialResponse(c *domainCarrier.Credential) *CredentialResponse {
	return &CredentialResponse{
		ID:           c.ID,
		Login:        c.Login,
		DeliveryKind: c.DeliveryKind,
		CompanyID:    c.CompanyID,
		CreatedAt:    c.CreatedAt,
	}
}

func (r *CarrierRequest) apply(c *domainCarrier.Carrier) {
	c.Name = r.Name
	c.Kind = r.Kind
	c.Product = r.Product
	c.CompanyID = r.CompanyID
	if r.Active != nil {
		c.Active = *r.Active
	}
	c.SLADeliveryDays = r.SLADeliveryDays
	c.FixedPrice = r.FixedPrice
	c.AgencyCode = r.AgencyCode
	c.CustomerCode = r.CustomerCode
	c.ServiceCode = r.ServiceCode
	c.Payer = r.Payer
	c.Packaging = r.Packaging
	c.WithReturn = r.WithReturn
	c.MinWeight = r.MinWeight
	c.SendCustomerEmail = r.SendCustomerEmail
	c.ValidateAddress = r.ValidateAddress
	c.CredentialID = r.CredentialID
}
