package carrier

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProviderKind selects the adapter that talks to the carrier.
type ProviderKind string

const (
	KindFixed      ProviderKind = "fixed"
	KindBaseOnRule ProviderKind = "base_on_rule"
	KindNacex      ProviderKind = "nacex"
)

func (k ProviderKind) Valid() bool {
	return k == KindFixed || k == KindBaseOnRule || k == KindNacex
}

// IsReal reports whether the kind exchanges with a live carrier API.
func (k ProviderKind) IsReal() bool {
	return k != KindFixed && k != KindBaseOnRule
}

// Payer is who pays the carriage.
type Payer string

const (
	PayerOrigin      Payer = "origin"
	PayerDestination Payer = "destination"
	PayerThird       Payer = "third"
)

// Packaging is the kind of parcel handed to the carrier.
type Packaging string

const (
	PackagingDocuments Packaging = "documents"
	PackagingBag       Packaging = "bag"
	PackagingParcel    Packaging = "parcel"
)

// Carrier is a configured shipping provider.
type Carrier struct {
	ID        uuid.UUID
	Name      string
	Kind      ProviderKind
	Product   string
	CompanyID uuid.UUID
	Active    bool

	// SLADeliveryDays is the promised number of days between ship and delivery; 0 disables SLA.
	SLADeliveryDays int

	// Fixed-price carriers
	FixedPrice decimal.Decimal

	// NACEX
	AgencyCode        string
	CustomerCode      string
	ServiceCode       string
	Payer             Payer
	Packaging         Packaging
	WithReturn        bool
	MinWeight         decimal.Decimal
	SendCustomerEmail bool
	ValidateAddress   bool
	CredentialID      *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credential is the login used to sign carrier API calls.
type Credential struct {
	ID           uuid.UUID
	Login        string
	Password     string
	DeliveryKind ProviderKind
	CompanyID    uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ServiceLabel returns the human label of the carrier's configured service code.
func (c *Carrier) ServiceLabel() string {
	return NacexServiceLabel(c.ServiceCode)
}
