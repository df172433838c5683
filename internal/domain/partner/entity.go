package partner

import (
	"time"

	"github.com/google/uuid"
)

// Partner is an address book entry: a recipient, a warehouse or a company contact.
type Partner struct {
	ID          uuid.UUID
	Name        string
	Street      string
	Street2     string
	City        string
	Zip         string
	StateName   string
	CountryCode string
	Phone       string
	Mobile      string
	Email       string
	CompanyID   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContactPhone returns the phone, falling back to the mobile number.
func (p *Partner) ContactPhone() string {
	if p.Phone != "" {
		return p.Phone
	}
	return p.Mobile
}

// SaleOrder is the commercial document a delivery order originates from.
type SaleOrder struct {
	ID            uuid.UUID
	Name          string
	PartnerID     uuid.UUID
	SalespersonID *uuid.UUID
	CompanyID     uuid.UUID
	CreatedAt     time.Time
}
