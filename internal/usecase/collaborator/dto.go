package collaborator

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shipping-management/internal/domain/activity"
	"shipping-management/internal/domain/attachment"
	"shipping-management/internal/domain/message"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
)

// Request DTOs
type PartnerRequest struct {
	Name        string    `json:"name" validate:"required,min=2,max=200"`
	Street      string    `json:"street" validate:"omitempty,max=200"`
	Street2     string    `json:"street2" validate:"omitempty,max=200"`
	City        string    `json:"city" validate:"omitempty,max=100"`
	Zip         string    `json:"zip" validate:"omitempty,max=10"`
	StateName   string    `json:"state_name" validate:"omitempty,max=100"`
	CountryCode string    `json:"country_code" validate:"omitempty,len=2"`
	Phone       string    `json:"phone" validate:"omitempty,max=30"`
	Mobile      string    `json:"mobile" validate:"omitempty,max=30"`
	Email       string    `json:"email" validate:"omitempty,email"`
	CompanyID   uuid.UUID `json:"company_id"`
}

type SaleOrderRequest struct {
	Name          string     `json:"name" validate:"required,max=64"`
	PartnerID     uuid.UUID  `json:"partner_id" validate:"required"`
	SalespersonID *uuid.UUID `json:"salesperson_id"`
	CompanyID     uuid.UUID  `json:"company_id"`
}

type PickingRequest struct {
	Name               string          `json:"name" validate:"required,max=64"`
	State              picking.State   `json:"state" validate:"omitempty,oneof=draft waiting assigned done cancel"`
	PartnerID          uuid.UUID       `json:"partner_id" validate:"required"`
	WarehousePartnerID uuid.UUID       `json:"warehouse_partner_id" validate:"required"`
	SaleID             *uuid.UUID      `json:"sale_id"`
	CompanyID          uuid.UUID       `json:"company_id"`
	Origin             string          `json:"origin" validate:"omitempty,max=64"`
	Note               string          `json:"note" validate:"omitempty,max=1000"`
	ShippingWeight     decimal.Decimal `json:"shipping_weight"`
	NumberOfPackages   int             `json:"number_of_packages" validate:"omitempty,min=0,max=999"`
	CarrierID          *uuid.UUID      `json:"carrier_id"`
	AgencyRef          string          `json:"agency_ref" validate:"omitempty,max=32"`
}

type AttachmentRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	MimeType string `json:"mime_type" validate:"required,max=100"`
	Data     []byte `json:"data" validate:"required"`
}

// Response DTOs
type PartnerResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Street      string    `json:"street,omitempty"`
	Street2     string    `json:"street2,omitempty"`
	City        string    `json:"city,omitempty"`
	Zip         string    `json:"zip,omitempty"`
	StateName   string    `json:"state_name,omitempty"`
	CountryCode string    `json:"country_code,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Mobile      string    `json:"mobile,omitempty"`
	Email       string    `json:"email,omitempty"`
	CompanyID   uuid.UUID `json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type SaleOrderResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	PartnerID     uuid.UUID  `json:"partner_id"`
	SalespersonID *uuid.UUID `json:"salesperson_id,omitempty"`
	CompanyID     uuid.UUID  `json:"company_id"`
	CreatedAt     time.Time  `json:"created_at"`
}

type PickingResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	State              picking.State   `json:"state"`
	PartnerID          uuid.UUID       `json:"partner_id"`
	WarehousePartnerID uuid.UUID       `json:"warehouse_partner_id"`
	SaleID             *uuid.UUID      `json:"sale_id,omitempty"`
	CompanyID          uuid.UUID       `json:"company_id"`
	Origin             string          `json:"origin,omitempty"`
	Note               string          `json:"note,omitempty"`
	ShippingWeight     decimal.Decimal `json:"shipping_weight"`
	NumberOfPackages   int             `json:"number_of_packages"`
	CarrierID          *uuid.UUID      `json:"carrier_id,omitempty"`
	CarrierPrice       decimal.Decimal `json:"carrier_price"`
	CarrierTrackingRef string          `json:"carrier_tracking_ref,omitempty"`
	ExpeditionCode     string          `json:"expedition_code,omitempty"`
	AgencyRef          string          `json:"agency_ref,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	MimeType    string    `json:"mime_type"`
	Size        int       `json:"size"`
	DownloadURL string    `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type MessageResponse struct {
	ID        uuid.UUID    `json:"id"`
	Kind      message.Kind `json:"kind"`
	Subject   string       `json:"subject"`
	Body      string       `json:"body"`
	CreatedAt time.Time    `json:"created_at"`
}

type ActivityResponse struct {
	ID       uuid.UUID      `json:"id"`
	Kind     activity.Kind  `json:"kind"`
	Summary  string         `json:"summary"`
	Note     string         `json:"note,omitempty"`
	Deadline time.Time      `json:"deadline"`
	UserID   uuid.UUID      `json:"user_id"`
	Model    string         `json:"model"`
	RecordID uuid.UUID      `json:"record_id"`
	State    activity.State `json:"state"`
	DoneAt   *time.Time     `json:"done_at,omitempty"`
}

// Conversion functions
func ToPartnerResponse(p *partner.Partner) *PartnerResponse {
	return &PartnerResponse{
		ID:          p.ID,
		Name:        p.Name,
		Street:      p.Street,
		Street2:     p.Street2,
		City:        p.City,
		Zip:         p.Zip,
		StateName:   p.StateName,
		CountryCode: p.CountryCode,
		Phone:       p.Phone,
		Mobile:      p.Mobile,
		Email:       p.Email,
		CompanyID:   p.CompanyID,
		CreatedAt:   p.CreatedAt,
	}
}

func ToSaleOrderResponse(o *partner.SaleOrder) *SaleOrderResponse {
	return &SaleOrderResponse{
		ID:            o.ID,
		Name:          o.Name,
		PartnerID:     o.PartnerID,
		SalespersonID: o.SalespersonID,
		CompanyID:     o.CompanyID,
		CreatedAt:     o.CreatedAt,
	}
}

func ToPickingResponse(p *picking.Picking) *PickingResponse {
	return &PickingResponse{
		ID:                 p.ID,
		Name:               p.Name,
		State:              p.State,
		PartnerID:          p.PartnerID,
		WarehousePartnerID: p.WarehousePartnerID,
		SaleID:             p.SaleID,
		CompanyID:          p.CompanyID,
		Origin:             p.Origin,
		Note:               p.Note,
		ShippingWeight:     p.ShippingWeight,
		NumberOfPackages:   p.NumberOfPackages,
		CarrierID:          p.CarrierID,
		CarrierPrice:       p.CarrierPrice,
		CarrierTrackingRef: p.CarrierTrackingRef,
		ExpeditionCode:     p.ExpeditionCode,
		AgencyRef:          p.AgencyRef,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func ToAttachmentResponse(a *attachment.Attachment) *AttachmentResponse {
	return &AttachmentResponse{
		ID:          a.ID,
		Name:        a.Name,
		MimeType:    a.MimeType,
		Size:        len(a.Data),
		DownloadURL: attachment.DownloadURL(a.ID),
		CreatedAt:   a.CreatedAt,
	}
}

func ToMessageResponse(m *message.Message) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		Kind:      m.Kind,
		Subject:   m.Subject,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

func ToActivityResponse(a *activity.Activity) *ActivityResponse {
	return &ActivityResponse{
		ID:       a.ID,
		Kind:     a.Kind,
		Summary:  a.Summary,
		Note:     a.Note,
		Deadline: a.Deadline,
		UserID:   a.UserID,
		Model:    string(a.Target.Model),
		RecordID: a.Target.ID,
		State:    a.State,
		DoneAt:   a.DoneAt,
	}
}

func (r *PartnerRequest) apply(p *partner.Partner) {
	p.Name = r.Name
	p.Street = r.Street
	p.Street2 = r.Street2
	p.City = r.City
	p.Zip = r.Zip
	p.StateName = r.StateName
	p.CountryCode = r.CountryCode
	p.Phone = r.Phone
	p.Mobile = r.Mobile
	p.Email = r.Email
	p.CompanyID = r.CompanyID
}

func (r *PickingRequest) apply(p *picking.Picking) {
	p.Name = r.Name
	if r.State != "" {
		p.State = r.State
	}
	p.PartnerID = r.PartnerID
	p.WarehousePartnerID = r.WarehousePartnerID
	p.SaleID = r.SaleID
	p.CompanyID = r.CompanyID
	p.Origin = r.Origin
	p.Note = r.Note
	p.ShippingWeight = r.ShippingWeight
	p.NumberOfPackages = r.NumberOfPackages
	p.CarrierID = r.CarrierID
	p.AgencyRef = r.AgencyRef
}
