package shipment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shipping-management/internal/domain/attachment"
	domainShipment "shipping-management/internal/domain/shipment"
)

// Request DTOs
type CreateShipmentRequest struct {
	CarrierID        uuid.UUID       `json:"carrier_id" validate:"required"`
	PickingID        *uuid.UUID      `json:"picking_id" validate:"omitempty"`
	TrackingRef      string          `json:"tracking_ref" validate:"omitempty,max=64"`
	NumberOfPackages int             `json:"number_of_packages" validate:"omitempty,min=1,max=999"`
	ShippingWeight   decimal.Decimal `json:"shipping_weight"`
	ShippingCost     decimal.Decimal `json:"shipping_cost"`
}

type ActionRequest struct {
	Action      domainShipment.Action `json:"action" validate:"required"`
	ShipmentIDs []uuid.UUID           `json:"shipment_ids" validate:"required,min=1,dive,required"`
}

type ShipmentFilterRequest struct {
	State       *domainShipment.State `form:"state"`
	CarrierID   *uuid.UUID            `form:"carrier_id"`
	CarrierKind string                `form:"carrier_kind"`
	PickingID   *uuid.UUID            `form:"picking_id"`
	PartnerID   *uuid.UUID            `form:"partner_id"`
	CompanyID   *uuid.UUID            `form:"company_id"`
	IsReturn    *bool                 `form:"is_return"`

	// Date range filters
	ShipDateFrom *time.Time `form:"ship_date_from" time_format:"2006-01-02"`
	ShipDateTo   *time.Time `form:"ship_date_to" time_format:"2006-01-02"`

	// Search
	Search string `form:"search"`

	// Pagination
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at ship_date sla_deadline name"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// Response DTOs
type ShipmentResponse struct {
	ID        uuid.UUID            `json:"id"`
	Name      string               `json:"name"`
	State     domainShipment.State `json:"state"`
	CompanyID uuid.UUID            `json:"company_id"`
	PickingID *uuid.UUID           `json:"picking_id,omitempty"`
	PartnerID *uuid.UUID           `json:"partner_id,omitempty"`
	Origin    string               `json:"origin,omitempty"`

	// Carrier
	CarrierID      uuid.UUID `json:"carrier_id"`
	CarrierKind    string    `json:"carrier_kind"`
	TrackingRef    string    `json:"tracking_ref,omitempty"`
	TrackingURL    string    `json:"tracking_url,omitempty"`
	ExpeditionCode string    `json:"expedition_code,omitempty"`

	// Tracking
	LastTrackingUpdate  *time.Time `json:"last_tracking_update,omitempty"`
	TrackingStatus      string     `json:"tracking_status,omitempty"`
	TrackingHistoryHTML string     `json:"tracking_history_html,omitempty"`

	// Package
	ShippingWeight   decimal.Decimal `json:"shipping_weight"`
	NumberOfPackages int             `json:"number_of_packages"`
	ShippingCost     decimal.Decimal `json:"shipping_cost"`

	// SLA
	ShipDate     *time.Time               `json:"ship_date,omitempty"`
	DeliveryDate *time.Time               `json:"delivery_date,omitempty"`
	SLADays      int                      `json:"sla_days"`
	SLADeadline  *time.Time               `json:"sla_deadline,omitempty"`
	SLAStatus    domainShipment.SLAStatus `json:"sla_status"`
	DaysOverdue  int                      `json:"days_overdue,omitempty"`

	// Returns
	IsReturn           bool       `json:"is_return"`
	ReturnShipmentID   *uuid.UUID `json:"return_shipment_id,omitempty"`
	OriginalShipmentID *uuid.UUID `json:"original_shipment_id,omitempty"`

	AllowedActions []domainShipment.Action `json:"allowed_actions"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

type ShipmentListResponse struct {
	Shipments  []ShipmentResponse `json:"shipments"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

type ActionResponse struct {
	Changed []ShipmentResponse `json:"changed"`
	Skipped []uuid.UUID        `json:"skipped"`
}

type LabelResponse struct {
	ID           uuid.UUID                `json:"id"`
	Name         string                   `json:"name"`
	Kind         domainShipment.LabelKind `json:"kind"`
	AttachmentID uuid.UUID                `json:"attachment_id"`
	DownloadURL  string                   `json:"download_url"`
	CreatedAt    time.Time                `json:"created_at"`
}

type TrackingResponse struct {
	ShipmentID         uuid.UUID            `json:"shipment_id"`
	State              domainShipment.State `json:"state"`
	TrackingRef        string               `json:"tracking_ref"`
	TrackingURL        string               `json:"tracking_url,omitempty"`
	Status             string               `json:"status"`
	HistoryHTML        string               `json:"history_html,omitempty"`
	LastTrackingUpdate *time.Time           `json:"last_tracking_update,omitempty"`
}

type ShipmentStatisticsResponse struct {
	TotalShipments int            `json:"total_shipments"`
	ByState        map[string]int `json:"by_state"`
	Active         int            `json:"active"`
	Overdue        int            `json:"overdue"`
}

// Conversion functions
func ToShipmentResponse(s *domainShipment.Shipment, today time.Time) *ShipmentResponse {
	actions := s.AllowedActions()
	if actions == nil {
		actions = []domainShipment.Action{}
	}
	return &ShipmentResponse{
		ID:                  s.ID,
		Name:                s.Name,
		State:               s.State,
		CompanyID:           s.CompanyID,
		PickingID:           s.PickingID,
		PartnerID:           s.PartnerID,
		Origin:              s.Origin,
		CarrierID:           s.CarrierID,
		CarrierKind:         s.CarrierKind,
		TrackingRef:         s.TrackingRef,
		TrackingURL:         s.TrackingURL,
		ExpeditionCode:      s.ExpeditionCode,
		LastTrackingUpdate:  s.LastTrackingUpdate,
		TrackingStatus:      s.TrackingStatusRaw,
		TrackingHistoryHTML: s.TrackingHistoryHTML,
		ShippingWeight:      s.ShippingWeight,
		NumberOfPackages:    s.NumberOfPackages,
		ShippingCost:        s.ShippingCost,
		ShipDate:            s.ShipDate,
		DeliveryDate:        s.DeliveryDate,
		SLADays:             s.SLADays,
		SLADeadline:         s.SLADeadline,
		SLAStatus:           s.SLAStatus(today),
		DaysOverdue:         s.DaysOverdue(today),
		IsReturn:            s.IsReturn,
		ReturnShipmentID:    s.ReturnShipmentID,
		OriginalShipmentID:  s.OriginalShipmentID,
		AllowedActions:      actions,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func ToShipmentListResponse(items []*domainShipment.Shipment, total int64, page, pageSize int, today time.Time) *ShipmentListResponse {
	resp := &ShipmentListResponse{
		Shipments: make([]ShipmentResponse, len(items)),
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}
	for i, s := range items {
		resp.Shipments[i] = *ToShipmentResponse(s, today)
	}
	if pageSize > 0 {
		resp.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return resp
}

func ToActionResponse(r *ActionResult, today time.Time) *ActionResponse {
	resp := &ActionResponse{
		Changed: make([]ShipmentResponse, len(r.Changed)),
		Skipped: r.Skipped,
	}
	for i, s := range r.Changed {
		resp.Changed[i] = *ToShipmentResponse(s, today)
	}
	if resp.Skipped == nil {
		resp.Skipped = []uuid.UUID{}
	}
	return resp
}

func ToLabelResponse(l *domainShipment.Label) *LabelResponse {
	return &LabelResponse{
		ID:           l.ID,
		Name:         l.Name,
		Kind:         l.Kind,
		AttachmentID: l.AttachmentID,
		DownloadURL:  attachment.DownloadURL(l.AttachmentID),
		CreatedAt:    l.CreatedAt,
	}
}

func ToTrackingResponse(s *domainShipment.Shipment) *TrackingResponse {
	return &TrackingResponse{
		ShipmentID:         s.ID,
		State:              s.State,
		TrackingRef:        s.TrackingRef,
		TrackingURL:        s.TrackingURL,
		Status:             s.TrackingStatusRaw,
		HistoryHTML:        s.TrackingHistoryHTML,
		LastTrackingUpdate: s.LastTrackingUpdate,
	}
}

func ToDomainFilter(req *ShipmentFilterRequest) *domainShipment.Filter {
	if req == nil {
		return &domainShipment.Filter{}
	}
	return &domainShipment.Filter{
		State:        req.State,
		CarrierID:    req.CarrierID,
		CarrierKind:  req.CarrierKind,
		PickingID:    req.PickingID,
		PartnerID:    req.PartnerID,
		CompanyID:    req.CompanyID,
		IsReturn:     req.IsReturn,
		ShipDateFrom: req.ShipDateFrom,
		ShipDateTo:   req.ShipDateTo,
		Search:       req.Search,
		Page:         req.Page,
		PageSize:     req.PageSize,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
	}
}

func ToStatisticsResponse(s *domainShipment.Statistics) *ShipmentStatisticsResponse {
	if s == nil {
		return nil
	}
	return &ShipmentStatisticsResponse{
		TotalShipments: s.TotalShipments,
		ByState:        s.ByState,
		Active:         s.Active,
		Overdue:        s.Overdue,
	}
}
