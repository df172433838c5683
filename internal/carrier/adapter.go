//go:generate mockgen -destination=mock/adapter.go -package=mock shipping-management/internal/carrier Adapter

// Package carrier defines the interface every shipping provider integration implements
// and the registry resolving a carrier kind to its adapter.
package carrier

import (
	"context"

	"github.com/shopspring/decimal"

	domainCarrier "shipping-management/internal/domain/carrier"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/shipment"
)

// Account is a carrier with the credential used to sign its calls. Credential may be nil
// for carriers that do not talk to an API.
type Account struct {
	Carrier    *domainCarrier.Carrier
	Credential *domainCarrier.Credential
}

// Order carries everything an adapter needs to quote or dispatch a delivery order.
type Order struct {
	Account
	Picking   *picking.Picking
	Recipient *partner.Partner
	Shipper   *partner.Partner
}

// RateResult mirrors the rate contract shared by every carrier kind.
type RateResult struct {
	Success        bool            `json:"success"`
	Price          decimal.Decimal `json:"price"`
	ErrorMessage   string          `json:"error_message,omitempty"`
	WarningMessage string          `json:"warning_message,omitempty"`
}

// LabelPayload is a label document returned by a carrier.
type LabelPayload struct {
	Name string
	Data []byte
	Kind shipment.LabelKind
}

// SendResult is the outcome of creating an expedition.
type SendResult struct {
	ExpeditionCode string
	TrackingRef    string
	Price          decimal.Decimal
	Labels         []LabelPayload
	// Warnings are non-blocking notes to post on the delivery order.
	Warnings []string
}

// TrackingStatus is a parsed status and history fetch.
type TrackingStatus struct {
	Raw   string
	Label string
	// State is the coarse lifecycle state the status maps to; empty leaves the shipment unchanged.
	State       shipment.State
	History     []string
	HistoryHTML string
}

// Text is the combined status and history stored on the shipment.
func (t *TrackingStatus) Text() string {
	out := t.Label
	if t.Raw != "" {
		out += " (" + t.Raw + ")"
	}
	for _, h := range t.History {
		out += "\n" + h
	}
	return out
}

// PickupRequest is passed through to the carrier unchanged.
type PickupRequest struct {
	Fields []Field
}

// Field is an ordered key/value pair.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Adapter is the per-kind carrier integration.
type Adapter interface {
	Kind() domainCarrier.ProviderKind
	Rate(ctx context.Context, order *Order) (*RateResult, error)
	Send(ctx context.Context, order *Order) (*SendResult, error)
	Cancel(ctx context.Context, account Account, expeditionCode string) error
	// ReturnLabel creates the reverse expedition of order, referenced after originalName.
	ReturnLabel(ctx context.Context, order *Order, originalName string) (*SendResult, error)
	RefreshStatus(ctx context.Context, account Account, expeditionCode string) (*TrackingStatus, error)
	ReprintLabel(ctx context.Context, account Account, expeditionCode string) (*LabelPayload, error)
	TrackingURL(account Account, agencyRef, trackingRef string) string
	SchedulePickup(ctx context.Context, account Account, req *PickupRequest) (string, error)
	// Cities lists the carrier-known cities of a postcode.
	Cities(ctx context.Context, account Account, zip string) ([]string, error)
	// TestConnection performs a harmless lookup and returns the raw answer.
	TestConnection(ctx context.Context, account Account, zip string) (string, error)
}
