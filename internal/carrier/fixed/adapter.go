// Package fixed implements carriers priced from configuration: fixed and base_on_rule.
// They never call a remote API and only support rating and local dispatch.
package fixed

import (
	"context"

	"shipping-management/internal/carrier"
	domainCarrier "shipping-management/internal/domain/carrier"
	appErrors "shipping-management/pkg/errors"
)

type Adapter struct {
	kind domainCarrier.ProviderKind
}

func NewAdapter(kind domainCarrier.ProviderKind) *Adapter {
	return &Adapter{kind: kind}
}

func (a *Adapter) Kind() domainCarrier.ProviderKind {
	return a.kind
}

func (a *Adapter) Rate(_ context.Context, order *carrier.Order) (*carrier.RateResult, error) {
	if order.Carrier == nil {
		return nil, appErrors.NewConfigError("carrier is not set")
	}
	return &carrier.RateResult{Success: true, Price: order.Carrier.FixedPrice}, nil
}

// Send records a local dispatch: no expedition, no tracking reference, the configured price.
func (a *Adapter) Send(_ context.Context, order *carrier.Order) (*carrier.SendResult, error) {
	if order.Carrier == nil {
		return nil, appErrors.NewConfigError("carrier is not set")
	}
	return &carrier.SendResult{Price: order.Carrier.FixedPrice}, nil
}

func (a *Adapter) Cancel(context.Context, carrier.Account, string) error {
	return nil
}

func (a *Adapter) ReturnLabel(_ context.Context, order *carrier.Order, _ string) (*carrier.SendResult, error) {
	return nil, a.unsupported(order.Carrier, "return labels")
}

// RefreshStatus reports no change; these carriers have no tracking feed.
func (a *Adapter) RefreshStatus(context.Context, carrier.Account, string) (*carrier.TrackingStatus, error) {
	return &carrier.TrackingStatus{}, nil
}

func (a *Adapter) ReprintLabel(_ context.Context, account carrier.Account, _ string) (*carrier.LabelPayload, error) {
	return nil, a.unsupported(account.Carrier, "labels")
}

func (a *Adapter) TrackingURL(carrier.Account, string, string) string {
	return ""
}

func (a *Adapter) SchedulePickup(_ context.Context, account carrier.Account, _ *carrier.PickupRequest) (string, error) {
	return "", a.unsupported(account.Carrier, "pickups")
}

func (a *Adapter) Cities(_ context.Context, account carrier.Account, _ string) ([]string, error) {
	return nil, a.unsupported(account.Carrier, "postcode lookups")
}

func (a *Adapter) TestConnection(context.Context, carrier.Account, string) (string, error) {
	return "no remote service for " + string(a.kind) + " carriers", nil
}

func (a *Adapter) unsupported(c *domainCarrier.Carrier, what string) error {
	name := string(a.kind)
	if c != nil {
		name = c.Name
	}
	return appErrors.NewUserError("carrier %s does not support %s", name, what)
}
