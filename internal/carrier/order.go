package carrier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domainCarrier "shipping-management/internal/domain/carrier"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	appErrors "shipping-management/pkg/errors"
)

// OrderBuilder resolves the credential and parties of a delivery order for an adapter call.
type OrderBuilder struct {
	carriers domainCarrier.Repository
	partners partner.Repository
}

func NewOrderBuilder(carriers domainCarrier.Repository, partners partner.Repository) *OrderBuilder {
	return &OrderBuilder{carriers: carriers, partners: partners}
}

// Account returns c with its credential. A carrier without credential yields a nil Credential;
// adapters that need one report the config error.
func (b *OrderBuilder) Account(ctx context.Context, c *domainCarrier.Carrier) (Account, error) {
	account := Account{Carrier: c}
	if c.CredentialID == nil {
		return account, nil
	}
	cred, err := b.carriers.GetCredential(ctx, *c.CredentialID)
	if errors.Is(err, domainCarrier.ErrCredentialNotFound) {
		return account, nil
	}
	if err != nil {
		return account, fmt.Errorf("load carrier credential: %w", err)
	}
	account.Credential = cred
	return account, nil
}

// Build assembles the order of p shipped with c: recipient is the picking partner and
// shipper the warehouse partner.
func (b *OrderBuilder) Build(ctx context.Context, c *domainCarrier.Carrier, p *picking.Picking) (*Order, error) {
	account, err := b.Account(ctx, c)
	if err != nil {
		return nil, err
	}
	order := &Order{Account: account, Picking: p}

	if order.Recipient, err = b.partner(ctx, p.PartnerID, "recipient"); err != nil {
		return nil, err
	}
	if order.Shipper, err = b.partner(ctx, p.WarehousePartnerID, "warehouse"); err != nil {
		return nil, err
	}
	return order, nil
}

func (b *OrderBuilder) partner(ctx context.Context, id uuid.UUID, role string) (*partner.Partner, error) {
	if id == uuid.Nil {
		return nil, appErrors.NewConfigError("the delivery order has no %s address", role)
	}
	p, err := b.partners.GetByID(ctx, id)
	if errors.Is(err, partner.ErrPartnerNotFound) {
		return nil, appErrors.NewConfigError("the delivery order has no %s address", role)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", role, err)
	}
	return p, nil
}
