package partner

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, partner *Partner) error
	GetByID(ctx context.Context, partnerID uuid.UUID) (*Partner, error)
	Update(ctx context.Context, partner *Partner) error
	List(ctx context.Context) ([]*Partner, error)

	CreateSaleOrder(ctx context.Context, order *SaleOrder) error
	GetSaleOrder(ctx context.Context, orderID uuid.UUID) (*SaleOrder, error)
}
