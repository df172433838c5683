package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipping-management/internal/domain/partner"
	"shipping-management/internal/infrastructure/database/postgres/models"
)

type PartnerRepository struct {
	db *DB
}

func NewPartnerRepository(db *DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) Create(ctx context.Context, p *partner.Partner) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	if err := r.db.conn(ctx).Create(toPartnerModel(p)).Error; err != nil {
		return fmt.Errorf("failed to create partner: %w", err)
	}
	return nil
}

func (r *PartnerRepository) GetByID(ctx context.Context, partnerID uuid.UUID) (*partner.Partner, error) {
	var dbModel models.PartnerModel
	err := r.db.conn(ctx).Where("id = ?", partnerID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, partner.ErrPartnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}
	return toPartnerEntity(&dbModel), nil
}

func (r *PartnerRepository) Update(ctx context.Context, p *partner.Partner) error {
	p.UpdatedAt = time.Now()
	dbModel := toPartnerModel(p)

	result := r.db.conn(ctx).Model(dbModel).Select("*").Omit("id", "created_at").Updates(dbModel)
	if result.Error != nil {
		return fmt.Errorf("failed to update partner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return partner.ErrPartnerNotFound
	}
	return nil
}

func (r *PartnerRepository) List(ctx context.Context) ([]*partner.Partner, error) {
	var dbModels []models.PartnerModel
	if err := r.db.conn(ctx).Order("name").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}

	out := make([]*partner.Partner, len(dbModels))
	for i := range dbModels {
		out[i] = toPartnerEntity(&dbModels[i])
	}
	return out, nil
}

func (r *PartnerRepository) CreateSaleOrder(ctx context.Context, o *partner.SaleOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()

	dbModel := &models.SaleOrderModel{
		ID:            o.ID,
		Name:          o.Name,
		PartnerID:     o.PartnerID,
		SalespersonID: o.SalespersonID,
		CompanyID:     o.CompanyID,
		CreatedAt:     o.CreatedAt,
	}
	if err := r.db.conn(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create sale order: %w", err)
	}
	return nil
}

func (r *PartnerRepository) GetSaleOrder(ctx context.Context, orderID uuid.UUID) (*partner.SaleOrder, error) {
	var m models.SaleOrderModel
	err := r.db.conn(ctx).Where("id = ?", orderID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, partner.ErrSaleOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sale order: %w", err)
	}
	return &partner.SaleOrder{
		ID:            m.ID,
		Name:          m.Name,
		PartnerID:     m.PartnerID,
		SalespersonID: m.SalespersonID,
		CompanyID:     m.CompanyID,
		CreatedAt:     m.CreatedAt,
	}, nil
}

func toPartnerModel(p *partner.Partner) *models.PartnerModel {
	return &models.PartnerModel{
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
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPartnerEntity(m *models.PartnerModel) *partner.Partner {
	return &partner.Partner{
		ID:          m.ID,
		Name:        m.Name,
		Street:      m.Street,
		Street2:     m.Street2,
		City:        m.City,
		Zip:         m.Zip,
		StateName:   m.StateName,
		CountryCode: m.CountryCode,
		Phone:       m.Phone,
		Mobile:      m.Mobile,
		Email:       m.Email,
		CompanyID:   m.CompanyID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
