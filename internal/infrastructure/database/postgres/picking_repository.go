package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipping-management/internal/domain/picking"
	"shipping-management/internal/infrastructure/database/postgres/models"
)

type PickingRepository struct {
	db *DB
}

func NewPickingRepository(db *DB) *PickingRepository {
	return &PickingRepository{db: db}
}

func (r *PickingRepository) Create(ctx context.Context, p *picking.Picking) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	if err := r.db.conn(ctx).Create(toPickingModel(p)).Error; err != nil {
		return fmt.Errorf("failed to create picking: %w", err)
	}
	return nil
}

func (r *PickingRepository) GetByID(ctx context.Context, pickingID uuid.UUID) (*picking.Picking, error) {
	var dbModel models.PickingModel
	err := r.db.conn(ctx).Where("id = ?", pickingID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, picking.ErrPickingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get picking: %w", err)
	}
	return toPickingEntity(&dbModel), nil
}

// GetByIDs returns the pickings found, in the order requested. Unknown ids are skipped.
func (r *PickingRepository) GetByIDs(ctx context.Context, pickingIDs []uuid.UUID) ([]*picking.Picking, error) {
	if len(pickingIDs) == 0 {
		return nil, nil
	}
	var dbModels []models.PickingModel
	if err := r.db.conn(ctx).Where("id IN ?", pickingIDs).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get pickings: %w", err)
	}

	byID := make(map[uuid.UUID]*models.PickingModel, len(dbModels))
	for i := range dbModels {
		byID[dbModels[i].ID] = &dbModels[i]
	}
	var out []*picking.Picking
	for _, id := range pickingIDs {
		if m, ok := byID[id]; ok {
			out = append(out, toPickingEntity(m))
		}
	}
	return out, nil
}

func (r *PickingRepository) Update(ctx context.Context, p *picking.Picking) error {
	p.UpdatedAt = time.Now()
	dbModel := toPickingModel(p)

	result := r.db.conn(ctx).Model(dbModel).Select("*").Omit("id", "created_at").Updates(dbModel)
	if result.Error != nil {
		return fmt.Errorf("failed to update picking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return picking.ErrPickingNotFound
	}
	return nil
}

func (r *PickingRepository) List(ctx context.Context) ([]*picking.Picking, error) {
	var dbModels []models.PickingModel
	if err := r.db.conn(ctx).Order("created_at").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list pickings: %w", err)
	}

	out := make([]*picking.Picking, len(dbModels))
	for i := range dbModels {
		out[i] = toPickingEntity(&dbModels[i])
	}
	return out, nil
}

func toPickingModel(p *picking.Picking) *models.PickingModel {
	return &models.PickingModel{
		ID:                 p.ID,
		Name:               p.Name,
		State:              string(p.State),
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

func toPickingEntity(m *models.PickingModel) *picking.Picking {
	return &picking.Picking{
		ID:                 m.ID,
		Name:               m.Name,
		State:              picking.State(m.State),
		PartnerID:          m.PartnerID,
		WarehousePartnerID: m.WarehousePartnerID,
		SaleID:             m.SaleID,
		CompanyID:          m.CompanyID,
		Origin:             m.Origin,
		Note:               m.Note,
		ShippingWeight:     m.ShippingWeight,
		NumberOfPackages:   m.NumberOfPackages,
		CarrierID:          m.CarrierID,
		CarrierPrice:       m.CarrierPrice,
		CarrierTrackingRef: m.CarrierTrackingRef,
		ExpeditionCode:     m.ExpeditionCode,
		AgencyRef:          m.AgencyRef,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
