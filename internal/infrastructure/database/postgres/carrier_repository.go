package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipping-management/internal/domain/carrier"
	"shipping-management/internal/infrastructure/database/postgres/models"
)

type CarrierRepository struct {
	db *DB
}

func NewCarrierRepository(db *DB) *CarrierRepository {
	return &CarrierRepository{db: db}
}

func (r *CarrierRepository) Create(ctx context.Context, c *carrier.Carrier) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt

	if err := r.db.conn(ctx).Create(toCarrierModel(c)).Error; err != nil {
		return fmt.Errorf("failed to create carrier: %w", err)
	}
	return nil
}

func (r *CarrierRepository) GetByID(ctx context.Context, carrierID uuid.UUID) (*carrier.Carrier, error) {
	var dbModel models.CarrierModel
	err := r.db.conn(ctx).Where("id = ?", carrierID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, carrier.ErrCarrierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get carrier: %w", err)
	}
	return toCarrierEntity(&dbModel), nil
}

func (r *CarrierRepository) Update(ctx context.Context, c *carrier.Carrier) error {
	c.UpdatedAt = time.Now()
	dbModel := toCarrierModel(c)

	result := r.db.conn(ctx).Model(dbModel).Select("*").Omit("id", "created_at").Updates(dbModel)
	if result.Error != nil {
		return fmt.Errorf("failed to update carrier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return carrier.ErrCarrierNotFound
	}
	return nil
}

func (r *CarrierRepository) List(ctx context.Context, activeOnly bool) ([]*carrier.Carrier, error) {
	var dbModels []models.CarrierModel
	db := r.db.conn(ctx)
	if activeOnly {
		db = db.Where("active = ?", true)
	}
	if err := db.Order("name").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list carriers: %w", err)
	}

	out := make([]*carrier.Carrier, len(dbModels))
	for i := range dbModels {
		out[i] = toCarrierEntity(&dbModels[i])
	}
	return out, nil
}

func (r *CarrierRepository) CreateCredential(ctx context.Context, cred *carrier.Credential) error {
	if cred.ID == uuid.Nil {
		cred.ID = uuid.New()
	}
	cred.CreatedAt = time.Now()
	cred.UpdatedAt = cred.CreatedAt

	if err := r.db.conn(ctx).Create(toCredentialModel(cred)).Error; err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

func (r *CarrierRepository) GetCredential(ctx context.Context, credentialID uuid.UUID) (*carrier.Credential, error) {
	var dbModel models.CredentialModel
	err := r.db.conn(ctx).Where("id = ?", credentialID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, carrier.ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return toCredentialEntity(&dbModel), nil
}

func (r *CarrierRepository) UpdateCredential(ctx context.Context, cred *carrier.Credential) error {
	cred.UpdatedAt = time.Now()

	result := r.db.conn(ctx).Model(&models.CredentialModel{}).
		Where("id = ?", cred.ID).
		Updates(map[string]interface{}{
			"login":         cred.Login,
			"password":      cred.Password,
			"delivery_kind": string(cred.DeliveryKind),
			"company_id":    cred.CompanyID,
			"updated_at":    cred.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update credential: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return carrier.ErrCredentialNotFound
	}
	return nil
}

func (r *CarrierRepository) ListCredentials(ctx context.Context) ([]*carrier.Credential, error) {
	var dbModels []models.CredentialModel
	if err := r.db.conn(ctx).Order("created_at").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	out := make([]*carrier.Credential, len(dbModels))
	for i := range dbModels {
		out[i] = toCredentialEntity(&dbModels[i])
	}
	return out, nil
}

func toCarrierModel(c *carrier.Carrier) *models.CarrierModel {
	return &models.CarrierModel{
		ID:                c.ID,
		Name:              c.Name,
		Kind:              string(c.Kind),
		Product:           c.Product,
		CompanyID:         c.CompanyID,
		Active:            c.Active,
		SLADeliveryDays:   c.SLADeliveryDays,
		FixedPrice:        c.FixedPrice,
		AgencyCode:        c.AgencyCode,
		CustomerCode:      c.CustomerCode,
		ServiceCode:       c.ServiceCode,
		Payer:             string(c.Payer),
		Packaging:         string(c.Packaging),
		WithReturn:        c.WithReturn,
		MinWeight:         c.MinWeight,
		SendCustomerEmail: c.SendCustomerEmail,
		ValidateAddress:   c.ValidateAddress,
		CredentialID:      c.CredentialID,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func toCarrierEntity(m *models.CarrierModel) *carrier.Carrier {
	return &carrier.Carrier{
		ID:                m.ID,
		Name:              m.Name,
		Kind:              carrier.ProviderKind(m.Kind),
		Product:           m.Product,
		CompanyID:         m.CompanyID,
		Active:            m.Active,
		SLADeliveryDays:   m.SLADeliveryDays,
		FixedPrice:        m.FixedPrice,
		AgencyCode:        m.AgencyCode,
		CustomerCode:      m.CustomerCode,
		ServiceCode:       m.ServiceCode,
		Payer:             carrier.Payer(m.Payer),
		Packaging:         carrier.Packaging(m.Packaging),
		WithReturn:        m.WithReturn,
		MinWeight:         m.MinWeight,
		SendCustomerEmail: m.SendCustomerEmail,
		ValidateAddress:   m.ValidateAddress,
		CredentialID:      m.CredentialID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toCredentialModel(c *carrier.Credential) *models.CredentialModel {
	return &models.CredentialModel{
		ID:           c.ID,
		Login:        c.Login,
		Password:     c.Password,
		DeliveryKind: string(c.DeliveryKind),
		CompanyID:    c.CompanyID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toCredentialEntity(m *models.CredentialModel) *carrier.Credential {
	return &carrier.Credential{
		ID:           m.ID,
		Login:        m.Login,
		Password:     m.Password,
		DeliveryKind: carrier.ProviderKind(m.DeliveryKind),
		CompanyID:    m.CompanyID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
