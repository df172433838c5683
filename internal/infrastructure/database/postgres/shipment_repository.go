package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipping-management/internal/domain/record"
	"shipping-management/internal/domain/shipment"
	"shipping-management/internal/infrastructure/database/postgres/models"
)

type ShipmentRepository struct {
	db *DB
}

func NewShipmentRepository(db *DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func (r *ShipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	if s.PickingID != nil && s.TrackingRef != "" {
		var count int64
		err := r.db.conn(ctx).Model(&models.ShipmentModel{}).
			Where("picking_id = ? AND tracking_ref = ?", *s.PickingID, s.TrackingRef).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check shipment: %w", err)
		}
		if count > 0 {
			return shipment.ErrShipmentAlreadyExists
		}
	}

	dbModel := toShipmentModel(s)
	if err := r.db.conn(ctx).Create(dbModel).Error; err != nil {
		if isUniqueViolation(err) {
			return shipment.ErrShipmentAlreadyExists
		}
		return fmt.Errorf("failed to create shipment: %w", err)
	}

	return nil
}

func (r *ShipmentRepository) GetByID(ctx context.Context, shipmentID uuid.UUID) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.conn(ctx).Where("id = ?", shipmentID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return toShipmentEntity(&dbModel), nil
}

func (r *ShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	s.UpdatedAt = time.Now()

	result := r.db.conn(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"name":                  s.Name,
			"state":                 string(s.State),
			"picking_id":            s.PickingID,
			"carrier_id":            s.CarrierID,
			"carrier_kind":          s.CarrierKind,
			"partner_id":            s.PartnerID,
			"tracking_ref":          s.TrackingRef,
			"tracking_url":          s.TrackingURL,
			"expedition_code":       s.ExpeditionCode,
			"last_tracking_update":  s.LastTrackingUpdate,
			"tracking_status_raw":   s.TrackingStatusRaw,
			"tracking_history_html": s.TrackingHistoryHTML,
			"origin":                s.Origin,
			"shipping_weight":       s.ShippingWeight,
			"number_of_packages":    s.NumberOfPackages,
			"shipping_cost":         s.ShippingCost,
			"ship_date":             s.ShipDate,
			"delivery_date":         s.DeliveryDate,
			"sla_days":              s.SLADays,
			"sla_deadline":          s.SLADeadline,
			"return_shipment_id":    s.ReturnShipmentID,
			"original_shipment_id":  s.OriginalShipmentID,
			"is_return":             s.IsReturn,
			"updated_at":            s.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

// Delete removes the shipment with its labels and every attachment it owns.
func (r *ShipmentRepository) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	return r.db.WithinTransaction(ctx, func(ctx context.Context) error {
		db := r.db.conn(ctx)
		err := db.Where("id IN (?)",
			db.Model(&models.LabelModel{}).Select("attachment_id").Where("shipment_id = ?", shipmentID),
		).Delete(&models.AttachmentModel{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete label attachments: %w", err)
		}
		if err := db.Where("shipment_id = ?", shipmentID).Delete(&models.LabelModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete labels: %w", err)
		}
		err = db.Where("owner_model = ? AND owner_id = ?", string(record.ModelShipment), shipmentID).
			Delete(&models.AttachmentModel{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete attachments: %w", err)
		}

		result := db.Where("id = ?", shipmentID).Delete(&models.ShipmentModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete shipment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shipment.ErrShipmentNotFound
		}
		return nil
	})
}

var shipmentSortColumns = map[string]string{
	"created_at":   "created_at",
	"name":         "name",
	"ship_date":    "ship_date",
	"state":        "state",
	"sla_deadline": "sla_deadline",
}

func (r *ShipmentRepository) List(ctx context.Context, filter *shipment.Filter) ([]*shipment.Shipment, int64, error) {
	if filter == nil {
		filter = &shipment.Filter{}
	}
	var dbModels []models.ShipmentModel
	var total int64

	db := r.db.conn(ctx).Model(&models.ShipmentModel{})

	if filter.State != nil {
		db = db.Where("state = ?", string(*filter.State))
	}
	if filter.CarrierID != nil {
		db = db.Where("carrier_id = ?", *filter.CarrierID)
	}
	if filter.CarrierKind != "" {
		db = db.Where("carrier_kind = ?", filter.CarrierKind)
	}
	if filter.PickingID != nil {
		db = db.Where("picking_id = ?", *filter.PickingID)
	}
	if filter.PartnerID != nil {
		db = db.Where("partner_id = ?", *filter.PartnerID)
	}
	if filter.CompanyID != nil {
		db = db.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.IsReturn != nil {
		db = db.Where("is_return = ?", *filter.IsReturn)
	}
	if filter.ShipDateFrom != nil {
		db = db.Where("ship_date >= ?", filter.ShipDateFrom)
	}
	if filter.ShipDateTo != nil {
		db = db.Where("ship_date <= ?", filter.ShipDateTo)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		db = db.Where("name ILIKE ? OR tracking_ref ILIKE ? OR origin ILIKE ?", search, search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shipments: %w", err)
	}

	sortBy, ok := shipmentSortColumns[filter.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}
	db = db.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		db = db.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	if err := db.Find(&dbModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list shipments: %w", err)
	}

	return toShipmentEntities(dbModels), total, nil
}

func (r *ShipmentRepository) FindByPickingAndTracking(ctx context.Context, pickingID uuid.UUID, trackingRef string) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.conn(ctx).
		Where("picking_id = ? AND tracking_ref = ?", pickingID, trackingRef).
		Order("created_at").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shipment: %w", err)
	}
	return toShipmentEntity(&dbModel), nil
}

func (r *ShipmentRepository) ListByPicking(ctx context.Context, pickingID uuid.UUID) ([]*shipment.Shipment, error) {
	return r.find(ctx, r.db.conn(ctx).Where("picking_id = ?", pickingID))
}

func (r *ShipmentRepository) ListTrackable(ctx context.Context, states []shipment.State) ([]*shipment.Shipment, error) {
	return r.find(ctx, r.db.conn(ctx).
		Where("state IN ?", stateStrings(states)).
		Where("tracking_ref <> '' AND carrier_id IS NOT NULL"))
}

func (r *ShipmentRepository) ListPastDeadline(ctx context.Context, states []shipment.State, day time.Time) ([]*shipment.Shipment, error) {
	return r.find(ctx, r.db.conn(ctx).
		Where("state IN ?", stateStrings(states)).
		Where("sla_deadline IS NOT NULL AND sla_deadline < ?", day))
}

func (r *ShipmentRepository) find(_ context.Context, db *gorm.DB) ([]*shipment.Shipment, error) {
	var dbModels []models.ShipmentModel
	if err := db.Order("created_at").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	return toShipmentEntities(dbModels), nil
}

// NextName allocates the next number of the prefix/year sequence with a single upsert.
func (r *ShipmentRepository) NextName(ctx context.Context, prefix string, year int) (string, error) {
	key := fmt.Sprintf("%s/%d", prefix, year)
	var n int
	err := r.db.conn(ctx).Raw(`
		INSERT INTO name_sequences (key, value) VALUES (?, 1)
		ON CONFLICT (key) DO UPDATE SET value = name_sequences.value + 1
		RETURNING value
	`, key).Scan(&n).Error
	if err != nil {
		return "", fmt.Errorf("failed to allocate shipment name: %w", err)
	}
	return fmt.Sprintf("%s/%d/%05d", prefix, year, n), nil
}

func (r *ShipmentRepository) CreateLabel(ctx context.Context, label *shipment.Label) error {
	if label.ID == uuid.Nil {
		label.ID = uuid.New()
	}
	if label.CreatedAt.IsZero() {
		label.CreatedAt = time.Now()
	}
	dbModel := &models.LabelModel{
		ID:           label.ID,
		Name:         label.Name,
		ShipmentID:   label.ShipmentID,
		AttachmentID: label.AttachmentID,
		Kind:         string(label.Kind),
		CreatedAt:    label.CreatedAt,
	}
	if err := r.db.conn(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create label: %w", err)
	}
	return nil
}

func (r *ShipmentRepository) GetLabel(ctx context.Context, labelID uuid.UUID) (*shipment.Label, error) {
	var dbModel models.LabelModel
	err := r.db.conn(ctx).Where("id = ?", labelID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrLabelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label: %w", err)
	}
	return toLabelEntity(&dbModel), nil
}

func (r *ShipmentRepository) ListLabels(ctx context.Context, shipmentID uuid.UUID) ([]*shipment.Label, error) {
	var dbModels []models.LabelModel
	err := r.db.conn(ctx).Where("shipment_id = ?", shipmentID).Order("created_at").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	labels := make([]*shipment.Label, len(dbModels))
	for i := range dbModels {
		labels[i] = toLabelEntity(&dbModels[i])
	}
	return labels, nil
}

func stateStrings(states []shipment.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}

func toShipmentModel(s *shipment.Shipment) *models.ShipmentModel {
	return &models.ShipmentModel{
		ID:                  s.ID,
		Name:                s.Name,
		State:               string(s.State),
		CompanyID:           s.CompanyID,
		PickingID:           s.PickingID,
		CarrierID:           s.CarrierID,
		CarrierKind:         s.CarrierKind,
		PartnerID:           s.PartnerID,
		TrackingRef:         s.TrackingRef,
		TrackingURL:         s.TrackingURL,
		ExpeditionCode:      s.ExpeditionCode,
		LastTrackingUpdate:  s.LastTrackingUpdate,
		TrackingStatusRaw:   s.TrackingStatusRaw,
		TrackingHistoryHTML: s.TrackingHistoryHTML,
		Origin:              s.Origin,
		ShippingWeight:      s.ShippingWeight,
		NumberOfPackages:    s.NumberOfPackages,
		ShippingCost:        s.ShippingCost,
		ShipDate:            s.ShipDate,
		DeliveryDate:        s.DeliveryDate,
		SLADays:             s.SLADays,
		SLADeadline:         s.SLADeadline,
		ReturnShipmentID:    s.ReturnShipmentID,
		OriginalShipmentID:  s.OriginalShipmentID,
		IsReturn:            s.IsReturn,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func toShipmentEntity(m *models.ShipmentModel) *shipment.Shipment {
	return &shipment.Shipment{
		ID:                  m.ID,
		Name:                m.Name,
		State:               shipment.State(m.State),
		CompanyID:           m.CompanyID,
		PickingID:           m.PickingID,
		CarrierID:           m.CarrierID,
		CarrierKind:         m.CarrierKind,
		PartnerID:           m.PartnerID,
		TrackingRef:         m.TrackingRef,
		TrackingURL:         m.TrackingURL,
		ExpeditionCode:      m.ExpeditionCode,
		LastTrackingUpdate:  m.LastTrackingUpdate,
		TrackingStatusRaw:   m.TrackingStatusRaw,
		TrackingHistoryHTML: m.TrackingHistoryHTML,
		Origin:              m.Origin,
		ShippingWeight:      m.ShippingWeight,
		NumberOfPackages:    m.NumberOfPackages,
		ShippingCost:        m.ShippingCost,
		ShipDate:            m.ShipDate,
		DeliveryDate:        m.DeliveryDate,
		SLADays:             m.SLADays,
		SLADeadline:         m.SLADeadline,
		ReturnShipmentID:    m.ReturnShipmentID,
		OriginalShipmentID:  m.OriginalShipmentID,
		IsReturn:            m.IsReturn,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toShipmentEntities(dbModels []models.ShipmentModel) []*shipment.Shipment {
	out := make([]*shipment.Shipment, len(dbModels))
	for i := range dbModels {
		out[i] = toShipmentEntity(&dbModels[i])
	}
	return out
}

func toLabelEntity(m *models.LabelModel) *shipment.Label {
	return &shipment.Label{
		ID:           m.ID,
		Name:         m.Name,
		ShipmentID:   m.ShipmentID,
		AttachmentID: m.AttachmentID,
		Kind:         shipment.LabelKind(m.Kind),
		CreatedAt:    m.CreatedAt,
	}
}
