package postgres

import (
	"context"
	"fmt"

	"shipping-management/internal/domain/analytics"
	"shipping-management/internal/infrastructure/database/postgres/models"
)

// AnalyticsRepository reads the shipment_report view.
type AnalyticsRepository struct {
	db *DB
}

func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Rows(ctx context.Context, filter *analytics.Filter) ([]analytics.Row, error) {
	db := r.db.conn(ctx).Model(&models.ReportRowModel{})
	if filter != nil {
		if filter.DateFrom != nil {
			db = db.Where("ship_date >= ?", filter.DateFrom)
		}
		if filter.DateTo != nil {
			db = db.Where("ship_date <= ?", filter.DateTo)
		}
		if filter.CarrierID != nil {
			db = db.Where("carrier_id = ?", *filter.CarrierID)
		}
		if filter.CompanyID != nil {
			db = db.Where("company_id = ?", *filter.CompanyID)
		}
	}

	var dbRows []models.ReportRowModel
	if err := db.Order("ship_date NULLS LAST, shipment_name").Find(&dbRows).Error; err != nil {
		return nil, fmt.Errorf("failed to read shipment report: %w", err)
	}

	rows := make([]analytics.Row, len(dbRows))
	for i, m := range dbRows {
		rows[i] = analytics.Row{
			ShipmentID:   m.ShipmentID,
			ShipmentName: m.ShipmentName,
			PickingID:    m.PickingID,
			SaleID:       m.SaleID,
			CarrierID:    m.CarrierID,
			CarrierKind:  m.CarrierKind,
			PartnerID:    m.PartnerID,
			State:        m.State,
			CompanyID:    m.CompanyID,
			CountryCode:  m.CountryCode,
			Region:       m.Region,
			City:         m.City,
			Zip:          m.Zip,
			ShipDate:     m.ShipDate,
			ShipDay:      m.ShipDay,
			ShippingCost: m.ShippingCost,
			Packages:     m.Packages,
			Weight:       m.Weight,
			DeliveryDays: m.DeliveryDays,
			SLADays:      m.SLADays,
			Count:        m.Count,
			IsIncident:   m.IsIncident,
			IsDelivered:  m.IsDelivered,
			IsReturn:     m.IsReturn,
			IsOnTime:     m.IsOnTime,
			IsOverdue:    m.IsOverdue,
		}
	}
	return rows, nil
}
