package postgres

import (
	"fmt"

	"go.uber.org/zap"

	"shipping-management/internal/infrastructure/database/postgres/models"
	"shipping-management/internal/logger"
)

// reportView is the denormalised projection read by the analytics endpoint.
// Indicator columns are 0/1 integers so every measure can be summed.
const reportView = `
CREATE OR REPLACE VIEW shipment_report AS
SELECT
	s.id AS shipment_id,
	s.name AS shipment_name,
	s.picking_id,
	p.sale_id,
	s.carrier_id,
	COALESCE(c.kind, s.carrier_kind) AS carrier_kind,
	s.partner_id,
	s.state,
	s.company_id,
	COALESCE(rp.country_code, '') AS country_code,
	COALESCE(rp.state_name, '') AS region,
	COALESCE(rp.city, '') AS city,
	COALESCE(rp.zip, '') AS zip,
	s.ship_date,
	s.ship_date::date AS ship_day,
	s.shipping_cost,
	s.number_of_packages AS packages,
	s.shipping_weight AS weight,
	CASE WHEN s.ship_date IS NOT NULL AND s.delivery_date IS NOT NULL
		THEN EXTRACT(EPOCH FROM (s.delivery_date - s.ship_date)) / 86400.0
	END AS delivery_days,
	s.sla_days,
	1 AS count,
	CASE WHEN s.state = 'incident' THEN 1 ELSE 0 END AS is_incident,
	CASE WHEN s.state = 'delivered' THEN 1 ELSE 0 END AS is_delivered,
	CASE WHEN s.is_return THEN 1 ELSE 0 END AS is_return,
	CASE WHEN s.state = 'delivered' AND s.delivery_date IS NOT NULL AND s.sla_deadline IS NOT NULL
		AND s.delivery_date::date <= s.sla_deadline::date THEN 1 ELSE 0
	END AS is_on_time,
	CASE WHEN s.state IN ('confirmed', 'in_transit', 'incident') AND s.sla_deadline IS NOT NULL
		AND s.sla_deadline::date < CURRENT_DATE THEN 1 ELSE 0
	END AS is_overdue
FROM shipments s
LEFT JOIN pickings p ON p.id = s.picking_id
LEFT JOIN partners rp ON rp.id = s.partner_id
LEFT JOIN carriers c ON c.id = s.carrier_id`

// Migrate creates or updates every table and the report view.
func (d *DB) Migrate() error {
	tables := []interface{}{
		&models.UserModel{},
		&models.PartnerModel{},
		&models.SaleOrderModel{},
		&models.CredentialModel{},
		&models.CarrierModel{},
		&models.PickingModel{},
		&models.ShipmentModel{},
		&models.LabelModel{},
		&models.SequenceModel{},
		&models.AttachmentModel{},
		&models.MessageModel{},
		&models.MessageRecipientModel{},
		&models.ActivityModel{},
	}
	if err := d.DB.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := d.DB.Exec(reportView).Error; err != nil {
		return fmt.Errorf("create report view: %w", err)
	}

	logger.Info("Database migrated",
		zap.Int("tables", len(tables)),
		zap.String("event", "database_migrated"),
	)
	return nil
}
