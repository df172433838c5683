// Package events carries domain events from the lifecycle engine to side-effect handlers
// such as chatter notifications and the MQTT feed.
package events

import (
	"time"

	"github.com/google/uuid"
)

type Name string

const (
	ShipmentCreated      Name = "shipment_created"
	LabelAttached        Name = "label_attached"
	ShipmentStateChanged Name = "shipment_state_changed"
	IncidentDetected     Name = "incident_detected"
)

// Event describes something that happened to a shipment.
type Event struct {
	Name         Name       `json:"name"`
	ShipmentID   uuid.UUID  `json:"shipment_id"`
	ShipmentName string     `json:"shipment_name"`
	PickingID    *uuid.UUID `json:"picking_id,omitempty"`
	PickingName  string     `json:"picking_name,omitempty"`
	SaleID       *uuid.UUID `json:"sale_id,omitempty"`
	CarrierName  string     `json:"carrier_name,omitempty"`
	TrackingRef  string     `json:"tracking_ref,omitempty"`
	TrackingURL  string     `json:"tracking_url,omitempty"`
	FromState    string     `json:"from_state,omitempty"`
	ToState      string     `json:"to_state,omitempty"`
	RawStatus    string     `json:"raw_status,omitempty"`
	LabelID      *uuid.UUID `json:"label_id,omitempty"`
	LabelKind    string     `json:"label_kind,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
}
