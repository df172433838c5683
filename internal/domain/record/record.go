// Package record identifies the owner of polymorphic children such as attachments,
// messages and activities.
package record

import "github.com/google/uuid"

type Model string

const (
	ModelShipment  Model = "shipment"
	ModelPicking   Model = "picking"
	ModelSaleOrder Model = "sale_order"
)

// Ref points at one record of a model.
type Ref struct {
	Model Model
	ID    uuid.UUID
}

func ShipmentRef(id uuid.UUID) Ref  { return Ref{Model: ModelShipment, ID: id} }
func PickingRef(id uuid.UUID) Ref   { return Ref{Model: ModelPicking, ID: id} }
func SaleOrderRef(id uuid.UUID) Ref { return Ref{Model: ModelSaleOrder, ID: id} }
