package shipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"shipping-management/internal/carrier"
	"shipping-management/internal/domain/attachment"
	domainCarrier "shipping-management/internal/domain/carrier"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/record"
	domainShipment "shipping-management/internal/domain/shipment"
	"shipping-management/internal/domain/uow"
	"shipping-management/internal/events"
	"shipping-management/internal/logger"
	appErrors "shipping-management/pkg/errors"
	"shipping-management/pkg/utils"
)

// EventPublisher receives the domain events emitted by the lifecycle engine.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Service implements the shipment lifecycle engine
type Service struct {
	shipmentRepo   domainShipment.Repository
	carrierRepo    domainCarrier.Repository
	pickingRepo    picking.Repository
	attachmentRepo attachment.Repository
	registry       *carrier.Registry
	orders         *carrier.OrderBuilder
	uow            uow.UnitOfWork
	events         EventPublisher
	clock          clockz.Clock
	namePrefix     string
}

// Deps groups the collaborators of the service.
type Deps struct {
	Shipments   domainShipment.Repository
	Carriers    domainCarrier.Repository
	Pickings    picking.Repository
	Attachments attachment.Repository
	Registry    *carrier.Registry
	Orders      *carrier.OrderBuilder
	UnitOfWork  uow.UnitOfWork
	Events      EventPublisher
	Clock       clockz.Clock
	NamePrefix  string
}

// NewService creates a new shipment service
func NewService(d Deps) *Service {
	if d.Clock == nil {
		d.Clock = clockz.RealClock
	}
	if d.NamePrefix == "" {
		d.NamePrefix = "SHP"
	}
	return &Service{
		shipmentRepo:   d.Shipments,
		carrierRepo:    d.Carriers,
		pickingRepo:    d.Pickings,
		attachmentRepo: d.Attachments,
		registry:       d.Registry,
		orders:         d.Orders,
		uow:            d.UnitOfWork,
		events:         d.Events,
		clock:          d.Clock,
		namePrefix:     d.NamePrefix,
	}
}

// Now is the service clock reading, used by callers that derive SLA status.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

func (s *Service) Create(ctx context.Context, req *CreateShipmentRequest) (*domainShipment.Shipment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	c, err := s.carrierRepo.GetByID(ctx, req.CarrierID)
	if err != nil {
		return nil, err
	}

	sh := &domainShipment.Shipment{
		State:            domainShipment.StateDraft,
		CarrierID:        c.ID,
		CarrierKind:      string(c.Kind),
		CompanyID:        c.CompanyID,
		TrackingRef:      req.TrackingRef,
		NumberOfPackages: req.NumberOfPackages,
		ShippingCost:     req.ShippingCost,
		ShippingWeight:   req.ShippingWeight,
		SLADays:          c.SLADeliveryDays,
	}
	if req.PickingID != nil {
		p, err := s.pickingRepo.GetByID(ctx, *req.PickingID)
		if err != nil {
			return nil, err
		}
		s.derivePicking(sh, p)
	}
	if sh.NumberOfPackages <= 0 {
		sh.NumberOfPackages = 1
	}

	err = s.uow.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.insert(ctx, sh, c); err != nil {
			return err
		}
		s.publish(ctx, events.ShipmentCreated, sh, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// derivePicking copies the picking-derived attributes onto sh.
func (s *Service) derivePicking(sh *domainShipment.Shipment, p *picking.Picking) {
	sh.PickingID = &p.ID
	partnerID := p.PartnerID
	sh.PartnerID = &partnerID
	sh.CompanyID = p.CompanyID
	sh.Origin = p.ClientReference()
	sh.ShippingWeight = p.ShippingWeight
	if sh.NumberOfPackages <= 0 {
		sh.NumberOfPackages = p.PackageCount()
	}
}

// insert names, links and persists a new shipment.
func (s *Service) insert(ctx context.Context, sh *domainShipment.Shipment, c *domainCarrier.Carrier) error {
	now := s.clock.Now()
	name, err := s.shipmentRepo.NextName(ctx, s.namePrefix, now.Year())
	if err != nil {
		return fmt.Errorf("allocate shipment name: %w", err)
	}
	sh.Name = name
	sh.CreatedAt = now
	sh.UpdatedAt = now
	sh.ApplySLA(c.SLADeliveryDays)
	sh.TrackingURL = s.trackingURL(ctx, sh, c)

	if err := s.shipmentRepo.Create(ctx, sh); err != nil {
		return err
	}

	logger.Info("Shipment created",
		zap.String("shipment_id", sh.ID.String()),
		zap.String("name", sh.Name),
		zap.String("state", string(sh.State)),
		zap.String("carrier_kind", sh.CarrierKind),
		zap.String("tracking_ref", sh.TrackingRef),
		zap.String("event", "shipment_created"),
	)
	return nil
}

func (s *Service) trackingURL(ctx context.Context, sh *domainShipment.Shipment, c *domainCarrier.Carrier) string {
	if sh.TrackingRef == "" {
		return ""
	}
	adapter, err := s.registry.For(c)
	if err != nil {
		return ""
	}
	agencyRef := ""
	if sh.PickingID != nil {
		if p, err := s.pickingRepo.GetByID(ctx, *sh.PickingID); err == nil {
			agencyRef = p.AgencyRef
		}
	}
	return adapter.TrackingURL(carrier.Account{Carrier: c}, agencyRef, sh.TrackingRef)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domainShipment.Shipment, error) {
	return s.shipmentRepo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter *domainShipment.Filter) ([]*domainShipment.Shipment, int64, error) {
	return s.shipmentRepo.List(ctx, filter)
}

func (s *Service) Labels(ctx context.Context, id uuid.UUID) ([]*domainShipment.Label, error) {
	if _, err := s.shipmentRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.shipmentRepo.ListLabels(ctx, id)
}

// Delete removes a shipment with its labels and their attachments.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.shipmentRepo.Delete(ctx, id); err != nil {
			return err
		}
		if err := s.attachmentRepo.DeleteByOwner(ctx, record.ShipmentRef(id)); err != nil {
			return err
		}
		logger.Info("Shipment deleted",
			zap.String("shipment_id", id.String()),
			zap.String("event", "shipment_deleted"),
		)
		return nil
	})
}

// account resolves the carrier, its adapter and credential for sh.
func (s *Service) account(ctx context.Context, sh *domainShipment.Shipment) (carrier.Adapter, carrier.Account, error) {
	c, err := s.carrierRepo.GetByID(ctx, sh.CarrierID)
	if err != nil {
		if errors.Is(err, domainCarrier.ErrCarrierNotFound) {
			return nil, carrier.Account{}, domainShipment.ErrCarrierRequired
		}
		return nil, carrier.Account{}, err
	}
	adapter, err := s.registry.For(c)
	if err != nil {
		return nil, carrier.Account{}, err
	}
	account, err := s.orders.Account(ctx, c)
	if err != nil {
		return nil, carrier.Account{}, err
	}
	return adapter, account, nil
}

// publish emits an event about sh, filling the picking and sale references.
func (s *Service) publish(ctx context.Context, name events.Name, sh *domainShipment.Shipment, mutate func(*events.Event)) {
	if s.events == nil {
		return
	}
	e := events.Event{
		Name:         name,
		ShipmentID:   sh.ID,
		ShipmentName: sh.Name,
		PickingID:    sh.PickingID,
		TrackingRef:  sh.TrackingRef,
		TrackingURL:  sh.TrackingURL,
		ToState:      string(sh.State),
		OccurredAt:   s.clock.Now(),
	}
	if sh.PickingID != nil {
		if p, err := s.pickingRepo.GetByID(ctx, *sh.PickingID); err == nil {
			e.PickingName = p.Name
			e.SaleID = p.SaleID
		}
	}
	if c, err := s.carrierRepo.GetByID(ctx, sh.CarrierID); err == nil {
		e.CarrierName = c.Name
	}
	if mutate != nil {
		mutate(&e)
	}
	s.events.Publish(ctx, e)
}

// Statistics summarises the shipments matching filter.
func (s *Service) Statistics(ctx context.Context, filter *domainShipment.Filter) (*domainShipment.Statistics, error) {
	f := domainShipment.Filter{}
	if filter != nil {
		f = *filter
	}
	f.Page, f.PageSize = 0, 0

	items, _, err := s.shipmentRepo.List(ctx, &f)
	if err != nil {
		return nil, err
	}

	today := s.clock.Now()
	stats := &domainShipment.Statistics{ByState: make(map[string]int)}
	for _, sh := range items {
		stats.TotalShipments++
		stats.ByState[string(sh.State)]++
		if sh.IsActive() {
			stats.Active++
		}
		if sh.SLAStatus(today) == domainShipment.SLAOverdue {
			stats.Overdue++
		}
	}
	return stats, nil
}
