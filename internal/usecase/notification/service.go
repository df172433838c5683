// Package notification turns domain events into chatter posts and user notifications.
package notification

import (
	"context"
	"fmt"

	"github.com/flosch/pongo2/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shipping-management/internal/domain/message"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/record"
	"shipping-management/internal/domain/user"
	"shipping-management/internal/events"
	"shipping-management/internal/logger"
)

type Service struct {
	messageRepo message.Repository
	partnerRepo partner.Repository
	userRepo    user.Repository
}

func NewService(messageRepo message.Repository, partnerRepo partner.Repository, userRepo user.Repository) *Service {
	return &Service{
		messageRepo: messageRepo,
		partnerRepo: partnerRepo,
		userRepo:    userRepo,
	}
}

// Register subscribes the notification handlers on bus.
func (s *Service) Register(bus *events.Bus) {
	bus.Subscribe("notification.shipment_created", s.onShipmentCreated, events.ShipmentCreated)
	bus.Subscribe("notification.state_changed", s.onStateChanged, events.ShipmentStateChanged)
	bus.Subscribe("notification.incident", s.onIncident, events.IncidentDetected)
}

func (s *Service) onShipmentCreated(ctx context.Context, e events.Event) error {
	body, err := render(shipmentCreatedTemplate, e)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Shipment %s", e.ShipmentName)

	if e.PickingID != nil {
		if err := s.comment(ctx, record.PickingRef(*e.PickingID), subject, body); err != nil {
			return err
		}
	}
	if e.SaleID != nil {
		if err := s.comment(ctx, record.SaleOrderRef(*e.SaleID), subject, body); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) onStateChanged(ctx context.Context, e events.Event) error {
	body, err := render(stateChangedTemplate, e)
	if err != nil {
		return err
	}
	return s.comment(ctx, record.ShipmentRef(e.ShipmentID), fmt.Sprintf("Shipment %s", e.ShipmentName), body)
}

// onIncident notifies the salesperson of the sale order and every warehouse manager.
func (s *Service) onIncident(ctx context.Context, e events.Event) error {
	recipients, err := s.incidentRecipients(ctx, e)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		logger.Warn("Incident notification has no recipient",
			zap.String("shipment_id", e.ShipmentID.String()),
			zap.String("event", "incident_notification_skipped"),
		)
		return nil
	}

	body, err := render(incidentTemplate, e)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Incident on shipment %s", e.ShipmentName)
	if e.PickingName != "" {
		subject = fmt.Sprintf("Incident on shipment %s (%s)", e.ShipmentName, e.PickingName)
	}

	msg := &message.Message{
		Kind:         message.KindNotification,
		Subject:      subject,
		Body:         body,
		RecipientIDs: recipients,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return err
	}

	logger.Info("Incident notification sent",
		zap.String("shipment_id", e.ShipmentID.String()),
		zap.Int("recipients", len(recipients)),
		zap.String("event", "incident_notified"),
	)
	return nil
}

func (s *Service) incidentRecipients(ctx context.Context, e events.Event) ([]uuid.UUID, error) {
	var out []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	add := func(id uuid.UUID) {
		if id != uuid.Nil && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	if e.SaleID != nil {
		order, err := s.partnerRepo.GetSaleOrder(ctx, *e.SaleID)
		switch {
		case err == nil && order.SalespersonID != nil:
			add(*order.SalespersonID)
		case err != nil:
			logger.Warn("Sale order of incident not found",
				zap.String("sale_id", e.SaleID.String()),
				zap.Error(err),
				zap.String("event", "incident_sale_missing"),
			)
		}
	}

	managers, err := s.userRepo.ListByRole(ctx, user.RoleWarehouseManager)
	if err != nil {
		return nil, err
	}
	for _, m := range managers {
		add(m.ID)
	}
	return out, nil
}

func (s *Service) comment(ctx context.Context, thread record.Ref, subject, body string) error {
	return s.messageRepo.Create(ctx, &message.Message{
		Kind:    message.KindComment,
		Thread:  &thread,
		Subject: subject,
		Body:    body,
	})
}

func render(tpl *pongo2.Template, e events.Event) (string, error) {
	out, err := tpl.Execute(pongo2.Context{"event": e})
	if err != nil {
		return "", fmt.Errorf("render %s notification: %w", e.Name, err)
	}
	return out, nil
}
