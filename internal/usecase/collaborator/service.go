// Package collaborator exposes the records the shipping core depends on but does not own:
// partners, sale orders, delivery orders, their attachments and chatter.
package collaborator

import (
	"context"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"shipping-management/internal/domain/activity"
	"shipping-management/internal/domain/attachment"
	"shipping-management/internal/domain/message"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/record"
	"shipping-management/internal/logger"
	appErrors "shipping-management/pkg/errors"
	"shipping-management/pkg/utils"
)

type Service struct {
	partnerRepo    partner.Repository
	pickingRepo    picking.Repository
	attachmentRepo attachment.Repository
	messageRepo    message.Repository
	activityRepo   activity.Repository
	clock          clockz.Clock
}

type Deps struct {
	Partners    partner.Repository
	Pickings    picking.Repository
	Attachments attachment.Repository
	Messages    message.Repository
	Activities  activity.Repository
	Clock       clockz.Clock
}

func NewService(d Deps) *Service {
	if d.Clock == nil {
		d.Clock = clockz.RealClock
	}
	return &Service{
		partnerRepo:    d.Partners,
		pickingRepo:    d.Pickings,
		attachmentRepo: d.Attachments,
		messageRepo:    d.Messages,
		activityRepo:   d.Activities,
		clock:          d.Clock,
	}
}

func validate(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	return nil
}

// Partners

func (s *Service) CreatePartner(ctx context.Context, req *PartnerRequest) (*partner.Partner, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	p := &partner.Partner{}
	req.apply(p)
	if err := s.partnerRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.Info("Partner created",
		zap.String("partner_id", p.ID.String()),
		zap.String("event", "partner_created"),
	)
	return p, nil
}

func (s *Service) UpdatePartner(ctx context.Context, id uuid.UUID, req *PartnerRequest) (*partner.Partner, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	p, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(p)
	if err := s.partnerRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPartner(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	return s.partnerRepo.GetByID(ctx, id)
}

func (s *Service) ListPartners(ctx context.Context) ([]*partner.Partner, error) {
	return s.partnerRepo.List(ctx)
}

// Sale orders

func (s *Service) CreateSaleOrder(ctx context.Context, req *SaleOrderRequest) (*partner.SaleOrder, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := s.partnerRepo.GetByID(ctx, req.PartnerID); err != nil {
		return nil, err
	}
	o := &partner.SaleOrder{
		Name:          req.Name,
		PartnerID:     req.PartnerID,
		SalespersonID: req.SalespersonID,
		CompanyID:     req.CompanyID,
	}
	if err := s.partnerRepo.CreateSaleOrder(ctx, o); err != nil {
		return nil, err
	}
	logger.Info("Sale order created",
		zap.String("sale_id", o.ID.String()),
		zap.String("name", o.Name),
		zap.String("event", "sale_order_created"),
	)
	return o, nil
}

func (s *Service) GetSaleOrder(ctx context.Context, id uuid.UUID) (*partner.SaleOrder, error) {
	return s.partnerRepo.GetSaleOrder(ctx, id)
}

// Delivery orders

func (s *Service) CreatePicking(ctx context.Context, req *PickingRequest) (*picking.Picking, error) {
	if err := s.validatePicking(ctx, req); err != nil {
		return nil, err
	}
	p := &picking.Picking{State: picking.StateDraft}
	req.apply(p)
	if err := s.pickingRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.Info("Delivery order created",
		zap.String("picking_id", p.ID.String()),
		zap.String("name", p.Name),
		zap.String("event", "picking_created"),
	)
	return p, nil
}

// UpdatePicking edits the delivery order. Carrier references set by a dispatch are kept.
func (s *Service) UpdatePicking(ctx context.Context, id uuid.UUID, req *PickingRequest) (*picking.Picking, error) {
	if err := s.validatePicking(ctx, req); err != nil {
		return nil, err
	}
	p, err := s.pickingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(p)
	if err := s.pickingRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPicking(ctx context.Context, id uuid.UUID) (*picking.Picking, error) {
	return s.pickingRepo.GetByID(ctx, id)
}

func (s *Service) ListPickings(ctx context.Context) ([]*picking.Picking, error) {
	return s.pickingRepo.List(ctx)
}

func (s *Service) validatePicking(ctx context.Context, req *PickingRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if req.ShippingWeight.IsNegative() {
		return appErrors.NewAppError(appErrors.CodeValidation, "shipping_weight must not be negative", nil)
	}
	for _, id := range []uuid.UUID{req.PartnerID, req.WarehousePartnerID} {
		if _, err := s.partnerRepo.GetByID(ctx, id); err != nil {
			return err
		}
	}
	if req.SaleID != nil {
		if _, err := s.partnerRepo.GetSaleOrder(ctx, *req.SaleID); err != nil {
			return err
		}
	}
	return nil
}

// Attachments

// AttachToPicking stores a document on the delivery order.
func (s *Service) AttachToPicking(ctx context.Context, pickingID uuid.UUID, req *AttachmentRequest) (*attachment.Attachment, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := s.pickingRepo.GetByID(ctx, pickingID); err != nil {
		return nil, err
	}
	a := &attachment.Attachment{
		Name:     req.Name,
		MimeType: req.MimeType,
		Data:     req.Data,
		Owner:    record.PickingRef(pickingID),
	}
	if err := s.attachmentRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAttachment(ctx context.Context, id uuid.UUID) (*attachment.Attachment, error) {
	return s.attachmentRepo.GetByID(ctx, id)
}

func (s *Service) ListAttachments(ctx context.Context, owner record.Ref) ([]*attachment.Attachment, error) {
	return s.attachmentRepo.ListByOwner(ctx, owner)
}

// Chatter

func (s *Service) Thread(ctx context.Context, ref record.Ref) ([]*message.Message, error) {
	return s.messageRepo.ListByThread(ctx, ref)
}

func (s *Service) Inbox(ctx context.Context, userID uuid.UUID) ([]*message.Message, error) {
	return s.messageRepo.ListByRecipient(ctx, userID)
}

func (s *Service) Activities(ctx context.Context, ref record.Ref) ([]*activity.Activity, error) {
	return s.activityRepo.ListByTarget(ctx, ref)
}

func (s *Service) MyActivities(ctx context.Context, userID uuid.UUID) ([]*activity.Activity, error) {
	return s.activityRepo.ListOpenByUser(ctx, userID)
}

// CompleteActivity marks an activity of userID as done.
func (s *Service) CompleteActivity(ctx context.Context, userID, activityID uuid.UUID) (*activity.Activity, error) {
	a, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, appErrors.ErrInsufficientPermissions
	}
	if a.State == activity.StateDone {
		return a, nil
	}
	now := s.clock.Now()
	a.State = activity.StateDone
	a.DoneAt = &now
	if err := s.activityRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	logger.Info("Activity completed",
		zap.String("activity_id", a.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("event", "activity_completed"),
	)
	return a, nil
}
