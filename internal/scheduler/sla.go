package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"shipping-management/internal/domain/activity"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/record"
	domainShipment "shipping-management/internal/domain/shipment"
	"shipping-management/internal/domain/uow"
	"shipping-management/internal/domain/user"
	"shipping-management/internal/logger"
)

type SLAAlertDeps struct {
	Shipments  domainShipment.Repository
	Pickings   picking.Repository
	Partners   partner.Repository
	Users      user.Repository
	Activities activity.Repository
	UnitOfWork uow.UnitOfWork
	Clock      clockz.Clock
	// SystemUserEmail names the fallback owner when the sale has no salesperson.
	SystemUserEmail string
}

// SLAAlertJob opens one follow-up activity per active shipment past its SLA deadline.
type SLAAlertJob struct {
	deps SLAAlertDeps
}

func NewSLAAlertJob(d SLAAlertDeps) *SLAAlertJob {
	if d.Clock == nil {
		d.Clock = clockz.RealClock
	}
	return &SLAAlertJob{deps: d}
}

func (j *SLAAlertJob) Name() string { return "sla-alerts" }

func (j *SLAAlertJob) Run(ctx context.Context) error {
	today := domainShipment.DateOf(j.deps.Clock.Now())
	overdue, err := j.deps.Shipments.ListPastDeadline(ctx, []domainShipment.State{
		domainShipment.StateConfirmed,
		domainShipment.StateInTransit,
		domainShipment.StateIncident,
	}, today)
	if err != nil {
		return err
	}

	fallback, err := j.systemUser(ctx)
	if err != nil {
		return err
	}

	var created int
	for _, sh := range overdue {
		var opened bool
		err := j.deps.UnitOfWork.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			opened, err = j.alert(ctx, sh, today, fallback)
			return err
		})
		if err != nil {
			logger.Warn("SLA alert failed",
				zap.String("shipment_id", sh.ID.String()),
				zap.Error(err),
				zap.String("event", "sla_alert_failed"),
			)
			continue
		}
		if opened {
			created++
		}
	}

	logger.Info("SLA alerts processed",
		zap.Int("overdue", len(overdue)),
		zap.Int("created", created),
		zap.String("event", "sla_alerts_processed"),
	)
	return nil
}

func (j *SLAAlertJob) alert(ctx context.Context, sh *domainShipment.Shipment, today time.Time, fallback uuid.UUID) (bool, error) {
	target := record.ShipmentRef(sh.ID)
	open, err := j.deps.Activities.HasOpen(ctx, activity.KindSLAAlert, target)
	if err != nil || open {
		return false, err
	}

	owner, err := j.owner(ctx, sh)
	if err != nil {
		return false, err
	}
	if owner == uuid.Nil {
		owner = fallback
	}
	if owner == uuid.Nil {
		logger.Warn("No user to assign SLA alert",
			zap.String("shipment_id", sh.ID.String()),
			zap.String("event", "sla_alert_unassigned"),
		)
		return false, nil
	}

	days := sh.DaysOverdue(today)
	a := &activity.Activity{
		Kind:     activity.KindSLAAlert,
		Summary:  SLASummary(days),
		Note:     fmt.Sprintf("%s (%s) debía entregarse el %s.", sh.Name, sh.TrackingRef, sh.SLADeadline.Format("02/01/2006")),
		Deadline: today,
		UserID:   owner,
		Target:   target,
		State:    activity.StateOpen,
	}
	if err := j.deps.Activities.Create(ctx, a); err != nil {
		return false, err
	}

	logger.Info("SLA alert created",
		zap.String("shipment_id", sh.ID.String()),
		zap.String("shipment", sh.Name),
		zap.Int("days_overdue", days),
		zap.String("user_id", owner.String()),
		zap.String("event", "sla_alert_created"),
	)
	return true, nil
}

// owner resolves the salesperson of the sale behind the shipment's delivery order.
func (j *SLAAlertJob) owner(ctx context.Context, sh *domainShipment.Shipment) (uuid.UUID, error) {
	if sh.PickingID == nil {
		return uuid.Nil, nil
	}
	p, err := j.deps.Pickings.GetByID(ctx, *sh.PickingID)
	if errors.Is(err, picking.ErrPickingNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	if p.SaleID == nil {
		return uuid.Nil, nil
	}
	order, err := j.deps.Partners.GetSaleOrder(ctx, *p.SaleID)
	if errors.Is(err, partner.ErrSaleOrderNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	if order.SalespersonID == nil {
		return uuid.Nil, nil
	}
	return *order.SalespersonID, nil
}

// SLASummary is the activity summary for a shipment days past its deadline.
func SLASummary(days int) string {
	return fmt.Sprintf("SLA superado (%d día(s) de retraso)", days)
}

func (j *SLAAlertJob) systemUser(ctx context.Context) (uuid.UUID, error) {
	if j.deps.SystemUserEmail == "" {
		return uuid.Nil, nil
	}
	u, err := j.deps.Users.GetByEmail(ctx, j.deps.SystemUserEmail)
	if errors.Is(err, user.ErrUserNotFound) {
		logger.Warn("System user not found",
			zap.String("email", j.deps.SystemUserEmail),
			zap.String("event", "system_user_not_found"),
		)
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}
