// Package app assembles repositories, carrier adapters and services into a running
// application for the HTTP server and the command line jobs.
package app

import (
	"github.com/zoobzio/clockz"

	"shipping-management/internal/carrier"
	"shipping-management/internal/carrier/fixed"
	"shipping-management/internal/carrier/nacex"
	"shipping-management/internal/config"
	"shipping-management/internal/domain/activity"
	"shipping-management/internal/domain/analytics"
	"shipping-management/internal/domain/attachment"
	domainCarrier "shipping-management/internal/domain/carrier"
	"shipping-management/internal/domain/message"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	domainShipment "shipping-management/internal/domain/shipment"
	"shipping-management/internal/domain/uow"
	domainUser "shipping-management/internal/domain/user"
	"shipping-management/internal/events"
	"shipping-management/internal/infrastructure/database/postgres"
	"shipping-management/internal/infrastructure/memory"
	"shipping-management/internal/logger"
	"shipping-management/internal/scheduler"
	analyticsUsecase "shipping-management/internal/usecase/analytics"
	carrierUsecase "shipping-management/internal/usecase/carrier"
	"shipping-management/internal/usecase/collaborator"
	"shipping-management/internal/usecase/dispatch"
	"shipping-management/internal/usecase/notification"
	"shipping-management/internal/usecase/shipment"
	"shipping-management/internal/usecase/user"
)

// Repositories is the storage backend of the application.
type Repositories struct {
	Users       domainUser.Repository
	Shipments   domainShipment.Repository
	Carriers    domainCarrier.Repository
	Partners    partner.Repository
	Pickings    picking.Repository
	Attachments attachment.Repository
	Messages    message.Repository
	Activities  activity.Repository
	Reports     analytics.Repository
	UnitOfWork  uow.UnitOfWork
	// Health reports whether the backend is reachable.
	Health func() error
}

func PostgresRepositories(db *postgres.DB) *Repositories {
	return &Repositories{
		Users:       postgres.NewUserRepository(db),
		Shipments:   postgres.NewShipmentRepository(db),
		Carriers:    postgres.NewCarrierRepository(db),
		Partners:    postgres.NewPartnerRepository(db),
		Pickings:    postgres.NewPickingRepository(db),
		Attachments: postgres.NewAttachmentRepository(db),
		Messages:    postgres.NewMessageRepository(db),
		Activities:  postgres.NewActivityRepository(db),
		Reports:     postgres.NewAnalyticsRepository(db),
		UnitOfWork:  db,
		Health:      db.Health,
	}
}

// MemoryRepositories keeps everything in process. Data is lost on exit.
func MemoryRepositories(clock clockz.Clock) *Repositories {
	store := memory.NewStore()
	return &Repositories{
		Users:       memory.NewUserRepository(store),
		Shipments:   memory.NewShipmentRepository(store),
		Carriers:    memory.NewCarrierRepository(store),
		Partners:    memory.NewPartnerRepository(store),
		Pickings:    memory.NewPickingRepository(store),
		Attachments: memory.NewAttachmentRepository(store),
		Messages:    memory.NewMessageRepository(store),
		Activities:  memory.NewActivityRepository(store),
		Reports:     memory.NewAnalyticsRepository(store, clock),
		UnitOfWork:  store,
		Health:      func() error { return nil },
	}
}

// Container holds the wired services.
type Container struct {
	Config       *config.Config
	Repos        *Repositories
	Bus          *events.Bus
	Clock        clockz.Clock
	Users        *user.Service
	Shipments    *shipment.Service
	Dispatch     *dispatch.Service
	Carriers     *carrierUsecase.Service
	Collaborator *collaborator.Service
	Analytics    *analyticsUsecase.Service
}

// New wires the services on top of repos. The NACEX adapter talks to cfg.Nacex.BaseURL.
func New(cfg *config.Config, repos *Repositories, clock clockz.Clock) *Container {
	if clock == nil {
		clock = clockz.RealClock
	}

	bus := events.NewBus(repos.UnitOfWork, logger.Logger)
	notification.NewService(repos.Messages, repos.Partners, repos.Users).Register(bus)

	registry := carrier.NewRegistry(
		fixed.NewAdapter(domainCarrier.KindFixed),
		fixed.NewAdapter(domainCarrier.KindBaseOnRule),
		nacex.NewAdapter(nacex.NewClient(cfg.Nacex, logger.Logger), logger.Logger),
	)
	orders := carrier.NewOrderBuilder(repos.Carriers, repos.Partners)

	shipments := shipment.NewService(shipment.Deps{
		Shipments:   repos.Shipments,
		Carriers:    repos.Carriers,
		Pickings:    repos.Pickings,
		Attachments: repos.Attachments,
		Registry:    registry,
		Orders:      orders,
		UnitOfWork:  repos.UnitOfWork,
		Events:      bus,
		Clock:       clock,
		NamePrefix:  cfg.Sequence.ShipmentPrefix,
	})

	return &Container{
		Config:    cfg,
		Repos:     repos,
		Bus:       bus,
		Clock:     clock,
		Users:     user.NewService(repos.Users, cfg),
		Shipments: shipments,
		Dispatch: dispatch.NewService(dispatch.Deps{
			Pickings:    repos.Pickings,
			Carriers:    repos.Carriers,
			Shipments:   repos.Shipments,
			Attachments: repos.Attachments,
			Messages:    repos.Messages,
			Registry:    registry,
			Orders:      orders,
			Recorder:    shipments,
			UnitOfWork:  repos.UnitOfWork,
		}),
		Carriers: carrierUsecase.NewService(repos.Carriers, registry, orders),
		Collaborator: collaborator.NewService(collaborator.Deps{
			Partners:    repos.Partners,
			Pickings:    repos.Pickings,
			Attachments: repos.Attachments,
			Messages:    repos.Messages,
			Activities:  repos.Activities,
			Clock:       clock,
		}),
		Analytics: analyticsUsecase.NewService(repos.Reports),
	}
}

func (c *Container) TrackingRefreshJob() scheduler.Job {
	return scheduler.NewTrackingRefreshJob(c.Shipments, c.Repos.UnitOfWork)
}

func (c *Container) SLAAlertJob() scheduler.Job {
	return scheduler.NewSLAAlertJob(scheduler.SLAAlertDeps{
		Shipments:       c.Repos.Shipments,
		Pickings:        c.Repos.Pickings,
		Partners:        c.Repos.Partners,
		Users:           c.Repos.Users,
		Activities:      c.Repos.Activities,
		UnitOfWork:      c.Repos.UnitOfWork,
		Clock:           c.Clock,
		SystemUserEmail: c.Config.Scheduler.SystemUserEmail,
	})
}

// Job looks up a scheduled job by name.
func (c *Container) Job(name string) (scheduler.Job, bool) {
	for _, job := range []scheduler.Job{c.TrackingRefreshJob(), c.SLAAlertJob()} {
		if job.Name() == name {
			return job, true
		}
	}
	return nil, false
}

// Schedule pairs every job with its configured cron expression.
func (c *Container) Schedule() []scheduler.Entry {
	return []scheduler.Entry{
		{Schedule: c.Config.Scheduler.TrackingRefreshSchedule, Job: c.TrackingRefreshJob()},
		{Schedule: c.Config.Scheduler.SLAAlertSchedule, Job: c.SLAAlertJob()},
	}
}
