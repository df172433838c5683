// Package carrier manages carrier configuration and the carrier lookups exposed to users.
package carrier

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	carrierAdapter "shipping-management/internal/carrier"
	domainCarrier "shipping-management/internal/domain/carrier"
	"shipping-management/internal/logger"
	appErrors "shipping-management/pkg/errors"
	"shipping-management/pkg/utils"
)

type Service struct {
	carrierRepo domainCarrier.Repository
	registry    *carrierAdapter.Registry
	orders      *carrierAdapter.OrderBuilder
}

func NewService(carrierRepo domainCarrier.Repository, registry *carrierAdapter.Registry, orders *carrierAdapter.OrderBuilder) *Service {
	return &Service{
		carrierRepo: carrierRepo,
		registry:    registry,
		orders:      orders,
	}
}

func (s *Service) Create(ctx context.Context, req *CarrierRequest) (*domainCarrier.Carrier, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	c := &domainCarrier.Carrier{Active: true}
	req.apply(c)
	if req.Kind == domainCarrier.KindNacex {
		defaultNacex(c)
	}
	if err := s.carrierRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("Carrier created",
		zap.String("carrier_id", c.ID.String()),
		zap.String("name", c.Name),
		zap.String("kind", string(c.Kind)),
		zap.String("event", "carrier_created"),
	)
	return c, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *CarrierRequest) (*domainCarrier.Carrier, error) {
	c, err := s.carrierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	req.apply(c)
	if err := s.carrierRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("Carrier updated",
		zap.String("carrier_id", c.ID.String()),
		zap.String("event", "carrier_updated"),
	)
	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domainCarrier.Carrier, error) {
	return s.carrierRepo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*domainCarrier.Carrier, error) {
	return s.carrierRepo.List(ctx, activeOnly)
}

// NacexServices returns the NACEX service catalogue.
func (s *Service) NacexServices() []domainCarrier.Service {
	return domainCarrier.NacexServices()
}

func (s *Service) CreateCredential(ctx context.Context, req *CredentialRequest) (*domainCarrier.Credential, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	cred := &domainCarrier.Credential{
		Login:        req.Login,
		Password:     req.Password,
		DeliveryKind: req.DeliveryKind,
		CompanyID:    req.CompanyID,
	}
	if err := s.carrierRepo.CreateCredential(ctx, cred); err != nil {
		return nil, err
	}

	logger.Info("Carrier credential created",
		zap.String("credential_id", cred.ID.String()),
		zap.String("login", cred.Login),
		zap.String("event", "credential_created"),
	)
	return cred, nil
}

func (s *Service) UpdateCredential(ctx context.Context, id uuid.UUID, req *CredentialRequest) (*domainCarrier.Credential, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	cred, err := s.carrierRepo.GetCredential(ctx, id)
	if err != nil {
		return nil, err
	}
	cred.Login = req.Login
	cred.Password = req.Password
	cred.DeliveryKind = req.DeliveryKind
	cred.CompanyID = req.CompanyID
	if err := s.carrierRepo.UpdateCredential(ctx, cred); err != nil {
		return nil, err
	}
	return cred, nil
}

func (s *Service) ListCredentials(ctx context.Context) ([]*domainCarrier.Credential, error) {
	return s.carrierRepo.ListCredentials(ctx)
}

// TestConnection performs a harmless lookup with the carrier's credential.
func (s *Service) TestConnection(ctx context.Context, id uuid.UUID, req *LookupRequest) (*LookupResponse, error) {
	adapter, account, err := s.lookup(ctx, id, req)
	if err != nil {
		return nil, err
	}
	answer, err := adapter.TestConnection(ctx, account, req.Zip)
	if err != nil {
		return nil, err
	}

	logger.Info("Carrier connection tested",
		zap.String("carrier_id", id.String()),
		zap.String("event", "carrier_connection_tested"),
	)
	return &LookupResponse{Zip: req.Zip, Answer: answer}, nil
}

// Cities lists the carrier-known cities of a postcode.
func (s *Service) Cities(ctx context.Context, id uuid.UUID, req *LookupRequest) (*LookupResponse, error) {
	adapter, account, err := s.lookup(ctx, id, req)
	if err != nil {
		return nil, err
	}
	cities, err := adapter.Cities(ctx, account, req.Zip)
	if err != nil {
		return nil, err
	}
	return &LookupResponse{Zip: req.Zip, Cities: cities}, nil
}

func (s *Service) lookup(ctx context.Context, id uuid.UUID, req *LookupRequest) (carrierAdapter.Adapter, carrierAdapter.Account, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, carrierAdapter.Account{}, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	c, err := s.carrierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, carrierAdapter.Account{}, err
	}
	adapter, err := s.registry.For(c)
	if err != nil {
		return nil, carrierAdapter.Account{}, err
	}
	account, err := s.orders.Account(ctx, c)
	if err != nil {
		return nil, carrierAdapter.Account{}, err
	}
	return adapter, account, nil
}

func (s *Service) validate(ctx context.Context, req *CarrierRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	if req.ServiceCode != "" && !domainCarrier.IsNacexService(req.ServiceCode) {
		return appErrors.NewAppError(appErrors.CodeValidation, "Unknown NACEX service code "+req.ServiceCode, domainCarrier.ErrInvalidService)
	}
	if req.FixedPrice.IsNegative() || req.MinWeight.IsNegative() {
		return appErrors.NewAppError(appErrors.CodeValidation, "Prices and weights must not be negative", nil)
	}
	if req.CredentialID != nil {
		if _, err := s.carrierRepo.GetCredential(ctx, *req.CredentialID); err != nil {
			return err
		}
	}
	return nil
}

// defaultNacex fills the NACEX options left empty with the carrier defaults.
func defaultNacex(c *domainCarrier.Carrier) {
	if c.Payer == "" {
		c.Payer = domainCarrier.PayerOrigin
	}
	if c.Packaging == "" {
		c.Packaging = domainCarrier.PackagingParcel
	}
}
