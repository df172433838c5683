// Package analytics serves aggregated KPIs over the shipment report projection.
package analytics

import (
	"context"

	"go.uber.org/zap"

	domainAnalytics "shipping-management/internal/domain/analytics"
	"shipping-management/internal/logger"
	appErrors "shipping-management/pkg/errors"
	"shipping-management/pkg/utils"
)

type Service struct {
	reportRepo domainAnalytics.Repository
}

func NewService(reportRepo domainAnalytics.Repository) *Service {
	return &Service{reportRepo: reportRepo}
}

// Report groups the projection rows matching req by the requested dimensions.
func (s *Service) Report(ctx context.Context, req *ReportRequest) (*ReportResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	dims, err := domainAnalytics.ParseDimensions(req.GroupBy)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, err.Error(), err)
	}
	if req.DateFrom != nil && req.DateTo != nil && req.DateTo.Before(*req.DateFrom) {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "date_to must not be before date_from", nil)
	}

	rows, err := s.reportRepo.Rows(ctx, &domainAnalytics.Filter{
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		CarrierID: req.CarrierID,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		return nil, err
	}

	groups := domainAnalytics.Aggregate(rows, dims)
	logger.Debug("Shipment report computed",
		zap.String("group_by", req.GroupBy),
		zap.Int("rows", len(rows)),
		zap.Int("groups", len(groups)),
		zap.String("event", "report_computed"),
	)

	resp := &ReportResponse{GroupBy: dims, Rows: len(rows), Groups: groups}
	if resp.GroupBy == nil {
		resp.GroupBy = []domainAnalytics.Dimension{}
	}
	return resp, nil
}
