package analytics

import (
	"time"

	"github.com/google/uuid"

	domainAnalytics "shipping-management/internal/domain/analytics"
)

type ReportRequest struct {
	GroupBy   string     `form:"group_by" validate:"omitempty,max=200"`
	DateFrom  *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"date_to" time_format:"2006-01-02"`
	CarrierID *uuid.UUID `form:"carrier_id"`
	CompanyID *uuid.UUID `form:"company_id"`
}

type ReportResponse struct {
	GroupBy []domainAnalytics.Dimension `json:"group_by"`
	Rows    int                         `json:"rows"`
	Groups  []*domainAnalytics.Group    `json:"groups"`
}
