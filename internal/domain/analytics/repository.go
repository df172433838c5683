package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Filter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	CarrierID *uuid.UUID
	CompanyID *uuid.UUID
}

// Repository reads the report projection.
type Repository interface {
	Rows(ctx context.Context, filter *Filter) ([]Row, error)
}
