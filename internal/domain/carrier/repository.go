package carrier

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, carrier *Carrier) error
	GetByID(ctx context.Context, carrierID uuid.UUID) (*Carrier, error)
	Update(ctx context.Context, carrier *Carrier) error
	// List returns carriers, only the active ones when activeOnly is set.
	List(ctx context.Context, activeOnly bool) ([]*Carrier, error)

	CreateCredential(ctx context.Context, cred *Credential) error
	GetCredential(ctx context.Context, credentialID uuid.UUID) (*Credential, error)
	UpdateCredential(ctx context.Context, cred *Credential) error
	ListCredentials(ctx context.Context) ([]*Credential, error)
}
