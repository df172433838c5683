// Package uow defines the transactional boundary used by services.
package uow

import "context"

// UnitOfWork runs fn atomically. Calls nested inside an outer unit of work open a
// savepoint: an error from fn rolls back only that savepoint and is returned to the caller.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
