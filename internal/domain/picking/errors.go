package picking

import "errors"

var (
	ErrPickingNotFound = errors.New("picking not found")
	ErrNoCarrier       = errors.New("picking has no carrier")
	ErrNoSaleOrder     = errors.New("picking has no linked sale order")
)
