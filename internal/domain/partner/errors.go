package partner

import "errors"

var (
	ErrPartnerNotFound   = errors.New("partner not found")
	ErrSaleOrderNotFound = errors.New("sale order not found")
)
