package carrier

import "errors"

var (
	ErrCarrierNotFound    = errors.New("carrier not found")
	ErrCredentialNotFound = errors.New("carrier credential not found")
	ErrInvalidKind        = errors.New("invalid carrier kind")
	ErrInvalidService     = errors.New("invalid nacex service code")
)
