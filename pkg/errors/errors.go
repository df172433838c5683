package errors

import (
	"errors"
	"fmt"
)

const (
	CodeConfig       = "CONFIG_ERROR"
	CodeCarrierAPI   = "CARRIER_API_ERROR"
	CodeUser         = "USER_ERROR"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
)

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrInvalidInput = errors.New("invalid input data")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewConfigError reports missing or invalid configuration that blocks a dispatch:
// credentials, shipper/recipient address fields, service codes.
func NewConfigError(format string, args ...interface{}) *AppError {
	return NewAppError(CodeConfig, fmt.Sprintf(format, args...), nil)
}

// NewUserError reports an invalid user action, e.g. selecting several rates at once.
func NewUserError(format string, args ...interface{}) *AppError {
	return NewAppError(CodeUser, fmt.Sprintf(format, args...), nil)
}

func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsConfigError(err error) bool {
	return HasCode(err, CodeConfig)
}

// CarrierAPIError is returned when the carrier endpoint answers with a non-2xx status,
// an ERROR body, or cannot be reached at all.
type CarrierAPIError struct {
	Method     string
	StatusCode int
	Body       string
	Err        error
}

func (e *CarrierAPIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("carrier api %s failed: %v", e.Method, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("carrier api %s failed with status %d: %s", e.Method, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("carrier api %s failed: %s", e.Method, e.Body)
	}
}

func (e *CarrierAPIError) Unwrap() error {
	return e.Err
}

func IsCarrierAPIError(err error) bool {
	var apiErr *CarrierAPIError
	return errors.As(err, &apiErr)
}
