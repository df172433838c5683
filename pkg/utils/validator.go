package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate  *validator.Validate
	phoneExpr = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)
	isoExpr   = regexp.MustCompile(`^[A-Z]{2}$`)
)

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneExpr.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("iso_country", func(fl validator.FieldLevel) bool {
		return isoExpr.MatchString(fl.Field().String())
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
