// Package validator wraps go-playground/validator with the coordinate
// range tags used across signal payloads. The lat and lng tags check the
// range only; pair them with required on pointer fields when absence must
// be rejected too.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("lat", latInRange)
	_ = v.RegisterValidation("lng", lngInRange)
	return v
}

func latInRange(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func lngInRange(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180 && lng <= 180
}

func ValidateStruct(s any) error {
	return validate.Struct(s)
}
