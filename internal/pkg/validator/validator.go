package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/roadbook-microservice/internal/pkg/timeutil"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// "timeofday" accepts schedule times like "14h30", "14:30" or "8h"
	validate.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, ok := timeutil.ParseTimeOfDay(fl.Field().String())
		return ok
	})
}

// Validate - struct validation against DTO tags
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - access to the validator for custom configuration
func GetValidator() *validator.Validate {
	return validate
}
