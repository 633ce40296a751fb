package model

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names so messages match what clients sent.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// Compared as decimals; a float64 conversion would round tiny prices to zero.
		_ = validate.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
			d, ok := fl.Field().Interface().(decimal.Decimal)
			return ok && d.IsPositive()
		})

		_ = validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return IsCurrency(fl.Field().String())
		})
		_ = validate.RegisterValidation("nds_rate", func(fl validator.FieldLevel) bool {
			return IsNdsRate(fl.Field().String())
		})
	})
	return validate
}

// FormatValidationError converts validator errors to ErrorDetail.
// Message describes the first failure; Fields carries one entry per failed field.
func FormatValidationError(err error) *ErrorDetail {
	if err == nil {
		return nil
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]string, len(validationErrors))
		for _, fe := range validationErrors {
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = fe.Tag()
			}
		}
		e := validationErrors[0]
		return &ErrorDetail{
			Code:    "bad_request",
			Message: "Field validation for '" + e.Field() + "' failed on the '" + e.Tag() + "' tag",
			Fields:  fields,
		}
	}

	return &ErrorDetail{
		Code:    "bad_request",
		Message: err.Error(),
	}
}
