package form

import (
	"reflect"
	"strings"
	"sync"

	"lotadmin/internal/registry/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DefaultMessage is shown for a failure without a dedicated text.
const DefaultMessage = "Неверное значение"

// Errors maps a form field name to the message shown under it.
type Errors map[string]string

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report form field names so errors land under the right input.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := fld.Tag.Get("form")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			return err == nil && d.IsPositive()
		})
		_ = validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return model.IsCurrency(fl.Field().String())
		})
		_ = validate.RegisterValidation("nds_rate", func(fl validator.FieldLevel) bool {
			return model.IsNdsRate(fl.Field().String())
		})
		_ = validate.RegisterValidation("datetime_local", func(fl validator.FieldLevel) bool {
			_, ok := model.ParseDateDelivery(fl.Field().String())
			return ok
		})
	})
	return validate
}

// check runs the validator and translates failures with messages keyed
// by "field.tag".
func check(s interface{}, messages map[string]string) Errors {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	errs := Errors{}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_form"] = err.Error()
		return errs
	}
	for _, fe := range validationErrors {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = message(messages, fe.Field(), fe.Tag())
	}
	return errs
}

func message(messages map[string]string, field, tag string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	return DefaultMessage
}

// fromAPI converts the field map of a 400 answer into form messages.
func fromAPI(fields map[string]string, messages map[string]string) Errors {
	if len(fields) == 0 {
		return nil
	}
	errs := make(Errors, len(fields))
	for field, tag := range fields {
		errs[field] = message(messages, field, tag)
	}
	return errs
}

// Has reports whether field has a message.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
