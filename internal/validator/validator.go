package validator

import (
	"reflect"
	"time"

	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

// NewValidator builds the shared validator and registers the custom tags used by request DTOs:
//
//	civil_date   string in YYYY-MM-DD form
//	cadence      one of monthly, quarterly, yearly (case-insensitive)
//
// decimal.Decimal fields validate as float64, so numeric tags like gte=0 apply to them.
func NewValidator() *validator.Validate {
	validate = validator.New()
	_ = validate.RegisterValidation("civil_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(types.DateLayout, fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("cadence", func(fl validator.FieldLevel) bool {
		return types.NormalizeCadence(fl.Field().String()).IsKnown()
	})
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return validate
}

func GetValidator() *validator.Validate {
	return validate
}

func ValidateRequest(req interface{}) error {
	if validate == nil {
		return ierr.NewError("validator not initialized").
			WithHint("Validator must be initialized before using it").
			Mark(ierr.ErrSystem)
	}

	if err := validate.Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, err := range validateErrs {
				details[err.Field()] = err.Error()
			}
		}
		return ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
