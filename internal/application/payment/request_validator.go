package payment

import (
	"fmt"
	"reflect"
	"strings"

	domainErrors "github.com/cassiomorais/recurrentpayments/internal/domain/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxValuePlaces is the number of decimal places a checking account can hold.
const maxValuePlaces = 2

var defaultDebitRules = map[string]string{
	"ClientID": "required,gt=0",
	"Value":    "gt=0",
}

// RequestValidator is the default Validator, backed by go-playground/validator.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a validator with the structural rules every debit
// request must satisfy.
func NewRequestValidator() *RequestValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Numeric rules see a decimal as float64; precision checks use the struct-level rule.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterStructValidationMapRules(defaultDebitRules, DebitRequest{})
	v.RegisterStructValidation(validateValuePlaces, DebitRequest{})

	return &RequestValidator{validate: v}
}

// Validate returns one violation per broken rule, in field order.
func (rv *RequestValidator) Validate(req DebitRequest) []*domainErrors.ValidationError {
	err := rv.validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*domainErrors.ValidationError{domainErrors.NewValidationError("request", err.Error())}
	}

	violations := make([]*domainErrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, domainErrors.NewValidationError(fe.Field(), violationMessage(fe)))
	}
	return violations
}

func validateValuePlaces(sl validator.StructLevel) {
	req := sl.Current().Interface().(DebitRequest)
	if !req.Value.Equal(req.Value.Round(maxValuePlaces)) {
		sl.ReportError(req.Value, "value", "Value", "max_places", fmt.Sprint(maxValuePlaces))
	}
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "max_places":
		return fmt.Sprintf("%s must have at most %s decimal places", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
