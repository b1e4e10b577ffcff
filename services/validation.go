package services

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

// Validator checks struct validation tags and reports failures by JSON field name
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator
func NewValidator() *Validator {
	v := validator.New()

	// Register custom validators
	v.RegisterValidation("finite", isFinite)
	v.RegisterValidation("nonzero", isNonZero)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s and returns one error per failing field
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var errs error
	for _, fe := range verrs {
		errs = multierr.Append(errs, formatFieldError(fe))
	}
	return errs
}

func formatFieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("field %s failed required validation: must be non-zero", fe.Field())
	case "nonzero":
		return fmt.Errorf("field %s failed nonzero validation: must not be zero", fe.Field())
	case "finite":
		return fmt.Errorf("field %s failed finite validation: must not be NaN or infinite", fe.Field())
	case "gte", "lte":
		return fmt.Errorf("field %s failed %s validation: must be %s %s", fe.Field(), fe.Tag(), fe.Tag(), fe.Param())
	default:
		return fmt.Errorf("field %s failed %s validation", fe.Field(), fe.Tag())
	}
}

// isFinite rejects NaN and infinite floats
func isFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// isNonZero rejects negative zero, which "required" lets through because it
// compares bit patterns
func isNonZero(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return field.Float() != 0
	default:
		return !field.IsZero()
	}
}
