// Package validation checks submitted forms using go-playground/validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Errors maps a form field name to a human readable message.
type Errors map[string]string

// Error implements the error interface.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + " " + e[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Get returns the message for a field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// get returns the shared validator. Field names come from the `form` tag.
func get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates s. It returns nil or an Errors value.
func Struct(s interface{}) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	out := make(Errors, len(validationErrs))
	for _, fe := range validationErrs {
		out[fe.Field()] = friendlyMessage(fe)
	}
	return out
}

// AsErrors extracts field errors from err, if it carries any.
func AsErrors(err error) (Errors, bool) {
	var fieldErrs Errors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, true
	}
	return nil, false
}

func friendlyMessage(fe validator.FieldError) string {
	stringish := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if stringish {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if stringish {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "is invalid"
	}
}
