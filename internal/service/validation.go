package service

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/sportsevents/eventdesk/internal/errors"
)

// inputValidator checks request structs before anything leaves the process.
var inputValidator = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct-tag validation and reports the first failing field.
func validateInput(v any) error {
	err := inputValidator.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "validate input")
	}
	fe := fieldErrs[0]
	field := lowerFirst(fe.Field())
	return apperrors.ValidationField(field, fieldMessage(field, fe))
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
