package apperror

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrValidation = New(
	CodeValidation,
	"Invalid input",
	http.StatusBadRequest,
)

// FieldError is one violated rule, keyed by the json field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatFieldName turns a json field name into a label: people_partner_id -> People Partner Id
func FormatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// Validation builds a VALIDATION_ERROR carrying every field error.
func Validation(fields []FieldError) *AppError {
	return WithDetails(ErrValidation, fields)
}

// MapValidationError converts validator errors from request binding into a
// VALIDATION_ERROR listing every field.
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]FieldError, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, FieldError{
				Field:   e.Field(),
				Message: DescribeRule(e),
			})
		}
		return Validation(fields)
	}

	return Wrap(err, CodeValidation, ErrValidation.Message, http.StatusBadRequest)
}

// DescribeRule renders a single validator failure as a sentence.
func DescribeRule(e validator.FieldError) string {
	label := FormatFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return label + " is required"
	case "max":
		return label + " cannot be longer than " + e.Param() + " characters"
	case "uuid":
		return label + " must be a valid id"
	case "datetime":
		return label + " must be a date in YYYY-MM-DD format"
	case "oneof":
		return label + " must be one of: " + e.Param()
	case "gte":
		return label + " must be greater than or equal to " + e.Param()
	case "position":
		return label + " is not a recognised position"
	case "before_end_date":
		return label + " must be earlier than End Date"
	default:
		return label + " is invalid"
	}
}
