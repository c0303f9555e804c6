package validation

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/osa911/uplink/internal/api/dto/common"
	"github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/locale"

	"github.com/go-playground/validator/v10"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// fieldLimits caps each contact field at the HTTP boundary
var fieldLimits = map[contact.Field]int{
	contact.FieldName:    100,
	contact.FieldEmail:   255,
	contact.FieldMessage: 5000,
}

// RegisterValidators registers custom validators and reports fields by
// their JSON names
func RegisterValidators(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterValidation("notblank", validateNotBlank)
	v.RegisterValidation("contactfield", validateContactField)
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// validateNotBlank fails strings that are empty after trimming whitespace
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateContactField accepts the names of the form's inputs
func validateContactField(fl validator.FieldLevel) bool {
	return contact.Field(fl.Field().String()).Valid()
}

// FieldLimit returns the maximum length in characters of field
func FieldLimit(field contact.Field) int {
	return fieldLimits[field]
}

// ExceedsLimit reports whether value is longer than field allows
func ExceedsLimit(field contact.Field, value string) bool {
	limit, ok := fieldLimits[field]
	return ok && utf8.RuneCountInString(value) > limit
}

// FormatValidationError turns binding errors into localized per-field messages.
// It returns nil when err is not a validation error (malformed JSON etc).
func FormatValidationError(err error, localizer *i18n.Localizer) []common.ValidationError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	out := make([]common.ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, common.ValidationError{
			Field:   e.Field(),
			Message: messageFor(e, localizer),
		})
	}
	return out
}

func messageFor(e validator.FieldError, localizer *i18n.Localizer) string {
	switch e.Tag() {
	case "required", "notblank":
		if field := contact.Field(e.Field()); field.Valid() {
			return locale.FieldError(localizer, field)
		}
		return locale.T(localizer, locale.MsgFieldInvalid)
	case "max":
		return locale.T(localizer, locale.MsgFieldTooLong)
	case "contactfield":
		return locale.T(localizer, locale.MsgFieldUnknown)
	default:
		return locale.T(localizer, locale.MsgFieldInvalid)
	}
}

// MissingFieldErrors lists the localized message of every missing field
func MissingFieldErrors(missing contact.Missing, localizer *i18n.Localizer) []common.ValidationError {
	fields := missing.Fields()
	out := make([]common.ValidationError, 0, len(fields))
	for _, f := range fields {
		out = append(out, common.ValidationError{
			Field:   string(f),
			Message: locale.FieldError(localizer, f),
		})
	}
	return out
}
