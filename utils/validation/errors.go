package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NonFieldKey is the reserved key for errors that do not belong to a single field
const NonFieldKey = "_"

// Errors accumulates validation messages per field. The zero value is not
// usable; create with NewErrors. An empty Errors means validation passed.
type Errors map[string][]string

// NewErrors creates an empty error accumulator
func NewErrors() Errors {
	return make(Errors)
}

// Add appends a message for a field
func (e Errors) Add(field, format string, args ...interface{}) {
	e[field] = append(e[field], fmt.Sprintf(format, args...))
}

// AddNonField appends a message under the reserved non-field key
func (e Errors) AddNonField(format string, args ...interface{}) {
	e.Add(NonFieldKey, format, args...)
}

// Merge folds another accumulator into this one
func (e Errors) Merge(other Errors) {
	for field, messages := range other {
		e[field] = append(e[field], messages...)
	}
}

// HasErrors reports whether any message has been accumulated
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// Error implements the error interface with a stable, readable summary
func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], "; ")))
	}
	return strings.Join(parts, " | ")
}

// AsError returns e as an error when it carries messages, nil otherwise.
// Returning the map directly would yield a non-nil error interface.
func (e Errors) AsError() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// FromStruct converts go-playground validator errors on a tagged struct into
// per-field messages, using the json field names.
func FromStruct(err error) Errors {
	errs := NewErrors()
	if err == nil {
		return errs
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.AddNonField("invalid input")
		return errs
	}

	for _, e := range validationErrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs.Add(field, "%s is required", e.Field())
		case "email":
			errs.Add(field, "Invalid email format")
		case "min":
			errs.Add(field, "%s must be at least %s", e.Field(), e.Param())
		case "max":
			errs.Add(field, "%s must be at most %s", e.Field(), e.Param())
		case "gt":
			errs.Add(field, "%s must be greater than %s", e.Field(), e.Param())
		case "gte":
			errs.Add(field, "%s must be greater than or equal to %s", e.Field(), e.Param())
		case "lte":
			errs.Add(field, "%s must be less than or equal to %s", e.Field(), e.Param())
		case "oneof":
			errs.Add(field, "%s must be one of: %s", e.Field(), e.Param())
		default:
			errs.Add(field, "%s is invalid", e.Field())
		}
	}

	return errs
}
