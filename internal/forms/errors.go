package forms

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownForm is returned when a form ID is not in the catalog.
	ErrUnknownForm = errors.New("unknown form")

	// ErrUnknownField is returned when an edit targets a key the form does not declare.
	ErrUnknownField = errors.New("unknown form field")

	// ErrValueKind is returned when a value does not match the field type.
	ErrValueKind = errors.New("value does not match field type")

	// ErrInvalidCatalog is returned when the form catalog is malformed.
	ErrInvalidCatalog = errors.New("invalid form catalog")
)

// FormError represents a failed operation on one form.
type FormError struct {
	Op     string
	FormID string
	Field  string
	Err    error
}

// Error implements the error interface.
func (e *FormError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("forms: %s failed (form: %s, field: %s): %v", e.Op, e.FormID, e.Field, e.Err)
	case e.FormID != "":
		return fmt.Sprintf("forms: %s failed (form: %s): %v", e.Op, e.FormID, e.Err)
	}
	return fmt.Sprintf("forms: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormError) Unwrap() error {
	return e.Err
}

// Is matches against the wrapped error.
func (e *FormError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newFormError(op, formID, field string, err error) *FormError {
	return &FormError{Op: op, FormID: formID, Field: field, Err: err}
}
