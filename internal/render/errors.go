package render

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTemplate is returned when a template ID is not in the registry.
	ErrUnknownTemplate = errors.New("unknown document template")

	// ErrUnknownSkin is returned when a registry entry points at a skin the style table lacks.
	ErrUnknownSkin = errors.New("unknown template skin")

	// ErrMissingData is returned when no document record was supplied.
	ErrMissingData = errors.New("missing document data")

	// ErrTemplateExecution is returned when the HTML template fails to execute.
	ErrTemplateExecution = errors.New("template execution failed")
)

// RenderError wraps rendering failures with the template that was requested.
type RenderError struct {
	Op         string
	TemplateID string
	Err        error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.TemplateID != "" {
		return fmt.Sprintf("render: %s failed (template: %s): %v", e.Op, e.TemplateID, e.Err)
	}
	return fmt.Sprintf("render: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is matches against the wrapped error.
func (e *RenderError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newRenderError(op, templateID string, err error) *RenderError {
	return &RenderError{Op: op, TemplateID: templateID, Err: err}
}
