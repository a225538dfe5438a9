package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bizdocs/internal/forms"
	"bizdocs/internal/render"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func abortWithError(c *gin.Context, status int, code, details string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Details: details})
}

// respondError maps domain errors to HTTP status codes and error codes.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, render.ErrUnknownTemplate):
		status, code = http.StatusNotFound, "unknown_template"
	case errors.Is(err, render.ErrMissingData):
		status, code = http.StatusBadRequest, "missing_data"
	case errors.Is(err, forms.ErrUnknownForm):
		status, code = http.StatusNotFound, "unknown_form"
	case errors.Is(err, forms.ErrUnknownField):
		status, code = http.StatusUnprocessableEntity, "unknown_field"
	case errors.Is(err, forms.ErrValueKind):
		status, code = http.StatusUnprocessableEntity, "invalid_value"
	}

	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		abortWithError(c, status, code, "")
		return
	}
	abortWithError(c, status, code, err.Error())
}

func respondBindError(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, "invalid_request", err.Error())
}
