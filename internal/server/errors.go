package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-share/internal/rendering"
	"github.com/jonathan/resume-share/internal/schemas"
	"github.com/jonathan/resume-share/internal/share"
	"github.com/jonathan/resume-share/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ReasonStatus maps a failed resolution to an HTTP status.
func ReasonStatus(reason share.Reason) int {
	switch reason {
	case share.ReasonPayloadAbsent, share.ReasonPayloadCorrupted:
		return http.StatusBadRequest
	case share.ReasonRecordNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		schema     *schemas.ValidationError
		document   *schemas.DocumentError
		format     *rendering.FormatError
		imp        *store.ImportError
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &schema), errors.As(err, &document),
		errors.As(err, &format), errors.As(err, &imp):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
