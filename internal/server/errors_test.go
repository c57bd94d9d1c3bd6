package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-share/internal/rendering"
	"github.com/jonathan/resume-share/internal/schemas"
	"github.com/jonathan/resume-share/internal/share"
	"github.com/jonathan/resume-share/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "resume", Message: "is required"}
	assert.Equal(t, "validation error: resume - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", store.ErrNotFound), http.StatusNotFound},
		{"schema", &schemas.ValidationError{}, http.StatusBadRequest},
		{"document", &schemas.DocumentError{Cause: errors.New("eof")}, http.StatusBadRequest},
		{"format", &rendering.FormatError{Format: "pdf"}, http.StatusBadRequest},
		{"import", &store.ImportError{File: "x.json"}, http.StatusBadRequest},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestReasonStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ReasonStatus(share.ReasonPayloadAbsent))
	assert.Equal(t, http.StatusBadRequest, ReasonStatus(share.ReasonPayloadCorrupted))
	assert.Equal(t, http.StatusNotFound, ReasonStatus(share.ReasonRecordNotFound))
	assert.Equal(t, http.StatusInternalServerError, ReasonStatus(share.ReasonLookupFailed))
}
