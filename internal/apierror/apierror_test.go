package apierror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrInternalServer, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		err := NewAPIError(c.code, "boom", nil)
		assert.Equal(t, c.want, MapErrorToHTTPStatus(err))
	}

	// Plain errors map to 500.
	assert.Equal(t, http.StatusInternalServerError, MapErrorToHTTPStatus(errors.New("plain")))
}

func TestAPIErrorString(t *testing.T) {
	err := NewAPIError(ErrNotFound, "Movement not found", nil)
	assert.Equal(t, "NOT_FOUND: Movement not found", err.Error())
}
