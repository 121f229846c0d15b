package bluegem

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		want       error
		notWant    []error
	}{
		{
			name:       "404 is not found",
			statusCode: http.StatusNotFound,
			want:       ErrNotFound,
			notWant:    []error{ErrInvalidRequest, ErrServer},
		},
		{
			name:       "400 is invalid request",
			statusCode: http.StatusBadRequest,
			want:       ErrInvalidRequest,
			notWant:    []error{ErrNotFound, ErrServer},
		},
		{
			name:       "422 is invalid request",
			statusCode: http.StatusUnprocessableEntity,
			want:       ErrInvalidRequest,
			notWant:    []error{ErrNotFound, ErrServer},
		},
		{
			name:       "500 is server error",
			statusCode: http.StatusInternalServerError,
			want:       ErrServer,
			notWant:    []error{ErrNotFound, ErrInvalidRequest},
		},
		{
			name:       "503 is server error",
			statusCode: http.StatusServiceUnavailable,
			want:       ErrServer,
			notWant:    []error{ErrNotFound, ErrInvalidRequest},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := newHTTPError(tt.statusCode, nil)
			assert.ErrorIs(t, err, tt.want)
			for _, sentinel := range tt.notWant {
				assert.NotErrorIs(t, err, sentinel)
			}
		})
	}
}

func TestHTTPErrorMessageFromBody(t *testing.T) {
	t.Parallel()

	err := newHTTPError(http.StatusBadRequest, []byte(`{"message": "unknown sort key"}`))
	assert.Equal(t, "unknown sort key", err.Message)
	assert.Contains(t, err.Error(), "unknown sort key")
	assert.Contains(t, err.Error(), "400")
}

func TestHTTPErrorNonJSONBody(t *testing.T) {
	t.Parallel()

	err := newHTTPError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	assert.Empty(t, err.Message)
	assert.Equal(t, "<html>bad gateway</html>", err.Body)
	assert.ErrorIs(t, err, ErrServer)
}

func TestHTTPErrorMatchableViaAs(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("searching: %w", newHTTPError(http.StatusNotFound, nil))

	var httpErr *HTTPError
	require.ErrorAs(t, wrapped, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.ErrorIs(t, wrapped, ErrNotFound)
}

func TestBadArgumentWrapping(t *testing.T) {
	t.Parallel()

	err := badArgumentf("pattern %d out of range", 4242)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadArgument)
	assert.Contains(t, err.Error(), "4242")
	assert.False(t, errors.Is(err, ErrInvalidRequest))
}
