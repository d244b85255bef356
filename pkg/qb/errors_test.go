package qb_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &qb.APIError{
		StatusCode: http.StatusForbidden,
		Message:    "Access denied",
	}
	assert.Equal(t, "api request failed: Access denied (status: 403)", err.Error())
}

func TestAPIError_FallsBackToStatusText(t *testing.T) {
	t.Parallel()

	err := &qb.APIError{StatusCode: http.StatusBadGateway}
	assert.Equal(t, "api request failed: Bad Gateway (status: 502)", err.Error())
}

func TestAuthError_Error(t *testing.T) {
	t.Parallel()

	err := &qb.AuthError{
		TableID: "bqx7xre9z",
		Message: "token rejected",
	}
	assert.Equal(t, "authentication failed for table bqx7xre9z: token rejected", err.Error())
}

func TestPartialUpsertError_SortsLines(t *testing.T) {
	t.Parallel()

	err := &qb.PartialUpsertError{
		LineErrors: map[string][]string{
			"3": {"bad value"},
			"1": {"bad value"},
			"2": {"bad value"},
		},
	}
	assert.Equal(t, "upsert reported errors on lines [1, 2, 3]", err.Error())
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("looking up record: %w", qb.ErrRecordNotFound)
	assert.True(t, qb.IsNotFound(wrapped))
	assert.False(t, qb.IsNotFound(qb.ErrAmbiguousMatch))
}

func TestIsAmbiguous(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("looking up record: %w", qb.ErrAmbiguousMatch)
	assert.True(t, qb.IsAmbiguous(wrapped))
	assert.False(t, qb.IsAmbiguous(qb.ErrRecordNotFound))
}

func TestIsAuthError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("sending request: %w", &qb.AuthError{TableID: "x", Message: "no"})
	assert.True(t, qb.IsAuthError(wrapped))
	assert.False(t, qb.IsAuthError(qb.ErrRecordNotFound))
}

func TestIsAPIError(t *testing.T) {
	t.Parallel()

	original := &qb.APIError{StatusCode: http.StatusNotFound, Message: "missing"}
	wrapped := fmt.Errorf("querying records: %w", original)

	apiErr, ok := qb.IsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	_, ok = qb.IsAPIError(qb.ErrRecordNotFound)
	assert.False(t, ok)
}
