package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidation(t *testing.T) {
	t.Parallel()

	apiErr := Validation(map[string][]string{
		"password":   {"password must be between 3 and 20 characters"},
		"identifier": {"invalid email format", "must not be empty"},
	})

	require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.Len(t, apiErr.Errors, 2)

	// Fields render in lexical order, one entry per field.
	require.Equal(t, "identifier: invalid email format, must not be empty", apiErr.Errors[0].Message)
	require.Equal(t, "password: password must be between 3 and 20 characters", apiErr.Errors[1].Message)

	for _, entry := range apiErr.Errors {
		require.Equal(t, CodeValidation, entry.Code)
		require.Equal(t, KindValidation, entry.Kind)
		require.False(t, entry.Timestamp.IsZero())
	}
}

func TestInfrastructure(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp 127.0.0.1:6379: connection refused")

	t.Run("suppresses detail outside debug mode", func(t *testing.T) {
		apiErr := Infrastructure(CodeCache, KindCache, cause, false)

		require.Equal(t, http.StatusInternalServerError, apiErr.Status)
		require.Len(t, apiErr.Errors, 1)
		require.Equal(t, "internal server error", apiErr.Errors[0].Message)
		require.Equal(t, CodeInternal, apiErr.Errors[0].Code)
		require.NotEmpty(t, apiErr.TraceID(), "suppressed errors must carry a trace id")
		require.NotContains(t, apiErr.Error(), "6379")
	})

	t.Run("returns the real error in debug mode", func(t *testing.T) {
		apiErr := Infrastructure(CodeCache, KindCache, cause, true)

		require.Equal(t, http.StatusInternalServerError, apiErr.Status)
		require.Equal(t, cause.Error(), apiErr.Errors[0].Message)
		require.Equal(t, CodeCache, apiErr.Errors[0].Code)
		require.Equal(t, KindCache, apiErr.Errors[0].Kind)
	})
}

func TestEnvelopeJSON(t *testing.T) {
	t.Parallel()

	apiErr := New(http.StatusUnauthorized, NewResponse("invalid credential combination").
		WithCode(CodeWrongCredentials).
		WithKind(KindAuthentication))

	raw, err := json.Marshal(apiErr)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.EqualValues(t, 401, decoded["status"])

	entries, ok := decoded["errors"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)

	entry := entries[0].(map[string]any)
	require.Equal(t, "authentication_wrong_credentials", entry["code"])
	require.Equal(t, "authentication_error", entry["kind"])
	require.Contains(t, entry, "timestamp")

	// Unset optional fields stay off the wire.
	require.NotContains(t, entry, "description")
	require.NotContains(t, entry, "detail")
	require.NotContains(t, entry, "trace_id")
	require.NotContains(t, entry, "help")
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	apiErr := New(http.StatusUnprocessableEntity,
		NewResponse("identifier: invalid email format"),
		NewResponse("password: too short"))

	require.Contains(t, apiErr.Error(), "status 422")
	require.Contains(t, apiErr.Error(), "identifier: invalid email format")
	require.Contains(t, apiErr.Error(), "password: too short")
}
