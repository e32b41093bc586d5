package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-auth-service/internal/auth"
	"go-auth-service/internal/cache"
	"go-auth-service/internal/model"
	"go-auth-service/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError is the single place domain failures become client responses.
// Component-local errors are translated here, never inside the storage or
// cache layers, and infrastructure detail never leaves the process outside
// debug mode.
func writeError(w http.ResponseWriter, err error, debug bool) {
	var apiErr *apierror.APIError

	switch {
	case errors.As(err, &apiErr):
		// Already shaped (validation failures, version errors).

	case errors.Is(err, auth.ErrWrongCredentials):
		apiErr = authError(http.StatusUnauthorized, apierror.CodeWrongCredentials, auth.ErrWrongCredentials.Error())

	case errors.Is(err, auth.ErrEmptyPassword):
		apiErr = authError(http.StatusBadRequest, apierror.CodeMissingCredentials, auth.ErrEmptyPassword.Error())

	case errors.Is(err, auth.ErrMissingCredentials), errors.Is(err, auth.ErrInvalidAuthorizationHeader):
		apiErr = authError(http.StatusBadRequest, apierror.CodeMissingCredentials, auth.ErrMissingCredentials.Error())

	case errors.Is(err, auth.ErrInvalidHashFormat), errors.Is(err, auth.ErrHashing):
		apiErr = authError(http.StatusBadRequest, apierror.CodeHashingPassword, auth.ErrHashing.Error())

	case errors.Is(err, auth.ErrInvalidToken):
		apiErr = authError(http.StatusBadRequest, apierror.CodeInvalidToken, auth.ErrInvalidToken.Error())

	case errors.Is(err, auth.ErrInvalidBearerToken):
		apiErr = authError(http.StatusUnauthorized, apierror.CodeForbidden, auth.ErrInvalidBearerToken.Error())

	case errors.Is(err, auth.ErrTokenCreation):
		apiErr = apierror.Infrastructure(apierror.CodeTokenCreation, apierror.KindAuthentication, err, debug)
		slog.Error("token creation failed", "error", err, "trace_id", apiErr.TraceID())

	case errors.Is(err, model.ErrUserNotFound):
		apiErr = apierror.New(http.StatusNotFound,
			apierror.NewResponse(model.ErrUserNotFound.Error()).
				WithCode(apierror.CodeUserNotFound).
				WithKind(apierror.KindResourceNotFound).
				WithReason("must be an existing user in the database").
				WithTraceID())

	case errors.Is(err, model.ErrStorage):
		apiErr = apierror.Infrastructure(apierror.CodeDatabase, apierror.KindDatabase, err, debug)
		slog.Error("storage failure", "error", err, "trace_id", apiErr.TraceID())

	case errors.Is(err, cache.ErrUnavailable):
		apiErr = apierror.Infrastructure(apierror.CodeCache, apierror.KindCache, err, debug)
		slog.Error("cache failure", "error", err, "trace_id", apiErr.TraceID())

	default:
		apiErr = apierror.Infrastructure(apierror.CodeInternal, apierror.KindInternal, err, debug)
		slog.Error("unclassified error", "error", err, "trace_id", apiErr.TraceID())
	}

	writeJSON(w, apiErr.Status, apiErr)
}

func authError(status int, code string, message string) *apierror.APIError {
	return apierror.New(status, apierror.NewResponse(message).
		WithCode(code).
		WithKind(apierror.KindAuthentication))
}
