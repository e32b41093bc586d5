// Package apierror defines the structured error envelope every failed request
// is rendered through: an HTTP status plus an ordered list of error entries
// with stable machine-readable codes.
package apierror

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Error kinds (categories).
const (
	KindAuthentication   = "authentication_error"
	KindValidation       = "validation_error"
	KindResourceNotFound = "resource_not_found"
	KindDatabase         = "database_error"
	KindCache            = "cache_error"
	KindInternal         = "internal_error"
)

// Stable error codes. These are part of the API contract and must not change.
const (
	CodeWrongCredentials   = "authentication_wrong_credentials"
	CodeMissingCredentials = "authentication_missing_credentials"
	CodeForbidden          = "authentication_forbidden"
	CodeInvalidToken       = "authentication_invalid_token"
	CodeTokenCreation      = "authentication_token_creation_error"
	CodeHashingPassword    = "authentication_hashing_password_error"
	CodeUserNotFound       = "user_not_found"
	CodeValidation         = "validation_error"
	CodeAPIVersion         = "api_version_error"
	CodeDatabase           = "database_error"
	CodeCache              = "cache_error"
	CodeInternal           = "internal_server_error"
)

// ErrorResponse is one entry of the envelope. Only message and timestamp are
// always present.
type ErrorResponse struct {
	Code        string         `json:"code,omitempty"`
	Kind        string         `json:"kind,omitempty"`
	Message     string         `json:"message"`
	Description string         `json:"description,omitempty"`
	Detail      map[string]any `json:"detail,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	Instance    string         `json:"instance,omitempty"`
	TraceID     string         `json:"trace_id,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	Help        string         `json:"help,omitempty"`
}

func NewResponse(message string) ErrorResponse {
	return ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func (r ErrorResponse) WithCode(code string) ErrorResponse {
	r.Code = code
	return r
}

func (r ErrorResponse) WithKind(kind string) ErrorResponse {
	r.Kind = kind
	return r
}

func (r ErrorResponse) WithDescription(description string) ErrorResponse {
	r.Description = description
	return r
}

func (r ErrorResponse) WithDetail(detail map[string]any) ErrorResponse {
	r.Detail = detail
	return r
}

func (r ErrorResponse) WithReason(reason string) ErrorResponse {
	r.Reason = reason
	return r
}

func (r ErrorResponse) WithInstance(instance string) ErrorResponse {
	r.Instance = instance
	return r
}

// WithTraceID attaches a fresh opaque id correlating the response to
// server-side log entries.
func (r ErrorResponse) WithTraceID() ErrorResponse {
	r.TraceID = uuid.NewString()
	return r
}

func (r ErrorResponse) WithHelp(help string) ErrorResponse {
	r.Help = help
	return r
}

// APIError is the full envelope. It implements error so it can travel through
// ordinary error returns and be unwrapped at the HTTP boundary.
type APIError struct {
	Status int             `json:"status"`
	Errors []ErrorResponse `json:"errors"`
}

func New(status int, responses ...ErrorResponse) *APIError {
	return &APIError{Status: status, Errors: responses}
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	messages := make([]string, 0, len(e.Errors))
	for _, entry := range e.Errors {
		messages = append(messages, entry.Message)
	}

	return fmt.Sprintf("status %d: %s", e.Status, strings.Join(messages, "; "))
}

// TraceID returns the trace id of the first entry carrying one.
func (e *APIError) TraceID() string {
	for _, entry := range e.Errors {
		if entry.TraceID != "" {
			return entry.TraceID
		}
	}

	return ""
}

// Validation renders per-field DTO failures as a 422 with one entry per
// offending field, formatted "<field>: <joined messages>". Fields are emitted
// in lexical order so the envelope is deterministic.
func Validation(fields map[string][]string) *APIError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	responses := make([]ErrorResponse, 0, len(names))
	for _, name := range names {
		responses = append(responses, NewResponse(fmt.Sprintf("%s: %s", name, strings.Join(fields[name], ", "))).
			WithCode(CodeValidation).
			WithKind(KindValidation).
			WithDetail(map[string]any{"field": name}))
	}

	return New(http.StatusUnprocessableEntity, responses...)
}

// Infrastructure renders a storage or cache failure. Outside debug mode the
// real error is suppressed and replaced by a generic message plus a trace id;
// the caller is expected to log the full error under the same trace id. In
// debug mode the real error and its categorized code are returned directly.
func Infrastructure(code string, kind string, err error, debug bool) *APIError {
	if debug {
		return New(http.StatusInternalServerError, NewResponse(err.Error()).
			WithCode(code).
			WithKind(kind).
			WithTraceID())
	}

	return New(http.StatusInternalServerError, NewResponse("internal server error").
		WithCode(CodeInternal).
		WithKind(KindInternal).
		WithTraceID())
}
