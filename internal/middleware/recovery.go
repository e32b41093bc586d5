package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"go-auth-service/pkg/apierror"
)

// Recovery catches panics at the outermost boundary and renders them as a
// generic 500 with a trace id instead of letting the connection die.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				apiErr := apierror.New(http.StatusInternalServerError,
					apierror.NewResponse("internal server error").
						WithCode(apierror.CodeInternal).
						WithKind(apierror.KindInternal).
						WithTraceID())

				slog.Error("panic recovered",
					"error", fmt.Sprintf("%v", recovered),
					"trace_id", apiErr.TraceID(),
					"stack", string(debug.Stack()))

				writeAPIError(w, apiErr)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
