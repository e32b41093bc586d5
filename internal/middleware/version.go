package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-auth-service/pkg/apierror"
)

var supportedVersions = map[string]struct{}{
	"v1": {},
}

// APIVersion validates the {version} path segment. Unsupported versions get a
// structured 400 instead of a bare routing miss.
func APIVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		version := chi.URLParam(r, "version")
		if _, ok := supportedVersions[version]; !ok {
			writeAPIError(w, apierror.New(http.StatusBadRequest,
				apierror.NewResponse("unsupported API version").
					WithCode(apierror.CodeAPIVersion).
					WithKind(apierror.KindValidation).
					WithDetail(map[string]any{"version": version}).
					WithReason("must be one of: v1")))
			return
		}

		next.ServeHTTP(w, r)
	})
}
