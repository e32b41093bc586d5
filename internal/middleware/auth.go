package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go-auth-service/internal/auth"
	"go-auth-service/internal/model"
	"go-auth-service/pkg/apierror"
)

type contextKey string

const claimsContextKey contextKey = "access_claims"

// AuthMiddleware gates protected routes: it extracts the bearer token,
// verifies it cryptographically and then consults the revocation guard.
type AuthMiddleware struct {
	tokens auth.TokenConfig
	guard  *auth.RevocationGuard
	debug  bool
}

func NewAuthMiddleware(tokens auth.TokenConfig, guard *auth.RevocationGuard, debug bool) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, guard: guard, debug: debug}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			slog.Warn("invalid authorization header", "remote", r.RemoteAddr, "path", r.URL.Path)
			writeAPIError(w, apierror.New(http.StatusBadRequest,
				apierror.NewResponse(auth.ErrInvalidAuthorizationHeader.Error()).
					WithCode(apierror.CodeMissingCredentials).
					WithKind(apierror.KindAuthentication)))
			return
		}

		claims, err := auth.DecodeAccessToken(token, m.tokens)
		if err != nil {
			// The decode failure is opaque to the client; the cause (and never
			// the token itself) goes to the log.
			slog.Warn("bearer token rejected", "error", err, "remote", r.RemoteAddr)
			if errors.Is(err, auth.ErrInvalidToken) {
				writeAPIError(w, apierror.New(http.StatusBadRequest,
					apierror.NewResponse(auth.ErrInvalidToken.Error()).
						WithCode(apierror.CodeInvalidToken).
						WithKind(apierror.KindAuthentication)))
				return
			}
			writeAPIError(w, apierror.New(http.StatusUnauthorized,
				apierror.NewResponse(auth.ErrInvalidBearerToken.Error()).
					WithCode(apierror.CodeForbidden).
					WithKind(apierror.KindAuthentication)))
			return
		}

		revoked, err := m.guard.IsRevoked(r.Context(), claims)
		if err != nil {
			// Fail closed: a cache failure rejects the request instead of
			// skipping the revocation check.
			apiErr := apierror.Infrastructure(apierror.CodeCache, apierror.KindCache, err, m.debug)
			slog.Error("revocation check failed", "error", err, "trace_id", apiErr.TraceID())
			writeAPIError(w, apiErr)
			return
		}
		if revoked {
			// Deliberately indistinguishable from a bad-password failure.
			writeAPIError(w, apierror.New(http.StatusUnauthorized,
				apierror.NewResponse(auth.ErrWrongCredentials.Error()).
					WithCode(apierror.CodeWrongCredentials).
					WithKind(apierror.KindAuthentication)))
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles admits only claims whose roles string contains one of the
// allowed roles. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeAPIError(w, apierror.New(http.StatusUnauthorized,
					apierror.NewResponse(auth.ErrMissingCredentials.Error()).
						WithCode(apierror.CodeMissingCredentials).
						WithKind(apierror.KindAuthentication)))
				return
			}

			access, isAccess := claims.(*auth.AccessClaims)
			if !isAccess || !hasAnyRole(access.Roles, allowedRoles) {
				writeAPIError(w, apierror.New(http.StatusUnauthorized,
					apierror.NewResponse("insufficient role").
						WithCode(apierror.CodeForbidden).
						WithKind(apierror.KindAuthentication)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the decoded claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(auth.Claims)
	return claims, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", false
	}

	token := strings.TrimSpace(header[len("bearer "):])
	if token == "" {
		return "", false
	}

	return token, true
}

func hasAnyRole(roles string, allowed []string) bool {
	for _, want := range allowed {
		if model.RolesContain(roles, want) {
			return true
		}
	}

	return false
}

func writeAPIError(w http.ResponseWriter, apiErr *apierror.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(apiErr)
}
