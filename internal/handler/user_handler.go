package handler

import (
	"net/http"

	"go-auth-service/internal/auth"
	"go-auth-service/internal/middleware"
	"go-auth-service/internal/service"
)

type UserHandler struct {
	service *service.AuthService
	debug   bool
}

func NewUserHandler(service *service.AuthService, debug bool) *UserHandler {
	return &UserHandler{service: service, debug: debug}
}

// Me returns the user row behind the token subject. The password hash never
// serializes (json:"-" on the model).
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, auth.ErrMissingCredentials, h.debug)
		return
	}

	user, err := h.service.CurrentUser(r.Context(), claims)
	if err != nil {
		writeError(w, err, h.debug)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
