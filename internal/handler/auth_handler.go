package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"go-auth-service/internal/auth"
	"go-auth-service/internal/middleware"
	"go-auth-service/internal/model"
	"go-auth-service/internal/service"
	"go-auth-service/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
	debug   bool
}

func NewAuthHandler(service *service.AuthService, debug bool) *AuthHandler {
	return &AuthHandler{service: service, debug: debug}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New(http.StatusBadRequest,
			apierror.NewResponse("invalid JSON body").
				WithCode(apierror.CodeValidation).
				WithKind(apierror.KindValidation)), h.debug)
		return
	}

	if fields := payload.Validate(); len(fields) > 0 {
		writeError(w, apierror.Validation(fields), h.debug)
		return
	}

	tokens, err := h.service.Login(r.Context(), payload.Identifier, payload.Password)
	if err != nil {
		writeError(w, err, h.debug)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, auth.ErrMissingCredentials, h.debug)
		return
	}

	if err := h.service.Logout(r.Context(), claims); err != nil {
		writeError(w, err, h.debug)
		return
	}

	writeJSON(w, http.StatusOK, model.RevocationResponse{Revoked: true})
}

func (h *AuthHandler) RevokeUser(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RevokeUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New(http.StatusBadRequest,
			apierror.NewResponse("invalid JSON body").
				WithCode(apierror.CodeValidation).
				WithKind(apierror.KindValidation)), h.debug)
		return
	}

	if _, err := uuid.Parse(payload.UserID); err != nil {
		writeError(w, apierror.Validation(map[string][]string{
			"user_id": {"must be a valid UUID"},
		}), h.debug)
		return
	}

	if err := h.service.RevokeUser(r.Context(), payload.UserID); err != nil {
		writeError(w, err, h.debug)
		return
	}

	writeJSON(w, http.StatusOK, model.RevocationResponse{Revoked: true})
}

func (h *AuthHandler) RevokeAll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RevokeAll(r.Context()); err != nil {
		writeError(w, err, h.debug)
		return
	}

	writeJSON(w, http.StatusOK, model.RevocationResponse{Revoked: true})
}
