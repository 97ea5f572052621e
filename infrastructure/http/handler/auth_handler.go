package handler

import (
	"encoding/json"
	"net/http"

	"github.com/horolog/horolog/application/port/inbound"
	"github.com/horolog/horolog/domain/apperror"
	"github.com/horolog/horolog/infrastructure/http/middleware"
	"github.com/horolog/horolog/infrastructure/http/response"
)

type AuthHandler struct {
	auth inbound.AuthService
}

func NewAuthHandler(auth inbound.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FromError(w, apperror.InvalidInput("invalid request body"))
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, result)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	user, err := h.auth.Me(r.Context(), principal)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, user)
}
