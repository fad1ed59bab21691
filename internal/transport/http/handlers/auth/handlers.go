package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"paycalc/internal/domain/auth"
	"paycalc/internal/platform/config"
	"paycalc/internal/transport/http/api"
	"paycalc/internal/transport/http/middleware"
)

type Handler struct {
	cfg config.Config
}

func NewHandler(cfg config.Config) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", reqID)
		return
	}

	if h.cfg.AdminEmail == "" || h.cfg.AdminPasswordHash == "" || h.cfg.JWTSecret == "" {
		api.Fail(w, http.StatusServiceUnavailable, "auth_disabled", "authentication is not configured", reqID)
		return
	}

	if !strings.EqualFold(payload.Email, h.cfg.AdminEmail) ||
		auth.CheckPassword(h.cfg.AdminPasswordHash, payload.Password) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}

	token, err := auth.GenerateToken(h.cfg.JWTSecret, auth.Claims{Email: h.cfg.AdminEmail, Role: "admin"}, h.cfg.AuthTokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "could not issue token", reqID)
		return
	}

	api.Success(w, loginResponse{Token: token}, reqID)
}
