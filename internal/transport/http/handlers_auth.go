package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authModels "campus/internal/auth/models"
	"campus/pkg/platform/httputil"
)

//go:generate mockgen -source=handlers_auth.go -destination=mocks/auth-mocks.go -package=mocks AuthService

// AuthService registers and authenticates system credentials.
type AuthService interface {
	RegisterCredential(ctx context.Context, req authModels.CredentialRequest) (*authModels.AuthResult, error)
	AuthenticateCredential(ctx context.Context, req authModels.CredentialRequest) (*authModels.AuthResult, error)
}

type AuthHandler struct {
	auth   AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req authModels.CredentialRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	res, err := h.auth.RegisterCredential(ctx, req)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req authModels.CredentialRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}

	res, err := h.auth.AuthenticateCredential(ctx, req)
	if err != nil {
		writeError(ctx, h.logger, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
