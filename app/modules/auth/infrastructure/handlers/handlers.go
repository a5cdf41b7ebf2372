package authhandlers

import (
	"log/slog"
	"net/http"

	authservice "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/application"
	"github.com/Black-And-White-Club/alliance-bot/pkg/httpx"
	"github.com/go-chi/chi/v5"
)

// AuthHandlers serves the token routes.
type AuthHandlers struct {
	service authservice.Service
	logger  *slog.Logger
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(service authservice.Service, logger *slog.Logger) *AuthHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandlers{service: service, logger: logger}
}

// Mount registers the token routes on an authenticated router.
func (h *AuthHandlers) Mount(r chi.Router) {
	r.Post("/auth/refresh", h.HandleRefresh)
}

// HandleRefresh swaps a valid bearer token for a fresh one.
func (h *AuthHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	actor, ok := RequestActor(w, r)
	if !ok {
		return
	}
	resp, err := h.service.RefreshToken(r.Context(), actor)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
