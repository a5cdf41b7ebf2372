package userhandlers

import (
	"log/slog"
	"net/http"

	userservice "github.com/Black-And-White-Club/alliance-bot/app/modules/user/application"
	"github.com/go-chi/chi/v5"
)

// Handlers is the HTTP surface of the user directory.
type Handlers interface {
	HandleCreateGameAccount(w http.ResponseWriter, r *http.Request)
	HandleListMyGameAccounts(w http.ResponseWriter, r *http.Request)
	HandleUpdateGameAccount(w http.ResponseWriter, r *http.Request)
	HandleSetPrimaryGameAccount(w http.ResponseWriter, r *http.Request)
	HandleDisableUser(w http.ResponseWriter, r *http.Request)
}

// UserHandlers implements the Handlers interface.
type UserHandlers struct {
	service userservice.Service
	logger  *slog.Logger
}

// NewUserHandlers creates a new UserHandlers instance.
func NewUserHandlers(service userservice.Service, logger *slog.Logger) *UserHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandlers{
		service: service,
		logger:  logger,
	}
}

// MountMe registers the routes under /me. The caller supplies authentication.
func MountMe(r chi.Router, h Handlers) {
	r.Route("/me/game-accounts", func(r chi.Router) {
		r.Get("/", h.HandleListMyGameAccounts)
		r.Post("/", h.HandleCreateGameAccount)
		r.Patch("/{accountID}", h.HandleUpdateGameAccount)
		r.Post("/{accountID}/primary", h.HandleSetPrimaryGameAccount)
	})
}

// MountAdmin registers the admin-only user routes. The caller supplies the role gate.
func MountAdmin(r chi.Router, h Handlers) {
	r.Post("/admin/users/{userID}/disable", h.HandleDisableUser)
}
