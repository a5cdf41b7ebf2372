package app

import (
	"net/http"

	authhandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/alliance-bot/config"
	"github.com/Black-And-White-Club/alliance-bot/pkg/httpx"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// Module is a component that serves HTTP routes.
type Module interface {
	RegisterRoutes(r chi.Router)
}

// Router builds the API handler: shared middleware, /healthz, and every module
// under the authenticated /api/v1 prefix.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(authhandlers.CorrelationMiddleware)
	r.Use(authhandlers.CORSMiddleware(a.Config.HTTP.AllowedOrigins))
	r.Use(authhandlers.RateLimitMiddleware(authhandlers.NewIPRateLimiter(rate.Limit(a.Config.HTTP.RateLimitRPS), a.Config.HTTP.RateLimitBurst)))

	r.Get("/healthz", a.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(a.AuthModule.Authenticate(a.UserModule.Service()))
		for _, m := range a.modules() {
			m.RegisterRoutes(r)
		}
	})

	return otelhttp.NewHandler(r, config.ServiceName,
		otelhttp.WithTracerProvider(a.Observability.TracerProvider),
	)
}

func (a *App) modules() []Module {
	return []Module{a.AuthModule, a.UserModule, a.ChampionModule, a.AllianceModule, a.DefenseModule}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.DB.PingContext(r.Context()); err != nil {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
