package authhandlers

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/httpx"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/attr"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle IP entry is eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is an IP-based rate limiter that prunes stale entries inline.
type IPRateLimiter struct {
	ips map[string]*ipEntry
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

// NewIPRateLimiter creates a new IPRateLimiter allowing r requests per second with burst b.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*ipEntry),
		r:   r,
		b:   b,
	}
}

// GetLimiter returns the limiter for ip, pruning idle entries once the map grows
// past cleanupThreshold.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := time.Now()
	if len(i.ips) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for k, e := range i.ips {
			if e.lastSeen.Before(cutoff) {
				delete(i.ips, k)
			}
		}
	}

	e, exists := i.ips[ip]
	if !exists {
		e = &ipEntry{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = e
	}
	e.lastSeen = now

	return e.limiter
}

// RateLimitMiddleware rejects requests from an IP that exceeded its rate with 429.
func RateLimitMiddleware(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.GetLimiter(ip).Allow() {
				w.Header().Set("Retry-After", "1")
				httpx.WriteJSON(w, http.StatusTooManyRequests, httpx.ErrorResponse{
					Error:   "rate_limited",
					Message: "too many requests",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware sets CORS headers for the configured origins and answers
// preflight requests. With no origins configured it adds no headers.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := origins[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
					w.Header().Add("Vary", "Origin")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CorrelationMiddleware copies the chi request id into the context correlation id
// used by logs and published events. It must run after chi's RequestID middleware.
func CorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chimiddleware.GetReqID(r.Context())
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Correlation-Id", id)
		next.ServeHTTP(w, r.WithContext(attr.WithCorrelationID(r.Context(), id)))
	})
}

// ActorValidator confirms an authenticated user may still act.
type ActorValidator interface {
	ValidateActor(ctx context.Context, userID uuid.UUID) error
}

// Authenticate requires a valid bearer token and stores the Actor on the request
// context. When validator is non-nil, disabled or deleted users are rejected.
func Authenticate(provider authjwt.Provider, validator ActorValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w)
				return
			}

			claims, err := provider.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "Token validation failed",
					attr.ExtractCorrelationID(ctx),
					attr.Error(err),
				)
				writeUnauthorized(w)
				return
			}

			if validator != nil {
				if err := validator.ValidateActor(ctx, claims.UserID); err != nil {
					if _, isDomain := apperrors.KindOf(err); isDomain {
						logger.WarnContext(ctx, "Actor rejected",
							attr.ExtractCorrelationID(ctx),
							attr.UUID("user_id", claims.UserID),
							attr.Error(err),
						)
						writeUnauthorized(w)
						return
					}
					httpx.WriteError(w, r, logger, err)
					return
				}
			}

			actor := authdomain.Actor{UserID: claims.UserID, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(authdomain.WithActor(ctx, actor)))
		})
	}
}

// RequireRole rejects actors whose platform role is not one of roles.
func RequireRole(roles ...authdomain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := authdomain.ActorFromContext(r.Context())
			if !ok {
				writeUnauthorized(w)
				return
			}
			if !slices.Contains(roles, actor.Role) {
				httpx.WriteError(w, r, nil, apperrors.Forbidden("insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestActor returns the authenticated actor, writing a 401 when there is none.
func RequestActor(w http.ResponseWriter, r *http.Request) (authdomain.Actor, bool) {
	actor, ok := authdomain.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
	}
	return actor, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	httpx.WriteJSON(w, http.StatusUnauthorized, httpx.ErrorResponse{
		Error:   "unauthorized",
		Message: "authentication required",
	})
}
