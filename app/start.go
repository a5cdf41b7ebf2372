package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/attr"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// Start serves the API and, when configured, the metrics endpoint until ctx is
// cancelled, then shuts both down gracefully.
func (a *App) Start(ctx context.Context) error {
	logger := a.Observability.Logger

	servers := []*http.Server{{
		Addr:              a.Config.HTTP.Address,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if addr := a.Config.Observability.MetricsAddress; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.Observability.Registry, promhttp.HandlerOpts{}))
		servers = append(servers, &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second})
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.InfoContext(ctx, "Starting HTTP server", attr.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server on %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		return a.WaitForShutdown(servers...)
	})
	return g.Wait()
}

// WaitForShutdown drains the servers within the shutdown timeout.
func (a *App) WaitForShutdown(servers ...*http.Server) error {
	a.Observability.Logger.Info("Shutting down HTTP servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for _, srv := range servers {
		errs = append(errs, srv.Shutdown(shutdownCtx))
	}
	return errors.Join(errs...)
}
