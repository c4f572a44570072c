package internal

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"powerevents/internal/providers"
	"powerevents/internal/recorder/interfaces"
	"powerevents/internal/structures"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
	conf      *structures.Config
	recorder  interfaces.RecorderInterface
	logger    providers.Logger
}

func NewApp(recorder interfaces.RecorderInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	app := &App{
		conf:     conf,
		recorder: recorder,
		logger:   logger,
	}
	if !conf.Metrics.Enabled {
		return app
	}

	// Inner mux: status routes
	statusMux := http.NewServeMux()
	router.Mount(statusMux)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", providers.MetricsMiddleware(metrics, router.GetRoutes(), statusMux))

	app.WebServer = &http.Server{
		Addr:         conf.Metrics.Server.Host + ":" + strconv.Itoa(conf.Metrics.Server.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return app
}

// Run blocks until ctx is cancelled or the process receives SIGINT/SIGTERM.
// The record is already durable after every tick, so stopping needs no flush.
func (a *App) Run(ctx context.Context) {
	a.logger.Infof(providers.TypeApp, "%s %s", a.conf.AppName, a.conf.Version)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.WebServer != nil {
		go func() {
			a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
			if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Errorf(providers.TypeApp, "Status server error: %s", err)
			}
		}()
	}

	a.recorder.Start(ctx)

	if a.WebServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.WebServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Errorf(providers.TypeApp, "Status server shutdown: %s", err)
		}
	}
	a.logger.Infof(providers.TypeApp, "stopped")
}

func (a *App) Close() {
	a.logger.Close()
}
