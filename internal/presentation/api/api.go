package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hilthontt/huddle/internal/infrastructure/configs"
	"github.com/hilthontt/huddle/internal/infrastructure/logging"
	"github.com/hilthontt/huddle/internal/infrastructure/metrics"
	healthHandler "github.com/hilthontt/huddle/internal/presentation/handler/health"
	messagesHandler "github.com/hilthontt/huddle/internal/presentation/handler/messages"
	roomHandler "github.com/hilthontt/huddle/internal/presentation/handler/rooms"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serverName = "huddle-api"

type Application struct {
	config          configs.Config
	roomHandler     *roomHandler.Handler
	healthHandler   *healthHandler.Handler
	messagesHandler *messagesHandler.Handler
	logger          logging.Logger
	metrics         *metrics.Metrics
}

// NewApplication wires the handlers. m may be nil when metrics are disabled.
func NewApplication(
	config configs.Config,
	roomHandler *roomHandler.Handler,
	healthHandler *healthHandler.Handler,
	messagesHandler *messagesHandler.Handler,
	logger logging.Logger,
	m *metrics.Metrics,
) *Application {
	return &Application{
		config:          config,
		roomHandler:     roomHandler,
		healthHandler:   healthHandler,
		messagesHandler: messagesHandler,
		logger:          logger,
		metrics:         m,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(app.config.HTTP.RequestTimeout))
	if app.metrics != nil {
		r.Use(app.prometheusMiddleware)
	}

	r.Use(app.enableCors)

	r.Route("/api", func(r chi.Router) {
		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", app.roomHandler.CreateRoomHandler)
			r.Post("/join", app.roomHandler.JoinRoomHandler)
			r.Get("/{roomId}", app.roomHandler.GetRoomHandler)
			r.Post("/{roomId}/leave", app.roomHandler.LeaveRoomHandler)

			r.Post("/{roomId}/messages", app.messagesHandler.CreateNewMessageHandler)
			r.Get("/{roomId}/messages", app.messagesHandler.ListMessagesHandler)
		})

		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
		r.Get("/ready", app.healthHandler.GetHealth)
		r.Get("/live", app.healthHandler.GetHealth)
	})

	if app.metrics != nil && app.config.Metrics.Enabled {
		r.Method(http.MethodGet, app.config.Metrics.Path, app.metrics.Handler())
	}

	if app.config.Swagger.Enabled {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	if app.config.Tracing.Enabled {
		return otelhttp.NewHandler(r, serverName)
	}

	return r
}

// Run serves mux until SIGINT or SIGTERM, then drains in-flight requests.
func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  app.config.HTTP.IdleTimeout,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.healthHandler.SetHealthy(false)

		ctx, cancel := context.WithTimeout(context.Background(), app.config.HTTP.ShutdownTimeout)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"Signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"Addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdown; err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"Addr": srv.Addr,
	})

	return nil
}
