package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/bp-atlas/pkg/handlers/report"
	"github.com/de-tools/bp-atlas/pkg/services/plausibility"
	"github.com/de-tools/bp-atlas/pkg/store/duckdb/readings"

	bpatlasmiddleware "github.com/de-tools/bp-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Parser handlers.Parser
	Store  readings.Store
	Limits plausibility.Limits
	Logger zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	reportHandler := handlers.NewHandler(
		config.Dependencies.Parser,
		config.Dependencies.Store,
		config.Dependencies.Limits,
	)

	router := chi.NewRouter()

	router.Use(bpatlasmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", reportHandler.Health)
		r.Post("/reports", reportHandler.ParseUpload)
		r.Post("/reports/text", reportHandler.ParseText)
		r.Get("/reports", reportHandler.ListReports)
		r.Get("/reports/{id}", reportHandler.GetReport)
		r.Get("/readings", reportHandler.ListReadings)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	logger := config.Dependencies.Logger

	return &WebAPI{
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           ConfigureRouter(config),
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
