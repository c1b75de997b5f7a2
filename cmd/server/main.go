// Command server stores benchmark runs and serves them over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/idudko/login-checker/internal/audit"
	"github.com/idudko/login-checker/internal/handler"
	"github.com/idudko/login-checker/internal/logger"
	"github.com/idudko/login-checker/internal/middleware"
	"github.com/idudko/login-checker/internal/repository"
	"github.com/idudko/login-checker/internal/service"
)

func main() {
	if err := Init(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Initialize(config.LogLevel, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := newStorage(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}
	defer storage.Close()

	srv := &http.Server{
		Addr:              config.Address,
		Handler:           newRouter(storage, newAuditSubject()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", config.Address).Msg("server is running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(config.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

// newStorage picks PostgreSQL, then the JSON file, then memory.
func newStorage(ctx context.Context) (repository.Storage, error) {
	switch {
	case config.DSN != "":
		log.Info().Msg("using database storage")
		return repository.NewDBStorage(ctx, config.DSN, config.Migrations)
	case config.FileStoragePath != "":
		log.Info().Str("path", config.FileStoragePath).Bool("restore", config.Restore).Msg("using file storage")
		return repository.NewFileStorage(config.FileStoragePath, config.Restore)
	default:
		log.Info().Msg("using in-memory storage")
		return repository.NewMemStorage(), nil
	}
}

func newAuditSubject() *audit.Subject {
	subject := audit.NewSubject()
	if config.AuditFile != "" {
		subject.Attach(audit.NewFileObserver(config.AuditFile))
	}
	if config.AuditURL != "" {
		subject.Attach(audit.NewHTTPObserver(config.AuditURL))
	}
	return subject
}

// newRouter builds the API. The signature check sees the body exactly as
// sent, so it runs before gzip decoding.
func newRouter(storage repository.Storage, subject *audit.Subject) http.Handler {
	resultsService := service.NewResultsService(storage)

	middlewares := []func(http.Handler) http.Handler{
		middleware.LoggingMiddleware,
		middleware.TrustedSubnetMiddleware(config.TrustedSubnet),
		middleware.HashValidationMiddleware(config.Key),
		middleware.GzipRequestMiddleware,
	}
	if subject.Len() > 0 {
		middlewares = append(middlewares, middleware.AuditMiddleware(subject))
	}

	return handler.NewRouter(
		handler.NewHandler(resultsService),
		handler.NewPingHandler(resultsService),
		middlewares...,
	)
}
