package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/Adaptare-Software/workshop-registration/api"
	"github.com/Adaptare-Software/workshop-registration/checkout"
	"github.com/Adaptare-Software/workshop-registration/config"
	"github.com/Adaptare-Software/workshop-registration/store"
)

const (
	displayTimeZone = "America/Sao_Paulo"
	janitorInterval = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	shutdownTracing, err := setupTracing(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer shutdownTracing(context.Background())

	db, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	sessionOpts := []checkout.SessionsOption{checkout.WithSessionTTL(cfg.Checkout.SessionTTL)}
	if cfg.Email.Enabled {
		sender, err := createEmailSender(ctx, logger, cfg.Env)
		if err != nil {
			return err
		}
		sessionOpts = append(sessionOpts, checkout.WithOnCreated(registrationReceivedNotifier(sender, cfg.Email.From, logger)))
	}
	sessions := checkout.NewSessions(db, logger, sessionOpts...)
	go sessions.RunJanitor(ctx, janitorInterval)

	loc, err := time.LoadLocation(displayTimeZone)
	if err != nil {
		return err
	}

	env := api.LOCAL
	if cfg.Env == config.PROD {
		env = api.PROD
	}
	registrationAPI := api.NewAPI(db, sessions, logger, env,
		api.WithAllowedOrigin(cfg.HttpServer.AllowedOrigin),
		api.WithLocation(loc),
	)

	handler, err := registrationAPI.Handler()
	if err != nil {
		return err
	}

	s := &http.Server{
		Handler:           handler,
		Addr:              cfg.Addr(),
		ReadHeaderTimeout: cfg.HttpServer.ReadTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", slog.String("addr", s.Addr), slog.String("store", string(cfg.Store.Kind)))
		serveErr <- s.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.Shutdown(shutdownCtx)
}
