package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reminders-server/config"
	"reminders-server/handlers"
	"reminders-server/logging"
	"reminders-server/respond"
	"reminders-server/seed"
	"reminders-server/services"
	"reminders-server/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "reminders server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store
	s, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := seed.Run(ctx, s, cfg.Seed, log); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	authService := services.NewAuthService(s, log)

	// Initialize WebSocket hub
	hub := handlers.NewHub(authService, respond.New(log, cfg.IsDevelopment()), log)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:        authService,
		Reminders:   services.NewReminderService(s, hub),
		Hub:         hub,
		Log:         log,
		Development: cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "reminders server starting", "addr", srv.Addr, "driver", cfg.DBDriver, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// hijacked websocket connections are not tracked by Shutdown
	stopHub()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info(context.Background(), "server stopped")
	return nil
}
