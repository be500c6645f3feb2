package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/lucasmsqt/notes-app/internal/api"
	"github.com/lucasmsqt/notes-app/internal/cli"
	"github.com/lucasmsqt/notes-app/internal/events"
	"github.com/lucasmsqt/notes-app/internal/session"
	"github.com/lucasmsqt/notes-app/internal/view"
	"github.com/lucasmsqt/notes-app/internal/web"
)

func main() {
	cli.LoadEnvFile()
	cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig()

	apiURL, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		slog.Error("Invalid API URL", "error", err, "url", cfg.APIBaseURL)
		os.Exit(1)
	}

	store := cli.OpenSessionStore(cfg.SessionDBPath)
	guard := session.NewGuard(store)

	client := api.New(cfg.APIBaseURL, store, cfg.APITimeout)

	// Event publishing is optional: without an AMQP URL record changes
	// are dropped.
	var pub events.Publisher = events.Noop{}
	var amqpClient *events.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		pub = amqpClient
		slog.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange)
	}

	bills := view.NewBillList(client, guard, pub)
	loans := view.NewLoanList(client, guard, pub)

	srv := web.NewServer(":"+cfg.Port, client, guard, store, bills, loans, apiURL)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				slog.Error("AMQP close error", "error", err)
			}
		}
		if err := store.Close(); err != nil {
			slog.Error("Session store close error", "error", err)
		}
	})

	slog.Info("Starting server", "port", cfg.Port, "api", cfg.APIBaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	slog.Info("Server stopped gracefully")
}
