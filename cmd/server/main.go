package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdg-garage/event-registration-api/internal/auth"
	"github.com/gdg-garage/event-registration-api/internal/config"
	"github.com/gdg-garage/event-registration-api/internal/database"
	"github.com/gdg-garage/event-registration-api/internal/handlers"
	"github.com/gdg-garage/event-registration-api/internal/metrics"
	"github.com/gdg-garage/event-registration-api/internal/notifier"
	"github.com/gdg-garage/event-registration-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
)

func setupLogger(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      l,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func setupNotifiers(cfg *config.Config) notifier.Notifier {
	var notifiers notifier.Multi

	if cfg.DiscordBotToken != "" {
		discord, err := notifier.NewDiscordNotifierFromToken(cfg.DiscordBotToken, cfg.DiscordNotificationsChannelID)
		if err != nil {
			slog.Warn("Discord notifier not initialized", "error", err)
		} else {
			notifiers = append(notifiers, discord)
		}
	}

	if cfg.ResendAPIKey != "" {
		email, err := notifier.NewResendNotifier(cfg.ResendAPIKey, cfg.EmailFrom)
		if err != nil {
			slog.Warn("email notifier not initialized", "error", err)
		} else {
			notifiers = append(notifiers, email)
		}
	}

	if len(notifiers) == 0 {
		return nil
	}
	return notifiers
}

func main() {
	// Load Configuration
	cfg := config.LoadConfig()
	setupLogger(cfg.LogLevel)

	// Connect to Database
	db, err := database.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if cfg.MetricsEnabled {
		if err := metrics.InstrumentDB(db); err != nil {
			slog.Warn("database metrics not installed", "error", err)
		}
	}

	// A failed setup is reported through /health instead of stopping the server.
	schema := &database.Status{}
	err = database.Setup(context.Background(), db, cfg.AdminSeed())
	schema.Record(err)
	metrics.SetSchemaReady(err == nil)
	if err != nil {
		slog.Error("schema setup failed", "error", err)
	} else {
		slog.Info("database schema ready", "driver", cfg.DatabaseDriver)
	}

	s := store.New(db, cfg.AtomicParticipantWrites)

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, cfg, handlers.Handlers{
		Registration: handlers.NewRegistrationHandler(s, setupNotifiers(cfg)),
		Admin:        handlers.NewAdminHandler(s),
		Health:       handlers.NewHealthHandler(schema),
		Gate:         auth.NewAdminGate(s, cfg.AdminHeader, cfg.AdminGateEnabled),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	// Start Server
	slog.Info("starting server", "port", cfg.Port, "prefix", cfg.APIPrefix)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
