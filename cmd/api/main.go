// Package main is the entrypoint for the folio API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/handler"
	"github.com/folio/folio/internal/metrics"
	"github.com/folio/folio/internal/server"
	"github.com/folio/folio/internal/service"
	"github.com/folio/folio/internal/store"
)

func main() {
	ctx := context.Background()

	// A missing .env is fine; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Error(
			"failed to open store backend",
			slog.String("backend", cfg.StoreBackend),
			slog.String("error", sanitizeError(err, cfg.DatabaseURL, cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("store backend ready", "backend", cfg.StoreBackend)

	metricsRecorder := metrics.NewInMemory()
	st := store.New(backend, logger, metricsRecorder)
	if err := st.Init(ctx); err != nil {
		logger.Error("failed to initialize store", "error", err)
		_ = st.Close()
		os.Exit(1)
	}

	visitService := service.NewVisitService(st, logger, metricsRecorder)
	contactService := service.NewContactService(st, logger, metricsRecorder)

	r := setupRouter(routerDeps{
		handler:  handler.New(),
		health:   handler.NewHealthHandler(st, cfg.StoreBackend),
		visits:   handler.NewVisitHandler(visitService, logger),
		contacts: handler.NewContactHandler(contactService, logger),
		metrics:  handler.NewMetricsHandler(metricsRecorder),
	}, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("store", func(ctx context.Context) error {
		return st.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"backend", cfg.StoreBackend,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// openBackend connects the document backend selected by STORE_BACKEND.
func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendFile:
		return store.NewFileBackend(cfg.DataDir)
	case config.BackendRedis:
		return store.NewRedisBackend(ctx, cfg.RedisURL, cfg.RedisKeyPrefix)
	case config.BackendPostgres:
		return store.NewPostgresBackend(ctx, cfg.DatabaseURL, cfg.PostgresTable)
	case config.BackendSQLite:
		return store.NewSQLiteBackend(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	q := parsed.Query()
	if q.Has("authToken") {
		q.Set("authToken", "redacted")
		parsed.RawQuery = q.Encode()
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
