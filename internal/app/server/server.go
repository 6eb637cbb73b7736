package server

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

	"github.com/go-chi/chi/v5"

	"cardcredit/internal/domain/auth"
	"cardcredit/internal/domain/deduction"
	"cardcredit/internal/platform/config"
	"cardcredit/internal/platform/metrics"
	"cardcredit/internal/transport/http/api"
	deductionhandler "cardcredit/internal/transport/http/handlers/deduction"
	"cardcredit/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Calc    *deduction.Calculator
	Metrics *metrics.Collector
	Router  http.Handler
}

// New builds the application from cfg, loading the policy file if one is set.
func New(cfg config.Config) (*App, error) {
	policy := deduction.DefaultPolicy()
	if cfg.PolicyFile != "" {
		loaded, err := deduction.LoadPolicy(cfg.PolicyFile)
		if err != nil {
			return nil, fmt.Errorf("load policy: %w", err)
		}
		policy = loaded
	}

	app := &App{
		Config:  cfg,
		Calc:    deduction.NewCalculator(policy),
		Metrics: metrics.New(),
	}
	app.Router = app.routes()
	return app, nil
}

func (a *App) routes() http.Handler {
	cfg := a.Config
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := a.Calc.Policy().Validate(); err != nil {
			http.Error(w, "policy not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
		if cfg.AuthRequired {
			r.Use(middleware.RequireScope(auth.ScopeCalculate))
		}

		deductionHandler := deductionhandler.NewHandler(a.Calc, a.Metrics, deductionhandler.Options{
			BatchMaxItems: cfg.BatchMaxItems,
			BatchWorkers:  cfg.BatchWorkers,
		})
		deductionHandler.RegisterRoutes(r)
	})

	return router
}

func Run() {
	cfg := config.Load()
	slog.SetDefault(newLogger(cfg))
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	app, err := New(cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("deduction server listening", "addr", cfg.Addr, "policy", app.Calc.Policy().Name)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "err", err)
		}
		slog.Info("server stopped")
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
