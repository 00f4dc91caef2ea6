package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"subnetcalc/internal/api"
	"subnetcalc/internal/observability"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	addrFlag := flag.String("addr", "", "listen address (host:port), overrides config")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		bootstrap := observability.NewLogger(observability.DefaultConfig())
		bootstrap.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		cfg.ListenAddr = *addrFlag
	}

	logger := observability.NewLogger(observability.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize Sentry if DSN is provided
	sentryEnabled := false
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			Release:          version,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			logger.Warn("sentry initialization failed", "error", err)
		} else {
			logger.Info("sentry initialized",
				"environment", cfg.SentryEnvironment,
				"release", version,
			)
			sentryEnabled = true
		}
	}

	// Initialize metrics
	metricsCfg := observability.MetricsConfigFromEnv()
	metricsCfg.Version = version
	var metrics *observability.Metrics
	if metricsCfg.Enabled {
		metrics = observability.NewMetrics(metricsCfg)
		logger.Info("metrics enabled",
			"namespace", metricsCfg.Namespace,
			"version", metricsCfg.Version,
		)
	} else {
		logger.Info("metrics disabled")
	}

	rateCfg := api.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}
	if !rateCfg.Enabled() {
		logger.Info("rate limiting disabled")
	} else {
		logger.Info("rate limiting configured",
			"requests_per_second", rateCfg.RequestsPerSecond,
			"burst", rateCfg.Burst,
		)
	}

	// Parse trusted proxies for X-Forwarded-For handling
	var proxyConfig *api.TrustedProxyConfig
	if cfg.TrustedProxies != "" {
		proxyConfig, err = api.ParseTrustedProxies(cfg.TrustedProxies)
		if err != nil {
			logger.Error("invalid trusted proxies", "error", err)
		} else {
			logger.Info("trusted proxies configured", "count", len(proxyConfig.CIDRs))
			rateCfg.TrustedProxies = proxyConfig
		}
	}

	// Select audit backend based on build tags (see audit_*.go in this package).
	auditLogger := selectAuditLogger(logger, cfg)

	mux := http.NewServeMux()
	srv := api.NewServer(mux, logger, metrics, auditLogger, version)
	srv.SetTrustedProxies(proxyConfig)
	srv.RegisterRoutes()

	// Apply middleware stack.
	// Order: metrics (outermost) -> requestID -> logging -> rateLimiting (innermost before handler)
	handler := api.ApplyMiddlewares(
		mux,
		observability.MetricsMiddleware(metrics),
		api.RequestIDMiddleware(),
		api.LoggingMiddleware(logger.Slog()),
		observability.RateLimitMetricsMiddleware(metrics, rateCfg.Enabled()),
		api.RateLimitMiddleware(rateCfg, logger.Slog()),
	)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("subnetcalc listening", "addr", cfg.ListenAddr, "version", version)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig)
	}

	// Graceful shutdown with 15-second timeout
	logger.Info("shutting down server", "timeout", "15s")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	} else {
		logger.Info("server stopped gracefully")
	}

	if err := auditLogger.Close(); err != nil {
		logger.Error("error closing audit backend", "error", err)
	}

	// Flush Sentry events
	if sentryEnabled {
		logger.Info("flushing sentry events", "deadline", "2s")
		sentry.Flush(2 * time.Second)
	}

	logger.Info("shutdown complete")
}
