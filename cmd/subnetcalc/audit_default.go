//go:build !sqlite && !postgres

package main

import (
	"subnetcalc/internal/audit"
	"subnetcalc/internal/observability"
)

// selectAuditLogger returns the in-memory audit backend when built
// without a database tag. If a DSN is configured, we log a hint to
// rebuild with the matching tag.
func selectAuditLogger(logger observability.Logger, cfg *Config) audit.Logger {
	if cfg.SQLiteDSN != "" {
		logger.Warn("sqlite_dsn set, but binary not built with -tags sqlite; using in-memory audit log")
	}
	if cfg.DatabaseURL != "" {
		logger.Warn("database_url set, but binary not built with -tags postgres; using in-memory audit log")
	}
	logger.Info("using in-memory audit log")
	return audit.NewMemoryLogger()
}
