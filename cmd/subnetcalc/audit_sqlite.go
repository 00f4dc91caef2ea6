//go:build sqlite

package main

import (
	"subnetcalc/internal/audit"
	"subnetcalc/internal/observability"
)

// selectAuditLogger returns a SQLite-backed audit logger when built with
// the 'sqlite' tag. Configure with sqlite_dsn or SQLITE_DSN
// (e.g., file:subnetcalc.db?cache=shared).
func selectAuditLogger(logger observability.Logger, cfg *Config) audit.Logger {
	dsn := cfg.SQLiteDSN
	if dsn == "" {
		dsn = "file:subnetcalc.db?cache=shared"
	}
	al, err := audit.NewSQLiteLogger(dsn)
	if err != nil {
		logger.Error("sqlite audit log init failed; falling back to memory", "error", err)
		return audit.NewMemoryLogger()
	}
	logger.Info("using sqlite audit log", "dsn", dsn)
	return al
}
