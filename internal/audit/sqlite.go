//go:build sqlite

package audit

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // CGO-less SQLite driver
)

// SQLiteLogger is a SQLite-backed implementation of Logger. It owns its
// schema and creates it on open.
type SQLiteLogger struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS calculation_audit (
	id          TEXT PRIMARY KEY,
	timestamp   TEXT NOT NULL,
	request_id  TEXT,
	client_ip   TEXT,
	address     TEXT NOT NULL,
	mask_spec   TEXT,
	source      TEXT,
	outcome     TEXT NOT NULL,
	status_code INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calculation_audit_timestamp ON calculation_audit(timestamp);
CREATE INDEX IF NOT EXISTS idx_calculation_audit_outcome ON calculation_audit(outcome);
`

// NewSQLiteLogger opens (or creates) a SQLite-backed audit logger at the
// given DSN.
func NewSQLiteLogger(dsn string) (*SQLiteLogger, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteLogger{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteLogger) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLiteLogger) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Log records an event to the database.
func (s *SQLiteLogger) Log(ctx context.Context, event *Event) error {
	if event == nil {
		return nil
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calculation_audit (id, timestamp, request_id, client_ip, address, mask_spec, source, outcome, status_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		event.ID,
		event.Timestamp.Format(time.RFC3339Nano),
		sql.NullString{String: event.RequestID, Valid: event.RequestID != ""},
		sql.NullString{String: event.ClientIP, Valid: event.ClientIP != ""},
		event.Address,
		sql.NullString{String: event.MaskSpec, Valid: event.MaskSpec != ""},
		sql.NullString{String: event.Source, Valid: event.Source != ""},
		event.Outcome,
		event.StatusCode,
	)
	return err
}

// List retrieves events with optional filtering.
func (s *SQLiteLogger) List(ctx context.Context, opts ListOptions) ([]*Event, int, error) {
	where := "1=1"
	args := []any{}

	if opts.Outcome != "" {
		where += " AND outcome = ?"
		args = append(args, opts.Outcome)
	}
	if opts.Address != "" {
		where += " AND address = ?"
		args = append(args, opts.Address)
	}
	if opts.Since != nil {
		where += " AND timestamp >= ?"
		args = append(args, opts.Since.Format(time.RFC3339Nano))
	}
	if opts.Until != nil {
		where += " AND timestamp <= ?"
		args = append(args, opts.Until.Format(time.RFC3339Nano))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM calculation_audit WHERE " + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Limit > 1000 {
		opts.Limit = 1000
	}

	query := "SELECT id, timestamp, request_id, client_ip, address, mask_spec, source, outcome, status_code FROM calculation_audit WHERE " + where + " ORDER BY timestamp DESC LIMIT ? OFFSET ?"
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var e Event
		var timestamp string
		var requestID, clientIP, maskSpec, source sql.NullString

		if err := rows.Scan(&e.ID, &timestamp, &requestID, &clientIP, &e.Address, &maskSpec, &source, &e.Outcome, &e.StatusCode); err != nil {
			return nil, 0, err
		}

		e.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
		e.RequestID = requestID.String
		e.ClientIP = clientIP.String
		e.MaskSpec = maskSpec.String
		e.Source = source.String

		events = append(events, &e)
	}

	return events, total, rows.Err()
}
